package repository

import (
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockInvoiceRepo(t *testing.T) (InvoiceRepository, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      conn,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return NewInvoiceRepository(db), mock
}

// Marking a line paid twice is a benign race between the payment grid and
// the casual cards: the second call must succeed and re-stamp date_paid.
func TestMarkLinePaidRepeatable(t *testing.T) {
	repo, mock := newMockInvoiceRepo(t)

	markLine := regexp.QuoteMeta("UPDATE `member_invoices` SET `date_paid`=NOW(),`is_paid`=")

	mock.ExpectExec(markLine).WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.MarkLinePaid(42))

	mock.ExpectExec(markLine).WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.MarkLinePaid(42))

	assert.NoError(t, mock.ExpectationsWereMet())
}

// MarkNotified touches every line of a cycle in one statement.
func TestMarkNotifiedFlagsWholeCycle(t *testing.T) {
	repo, mock := newMockInvoiceRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE `member_invoices` SET `is_notified`=")).
		WillReturnResult(sqlmock.NewResult(0, 3))
	require.NoError(t, repo.MarkNotified(7))

	assert.NoError(t, mock.ExpectationsWereMet())
}
