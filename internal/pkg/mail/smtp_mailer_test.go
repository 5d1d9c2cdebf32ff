package mail

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMixedMessage(t *testing.T) {
	pdf := bytes.Repeat([]byte{0x25, 0x50, 0x44, 0x46}, 64)

	msg, err := buildMixedMessage(
		"club@example.org",
		[]string{"a@example.org", "b@example.org"},
		"Invoice #12",
		"<p>Please find your invoice attached.</p>",
		"invoice_12.pdf",
		pdf,
	)
	require.NoError(t, err)

	text := string(msg)
	assert.Contains(t, text, "From: club@example.org\r\n")
	assert.Contains(t, text, "To: a@example.org, b@example.org\r\n")
	assert.Contains(t, text, "Subject: Invoice #12\r\n")
	assert.Contains(t, text, "Content-Type: multipart/mixed; boundary=")
	assert.Contains(t, text, "Content-Type: text/html; charset=UTF-8")
	assert.Contains(t, text, "Content-Transfer-Encoding: base64")
	assert.Contains(t, text, `attachment; filename="invoice_12.pdf"`)

	// base64 lines must not exceed the RFC 2045 limit
	inAttachment := false
	for _, line := range strings.Split(text, "\r\n") {
		if strings.Contains(line, "Content-Disposition") {
			inAttachment = true
			continue
		}
		if inAttachment && len(line) > 0 && !strings.HasPrefix(line, "--") {
			assert.LessOrEqual(t, len(line), 76)
		}
	}
}
