package billing

import (
	"errors"
	"testing"
	"time"
)

func TestNormalizeIssuance(t *testing.T) {
	start := date(2026, time.March, 15)

	cmd, err := NormalizeIssuance(IssuanceRequest{
		Cadence:   CadenceMonthly,
		StartDate: &start,
		PeriodKey: "2026-03",
		MemberIDs: []uint{1, 2},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cmd.PeriodKey != "2026-03" {
		t.Fatalf("period key = %q, want 2026-03", cmd.PeriodKey)
	}
	if cmd.StartDate != "2026-03-15" || cmd.EndDate != "2026-03-31" {
		t.Fatalf("dates = %q..%q, want 2026-03-15..2026-03-31", cmd.StartDate, cmd.EndDate)
	}
}

func TestNormalizeIssuanceCasualUsesSessionDate(t *testing.T) {
	session := date(2026, time.May, 9)

	cmd, err := NormalizeIssuance(IssuanceRequest{
		Cadence:   CadenceCasual,
		StartDate: &session,
		PeriodKey: "should-be-ignored",
		MemberIDs: []uint{7},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cmd.PeriodKey != "2026-05-09" {
		t.Fatalf("period key = %q, want 2026-05-09", cmd.PeriodKey)
	}
	if cmd.EndDate != "2026-05-09" {
		t.Fatalf("end date = %q, want the session date", cmd.EndDate)
	}
}

func TestNormalizeIssuanceComputesMissingPeriodKey(t *testing.T) {
	start := date(2026, time.August, 2)

	cmd, err := NormalizeIssuance(IssuanceRequest{
		Cadence:   CadenceSemiAnnual,
		StartDate: &start,
		MemberIDs: []uint{1},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cmd.PeriodKey != "2026-H2" {
		t.Fatalf("period key = %q, want 2026-H2", cmd.PeriodKey)
	}
}

func TestNormalizeIssuanceValidation(t *testing.T) {
	start := date(2026, time.March, 1)

	tests := []struct {
		name string
		req  IssuanceRequest
		want error
	}{
		{
			name: "missing start date",
			req:  IssuanceRequest{Cadence: CadenceMonthly, MemberIDs: []uint{1}},
			want: ErrMissingStartDate,
		},
		{
			name: "no members",
			req:  IssuanceRequest{Cadence: CadenceMonthly, StartDate: &start},
			want: ErrNoMembersSelected,
		},
		{
			name: "invalid cadence",
			req:  IssuanceRequest{Cadence: Cadence("weekly"), StartDate: &start, MemberIDs: []uint{1}},
			want: ErrInvalidCadence,
		},
	}

	for _, tt := range tests {
		if _, err := NormalizeIssuance(tt.req); !errors.Is(err, tt.want) {
			t.Fatalf("%s: error = %v, want %v", tt.name, err, tt.want)
		}
	}
}

func TestNormalizeIssuanceDatesAlwaysParse(t *testing.T) {
	// Controllers re-parse the command dates without a fallback, so every
	// cadence must emit strict ISO dates.
	for _, cadence := range []Cadence{CadenceCasual, CadenceMonthly, CadenceSemiAnnual, CadenceAnnual} {
		start := date(2026, time.July, 4)

		cmd, err := NormalizeIssuance(IssuanceRequest{
			Cadence:   cadence,
			StartDate: &start,
			MemberIDs: []uint{1},
		})
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", cadence, err)
		}
		if _, err := time.Parse("2006-01-02", cmd.StartDate); err != nil {
			t.Fatalf("%s: start date %q: %v", cadence, cmd.StartDate, err)
		}
		if _, err := time.Parse("2006-01-02", cmd.EndDate); err != nil {
			t.Fatalf("%s: end date %q: %v", cadence, cmd.EndDate, err)
		}
	}
}

func TestNormalizeIssuanceStripsTimeOfDay(t *testing.T) {
	loc := time.FixedZone("NZDT", 13*60*60)
	start := time.Date(2026, time.March, 15, 23, 45, 0, 0, loc)

	cmd, err := NormalizeIssuance(IssuanceRequest{
		Cadence:   CadenceMonthly,
		StartDate: &start,
		PeriodKey: "2026-03",
		MemberIDs: []uint{1},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// A late-evening local timestamp must not shift the stored date.
	if cmd.StartDate != "2026-03-15" {
		t.Fatalf("start date = %q, want 2026-03-15", cmd.StartDate)
	}
}
