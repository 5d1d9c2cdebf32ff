package billing

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseCadence(t *testing.T) {
	tests := []struct {
		in      string
		want    Cadence
		wantErr bool
	}{
		{in: "casual", want: CadenceCasual},
		{in: "Monthly", want: CadenceMonthly},
		{in: "semiannual", want: CadenceSemiAnnual},
		{in: "semi-annual", want: CadenceSemiAnnual},
		{in: "semi", want: CadenceSemiAnnual},
		{in: "annual", want: CadenceAnnual},
		{in: "yearly", want: CadenceAnnual},
		{in: " ANNUAL ", want: CadenceAnnual},
		{in: "weekly", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseCadence(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("ParseCadence(%q) expected error, got %q", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseCadence(%q) unexpected error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParseCadence(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPeriodKey(t *testing.T) {
	tests := []struct {
		cadence Cadence
		start   time.Time
		want    string
	}{
		{CadenceMonthly, date(2026, time.March, 15), "2026-03"},
		{CadenceMonthly, date(2026, time.December, 1), "2026-12"},
		{CadenceSemiAnnual, date(2026, time.January, 1), "2026-H1"},
		{CadenceSemiAnnual, date(2026, time.June, 30), "2026-H1"},
		{CadenceSemiAnnual, date(2026, time.July, 1), "2026-H2"},
		{CadenceAnnual, date(2026, time.June, 1), "2026"},
		{CadenceCasual, date(2026, time.May, 9), "2026-05-09"},
	}

	for _, tt := range tests {
		got, err := PeriodKey(tt.cadence, tt.start)
		if err != nil {
			t.Fatalf("PeriodKey(%s, %s) unexpected error: %v", tt.cadence, tt.start, err)
		}
		if got != tt.want {
			t.Fatalf("PeriodKey(%s, %s) = %q, want %q", tt.cadence, tt.start, got, tt.want)
		}
	}

	if _, err := PeriodKey(Cadence("weekly"), date(2026, time.January, 1)); err == nil {
		t.Fatal("expected error for unknown cadence")
	}
}

func TestEndDate(t *testing.T) {
	tests := []struct {
		cadence Cadence
		start   time.Time
		want    time.Time
	}{
		{CadenceCasual, date(2026, time.May, 9), date(2026, time.May, 9)},
		{CadenceMonthly, date(2026, time.March, 15), date(2026, time.March, 31)},
		{CadenceMonthly, date(2024, time.February, 1), date(2024, time.February, 29)},
		{CadenceAnnual, date(2026, time.June, 1), date(2026, time.December, 31)},
		{CadenceSemiAnnual, date(2026, time.January, 1), date(2026, time.July, 1)},
	}

	for _, tt := range tests {
		got, err := EndDate(tt.cadence, tt.start)
		if err != nil {
			t.Fatalf("EndDate(%s, %s) unexpected error: %v", tt.cadence, tt.start, err)
		}
		if !got.Equal(tt.want) {
			t.Fatalf("EndDate(%s, %s) = %s, want %s", tt.cadence, tt.start, got, tt.want)
		}
	}
}

// Pins the documented semi-annual rule: add six calendar months at the same
// day-of-month, clamped to the last valid day of the target month.
func TestEndDateSemiAnnualClamping(t *testing.T) {
	tests := []struct {
		start time.Time
		want  time.Time
	}{
		{date(2026, time.August, 31), date(2027, time.February, 28)},
		{date(2023, time.August, 31), date(2024, time.February, 29)},
		{date(2026, time.March, 31), date(2026, time.September, 30)},
		{date(2026, time.July, 15), date(2027, time.January, 15)},
	}

	for _, tt := range tests {
		got, err := EndDate(CadenceSemiAnnual, tt.start)
		if err != nil {
			t.Fatalf("EndDate(semiannual, %s) unexpected error: %v", tt.start, err)
		}
		if !got.Equal(tt.want) {
			t.Fatalf("EndDate(semiannual, %s) = %s, want %s", tt.start, got, tt.want)
		}
	}
}

// End dates never precede their start date, for any cadence.
func TestEndDateMonotonicity(t *testing.T) {
	cadences := []Cadence{CadenceCasual, CadenceMonthly, CadenceSemiAnnual, CadenceAnnual}
	start := date(2024, time.January, 1)
	for d := 0; d < 730; d++ {
		day := start.AddDate(0, 0, d)
		for _, c := range cadences {
			end, err := EndDate(c, day)
			if err != nil {
				t.Fatalf("EndDate(%s, %s) unexpected error: %v", c, day, err)
			}
			if end.Before(day) {
				t.Fatalf("EndDate(%s, %s) = %s is before start", c, day, end)
			}
		}
	}
}

func TestPeriodLabel(t *testing.T) {
	session := date(2026, time.May, 9)

	tests := []struct {
		name      string
		periodKey string
		cadence   Cadence
		session   *time.Time
		want      string
	}{
		{name: "monthly", periodKey: "2026-03", cadence: CadenceMonthly, want: "March 2026"},
		{name: "semiannual H1", periodKey: "2026-H1", cadence: CadenceSemiAnnual, want: "Jan – Jun 2026"},
		{name: "semiannual H2", periodKey: "2026-H2", cadence: CadenceSemiAnnual, want: "Jul – Dec 2026"},
		{name: "annual", periodKey: "2026", cadence: CadenceAnnual, want: "2026"},
		{name: "casual with date", periodKey: "ignored", cadence: CadenceCasual, session: &session, want: "Session on 9 May 2026"},
		{name: "casual without date", cadence: CadenceCasual, want: "Casual session"},
		{name: "empty key", cadence: CadenceMonthly, want: ""},
		{name: "malformed monthly falls back to raw", periodKey: "H1-2026", cadence: CadenceMonthly, want: "H1-2026"},
		{name: "malformed half falls back to raw", periodKey: "2026-H3", cadence: CadenceSemiAnnual, want: "2026-H3"},
	}

	for _, tt := range tests {
		if got := PeriodLabel(tt.periodKey, tt.cadence, tt.session); got != tt.want {
			t.Fatalf("%s: PeriodLabel(%q) = %q, want %q", tt.name, tt.periodKey, got, tt.want)
		}
	}
}

// Round trip: computing a key from a date and labeling it again must agree
// with the date's year and sub-year component.
func TestPeriodKeyLabelRoundTrip(t *testing.T) {
	start := date(2025, time.January, 1)
	for d := 0; d < 365; d++ {
		day := start.AddDate(0, 0, d)

		key, err := PeriodKey(CadenceMonthly, day)
		if err != nil {
			t.Fatal(err)
		}
		want := day.Month().String() + " 2025"
		if got := PeriodLabel(key, CadenceMonthly, nil); got != want {
			t.Fatalf("monthly round trip for %s: got %q, want %q", day, got, want)
		}

		key, err = PeriodKey(CadenceSemiAnnual, day)
		if err != nil {
			t.Fatal(err)
		}
		want = "Jan – Jun 2025"
		if day.Month() >= time.July {
			want = "Jul – Dec 2025"
		}
		if got := PeriodLabel(key, CadenceSemiAnnual, nil); got != want {
			t.Fatalf("semiannual round trip for %s: got %q, want %q", day, got, want)
		}

		key, err = PeriodKey(CadenceAnnual, day)
		if err != nil {
			t.Fatal(err)
		}
		if got := PeriodLabel(key, CadenceAnnual, nil); got != "2025" {
			t.Fatalf("annual round trip for %s: got %q", day, got)
		}
	}
}

func TestColumnForPeriodKey(t *testing.T) {
	tests := []struct {
		periodKey string
		cadence   Cadence
		year      int
		want      string
	}{
		{"2026-01", CadenceMonthly, 2026, "Jan"},
		{"2026-03", CadenceMonthly, 2026, "Mar"},
		{"2026-12", CadenceMonthly, 2026, "Dec"},
		{"2025-03", CadenceMonthly, 2026, ""},
		{"2026-H1", CadenceSemiAnnual, 2026, "Jan–Jun"},
		{"2026-H2", CadenceSemiAnnual, 2026, "Jul–Dec"},
		{"2025-H2", CadenceSemiAnnual, 2026, ""},
		{"2026", CadenceAnnual, 2026, "Full Year"},
		{"2025", CadenceAnnual, 2026, ""},
		{"garbage", CadenceMonthly, 2026, ""},
		{"2026-13", CadenceMonthly, 2026, ""},
	}

	for _, tt := range tests {
		if got := ColumnForPeriodKey(tt.periodKey, tt.cadence, tt.year); got != tt.want {
			t.Fatalf("ColumnForPeriodKey(%q, %s, %d) = %q, want %q",
				tt.periodKey, tt.cadence, tt.year, got, tt.want)
		}
	}
}

// Every period key of a year maps to exactly one column of its cadence.
func TestColumnExclusivity(t *testing.T) {
	for _, c := range GridCadences() {
		seen := map[string]string{}
		for _, p := range CandidatePeriods(c, 2026, nil) {
			col := ColumnForPeriodKey(p.Key, c, 2026)
			if col == "" {
				t.Fatalf("period %q of cadence %s mapped to no column", p.Key, c)
			}
			if prev, dup := seen[col]; dup {
				t.Fatalf("column %q claimed by both %q and %q", col, prev, p.Key)
			}
			seen[col] = p.Key
		}
		if len(seen) != len(Columns(c)) {
			t.Fatalf("cadence %s: %d columns mapped, want %d", c, len(seen), len(Columns(c)))
		}
	}
}

func TestCandidatePeriodsFlagsGenerated(t *testing.T) {
	periods := CandidatePeriods(CadenceMonthly, 2026, []string{"2026-02", "2026-07"})
	if len(periods) != 12 {
		t.Fatalf("expected 12 monthly candidates, got %d", len(periods))
	}
	for _, p := range periods {
		wantGenerated := p.Key == "2026-02" || p.Key == "2026-07"
		if p.Generated != wantGenerated {
			t.Fatalf("candidate %q: generated = %v, want %v", p.Key, p.Generated, wantGenerated)
		}
	}

	halves := CandidatePeriods(CadenceSemiAnnual, 2026, nil)
	if len(halves) != 2 || halves[0].Key != "2026-H1" || halves[1].Key != "2026-H2" {
		t.Fatalf("unexpected semiannual candidates: %+v", halves)
	}
	if halves[0].Label != "Jan – Jun 2026" {
		t.Fatalf("unexpected H1 label %q", halves[0].Label)
	}

	annual := CandidatePeriods(CadenceAnnual, 2026, []string{"2026"})
	if len(annual) != 1 || !annual[0].Generated {
		t.Fatalf("unexpected annual candidates: %+v", annual)
	}
}

func TestPeriodStartDate(t *testing.T) {
	cases := []struct {
		cadence Cadence
		key     string
		want    string
	}{
		{CadenceMonthly, "2026-03", "2026-03-01"},
		{CadenceSemiAnnual, "2026-H1", "2026-01-01"},
		{CadenceSemiAnnual, "2026-H2", "2026-07-01"},
		{CadenceAnnual, "2026", "2026-01-01"},
		{CadenceCasual, "2026-05-09", "2026-05-09"},
	}
	for _, tc := range cases {
		got, err := PeriodStartDate(tc.cadence, tc.key)
		if err != nil {
			t.Fatalf("PeriodStartDate(%s, %q): %v", tc.cadence, tc.key, err)
		}
		if FormatISODate(got) != tc.want {
			t.Errorf("PeriodStartDate(%s, %q) = %s, want %s", tc.cadence, tc.key, FormatISODate(got), tc.want)
		}
	}

	if _, err := PeriodStartDate(CadenceMonthly, "garbage"); err == nil {
		t.Error("expected error for malformed monthly key")
	}
}

func TestFormatISODateStripsTime(t *testing.T) {
	loc := time.FixedZone("NZDT", 13*60*60)
	// 23:30 local on the 9th must stay the 9th, not shift through UTC.
	ts := time.Date(2026, time.May, 9, 23, 30, 0, 0, loc)
	if got := FormatISODate(ts); got != "2026-05-09" {
		t.Fatalf("FormatISODate = %q, want 2026-05-09", got)
	}
}
