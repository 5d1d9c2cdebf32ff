package billing

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Period key formats per cadence:
//
//	monthly     "2026-03"
//	semiannual  "2026-H1" / "2026-H2"
//	annual      "2026"
//	casual      "2026-05-09" (the session date)
//
// For non-casual cadences the key is computed from the cycle start date and
// must never be hand-entered inconsistently with it.

const isoDate = "2006-01-02"

var monthColumns = []string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

var halfYearColumns = []string{"Jan–Jun", "Jul–Dec"}

const fullYearColumn = "Full Year"

// EndDate computes the due/end date of a billing cycle starting at start.
//
// SemiAnnual advances six calendar months keeping the day-of-month, clamped
// to the last valid day of the target month (2026-08-31 -> 2027-02-28). The
// source system had two competing rules here; this one is the documented
// choice and is pinned by TestEndDateSemiAnnualClamping.
func EndDate(cadence Cadence, start time.Time) (time.Time, error) {
	switch cadence {
	case CadenceCasual:
		return start, nil
	case CadenceMonthly:
		return endOfMonth(start), nil
	case CadenceSemiAnnual:
		return addMonthsClamped(start, 6), nil
	case CadenceAnnual:
		return time.Date(start.Year(), time.December, 31, 0, 0, 0, 0, start.Location()), nil
	default:
		return time.Time{}, ErrInvalidCadence
	}
}

// PeriodKey computes the canonical period identifier for a cycle starting at
// start. Total over valid dates.
func PeriodKey(cadence Cadence, start time.Time) (string, error) {
	switch cadence {
	case CadenceCasual:
		return start.Format(isoDate), nil
	case CadenceMonthly:
		return fmt.Sprintf("%04d-%02d", start.Year(), int(start.Month())), nil
	case CadenceSemiAnnual:
		half := "H1"
		if start.Month() >= time.July {
			half = "H2"
		}
		return fmt.Sprintf("%04d-%s", start.Year(), half), nil
	case CadenceAnnual:
		return fmt.Sprintf("%04d", start.Year()), nil
	default:
		return "", ErrInvalidCadence
	}
}

// PeriodLabel renders a period key as the human-readable invoice term.
// Casual labels are built from the session date and ignore the key. A key
// that does not match the expected shape for the cadence is returned
// unchanged; existing display paths rely on that fallback, so it must not be
// replaced with an error.
func PeriodLabel(periodKey string, cadence Cadence, sessionDate *time.Time) string {
	if cadence == CadenceCasual {
		if sessionDate == nil {
			return "Casual session"
		}
		return fmt.Sprintf("Session on %d %s %d",
			sessionDate.Day(), sessionDate.Format("Jan"), sessionDate.Year())
	}

	if periodKey == "" {
		return ""
	}

	switch cadence {
	case CadenceMonthly:
		year, month, ok := splitMonthlyKey(periodKey)
		if !ok {
			return periodKey
		}
		return fmt.Sprintf("%s %d", time.Month(month).String(), year)
	case CadenceSemiAnnual:
		year, half, ok := splitSemiAnnualKey(periodKey)
		if !ok {
			return periodKey
		}
		if half == 1 {
			return fmt.Sprintf("Jan – Jun %d", year)
		}
		return fmt.Sprintf("Jul – Dec %d", year)
	case CadenceAnnual:
		return periodKey
	default:
		return periodKey
	}
}

// ColumnForPeriodKey maps a period key onto the grid column label for the
// selected year. It returns "" when the key's year component differs from
// selectedYear (the period simply renders no cell) or when the key shape does
// not match the cadence. Every key maps to at most one column.
func ColumnForPeriodKey(periodKey string, cadence Cadence, selectedYear int) string {
	if !strings.HasPrefix(periodKey, strconv.Itoa(selectedYear)) {
		return ""
	}

	switch cadence {
	case CadenceMonthly:
		year, month, ok := splitMonthlyKey(periodKey)
		if !ok || year != selectedYear {
			return ""
		}
		return monthColumns[month-1]
	case CadenceSemiAnnual:
		year, half, ok := splitSemiAnnualKey(periodKey)
		if !ok || year != selectedYear {
			return ""
		}
		return halfYearColumns[half-1]
	case CadenceAnnual:
		if periodKey != strconv.Itoa(selectedYear) {
			return ""
		}
		return fullYearColumn
	default:
		return ""
	}
}

// Columns returns the grid column set for a cadence: twelve month
// abbreviations, two half-year ranges, or the single full-year column.
func Columns(cadence Cadence) []string {
	switch cadence {
	case CadenceMonthly:
		return append([]string(nil), monthColumns...)
	case CadenceSemiAnnual:
		return append([]string(nil), halfYearColumns...)
	case CadenceAnnual:
		return []string{fullYearColumn}
	default:
		return nil
	}
}

// CandidatePeriod is one selectable billing period in the new-invoice form.
type CandidatePeriod struct {
	Key       string
	Label     string
	StartDate time.Time
	Generated bool // an invoice with this key already exists (soft warning only)
}

// CandidatePeriods generates the selectable periods of a cadence for one
// year, flagging keys that already have a generated invoice. Issuance of a
// flagged period stays permitted; duplicate prevention, if any, belongs to
// the store.
func CandidatePeriods(cadence Cadence, year int, existingKeys []string) []CandidatePeriod {
	existing := make(map[string]struct{}, len(existingKeys))
	for _, k := range existingKeys {
		existing[k] = struct{}{}
	}

	mark := func(p CandidatePeriod) CandidatePeriod {
		_, p.Generated = existing[p.Key]
		return p
	}

	switch cadence {
	case CadenceMonthly:
		periods := make([]CandidatePeriod, 0, 12)
		for m := time.January; m <= time.December; m++ {
			start := time.Date(year, m, 1, 0, 0, 0, 0, time.UTC)
			key := fmt.Sprintf("%04d-%02d", year, int(m))
			periods = append(periods, mark(CandidatePeriod{
				Key:       key,
				Label:     fmt.Sprintf("%s %d", m.String(), year),
				StartDate: start,
			}))
		}
		return periods
	case CadenceSemiAnnual:
		return []CandidatePeriod{
			mark(CandidatePeriod{
				Key:       fmt.Sprintf("%04d-H1", year),
				Label:     fmt.Sprintf("Jan – Jun %d", year),
				StartDate: time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
			}),
			mark(CandidatePeriod{
				Key:       fmt.Sprintf("%04d-H2", year),
				Label:     fmt.Sprintf("Jul – Dec %d", year),
				StartDate: time.Date(year, time.July, 1, 0, 0, 0, 0, time.UTC),
			}),
		}
	case CadenceAnnual:
		return []CandidatePeriod{
			mark(CandidatePeriod{
				Key:       strconv.Itoa(year),
				Label:     strconv.Itoa(year),
				StartDate: time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
			}),
		}
	default:
		return nil
	}
}

// PeriodStartDate resolves a period key back to the canonical cycle start
// date: the first of the month, half-year or year, or the session date
// itself for casual keys. The inverse of PeriodKey for canonical starts.
func PeriodStartDate(cadence Cadence, periodKey string) (time.Time, error) {
	switch cadence {
	case CadenceCasual:
		return time.Parse(isoDate, periodKey)
	case CadenceMonthly:
		year, month, ok := splitMonthlyKey(periodKey)
		if !ok {
			return time.Time{}, fmt.Errorf("malformed monthly period key %q", periodKey)
		}
		return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC), nil
	case CadenceSemiAnnual:
		year, half, ok := splitSemiAnnualKey(periodKey)
		if !ok {
			return time.Time{}, fmt.Errorf("malformed semiannual period key %q", periodKey)
		}
		month := time.January
		if half == 2 {
			month = time.July
		}
		return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC), nil
	case CadenceAnnual:
		year, err := strconv.Atoi(periodKey)
		if err != nil {
			return time.Time{}, fmt.Errorf("malformed annual period key %q", periodKey)
		}
		return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC), nil
	default:
		return time.Time{}, ErrInvalidCadence
	}
}

// FormatISODate normalizes a date to the calendar-date string submitted to
// the store. Time-of-day and timezone offset are stripped so a date column
// without a time component cannot shift by a day.
func FormatISODate(t time.Time) string {
	return t.Format(isoDate)
}

func endOfMonth(t time.Time) time.Time {
	firstOfNext := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).AddDate(0, 1, 0)
	return firstOfNext.AddDate(0, 0, -1)
}

func addMonthsClamped(t time.Time, months int) time.Time {
	year := t.Year()
	month := int(t.Month()) - 1 + months
	year += month / 12
	month = month % 12

	last := endOfMonth(time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, t.Location())).Day()
	day := t.Day()
	if day > last {
		day = last
	}
	return time.Date(year, time.Month(month+1), day, 0, 0, 0, 0, t.Location())
}

func splitMonthlyKey(key string) (year, month int, ok bool) {
	parts := strings.SplitN(key, "-", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	y, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 1 || m > 12 {
		return 0, 0, false
	}
	return y, m, true
}

func splitSemiAnnualKey(key string) (year, half int, ok bool) {
	parts := strings.SplitN(key, "-", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	y, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}
	switch parts[1] {
	case "H1":
		return y, 1, true
	case "H2":
		return y, 2, true
	default:
		return 0, 0, false
	}
}
