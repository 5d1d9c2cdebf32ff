package billing

import (
	"errors"
	"time"
)

var (
	ErrMissingStartDate  = errors.New("a start date must be selected")
	ErrNoMembersSelected = errors.New("no members selected")
	ErrMissingPeriodKey  = errors.New("a billing period must be selected")
)

// IssuanceRequest is a raw request to open a new billing cycle, as it arrives
// from the new-invoice form.
type IssuanceRequest struct {
	Cadence   Cadence
	StartDate *time.Time
	PeriodKey string // selected period for non-casual cadences
	MemberIDs []uint
}

// IssuanceCommand is the normalized command submitted to the store. All
// dates are calendar-date strings (YYYY-MM-DD); time-of-day and timezone are
// stripped so a date column without a time component cannot shift by a day.
type IssuanceCommand struct {
	Cadence   Cadence
	StartDate string
	EndDate   string
	PeriodKey string
	MemberIDs []uint
}

// NormalizeIssuance validates an issuance request and derives the command to
// submit. Validation happens before any store interaction and is never
// retried: a missing start date, an empty member selection, or an
// unresolvable period key each reject the request.
//
// For the casual cadence the period key is the session date itself. For the
// other cadences the key must either be chosen explicitly or be computable
// from the start date; an explicitly chosen key wins so the form's period
// selector stays authoritative.
func NormalizeIssuance(req IssuanceRequest) (IssuanceCommand, error) {
	if req.StartDate == nil {
		return IssuanceCommand{}, ErrMissingStartDate
	}
	if len(req.MemberIDs) == 0 {
		return IssuanceCommand{}, ErrNoMembersSelected
	}

	endDate, err := EndDate(req.Cadence, *req.StartDate)
	if err != nil {
		return IssuanceCommand{}, err
	}

	periodKey := req.PeriodKey
	if req.Cadence == CadenceCasual {
		periodKey = FormatISODate(*req.StartDate)
	} else if periodKey == "" {
		periodKey, err = PeriodKey(req.Cadence, *req.StartDate)
		if err != nil {
			return IssuanceCommand{}, err
		}
	}
	if periodKey == "" {
		return IssuanceCommand{}, ErrMissingPeriodKey
	}

	return IssuanceCommand{
		Cadence:   req.Cadence,
		StartDate: FormatISODate(*req.StartDate),
		EndDate:   FormatISODate(endDate),
		PeriodKey: periodKey,
		MemberIDs: req.MemberIDs,
	}, nil
}
