package billing

import (
	"errors"
	"strings"
)

// Cadence is the billing frequency of a membership. It is the only
// representation used inside this package; string and numeric forms from
// forms, query params and database rows are converted at the boundary via
// ParseCadence and never propagated inward.
type Cadence string

const (
	CadenceCasual     Cadence = "casual"
	CadenceMonthly    Cadence = "monthly"
	CadenceSemiAnnual Cadence = "semiannual"
	CadenceAnnual     Cadence = "annual"
)

// ErrInvalidCadence is returned when a cadence string cannot be mapped to a
// known billing frequency.
var ErrInvalidCadence = errors.New("invalid cadence")

// ParseCadence converts an external cadence string into a Cadence. It accepts
// the spelling variants that appear in historical data ("semi-annual",
// "semi", "yearly").
func ParseCadence(s string) (Cadence, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "casual":
		return CadenceCasual, nil
	case "monthly":
		return CadenceMonthly, nil
	case "semiannual", "semi-annual", "semi":
		return CadenceSemiAnnual, nil
	case "annual", "yearly":
		return CadenceAnnual, nil
	default:
		return "", ErrInvalidCadence
	}
}

// String returns the canonical lowercase name.
func (c Cadence) String() string {
	return string(c)
}

// DisplayName returns the human label used in tabs and invoice cards.
func (c Cadence) DisplayName() string {
	switch c {
	case CadenceCasual:
		return "Casual"
	case CadenceMonthly:
		return "Monthly"
	case CadenceSemiAnnual:
		return "Semi-Annual"
	case CadenceAnnual:
		return "Annual"
	default:
		return string(c)
	}
}

// IsGrid reports whether invoices of this cadence appear in the member
// payment grid. Casual invoices get their own per-session summary instead.
func (c Cadence) IsGrid() bool {
	return c != CadenceCasual
}

// GridCadences lists the cadences shown as tabs on the payment grid.
func GridCadences() []Cadence {
	return []Cadence{CadenceMonthly, CadenceSemiAnnual, CadenceAnnual}
}
