package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrBlankName is returned when a participant name is empty after trimming.
	ErrBlankName = errors.New("participant name cannot be blank")

	// ErrNegativeAmount is returned when a participant claims to have paid less than zero.
	ErrNegativeAmount = errors.New("amount paid cannot be negative")

	// ErrDuplicateName is returned when two participants in one list share a name.
	ErrDuplicateName = errors.New("participant name already in the list")
)

// Amounts with an exponent outside [minAmountExponent, maxAmountExponent]
// count as non-numeric. Arithmetic on them would rescale to millions of digits.
const (
	minAmountExponent = -16
	maxAmountExponent = 12
)

// Participant represents one person in an equal-split group.
type Participant struct {
	// Name is the display name of the person (trimmed, non-empty).
	Name string

	// Paid is the total amount this person has contributed.
	Paid decimal.Decimal
}

// NewParticipant validates user input and builds a Participant.
// The amount is parsed permissively with ParseAmount.
func NewParticipant(name, rawPaid string) (Participant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Participant{}, ErrBlankName
	}
	paid := ParseAmount(rawPaid)
	if paid.IsNegative() {
		return Participant{}, fmt.Errorf("%s: %w", name, ErrNegativeAmount)
	}
	return Participant{Name: name, Paid: paid}, nil
}

// ParseAmount converts user-entered text into an amount.
// Blank or non-numeric input is treated as a zero contribution rather than rejected,
// and so is a number written with an out-of-range exponent such as "1e-9999999".
func ParseAmount(raw string) decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	if exp := d.Exponent(); exp < minAmountExponent || exp > maxAmountExponent {
		return decimal.Zero
	}
	return d
}

// FormatAmount renders an amount rounded to two decimal places.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// Describe renders the participant the way the roster list shows it,
// e.g. "Alice: AED 90.00".
func (p Participant) Describe(currency string) string {
	return fmt.Sprintf("%s: %s", p.Name, money(currency, p.Paid))
}

func money(currency string, d decimal.Decimal) string {
	if currency == "" {
		return FormatAmount(d)
	}
	return currency + " " + FormatAmount(d)
}
