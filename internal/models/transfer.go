package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Transfer is one payment that moves money from a debtor to a creditor.
// Transfers are output only and are recomputed in full on every settlement.
type Transfer struct {
	// From is the name of the participant who pays.
	From string

	// To is the name of the participant who receives.
	To string

	// Amount is the full-precision amount to move. Always positive.
	Amount decimal.Decimal
}

// Describe renders the transfer for display, e.g. "Bob pays Alice AED 40.00".
func (t Transfer) Describe(currency string) string {
	return fmt.Sprintf("%s pays %s %s", t.From, t.To, money(currency, t.Amount))
}
