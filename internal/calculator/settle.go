package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/equalsplit/internal/models"
)

// party is a creditor or debtor with the magnitude still to settle.
type party struct {
	name      string
	remaining decimal.Decimal
}

// Settle computes the transfers that bring every participant to the equal share.
// It returns ErrNoParticipants for an empty list.
//
// The input is only read; the result is freshly allocated on every call, so
// Settle is safe to call concurrently.
func Settle(participants []models.Participant) ([]models.Transfer, error) {
	summary, err := Summarize(participants)
	if err != nil {
		return nil, err
	}
	return Match(summary.Balances), nil
}

// Match pairs debtors with creditors using first-in first-out greedy matching.
//
// Algorithm:
// - Creditors (net > 0) and debtors (net < 0) keep their input order
// - The front debtor pays the front creditor min(credit, debt)
// - Whoever reaches zero is skipped; repeat until one side runs out
//
// This is not an optimal-count minimizer, but it never emits more than
// creditors + debtors - 1 transfers. Balances within 1e-9 of zero count as settled.
func Match(balances []MemberBalance) []models.Transfer {
	var creditors, debtors []party
	for _, b := range balances {
		if settled(b.Net) {
			continue
		}
		if b.Net.IsPositive() {
			creditors = append(creditors, party{name: b.Name, remaining: b.Net})
		} else {
			debtors = append(debtors, party{name: b.Name, remaining: b.Net.Neg()})
		}
	}

	transfers := make([]models.Transfer, 0)
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor := &debtors[i]
		creditor := &creditors[j]

		amount := decimal.Min(debtor.remaining, creditor.remaining)
		transfers = append(transfers, models.Transfer{
			From:   debtor.name,
			To:     creditor.name,
			Amount: amount,
		})

		debtor.remaining = debtor.remaining.Sub(amount)
		creditor.remaining = creditor.remaining.Sub(amount)

		if settled(debtor.remaining) {
			i++
		}
		if settled(creditor.remaining) {
			j++
		}
	}

	return transfers
}
