package calculator

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/equalsplit/internal/models"
)

var (
	// ErrNoParticipants is returned when there is nobody to split between.
	ErrNoParticipants = errors.New("must have at least one participant")

	// ErrNegativeAmount is returned when a participant has a negative contribution.
	ErrNegativeAmount = models.ErrNegativeAmount

	// ErrDuplicateName is returned when two participants share a name, which
	// would make a transfer ambiguous.
	ErrDuplicateName = models.ErrDuplicateName
)

// epsilon is the magnitude below which a balance counts as settled.
var epsilon = decimal.New(1, -9)

// MemberBalance represents the balance information for one participant.
type MemberBalance struct {
	Name string
	Paid decimal.Decimal
	Net  decimal.Decimal // Positive = owed money, Negative = owes money
}

// Summary describes how a group's spending compares to the equal share.
type Summary struct {
	Total    decimal.Decimal
	Share    decimal.Decimal
	Balances []MemberBalance // in input order
}

// Summarize computes the total paid, the equal share and each participant's
// net balance against that share.
//
// Algorithm:
// - total = sum of paid
// - share = total / participant count (not rounded)
// - net = paid - share
func Summarize(participants []models.Participant) (Summary, error) {
	if len(participants) == 0 {
		return Summary{}, ErrNoParticipants
	}

	total := decimal.Zero
	seen := make(map[string]struct{}, len(participants))
	for _, p := range participants {
		if p.Paid.IsNegative() {
			return Summary{}, fmt.Errorf("%s paid %s: %w", p.Name, p.Paid, ErrNegativeAmount)
		}
		if _, ok := seen[p.Name]; ok {
			return Summary{}, fmt.Errorf("%s: %w", p.Name, ErrDuplicateName)
		}
		seen[p.Name] = struct{}{}
		total = total.Add(p.Paid)
	}
	share := total.Div(decimal.NewFromInt(int64(len(participants))))

	balances := make([]MemberBalance, len(participants))
	for i, p := range participants {
		balances[i] = MemberBalance{
			Name: p.Name,
			Paid: p.Paid,
			Net:  p.Paid.Sub(share),
		}
	}

	return Summary{Total: total, Share: share, Balances: balances}, nil
}

// settled reports whether a balance is close enough to zero to ignore.
func settled(d decimal.Decimal) bool {
	return d.Abs().LessThanOrEqual(epsilon)
}
