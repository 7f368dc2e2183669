package discord

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/equalsplit/internal/models"
)

// ParseEntries reads a one-line participant list such as
// "Alice 90, Bob, Carol=30.5". Entries are separated by commas, semicolons or
// newlines. The last word of an entry is its amount when it is numeric;
// otherwise the whole entry is the name and the amount is zero.
// Blank entries are skipped.
func ParseEntries(raw string) ([]models.Participant, error) {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';' || r == '\n'
	})

	var out []models.Participant
	for _, field := range fields {
		name, amount := splitEntry(field)
		p, err := models.NewParticipant(name, amount)
		if errors.Is(err, models.ErrBlankName) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func splitEntry(entry string) (name, amount string) {
	entry = strings.TrimSpace(entry)
	if n, a, ok := strings.Cut(entry, "="); ok {
		return n, a
	}
	if i := strings.LastIndexAny(entry, " \t"); i >= 0 {
		if _, err := decimal.NewFromString(entry[i+1:]); err == nil {
			return entry[:i], entry[i+1:]
		}
	}
	return entry, ""
}

// renderRoster lists participants with 1-based positions for /split remove.
func renderRoster(r *models.Roster, currency string) string {
	if len(r.Participants) == 0 {
		return "No participants yet. Use `/split add` to add someone."
	}
	var b strings.Builder
	b.WriteString("**Participants**\n")
	for i, p := range r.Participants {
		fmt.Fprintf(&b, "%d. %s\n", i+1, p.Describe(currency))
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderTransfers formats a settlement as a "who pays whom" list.
func renderTransfers(share decimal.Decimal, transfers []models.Transfer, currency string) string {
	if len(transfers) == 0 {
		return "Everyone has paid an equal share. Nothing to settle."
	}
	var b strings.Builder
	label := models.FormatAmount(share)
	if currency != "" {
		label = currency + " " + label
	}
	fmt.Fprintf(&b, "**Who Pays Whom** (equal share %s)\n", label)
	for _, t := range transfers {
		b.WriteString(t.Describe(currency))
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}
