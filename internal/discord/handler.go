package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mmynk/equalsplit/internal/calculator"
	"github.com/mmynk/equalsplit/internal/metrics"
	"github.com/mmynk/equalsplit/internal/models"
	"github.com/mmynk/equalsplit/internal/storage"
)

// Args carries the options of one /split invocation.
type Args struct {
	Name    string
	Amount  string
	Index   int // 1-based
	Entries string
}

// Handler executes /split subcommands against per-channel rosters.
// It knows nothing about the Discord session so it can be driven directly.
type Handler struct {
	store    storage.Store
	currency string
	metrics  *metrics.Metrics
}

// NewHandler creates a Handler. m may be nil.
func NewHandler(store storage.Store, currency string, m *metrics.Metrics) *Handler {
	return &Handler{store: store, currency: currency, metrics: m}
}

// rosterID maps a channel to its roster.
func rosterID(channelID string) string {
	return "discord:" + channelID
}

// Execute runs a subcommand for a channel and returns the reply text.
// User mistakes become friendly replies; only store failures are errors.
func (h *Handler) Execute(ctx context.Context, channelID, sub string, args Args) (string, error) {
	if sub == subQuick {
		return h.quick(args.Entries), nil
	}

	roster, err := h.store.CreateRoster(ctx, &models.Roster{ID: rosterID(channelID)})
	if err != nil {
		return "", fmt.Errorf("failed to open roster: %w", err)
	}

	switch sub {
	case subAdd:
		p, err := models.NewParticipant(args.Name, args.Amount)
		if errors.Is(err, models.ErrBlankName) {
			return "Please give the participant a name.", nil
		}
		if errors.Is(err, models.ErrNegativeAmount) {
			return "The amount paid cannot be negative.", nil
		}
		if err != nil {
			return "", err
		}
		roster, err = h.store.AddParticipant(ctx, roster.ID, p)
		if errors.Is(err, models.ErrDuplicateName) {
			return fmt.Sprintf("%s is already in the list. Remove them first to change the amount.", p.Name), nil
		}
		if err != nil {
			return "", fmt.Errorf("failed to add participant: %w", err)
		}
		return fmt.Sprintf("Added %s (%d in the list).", p.Describe(h.currency), len(roster.Participants)), nil

	case subRemove:
		updated, removed, err := h.store.RemoveParticipant(ctx, roster.ID, args.Index-1)
		if errors.Is(err, storage.ErrIndexOutOfRange) {
			return fmt.Sprintf("There is no participant #%d. Use `/split list` to see positions.", args.Index), nil
		}
		if err != nil {
			return "", fmt.Errorf("failed to remove participant: %w", err)
		}
		return fmt.Sprintf("Removed %s (%d left).", removed.Name, len(updated.Participants)), nil

	case subList:
		return renderRoster(roster, h.currency), nil

	case subSettle:
		return h.settle(roster.Participants), nil

	case subClear:
		if _, err := h.store.ClearRoster(ctx, roster.ID); err != nil {
			return "", fmt.Errorf("failed to clear roster: %w", err)
		}
		return "Cleared the participant list.", nil

	default:
		return fmt.Sprintf("Unknown subcommand %q.", sub), nil
	}
}

func (h *Handler) quick(entries string) string {
	participants, err := ParseEntries(entries)
	if err != nil {
		return fmt.Sprintf("Could not read the list: %v", err)
	}
	return h.settle(participants)
}

func (h *Handler) settle(participants []models.Participant) string {
	summary, err := calculator.Summarize(participants)
	if errors.Is(err, calculator.ErrNoParticipants) {
		h.metrics.ObserveSettlement(metrics.OutcomeNoParticipants, 0, 0)
		return "No participants added! Use `/split add` first."
	}
	if err != nil {
		h.metrics.ObserveSettlement(metrics.OutcomeInvalidArgument, len(participants), 0)
		return fmt.Sprintf("Cannot settle: %v", err)
	}
	transfers := calculator.Match(summary.Balances)
	h.metrics.ObserveSettlement(metrics.OutcomeOK, len(participants), len(transfers))

	slog.Debug("Discord settlement", "participants", len(participants), "transfers", len(transfers))
	return renderTransfers(summary.Share, transfers, h.currency)
}
