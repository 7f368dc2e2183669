package service

import (
	"context"
	"errors"
	"fmt"

	"connectrpc.com/connect"

	"github.com/mmynk/equalsplit/internal/calculator"
	"github.com/mmynk/equalsplit/internal/metrics"
	"github.com/mmynk/equalsplit/internal/models"
	"github.com/mmynk/equalsplit/internal/storage"
	"github.com/mmynk/equalsplit/pkg/api"
)

// settler runs the calculator and renders its result for the wire.
// It is shared by the one-shot and roster services.
type settler struct {
	currency string
	metrics  *metrics.Metrics
}

func (s settler) settle(participants []models.Participant) (*api.SettleResponse, error) {
	summary, err := calculator.Summarize(participants)
	if err != nil {
		outcome := metrics.OutcomeInvalidArgument
		if errors.Is(err, calculator.ErrNoParticipants) {
			outcome = metrics.OutcomeNoParticipants
		}
		s.metrics.ObserveSettlement(outcome, len(participants), 0)
		return nil, err
	}
	transfers := calculator.Match(summary.Balances)
	s.metrics.ObserveSettlement(metrics.OutcomeOK, len(participants), len(transfers))

	resp := &api.SettleResponse{
		Currency:  s.currency,
		Total:     summary.Total.String(),
		Share:     summary.Share.String(),
		Balances:  make([]api.Balance, len(summary.Balances)),
		Transfers: make([]api.Transfer, len(transfers)),
	}
	for i, b := range summary.Balances {
		resp.Balances[i] = api.Balance{
			Name: b.Name,
			Paid: b.Paid.String(),
			Net:  b.Net.String(),
		}
	}
	for i, t := range transfers {
		resp.Transfers[i] = api.Transfer{
			From:    t.From,
			To:      t.To,
			Amount:  t.Amount.String(),
			Display: t.Describe(s.currency),
		}
	}
	return resp, nil
}

// fromAPIParticipants validates wire participants with the add-participant rules.
func fromAPIParticipants(in []api.Participant) ([]models.Participant, error) {
	out := make([]models.Participant, 0, len(in))
	for i, p := range in {
		mp, err := models.NewParticipant(p.Name, p.Paid)
		if err != nil {
			return nil, fmt.Errorf("participant %d: %w", i, err)
		}
		out = append(out, mp)
	}
	return out, nil
}

func toAPIRoster(r *models.Roster) *api.Roster {
	out := &api.Roster{
		ID:           r.ID,
		Participants: make([]api.Participant, len(r.Participants)),
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
	for i, p := range r.Participants {
		out.Participants[i] = api.Participant{Name: p.Name, Paid: p.Paid.String()}
	}
	return out
}

// connectError maps domain errors onto Connect status codes.
func connectError(err error) *connect.Error {
	switch {
	case errors.Is(err, models.ErrBlankName),
		errors.Is(err, models.ErrNegativeAmount),
		errors.Is(err, models.ErrDuplicateName),
		errors.Is(err, calculator.ErrNoParticipants):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, storage.ErrRosterNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, storage.ErrIndexOutOfRange):
		return connect.NewError(connect.CodeOutOfRange, err)
	case errors.Is(err, context.Canceled):
		return connect.NewError(connect.CodeCanceled, err)
	case errors.Is(err, context.DeadlineExceeded):
		return connect.NewError(connect.CodeDeadlineExceeded, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}
