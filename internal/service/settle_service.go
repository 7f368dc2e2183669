package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/equalsplit/internal/metrics"
	"github.com/mmynk/equalsplit/pkg/api"
)

// Ensure SettleService implements api.SettleServiceHandler
var _ api.SettleServiceHandler = (*SettleService)(nil)

// SettleService implements the stateless Connect SettleService.
type SettleService struct {
	settler settler
}

// NewSettleService creates a SettleService that labels amounts with currency.
// m may be nil.
func NewSettleService(currency string, m *metrics.Metrics) *SettleService {
	return &SettleService{settler: settler{currency: currency, metrics: m}}
}

// Settle computes the transfers for the participants in the request.
func (s *SettleService) Settle(ctx context.Context, req *connect.Request[api.SettleRequest]) (*connect.Response[api.SettleResponse], error) {
	participants, err := fromAPIParticipants(req.Msg.Participants)
	if err != nil {
		return nil, connectError(err)
	}

	resp, err := s.settler.settle(participants)
	if err != nil {
		return nil, connectError(err)
	}

	slog.Debug("Settled",
		"participants", len(participants),
		"share", resp.Share,
		"transfers", len(resp.Transfers),
	)
	return connect.NewResponse(resp), nil
}
