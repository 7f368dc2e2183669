package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/equalsplit/internal/calculator"
	"github.com/mmynk/equalsplit/internal/metrics"
	"github.com/mmynk/equalsplit/internal/models"
	"github.com/mmynk/equalsplit/internal/storage"
	"github.com/mmynk/equalsplit/pkg/api"
)

// Ensure RosterService implements api.RosterServiceHandler
var _ api.RosterServiceHandler = (*RosterService)(nil)

// errRosterIDRequired is returned when a request names no roster.
var errRosterIDRequired = errors.New("roster_id is required")

// RosterService implements the Connect RosterService: a server-held participant
// list that can be built up one entry at a time and settled on demand.
type RosterService struct {
	store   storage.Store
	settler settler
}

// NewRosterService creates a RosterService backed by store. m may be nil.
func NewRosterService(store storage.Store, currency string, m *metrics.Metrics) *RosterService {
	return &RosterService{
		store:   store,
		settler: settler{currency: currency, metrics: m},
	}
}

// CreateRoster starts an empty roster.
func (s *RosterService) CreateRoster(ctx context.Context, req *connect.Request[api.CreateRosterRequest]) (*connect.Response[api.CreateRosterResponse], error) {
	roster, err := s.store.CreateRoster(ctx, &models.Roster{})
	if err != nil {
		slog.Error("CreateRoster failed", "error", err)
		return nil, connectError(err)
	}
	slog.Info("Roster created", "roster_id", roster.ID)
	return connect.NewResponse(&api.CreateRosterResponse{Roster: toAPIRoster(roster)}), nil
}

// GetRoster returns the participants of a roster in insertion order.
func (s *RosterService) GetRoster(ctx context.Context, req *connect.Request[api.GetRosterRequest]) (*connect.Response[api.GetRosterResponse], error) {
	if req.Msg.RosterID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errRosterIDRequired)
	}
	roster, err := s.store.GetRoster(ctx, req.Msg.RosterID)
	if err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(&api.GetRosterResponse{Roster: toAPIRoster(roster)}), nil
}

// AddParticipant appends a participant. Blank names, names already in the
// roster and negative amounts are rejected; a non-numeric amount counts as zero.
func (s *RosterService) AddParticipant(ctx context.Context, req *connect.Request[api.AddParticipantRequest]) (*connect.Response[api.AddParticipantResponse], error) {
	if req.Msg.RosterID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errRosterIDRequired)
	}
	p, err := models.NewParticipant(req.Msg.Name, req.Msg.Paid)
	if err != nil {
		return nil, connectError(err)
	}

	roster, err := s.store.AddParticipant(ctx, req.Msg.RosterID, p)
	if err != nil {
		return nil, connectError(err)
	}
	slog.Debug("Participant added",
		"roster_id", roster.ID,
		"name", p.Name,
		"paid", p.Paid.String(),
		"count", len(roster.Participants),
	)
	return connect.NewResponse(&api.AddParticipantResponse{Roster: toAPIRoster(roster)}), nil
}

// RemoveParticipant removes the participant at the given position.
func (s *RosterService) RemoveParticipant(ctx context.Context, req *connect.Request[api.RemoveParticipantRequest]) (*connect.Response[api.RemoveParticipantResponse], error) {
	if req.Msg.RosterID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errRosterIDRequired)
	}
	roster, removed, err := s.store.RemoveParticipant(ctx, req.Msg.RosterID, int(req.Msg.Index))
	if err != nil {
		return nil, connectError(err)
	}
	slog.Debug("Participant removed",
		"roster_id", roster.ID,
		"name", removed.Name,
		"count", len(roster.Participants),
	)
	return connect.NewResponse(&api.RemoveParticipantResponse{Roster: toAPIRoster(roster)}), nil
}

// SettleRoster computes the transfers for the roster's current participants.
// An empty roster is a failed precondition: the caller should ask the user to
// add participants first.
func (s *RosterService) SettleRoster(ctx context.Context, req *connect.Request[api.SettleRosterRequest]) (*connect.Response[api.SettleResponse], error) {
	if req.Msg.RosterID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errRosterIDRequired)
	}
	roster, err := s.store.GetRoster(ctx, req.Msg.RosterID)
	if err != nil {
		return nil, connectError(err)
	}

	resp, err := s.settler.settle(roster.Participants)
	if errors.Is(err, calculator.ErrNoParticipants) {
		return nil, connect.NewError(connect.CodeFailedPrecondition, fmt.Errorf("no participants added: %w", err))
	}
	if err != nil {
		slog.Error("SettleRoster failed", "roster_id", roster.ID, "error", err)
		return nil, connectError(err)
	}

	slog.Info("Roster settled",
		"roster_id", roster.ID,
		"participants", len(roster.Participants),
		"transfers", len(resp.Transfers),
	)
	return connect.NewResponse(resp), nil
}

// DeleteRoster discards a roster.
func (s *RosterService) DeleteRoster(ctx context.Context, req *connect.Request[api.DeleteRosterRequest]) (*connect.Response[api.DeleteRosterResponse], error) {
	if req.Msg.RosterID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errRosterIDRequired)
	}
	if err := s.store.DeleteRoster(ctx, req.Msg.RosterID); err != nil {
		return nil, connectError(err)
	}
	slog.Info("Roster deleted", "roster_id", req.Msg.RosterID)
	return connect.NewResponse(&api.DeleteRosterResponse{}), nil
}
