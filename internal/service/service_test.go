package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/equalsplit/internal/metrics"
	"github.com/mmynk/equalsplit/internal/middleware"
	"github.com/mmynk/equalsplit/internal/storage/memory"
	"github.com/mmynk/equalsplit/pkg/api"
)

type testClients struct {
	settle  api.SettleServiceClient
	roster  api.RosterServiceClient
	metrics *metrics.Metrics
}

// setupTestServer serves both services from an in-memory store.
func setupTestServer(t *testing.T) testClients {
	t.Helper()

	store := memory.New(0)
	m := metrics.New(store.Len)
	interceptors := connect.WithInterceptors(
		middleware.LoggingInterceptor(),
		middleware.MetricsInterceptor(m),
	)

	mux := http.NewServeMux()
	mux.Handle(api.NewSettleServiceHandler(NewSettleService("AED", m), interceptors))
	mux.Handle(api.NewRosterServiceHandler(NewRosterService(store, "AED", m), interceptors))

	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		server.Close()
		store.Close()
	})

	return testClients{
		settle:  api.NewSettleServiceClient(server.Client(), server.URL),
		roster:  api.NewRosterServiceClient(server.Client(), server.URL),
		metrics: m,
	}
}

func transferTuples(ts []api.Transfer) [][3]string {
	out := make([][3]string, len(ts))
	for i, t := range ts {
		out[i] = [3]string{t.From, t.To, t.Amount}
	}
	return out
}

func TestSettle(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()

	t.Run("three participants", func(t *testing.T) {
		resp, err := c.settle.Settle(ctx, connect.NewRequest(&api.SettleRequest{
			Participants: []api.Participant{
				{Name: "A", Paid: "90"},
				{Name: "B", Paid: "0"},
				{Name: "C", Paid: "30"},
			},
		}))
		require.NoError(t, err)

		assert.Equal(t, "AED", resp.Msg.Currency)
		assert.Equal(t, "120", resp.Msg.Total)
		assert.Equal(t, "40", resp.Msg.Share)
		assert.Equal(t, [][3]string{{"B", "A", "40"}, {"C", "A", "10"}}, transferTuples(resp.Msg.Transfers))
		assert.Equal(t, "B pays A AED 40.00", resp.Msg.Transfers[0].Display)

		require.Len(t, resp.Msg.Balances, 3)
		assert.Equal(t, "50", resp.Msg.Balances[0].Net)
		assert.Equal(t, "-40", resp.Msg.Balances[1].Net)
	})

	t.Run("non-numeric amount counts as zero", func(t *testing.T) {
		resp, err := c.settle.Settle(ctx, connect.NewRequest(&api.SettleRequest{
			Participants: []api.Participant{
				{Name: "A", Paid: "100"},
				{Name: "B", Paid: "lots"},
			},
		}))
		require.NoError(t, err)
		assert.Equal(t, [][3]string{{"B", "A", "50"}}, transferTuples(resp.Msg.Transfers))
	})

	t.Run("all equal yields no transfers", func(t *testing.T) {
		resp, err := c.settle.Settle(ctx, connect.NewRequest(&api.SettleRequest{
			Participants: []api.Participant{{Name: "A", Paid: "10"}, {Name: "B", Paid: "10"}},
		}))
		require.NoError(t, err)
		assert.Empty(t, resp.Msg.Transfers)
	})

	t.Run("out of range exponent counts as zero", func(t *testing.T) {
		resp, err := c.settle.Settle(ctx, connect.NewRequest(&api.SettleRequest{
			Participants: []api.Participant{
				{Name: "A", Paid: "1e-20000000"},
				{Name: "B", Paid: "0"},
			},
		}))
		require.NoError(t, err)
		assert.Equal(t, "0", resp.Msg.Total)
		assert.Empty(t, resp.Msg.Transfers)
	})

	t.Run("duplicate names are invalid", func(t *testing.T) {
		_, err := c.settle.Settle(ctx, connect.NewRequest(&api.SettleRequest{
			Participants: []api.Participant{{Name: "A", Paid: "100"}, {Name: "A", Paid: "0"}},
		}))
		assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))
	})

	t.Run("empty input is invalid", func(t *testing.T) {
		_, err := c.settle.Settle(ctx, connect.NewRequest(&api.SettleRequest{}))
		require.Error(t, err)
		assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))
	})

	t.Run("blank name is invalid", func(t *testing.T) {
		_, err := c.settle.Settle(ctx, connect.NewRequest(&api.SettleRequest{
			Participants: []api.Participant{{Name: " ", Paid: "10"}},
		}))
		assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))
	})

	t.Run("negative amount is invalid", func(t *testing.T) {
		_, err := c.settle.Settle(ctx, connect.NewRequest(&api.SettleRequest{
			Participants: []api.Participant{{Name: "A", Paid: "-10"}},
		}))
		assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))
	})

	assert.Equal(t, 4.0, testutil.ToFloat64(c.metrics.Settlements.WithLabelValues(metrics.OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.metrics.Settlements.WithLabelValues(metrics.OutcomeNoParticipants)))
}

func TestRosterLifecycle(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()

	created, err := c.roster.CreateRoster(ctx, connect.NewRequest(&api.CreateRosterRequest{}))
	require.NoError(t, err)
	id := created.Msg.Roster.ID
	require.NotEmpty(t, id)

	// Settling before anyone is added is refused
	_, err = c.roster.SettleRoster(ctx, connect.NewRequest(&api.SettleRosterRequest{RosterID: id}))
	assert.Equal(t, connect.CodeFailedPrecondition, connect.CodeOf(err))

	for _, p := range []api.AddParticipantRequest{
		{Name: "A", Paid: "90"},
		{Name: "Mallory", Paid: "5"},
		{Name: "B"},
		{Name: "C", Paid: "30"},
	} {
		p.RosterID = id
		_, err := c.roster.AddParticipant(ctx, connect.NewRequest(&p))
		require.NoError(t, err)
	}

	// Blank and repeated names are not added
	_, err = c.roster.AddParticipant(ctx, connect.NewRequest(&api.AddParticipantRequest{RosterID: id, Name: "  "}))
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))
	_, err = c.roster.AddParticipant(ctx, connect.NewRequest(&api.AddParticipantRequest{RosterID: id, Name: "A", Paid: "0"}))
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))

	removed, err := c.roster.RemoveParticipant(ctx, connect.NewRequest(&api.RemoveParticipantRequest{RosterID: id, Index: 1}))
	require.NoError(t, err)
	require.Len(t, removed.Msg.Roster.Participants, 3)
	assert.Equal(t, "B", removed.Msg.Roster.Participants[1].Name)
	assert.Equal(t, "0", removed.Msg.Roster.Participants[1].Paid)

	_, err = c.roster.RemoveParticipant(ctx, connect.NewRequest(&api.RemoveParticipantRequest{RosterID: id, Index: 7}))
	assert.Equal(t, connect.CodeOutOfRange, connect.CodeOf(err))

	got, err := c.roster.GetRoster(ctx, connect.NewRequest(&api.GetRosterRequest{RosterID: id}))
	require.NoError(t, err)
	assert.Len(t, got.Msg.Roster.Participants, 3)

	settled, err := c.roster.SettleRoster(ctx, connect.NewRequest(&api.SettleRosterRequest{RosterID: id}))
	require.NoError(t, err)
	assert.Equal(t, [][3]string{{"B", "A", "40"}, {"C", "A", "10"}}, transferTuples(settled.Msg.Transfers))

	// Settling again gives the same answer
	again, err := c.roster.SettleRoster(ctx, connect.NewRequest(&api.SettleRosterRequest{RosterID: id}))
	require.NoError(t, err)
	assert.Equal(t, settled.Msg.Transfers, again.Msg.Transfers)

	_, err = c.roster.DeleteRoster(ctx, connect.NewRequest(&api.DeleteRosterRequest{RosterID: id}))
	require.NoError(t, err)
	_, err = c.roster.GetRoster(ctx, connect.NewRequest(&api.GetRosterRequest{RosterID: id}))
	assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))
}

func TestRosterRequiresID(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()

	_, err := c.roster.GetRoster(ctx, connect.NewRequest(&api.GetRosterRequest{}))
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))
	_, err = c.roster.AddParticipant(ctx, connect.NewRequest(&api.AddParticipantRequest{Name: "A"}))
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))
	_, err = c.roster.SettleRoster(ctx, connect.NewRequest(&api.SettleRosterRequest{RosterID: "missing"}))
	assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))
}
