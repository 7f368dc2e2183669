package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/equalsplit/internal/config"
	"github.com/mmynk/equalsplit/internal/metrics"
	"github.com/mmynk/equalsplit/internal/middleware"
	"github.com/mmynk/equalsplit/internal/storage/memory"
	"github.com/mmynk/equalsplit/pkg/api"
)

func newTestServer(t *testing.T, rpm int) *httptest.Server {
	t.Helper()
	cfg := &config.Config{
		Server:    config.ServerConfig{Port: 8080},
		Log:       config.LogConfig{Format: "text"},
		CORS:      config.CORSConfig{AllowedOrigins: []string{"https://app.example"}},
		RateLimit: config.RateLimitConfig{RPM: rpm, Burst: 1},
		Currency:  "AED",
	}
	store := memory.New(0)
	m := metrics.New(store.Len)
	limiter := middleware.NewRateLimiter(cfg.RateLimit.RPM, cfg.RateLimit.Burst, time.Minute, m)

	server := httptest.NewServer(newHandler(cfg, store, m, limiter))
	t.Cleanup(func() {
		server.Close()
		limiter.Stop()
		store.Close()
	})
	return server
}

func TestSettleOverHTTP(t *testing.T) {
	server := newTestServer(t, 0)
	client := api.NewSettleServiceClient(server.Client(), server.URL)

	resp, err := client.Settle(context.Background(), connect.NewRequest(&api.SettleRequest{
		Participants: []api.Participant{{Name: "A", Paid: "100"}, {Name: "B"}},
	}))
	require.NoError(t, err)
	require.Len(t, resp.Msg.Transfers, 1)
	assert.Equal(t, "B pays A AED 50.00", resp.Msg.Transfers[0].Display)
}

func TestHealthAndMetrics(t *testing.T) {
	server := newTestServer(t, 0)

	res, err := server.Client().Get(server.URL + "/healthz")
	require.NoError(t, err)
	body, _ := io.ReadAll(res.Body)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "ok", string(body))

	res, err = server.Client().Get(server.URL + "/metrics")
	require.NoError(t, err)
	body, _ = io.ReadAll(res.Body)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, string(body), "equalsplit_active_rosters")
}

func TestCORSPreflight(t *testing.T) {
	server := newTestServer(t, 0)

	req, err := http.NewRequest(http.MethodOptions, server.URL+api.SettleServiceSettleProcedure, nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")

	res, err := server.Client().Do(req)
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, "https://app.example", res.Header.Get("Access-Control-Allow-Origin"))
}

func TestRateLimitedRPC(t *testing.T) {
	server := newTestServer(t, 1)
	client := api.NewRosterServiceClient(server.Client(), server.URL)
	ctx := context.Background()

	_, err := client.CreateRoster(ctx, connect.NewRequest(&api.CreateRosterRequest{}))
	require.NoError(t, err)

	_, err = client.CreateRoster(ctx, connect.NewRequest(&api.CreateRosterRequest{}))
	require.Error(t, err)
	assert.Equal(t, connect.CodeUnavailable, connect.CodeOf(err))
}
