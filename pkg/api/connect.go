package api

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

const (
	// SettleServiceName is the fully-qualified name of the SettleService service.
	SettleServiceName = "equalsplit.v1.SettleService"
	// RosterServiceName is the fully-qualified name of the RosterService service.
	RosterServiceName = "equalsplit.v1.RosterService"
)

// Procedure paths. The RPC name is the last path segment.
const (
	SettleServiceSettleProcedure = "/" + SettleServiceName + "/Settle"

	RosterServiceCreateRosterProcedure      = "/" + RosterServiceName + "/CreateRoster"
	RosterServiceGetRosterProcedure         = "/" + RosterServiceName + "/GetRoster"
	RosterServiceAddParticipantProcedure    = "/" + RosterServiceName + "/AddParticipant"
	RosterServiceRemoveParticipantProcedure = "/" + RosterServiceName + "/RemoveParticipant"
	RosterServiceSettleRosterProcedure      = "/" + RosterServiceName + "/SettleRoster"
	RosterServiceDeleteRosterProcedure      = "/" + RosterServiceName + "/DeleteRoster"
)

// SettleServiceHandler is implemented by the stateless settlement service.
type SettleServiceHandler interface {
	Settle(context.Context, *connect.Request[SettleRequest]) (*connect.Response[SettleResponse], error)
}

// RosterServiceHandler is implemented by the roster service.
type RosterServiceHandler interface {
	CreateRoster(context.Context, *connect.Request[CreateRosterRequest]) (*connect.Response[CreateRosterResponse], error)
	GetRoster(context.Context, *connect.Request[GetRosterRequest]) (*connect.Response[GetRosterResponse], error)
	AddParticipant(context.Context, *connect.Request[AddParticipantRequest]) (*connect.Response[AddParticipantResponse], error)
	RemoveParticipant(context.Context, *connect.Request[RemoveParticipantRequest]) (*connect.Response[RemoveParticipantResponse], error)
	SettleRoster(context.Context, *connect.Request[SettleRosterRequest]) (*connect.Response[SettleResponse], error)
	DeleteRoster(context.Context, *connect.Request[DeleteRosterRequest]) (*connect.Response[DeleteRosterResponse], error)
}

// NewSettleServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewSettleServiceHandler(svc SettleServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = withCodec(opts)
	settle := connect.NewUnaryHandler(SettleServiceSettleProcedure, svc.Settle, opts...)
	return "/" + SettleServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case SettleServiceSettleProcedure:
			settle.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// NewRosterServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewRosterServiceHandler(svc RosterServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = withCodec(opts)
	routes := map[string]http.Handler{
		RosterServiceCreateRosterProcedure:      connect.NewUnaryHandler(RosterServiceCreateRosterProcedure, svc.CreateRoster, opts...),
		RosterServiceGetRosterProcedure:         connect.NewUnaryHandler(RosterServiceGetRosterProcedure, svc.GetRoster, opts...),
		RosterServiceAddParticipantProcedure:    connect.NewUnaryHandler(RosterServiceAddParticipantProcedure, svc.AddParticipant, opts...),
		RosterServiceRemoveParticipantProcedure: connect.NewUnaryHandler(RosterServiceRemoveParticipantProcedure, svc.RemoveParticipant, opts...),
		RosterServiceSettleRosterProcedure:      connect.NewUnaryHandler(RosterServiceSettleRosterProcedure, svc.SettleRoster, opts...),
		RosterServiceDeleteRosterProcedure:      connect.NewUnaryHandler(RosterServiceDeleteRosterProcedure, svc.DeleteRoster, opts...),
	}
	return "/" + RosterServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		h.ServeHTTP(w, r)
	})
}

func withCodec(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{connect.WithCodec(Codec{})}, opts...)
}

// SettleServiceClient is a client for the equalsplit.v1.SettleService service.
type SettleServiceClient interface {
	Settle(context.Context, *connect.Request[SettleRequest]) (*connect.Response[SettleResponse], error)
}

// NewSettleServiceClient constructs a client for the SettleService.
// baseURL is the server root, e.g. http://localhost:8080.
func NewSettleServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) SettleServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)
	return &settleServiceClient{
		settle: connect.NewClient[SettleRequest, SettleResponse](httpClient, baseURL+SettleServiceSettleProcedure, opts...),
	}
}

type settleServiceClient struct {
	settle *connect.Client[SettleRequest, SettleResponse]
}

func (c *settleServiceClient) Settle(ctx context.Context, req *connect.Request[SettleRequest]) (*connect.Response[SettleResponse], error) {
	return c.settle.CallUnary(ctx, req)
}

// RosterServiceClient is a client for the equalsplit.v1.RosterService service.
type RosterServiceClient interface {
	RosterServiceHandler
}

// NewRosterServiceClient constructs a client for the RosterService.
func NewRosterServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) RosterServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)
	return &rosterServiceClient{
		createRoster:      connect.NewClient[CreateRosterRequest, CreateRosterResponse](httpClient, baseURL+RosterServiceCreateRosterProcedure, opts...),
		getRoster:         connect.NewClient[GetRosterRequest, GetRosterResponse](httpClient, baseURL+RosterServiceGetRosterProcedure, opts...),
		addParticipant:    connect.NewClient[AddParticipantRequest, AddParticipantResponse](httpClient, baseURL+RosterServiceAddParticipantProcedure, opts...),
		removeParticipant: connect.NewClient[RemoveParticipantRequest, RemoveParticipantResponse](httpClient, baseURL+RosterServiceRemoveParticipantProcedure, opts...),
		settleRoster:      connect.NewClient[SettleRosterRequest, SettleResponse](httpClient, baseURL+RosterServiceSettleRosterProcedure, opts...),
		deleteRoster:      connect.NewClient[DeleteRosterRequest, DeleteRosterResponse](httpClient, baseURL+RosterServiceDeleteRosterProcedure, opts...),
	}
}

type rosterServiceClient struct {
	createRoster      *connect.Client[CreateRosterRequest, CreateRosterResponse]
	getRoster         *connect.Client[GetRosterRequest, GetRosterResponse]
	addParticipant    *connect.Client[AddParticipantRequest, AddParticipantResponse]
	removeParticipant *connect.Client[RemoveParticipantRequest, RemoveParticipantResponse]
	settleRoster      *connect.Client[SettleRosterRequest, SettleResponse]
	deleteRoster      *connect.Client[DeleteRosterRequest, DeleteRosterResponse]
}

func (c *rosterServiceClient) CreateRoster(ctx context.Context, req *connect.Request[CreateRosterRequest]) (*connect.Response[CreateRosterResponse], error) {
	return c.createRoster.CallUnary(ctx, req)
}

func (c *rosterServiceClient) GetRoster(ctx context.Context, req *connect.Request[GetRosterRequest]) (*connect.Response[GetRosterResponse], error) {
	return c.getRoster.CallUnary(ctx, req)
}

func (c *rosterServiceClient) AddParticipant(ctx context.Context, req *connect.Request[AddParticipantRequest]) (*connect.Response[AddParticipantResponse], error) {
	return c.addParticipant.CallUnary(ctx, req)
}

func (c *rosterServiceClient) RemoveParticipant(ctx context.Context, req *connect.Request[RemoveParticipantRequest]) (*connect.Response[RemoveParticipantResponse], error) {
	return c.removeParticipant.CallUnary(ctx, req)
}

func (c *rosterServiceClient) SettleRoster(ctx context.Context, req *connect.Request[SettleRosterRequest]) (*connect.Response[SettleResponse], error) {
	return c.settleRoster.CallUnary(ctx, req)
}

func (c *rosterServiceClient) DeleteRoster(ctx context.Context, req *connect.Request[DeleteRosterRequest]) (*connect.Response[DeleteRosterResponse], error) {
	return c.deleteRoster.CallUnary(ctx, req)
}
