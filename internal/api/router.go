// Package api exposes the HTTP surface: auth, rooms, memberships, the
// transfer ledger, service statistics, and the per-room websocket feed.
package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	commonerrors "github.com/splitroom/backend/internal/common/errors"
	commonhttp "github.com/splitroom/backend/internal/common/http"
	"github.com/splitroom/backend/internal/common/jwtverify"
	"github.com/splitroom/backend/internal/common/logger"
	membershipsvc "github.com/splitroom/backend/internal/membership/service"
	roomdomain "github.com/splitroom/backend/internal/room/domain"
	roomsvc "github.com/splitroom/backend/internal/room/service"
	"github.com/splitroom/backend/internal/roomfeed"
	statssvc "github.com/splitroom/backend/internal/stats/service"
	transfersvc "github.com/splitroom/backend/internal/transfer/service"
	usersvc "github.com/splitroom/backend/internal/user/service"
)

type API struct {
	users     *usersvc.UserService
	rooms     *roomsvc.RoomService
	members   *membershipsvc.MembershipService
	transfers *transfersvc.TransferService
	stats     *statssvc.StatsService
	hub       *roomfeed.Hub
	jwtSecret []byte
	eh        *commonhttp.ErrorHandler
	validate  *validator.Validate
	log       *logger.Logger
}

func New(
	users *usersvc.UserService,
	rooms *roomsvc.RoomService,
	members *membershipsvc.MembershipService,
	transfers *transfersvc.TransferService,
	stats *statssvc.StatsService,
	hub *roomfeed.Hub,
	jwtSecret string,
	log *logger.Logger,
) *API {
	return &API{
		users:     users,
		rooms:     rooms,
		members:   members,
		transfers: transfers,
		stats:     stats,
		hub:       hub,
		jwtSecret: []byte(jwtSecret),
		eh:        commonhttp.NewErrorHandler(log),
		validate:  validator.New(),
		log:       log,
	}
}

// Register mounts all routes on mux. Everything except login requires a
// bearer token; the feed endpoint does its own token handling because
// websocket clients cannot always set headers.
func (a *API) Register(mux *http.ServeMux) {
	auth := jwtverify.Middleware(string(a.jwtSecret), a.log)

	mux.HandleFunc("POST /api/auth/login", a.handleLogin)

	mux.Handle("GET /api/users/me", auth(http.HandlerFunc(a.handleMe)))

	mux.Handle("POST /api/rooms", auth(http.HandlerFunc(a.handleCreateRoom)))
	mux.Handle("GET /api/rooms/{code}", auth(http.HandlerFunc(a.handleGetRoom)))
	mux.Handle("POST /api/rooms/{code}/close", auth(http.HandlerFunc(a.handleCloseRoom)))

	mux.Handle("POST /api/rooms/{code}/join", auth(http.HandlerFunc(a.handleJoin)))
	mux.Handle("POST /api/rooms/{code}/leave", auth(http.HandlerFunc(a.handleLeave)))
	mux.Handle("GET /api/rooms/{code}/members", auth(http.HandlerFunc(a.handleListMembers)))
	mux.Handle("GET /api/rooms/{code}/members/history", auth(http.HandlerFunc(a.handleMembershipHistory)))

	mux.Handle("POST /api/rooms/{code}/transfers", auth(http.HandlerFunc(a.handleRecordTransfer)))
	mux.Handle("GET /api/rooms/{code}/transfers", auth(http.HandlerFunc(a.handleListTransfers)))
	mux.Handle("GET /api/rooms/{code}/balances", auth(http.HandlerFunc(a.handleBalances)))
	mux.Handle("GET /api/rooms/{code}/summary", auth(http.HandlerFunc(a.handleSummary)))

	mux.Handle("GET /api/stats/overview", auth(http.HandlerFunc(a.handleStatsOverview)))

	mux.HandleFunc("GET /api/rooms/{code}/feed", a.handleFeed)
}

// claims pulls the verified identity injected by the auth middleware.
func (a *API) claims(w http.ResponseWriter, r *http.Request) (jwtverify.Claims, bool) {
	claims, ok := jwtverify.FromContext(r.Context())
	if !ok {
		a.eh.HandleError(w, r, commonerrors.ErrMissingAuthorization)
		return jwtverify.Claims{}, false
	}
	return claims, true
}

// roomFromPath resolves the {code} path segment. Closed rooms stay
// readable; writes check the status in the service layer.
func (a *API) roomFromPath(w http.ResponseWriter, r *http.Request) (roomdomain.Room, bool) {
	room, err := a.rooms.GetByCode(r.Context(), r.PathValue("code"), false)
	if err != nil {
		a.eh.HandleError(w, r, err)
		return roomdomain.Room{}, false
	}
	return room, true
}

// requireMember guards read endpoints that expose room internals.
func (a *API) requireMember(w http.ResponseWriter, r *http.Request, roomID int64, userID string) bool {
	active, err := a.members.IsActiveMember(r.Context(), roomID, userID)
	if err != nil {
		a.eh.HandleError(w, r, err)
		return false
	}
	if !active {
		a.eh.HandleError(w, r, commonerrors.ErrNotRoomMember)
		return false
	}
	return true
}

func (a *API) decodeValid(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := commonhttp.DecodeJSON(r, v); err != nil {
		commonhttp.WriteErrorEnvelope(
			w,
			http.StatusBadRequest,
			commonhttp.CodeInvalidJSON,
			"request body is not valid JSON",
			commonhttp.TraceIDFromContext(r.Context()),
		)
		return false
	}
	if err := a.validate.Struct(v); err != nil {
		commonhttp.WriteErrorEnvelope(
			w,
			http.StatusBadRequest,
			commonhttp.CodeBadRequest,
			"request validation failed: "+err.Error(),
			commonhttp.TraceIDFromContext(r.Context()),
		)
		return false
	}
	return true
}
