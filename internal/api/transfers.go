package api

import (
	"net/http"
	"strconv"

	commonerrors "github.com/splitroom/backend/internal/common/errors"
	commonhttp "github.com/splitroom/backend/internal/common/http"
	"github.com/splitroom/backend/internal/money"
)

func (a *API) handleRecordTransfer(w http.ResponseWriter, r *http.Request) {
	claims, ok := a.claims(w, r)
	if !ok {
		return
	}

	room, ok := a.roomFromPath(w, r)
	if !ok {
		return
	}

	var req recordTransferRequest
	if !a.decodeValid(w, r, &req) {
		return
	}

	// The payer is always the authenticated caller. An explicit
	// from_user_id is accepted only when it matches, so a stale client
	// cannot record on someone else's behalf.
	if req.FromUserID != "" && req.FromUserID != claims.UserID {
		a.eh.HandleError(w, r, commonerrors.ErrFromUserMismatch)
		return
	}

	amount, err := money.Parse(req.Amount)
	if err != nil {
		a.eh.HandleError(w, r, err)
		return
	}

	t, err := a.transfers.Record(r.Context(), room, claims.UserID, req.ToUserID, amount, req.Note)
	if err != nil {
		a.eh.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusCreated, toTransferDTO(t))
}

func (a *API) handleListTransfers(w http.ResponseWriter, r *http.Request) {
	claims, ok := a.claims(w, r)
	if !ok {
		return
	}

	room, ok := a.roomFromPath(w, r)
	if !ok {
		return
	}

	if !a.requireMember(w, r, room.ID, claims.UserID) {
		return
	}

	limit := queryInt(r, "limit", 0)
	offset := queryInt(r, "offset", 0)

	transfers, err := a.transfers.List(r.Context(), room.ID, limit, offset)
	if err != nil {
		a.eh.HandleError(w, r, err)
		return
	}

	dtos := make([]transferDTO, 0, len(transfers))
	for _, t := range transfers {
		dtos = append(dtos, toTransferDTO(t))
	}

	commonhttp.WriteJSON(w, http.StatusOK, transferListResponse{
		Transfers: dtos,
		Limit:     limit,
		Offset:    offset,
	})
}

func (a *API) handleBalances(w http.ResponseWriter, r *http.Request) {
	claims, ok := a.claims(w, r)
	if !ok {
		return
	}

	room, ok := a.roomFromPath(w, r)
	if !ok {
		return
	}

	if !a.requireMember(w, r, room.ID, claims.UserID) {
		return
	}

	balances, err := a.transfers.Balances(r.Context(), room.ID)
	if err != nil {
		a.eh.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, toBalanceDTOs(balances))
}

func (a *API) handleSummary(w http.ResponseWriter, r *http.Request) {
	claims, ok := a.claims(w, r)
	if !ok {
		return
	}

	room, ok := a.roomFromPath(w, r)
	if !ok {
		return
	}

	if !a.requireMember(w, r, room.ID, claims.UserID) {
		return
	}

	summary, err := a.transfers.Summary(r.Context(), room.ID)
	if err != nil {
		a.eh.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, summaryResponse{
		Balances:      toBalanceDTOs(summary.Balances),
		TransferCount: summary.TransferCount,
		TotalVolume:   summary.TotalVolume.String(),
	})
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
