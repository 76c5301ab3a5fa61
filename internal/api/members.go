package api

import (
	"net/http"

	commonhttp "github.com/splitroom/backend/internal/common/http"
)

func (a *API) handleJoin(w http.ResponseWriter, r *http.Request) {
	claims, ok := a.claims(w, r)
	if !ok {
		return
	}

	room, ok := a.roomFromPath(w, r)
	if !ok {
		return
	}

	member, err := a.members.Join(r.Context(), room, claims.UserID, claims.Username)
	if err != nil {
		a.eh.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, toMemberDTO(member))
}

func (a *API) handleLeave(w http.ResponseWriter, r *http.Request) {
	claims, ok := a.claims(w, r)
	if !ok {
		return
	}

	room, ok := a.roomFromPath(w, r)
	if !ok {
		return
	}

	member, err := a.members.Leave(r.Context(), room, claims.UserID)
	if err != nil {
		a.eh.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, toMemberDTO(member))
}

func (a *API) handleListMembers(w http.ResponseWriter, r *http.Request) {
	if _, ok := a.claims(w, r); !ok {
		return
	}

	room, ok := a.roomFromPath(w, r)
	if !ok {
		return
	}

	members, err := a.members.ListActive(r.Context(), room.ID)
	if err != nil {
		a.eh.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, toMemberDTOs(members))
}

// handleMembershipHistory returns the caller's own join/leave records for
// the room, oldest first.
func (a *API) handleMembershipHistory(w http.ResponseWriter, r *http.Request) {
	claims, ok := a.claims(w, r)
	if !ok {
		return
	}

	room, ok := a.roomFromPath(w, r)
	if !ok {
		return
	}

	history, err := a.members.History(r.Context(), room.ID, claims.UserID)
	if err != nil {
		a.eh.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, toMemberDTOs(history))
}
