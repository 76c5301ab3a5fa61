package api

import (
	"net/http"

	commonhttp "github.com/splitroom/backend/internal/common/http"
	"github.com/splitroom/backend/internal/roomfeed"
)

func (a *API) handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	claims, ok := a.claims(w, r)
	if !ok {
		return
	}

	var req createRoomRequest
	if !a.decodeValid(w, r, &req) {
		return
	}

	room, err := a.rooms.Create(r.Context(), claims.UserID, req.Name)
	if err != nil {
		a.eh.HandleError(w, r, err)
		return
	}

	// The owner participates from the start; a creator outside their own
	// room could neither transfer nor see balances.
	member, err := a.members.Join(r.Context(), room, claims.UserID, claims.Username)
	if err != nil {
		a.eh.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusCreated, roomDetailResponse{
		Room:    toRoomDTO(room),
		Members: []memberDTO{toMemberDTO(member)},
	})
}

func (a *API) handleGetRoom(w http.ResponseWriter, r *http.Request) {
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

	commonhttp.WriteJSON(w, http.StatusOK, roomDetailResponse{
		Room:    toRoomDTO(room),
		Members: toMemberDTOs(members),
	})
}

func (a *API) handleCloseRoom(w http.ResponseWriter, r *http.Request) {
	claims, ok := a.claims(w, r)
	if !ok {
		return
	}

	room, err := a.rooms.Close(r.Context(), r.PathValue("code"), claims.UserID)
	if err != nil {
		a.eh.HandleError(w, r, err)
		return
	}

	a.hub.Publish(room.ID, roomfeed.Event{
		Type: roomfeed.EventRoomClosed,
		Payload: map[string]any{
			"code": room.Code,
		},
	})

	commonhttp.WriteJSON(w, http.StatusOK, toRoomDTO(room))
}
