package api

import (
	"net/http"

	commonhttp "github.com/splitroom/backend/internal/common/http"
)

func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !a.decodeValid(w, r, &req) {
		return
	}

	result, err := a.users.Login(r.Context(), req.OpenID, req.Username)
	if err != nil {
		a.eh.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, loginResponse{
		Token: result.Token,
		User:  toUserDTO(result.User),
	})
}

func (a *API) handleMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := a.claims(w, r)
	if !ok {
		return
	}

	user, err := a.users.GetByID(r.Context(), claims.UserID)
	if err != nil {
		a.eh.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, toUserDTO(user))
}
