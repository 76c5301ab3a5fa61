package api

import (
	"net/http"
	"strings"

	gorillaWS "github.com/gorilla/websocket"

	"github.com/splitroom/backend/internal/common/constants"
	commonerrors "github.com/splitroom/backend/internal/common/errors"
	"github.com/splitroom/backend/internal/common/jwtverify"
	"github.com/splitroom/backend/internal/roomfeed"
)

var feedUpgrader = gorillaWS.Upgrader{
	ReadBufferSize:  constants.FeedMaxMessageSize,
	WriteBufferSize: constants.FeedMaxMessageSize,
	CheckOrigin: func(*http.Request) bool {
		// Access control is the bearer token, not the Origin header.
		return true
	},
}

// handleFeed upgrades a member to the room's event stream. The token comes
// from the Authorization header or, for clients that cannot set headers on
// websocket dials, a "token" query parameter. Membership is verified
// before the upgrade so non-members never hold a socket.
func (a *API) handleFeed(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		raw := r.Header.Get("Authorization")
		token = strings.TrimPrefix(raw, "Bearer ")
	}
	if token == "" {
		a.eh.HandleError(w, r, commonerrors.ErrMissingAuthorization)
		return
	}

	claims, err := jwtverify.ParseToken(token, a.jwtSecret)
	if err != nil {
		a.eh.HandleError(w, r, commonerrors.ErrInvalidToken.WithCause(err))
		return
	}

	room, ok := a.roomFromPath(w, r)
	if !ok {
		return
	}

	if !a.requireMember(w, r, room.ID, claims.UserID) {
		return
	}

	conn, err := feedUpgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the handshake failure.
		a.log.Warnf("feed upgrade failed room_id=%d user_id=%s: %v", room.ID, claims.UserID, err)
		return
	}

	client := roomfeed.NewClient(a.hub, conn, room.ID, claims.UserID, a.log)
	a.hub.Subscribe(client)
	client.Start()
}
