package api

import (
	"net/http"

	commonhttp "github.com/splitroom/backend/internal/common/http"
)

func (a *API) handleStatsOverview(w http.ResponseWriter, r *http.Request) {
	if _, ok := a.claims(w, r); !ok {
		return
	}

	overview, err := a.stats.Overview(r.Context())
	if err != nil {
		a.eh.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, toOverviewResponse(overview))
}
