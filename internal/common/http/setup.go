package http

import (
	"net/http"

	"github.com/splitroom/backend/internal/common/constants"
	"github.com/splitroom/backend/internal/common/httpmetrics"
	"github.com/splitroom/backend/internal/common/logger"
)

// BuildBaseHandler wraps handler with the standard middleware chain:
// security headers, panic recovery, trace ids, request size limits and
// request metrics.
func BuildBaseHandler(log *logger.Logger, handler http.Handler) http.Handler {
	metrics := httpmetrics.New()
	recovery := RecoveryMiddleware(log)
	maxRequestSize := MaxRequestSizeMiddleware(constants.DefaultMaxRequestSize)

	return SecurityHeadersMiddleware(recovery(TraceIDMiddleware(maxRequestSize(metrics.Wrap(handler)))))
}
