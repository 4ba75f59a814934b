package httpapi

import (
	"net/http"

	"github.com/brfutdata/matchgraph/internal/platform/logging"
)

func NewRouter(handler *Handler, logger *logging.Logger) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler)
	registerQueryRoutes(mux, handler)

	return RequestTracing(RequestLogging(logger, recoverPanic(logger, mux)))
}
