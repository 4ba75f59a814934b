package httpapi

import (
	"fmt"
	"net/http"

	"github.com/brfutdata/matchgraph/internal/usecase"
)

// RunIngestion executes the full source pipeline synchronously and returns
// its per-source summaries. Only available when the server was started with
// ingestion sources configured.
func (h *Handler) RunIngestion(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunIngestion")
	defer span.End()

	if h.pipelineService == nil {
		writeError(ctx, w, fmt.Errorf("%w: ingestion pipeline is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	result, err := h.pipelineService.Run(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "ingestion run failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}
