package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/brfutdata/matchgraph/internal/platform/logging"
	"github.com/brfutdata/matchgraph/internal/usecase"
)

type Handler struct {
	queryService    *usecase.QueryService
	pipelineService *usecase.PipelineService
	logger          *logging.Logger
}

func NewHandler(
	queryService *usecase.QueryService,
	pipelineService *usecase.PipelineService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		queryService:    queryService,
		pipelineService: pipelineService,
		logger:          logger,
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

// queryInt reads an optional positive integer query parameter. The fallback
// is returned when the parameter is absent.
func queryInt(r *http.Request, key string, fallback int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return fallback, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", usecase.ErrInvalidInput, key)
	}

	return v, nil
}
