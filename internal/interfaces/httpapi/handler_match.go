package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/brfutdata/matchgraph/internal/usecase"
)

const dateOnlyLayout = "2006-01-02"

// ListMatchesByDateRange serves GET /v1/matches. Both bounds are required
// and accept either a date or a full RFC 3339 timestamp; a bare date used
// as the upper bound covers that whole day.
func (h *Handler) ListMatchesByDateRange(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatchesByDateRange")
	defer span.End()

	from, err := queryTime(r, "from", false)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	to, err := queryTime(r, "to", true)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	matches, err := h.queryService.MatchesByDateRange(ctx, from, to)
	if err != nil {
		h.logger.WarnContext(ctx, "matches by date range failed", "from", from, "to", to, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchesToDTO(matches))
}

func queryTime(r *http.Request, key string, endOfDay bool) (time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return time.Time{}, fmt.Errorf("%w: query parameter %q is required", usecase.ErrInvalidInput, key)
	}
	if t, err := time.Parse(dateOnlyLayout, raw); err == nil {
		if endOfDay {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: query parameter %q must be a date or RFC 3339 timestamp", usecase.ErrInvalidInput, key)
	}
	return t, nil
}
