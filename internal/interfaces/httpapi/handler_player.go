package httpapi

import (
	"net/http"
	"strings"
)

func (h *Handler) SearchPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SearchPlayers")
	defer span.End()

	name := strings.TrimSpace(r.URL.Query().Get("name"))
	club := strings.TrimSpace(r.URL.Query().Get("club"))

	players, err := h.queryService.SearchPlayers(ctx, name, club)
	if err != nil {
		h.logger.WarnContext(ctx, "search players failed", "name", name, "club", club, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playersToDTO(players))
}

func (h *Handler) ListTopRatedPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTopRatedPlayers")
	defer span.End()

	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	players, err := h.queryService.TopRatedPlayers(ctx, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "top rated players failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playersToDTO(players))
}
