package httpapi

import (
	"net/http"
	"strings"

	"github.com/brfutdata/matchgraph/internal/domain/match"
)

func (h *Handler) SearchTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SearchTeams")
	defer span.End()

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	teams, err := h.queryService.SearchTeams(ctx, query)
	if err != nil {
		h.logger.WarnContext(ctx, "search teams failed", "query", query, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamDTO, 0, len(teams))
	for _, t := range teams {
		items = append(items, teamToDTO(t))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetTeamStatistics(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamStatistics")
	defer span.End()

	teamName := strings.TrimSpace(r.PathValue("team"))
	seasonYear, err := queryInt(r, "season", 0)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	competitionName := strings.TrimSpace(r.URL.Query().Get("competition"))
	side := match.Side(strings.TrimSpace(r.URL.Query().Get("side")))

	stats, err := h.queryService.TeamStatistics(ctx, teamName, seasonYear, competitionName, side)
	if err != nil {
		h.logger.WarnContext(ctx, "team statistics failed", "team", teamName, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, stats)
}

func (h *Handler) GetRecentForm(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRecentForm")
	defer span.End()

	teamName := strings.TrimSpace(r.PathValue("team"))
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	competitionName := strings.TrimSpace(r.URL.Query().Get("competition"))

	form, err := h.queryService.RecentForm(ctx, teamName, competitionName, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "recent form failed", "team", teamName, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, form)
}

func (h *Handler) GetTeamRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamRoster")
	defer span.End()

	teamName := strings.TrimSpace(r.PathValue("team"))
	roster, err := h.queryService.TeamRoster(ctx, teamName)
	if err != nil {
		h.logger.WarnContext(ctx, "team roster failed", "team", teamName, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, affiliationsToDTO(roster))
}

func (h *Handler) GetCrossCompetitionTotals(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCrossCompetitionTotals")
	defer span.End()

	teamName := strings.TrimSpace(r.PathValue("team"))
	totals, err := h.queryService.CrossCompetitionTotals(ctx, teamName)
	if err != nil {
		h.logger.WarnContext(ctx, "cross competition totals failed", "team", teamName, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, totals)
}

func (h *Handler) GetHeadToHead(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetHeadToHead")
	defer span.End()

	teamName := strings.TrimSpace(r.PathValue("team"))
	opponent := strings.TrimSpace(r.PathValue("opponent"))

	record, err := h.queryService.HeadToHead(ctx, teamName, opponent)
	if err != nil {
		h.logger.WarnContext(ctx, "head to head failed", "team", teamName, "opponent", opponent, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, record)
}

func (h *Handler) ListMatchesBetween(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatchesBetween")
	defer span.End()

	teamName := strings.TrimSpace(r.PathValue("team"))
	opponent := strings.TrimSpace(r.PathValue("opponent"))

	matches, err := h.queryService.MatchesBetween(ctx, teamName, opponent)
	if err != nil {
		h.logger.WarnContext(ctx, "matches between failed", "team", teamName, "opponent", opponent, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchesToDTO(matches))
}
