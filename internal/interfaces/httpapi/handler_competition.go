package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/brfutdata/matchgraph/internal/usecase"
)

func (h *Handler) ListCompetitions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCompetitions")
	defer span.End()

	competitions, err := h.queryService.ListCompetitions(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list competitions failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]competitionDTO, 0, len(competitions))
	for _, c := range competitions {
		items = append(items, competitionToDTO(c))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetStandings")
	defer span.End()

	competitionName := strings.TrimSpace(r.PathValue("competition"))
	seasonYear, err := queryInt(r, "season", 0)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if seasonYear == 0 {
		writeError(ctx, w, fmt.Errorf("%w: season query parameter is required", usecase.ErrInvalidInput))
		return
	}

	table, err := h.queryService.Standings(ctx, competitionName, seasonYear)
	if err != nil {
		h.logger.WarnContext(ctx, "standings failed", "competition", competitionName, "season", seasonYear, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, table)
}

func (h *Handler) ListCompetitionEntrants(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCompetitionEntrants")
	defer span.End()

	competitionName := strings.TrimSpace(r.PathValue("competition"))
	seasonYear, err := queryInt(r, "season", 0)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	entries, err := h.queryService.CompetitionEntrants(ctx, competitionName, seasonYear)
	if err != nil {
		h.logger.WarnContext(ctx, "competition entrants failed", "competition", competitionName, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, entriesToDTO(entries))
}

func (h *Handler) ListBiggestWins(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListBiggestWins")
	defer span.End()

	competitionName := strings.TrimSpace(r.PathValue("competition"))
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	matches, err := h.queryService.BiggestWins(ctx, competitionName, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "biggest wins failed", "competition", competitionName, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchesToDTO(matches))
}

func (h *Handler) GetAverageGoals(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetAverageGoals")
	defer span.End()

	competitionName := strings.TrimSpace(r.PathValue("competition"))
	seasonYear, err := queryInt(r, "season", 0)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	average, err := h.queryService.AverageGoalsPerMatch(ctx, competitionName, seasonYear)
	if err != nil {
		h.logger.WarnContext(ctx, "average goals failed", "competition", competitionName, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"competition":         competitionName,
		"seasonYear":          seasonYear,
		"averageGoalsPerGame": average,
	})
}

func (h *Handler) ListTopScoringTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTopScoringTeams")
	defer span.End()

	seasonYear, err := queryInt(r, "season", 0)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	teams, err := h.queryService.TopTeamsByGoals(ctx, seasonYear, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "top scoring teams failed", "season", seasonYear, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teams)
}
