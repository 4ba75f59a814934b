package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerQueryRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/teams", handler.SearchTeams)
	mux.HandleFunc("GET /v1/teams/{team}/statistics", handler.GetTeamStatistics)
	mux.HandleFunc("GET /v1/teams/{team}/roster", handler.GetTeamRoster)
	mux.HandleFunc("GET /v1/teams/{team}/form", handler.GetRecentForm)
	mux.HandleFunc("GET /v1/teams/{team}/totals", handler.GetCrossCompetitionTotals)
	mux.HandleFunc("GET /v1/teams/{team}/head-to-head/{opponent}", handler.GetHeadToHead)
	mux.HandleFunc("GET /v1/teams/{team}/matches/{opponent}", handler.ListMatchesBetween)
	mux.HandleFunc("GET /v1/competitions", handler.ListCompetitions)
	mux.HandleFunc("GET /v1/competitions/{competition}/standings", handler.GetStandings)
	mux.HandleFunc("GET /v1/competitions/{competition}/entrants", handler.ListCompetitionEntrants)
	mux.HandleFunc("GET /v1/competitions/{competition}/biggest-wins", handler.ListBiggestWins)
	mux.HandleFunc("GET /v1/competitions/{competition}/average-goals", handler.GetAverageGoals)
	mux.HandleFunc("GET /v1/matches", handler.ListMatchesByDateRange)
	mux.HandleFunc("GET /v1/stats/top-scoring-teams", handler.ListTopScoringTeams)
	mux.HandleFunc("GET /v1/players", handler.SearchPlayers)
	mux.HandleFunc("GET /v1/players/top-rated", handler.ListTopRatedPlayers)
	mux.HandleFunc("POST /v1/internal/ingest", handler.RunIngestion)
}
