package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/brfutdata/matchgraph/internal/domain/competition"
	"github.com/brfutdata/matchgraph/internal/infrastructure/repository/memory"
	"github.com/brfutdata/matchgraph/internal/platform/aliasing"
	"github.com/brfutdata/matchgraph/internal/platform/logging"
	"github.com/brfutdata/matchgraph/internal/usecase"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	teams := memory.NewTeamRepository()
	players := memory.NewPlayerRepository()
	matches := memory.NewMatchRepository()
	competitions := memory.NewCompetitionRepository()
	seasons := memory.NewSeasonRepository()
	stadiums := memory.NewStadiumRepository()

	logger := logging.NewNop()
	ingestion := usecase.NewIngestionService(teams, players, matches, competitions, seasons, stadiums, logger)
	queries := usecase.NewQueryService(aliasing.NewResolver(), teams, players, matches, competitions)

	ctx := context.Background()
	seed := []struct {
		day        int
		home, away string
		hg, ag     int
	}{
		{7, "Flamengo", "Palmeiras", 2, 1},
		{14, "Palmeiras", "Flamengo", 0, 0},
	}
	for i, m := range seed {
		rec := usecase.MatchRecord{
			Source:          "league",
			KickoffAt:       time.Date(2023, 5, m.day, 19, 0, 0, 0, time.UTC),
			Home:            usecase.TeamRef{Raw: m.home, Canonical: m.home, Known: true},
			Away:            usecase.TeamRef{Raw: m.away, Canonical: m.away, Known: true},
			HomeGoals:       m.hg,
			AwayGoals:       m.ag,
			SeasonYear:      2023,
			Competition:     "Brasileirão Série A",
			CompetitionType: competition.TypeLeague,
		}
		if _, err := ingestion.MergeMatch(ctx, rec); err != nil {
			t.Fatalf("seed match %d: %v", i, err)
		}
	}

	return NewRouter(NewHandler(queries, nil, logger), logger)
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) responseEnvelope {
	t.Helper()

	var envelope responseEnvelope
	if err := sonic.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return envelope
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	envelope := decodeEnvelope(t, rec)
	if envelope.Error != nil {
		t.Fatalf("unexpected error body: %+v", envelope.Error)
	}
}

func TestGetTeamStatistics(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/teams/Flamengo/statistics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", rec.Code, rec.Body.String())
	}

	var payload struct {
		Data usecase.TeamStatistics `json:"data"`
	}
	if err := sonic.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload.Data.Played != 2 || payload.Data.Wins != 1 || payload.Data.Draws != 1 {
		t.Fatalf("unexpected statistics: %+v", payload.Data)
	}
	if payload.Data.GoalsFor != 2 || payload.Data.GoalsAgainst != 1 {
		t.Fatalf("unexpected goals: %+v", payload.Data)
	}
}

func TestGetStandingsRequiresSeason(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	rec := httptest.NewRecorder()
	target := "/v1/competitions/" + url.PathEscape("Brasileirão Série A") + "/standings"
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	envelope := decodeEnvelope(t, rec)
	if envelope.Error == nil || envelope.Error.Status != "INVALID_ARGUMENT" {
		t.Fatalf("unexpected error body: %+v", envelope.Error)
	}
}

func TestGetStandings(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	rec := httptest.NewRecorder()
	target := "/v1/competitions/" + url.PathEscape("Brasileirão Série A") + "/standings?season=2023"
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", rec.Code, rec.Body.String())
	}

	var payload struct {
		Data []usecase.StandingRow `json:"data"`
	}
	if err := sonic.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if len(payload.Data) != 2 {
		t.Fatalf("unexpected standings size: %d", len(payload.Data))
	}
	if payload.Data[0].Team != "Flamengo" || payload.Data[0].Points != 4 {
		t.Fatalf("unexpected leader: %+v", payload.Data[0])
	}
}

func TestGetHeadToHeadSameTeamRejected(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/teams/Flamengo/head-to-head/Flamengo", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
}

func TestRunIngestionWithoutPipeline(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/internal/ingest", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	envelope := decodeEnvelope(t, rec)
	if envelope.Error == nil || envelope.Error.Status != "UNAVAILABLE" {
		t.Fatalf("unexpected error body: %+v", envelope.Error)
	}
}

func TestInvalidLimitRejected(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/teams/Flamengo/form?limit=abc", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
}

func TestGetTeamStatisticsSideFilter(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/teams/Flamengo/statistics?side=home", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", rec.Code, rec.Body.String())
	}
	var payload struct {
		Data usecase.TeamStatistics `json:"data"`
	}
	if err := sonic.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload.Data.Played != 1 || payload.Data.Wins != 1 {
		t.Fatalf("unexpected home record: %+v", payload.Data)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/teams/Flamengo/statistics?side=neutral", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown side must yield 400, got %d", rec.Code)
	}
}

func TestListMatchesByDateRange(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/matches?from=2023-05-14&to=2023-05-14", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", rec.Code, rec.Body.String())
	}
	var payload struct {
		Data []matchDTO `json:"data"`
	}
	if err := sonic.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if len(payload.Data) != 1 || payload.Data[0].HomeTeam != "Palmeiras" {
		t.Fatalf("single-day range should hit one match: %+v", payload.Data)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/matches?from=2023-05-01", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing bound must yield 400, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/matches?from=yesterday&to=today", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unparseable bound must yield 400, got %d", rec.Code)
	}
}

func TestListCompetitionEntrants(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	rec := httptest.NewRecorder()
	target := "/v1/competitions/" + url.PathEscape("Brasileirão Série A") + "/entrants?season=2023"
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", rec.Code, rec.Body.String())
	}
	var payload struct {
		Data []entryDTO `json:"data"`
	}
	if err := sonic.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if len(payload.Data) != 2 || payload.Data[0].Team != "Flamengo" {
		t.Fatalf("unexpected entrants: %+v", payload.Data)
	}
}
