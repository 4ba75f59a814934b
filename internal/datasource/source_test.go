package datasource

import (
	"context"
	"testing"
	"time"

	"github.com/brfutdata/matchgraph/internal/platform/aliasing"
	"github.com/brfutdata/matchgraph/internal/usecase"
)

type stubRows struct {
	name string
	rows []Row
}

func (s *stubRows) Name() string                        { return s.name }
func (s *stubRows) Rows(context.Context) ([]Row, error) { return s.rows, nil }

func TestLeagueSourceParsesAndResolvesRows(t *testing.T) {
	t.Parallel()

	src := NewLeagueSource(&stubRows{name: "league", rows: []Row{
		{
			"date": "2023-05-07 19:00:00", "home_team": "Atletico-MG", "away_team": "Gremio",
			"home_region": "mg", "away_region": "RS",
			"home_goals": "2", "away_goals": "0", "season": "2023", "round": "25",
		},
		{
			// Day-first format and no season column.
			"date": "15/05/2023 16:00", "home_team": "Flamengo", "away_team": "Palmeiras",
			"home_goals": "1", "away_goals": "1", "round": "26",
		},
	}}, aliasing.NewResolver())

	records, report, err := src.Matches(context.Background())
	if err != nil {
		t.Fatalf("matches: %v", err)
	}
	if report.Rows != 2 || report.Skipped != 0 {
		t.Fatalf("unexpected report %+v", report)
	}
	if len(records) != 2 {
		t.Fatalf("expected two records, got %d", len(records))
	}

	first := records[0]
	if first.Home.Canonical != "Atlético Mineiro" || first.Home.Region != "MG" {
		t.Fatalf("alias not resolved: %+v", first.Home)
	}
	if first.Away.Canonical != "Grêmio" {
		t.Fatalf("diacritic variant not resolved: %+v", first.Away)
	}
	if first.Competition != "Brasileirão Série A" {
		t.Fatalf("unexpected competition %q", first.Competition)
	}

	second := records[1]
	want := time.Date(2023, 5, 15, 16, 0, 0, 0, time.UTC)
	if !second.KickoffAt.Equal(want) {
		t.Fatalf("day-first date misparsed: %v", second.KickoffAt)
	}
	if second.SeasonYear != 2023 {
		t.Fatalf("season must default to the kickoff year, got %d", second.SeasonYear)
	}
}

func TestMatchSourceSkipsAndCountsBadRows(t *testing.T) {
	t.Parallel()

	src := NewCupSource(&stubRows{name: "cup", rows: []Row{
		{"date": "not-a-date", "home_team": "Santos", "away_team": "Bahia", "home_goals": "1", "away_goals": "0"},
		{"date": "2023-06-01", "home_team": "", "away_team": "Bahia", "home_goals": "1", "away_goals": "0"},
		{"date": "2023-06-01", "home_team": "Santos", "away_team": "Bahia", "home_goals": "one", "away_goals": "0"},
		{"date": "2023-06-01", "home_team": "Santos", "away_team": "Bahia", "home_goals": "2", "away_goals": "0", "round": "Oitavas de Final"},
	}}, aliasing.NewResolver())

	records, report, err := src.Matches(context.Background())
	if err != nil {
		t.Fatalf("matches: %v", err)
	}
	if report.Rows != 4 || report.Skipped != 3 {
		t.Fatalf("unexpected report %+v", report)
	}
	if len(records) != 1 {
		t.Fatalf("expected one surviving record, got %d", len(records))
	}
	if records[0].Round != "Oitavas de Final" {
		t.Fatalf("free-text round must carry verbatim, got %q", records[0].Round)
	}

	kinds := map[usecase.IssueKind]int{}
	for _, issue := range report.Issues {
		kinds[issue.Kind]++
	}
	if kinds[usecase.IssueParse] != 2 || kinds[usecase.IssueValidation] != 1 {
		t.Fatalf("unexpected issue mix %+v", kinds)
	}
}

func TestMatchSourceNotesUnknownTeamFallback(t *testing.T) {
	t.Parallel()

	src := NewLeagueSource(&stubRows{name: "league", rows: []Row{
		{"date": "2023-05-07", "home_team": "Juventude da Serra", "away_team": "Flamengo", "home_goals": "0", "away_goals": "3"},
	}}, aliasing.NewResolver())

	records, report, err := src.Matches(context.Background())
	if err != nil {
		t.Fatalf("matches: %v", err)
	}
	if len(records) != 1 || report.Skipped != 0 {
		t.Fatalf("unknown team must pass through, got %+v", report)
	}
	if records[0].Home.Known {
		t.Fatalf("pass-through must be marked unknown: %+v", records[0].Home)
	}

	var fallbacks int
	for _, issue := range report.Issues {
		if issue.Kind == usecase.IssueResolutionFallback {
			fallbacks++
		}
	}
	if fallbacks != 1 {
		t.Fatalf("expected one fallback note, got %d", fallbacks)
	}
}

func TestInternationalSourceCarriesStage(t *testing.T) {
	t.Parallel()

	src := NewInternationalSource(&stubRows{name: "libertadores", rows: []Row{
		{
			"date": "2023-04-20 21:30:00", "home_team": "Flamengo", "away_team": "Internacional",
			"home_goals": "1", "away_goals": "0", "stage": "group", "season": "2023",
		},
	}}, aliasing.NewResolver())

	records, _, err := src.Matches(context.Background())
	if err != nil {
		t.Fatalf("matches: %v", err)
	}
	if len(records) != 1 || records[0].Stage != "group" {
		t.Fatalf("stage not carried: %+v", records)
	}
	if records[0].CompetitionType != "international" {
		t.Fatalf("unexpected type %q", records[0].CompetitionType)
	}
}

func TestExtendedSourceCombinesDateAndTime(t *testing.T) {
	t.Parallel()

	src := NewExtendedStatsSource(&stubRows{name: "extended", rows: []Row{
		{
			"date": "2023-05-07", "time": "19:30", "home_team": "Flamengo", "away_team": "Palmeiras",
			"home_shots": "14", "away_shots": "9", "home_corners": "7", "away_corners": "3",
			"home_attacks": "52", "away_attacks": "41",
		},
	}}, aliasing.NewResolver())

	records, report, err := src.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if report.Skipped != 0 || len(records) != 1 {
		t.Fatalf("unexpected result %+v %+v", report, records)
	}
	want := time.Date(2023, 5, 7, 19, 30, 0, 0, time.UTC)
	if !records[0].KickoffAt.Equal(want) {
		t.Fatalf("time column not applied: %v", records[0].KickoffAt)
	}
	if records[0].HomeShots != 14 || records[0].AwayAttacks != 41 {
		t.Fatalf("counts misparsed: %+v", records[0])
	}
}

func TestHistoricalSourceEmitsMatchesAndVenues(t *testing.T) {
	t.Parallel()

	src := NewHistoricalSource(&stubRows{name: "archive", rows: []Row{
		{
			"date": "2019-11-24", "home_team": "Flamengo", "away_team": "Ceara",
			"home_goals": "4", "away_goals": "1", "season": "2019", "round": "34",
			"stadium": "Maracanã", "city": "Rio de Janeiro", "state": "RJ",
			"capacity": "78838", "match_id": "BRA-2019-0342", "competition": "Brasileirão Série A",
		},
		{
			"date": "2019-11-30", "home_team": "Bahia", "away_team": "Fortaleza",
			"home_goals": "0", "away_goals": "2", "season": "2019", "round": "35",
		},
	}}, aliasing.NewResolver())

	matches, matchReport, err := src.Matches(context.Background())
	if err != nil {
		t.Fatalf("matches: %v", err)
	}
	if len(matches) != 2 || matchReport.Skipped != 0 {
		t.Fatalf("unexpected match result %+v", matchReport)
	}
	if matches[0].ExternalID != "BRA-2019-0342" || matches[0].StadiumName != "Maracanã" {
		t.Fatalf("archive columns not carried: %+v", matches[0])
	}

	venues, venueReport, err := src.Venues(context.Background())
	if err != nil {
		t.Fatalf("venues: %v", err)
	}
	if len(venues) != 1 {
		t.Fatalf("expected one venue row, got %d", len(venues))
	}
	if venueReport.Skipped != 1 {
		t.Fatalf("stadium-less row must be skipped, got %+v", venueReport)
	}
	v := venues[0]
	if v.StadiumName != "Maracanã" || v.City != "Rio de Janeiro" || v.Region != "RJ" || v.Capacity != 78838 {
		t.Fatalf("venue facts misparsed: %+v", v)
	}
}

func TestRosterSourceFiltersNationality(t *testing.T) {
	t.Parallel()

	src := NewRosterSource(&stubRows{name: "roster", rows: []Row{
		{"id": "1", "name": "Gabriel Barbosa", "nationality": "Brazil", "age": "26", "position": "ST", "overall": "84", "potential": "86", "club": "Flamengo", "wage_eur": "90000", "jersey_number": "10", "contract_year": "2027"},
		{"id": "2", "name": "Lionel Messi", "nationality": "Argentina", "overall": "93"},
		{"id": "zero", "name": "Broken Row", "nationality": "Brazil"},
	}}, aliasing.NewResolver(), "")

	records, report, err := src.Players(context.Background())
	if err != nil {
		t.Fatalf("players: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected one record, got %d", len(records))
	}
	if report.Rows != 3 || report.Skipped != 2 {
		t.Fatalf("unexpected report %+v", report)
	}

	p := records[0]
	if p.ExternalID != 1 || p.Rating != 84 || p.Club.Canonical != "Flamengo" || p.WageEUR != 90000 {
		t.Fatalf("roster row misparsed: %+v", p)
	}
}
