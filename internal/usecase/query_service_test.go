package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/brfutdata/matchgraph/internal/domain/competition"
	"github.com/brfutdata/matchgraph/internal/domain/match"
	"github.com/brfutdata/matchgraph/internal/platform/aliasing"
	"github.com/brfutdata/matchgraph/internal/usecase"
)

const serieA = "Brasileirão Série A"

func newQueryFixture(t *testing.T) (*fixture, *usecase.QueryService) {
	t.Helper()

	f := newFixture()
	queries := usecase.NewQueryService(
		aliasing.NewResolver(), f.teams, f.players, f.matches, f.competitions,
	)

	ctx := context.Background()
	seed := []struct {
		day        int
		home, away string
		hg, ag     int
		comp       string
		ctype      competition.Type
	}{
		{1, "Flamengo", "Palmeiras", 2, 1, serieA, competition.TypeLeague},
		{8, "Palmeiras", "Flamengo", 1, 1, serieA, competition.TypeLeague},
		{15, "Flamengo", "Corinthians", 3, 0, serieA, competition.TypeLeague},
		{22, "Corinthians", "Palmeiras", 0, 2, serieA, competition.TypeLeague},
		{29, "Flamengo", "Corinthians", 1, 0, "Copa do Brasil", competition.TypeCup},
	}
	for i, m := range seed {
		rec := usecase.MatchRecord{
			Source:          "league",
			KickoffAt:       time.Date(2023, 5, m.day, 19, 0, 0, 0, time.UTC),
			Home:            ref(m.home),
			Away:            ref(m.away),
			HomeGoals:       m.hg,
			AwayGoals:       m.ag,
			SeasonYear:      2023,
			Competition:     m.comp,
			CompetitionType: m.ctype,
		}
		if _, err := f.ingestion.MergeMatch(ctx, rec); err != nil {
			t.Fatalf("seed match %d: %v", i, err)
		}
	}
	return f, queries
}

func TestTeamStatisticsAggregatesAcrossEdges(t *testing.T) {
	t.Parallel()

	_, queries := newQueryFixture(t)
	ctx := context.Background()

	stats, err := queries.TeamStatistics(ctx, "Flamengo", 2023, serieA, "")
	if err != nil {
		t.Fatalf("team statistics: %v", err)
	}
	if stats.Played != 3 || stats.Wins != 2 || stats.Draws != 1 || stats.Losses != 0 {
		t.Fatalf("unexpected record %+v", stats)
	}
	if stats.GoalsFor != 6 || stats.GoalsAgainst != 2 || stats.Points != 7 {
		t.Fatalf("unexpected totals %+v", stats)
	}
	if stats.CleanSheets != 1 {
		t.Fatalf("expected one clean sheet, got %d", stats.CleanSheets)
	}
}

func TestTeamStatisticsTwoMatchScenario(t *testing.T) {
	t.Parallel()

	f := newFixture()
	queries := usecase.NewQueryService(
		aliasing.NewResolver(), f.teams, f.players, f.matches, f.competitions,
	)
	ctx := context.Background()

	seed := []usecase.MatchRecord{
		{
			Source: "league", KickoffAt: time.Date(2023, 5, 1, 19, 0, 0, 0, time.UTC),
			Home: ref("Flamengo"), Away: ref("Palmeiras"), HomeGoals: 2, AwayGoals: 1,
			SeasonYear: 2023, Competition: serieA, CompetitionType: competition.TypeLeague,
		},
		{
			Source: "league", KickoffAt: time.Date(2023, 5, 8, 19, 0, 0, 0, time.UTC),
			Home: ref("Palmeiras"), Away: ref("Flamengo"), HomeGoals: 0, AwayGoals: 0,
			SeasonYear: 2023, Competition: serieA, CompetitionType: competition.TypeLeague,
		},
	}
	for _, rec := range seed {
		if _, err := f.ingestion.MergeMatch(ctx, rec); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	stats, err := queries.TeamStatistics(ctx, "Flamengo", 2023, "", "")
	if err != nil {
		t.Fatalf("team statistics: %v", err)
	}
	want := usecase.TeamStatistics{
		Team: "Flamengo", SeasonYear: 2023,
		Played: 2, Wins: 1, Draws: 1, Losses: 0,
		GoalsFor: 2, GoalsAgainst: 1, CleanSheets: 1, Points: 4,
	}
	if stats != want {
		t.Fatalf("got %+v, want %+v", stats, want)
	}
}

func TestTeamStatisticsResolvesAliases(t *testing.T) {
	t.Parallel()

	_, queries := newQueryFixture(t)
	ctx := context.Background()

	direct, err := queries.TeamStatistics(ctx, "Corinthians", 2023, "", "")
	if err != nil {
		t.Fatalf("direct query: %v", err)
	}
	aliased, err := queries.TeamStatistics(ctx, "Corinthians-SP", 2023, "", "")
	if err != nil {
		t.Fatalf("aliased query: %v", err)
	}
	if direct != aliased {
		t.Fatalf("alias must read the same node: %+v vs %+v", direct, aliased)
	}
	if direct.Played != 3 {
		t.Fatalf("expected three matches, got %+v", direct)
	}
}

func TestTeamStatisticsForUnknownTeamIsZero(t *testing.T) {
	t.Parallel()

	_, queries := newQueryFixture(t)
	ctx := context.Background()

	stats, err := queries.TeamStatistics(ctx, "Juventude da Serra", 0, "", "")
	if err != nil {
		t.Fatalf("unknown team must not error: %v", err)
	}
	if stats.Played != 0 || stats.Points != 0 {
		t.Fatalf("expected zeroed statistics, got %+v", stats)
	}
}

func TestHeadToHeadIsSymmetric(t *testing.T) {
	t.Parallel()

	_, queries := newQueryFixture(t)
	ctx := context.Background()

	ab, err := queries.HeadToHead(ctx, "Flamengo", "Palmeiras")
	if err != nil {
		t.Fatalf("head to head: %v", err)
	}
	if ab.Matches != 2 || ab.TeamAWins != 1 || ab.TeamBWins != 0 || ab.Draws != 1 {
		t.Fatalf("unexpected balance %+v", ab)
	}
	if ab.TeamAGoals != 3 || ab.TeamBGoals != 2 {
		t.Fatalf("unexpected goals %+v", ab)
	}

	ba, err := queries.HeadToHead(ctx, "Palmeiras", "Flamengo")
	if err != nil {
		t.Fatalf("reversed head to head: %v", err)
	}
	if ba.Matches != ab.Matches || ba.TeamAWins != ab.TeamBWins || ba.TeamBWins != ab.TeamAWins {
		t.Fatalf("reversed query must mirror: %+v vs %+v", ab, ba)
	}
}

func TestStandingsOrderAndTieBreaks(t *testing.T) {
	t.Parallel()

	_, queries := newQueryFixture(t)
	ctx := context.Background()

	table, err := queries.Standings(ctx, serieA, 2023)
	if err != nil {
		t.Fatalf("standings: %v", err)
	}
	if len(table) != 3 {
		t.Fatalf("expected three rows, got %d", len(table))
	}
	// Flamengo 7pts, Palmeiras 4pts, Corinthians 0pts.
	if table[0].Team != "Flamengo" || table[0].Points != 7 || table[0].Position != 1 {
		t.Fatalf("unexpected leader %+v", table[0])
	}
	if table[1].Team != "Palmeiras" || table[1].Points != 4 {
		t.Fatalf("unexpected second %+v", table[1])
	}
	if table[2].Team != "Corinthians" || table[2].Played != 2 {
		t.Fatalf("unexpected third %+v", table[2])
	}
	if table[0].GoalDifference != 4 {
		t.Fatalf("unexpected goal difference %+v", table[0])
	}
}

func TestStandingsBreakFullTiesAlphabetically(t *testing.T) {
	t.Parallel()

	f := newFixture()
	queries := usecase.NewQueryService(
		aliasing.NewResolver(), f.teams, f.players, f.matches, f.competitions,
	)
	ctx := context.Background()

	// Two draws with identical scores leave every column equal.
	for i, pair := range [][2]string{{"Santos", "Internacional"}, {"Internacional", "Santos"}} {
		rec := usecase.MatchRecord{
			Source:          "league",
			KickoffAt:       time.Date(2023, 6, 1+i*7, 19, 0, 0, 0, time.UTC),
			Home:            ref(pair[0]),
			Away:            ref(pair[1]),
			HomeGoals:       1,
			AwayGoals:       1,
			SeasonYear:      2023,
			Competition:     serieA,
			CompetitionType: competition.TypeLeague,
		}
		if _, err := f.ingestion.MergeMatch(ctx, rec); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	table, err := queries.Standings(ctx, serieA, 2023)
	if err != nil {
		t.Fatalf("standings: %v", err)
	}
	if len(table) != 2 {
		t.Fatalf("expected two rows, got %d", len(table))
	}
	if table[0].Team != "Internacional" || table[1].Team != "Santos" {
		t.Fatalf("full ties must order by name: %+v", table)
	}
}

func TestRecentFormIsNewestFirstAndBounded(t *testing.T) {
	t.Parallel()

	_, queries := newQueryFixture(t)
	ctx := context.Background()

	form, err := queries.RecentForm(ctx, "Flamengo", "", 2)
	if err != nil {
		t.Fatalf("recent form: %v", err)
	}
	if len(form) != 2 {
		t.Fatalf("expected two entries, got %d", len(form))
	}
	if form[0].Competition != "Copa do Brasil" || form[0].Opponent != "Corinthians" {
		t.Fatalf("newest match must come first: %+v", form[0])
	}
	if form[1].Opponent != "Corinthians" || form[1].Competition != serieA {
		t.Fatalf("unexpected second entry %+v", form[1])
	}

	scoped, err := queries.RecentForm(ctx, "Flamengo", serieA, 10)
	if err != nil {
		t.Fatalf("scoped form: %v", err)
	}
	if len(scoped) != 3 {
		t.Fatalf("competition filter should keep league matches only, got %d", len(scoped))
	}
}

func TestCrossCompetitionTotalsSpanCompetitions(t *testing.T) {
	t.Parallel()

	_, queries := newQueryFixture(t)
	ctx := context.Background()

	totals, err := queries.CrossCompetitionTotals(ctx, "Flamengo")
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	if totals.Played != 4 || totals.Wins != 3 || totals.Draws != 1 {
		t.Fatalf("unexpected totals %+v", totals)
	}
	if len(totals.Competitions) != 2 {
		t.Fatalf("expected two competitions, got %+v", totals.Competitions)
	}
}

func TestTopTeamsByGoalsRanksBySeasonTotal(t *testing.T) {
	t.Parallel()

	_, queries := newQueryFixture(t)
	ctx := context.Background()

	ranked, err := queries.TopTeamsByGoals(ctx, 2023, 2)
	if err != nil {
		t.Fatalf("top teams: %v", err)
	}
	if len(ranked) != 2 {
		t.Fatalf("expected two rows, got %d", len(ranked))
	}
	if ranked[0].Team != "Flamengo" || ranked[0].Goals != 7 {
		t.Fatalf("unexpected top scorer %+v", ranked[0])
	}
}

func TestAverageGoalsPerMatch(t *testing.T) {
	t.Parallel()

	_, queries := newQueryFixture(t)
	ctx := context.Background()

	avg, err := queries.AverageGoalsPerMatch(ctx, serieA, 2023)
	if err != nil {
		t.Fatalf("average: %v", err)
	}
	// 3 + 2 + 3 + 2 goals over four league matches.
	if avg != 2.5 {
		t.Fatalf("expected 2.5, got %v", avg)
	}

	empty, err := queries.AverageGoalsPerMatch(ctx, "Copa Libertadores", 0)
	if err != nil {
		t.Fatalf("empty selection: %v", err)
	}
	if empty != 0 {
		t.Fatalf("empty selection must average zero, got %v", empty)
	}
}

func TestBiggestWinsOrderByMargin(t *testing.T) {
	t.Parallel()

	_, queries := newQueryFixture(t)
	ctx := context.Background()

	wins, err := queries.BiggestWins(ctx, serieA, 1)
	if err != nil {
		t.Fatalf("biggest wins: %v", err)
	}
	if len(wins) != 1 {
		t.Fatalf("expected one row, got %d", len(wins))
	}
	if wins[0].HomeTeam != "Flamengo" || wins[0].HomeGoals != 3 || wins[0].AwayGoals != 0 {
		t.Fatalf("unexpected biggest win %+v", wins[0])
	}
}

func TestSearchPlayersByNameAndClub(t *testing.T) {
	t.Parallel()

	f, queries := newQueryFixture(t)
	ctx := context.Background()

	for id, p := range map[int64]usecase.PlayerRecord{
		1: {Source: "roster", ExternalID: 1, Name: "Gabriel Barbosa", Nationality: "Brazil", Rating: 84, Club: ref("Flamengo")},
		2: {Source: "roster", ExternalID: 2, Name: "Gabriel Menino", Nationality: "Brazil", Rating: 78, Club: ref("Palmeiras")},
	} {
		p.ExternalID = id
		if _, err := f.ingestion.MergePlayer(ctx, p); err != nil {
			t.Fatalf("seed player: %v", err)
		}
	}

	all, err := queries.SearchPlayers(ctx, "gabriel", "")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected both gabriels, got %d", len(all))
	}

	scoped, err := queries.SearchPlayers(ctx, "gabriel", "Flamengo")
	if err != nil {
		t.Fatalf("scoped search: %v", err)
	}
	if len(scoped) != 1 || scoped[0].Name != "Gabriel Barbosa" {
		t.Fatalf("club filter failed: %+v", scoped)
	}

	top, err := queries.TopRatedPlayers(ctx, 1)
	if err != nil {
		t.Fatalf("top rated: %v", err)
	}
	if len(top) != 1 || top[0].Name != "Gabriel Barbosa" {
		t.Fatalf("unexpected top player %+v", top)
	}
}

func TestTeamStatisticsSplitsHomeAndAway(t *testing.T) {
	t.Parallel()

	_, queries := newQueryFixture(t)
	ctx := context.Background()

	home, err := queries.TeamStatistics(ctx, "Flamengo", 2023, "", match.SideHome)
	if err != nil {
		t.Fatalf("home statistics: %v", err)
	}
	if home.Played != 3 || home.Wins != 3 || home.GoalsFor != 6 || home.GoalsAgainst != 1 {
		t.Fatalf("unexpected home record %+v", home)
	}

	away, err := queries.TeamStatistics(ctx, "Flamengo", 2023, "", match.SideAway)
	if err != nil {
		t.Fatalf("away statistics: %v", err)
	}
	if away.Played != 1 || away.Draws != 1 || away.Wins != 0 || away.Points != 1 {
		t.Fatalf("unexpected away record %+v", away)
	}
	if home.Played+away.Played != 4 {
		t.Fatalf("side splits must cover every edge: %d home, %d away", home.Played, away.Played)
	}

	if _, err := queries.TeamStatistics(ctx, "Flamengo", 2023, "", "neutral"); !errors.Is(err, usecase.ErrInvalidInput) {
		t.Fatalf("unknown side must be rejected, got %v", err)
	}
}

func TestMatchesByDateRange(t *testing.T) {
	t.Parallel()

	_, queries := newQueryFixture(t)
	ctx := context.Background()

	from := time.Date(2023, 5, 8, 0, 0, 0, 0, time.UTC)
	to := time.Date(2023, 5, 15, 19, 0, 0, 0, time.UTC)
	matches, err := queries.MatchesByDateRange(ctx, from, to)
	if err != nil {
		t.Fatalf("matches by date range: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("expected two matches in range, got %d", len(matches))
	}
	if !matches[0].KickoffAt.Before(matches[1].KickoffAt) {
		t.Fatalf("matches must be ordered oldest first: %+v", matches)
	}
	// The upper bound is inclusive: the second hit kicks off exactly at it.
	if !matches[1].KickoffAt.Equal(to) {
		t.Fatalf("expected match at upper bound, got %v", matches[1].KickoffAt)
	}

	if _, err := queries.MatchesByDateRange(ctx, to, from); !errors.Is(err, usecase.ErrInvalidInput) {
		t.Fatalf("inverted range must be rejected, got %v", err)
	}
	if _, err := queries.MatchesByDateRange(ctx, time.Time{}, to); !errors.Is(err, usecase.ErrInvalidInput) {
		t.Fatalf("missing bound must be rejected, got %v", err)
	}
}

func TestTeamRosterListsContractEdges(t *testing.T) {
	t.Parallel()

	f, queries := newQueryFixture(t)
	ctx := context.Background()

	rec := usecase.PlayerRecord{
		Source:       "roster",
		ExternalID:   912,
		Name:         "Gabriel Barbosa",
		Nationality:  "Brazil",
		Age:          26,
		Rating:       84,
		Potential:    86,
		Club:         ref("Flamengo"),
		WageEUR:      90000,
		JerseyNumber: 10,
	}
	if _, err := f.ingestion.MergePlayer(ctx, rec); err != nil {
		t.Fatalf("seed player: %v", err)
	}

	roster, err := queries.TeamRoster(ctx, "Flamengo")
	if err != nil {
		t.Fatalf("roster: %v", err)
	}
	if len(roster) != 1 || roster[0].PlayerID != 912 || roster[0].JerseyNumber != 10 {
		t.Fatalf("unexpected roster %+v", roster)
	}

	aliased, err := queries.TeamRoster(ctx, "Flamengo-RJ")
	if err != nil {
		t.Fatalf("aliased roster: %v", err)
	}
	if len(aliased) != 1 {
		t.Fatalf("alias form must read the same roster, got %+v", aliased)
	}
}

func TestCompetitionEntrants(t *testing.T) {
	t.Parallel()

	_, queries := newQueryFixture(t)
	ctx := context.Background()

	entries, err := queries.CompetitionEntrants(ctx, serieA, 2023)
	if err != nil {
		t.Fatalf("entrants: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected three entrants, got %d", len(entries))
	}
	if entries[0].TeamName != "Corinthians" || entries[2].TeamName != "Palmeiras" {
		t.Fatalf("entrants must sort by team name: %+v", entries)
	}

	cup, err := queries.CompetitionEntrants(ctx, "Copa do Brasil", 0)
	if err != nil {
		t.Fatalf("cup entrants: %v", err)
	}
	if len(cup) != 2 {
		t.Fatalf("expected two cup entrants, got %d", len(cup))
	}

	if _, err := queries.CompetitionEntrants(ctx, "  ", 2023); !errors.Is(err, usecase.ErrInvalidInput) {
		t.Fatalf("blank competition must be rejected, got %v", err)
	}
}
