package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/brfutdata/matchgraph/internal/domain/competition"
	"github.com/brfutdata/matchgraph/internal/domain/match"
	"github.com/brfutdata/matchgraph/internal/domain/player"
	"github.com/brfutdata/matchgraph/internal/domain/team"
	"github.com/brfutdata/matchgraph/internal/platform/aliasing"
)

const (
	pointsPerWin  = 3
	pointsPerDraw = 1
)

// TeamStatistics aggregates one team's record, optionally scoped to a
// season, a competition, or one side of the pitch.
type TeamStatistics struct {
	Team         string     `json:"team"`
	SeasonYear   int        `json:"seasonYear,omitempty"`
	Competition  string     `json:"competition,omitempty"`
	Side         match.Side `json:"side,omitempty"`
	Played       int        `json:"played"`
	Wins         int        `json:"wins"`
	Draws        int        `json:"draws"`
	Losses       int        `json:"losses"`
	GoalsFor     int        `json:"goalsFor"`
	GoalsAgainst int        `json:"goalsAgainst"`
	CleanSheets  int        `json:"cleanSheets"`
	Points       int        `json:"points"`
}

func (t TeamStatistics) GoalDifference() int { return t.GoalsFor - t.GoalsAgainst }

// HeadToHead is the balance of power between two teams across every stored
// meeting.
type HeadToHead struct {
	TeamA      string `json:"teamA"`
	TeamB      string `json:"teamB"`
	Matches    int    `json:"matches"`
	TeamAWins  int    `json:"teamAWins"`
	TeamBWins  int    `json:"teamBWins"`
	Draws      int    `json:"draws"`
	TeamAGoals int    `json:"teamAGoals"`
	TeamBGoals int    `json:"teamBGoals"`
}

// StandingRow is one line of a computed table. Standings are derived from
// stored matches on every call, never persisted.
type StandingRow struct {
	Position       int    `json:"position"`
	Team           string `json:"team"`
	Played         int    `json:"played"`
	Wins           int    `json:"wins"`
	Draws          int    `json:"draws"`
	Losses         int    `json:"losses"`
	GoalsFor       int    `json:"goalsFor"`
	GoalsAgainst   int    `json:"goalsAgainst"`
	GoalDifference int    `json:"goalDifference"`
	Points         int    `json:"points"`
}

// FormEntry is one recent result from a team's point of view.
type FormEntry struct {
	MatchKey     string       `json:"matchKey"`
	KickoffAt    string       `json:"kickoffAt"`
	Competition  string       `json:"competition"`
	Opponent     string       `json:"opponent"`
	Side         match.Side   `json:"side"`
	GoalsFor     int          `json:"goalsFor"`
	GoalsAgainst int          `json:"goalsAgainst"`
	Result       match.Result `json:"result"`
}

// CompetitionTotals sums one team's record across every competition it
// appears in.
type CompetitionTotals struct {
	Team         string   `json:"team"`
	Competitions []string `json:"competitions"`
	Played       int      `json:"played"`
	Wins         int      `json:"wins"`
	Draws        int      `json:"draws"`
	Losses       int      `json:"losses"`
	GoalsFor     int      `json:"goalsFor"`
	GoalsAgainst int      `json:"goalsAgainst"`
	Points       int      `json:"points"`
}

// TeamGoals pairs a team with its scored-goal total.
type TeamGoals struct {
	Team  string `json:"team"`
	Goals int    `json:"goals"`
}

// QueryService answers analytical questions against the canonical store.
// Team arguments pass through the same alias resolution as ingestion, so a
// query for "Corinthians-SP" and one for "Corinthians" read the same node.
type QueryService struct {
	resolver     *aliasing.Resolver
	teams        team.Repository
	players      player.Repository
	matches      match.Repository
	competitions competition.Repository
}

func NewQueryService(
	resolver *aliasing.Resolver,
	teams team.Repository,
	players player.Repository,
	matches match.Repository,
	competitions competition.Repository,
) *QueryService {
	return &QueryService{
		resolver:     resolver,
		teams:        teams,
		players:      players,
		matches:      matches,
		competitions: competitions,
	}
}

func (s *QueryService) canonical(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}
	return s.resolver.Resolve(name).Canonical, nil
}

// TeamStatistics returns the aggregate record for a team. A team with no
// stored matches yields zeroed statistics, not an error. A non-empty side
// restricts the record to home or away fixtures only.
func (s *QueryService) TeamStatistics(ctx context.Context, teamName string, seasonYear int, competitionName string, side match.Side) (TeamStatistics, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.QueryService.TeamStatistics")
	defer span.End()

	canonical, err := s.canonical(teamName)
	if err != nil {
		return TeamStatistics{}, err
	}
	if side != "" && side != match.SideHome && side != match.SideAway {
		return TeamStatistics{}, fmt.Errorf("%w: side must be %q or %q", ErrInvalidInput, match.SideHome, match.SideAway)
	}

	edges, err := s.matches.ListEdgesByTeam(ctx, canonical)
	if err != nil {
		return TeamStatistics{}, fmt.Errorf("list team edges: %w", err)
	}

	stats := TeamStatistics{Team: canonical, SeasonYear: seasonYear, Competition: competitionName, Side: side}
	for _, e := range edges {
		if seasonYear != 0 && e.SeasonYear != seasonYear {
			continue
		}
		if competitionName != "" && e.Competition != competitionName {
			continue
		}
		if side != "" && e.Side != side {
			continue
		}
		stats.Played++
		stats.GoalsFor += e.GoalsFor
		stats.GoalsAgainst += e.GoalsAgainst
		if e.GoalsAgainst == 0 {
			stats.CleanSheets++
		}
		switch e.Result {
		case match.ResultWin:
			stats.Wins++
			stats.Points += pointsPerWin
		case match.ResultDraw:
			stats.Draws++
			stats.Points += pointsPerDraw
		case match.ResultLoss:
			stats.Losses++
		}
	}
	return stats, nil
}

// HeadToHead compares two teams across every stored meeting in any
// competition.
func (s *QueryService) HeadToHead(ctx context.Context, teamA, teamB string) (HeadToHead, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.QueryService.HeadToHead")
	defer span.End()

	a, err := s.canonical(teamA)
	if err != nil {
		return HeadToHead{}, err
	}
	b, err := s.canonical(teamB)
	if err != nil {
		return HeadToHead{}, err
	}
	if a == b {
		return HeadToHead{}, fmt.Errorf("%w: %q resolves to both sides", ErrInvalidInput, teamA)
	}

	edges, err := s.matches.ListEdgesByTeam(ctx, a)
	if err != nil {
		return HeadToHead{}, fmt.Errorf("list team edges: %w", err)
	}

	h2h := HeadToHead{TeamA: a, TeamB: b}
	for _, e := range edges {
		if e.Opponent != b {
			continue
		}
		h2h.Matches++
		h2h.TeamAGoals += e.GoalsFor
		h2h.TeamBGoals += e.GoalsAgainst
		switch e.Result {
		case match.ResultWin:
			h2h.TeamAWins++
		case match.ResultLoss:
			h2h.TeamBWins++
		default:
			h2h.Draws++
		}
	}
	return h2h, nil
}

// Standings computes the table for a competition season from stored
// matches. Ordering is points, then goal difference, then goals scored,
// then name.
func (s *QueryService) Standings(ctx context.Context, competitionName string, seasonYear int) ([]StandingRow, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.QueryService.Standings")
	defer span.End()

	competitionName = strings.TrimSpace(competitionName)
	if competitionName == "" {
		return nil, fmt.Errorf("%w: competition name is required", ErrInvalidInput)
	}

	items, err := s.matches.ListByCompetition(ctx, competitionName)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	rows := map[string]*StandingRow{}
	tally := func(name string, goalsFor, goalsAgainst int) {
		row, ok := rows[name]
		if !ok {
			row = &StandingRow{Team: name}
			rows[name] = row
		}
		row.Played++
		row.GoalsFor += goalsFor
		row.GoalsAgainst += goalsAgainst
		switch match.DeriveResult(goalsFor, goalsAgainst) {
		case match.ResultWin:
			row.Wins++
			row.Points += pointsPerWin
		case match.ResultDraw:
			row.Draws++
			row.Points += pointsPerDraw
		default:
			row.Losses++
		}
	}
	for _, m := range items {
		if seasonYear != 0 && m.SeasonYear != seasonYear {
			continue
		}
		tally(m.HomeTeam, m.HomeGoals, m.AwayGoals)
		tally(m.AwayTeam, m.AwayGoals, m.HomeGoals)
	}

	table := make([]StandingRow, 0, len(rows))
	for _, row := range rows {
		row.GoalDifference = row.GoalsFor - row.GoalsAgainst
		table = append(table, *row)
	}
	sort.Slice(table, func(i, j int) bool {
		a, b := table[i], table[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDifference != b.GoalDifference {
			return a.GoalDifference > b.GoalDifference
		}
		if a.GoalsFor != b.GoalsFor {
			return a.GoalsFor > b.GoalsFor
		}
		return a.Team < b.Team
	})
	for i := range table {
		table[i].Position = i + 1
	}
	return table, nil
}

// RecentForm returns a team's latest results, newest first, optionally
// scoped to one competition.
func (s *QueryService) RecentForm(ctx context.Context, teamName, competitionName string, limit int) ([]FormEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.QueryService.RecentForm")
	defer span.End()

	canonical, err := s.canonical(teamName)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 5
	}

	edges, err := s.matches.ListEdgesByTeam(ctx, canonical)
	if err != nil {
		return nil, fmt.Errorf("list team edges: %w", err)
	}

	filtered := edges[:0:0]
	for _, e := range edges {
		if competitionName != "" && e.Competition != competitionName {
			continue
		}
		filtered = append(filtered, e)
	}
	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].KickoffAt.After(filtered[j].KickoffAt)
	})
	if len(filtered) > limit {
		filtered = filtered[:limit]
	}

	form := make([]FormEntry, 0, len(filtered))
	for _, e := range filtered {
		form = append(form, FormEntry{
			MatchKey:     e.MatchKey,
			KickoffAt:    e.KickoffAt.UTC().Format("2006-01-02T15:04:05Z"),
			Competition:  e.Competition,
			Opponent:     e.Opponent,
			Side:         e.Side,
			GoalsFor:     e.GoalsFor,
			GoalsAgainst: e.GoalsAgainst,
			Result:       e.Result,
		})
	}
	return form, nil
}

// CrossCompetitionTotals sums a team's record over every competition it has
// played in.
func (s *QueryService) CrossCompetitionTotals(ctx context.Context, teamName string) (CompetitionTotals, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.QueryService.CrossCompetitionTotals")
	defer span.End()

	canonical, err := s.canonical(teamName)
	if err != nil {
		return CompetitionTotals{}, err
	}

	edges, err := s.matches.ListEdgesByTeam(ctx, canonical)
	if err != nil {
		return CompetitionTotals{}, fmt.Errorf("list team edges: %w", err)
	}

	totals := CompetitionTotals{Team: canonical}
	seen := map[string]bool{}
	for _, e := range edges {
		if !seen[e.Competition] {
			seen[e.Competition] = true
			totals.Competitions = append(totals.Competitions, e.Competition)
		}
		totals.Played++
		totals.GoalsFor += e.GoalsFor
		totals.GoalsAgainst += e.GoalsAgainst
		switch e.Result {
		case match.ResultWin:
			totals.Wins++
			totals.Points += pointsPerWin
		case match.ResultDraw:
			totals.Draws++
			totals.Points += pointsPerDraw
		default:
			totals.Losses++
		}
	}
	sort.Strings(totals.Competitions)
	return totals, nil
}

// MatchesBetween lists every stored meeting of two teams, oldest first.
func (s *QueryService) MatchesBetween(ctx context.Context, teamA, teamB string) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.QueryService.MatchesBetween")
	defer span.End()

	a, err := s.canonical(teamA)
	if err != nil {
		return nil, err
	}
	b, err := s.canonical(teamB)
	if err != nil {
		return nil, err
	}

	all, err := s.matches.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	var meetings []match.Match
	for _, m := range all {
		if (m.HomeTeam == a && m.AwayTeam == b) || (m.HomeTeam == b && m.AwayTeam == a) {
			meetings = append(meetings, m)
		}
	}
	sort.Slice(meetings, func(i, j int) bool {
		return meetings[i].KickoffAt.Before(meetings[j].KickoffAt)
	})
	return meetings, nil
}

// MatchesByDateRange lists every match kicking off inside [from, to],
// oldest first. Both bounds are inclusive and required.
func (s *QueryService) MatchesByDateRange(ctx context.Context, from, to time.Time) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.QueryService.MatchesByDateRange")
	defer span.End()

	if from.IsZero() || to.IsZero() {
		return nil, fmt.Errorf("%w: both range bounds are required", ErrInvalidInput)
	}
	if to.Before(from) {
		return nil, fmt.Errorf("%w: range end precedes its start", ErrInvalidInput)
	}

	all, err := s.matches.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	var inRange []match.Match
	for _, m := range all {
		if m.KickoffAt.Before(from) || m.KickoffAt.After(to) {
			continue
		}
		inRange = append(inRange, m)
	}
	sort.Slice(inRange, func(i, j int) bool {
		return inRange[i].KickoffAt.Before(inRange[j].KickoffAt)
	})
	return inRange, nil
}

// TeamRoster lists the players currently affiliated with a team, with the
// contract attributes carried on each belongs-to edge.
func (s *QueryService) TeamRoster(ctx context.Context, teamName string) ([]player.Affiliation, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.QueryService.TeamRoster")
	defer span.End()

	canonical, err := s.canonical(teamName)
	if err != nil {
		return nil, err
	}

	roster, err := s.players.ListAffiliationsByTeam(ctx, canonical)
	if err != nil {
		return nil, fmt.Errorf("list affiliations: %w", err)
	}
	return roster, nil
}

// CompetitionEntrants lists the teams recorded as competing in a
// competition, optionally narrowed to one season.
func (s *QueryService) CompetitionEntrants(ctx context.Context, competitionName string, seasonYear int) ([]competition.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.QueryService.CompetitionEntrants")
	defer span.End()

	competitionName = strings.TrimSpace(competitionName)
	if competitionName == "" {
		return nil, fmt.Errorf("%w: competition name is required", ErrInvalidInput)
	}

	entries, err := s.competitions.ListEntries(ctx, competitionName, seasonYear)
	if err != nil {
		return nil, fmt.Errorf("list competition entries: %w", err)
	}
	return entries, nil
}

// TopTeamsByGoals ranks teams by goals scored in a season across all
// competitions.
func (s *QueryService) TopTeamsByGoals(ctx context.Context, seasonYear, limit int) ([]TeamGoals, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.QueryService.TopTeamsByGoals")
	defer span.End()

	if limit <= 0 {
		limit = 10
	}
	all, err := s.matches.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	goals := map[string]int{}
	for _, m := range all {
		if seasonYear != 0 && m.SeasonYear != seasonYear {
			continue
		}
		goals[m.HomeTeam] += m.HomeGoals
		goals[m.AwayTeam] += m.AwayGoals
	}
	ranked := make([]TeamGoals, 0, len(goals))
	for name, g := range goals {
		ranked = append(ranked, TeamGoals{Team: name, Goals: g})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Goals != ranked[j].Goals {
			return ranked[i].Goals > ranked[j].Goals
		}
		return ranked[i].Team < ranked[j].Team
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

// BiggestWins lists the most lopsided stored results, widest margin first.
func (s *QueryService) BiggestWins(ctx context.Context, competitionName string, limit int) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.QueryService.BiggestWins")
	defer span.End()

	if limit <= 0 {
		limit = 10
	}
	var (
		all []match.Match
		err error
	)
	if competitionName != "" {
		all, err = s.matches.ListByCompetition(ctx, competitionName)
	} else {
		all, err = s.matches.List(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	margin := func(m match.Match) int {
		d := m.HomeGoals - m.AwayGoals
		if d < 0 {
			d = -d
		}
		return d
	}
	var wins []match.Match
	for _, m := range all {
		if margin(m) > 0 {
			wins = append(wins, m)
		}
	}
	sort.Slice(wins, func(i, j int) bool {
		mi, mj := margin(wins[i]), margin(wins[j])
		if mi != mj {
			return mi > mj
		}
		return wins[i].KickoffAt.Before(wins[j].KickoffAt)
	})
	if len(wins) > limit {
		wins = wins[:limit]
	}
	return wins, nil
}

// AverageGoalsPerMatch returns the mean total goals of the selected
// matches, zero when nothing matches the filters.
func (s *QueryService) AverageGoalsPerMatch(ctx context.Context, competitionName string, seasonYear int) (float64, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.QueryService.AverageGoalsPerMatch")
	defer span.End()

	var (
		all []match.Match
		err error
	)
	if competitionName != "" {
		all, err = s.matches.ListByCompetition(ctx, competitionName)
	} else {
		all, err = s.matches.List(ctx)
	}
	if err != nil {
		return 0, fmt.Errorf("list matches: %w", err)
	}

	var played, goals int
	for _, m := range all {
		if seasonYear != 0 && m.SeasonYear != seasonYear {
			continue
		}
		played++
		goals += m.HomeGoals + m.AwayGoals
	}
	if played == 0 {
		return 0, nil
	}
	return float64(goals) / float64(played), nil
}

// SearchPlayers finds players by name fragment, optionally restricted to
// one club.
func (s *QueryService) SearchPlayers(ctx context.Context, name, clubName string) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.QueryService.SearchPlayers")
	defer span.End()

	name = strings.TrimSpace(name)
	clubName = strings.TrimSpace(clubName)
	if name == "" && clubName == "" {
		return nil, fmt.Errorf("%w: a name or club filter is required", ErrInvalidInput)
	}

	if name == "" {
		canonical := s.resolver.Resolve(clubName).Canonical
		items, err := s.players.ListByClub(ctx, canonical)
		if err != nil {
			return nil, fmt.Errorf("list players by club: %w", err)
		}
		return items, nil
	}

	items, err := s.players.SearchByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("search players: %w", err)
	}
	if clubName == "" {
		return items, nil
	}
	canonical := s.resolver.Resolve(clubName).Canonical
	filtered := items[:0:0]
	for _, p := range items {
		if p.Club == canonical {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

// SearchTeams finds stored teams whose canonical or display name contains
// the query, diacritic-insensitively.
func (s *QueryService) SearchTeams(ctx context.Context, query string) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.QueryService.SearchTeams")
	defer span.End()

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: search query is required", ErrInvalidInput)
	}
	items, err := s.teams.SearchByName(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search teams: %w", err)
	}
	return items, nil
}

// ListCompetitions returns every stored competition.
func (s *QueryService) ListCompetitions(ctx context.Context) ([]competition.Competition, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.QueryService.ListCompetitions")
	defer span.End()

	items, err := s.competitions.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list competitions: %w", err)
	}
	return items, nil
}

// TopRatedPlayers lists the highest-rated players on record.
func (s *QueryService) TopRatedPlayers(ctx context.Context, limit int) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.QueryService.TopRatedPlayers")
	defer span.End()

	if limit <= 0 {
		limit = 10
	}
	items, err := s.players.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Rating != items[j].Rating {
			return items[i].Rating > items[j].Rating
		}
		return items[i].Name < items[j].Name
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}
