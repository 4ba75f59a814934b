package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/brfutdata/matchgraph/internal/domain/match"
	qb "github.com/brfutdata/matchgraph/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) Get(ctx context.Context, key string) (match.Match, bool, error) {
	query, args, err := qb.Select("*").From("matches").Where(qb.Eq("key", key)).ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build get match query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("get match: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *MatchRepository) Create(ctx context.Context, item match.Match) error {
	query, args, err := qb.InsertInto("matches").
		Set("key", item.Key()).
		Set("kickoff_at", item.KickoffAt.UTC()).
		Set("home_team", item.HomeTeam).
		Set("away_team", item.AwayTeam).
		Set("home_goals", item.HomeGoals).
		Set("away_goals", item.AwayGoals).
		Set("round", nullString(item.Round)).
		Set("stage", nullString(item.Stage)).
		Set("season_year", item.SeasonYear).
		Set("competition", item.Competition).
		Set("stadium", nullString(item.Stadium)).
		Set("external_id", nullString(item.ExternalID)).
		Set("home_shots", nullIntPtr(item.HomeShots)).
		Set("away_shots", nullIntPtr(item.AwayShots)).
		Set("home_corners", nullIntPtr(item.HomeCorners)).
		Set("away_corners", nullIntPtr(item.AwayCorners)).
		Set("home_attacks", nullIntPtr(item.HomeAttacks)).
		Set("away_attacks", nullIntPtr(item.AwayAttacks)).
		Set("created_at", item.CreatedAt).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert match query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert match: %w", err)
	}
	return nil
}

func (r *MatchRepository) Update(ctx context.Context, item match.Match) error {
	const query = `
		UPDATE matches
		SET round = $2, stage = $3, stadium = $4, external_id = $5,
		    home_shots = $6, away_shots = $7,
		    home_corners = $8, away_corners = $9,
		    home_attacks = $10, away_attacks = $11
		WHERE key = $1`
	res, err := r.db.ExecContext(ctx, query,
		item.Key(),
		nullString(item.Round), nullString(item.Stage),
		nullString(item.Stadium), nullString(item.ExternalID),
		nullIntPtr(item.HomeShots), nullIntPtr(item.AwayShots),
		nullIntPtr(item.HomeCorners), nullIntPtr(item.AwayCorners),
		nullIntPtr(item.HomeAttacks), nullIntPtr(item.AwayAttacks),
	)
	if err != nil {
		return fmt.Errorf("update match: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("match %q not found", item.Key())
	}
	return nil
}

func (r *MatchRepository) List(ctx context.Context) ([]match.Match, error) {
	query, args, err := qb.Select("*").From("matches").
		OrderBy("kickoff_at", "home_team").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list matches query: %w", err)
	}
	return r.selectMatches(ctx, query, args)
}

func (r *MatchRepository) ListByCompetition(ctx context.Context, competition string) ([]match.Match, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(qb.Eq("competition", competition)).
		OrderBy("kickoff_at", "home_team").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list matches by competition query: %w", err)
	}
	return r.selectMatches(ctx, query, args)
}

func (r *MatchRepository) ListByDay(ctx context.Context, day time.Time) ([]match.Match, error) {
	start := time.Date(day.UTC().Year(), day.UTC().Month(), day.UTC().Day(), 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)
	query, args, err := qb.Select("*").From("matches").
		Where(qb.Expr("kickoff_at >= ? AND kickoff_at < ?", start, end)).
		OrderBy("kickoff_at", "home_team").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list matches by day query: %w", err)
	}
	return r.selectMatches(ctx, query, args)
}

func (r *MatchRepository) selectMatches(ctx context.Context, query string, args []any) ([]match.Match, error) {
	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matches: %w", err)
	}
	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *MatchRepository) CreateEdge(ctx context.Context, edge match.TeamEdge) (bool, error) {
	query, args, err := qb.InsertInto("team_edges").
		Set("team_name", edge.TeamName).
		Set("match_key", edge.MatchKey).
		Set("side", string(edge.Side)).
		Set("opponent", edge.Opponent).
		Set("kickoff_at", edge.KickoffAt.UTC()).
		Set("competition", edge.Competition).
		Set("season_year", edge.SeasonYear).
		Set("goals_for", edge.GoalsFor).
		Set("goals_against", edge.GoalsAgainst).
		Set("result", string(edge.Result)).
		Set("shots", nullIntPtr(edge.Shots)).
		Set("corners", nullIntPtr(edge.Corners)).
		Set("attacks", nullIntPtr(edge.Attacks)).
		Suffix("ON CONFLICT (team_name, match_key) DO NOTHING").
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build insert team edge query: %w", err)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("insert team edge: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert team edge rows affected: %w", err)
	}
	return n > 0, nil
}

func (r *MatchRepository) UpdateEdge(ctx context.Context, edge match.TeamEdge) error {
	const query = `
		UPDATE team_edges
		SET shots = $3, corners = $4, attacks = $5
		WHERE team_name = $1 AND match_key = $2`
	res, err := r.db.ExecContext(ctx, query,
		edge.TeamName, edge.MatchKey,
		nullIntPtr(edge.Shots), nullIntPtr(edge.Corners), nullIntPtr(edge.Attacks))
	if err != nil {
		return fmt.Errorf("update team edge: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("edge %s/%s not found", edge.TeamName, edge.MatchKey)
	}
	return nil
}

func (r *MatchRepository) GetEdge(ctx context.Context, teamName, matchKey string) (match.TeamEdge, bool, error) {
	query, args, err := qb.Select("*").From("team_edges").
		Where(qb.Eq("team_name", teamName), qb.Eq("match_key", matchKey)).
		ToSQL()
	if err != nil {
		return match.TeamEdge{}, false, fmt.Errorf("build get team edge query: %w", err)
	}

	var row teamEdgeTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.TeamEdge{}, false, nil
		}
		return match.TeamEdge{}, false, fmt.Errorf("get team edge: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *MatchRepository) ListEdgesByTeam(ctx context.Context, teamName string) ([]match.TeamEdge, error) {
	query, args, err := qb.Select("*").From("team_edges").
		Where(qb.Eq("team_name", teamName)).
		OrderBy("kickoff_at", "match_key").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list team edges query: %w", err)
	}

	var rows []teamEdgeTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select team edges: %w", err)
	}
	out := make([]match.TeamEdge, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
