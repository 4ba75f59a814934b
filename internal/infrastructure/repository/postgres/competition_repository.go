package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/brfutdata/matchgraph/internal/domain/competition"
	qb "github.com/brfutdata/matchgraph/internal/platform/querybuilder"
)

type CompetitionRepository struct {
	db *sqlx.DB
}

func NewCompetitionRepository(db *sqlx.DB) *CompetitionRepository {
	return &CompetitionRepository{db: db}
}

func (r *CompetitionRepository) Get(ctx context.Context, name string) (competition.Competition, bool, error) {
	query, args, err := qb.Select("*").From("competitions").Where(qb.Eq("name", name)).ToSQL()
	if err != nil {
		return competition.Competition{}, false, fmt.Errorf("build get competition query: %w", err)
	}

	var row competitionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return competition.Competition{}, false, nil
		}
		return competition.Competition{}, false, fmt.Errorf("get competition: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *CompetitionRepository) Create(ctx context.Context, item competition.Competition) error {
	query, args, err := qb.InsertInto("competitions").
		Set("name", item.Name).
		Set("country", nullString(item.Country)).
		Set("type", nullString(string(item.Type))).
		Set("created_at", item.CreatedAt).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert competition query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert competition: %w", err)
	}
	return nil
}

func (r *CompetitionRepository) Update(ctx context.Context, item competition.Competition) error {
	const query = `
		UPDATE competitions
		SET country = $2, type = $3
		WHERE name = $1`
	res, err := r.db.ExecContext(ctx, query,
		item.Name, nullString(item.Country), nullString(string(item.Type)))
	if err != nil {
		return fmt.Errorf("update competition: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("competition %q not found", item.Name)
	}
	return nil
}

func (r *CompetitionRepository) List(ctx context.Context) ([]competition.Competition, error) {
	query, args, err := qb.Select("*").From("competitions").OrderBy("name").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list competitions query: %w", err)
	}

	var rows []competitionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select competitions: %w", err)
	}
	out := make([]competition.Competition, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *CompetitionRepository) UpsertEntry(ctx context.Context, item competition.Entry) (bool, error) {
	query, args, err := qb.InsertInto("competition_entries").
		Set("team_name", item.TeamName).
		Set("competition_name", item.CompetitionName).
		Set("season_year", item.SeasonYear).
		Suffix("ON CONFLICT (team_name, competition_name, season_year) DO NOTHING").
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build upsert entry query: %w", err)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("upsert entry: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("upsert entry rows affected: %w", err)
	}
	return n > 0, nil
}

func (r *CompetitionRepository) ListEntries(ctx context.Context, competitionName string, seasonYear int) ([]competition.Entry, error) {
	builder := qb.Select("*").From("competition_entries").
		Where(qb.Eq("competition_name", competitionName))
	if seasonYear != 0 {
		builder = builder.Where(qb.Eq("season_year", seasonYear))
	}
	query, args, err := builder.OrderBy("season_year", "team_name").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list entries query: %w", err)
	}

	var rows []entryTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select entries: %w", err)
	}
	out := make([]competition.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
