package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/brfutdata/matchgraph/internal/domain/team"
	qb "github.com/brfutdata/matchgraph/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) Get(ctx context.Context, canonicalName string) (team.Team, bool, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(qb.Eq("canonical_name", canonicalName)).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build get team query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("get team: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *TeamRepository) Create(ctx context.Context, item team.Team) error {
	query, args, err := qb.InsertInto("teams").
		Set("canonical_name", item.CanonicalName).
		Set("region", nullString(item.Region)).
		Set("display_name", nullString(item.DisplayName)).
		Set("aliases", pq.StringArray(item.Aliases)).
		Set("created_at", item.CreatedAt).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert team query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert team: %w", err)
	}
	return nil
}

func (r *TeamRepository) Update(ctx context.Context, item team.Team) error {
	const query = `
		UPDATE teams
		SET region = $2, display_name = $3, aliases = $4
		WHERE canonical_name = $1`
	res, err := r.db.ExecContext(ctx, query,
		item.CanonicalName, nullString(item.Region), nullString(item.DisplayName), pq.StringArray(item.Aliases))
	if err != nil {
		return fmt.Errorf("update team: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("team %q not found", item.CanonicalName)
	}
	return nil
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	query, args, err := qb.Select("*").From("teams").OrderBy("canonical_name").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list teams query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams: %w", err)
	}
	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *TeamRepository) SearchByName(ctx context.Context, search string) ([]team.Team, error) {
	pattern := "%" + search + "%"
	query, args, err := qb.Select("*").From("teams").
		Where(qb.Expr(
			"(unaccent(canonical_name) ILIKE unaccent(?) OR unaccent(coalesce(display_name, '')) ILIKE unaccent(?))",
			pattern, pattern,
		)).
		OrderBy("canonical_name").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build search teams query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("search teams: %w", err)
	}
	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
