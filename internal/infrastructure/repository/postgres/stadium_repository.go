package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/brfutdata/matchgraph/internal/domain/stadium"
	qb "github.com/brfutdata/matchgraph/internal/platform/querybuilder"
)

type StadiumRepository struct {
	db *sqlx.DB
}

func NewStadiumRepository(db *sqlx.DB) *StadiumRepository {
	return &StadiumRepository{db: db}
}

func (r *StadiumRepository) Get(ctx context.Context, name string) (stadium.Stadium, bool, error) {
	query, args, err := qb.Select("*").From("stadiums").Where(qb.Eq("name", name)).ToSQL()
	if err != nil {
		return stadium.Stadium{}, false, fmt.Errorf("build get stadium query: %w", err)
	}

	var row stadiumTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return stadium.Stadium{}, false, nil
		}
		return stadium.Stadium{}, false, fmt.Errorf("get stadium: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *StadiumRepository) Create(ctx context.Context, item stadium.Stadium) error {
	query, args, err := qb.InsertInto("stadiums").
		Set("name", item.Name).
		Set("city", nullString(item.City)).
		Set("region", nullString(item.Region)).
		Set("capacity", item.Capacity).
		Set("created_at", item.CreatedAt).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert stadium query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert stadium: %w", err)
	}
	return nil
}

func (r *StadiumRepository) Update(ctx context.Context, item stadium.Stadium) error {
	const query = `
		UPDATE stadiums
		SET city = $2, region = $3, capacity = $4
		WHERE name = $1`
	res, err := r.db.ExecContext(ctx, query,
		item.Name, nullString(item.City), nullString(item.Region), item.Capacity)
	if err != nil {
		return fmt.Errorf("update stadium: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("stadium %q not found", item.Name)
	}
	return nil
}

func (r *StadiumRepository) List(ctx context.Context) ([]stadium.Stadium, error) {
	query, args, err := qb.Select("*").From("stadiums").OrderBy("name").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list stadiums query: %w", err)
	}
	return r.selectStadiums(ctx, query, args)
}

func (r *StadiumRepository) SearchByName(ctx context.Context, search string) ([]stadium.Stadium, error) {
	pattern := "%" + search + "%"
	query, args, err := qb.Select("*").From("stadiums").
		Where(qb.Expr(
			"(unaccent(name) ILIKE unaccent(?) OR unaccent(coalesce(city, '')) ILIKE unaccent(?))",
			pattern, pattern,
		)).
		OrderBy("name").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build search stadiums query: %w", err)
	}
	return r.selectStadiums(ctx, query, args)
}

func (r *StadiumRepository) selectStadiums(ctx context.Context, query string, args []any) ([]stadium.Stadium, error) {
	var rows []stadiumTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select stadiums: %w", err)
	}
	out := make([]stadium.Stadium, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
