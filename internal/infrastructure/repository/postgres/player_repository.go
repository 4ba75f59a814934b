package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/brfutdata/matchgraph/internal/domain/player"
	qb "github.com/brfutdata/matchgraph/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) Get(ctx context.Context, externalID int64) (player.Player, bool, error) {
	query, args, err := qb.Select("*").From("players").
		Where(qb.Eq("external_id", externalID)).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build get player query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("get player: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *PlayerRepository) Create(ctx context.Context, item player.Player) error {
	query, args, err := qb.InsertInto("players").
		Set("external_id", item.ExternalID).
		Set("name", item.Name).
		Set("nationality", nullString(item.Nationality)).
		Set("age", item.Age).
		Set("position", nullString(item.Position)).
		Set("rating", item.Rating).
		Set("potential", item.Potential).
		Set("club", nullString(item.Club)).
		Set("wage_eur", item.WageEUR).
		Set("jersey_number", item.JerseyNumber).
		Set("contract_year", item.ContractYear).
		Set("created_at", item.CreatedAt).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert player query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert player: %w", err)
	}
	return nil
}

func (r *PlayerRepository) Update(ctx context.Context, item player.Player) error {
	const query = `
		UPDATE players
		SET name = $2, nationality = $3, age = $4, position = $5,
		    rating = $6, potential = $7, club = $8, wage_eur = $9,
		    jersey_number = $10, contract_year = $11
		WHERE external_id = $1`
	res, err := r.db.ExecContext(ctx, query,
		item.ExternalID, item.Name, nullString(item.Nationality), item.Age,
		nullString(item.Position), item.Rating, item.Potential, nullString(item.Club),
		item.WageEUR, item.JerseyNumber, item.ContractYear)
	if err != nil {
		return fmt.Errorf("update player: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("player %d not found", item.ExternalID)
	}
	return nil
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	query, args, err := qb.Select("*").From("players").OrderBy("external_id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list players query: %w", err)
	}
	return r.selectPlayers(ctx, query, args)
}

func (r *PlayerRepository) SearchByName(ctx context.Context, search string) ([]player.Player, error) {
	query, args, err := qb.Select("*").From("players").
		Where(qb.Expr("unaccent(name) ILIKE unaccent(?)", "%"+search+"%")).
		OrderBy("external_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build search players query: %w", err)
	}
	return r.selectPlayers(ctx, query, args)
}

func (r *PlayerRepository) ListByClub(ctx context.Context, teamName string) ([]player.Player, error) {
	query, args, err := qb.Select("*").From("players").
		Where(qb.Eq("club", teamName)).
		OrderBy("external_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list players by club query: %w", err)
	}
	return r.selectPlayers(ctx, query, args)
}

func (r *PlayerRepository) selectPlayers(ctx context.Context, query string, args []any) ([]player.Player, error) {
	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players: %w", err)
	}
	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *PlayerRepository) UpsertAffiliation(ctx context.Context, item player.Affiliation) (bool, error) {
	// joined_at survives re-imports; the other attributes track the latest
	// roster file. xmax = 0 distinguishes a fresh insert from an update.
	query, args, err := qb.InsertInto("player_affiliations").
		Set("player_id", item.PlayerID).
		Set("team_name", item.TeamName).
		Set("jersey_number", item.JerseyNumber).
		Set("wage_eur", item.WageEUR).
		Set("contract_year", item.ContractYear).
		Set("joined_at", item.JoinedAt).
		Suffix(`ON CONFLICT (player_id, team_name) DO UPDATE
			SET jersey_number = EXCLUDED.jersey_number,
			    wage_eur = EXCLUDED.wage_eur,
			    contract_year = EXCLUDED.contract_year
			RETURNING (xmax = 0) AS inserted`).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build upsert affiliation query: %w", err)
	}

	var inserted bool
	if err := r.db.GetContext(ctx, &inserted, query, args...); err != nil {
		return false, fmt.Errorf("upsert affiliation: %w", err)
	}
	return inserted, nil
}

func (r *PlayerRepository) DeleteAffiliation(ctx context.Context, playerID int64, teamName string) error {
	const query = `DELETE FROM player_affiliations WHERE player_id = $1 AND team_name = $2`
	if _, err := r.db.ExecContext(ctx, query, playerID, teamName); err != nil {
		return fmt.Errorf("delete affiliation: %w", err)
	}
	return nil
}

func (r *PlayerRepository) ListAffiliationsByTeam(ctx context.Context, teamName string) ([]player.Affiliation, error) {
	query, args, err := qb.Select("*").From("player_affiliations").
		Where(qb.Eq("team_name", teamName)).
		OrderBy("player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list affiliations query: %w", err)
	}

	var rows []affiliationTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select affiliations: %w", err)
	}
	out := make([]player.Affiliation, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
