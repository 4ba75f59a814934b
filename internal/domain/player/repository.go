package player

import "context"

type Repository interface {
	Get(ctx context.Context, externalID int64) (Player, bool, error)
	Create(ctx context.Context, item Player) error
	Update(ctx context.Context, item Player) error
	List(ctx context.Context) ([]Player, error)
	SearchByName(ctx context.Context, query string) ([]Player, error)
	ListByClub(ctx context.Context, teamName string) ([]Player, error)

	// UpsertAffiliation is idempotent per (player, team): re-creating an
	// existing edge refreshes its attributes without duplicating it.
	UpsertAffiliation(ctx context.Context, item Affiliation) (created bool, err error)
	// DeleteAffiliation removes one (player, team) edge. Deleting an edge
	// that does not exist is not an error.
	DeleteAffiliation(ctx context.Context, playerID int64, teamName string) error
	ListAffiliationsByTeam(ctx context.Context, teamName string) ([]Affiliation, error)
}
