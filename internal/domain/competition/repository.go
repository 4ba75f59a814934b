package competition

import "context"

type Repository interface {
	Get(ctx context.Context, name string) (Competition, bool, error)
	Create(ctx context.Context, item Competition) error
	Update(ctx context.Context, item Competition) error
	List(ctx context.Context) ([]Competition, error)

	// UpsertEntry is idempotent per (team, competition, season).
	UpsertEntry(ctx context.Context, item Entry) (created bool, err error)
	ListEntries(ctx context.Context, competitionName string, seasonYear int) ([]Entry, error)
}
