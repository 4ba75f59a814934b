package team

import "context"

// Repository describes team persistence needs from use cases.
type Repository interface {
	Get(ctx context.Context, canonicalName string) (Team, bool, error)
	Create(ctx context.Context, item Team) error
	Update(ctx context.Context, item Team) error
	List(ctx context.Context) ([]Team, error)
	// SearchByName matches case- and diacritic-insensitively on canonical
	// and display names.
	SearchByName(ctx context.Context, query string) ([]Team, error)
}
