package stadium

import "context"

type Repository interface {
	Get(ctx context.Context, name string) (Stadium, bool, error)
	Create(ctx context.Context, item Stadium) error
	Update(ctx context.Context, item Stadium) error
	List(ctx context.Context) ([]Stadium, error)
	SearchByName(ctx context.Context, query string) ([]Stadium, error)
}
