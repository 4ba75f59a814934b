package season

import "context"

type Repository interface {
	Get(ctx context.Context, year int, competition string) (Season, bool, error)
	Create(ctx context.Context, item Season) error
	List(ctx context.Context) ([]Season, error)
}
