package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/brfutdata/matchgraph/internal/domain/season"
)

type SeasonRepository struct {
	mu    sync.RWMutex
	items map[string]season.Season
}

func NewSeasonRepository() *SeasonRepository {
	return &SeasonRepository{items: map[string]season.Season{}}
}

func (r *SeasonRepository) Get(_ context.Context, year int, competition string) (season.Season, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.items[season.Key(year, competition)]
	if !ok {
		return season.Season{}, false, nil
	}
	return s, true, nil
}

func (r *SeasonRepository) Create(_ context.Context, item season.Season) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := item.Key()
	if _, exists := r.items[key]; exists {
		return fmt.Errorf("season %q already exists", key)
	}
	r.items[key] = item
	return nil
}

func (r *SeasonRepository) List(_ context.Context) ([]season.Season, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]season.Season, 0, len(r.items))
	for _, s := range r.items {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Competition < out[j].Competition
	})
	return out, nil
}
