package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/brfutdata/matchgraph/internal/domain/stadium"
)

type StadiumRepository struct {
	mu    sync.RWMutex
	items map[string]stadium.Stadium
}

func NewStadiumRepository() *StadiumRepository {
	return &StadiumRepository{items: map[string]stadium.Stadium{}}
}

func (r *StadiumRepository) Get(_ context.Context, name string) (stadium.Stadium, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.items[name]
	if !ok {
		return stadium.Stadium{}, false, nil
	}
	return s, true, nil
}

func (r *StadiumRepository) Create(_ context.Context, item stadium.Stadium) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.Name]; exists {
		return fmt.Errorf("stadium %q already exists", item.Name)
	}
	r.items[item.Name] = item
	return nil
}

func (r *StadiumRepository) Update(_ context.Context, item stadium.Stadium) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.Name]; !exists {
		return fmt.Errorf("stadium %q not found", item.Name)
	}
	r.items[item.Name] = item
	return nil
}

func (r *StadiumRepository) List(_ context.Context) ([]stadium.Stadium, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]stadium.Stadium, 0, len(r.items))
	for _, s := range r.items {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *StadiumRepository) SearchByName(_ context.Context, query string) ([]stadium.Stadium, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []stadium.Stadium
	for _, s := range r.items {
		if foldContains(s.Name, query) || foldContains(s.City, query) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
