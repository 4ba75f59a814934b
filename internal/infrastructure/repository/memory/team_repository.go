package memory

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"

	"github.com/brfutdata/matchgraph/internal/domain/team"
)

type TeamRepository struct {
	mu    sync.RWMutex
	items map[string]team.Team
}

func NewTeamRepository() *TeamRepository {
	return &TeamRepository{items: map[string]team.Team{}}
}

func (r *TeamRepository) Get(_ context.Context, canonicalName string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.items[canonicalName]
	if !ok {
		return team.Team{}, false, nil
	}
	return cloneTeam(t), true, nil
}

func (r *TeamRepository) Create(_ context.Context, item team.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.CanonicalName]; exists {
		return fmt.Errorf("team %q already exists", item.CanonicalName)
	}
	r.items[item.CanonicalName] = cloneTeam(item)
	return nil
}

func (r *TeamRepository) Update(_ context.Context, item team.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.CanonicalName]; !exists {
		return fmt.Errorf("team %q not found", item.CanonicalName)
	}
	r.items[item.CanonicalName] = cloneTeam(item)
	return nil
}

func (r *TeamRepository) List(_ context.Context) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0, len(r.items))
	for _, t := range r.items {
		out = append(out, cloneTeam(t))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CanonicalName < out[j].CanonicalName })
	return out, nil
}

func (r *TeamRepository) SearchByName(_ context.Context, query string) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []team.Team
	for _, t := range r.items {
		if foldContains(t.CanonicalName, query) || foldContains(t.DisplayName, query) {
			out = append(out, cloneTeam(t))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CanonicalName < out[j].CanonicalName })
	return out, nil
}

func cloneTeam(t team.Team) team.Team {
	t.Aliases = slices.Clone(t.Aliases)
	return t
}
