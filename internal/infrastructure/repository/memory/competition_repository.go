package memory

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/brfutdata/matchgraph/internal/domain/competition"
)

type CompetitionRepository struct {
	mu    sync.RWMutex
	items map[string]competition.Competition
	// entries keyed by team|competition|season
	entries map[string]competition.Entry
}

func NewCompetitionRepository() *CompetitionRepository {
	return &CompetitionRepository{
		items:   map[string]competition.Competition{},
		entries: map[string]competition.Entry{},
	}
}

func (r *CompetitionRepository) Get(_ context.Context, name string) (competition.Competition, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.items[name]
	if !ok {
		return competition.Competition{}, false, nil
	}
	return c, true, nil
}

func (r *CompetitionRepository) Create(_ context.Context, item competition.Competition) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.Name]; exists {
		return fmt.Errorf("competition %q already exists", item.Name)
	}
	r.items[item.Name] = item
	return nil
}

func (r *CompetitionRepository) Update(_ context.Context, item competition.Competition) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.Name]; !exists {
		return fmt.Errorf("competition %q not found", item.Name)
	}
	r.items[item.Name] = item
	return nil
}

func (r *CompetitionRepository) List(_ context.Context) ([]competition.Competition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]competition.Competition, 0, len(r.items))
	for _, c := range r.items {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *CompetitionRepository) UpsertEntry(_ context.Context, item competition.Entry) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := entryKey(item)
	_, exists := r.entries[key]
	r.entries[key] = item
	return !exists, nil
}

func (r *CompetitionRepository) ListEntries(_ context.Context, competitionName string, seasonYear int) ([]competition.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []competition.Entry
	for _, e := range r.entries {
		if e.CompetitionName != competitionName {
			continue
		}
		if seasonYear != 0 && e.SeasonYear != seasonYear {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SeasonYear != out[j].SeasonYear {
			return out[i].SeasonYear < out[j].SeasonYear
		}
		return out[i].TeamName < out[j].TeamName
	})
	return out, nil
}

func entryKey(e competition.Entry) string {
	return e.TeamName + "|" + e.CompetitionName + "|" + strconv.Itoa(e.SeasonYear)
}
