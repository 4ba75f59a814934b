package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/brfutdata/matchgraph/internal/domain/match"
)

// MatchRepository keeps matches in a key-addressed map plus a per-team
// adjacency index of played-home/played-away edges.
type MatchRepository struct {
	mu    sync.RWMutex
	items map[string]match.Match
	// edges[teamName][matchKey]
	edges map[string]map[string]match.TeamEdge
}

func NewMatchRepository() *MatchRepository {
	return &MatchRepository{
		items: map[string]match.Match{},
		edges: map[string]map[string]match.TeamEdge{},
	}
}

func (r *MatchRepository) Get(_ context.Context, key string) (match.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.items[key]
	if !ok {
		return match.Match{}, false, nil
	}
	return m, true, nil
}

func (r *MatchRepository) Create(_ context.Context, item match.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := item.Key()
	if _, exists := r.items[key]; exists {
		return fmt.Errorf("match %q already exists", key)
	}
	r.items[key] = item
	return nil
}

func (r *MatchRepository) Update(_ context.Context, item match.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := item.Key()
	if _, exists := r.items[key]; !exists {
		return fmt.Errorf("match %q not found", key)
	}
	r.items[key] = item
	return nil
}

func (r *MatchRepository) List(_ context.Context) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0, len(r.items))
	for _, m := range r.items {
		out = append(out, m)
	}
	sortMatches(out)
	return out, nil
}

func (r *MatchRepository) ListByCompetition(_ context.Context, competition string) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []match.Match
	for _, m := range r.items {
		if m.Competition == competition {
			out = append(out, m)
		}
	}
	sortMatches(out)
	return out, nil
}

func (r *MatchRepository) ListByDay(_ context.Context, day time.Time) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	y, mo, d := day.UTC().Date()
	var out []match.Match
	for _, m := range r.items {
		my, mmo, md := m.KickoffAt.UTC().Date()
		if my == y && mmo == mo && md == d {
			out = append(out, m)
		}
	}
	sortMatches(out)
	return out, nil
}

func (r *MatchRepository) CreateEdge(_ context.Context, edge match.TeamEdge) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	byMatch, ok := r.edges[edge.TeamName]
	if !ok {
		byMatch = map[string]match.TeamEdge{}
		r.edges[edge.TeamName] = byMatch
	}
	if _, exists := byMatch[edge.MatchKey]; exists {
		return false, nil
	}
	byMatch[edge.MatchKey] = edge
	return true, nil
}

func (r *MatchRepository) UpdateEdge(_ context.Context, edge match.TeamEdge) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	byMatch, ok := r.edges[edge.TeamName]
	if !ok {
		return fmt.Errorf("team %q has no edges", edge.TeamName)
	}
	if _, exists := byMatch[edge.MatchKey]; !exists {
		return fmt.Errorf("edge %s/%s not found", edge.TeamName, edge.MatchKey)
	}
	byMatch[edge.MatchKey] = edge
	return nil
}

func (r *MatchRepository) GetEdge(_ context.Context, teamName, matchKey string) (match.TeamEdge, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.edges[teamName][matchKey]
	return e, ok, nil
}

func (r *MatchRepository) ListEdgesByTeam(_ context.Context, teamName string) ([]match.TeamEdge, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byMatch := r.edges[teamName]
	out := make([]match.TeamEdge, 0, len(byMatch))
	for _, e := range byMatch {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].KickoffAt.Equal(out[j].KickoffAt) {
			return out[i].KickoffAt.Before(out[j].KickoffAt)
		}
		return out[i].MatchKey < out[j].MatchKey
	})
	return out, nil
}

func sortMatches(items []match.Match) {
	sort.Slice(items, func(i, j int) bool {
		if !items[i].KickoffAt.Equal(items[j].KickoffAt) {
			return items[i].KickoffAt.Before(items[j].KickoffAt)
		}
		return items[i].HomeTeam < items[j].HomeTeam
	})
}
