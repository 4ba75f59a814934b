package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/brfutdata/matchgraph/internal/domain/player"
)

type PlayerRepository struct {
	mu    sync.RWMutex
	items map[int64]player.Player
	// affiliations[teamName][playerID]
	affiliations map[string]map[int64]player.Affiliation
}

func NewPlayerRepository() *PlayerRepository {
	return &PlayerRepository{
		items:        map[int64]player.Player{},
		affiliations: map[string]map[int64]player.Affiliation{},
	}
}

func (r *PlayerRepository) Get(_ context.Context, externalID int64) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.items[externalID]
	if !ok {
		return player.Player{}, false, nil
	}
	return p, true, nil
}

func (r *PlayerRepository) Create(_ context.Context, item player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ExternalID]; exists {
		return fmt.Errorf("player %d already exists", item.ExternalID)
	}
	r.items[item.ExternalID] = item
	return nil
}

func (r *PlayerRepository) Update(_ context.Context, item player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ExternalID]; !exists {
		return fmt.Errorf("player %d not found", item.ExternalID)
	}
	r.items[item.ExternalID] = item
	return nil
}

func (r *PlayerRepository) List(_ context.Context) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(r.items))
	for _, p := range r.items {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ExternalID < out[j].ExternalID })
	return out, nil
}

func (r *PlayerRepository) SearchByName(_ context.Context, query string) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []player.Player
	for _, p := range r.items {
		if foldContains(p.Name, query) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ExternalID < out[j].ExternalID })
	return out, nil
}

func (r *PlayerRepository) ListByClub(_ context.Context, teamName string) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []player.Player
	for _, p := range r.items {
		if p.Club == teamName {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ExternalID < out[j].ExternalID })
	return out, nil
}

func (r *PlayerRepository) UpsertAffiliation(_ context.Context, item player.Affiliation) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	byPlayer, ok := r.affiliations[item.TeamName]
	if !ok {
		byPlayer = map[int64]player.Affiliation{}
		r.affiliations[item.TeamName] = byPlayer
	}
	_, exists := byPlayer[item.PlayerID]
	if exists {
		// Keep the original JoinedAt; the rest tracks the latest import.
		item.JoinedAt = byPlayer[item.PlayerID].JoinedAt
	}
	byPlayer[item.PlayerID] = item
	return !exists, nil
}

func (r *PlayerRepository) DeleteAffiliation(_ context.Context, playerID int64, teamName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if byPlayer, ok := r.affiliations[teamName]; ok {
		delete(byPlayer, playerID)
	}
	return nil
}

func (r *PlayerRepository) ListAffiliationsByTeam(_ context.Context, teamName string) ([]player.Affiliation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byPlayer := r.affiliations[teamName]
	out := make([]player.Affiliation, 0, len(byPlayer))
	for _, a := range byPlayer {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlayerID < out[j].PlayerID })
	return out, nil
}
