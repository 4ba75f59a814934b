package httpapi

import (
	"time"

	"github.com/brfutdata/matchgraph/internal/domain/competition"
	"github.com/brfutdata/matchgraph/internal/domain/match"
	"github.com/brfutdata/matchgraph/internal/domain/player"
	"github.com/brfutdata/matchgraph/internal/domain/team"
)

type teamDTO struct {
	CanonicalName string   `json:"canonicalName"`
	Region        string   `json:"region,omitempty"`
	DisplayName   string   `json:"displayName,omitempty"`
	Aliases       []string `json:"aliases,omitempty"`
}

func teamToDTO(t team.Team) teamDTO {
	return teamDTO{
		CanonicalName: t.CanonicalName,
		Region:        t.Region,
		DisplayName:   t.DisplayName,
		Aliases:       t.Aliases,
	}
}

type matchDTO struct {
	Key         string `json:"key"`
	KickoffAt   string `json:"kickoffAt"`
	HomeTeam    string `json:"homeTeam"`
	AwayTeam    string `json:"awayTeam"`
	HomeGoals   int    `json:"homeGoals"`
	AwayGoals   int    `json:"awayGoals"`
	Round       string `json:"round,omitempty"`
	Stage       string `json:"stage,omitempty"`
	SeasonYear  int    `json:"seasonYear"`
	Competition string `json:"competition"`
	Stadium     string `json:"stadium,omitempty"`
	HomeShots   *int   `json:"homeShots,omitempty"`
	AwayShots   *int   `json:"awayShots,omitempty"`
	HomeCorners *int   `json:"homeCorners,omitempty"`
	AwayCorners *int   `json:"awayCorners,omitempty"`
	HomeAttacks *int   `json:"homeAttacks,omitempty"`
	AwayAttacks *int   `json:"awayAttacks,omitempty"`
}

func matchToDTO(m match.Match) matchDTO {
	return matchDTO{
		Key:         m.Key(),
		KickoffAt:   m.KickoffAt.UTC().Format(time.RFC3339),
		HomeTeam:    m.HomeTeam,
		AwayTeam:    m.AwayTeam,
		HomeGoals:   m.HomeGoals,
		AwayGoals:   m.AwayGoals,
		Round:       m.Round,
		Stage:       m.Stage,
		SeasonYear:  m.SeasonYear,
		Competition: m.Competition,
		Stadium:     m.Stadium,
		HomeShots:   m.HomeShots,
		AwayShots:   m.AwayShots,
		HomeCorners: m.HomeCorners,
		AwayCorners: m.AwayCorners,
		HomeAttacks: m.HomeAttacks,
		AwayAttacks: m.AwayAttacks,
	}
}

func matchesToDTO(items []match.Match) []matchDTO {
	out := make([]matchDTO, 0, len(items))
	for _, m := range items {
		out = append(out, matchToDTO(m))
	}
	return out
}

type playerDTO struct {
	ExternalID   int64  `json:"externalId"`
	Name         string `json:"name"`
	Nationality  string `json:"nationality,omitempty"`
	Age          int    `json:"age,omitempty"`
	Position     string `json:"position,omitempty"`
	Rating       int    `json:"rating,omitempty"`
	Potential    int    `json:"potential,omitempty"`
	Club         string `json:"club,omitempty"`
	WageEUR      int    `json:"wageEur,omitempty"`
	JerseyNumber int    `json:"jerseyNumber,omitempty"`
	ContractYear int    `json:"contractYear,omitempty"`
}

func playerToDTO(p player.Player) playerDTO {
	return playerDTO{
		ExternalID:   p.ExternalID,
		Name:         p.Name,
		Nationality:  p.Nationality,
		Age:          p.Age,
		Position:     p.Position,
		Rating:       p.Rating,
		Potential:    p.Potential,
		Club:         p.Club,
		WageEUR:      p.WageEUR,
		JerseyNumber: p.JerseyNumber,
		ContractYear: p.ContractYear,
	}
}

func playersToDTO(items []player.Player) []playerDTO {
	out := make([]playerDTO, 0, len(items))
	for _, p := range items {
		out = append(out, playerToDTO(p))
	}
	return out
}

type affiliationDTO struct {
	PlayerID     int64  `json:"playerId"`
	TeamName     string `json:"teamName"`
	JerseyNumber int    `json:"jerseyNumber,omitempty"`
	WageEUR      int    `json:"wageEur,omitempty"`
	ContractYear int    `json:"contractYear,omitempty"`
	JoinedAt     string `json:"joinedAt"`
}

func affiliationsToDTO(items []player.Affiliation) []affiliationDTO {
	out := make([]affiliationDTO, 0, len(items))
	for _, a := range items {
		out = append(out, affiliationDTO{
			PlayerID:     a.PlayerID,
			TeamName:     a.TeamName,
			JerseyNumber: a.JerseyNumber,
			WageEUR:      a.WageEUR,
			ContractYear: a.ContractYear,
			JoinedAt:     a.JoinedAt.UTC().Format(time.RFC3339),
		})
	}
	return out
}

type entryDTO struct {
	Team        string `json:"team"`
	Competition string `json:"competition"`
	SeasonYear  int    `json:"seasonYear"`
}

func entriesToDTO(items []competition.Entry) []entryDTO {
	out := make([]entryDTO, 0, len(items))
	for _, e := range items {
		out = append(out, entryDTO{
			Team:        e.TeamName,
			Competition: e.CompetitionName,
			SeasonYear:  e.SeasonYear,
		})
	}
	return out
}

type competitionDTO struct {
	Name    string `json:"name"`
	Country string `json:"country,omitempty"`
	Type    string `json:"type,omitempty"`
}

func competitionToDTO(c competition.Competition) competitionDTO {
	return competitionDTO{
		Name:    c.Name,
		Country: c.Country,
		Type:    string(c.Type),
	}
}
