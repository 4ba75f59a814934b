package player

import (
	"fmt"
	"time"
)

// Player is identified by the numeric id carried by the roster source.
// Rating, Potential, Club and Wage are volatile: a newer import overwrites
// them unconditionally.
type Player struct {
	ExternalID   int64
	Name         string
	Nationality  string
	Age          int
	Position     string
	Rating       int
	Potential    int
	Club         string
	WageEUR      int
	JerseyNumber int
	ContractYear int
	CreatedAt    time.Time
}

func (p Player) Validate() error {
	if p.ExternalID <= 0 {
		return fmt.Errorf("player external id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	return nil
}

// Affiliation is the belongs-to edge between a player and a club.
type Affiliation struct {
	PlayerID     int64
	TeamName     string
	JerseyNumber int
	WageEUR      int
	ContractYear int
	JoinedAt     time.Time
}
