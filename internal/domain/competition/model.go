package competition

import (
	"fmt"
	"time"
)

type Type string

const (
	TypeLeague        Type = "league"
	TypeCup           Type = "cup"
	TypeInternational Type = "international"
)

// Competition is a tournament identified by name. Country and Type are
// immutable once set; a later import disagreeing with them is a conflict,
// not an update.
type Competition struct {
	Name      string
	Country   string
	Type      Type
	CreatedAt time.Time
}

func (c Competition) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("competition name is required")
	}
	switch c.Type {
	case "", TypeLeague, TypeCup, TypeInternational:
	default:
		return fmt.Errorf("unknown competition type %q", c.Type)
	}
	return nil
}

// Entry is the competes-in edge between a team and a competition,
// discriminated by season year.
type Entry struct {
	TeamName        string
	CompetitionName string
	SeasonYear      int
}
