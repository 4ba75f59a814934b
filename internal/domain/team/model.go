package team

import (
	"fmt"
	"time"
)

// Team is a football club under its canonical name. The canonical name is
// globally unique and is the merge target for every alias that resolves to it.
type Team struct {
	CanonicalName string
	Region        string
	DisplayName   string
	Aliases       []string
	CreatedAt     time.Time
}

func (t Team) Validate() error {
	if t.CanonicalName == "" {
		return fmt.Errorf("team canonical name is required")
	}
	return nil
}
