package stadium

import (
	"fmt"
	"time"
)

// Stadium is a venue identified by name. City, Region and Capacity are
// fillable once unset values arrive from a later source.
type Stadium struct {
	Name      string
	City      string
	Region    string
	Capacity  int
	CreatedAt time.Time
}

func (s Stadium) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("stadium name is required")
	}
	if s.Capacity < 0 {
		return fmt.Errorf("stadium capacity cannot be negative")
	}
	return nil
}
