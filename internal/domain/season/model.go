package season

import (
	"fmt"
	"strconv"
	"time"
)

// Season is the (year, competition) pairing a match belongs to. Immutable.
type Season struct {
	Year        int
	Competition string
	CreatedAt   time.Time
}

func Key(year int, competition string) string {
	return strconv.Itoa(year) + "|" + competition
}

func (s Season) Key() string {
	return Key(s.Year, s.Competition)
}

func (s Season) Validate() error {
	if s.Year <= 0 {
		return fmt.Errorf("season year is required")
	}
	if s.Competition == "" {
		return fmt.Errorf("season competition is required")
	}
	return nil
}
