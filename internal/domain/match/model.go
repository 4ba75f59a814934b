package match

import (
	"fmt"
	"time"
)

// Result classifies one side's outcome. It is always derived from the two
// goal totals, never trusted from a source row.
type Result string

const (
	ResultWin  Result = "WIN"
	ResultDraw Result = "DRAW"
	ResultLoss Result = "LOSS"
)

// DeriveResult returns the outcome for the side that scored goalsFor.
func DeriveResult(goalsFor, goalsAgainst int) Result {
	switch {
	case goalsFor > goalsAgainst:
		return ResultWin
	case goalsFor < goalsAgainst:
		return ResultLoss
	default:
		return ResultDraw
	}
}

type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
)

// Match is one played fixture. Its identity is the composite of kickoff time
// and the two canonical team names; Key derives the stable string form used
// everywhere a match is referenced.
type Match struct {
	KickoffAt   time.Time
	HomeTeam    string
	AwayTeam    string
	HomeGoals   int
	AwayGoals   int
	Round       string
	Stage       string
	SeasonYear  int
	Competition string
	Stadium     string
	ExternalID  string

	// Extended statistics are fillable once and never overwritten.
	HomeShots   *int
	AwayShots   *int
	HomeCorners *int
	AwayCorners *int
	HomeAttacks *int
	AwayAttacks *int

	CreatedAt time.Time
}

// Key derives the composite identity key for a match.
func Key(kickoff time.Time, homeTeam, awayTeam string) string {
	return kickoff.UTC().Format(time.RFC3339) + "|" + homeTeam + "|" + awayTeam
}

func (m Match) Key() string {
	return Key(m.KickoffAt, m.HomeTeam, m.AwayTeam)
}

func (m Match) Validate() error {
	if m.KickoffAt.IsZero() {
		return fmt.Errorf("match kickoff time is required")
	}
	if m.HomeTeam == "" || m.AwayTeam == "" {
		return fmt.Errorf("match requires both team names")
	}
	if m.HomeTeam == m.AwayTeam {
		return fmt.Errorf("match home and away team must differ")
	}
	if m.HomeGoals < 0 || m.AwayGoals < 0 {
		return fmt.Errorf("match goals cannot be negative")
	}
	return nil
}

// TeamEdge is one played-home/played-away relationship. The redundant
// kickoff/competition/season attributes keep per-team aggregation a single
// adjacency scan.
type TeamEdge struct {
	TeamName     string
	MatchKey     string
	Side         Side
	Opponent     string
	KickoffAt    time.Time
	Competition  string
	SeasonYear   int
	GoalsFor     int
	GoalsAgainst int
	Result       Result

	Shots   *int
	Corners *int
	Attacks *int
}
