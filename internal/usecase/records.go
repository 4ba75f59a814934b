package usecase

import (
	"context"
	"time"

	"github.com/brfutdata/matchgraph/internal/domain/competition"
)

// TeamRef is a team mention after alias resolution. Raw keeps the exact
// source spelling for alias bookkeeping; Canonical is the merge target.
type TeamRef struct {
	Raw       string `validate:"required"`
	Canonical string `validate:"required"`
	Region    string
	Known     bool
}

// MatchRecord is a fully parsed and resolved match row, the common shape
// every match-bearing source adapts into before merging.
type MatchRecord struct {
	Source             string    `validate:"required"`
	KickoffAt          time.Time `validate:"required"`
	Home               TeamRef
	Away               TeamRef
	HomeGoals          int `validate:"min=0"`
	AwayGoals          int `validate:"min=0"`
	Round              string
	Stage              string
	SeasonYear         int    `validate:"required,min=1900"`
	Competition        string `validate:"required"`
	CompetitionCountry string
	CompetitionType    competition.Type
	StadiumName        string
	ExternalID         string
}

// StatsRecord carries extended statistics that arrive without a usable
// composite key and must be correlated onto a stored match.
type StatsRecord struct {
	Source    string    `validate:"required"`
	KickoffAt time.Time `validate:"required"`
	Home      TeamRef
	Away      TeamRef

	HomeShots   int `validate:"min=0"`
	AwayShots   int `validate:"min=0"`
	HomeCorners int `validate:"min=0"`
	AwayCorners int `validate:"min=0"`
	HomeAttacks int `validate:"min=0"`
	AwayAttacks int `validate:"min=0"`
}

// VenueRecord carries stadium facts from the archive, addressed by the
// season/round (or external id) of the match it was observed on.
type VenueRecord struct {
	Source      string `validate:"required"`
	SeasonYear  int
	Round       string
	ExternalID  string
	Home        TeamRef
	Away        TeamRef
	StadiumName string `validate:"required"`
	City        string
	Region      string
	Capacity    int `validate:"min=0"`
}

// PlayerRecord is a parsed roster row.
type PlayerRecord struct {
	Source       string `validate:"required"`
	ExternalID   int64  `validate:"required,gt=0"`
	Name         string `validate:"required"`
	Nationality  string
	Age          int `validate:"min=0"`
	Position     string
	Rating       int     `validate:"min=0,max=100"`
	Potential    int     `validate:"min=0,max=100"`
	Club         TeamRef `validate:"structonly"`
	WageEUR      int     `validate:"min=0"`
	JerseyNumber int     `validate:"min=0"`
	ContractYear int
}

// SourceReport summarizes one adapter pass over its file: how many rows it
// read, how many it dropped, and why.
type SourceReport struct {
	Source  string     `json:"source"`
	Rows    int        `json:"rows"`
	Skipped int        `json:"skipped"`
	Issues  []RowIssue `json:"issues,omitempty"`
}

// MatchSource adapts one dataset into match records. A returned error means
// the source itself could not be read; per-row problems are reported, not
// returned.
type MatchSource interface {
	Name() string
	Matches(ctx context.Context) ([]MatchRecord, SourceReport, error)
}

type PlayerSource interface {
	Name() string
	Players(ctx context.Context) ([]PlayerRecord, SourceReport, error)
}

type StatsSource interface {
	Name() string
	Stats(ctx context.Context) ([]StatsRecord, SourceReport, error)
}

type VenueSource interface {
	Name() string
	Venues(ctx context.Context) ([]VenueRecord, SourceReport, error)
}
