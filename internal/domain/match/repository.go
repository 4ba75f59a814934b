package match

import (
	"context"
	"time"
)

type Repository interface {
	Get(ctx context.Context, key string) (Match, bool, error)
	Create(ctx context.Context, item Match) error
	Update(ctx context.Context, item Match) error
	List(ctx context.Context) ([]Match, error)
	ListByCompetition(ctx context.Context, competition string) ([]Match, error)
	// ListByDay returns matches whose kickoff falls on the given UTC
	// calendar day, the candidate window for best-effort correlation.
	ListByDay(ctx context.Context, day time.Time) ([]Match, error)

	// CreateEdge is idempotent per (team, match): an existing edge is left
	// untouched and created=false is returned.
	CreateEdge(ctx context.Context, edge TeamEdge) (created bool, err error)
	UpdateEdge(ctx context.Context, edge TeamEdge) error
	GetEdge(ctx context.Context, teamName, matchKey string) (TeamEdge, bool, error)
	ListEdgesByTeam(ctx context.Context, teamName string) ([]TeamEdge, error)
}
