package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/brfutdata/matchgraph/internal/domain/match"
	"github.com/brfutdata/matchgraph/internal/domain/stadium"
	"github.com/brfutdata/matchgraph/internal/platform/keylock"
	"github.com/brfutdata/matchgraph/internal/platform/logging"
)

// CorrelationReport summarizes one correlation pass: how many records found
// a stored match, how many found none, and how many were dropped because
// more than one match fit equally well.
type CorrelationReport struct {
	Source    string     `json:"source"`
	Applied   int        `json:"applied"`
	Missed    int        `json:"missed"`
	Ambiguous int        `json:"ambiguous"`
	Issues    []RowIssue `json:"issues,omitempty"`
}

// CorrelationService attaches records that arrive without a usable composite
// key onto already-merged matches. It runs after the match phase of a
// pipeline so the candidate set is complete.
type CorrelationService struct {
	matches  match.Repository
	stadiums stadium.Repository
	locks    *keylock.KeyLock
	logger   *logging.Logger
}

func NewCorrelationService(matches match.Repository, stadiums stadium.Repository, logger *logging.Logger) *CorrelationService {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &CorrelationService{
		matches:  matches,
		stadiums: stadiums,
		locks:    keylock.New(),
		logger:   logger,
	}
}

// ApplyStats correlates extended statistics onto stored matches. Candidates
// share the record's UTC calendar day and contain both team names; among
// them the nearest kickoff wins, and an exact distance tie is ambiguous and
// skipped. Statistics fill once and a second pass changes nothing.
func (s *CorrelationService) ApplyStats(ctx context.Context, recs []StatsRecord) (CorrelationReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CorrelationService.ApplyStats")
	defer span.End()

	report := CorrelationReport{}
	for i, rec := range recs {
		if report.Source == "" {
			report.Source = rec.Source
		}
		target, ok, ambiguous, err := s.findByKickoff(ctx, rec)
		if err != nil {
			return report, err
		}
		if ambiguous {
			report.Ambiguous++
			report.Issues = append(report.Issues, RowIssue{
				Kind: IssueCorrelationAmbiguity, Row: i,
				Detail: fmt.Sprintf("%s vs %s at %s fits multiple matches equally", rec.Home.Canonical, rec.Away.Canonical, rec.KickoffAt.Format(time.RFC3339)),
			})
			continue
		}
		if !ok {
			report.Missed++
			report.Issues = append(report.Issues, RowIssue{
				Kind: IssueCorrelationMiss, Row: i,
				Detail: fmt.Sprintf("no stored match for %s vs %s on %s", rec.Home.Canonical, rec.Away.Canonical, rec.KickoffAt.UTC().Format("2006-01-02")),
			})
			continue
		}
		if err := s.fillStats(ctx, target.Key(), rec); err != nil {
			return report, err
		}
		report.Applied++
	}
	return report, nil
}

func (s *CorrelationService) findByKickoff(ctx context.Context, rec StatsRecord) (match.Match, bool, bool, error) {
	day := rec.KickoffAt.UTC()
	candidates, err := s.matches.ListByDay(ctx, day)
	if err != nil {
		return match.Match{}, false, false, fmt.Errorf("list matches by day: %w", err)
	}

	var (
		best     match.Match
		bestDist time.Duration = -1
		tied     bool
	)
	for _, m := range candidates {
		if !teamNamesOverlap(m.HomeTeam, rec.Home.Canonical) || !teamNamesOverlap(m.AwayTeam, rec.Away.Canonical) {
			continue
		}
		dist := m.KickoffAt.Sub(rec.KickoffAt.UTC())
		if dist < 0 {
			dist = -dist
		}
		switch {
		case bestDist < 0 || dist < bestDist:
			best, bestDist, tied = m, dist, false
		case dist == bestDist:
			tied = true
		}
	}
	if bestDist < 0 {
		return match.Match{}, false, false, nil
	}
	if tied {
		return match.Match{}, false, true, nil
	}
	return best, true, false, nil
}

func (s *CorrelationService) fillStats(ctx context.Context, key string, rec StatsRecord) error {
	unlock := s.locks.Lock("match|" + key)
	defer unlock()

	stored, exists, err := s.matches.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: match=%s", ErrNotFound, key)
	}

	next := stored
	fill := func(dst **int, v int) {
		if *dst == nil {
			val := v
			*dst = &val
		}
	}
	fill(&next.HomeShots, rec.HomeShots)
	fill(&next.AwayShots, rec.AwayShots)
	fill(&next.HomeCorners, rec.HomeCorners)
	fill(&next.AwayCorners, rec.AwayCorners)
	fill(&next.HomeAttacks, rec.HomeAttacks)
	fill(&next.AwayAttacks, rec.AwayAttacks)
	if next == stored {
		return nil
	}
	if err := s.matches.Update(ctx, next); err != nil {
		return fmt.Errorf("update match: %w", err)
	}

	for _, side := range []struct {
		team                    string
		shots, corners, attacks int
	}{
		{stored.HomeTeam, rec.HomeShots, rec.HomeCorners, rec.HomeAttacks},
		{stored.AwayTeam, rec.AwayShots, rec.AwayCorners, rec.AwayAttacks},
	} {
		edge, ok, err := s.matches.GetEdge(ctx, side.team, key)
		if err != nil {
			return fmt.Errorf("get team edge: %w", err)
		}
		if !ok {
			continue
		}
		changed := false
		setEdge := func(dst **int, v int) {
			if *dst == nil {
				val := v
				*dst = &val
				changed = true
			}
		}
		setEdge(&edge.Shots, side.shots)
		setEdge(&edge.Corners, side.corners)
		setEdge(&edge.Attacks, side.attacks)
		if changed {
			if err := s.matches.UpdateEdge(ctx, edge); err != nil {
				return fmt.Errorf("update team edge: %w", err)
			}
		}
	}
	return nil
}

// ApplyVenues correlates archived venue facts onto stored matches by season
// and round, narrowing by team names when several rounds collide, then
// upserts the stadium and fills the match's venue if it is still unset.
func (s *CorrelationService) ApplyVenues(ctx context.Context, recs []VenueRecord) (CorrelationReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CorrelationService.ApplyVenues")
	defer span.End()

	report := CorrelationReport{}
	for i, rec := range recs {
		if report.Source == "" {
			report.Source = rec.Source
		}

		if err := s.upsertStadium(ctx, rec); err != nil {
			return report, err
		}

		candidates, err := s.findVenueCandidates(ctx, rec)
		if err != nil {
			return report, err
		}
		switch len(candidates) {
		case 0:
			report.Missed++
			report.Issues = append(report.Issues, RowIssue{
				Kind: IssueCorrelationMiss, Row: i,
				Detail: fmt.Sprintf("no stored match for season=%d round=%q", rec.SeasonYear, rec.Round),
			})
			continue
		case 1:
		default:
			report.Ambiguous++
			report.Issues = append(report.Issues, RowIssue{
				Kind: IssueCorrelationAmbiguity, Row: i,
				Detail: fmt.Sprintf("season=%d round=%q fits %d matches", rec.SeasonYear, rec.Round, len(candidates)),
			})
			continue
		}

		if err := s.fillVenue(ctx, candidates[0].Key(), rec.StadiumName); err != nil {
			return report, err
		}
		report.Applied++
	}
	return report, nil
}

func (s *CorrelationService) findVenueCandidates(ctx context.Context, rec VenueRecord) ([]match.Match, error) {
	all, err := s.matches.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	var byRound []match.Match
	for _, m := range all {
		if rec.SeasonYear != 0 && m.SeasonYear != rec.SeasonYear {
			continue
		}
		if rec.Round == "" || m.Round != rec.Round {
			continue
		}
		byRound = append(byRound, m)
	}
	byRound = narrowByTeams(byRound, rec)
	if len(byRound) > 0 {
		return byRound, nil
	}

	if rec.ExternalID == "" {
		return nil, nil
	}
	var byID []match.Match
	for _, m := range all {
		if m.ExternalID == "" {
			continue
		}
		if strings.Contains(m.ExternalID, rec.ExternalID) || strings.Contains(rec.ExternalID, m.ExternalID) {
			byID = append(byID, m)
		}
	}
	return narrowByTeams(byID, rec), nil
}

func narrowByTeams(candidates []match.Match, rec VenueRecord) []match.Match {
	if len(candidates) <= 1 || rec.Home.Canonical == "" || rec.Away.Canonical == "" {
		return candidates
	}
	var narrowed []match.Match
	for _, m := range candidates {
		if teamNamesOverlap(m.HomeTeam, rec.Home.Canonical) && teamNamesOverlap(m.AwayTeam, rec.Away.Canonical) {
			narrowed = append(narrowed, m)
		}
	}
	if len(narrowed) == 0 {
		return candidates
	}
	return narrowed
}

func (s *CorrelationService) upsertStadium(ctx context.Context, rec VenueRecord) error {
	unlock := s.locks.Lock("stadium|" + rec.StadiumName)
	defer unlock()

	stored, exists, err := s.stadiums.Get(ctx, rec.StadiumName)
	if err != nil {
		return fmt.Errorf("get stadium: %w", err)
	}
	if !exists {
		item := stadium.Stadium{
			Name:      rec.StadiumName,
			City:      rec.City,
			Region:    rec.Region,
			Capacity:  rec.Capacity,
			CreatedAt: time.Now().UTC(),
		}
		if err := s.stadiums.Create(ctx, item); err != nil {
			return fmt.Errorf("create stadium: %w", err)
		}
		return nil
	}

	next := stored
	if next.City == "" && rec.City != "" {
		next.City = rec.City
	}
	if next.Region == "" && rec.Region != "" {
		next.Region = rec.Region
	}
	if next.Capacity == 0 && rec.Capacity > 0 {
		next.Capacity = rec.Capacity
	}
	if next != stored {
		if err := s.stadiums.Update(ctx, next); err != nil {
			return fmt.Errorf("update stadium: %w", err)
		}
	}
	return nil
}

func (s *CorrelationService) fillVenue(ctx context.Context, key, stadiumName string) error {
	unlock := s.locks.Lock("match|" + key)
	defer unlock()

	stored, exists, err := s.matches.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("get match: %w", err)
	}
	if !exists || stored.Stadium != "" {
		return nil
	}
	stored.Stadium = stadiumName
	if err := s.matches.Update(ctx, stored); err != nil {
		return fmt.Errorf("update match: %w", err)
	}
	return nil
}

// teamNamesOverlap reports whether one canonical name contains the other,
// case-insensitively. Sources abbreviate unevenly, so containment in either
// direction counts.
func teamNamesOverlap(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	la, lb := strings.ToLower(a), strings.ToLower(b)
	return strings.Contains(la, lb) || strings.Contains(lb, la)
}
