package datasource

import (
	"context"
	"fmt"

	"github.com/brfutdata/matchgraph/internal/domain/competition"
	"github.com/brfutdata/matchgraph/internal/platform/aliasing"
	"github.com/brfutdata/matchgraph/internal/usecase"
)

// HistoricalSource adapts the archive file. It is both a match source, so
// archive rows can fill gaps on matches sharing the composite key, and a
// venue source carrying the stadium facts the live files lack.
type HistoricalSource struct {
	rows     RowSource
	resolver *aliasing.Resolver
}

func NewHistoricalSource(rows RowSource, resolver *aliasing.Resolver) *HistoricalSource {
	return &HistoricalSource{rows: rows, resolver: resolver}
}

func (s *HistoricalSource) Name() string { return s.rows.Name() }

func (s *HistoricalSource) Matches(ctx context.Context) ([]usecase.MatchRecord, usecase.SourceReport, error) {
	rows, err := s.rows.Rows(ctx)
	if err != nil {
		return nil, usecase.SourceReport{Source: s.Name()}, fmt.Errorf("read %s: %w", s.Name(), err)
	}

	collector := newRowCollector(s.Name())
	records := make([]usecase.MatchRecord, 0, len(rows))
	for i, row := range rows {
		collector.row()

		kickoff, err := parseDate(row.get("date"))
		if err != nil {
			collector.skip(usecase.IssueParse, i, "date", err.Error())
			continue
		}
		if row.get("home_team") == "" || row.get("away_team") == "" {
			collector.skip(usecase.IssueValidation, i, "home_team", "both team names are required")
			continue
		}
		homeGoals, err := parseInt(row.get("home_goals"))
		if err != nil {
			collector.skip(usecase.IssueParse, i, "home_goals", err.Error())
			continue
		}
		awayGoals, err := parseInt(row.get("away_goals"))
		if err != nil {
			collector.skip(usecase.IssueParse, i, "away_goals", err.Error())
			continue
		}
		seasonYear, err := optionalInt(row.get("season"))
		if err != nil {
			collector.skip(usecase.IssueParse, i, "season", err.Error())
			continue
		}
		if seasonYear == 0 {
			seasonYear = kickoff.Year()
		}

		home := teamRef(s.resolver, row.get("home_team"), "")
		away := teamRef(s.resolver, row.get("away_team"), "")
		collector.fallback(i, home)
		collector.fallback(i, away)
		if home.Canonical == away.Canonical {
			collector.skip(usecase.IssueValidation, i, "away_team", "home and away resolve to the same team")
			continue
		}

		competitionName := row.get("competition")
		if competitionName == "" {
			competitionName = "Historical"
		}

		records = append(records, usecase.MatchRecord{
			Source:             s.Name(),
			KickoffAt:          kickoff,
			Home:               home,
			Away:               away,
			HomeGoals:          homeGoals,
			AwayGoals:          awayGoals,
			Round:              row.get("round"),
			SeasonYear:         seasonYear,
			Competition:        competitionName,
			CompetitionCountry: "Brazil",
			CompetitionType:    competition.TypeLeague,
			StadiumName:        row.get("stadium"),
			ExternalID:         row.get("match_id"),
		})
	}
	return records, collector.report, nil
}

func (s *HistoricalSource) Venues(ctx context.Context) ([]usecase.VenueRecord, usecase.SourceReport, error) {
	rows, err := s.rows.Rows(ctx)
	if err != nil {
		return nil, usecase.SourceReport{Source: s.Name()}, fmt.Errorf("read %s: %w", s.Name(), err)
	}

	collector := newRowCollector(s.Name())
	records := make([]usecase.VenueRecord, 0, len(rows))
	for i, row := range rows {
		collector.row()

		if row.get("stadium") == "" {
			collector.skip(usecase.IssueValidation, i, "stadium", "row carries no stadium")
			continue
		}
		seasonYear, err := optionalInt(row.get("season"))
		if err != nil {
			collector.skip(usecase.IssueParse, i, "season", err.Error())
			continue
		}
		capacity, err := optionalInt(row.get("capacity"))
		if err != nil {
			collector.skip(usecase.IssueParse, i, "capacity", err.Error())
			continue
		}

		records = append(records, usecase.VenueRecord{
			Source:      s.Name(),
			SeasonYear:  seasonYear,
			Round:       row.get("round"),
			ExternalID:  row.get("match_id"),
			Home:        teamRef(s.resolver, row.get("home_team"), ""),
			Away:        teamRef(s.resolver, row.get("away_team"), ""),
			StadiumName: row.get("stadium"),
			City:        row.get("city"),
			Region:      row.get("state"),
			Capacity:    capacity,
		})
	}
	return records, collector.report, nil
}
