package datasource

import (
	"context"
	"fmt"
	"time"

	"github.com/brfutdata/matchgraph/internal/platform/aliasing"
	"github.com/brfutdata/matchgraph/internal/usecase"
)

// ExtendedStatsSource adapts the extended-statistics file. Its rows carry
// no goals and no season, only the kickoff, the team names and the per-side
// shot/corner/attack counts, so they correlate onto stored matches instead
// of merging as matches themselves.
type ExtendedStatsSource struct {
	rows     RowSource
	resolver *aliasing.Resolver
}

func NewExtendedStatsSource(rows RowSource, resolver *aliasing.Resolver) *ExtendedStatsSource {
	return &ExtendedStatsSource{rows: rows, resolver: resolver}
}

func (s *ExtendedStatsSource) Name() string { return s.rows.Name() }

func (s *ExtendedStatsSource) Stats(ctx context.Context) ([]usecase.StatsRecord, usecase.SourceReport, error) {
	rows, err := s.rows.Rows(ctx)
	if err != nil {
		return nil, usecase.SourceReport{Source: s.Name()}, fmt.Errorf("read %s: %w", s.Name(), err)
	}

	collector := newRowCollector(s.Name())
	records := make([]usecase.StatsRecord, 0, len(rows))
	for i, row := range rows {
		collector.row()

		kickoff, err := parseDate(row.get("date"))
		if err != nil {
			collector.skip(usecase.IssueParse, i, "date", err.Error())
			continue
		}
		// A separate time column refines a date-only kickoff.
		if clock := row.get("time"); clock != "" {
			if t, err := time.ParseInLocation("15:04", clock, time.UTC); err == nil {
				kickoff = time.Date(kickoff.Year(), kickoff.Month(), kickoff.Day(),
					t.Hour(), t.Minute(), 0, 0, time.UTC)
			}
		}
		if row.get("home_team") == "" || row.get("away_team") == "" {
			collector.skip(usecase.IssueValidation, i, "home_team", "both team names are required")
			continue
		}

		rec := usecase.StatsRecord{
			Source:    s.Name(),
			KickoffAt: kickoff,
			Home:      teamRef(s.resolver, row.get("home_team"), ""),
			Away:      teamRef(s.resolver, row.get("away_team"), ""),
		}
		collector.fallback(i, rec.Home)
		collector.fallback(i, rec.Away)

		parsed := true
		for _, col := range []struct {
			field string
			dst   *int
		}{
			{"home_shots", &rec.HomeShots},
			{"away_shots", &rec.AwayShots},
			{"home_corners", &rec.HomeCorners},
			{"away_corners", &rec.AwayCorners},
			{"home_attacks", &rec.HomeAttacks},
			{"away_attacks", &rec.AwayAttacks},
		} {
			n, err := optionalInt(row.get(col.field))
			if err != nil {
				collector.skip(usecase.IssueParse, i, col.field, err.Error())
				parsed = false
				break
			}
			*col.dst = n
		}
		if !parsed {
			continue
		}
		records = append(records, rec)
	}
	return records, collector.report, nil
}
