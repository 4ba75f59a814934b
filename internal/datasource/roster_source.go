package datasource

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/brfutdata/matchgraph/internal/platform/aliasing"
	"github.com/brfutdata/matchgraph/internal/usecase"
)

const DefaultRosterNationality = "Brazil"

// RosterSource adapts the player ratings file, keeping only players of one
// nationality. Rows of other nationalities are filtered, not faulted.
type RosterSource struct {
	rows        RowSource
	resolver    *aliasing.Resolver
	nationality string
}

func NewRosterSource(rows RowSource, resolver *aliasing.Resolver, nationality string) *RosterSource {
	if strings.TrimSpace(nationality) == "" {
		nationality = DefaultRosterNationality
	}
	return &RosterSource{rows: rows, resolver: resolver, nationality: nationality}
}

func (s *RosterSource) Name() string { return s.rows.Name() }

func (s *RosterSource) Players(ctx context.Context) ([]usecase.PlayerRecord, usecase.SourceReport, error) {
	rows, err := s.rows.Rows(ctx)
	if err != nil {
		return nil, usecase.SourceReport{Source: s.Name()}, fmt.Errorf("read %s: %w", s.Name(), err)
	}

	collector := newRowCollector(s.Name())
	records := make([]usecase.PlayerRecord, 0, len(rows))
	for i, row := range rows {
		collector.row()

		if !strings.EqualFold(row.get("nationality"), s.nationality) {
			collector.report.Skipped++
			continue
		}
		id, err := strconv.ParseInt(row.get("id"), 10, 64)
		if err != nil || id <= 0 {
			collector.skip(usecase.IssueParse, i, "id", fmt.Sprintf("bad player id %q", row.get("id")))
			continue
		}
		if row.get("name") == "" {
			collector.skip(usecase.IssueValidation, i, "name", "player name is required")
			continue
		}

		rec := usecase.PlayerRecord{
			Source:      s.Name(),
			ExternalID:  id,
			Name:        row.get("name"),
			Nationality: row.get("nationality"),
			Position:    row.get("position"),
		}
		if club := row.get("club"); club != "" {
			rec.Club = teamRef(s.resolver, club, "")
			collector.fallback(i, rec.Club)
		}

		parsed := true
		for _, col := range []struct {
			field string
			dst   *int
		}{
			{"age", &rec.Age},
			{"overall", &rec.Rating},
			{"potential", &rec.Potential},
			{"wage_eur", &rec.WageEUR},
			{"jersey_number", &rec.JerseyNumber},
			{"contract_year", &rec.ContractYear},
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
