package datasource

import (
	"context"
	"fmt"

	"github.com/brfutdata/matchgraph/internal/domain/competition"
	"github.com/brfutdata/matchgraph/internal/platform/aliasing"
	"github.com/brfutdata/matchgraph/internal/usecase"
)

// MatchFileSource adapts one competition's match file. The league, cup and
// international files share columns; the competition identity and the stage
// column are what distinguish them.
type MatchFileSource struct {
	rows     RowSource
	resolver *aliasing.Resolver

	competitionName    string
	competitionCountry string
	competitionType    competition.Type
	readStage          bool
}

// NewLeagueSource adapts the national league match file.
func NewLeagueSource(rows RowSource, resolver *aliasing.Resolver) *MatchFileSource {
	return &MatchFileSource{
		rows:               rows,
		resolver:           resolver,
		competitionName:    "Brasileirão Série A",
		competitionCountry: "Brazil",
		competitionType:    competition.TypeLeague,
	}
}

// NewCupSource adapts the national cup match file. Round is free text and
// carried verbatim.
func NewCupSource(rows RowSource, resolver *aliasing.Resolver) *MatchFileSource {
	return &MatchFileSource{
		rows:               rows,
		resolver:           resolver,
		competitionName:    "Copa do Brasil",
		competitionCountry: "Brazil",
		competitionType:    competition.TypeCup,
	}
}

// NewInternationalSource adapts the continental cup match file, which adds
// a group/knockout stage column.
func NewInternationalSource(rows RowSource, resolver *aliasing.Resolver) *MatchFileSource {
	return &MatchFileSource{
		rows:               rows,
		resolver:           resolver,
		competitionName:    "Copa Libertadores",
		competitionCountry: "South America",
		competitionType:    competition.TypeInternational,
		readStage:          true,
	}
}

func (s *MatchFileSource) Name() string { return s.rows.Name() }

func (s *MatchFileSource) Matches(ctx context.Context) ([]usecase.MatchRecord, usecase.SourceReport, error) {
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

		home := teamRef(s.resolver, row.get("home_team"), row.get("home_region"))
		away := teamRef(s.resolver, row.get("away_team"), row.get("away_region"))
		collector.fallback(i, home)
		collector.fallback(i, away)
		if home.Canonical == away.Canonical {
			collector.skip(usecase.IssueValidation, i, "away_team", "home and away resolve to the same team")
			continue
		}

		rec := usecase.MatchRecord{
			Source:             s.Name(),
			KickoffAt:          kickoff,
			Home:               home,
			Away:               away,
			HomeGoals:          homeGoals,
			AwayGoals:          awayGoals,
			Round:              row.get("round"),
			SeasonYear:         seasonYear,
			Competition:        s.competitionName,
			CompetitionCountry: s.competitionCountry,
			CompetitionType:    s.competitionType,
			StadiumName:        row.get("stadium"),
		}
		if s.readStage {
			rec.Stage = row.get("stage")
		}
		records = append(records, rec)
	}
	return records, collector.report, nil
}
