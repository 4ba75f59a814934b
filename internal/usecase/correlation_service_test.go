package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/brfutdata/matchgraph/internal/domain/match"
	"github.com/brfutdata/matchgraph/internal/usecase"
)

func newCorrelationFixture() (*fixture, *usecase.CorrelationService) {
	f := newFixture()
	return f, usecase.NewCorrelationService(f.matches, f.stadiums, nil)
}

func statsRecord(kickoff time.Time) usecase.StatsRecord {
	return usecase.StatsRecord{
		Source:      "extended",
		KickoffAt:   kickoff,
		Home:        ref("Flamengo"),
		Away:        ref("Palmeiras"),
		HomeShots:   14,
		AwayShots:   9,
		HomeCorners: 7,
		AwayCorners: 3,
		HomeAttacks: 52,
		AwayAttacks: 41,
	}
}

func TestApplyStatsPicksNearestKickoffOnTheDay(t *testing.T) {
	t.Parallel()

	f, corr := newCorrelationFixture()
	ctx := context.Background()

	early := matchRecord()
	early.KickoffAt = time.Date(2023, 5, 7, 16, 0, 0, 0, time.UTC)
	late := matchRecord()
	late.KickoffAt = time.Date(2023, 5, 7, 21, 0, 0, 0, time.UTC)
	for _, rec := range []usecase.MatchRecord{early, late} {
		if _, err := f.ingestion.MergeMatch(ctx, rec); err != nil {
			t.Fatalf("merge: %v", err)
		}
	}

	// 20:00 is one hour from the late kickoff and four from the early one.
	report, err := corr.ApplyStats(ctx, []usecase.StatsRecord{
		statsRecord(time.Date(2023, 5, 7, 20, 0, 0, 0, time.UTC)),
	})
	if err != nil {
		t.Fatalf("apply stats: %v", err)
	}
	if report.Applied != 1 || report.Missed != 0 || report.Ambiguous != 0 {
		t.Fatalf("unexpected report %+v", report)
	}

	lateKey := match.Key(late.KickoffAt, "Flamengo", "Palmeiras")
	stored, _, _ := f.matches.Get(ctx, lateKey)
	if stored.HomeShots == nil || *stored.HomeShots != 14 {
		t.Fatalf("late match should carry stats: %+v", stored)
	}
	earlyKey := match.Key(early.KickoffAt, "Flamengo", "Palmeiras")
	untouched, _, _ := f.matches.Get(ctx, earlyKey)
	if untouched.HomeShots != nil {
		t.Fatal("early match must stay untouched")
	}

	edge, ok, _ := f.matches.GetEdge(ctx, "Flamengo", lateKey)
	if !ok || edge.Shots == nil || *edge.Shots != 14 || *edge.Corners != 7 {
		t.Fatalf("home edge stats not filled: %+v", edge)
	}
	away, _, _ := f.matches.GetEdge(ctx, "Palmeiras", lateKey)
	if away.Shots == nil || *away.Shots != 9 {
		t.Fatalf("away edge stats not filled: %+v", away)
	}
}

func TestApplyStatsFillsOnceOnly(t *testing.T) {
	t.Parallel()

	f, corr := newCorrelationFixture()
	ctx := context.Background()

	rec := matchRecord()
	if _, err := f.ingestion.MergeMatch(ctx, rec); err != nil {
		t.Fatalf("merge: %v", err)
	}

	first := statsRecord(rec.KickoffAt)
	if _, err := corr.ApplyStats(ctx, []usecase.StatsRecord{first}); err != nil {
		t.Fatalf("first apply: %v", err)
	}

	second := first
	second.HomeShots = 99
	if _, err := corr.ApplyStats(ctx, []usecase.StatsRecord{second}); err != nil {
		t.Fatalf("second apply: %v", err)
	}

	key := match.Key(rec.KickoffAt, "Flamengo", "Palmeiras")
	stored, _, _ := f.matches.Get(ctx, key)
	if *stored.HomeShots != 14 {
		t.Fatalf("statistics fill once, got %d", *stored.HomeShots)
	}
}

func TestApplyStatsSkipsExactDistanceTies(t *testing.T) {
	t.Parallel()

	f, corr := newCorrelationFixture()
	ctx := context.Background()

	before := matchRecord()
	before.KickoffAt = time.Date(2023, 5, 7, 18, 0, 0, 0, time.UTC)
	after := matchRecord()
	after.KickoffAt = time.Date(2023, 5, 7, 20, 0, 0, 0, time.UTC)
	for _, rec := range []usecase.MatchRecord{before, after} {
		if _, err := f.ingestion.MergeMatch(ctx, rec); err != nil {
			t.Fatalf("merge: %v", err)
		}
	}

	report, err := corr.ApplyStats(ctx, []usecase.StatsRecord{
		statsRecord(time.Date(2023, 5, 7, 19, 0, 0, 0, time.UTC)),
	})
	if err != nil {
		t.Fatalf("apply stats: %v", err)
	}
	if report.Ambiguous != 1 || report.Applied != 0 {
		t.Fatalf("equidistant candidates must be ambiguous: %+v", report)
	}
}

func TestApplyStatsReportsMisses(t *testing.T) {
	t.Parallel()

	_, corr := newCorrelationFixture()
	ctx := context.Background()

	report, err := corr.ApplyStats(ctx, []usecase.StatsRecord{
		statsRecord(time.Date(2023, 5, 7, 19, 0, 0, 0, time.UTC)),
	})
	if err != nil {
		t.Fatalf("apply stats: %v", err)
	}
	if report.Missed != 1 || report.Applied != 0 {
		t.Fatalf("record without a stored match must miss: %+v", report)
	}
	if len(report.Issues) != 1 || report.Issues[0].Kind != usecase.IssueCorrelationMiss {
		t.Fatalf("miss must be reported as an issue: %+v", report.Issues)
	}
}

func TestApplyVenuesFillsStadiumBySeasonAndRound(t *testing.T) {
	t.Parallel()

	f, corr := newCorrelationFixture()
	ctx := context.Background()

	rec := matchRecord()
	if _, err := f.ingestion.MergeMatch(ctx, rec); err != nil {
		t.Fatalf("merge: %v", err)
	}

	report, err := corr.ApplyVenues(ctx, []usecase.VenueRecord{{
		Source:      "archive",
		SeasonYear:  2023,
		Round:       "25",
		Home:        ref("Flamengo"),
		Away:        ref("Palmeiras"),
		StadiumName: "Maracanã",
		City:        "Rio de Janeiro",
		Region:      "RJ",
		Capacity:    78838,
	}})
	if err != nil {
		t.Fatalf("apply venues: %v", err)
	}
	if report.Applied != 1 {
		t.Fatalf("unexpected report %+v", report)
	}

	key := match.Key(rec.KickoffAt, "Flamengo", "Palmeiras")
	stored, _, _ := f.matches.Get(ctx, key)
	if stored.Stadium != "Maracanã" {
		t.Fatalf("venue not filled: %+v", stored)
	}

	s, ok, _ := f.stadiums.Get(ctx, "Maracanã")
	if !ok {
		t.Fatal("stadium not created")
	}
	if s.City != "Rio de Janeiro" || s.Capacity != 78838 {
		t.Fatalf("stadium facts not stored: %+v", s)
	}
}
