package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc/pool"

	"github.com/brfutdata/matchgraph/internal/platform/logging"
)

const defaultMergeWorkers = 8

// IngestSummary is the per-source accounting of one pipeline run.
type IngestSummary struct {
	Source    string     `json:"source"`
	Rows      int        `json:"rows"`
	Processed int        `json:"processed"`
	Skipped   int        `json:"skipped"`
	Created   int        `json:"created"`
	Updated   int        `json:"updated"`
	Unchanged int        `json:"unchanged"`
	Conflicts []Conflict `json:"conflicts,omitempty"`
	Issues    []RowIssue `json:"issues,omitempty"`
	Failed    bool       `json:"failed,omitempty"`
	Error     string     `json:"error,omitempty"`
}

// PipelineResult is the full accounting of one run across every source.
type PipelineResult struct {
	Sources      []IngestSummary     `json:"sources"`
	Correlations []CorrelationReport `json:"correlations,omitempty"`
	Processed    int                 `json:"processed"`
	Skipped      int                 `json:"skipped"`
	Created      int                 `json:"created"`
	Updated      int                 `json:"updated"`
	Unchanged    int                 `json:"unchanged"`
	Conflicts    int                 `json:"conflicts"`
	DurationMs   int64               `json:"durationMs"`
}

// PipelineService drives a full ingestion run: sources adapt their files in
// parallel, records merge through a bounded worker pool, and key-addressed
// correlation runs only after every match has been merged. A source that
// fails to read marks its own summary failed without stopping the run.
type PipelineService struct {
	ingestion   *IngestionService
	correlation *CorrelationService

	matchSources  []MatchSource
	playerSources []PlayerSource
	statsSources  []StatsSource
	venueSources  []VenueSource

	workers int
	logger  *logging.Logger
}

func NewPipelineService(
	ingestion *IngestionService,
	correlation *CorrelationService,
	workers int,
	logger *logging.Logger,
) *PipelineService {
	if workers <= 0 {
		workers = defaultMergeWorkers
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &PipelineService{
		ingestion:   ingestion,
		correlation: correlation,
		workers:     workers,
		logger:      logger,
	}
}

func (s *PipelineService) AddMatchSource(src MatchSource) {
	s.matchSources = append(s.matchSources, src)
}
func (s *PipelineService) AddPlayerSource(src PlayerSource) {
	s.playerSources = append(s.playerSources, src)
}
func (s *PipelineService) AddStatsSource(src StatsSource) {
	s.statsSources = append(s.statsSources, src)
}
func (s *PipelineService) AddVenueSource(src VenueSource) {
	s.venueSources = append(s.venueSources, src)
}

type matchBatch struct {
	name    string
	records []MatchRecord
	report  SourceReport
	err     error
}

type playerBatch struct {
	name    string
	records []PlayerRecord
	report  SourceReport
	err     error
}

// Run executes the complete pipeline. It returns an error only when the
// engine itself cannot run; per-source read failures are reported in the
// result.
func (s *PipelineService) Run(ctx context.Context) (PipelineResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PipelineService.Run")
	defer span.End()

	start := time.Now()
	result := PipelineResult{}

	matchBatches, playerBatches := s.adaptSources(ctx)

	mergePool, err := ants.NewPool(s.workers)
	if err != nil {
		return PipelineResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer mergePool.Release()

	for _, b := range matchBatches {
		summary, err := s.mergeMatchBatch(ctx, mergePool, b)
		if err != nil {
			return PipelineResult{}, err
		}
		result.Sources = append(result.Sources, summary)
	}
	for _, b := range playerBatches {
		summary, err := s.mergePlayerBatch(ctx, mergePool, b)
		if err != nil {
			return PipelineResult{}, err
		}
		result.Sources = append(result.Sources, summary)
	}

	correlations, summaries, err := s.correlate(ctx)
	if err != nil {
		return PipelineResult{}, err
	}
	result.Correlations = correlations
	result.Sources = append(result.Sources, summaries...)

	sort.SliceStable(result.Sources, func(i, j int) bool {
		return result.Sources[i].Source < result.Sources[j].Source
	})
	for _, summary := range result.Sources {
		result.Processed += summary.Processed
		result.Skipped += summary.Skipped
		result.Created += summary.Created
		result.Updated += summary.Updated
		result.Unchanged += summary.Unchanged
		result.Conflicts += len(summary.Conflicts)
	}
	result.DurationMs = time.Since(start).Milliseconds()

	s.logger.InfoContext(ctx, "pipeline run finished",
		"sources", len(result.Sources),
		"processed", result.Processed,
		"skipped", result.Skipped,
		"conflicts", result.Conflicts,
		"duration_ms", result.DurationMs,
	)
	return result, nil
}

// adaptSources reads and parses every match and player source concurrently.
// Adapters only read their own file, so the fan-out is safe before any
// merging starts.
func (s *PipelineService) adaptSources(ctx context.Context) ([]matchBatch, []playerBatch) {
	matchPool := pool.NewWithResults[matchBatch]().WithContext(ctx).WithMaxGoroutines(s.workers)
	for _, src := range s.matchSources {
		src := src
		matchPool.Go(func(ctx context.Context) (matchBatch, error) {
			records, report, err := src.Matches(ctx)
			return matchBatch{name: src.Name(), records: records, report: report, err: err}, nil
		})
	}

	playerPool := pool.NewWithResults[playerBatch]().WithContext(ctx).WithMaxGoroutines(s.workers)
	for _, src := range s.playerSources {
		src := src
		playerPool.Go(func(ctx context.Context) (playerBatch, error) {
			records, report, err := src.Players(ctx)
			return playerBatch{name: src.Name(), records: records, report: report, err: err}, nil
		})
	}

	matchBatches, _ := matchPool.Wait()
	playerBatches, _ := playerPool.Wait()
	return matchBatches, playerBatches
}

func (s *PipelineService) mergeMatchBatch(ctx context.Context, mergePool *ants.Pool, b matchBatch) (IngestSummary, error) {
	summary := IngestSummary{
		Source:  b.name,
		Rows:    b.report.Rows,
		Skipped: b.report.Skipped,
		Issues:  b.report.Issues,
	}
	if b.err != nil {
		summary.Failed = true
		summary.Error = b.err.Error()
		s.logger.ErrorContext(ctx, "match source failed to read", "source", b.name, "error", b.err)
		return summary, nil
	}

	var (
		mu      sync.Mutex
		workers sync.WaitGroup
	)
	for _, rec := range b.records {
		rec := rec
		workers.Add(1)
		if err := mergePool.Submit(func() {
			defer workers.Done()
			res, err := s.ingestion.MergeMatch(ctx, rec)
			mu.Lock()
			defer mu.Unlock()
			s.applyMergeResult(&summary, res, err)
		}); err != nil {
			workers.Done()
			return IngestSummary{}, fmt.Errorf("submit merge to worker pool: %w", err)
		}
	}
	workers.Wait()
	return summary, nil
}

func (s *PipelineService) mergePlayerBatch(ctx context.Context, mergePool *ants.Pool, b playerBatch) (IngestSummary, error) {
	summary := IngestSummary{
		Source:  b.name,
		Rows:    b.report.Rows,
		Skipped: b.report.Skipped,
		Issues:  b.report.Issues,
	}
	if b.err != nil {
		summary.Failed = true
		summary.Error = b.err.Error()
		s.logger.ErrorContext(ctx, "player source failed to read", "source", b.name, "error", b.err)
		return summary, nil
	}

	var (
		mu      sync.Mutex
		workers sync.WaitGroup
	)
	for _, rec := range b.records {
		rec := rec
		workers.Add(1)
		if err := mergePool.Submit(func() {
			defer workers.Done()
			res, err := s.ingestion.MergePlayer(ctx, rec)
			mu.Lock()
			defer mu.Unlock()
			s.applyMergeResult(&summary, res, err)
		}); err != nil {
			workers.Done()
			return IngestSummary{}, fmt.Errorf("submit merge to worker pool: %w", err)
		}
	}
	workers.Wait()
	return summary, nil
}

// applyMergeResult must be called with the summary's lock held.
func (s *PipelineService) applyMergeResult(summary *IngestSummary, res MergeResult, err error) {
	if err != nil {
		summary.Skipped++
		kind := IssueValidation
		if !errors.Is(err, ErrInvalidInput) {
			kind = IssueParse
		}
		summary.Issues = append(summary.Issues, RowIssue{Kind: kind, Detail: err.Error()})
		return
	}
	summary.Processed++
	switch res.Outcome {
	case MergeCreated:
		summary.Created++
	case MergeUpdated:
		summary.Updated++
	default:
		summary.Unchanged++
	}
	summary.Conflicts = append(summary.Conflicts, res.Conflicts...)
	for _, c := range res.Conflicts {
		summary.Issues = append(summary.Issues, RowIssue{
			Kind:   IssueMergeConflict,
			Field:  c.Field,
			Detail: fmt.Sprintf("%s %s: kept %q over %q", c.Entity, c.Key, c.Stored, c.Incoming),
		})
	}
}

// correlate runs the stats and venue phases. These depend on the finished
// match set, so they run strictly after merging.
func (s *PipelineService) correlate(ctx context.Context) ([]CorrelationReport, []IngestSummary, error) {
	var (
		reports   []CorrelationReport
		summaries []IngestSummary
	)
	for _, src := range s.statsSources {
		records, report, err := src.Stats(ctx)
		summary := IngestSummary{
			Source:  src.Name(),
			Rows:    report.Rows,
			Skipped: report.Skipped,
			Issues:  report.Issues,
		}
		if err != nil {
			summary.Failed = true
			summary.Error = err.Error()
			s.logger.ErrorContext(ctx, "stats source failed to read", "source", src.Name(), "error", err)
			summaries = append(summaries, summary)
			continue
		}
		corr, err := s.correlation.ApplyStats(ctx, records)
		if err != nil {
			return nil, nil, fmt.Errorf("apply stats from %s: %w", src.Name(), err)
		}
		corr.Source = src.Name()
		summary.Processed = corr.Applied
		summary.Skipped += corr.Missed + corr.Ambiguous
		summary.Issues = append(summary.Issues, corr.Issues...)
		reports = append(reports, corr)
		summaries = append(summaries, summary)
	}
	for _, src := range s.venueSources {
		records, report, err := src.Venues(ctx)
		summary := IngestSummary{
			Source:  src.Name(),
			Rows:    report.Rows,
			Skipped: report.Skipped,
			Issues:  report.Issues,
		}
		if err != nil {
			summary.Failed = true
			summary.Error = err.Error()
			s.logger.ErrorContext(ctx, "venue source failed to read", "source", src.Name(), "error", err)
			summaries = append(summaries, summary)
			continue
		}
		corr, err := s.correlation.ApplyVenues(ctx, records)
		if err != nil {
			return nil, nil, fmt.Errorf("apply venues from %s: %w", src.Name(), err)
		}
		corr.Source = src.Name()
		summary.Processed = corr.Applied
		summary.Skipped += corr.Missed + corr.Ambiguous
		summary.Issues = append(summary.Issues, corr.Issues...)
		reports = append(reports, corr)
		summaries = append(summaries, summary)
	}
	return reports, summaries, nil
}
