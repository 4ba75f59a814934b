package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// IssueKind classifies a per-row problem recorded during ingestion. Issues
// never abort a run; they are counted and reported per source.
type IssueKind string

const (
	IssueParse                IssueKind = "parse_error"
	IssueValidation           IssueKind = "validation_error"
	IssueResolutionFallback   IssueKind = "resolution_fallback"
	IssueMergeConflict        IssueKind = "merge_conflict"
	IssueCorrelationMiss      IssueKind = "correlation_miss"
	IssueCorrelationAmbiguity IssueKind = "correlation_ambiguity"
)

// RowIssue pins an issue to the row it came from so a run summary stays
// actionable without re-reading the source file.
type RowIssue struct {
	Kind   IssueKind `json:"kind"`
	Row    int       `json:"row,omitempty"`
	Field  string    `json:"field,omitempty"`
	Detail string    `json:"detail,omitempty"`
}
