package datasource

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/brfutdata/matchgraph/internal/platform/aliasing"
	"github.com/brfutdata/matchgraph/internal/usecase"
)

// Row is one raw record keyed by header field name.
type Row map[string]string

// RowSource hands adapters their raw rows. Implementations own the file
// format mechanics; adapters own the header contract.
type RowSource interface {
	Name() string
	Rows(ctx context.Context) ([]Row, error)
}

// Source files disagree on date formatting, so every format seen in the
// wild is tried in order.
var dateFormats = []string{
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006 15:04",
	"02/01/2006",
	"02-01-2006",
	"2006/01/02",
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, format := range dateFormats {
		if t, err := time.ParseInLocation(format, raw, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", raw)
}

func parseInt(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("empty integer")
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("not an integer: %q", raw)
	}
	return n, nil
}

// optionalInt treats a blank cell as zero and only fails on garbage.
func optionalInt(raw string) (int, error) {
	if strings.TrimSpace(raw) == "" {
		return 0, nil
	}
	return parseInt(raw)
}

func (r Row) get(field string) string {
	return strings.TrimSpace(r[field])
}

// teamRef resolves a raw team mention, preferring the resolver's recovered
// region and falling back to an explicit region column.
func teamRef(resolver *aliasing.Resolver, raw, regionColumn string) usecase.TeamRef {
	res := resolver.Resolve(raw)
	region := res.Region
	if region == "" {
		region = strings.ToUpper(strings.TrimSpace(regionColumn))
	}
	return usecase.TeamRef{
		Raw:       strings.TrimSpace(raw),
		Canonical: res.Canonical,
		Region:    region,
		Known:     res.Known,
	}
}

// rowCollector accumulates the per-source accounting every adapter reports.
type rowCollector struct {
	report usecase.SourceReport
}

func newRowCollector(source string) *rowCollector {
	return &rowCollector{report: usecase.SourceReport{Source: source}}
}

func (c *rowCollector) row() {
	c.report.Rows++
}

func (c *rowCollector) skip(kind usecase.IssueKind, row int, field, detail string) {
	c.report.Skipped++
	c.report.Issues = append(c.report.Issues, usecase.RowIssue{
		Kind: kind, Row: row, Field: field, Detail: detail,
	})
}

func (c *rowCollector) note(kind usecase.IssueKind, row int, field, detail string) {
	c.report.Issues = append(c.report.Issues, usecase.RowIssue{
		Kind: kind, Row: row, Field: field, Detail: detail,
	})
}

func (c *rowCollector) fallback(row int, ref usecase.TeamRef) {
	if ref.Known {
		return
	}
	c.note(usecase.IssueResolutionFallback, row, "team",
		fmt.Sprintf("no alias match for %q, passed through as %q", ref.Raw, ref.Canonical))
}
