// Package report exports pipeline run summaries for operator review.
package report

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/brfutdata/matchgraph/internal/usecase"
)

type runEnvelope struct {
	GeneratedAt string                 `json:"generatedAt"`
	Run         usecase.PipelineResult `json:"run"`
}

// Writer renders a pipeline result as indented JSON.
type Writer struct {
	logger *slog.Logger
}

func NewWriter(logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{logger: logger}
}

func (w *Writer) Write(ctx context.Context, out io.Writer, result usecase.PipelineResult) error {
	body, err := sonic.ConfigDefault.MarshalIndent(runEnvelope{
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Run:         result,
	}, "", "  ")
	if err != nil {
		return crerr.Wrap(err, "marshal run summary")
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	_, _ = buf.Write(body)
	_, _ = buf.WriteString("\n")

	if _, err := out.Write(buf.Bytes()); err != nil {
		return crerr.Wrap(err, "write run summary")
	}

	w.logger.InfoContext(ctx, "run summary written",
		"sources", len(result.Sources),
		"processed", result.Processed,
		"conflicts", result.Conflicts,
	)
	return nil
}

// WriteFile writes the summary to path, creating or truncating it.
func (w *Writer) WriteFile(ctx context.Context, path string, result usecase.PipelineResult) error {
	file, err := os.Create(path)
	if err != nil {
		return crerr.Wrapf(err, "create %s", path)
	}
	defer file.Close()

	if err := w.Write(ctx, file, result); err != nil {
		return err
	}
	return crerr.Wrapf(file.Sync(), "sync %s", path)
}
