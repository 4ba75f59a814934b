package observability

import (
	"context"
	"testing"

	"github.com/brfutdata/matchgraph/internal/config"
	"github.com/brfutdata/matchgraph/internal/platform/logging"
)

func TestInitUptraceDisabled(t *testing.T) {
	t.Parallel()

	shutdown, err := InitUptrace(config.Config{UptraceEnabled: false}, logging.NewNop())
	if err != nil {
		t.Fatalf("init uptrace: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestInitUptraceEmptyDSN(t *testing.T) {
	t.Parallel()

	shutdown, err := InitUptrace(config.Config{UptraceEnabled: true, UptraceDSN: "  "}, logging.NewNop())
	if err != nil {
		t.Fatalf("init uptrace: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestInitPyroscopeDisabled(t *testing.T) {
	t.Parallel()

	stop, err := InitPyroscope(config.Config{PyroscopeEnabled: false}, logging.NewNop())
	if err != nil {
		t.Fatalf("init pyroscope: %v", err)
	}
	if err := stop(); err != nil {
		t.Fatalf("stop: %v", err)
	}
}
