package app

import (
	"bytes"
	"log/slog"
	"os"
	"sync"
	"testing"

	"github.com/specialistvlad/graphvalidator/internal/registry"
)

// SafeBuffer is a thread-safe buffer for capturing output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// SetupAppTest creates a new app instance for system testing. Stdout and the
// log stream are captured in the returned buffers.
func SetupAppTest(t *testing.T, cfg *Config, modules ...registry.Module) (*App, *SafeBuffer, *SafeBuffer) {
	t.Helper()

	outBuffer := &SafeBuffer{}
	logBuffer := &SafeBuffer{}
	cfg.LogLevel = "debug"
	cfg.Level = slog.LevelDebug
	if cfg.Environ == nil {
		cfg.Environ = []string{}
	}
	testApp := NewApp(Stdio{In: bytes.NewReader(nil), Out: outBuffer, Err: logBuffer}, cfg, modules...)

	t.Cleanup(func() {
		if os.Getenv("GV_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})

	return testApp, outBuffer, logBuffer
}
