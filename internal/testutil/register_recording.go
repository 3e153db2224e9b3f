package testutil

import (
	"context"
	"sync"

	"github.com/specialistvlad/graphvalidator/internal/registry"
)

// Call is a snapshot of one handler invocation.
type Call struct {
	Args      []string
	GraphDir  string
	Classpath []string
	Env       map[string]string
}

// RecordingModule registers a handler that records every invocation and
// then returns Err.
type RecordingModule struct {
	HandlerName string
	Err         error

	mu    sync.Mutex
	calls []Call
}

// Register implements the registry.Module interface.
func (m *RecordingModule) Register(r *registry.Registry) {
	r.RegisterHandler(m.HandlerName, m.handle)
}

func (m *RecordingModule) handle(_ context.Context, inv *registry.Invocation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	call := Call{
		Args:     append([]string(nil), inv.Args...),
		GraphDir: inv.GraphDir,
		Env:      inv.Env,
	}
	if inv.Classpath != nil {
		call.Classpath = inv.Classpath.Dirs()
	}
	m.calls = append(m.calls, call)
	return m.Err
}

// Calls returns the recorded invocations.
func (m *RecordingModule) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Call(nil), m.calls...)
}
