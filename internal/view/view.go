// Package view implements the per-entity view modules of the dashboard.
// Every module follows the same machine: idle → loading → ready | error.
// Mutations run a submitting sub-state and, on success, re-enter loading to
// refresh from the central API rather than patching local state; the
// terminal is never the authority on post-mutation values.
//
// Failure semantics: nothing retries automatically, no action is silently
// dropped. Every failure lands in the module's error state for display with
// a manual retry.
package view

import (
	"context"
	"sync"

	"dukapos/internal/apierror"
)

// Phase is the lifecycle state of a view module.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseReady
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseError:
		return "error"
	default:
		return "unknown"
	}
}

// ErrSubmitInFlight is returned when a mutation is attempted while another is
// still running. Submit affordances are disabled while submitting; this is
// the backstop that guarantees exactly one call per action.
var ErrSubmitInFlight = apierror.Validation("another action is still in progress")

// ErrViewClosed is returned for operations on a torn-down view.
var ErrViewClosed = apierror.Validation("this view has been closed")

// machine is the shared state core embedded by every view module.
// Loads are tied to the view's lifetime context and carry a generation
// number so a superseded or torn-down load can never clobber newer state.
type machine struct {
	mu         sync.Mutex
	phase      Phase
	lastErr    *apierror.Error
	submitting bool
	gen        uint64

	lifetime context.Context
	teardown context.CancelFunc
}

func newMachine() *machine {
	ctx, cancel := context.WithCancel(context.Background())
	return &machine{phase: PhaseIdle, lifetime: ctx, teardown: cancel}
}

// Close tears the view down: in-flight loads are cancelled and their results
// discarded.
func (m *machine) Close() { m.teardown() }

// Phase returns the current lifecycle phase.
func (m *machine) Phase() Phase {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.phase
}

// Err returns the error being displayed, if the module is in PhaseError.
func (m *machine) Err() *apierror.Error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastErr
}

// Submitting reports whether a mutation is in flight.
func (m *machine) Submitting() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.submitting
}

// beginLoad enters PhaseLoading and returns the context for the new load, its
// generation, and a cleanup func the caller must defer. The context is
// derived from the view lifetime and additionally aborted when the caller's
// ctx is cancelled.
func (m *machine) beginLoad(ctx context.Context) (context.Context, uint64, func()) {
	m.mu.Lock()
	m.phase = PhaseLoading
	m.gen++
	gen := m.gen
	m.mu.Unlock()

	loadCtx, cancel := context.WithCancel(m.lifetime)
	stop := context.AfterFunc(ctx, cancel)
	return loadCtx, gen, func() { stop(); cancel() }
}

// finishLoad applies the outcome of a load. Results from a superseded
// generation are discarded. apply runs under the lock and must only copy the
// fetched collections into the module's fields.
func (m *machine) finishLoad(gen uint64, err error, apply func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if gen != m.gen {
		return // superseded by a newer load or torn down
	}
	if err != nil {
		m.phase = PhaseError
		m.lastErr = apierror.From(err)
		return
	}
	apply()
	m.phase = PhaseReady
	m.lastErr = nil
}

// beginSubmit enters the submitting sub-state, rejecting overlap.
func (m *machine) beginSubmit() error {
	if m.lifetime.Err() != nil {
		return ErrViewClosed
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.submitting {
		return ErrSubmitInFlight
	}
	m.submitting = true
	return nil
}

func (m *machine) endSubmit() {
	m.mu.Lock()
	m.submitting = false
	m.mu.Unlock()
}

// snapshot runs fn under the lock for consistent reads of module fields.
func (m *machine) snapshot(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn()
}
