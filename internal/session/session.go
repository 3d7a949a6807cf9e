// Package session owns the per-page analysis state machine. Each session is
// idle, analyzing (a delayed job is pending) or ready. Jobs are bound to a
// cancellable context and a generation counter so that a reset, a close or
// a shutdown always wins against a late timer.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/starford/hirelens/internal/analysis"
	"github.com/starford/hirelens/internal/apperr"
	"github.com/starford/hirelens/internal/metrics"
	"github.com/starford/hirelens/internal/sse"
)

// State of a session.
type State string

const (
	StateIdle      State = "idle"
	StateAnalyzing State = "analyzing"
	StateReady     State = "ready"
)

// DefaultTTL is how long an inactive session survives.
const DefaultTTL = 30 * time.Minute

// ErrClosed is returned once the manager has been shut down.
var ErrClosed = errors.New("session manager closed")

// DefaultDelays are the simulated processing times per analysis kind.
var DefaultDelays = map[analysis.Kind]time.Duration{
	analysis.KindResume:     3 * time.Second,
	analysis.KindCandidates: 4 * time.Second,
	analysis.KindAdmin:      4 * time.Second,
	analysis.KindTransition: 3 * time.Second,
	analysis.KindReskill:    3500 * time.Millisecond,
}

// Publisher receives state transitions. *sse.Broker satisfies it.
type Publisher interface {
	Publish(event sse.Event)
}

// Snapshot is a point-in-time copy of a session.
type Snapshot struct {
	ID        string           `json:"id"`
	State     State            `json:"state"`
	Kind      analysis.Kind    `json:"kind,omitempty"`
	Input     *analysis.Input  `json:"input,omitempty"`
	Result    *analysis.Result `json:"result,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

type session struct {
	id      string
	state   State
	kind    analysis.Kind
	input   *analysis.Input
	result  *analysis.Result
	created time.Time
	updated time.Time

	gen    uint64
	timer  *time.Timer
	cancel context.CancelFunc
}

func (s *session) snapshot() Snapshot {
	return Snapshot{
		ID:        s.id,
		State:     s.state,
		Kind:      s.kind,
		Input:     s.input,
		Result:    s.result,
		CreatedAt: s.created,
		UpdatedAt: s.updated,
	}
}

// Manager tracks sessions and schedules their analysis jobs.
type Manager struct {
	generator *analysis.Generator
	delays    map[analysis.Kind]time.Duration
	ttl       time.Duration
	publisher Publisher
	metrics   *metrics.Metrics
	logger    *slog.Logger
	now       func() time.Time

	root   context.Context
	stop   context.CancelFunc
	mu     sync.Mutex
	items  map[string]*session
	closed bool
}

// Option configures a Manager.
type Option func(*Manager)

// WithDelays overrides the delay of the kinds present in d.
func WithDelays(d map[analysis.Kind]time.Duration) Option {
	return func(m *Manager) { maps.Copy(m.delays, d) }
}

// WithTTL sets the inactivity timeout used by Sweep.
func WithTTL(ttl time.Duration) Option {
	return func(m *Manager) { m.ttl = ttl }
}

// WithPublisher sets the event sink.
func WithPublisher(p Publisher) Option {
	return func(m *Manager) { m.publisher = p }
}

// WithMetrics sets the metrics recorder.
func WithMetrics(mt *metrics.Metrics) Option {
	return func(m *Manager) { m.metrics = mt }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// NewManager creates a Manager generating reports with g.
func NewManager(g *analysis.Generator, opts ...Option) *Manager {
	m := &Manager{
		generator: g,
		delays:    maps.Clone(DefaultDelays),
		ttl:       DefaultTTL,
		logger:    slog.Default(),
		now:       time.Now,
		items:     make(map[string]*session),
	}
	for _, o := range opts {
		o(m)
	}
	m.root, m.stop = context.WithCancel(context.Background())
	return m
}

// Create registers a new idle session.
func (m *Manager) Create() (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return Snapshot{}, ErrClosed
	}
	now := m.now()
	s := &session{id: uuid.NewString(), state: StateIdle, created: now, updated: now}
	m.items[s.id] = s
	return s.snapshot(), nil
}

// Get returns the current state of session id.
func (m *Manager) Get(id string) (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.items[id]
	if !ok {
		return Snapshot{}, fmt.Errorf("session %s: %w", id, apperr.ErrNotFound)
	}
	return s.snapshot(), nil
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// Start validates in and schedules a kind analysis on session id. Nothing
// is scheduled when validation fails. A session with a pending job rejects
// the request with apperr.ErrBusy.
func (m *Manager) Start(id string, kind analysis.Kind, in analysis.Input) (Snapshot, error) {
	if err := m.generator.Validate(kind, in); err != nil {
		m.metrics.AnalysisRejected(string(kind))
		return Snapshot{}, err
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return Snapshot{}, ErrClosed
	}
	s, ok := m.items[id]
	if !ok {
		m.mu.Unlock()
		return Snapshot{}, fmt.Errorf("session %s: %w", id, apperr.ErrNotFound)
	}
	if s.state == StateAnalyzing {
		m.mu.Unlock()
		m.metrics.AnalysisRejected(string(kind))
		return Snapshot{}, fmt.Errorf("session %s: %w", id, apperr.ErrBusy)
	}

	s.gen++
	gen := s.gen
	ctx, cancel := context.WithCancel(m.root)
	s.state = StateAnalyzing
	s.kind = kind
	s.input = &in
	s.result = nil
	s.updated = m.now()
	s.cancel = cancel
	s.timer = time.AfterFunc(m.delays[kind], func() { m.complete(ctx, id, gen) })
	snap := s.snapshot()
	m.mu.Unlock()

	m.metrics.AnalysisStarted(string(kind))
	m.logger.Info("analysis: started",
		slog.String("session", id),
		slog.String("kind", string(kind)),
		slog.Int("files", len(in.Files)))
	m.publish(sse.TypeAnalysisStarted, id, map[string]any{"session": id, "kind": kind})
	return snap, nil
}

// complete runs when a job's delay elapses. The result is committed only if
// the job is still the session's current one and was not cancelled.
func (m *Manager) complete(ctx context.Context, id string, gen uint64) {
	if ctx.Err() != nil {
		return
	}

	m.mu.Lock()
	s, ok := m.items[id]
	if !ok || s.gen != gen || s.state != StateAnalyzing {
		m.mu.Unlock()
		return
	}
	kind, in := s.kind, *s.input
	m.mu.Unlock()

	res, genErr := m.generator.Generate(kind, in)

	m.mu.Lock()
	s, ok = m.items[id]
	if !ok || s.gen != gen || ctx.Err() != nil {
		m.mu.Unlock()
		return
	}
	s.cancel()
	s.cancel, s.timer = nil, nil
	s.updated = m.now()
	if genErr != nil {
		s.state = StateIdle
		s.input = nil
	} else {
		s.state = StateReady
		s.result = res
	}
	m.mu.Unlock()

	if genErr != nil {
		m.metrics.AnalysisFinished(string(kind), metrics.OutcomeFailed)
		m.logger.Error("analysis: generate failed",
			slog.String("session", id),
			slog.String("kind", string(kind)),
			slog.String("error", genErr.Error()))
		m.publish(sse.TypeAnalysisReset, id, map[string]any{"session": id})
		return
	}

	m.metrics.AnalysisFinished(string(kind), metrics.OutcomeCompleted)
	m.logger.Info("analysis: completed", slog.String("session", id), slog.String("kind", string(kind)))
	m.publish(sse.TypeAnalysisCompleted, id, map[string]any{"session": id, "kind": kind, "result": res})
}

// Reset cancels any pending job and returns session id to idle with no
// inputs or result.
func (m *Manager) Reset(id string) (Snapshot, error) {
	m.mu.Lock()
	s, ok := m.items[id]
	if !ok {
		m.mu.Unlock()
		return Snapshot{}, fmt.Errorf("session %s: %w", id, apperr.ErrNotFound)
	}
	m.cancelLocked(s)
	s.state = StateIdle
	s.kind = ""
	s.input = nil
	s.result = nil
	s.updated = m.now()
	snap := s.snapshot()
	m.mu.Unlock()

	m.publish(sse.TypeAnalysisReset, id, map[string]any{"session": id})
	return snap, nil
}

// Close cancels any pending job and forgets session id.
func (m *Manager) Close(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.items[id]
	if !ok {
		return fmt.Errorf("session %s: %w", id, apperr.ErrNotFound)
	}
	m.cancelLocked(s)
	delete(m.items, id)
	return nil
}

// Sweep drops sessions without a pending job whose last activity is older
// than the TTL. It returns the number of sessions removed.
func (m *Manager) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	cutoff := m.now().Add(-m.ttl)
	n := 0
	for id, s := range m.items {
		if s.state != StateAnalyzing && s.updated.Before(cutoff) {
			delete(m.items, id)
			n++
		}
	}
	return n
}

// Run sweeps expired sessions every interval until ctx is done, then shuts
// the manager down.
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	defer m.Shutdown()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.Sweep(); n > 0 {
				m.logger.Debug("sessions swept", slog.Int("count", n))
			}
		}
	}
}

// Shutdown cancels every pending job. Further Create and Start calls fail
// with ErrClosed.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.closed = true
	for _, s := range m.items {
		m.cancelLocked(s)
		if s.state == StateAnalyzing {
			s.state = StateIdle
		}
	}
	m.stop()
}

func (m *Manager) cancelLocked(s *session) {
	s.gen++
	if s.cancel == nil {
		return
	}
	s.timer.Stop()
	s.cancel()
	s.cancel, s.timer = nil, nil
	m.metrics.AnalysisFinished(string(s.kind), metrics.OutcomeCancelled)
	m.logger.Info("analysis: cancelled", slog.String("session", s.id), slog.String("kind", string(s.kind)))
}

func (m *Manager) publish(typ, id string, data any) {
	if m.publisher != nil {
		m.publisher.Publish(sse.Event{Type: typ, Session: id, Data: data})
	}
}
