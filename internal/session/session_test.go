package session

import (
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/starford/hirelens/internal/analysis"
	"github.com/starford/hirelens/internal/apperr"
	"github.com/starford/hirelens/internal/intake"
	"github.com/starford/hirelens/internal/metrics"
	"github.com/starford/hirelens/internal/sse"
)

type recorder struct {
	mu     sync.Mutex
	events []sse.Event
}

func (r *recorder) Publish(e sse.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type
	}
	return out
}

func oneFile() analysis.Input {
	return analysis.Input{Files: []intake.Document{{Name: "cv.pdf", ContentType: "application/pdf", Size: 10}}}
}

type ManagerSuite struct {
	suite.Suite
	pub     *recorder
	metrics *metrics.Metrics
	mgr     *Manager
}

func (s *ManagerSuite) newManager(delay time.Duration, opts ...Option) *Manager {
	delays := make(map[analysis.Kind]time.Duration)
	for _, k := range analysis.Kinds {
		delays[k] = delay
	}
	base := []Option{
		WithDelays(delays),
		WithPublisher(s.pub),
		WithMetrics(s.metrics),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}
	return NewManager(analysis.NewGenerator(analysis.WithMaxFiles(5)), append(base, opts...)...)
}

func (s *ManagerSuite) SetupTest() {
	s.pub = &recorder{}
	s.metrics = metrics.New()
	s.mgr = s.newManager(20 * time.Millisecond)
}

func (s *ManagerSuite) TearDownTest() {
	s.mgr.Shutdown()
}

func (s *ManagerSuite) waitState(id string, want State) Snapshot {
	var snap Snapshot
	s.Require().Eventually(func() bool {
		var err error
		snap, err = s.mgr.Get(id)
		return err == nil && snap.State == want
	}, time.Second, 5*time.Millisecond)
	return snap
}

func (s *ManagerSuite) TestCreateAndGet() {
	snap, err := s.mgr.Create()
	s.Require().NoError(err)
	s.NotEmpty(snap.ID)
	s.Equal(StateIdle, snap.State)

	got, err := s.mgr.Get(snap.ID)
	s.Require().NoError(err)
	s.Equal(snap.ID, got.ID)

	_, err = s.mgr.Get("missing")
	s.ErrorIs(err, apperr.ErrNotFound)
}

func (s *ManagerSuite) TestStartCompletes() {
	snap, _ := s.mgr.Create()

	started, err := s.mgr.Start(snap.ID, analysis.KindResume, oneFile())
	s.Require().NoError(err)
	s.Equal(StateAnalyzing, started.State)
	s.Nil(started.Result)

	done := s.waitState(snap.ID, StateReady)
	s.Require().NotNil(done.Result)
	s.Require().NotNil(done.Result.Resume)
	s.Equal(analysis.KindResume, done.Kind)

	// Events and metrics are emitted right after the state commit.
	s.Require().Eventually(func() bool { return len(s.pub.types()) == 2 }, time.Second, 5*time.Millisecond)
	s.Equal([]string{sse.TypeAnalysisStarted, sse.TypeAnalysisCompleted}, s.pub.types())
	s.InDelta(1, testutil.ToFloat64(s.metrics.Analyses.WithLabelValues("resume", metrics.OutcomeCompleted)), 0)
	s.InDelta(0, testutil.ToFloat64(s.metrics.AnalysesInFlight), 0)
}

func (s *ManagerSuite) TestStartValidatesFirst() {
	snap, _ := s.mgr.Create()

	s.Run("missing file", func() {
		_, err := s.mgr.Start(snap.ID, analysis.KindResume, analysis.Input{})
		s.ErrorIs(err, apperr.ErrInvalidInput)
	})
	s.Run("transition without reason", func() {
		_, err := s.mgr.Start(snap.ID, analysis.KindTransition, oneFile())
		s.ErrorIs(err, apperr.ErrInvalidInput)
	})
	s.Run("unknown kind", func() {
		_, err := s.mgr.Start(snap.ID, analysis.Kind("horoscope"), oneFile())
		s.ErrorIs(err, apperr.ErrInvalidInput)
	})

	got, _ := s.mgr.Get(snap.ID)
	s.Equal(StateIdle, got.State)
	s.Empty(s.pub.types())
	s.InDelta(1, testutil.ToFloat64(s.metrics.Analyses.WithLabelValues("resume", metrics.OutcomeRejected)), 0)
}

func (s *ManagerSuite) TestStartUnknownSession() {
	_, err := s.mgr.Start("nope", analysis.KindResume, oneFile())
	s.ErrorIs(err, apperr.ErrNotFound)
}

func (s *ManagerSuite) TestSecondStartIsBusy() {
	mgr := s.newManager(time.Hour)
	defer mgr.Shutdown()
	snap, _ := mgr.Create()

	_, err := mgr.Start(snap.ID, analysis.KindResume, oneFile())
	s.Require().NoError(err)
	_, err = mgr.Start(snap.ID, analysis.KindResume, oneFile())
	s.ErrorIs(err, apperr.ErrBusy)
}

func (s *ManagerSuite) TestStartAfterReadyReplacesResult() {
	snap, _ := s.mgr.Create()
	_, err := s.mgr.Start(snap.ID, analysis.KindResume, oneFile())
	s.Require().NoError(err)
	s.waitState(snap.ID, StateReady)

	in := oneFile()
	in.QuitReason = "I want more growth"
	_, err = s.mgr.Start(snap.ID, analysis.KindTransition, in)
	s.Require().NoError(err)
	done := s.waitState(snap.ID, StateReady)
	s.Require().NotNil(done.Result.Transition)
	s.Nil(done.Result.Resume)
}

func (s *ManagerSuite) TestResetCancelsPendingJob() {
	snap, _ := s.mgr.Create()
	_, err := s.mgr.Start(snap.ID, analysis.KindAdmin, oneFile())
	s.Require().NoError(err)

	reset, err := s.mgr.Reset(snap.ID)
	s.Require().NoError(err)
	s.Equal(StateIdle, reset.State)
	s.Nil(reset.Input)

	// Wait past the job delay: the stale timer must not land a result.
	time.Sleep(60 * time.Millisecond)
	got, _ := s.mgr.Get(snap.ID)
	s.Equal(StateIdle, got.State)
	s.Nil(got.Result)
	s.Equal([]string{sse.TypeAnalysisStarted, sse.TypeAnalysisReset}, s.pub.types())
	s.InDelta(1, testutil.ToFloat64(s.metrics.Analyses.WithLabelValues("admin", metrics.OutcomeCancelled)), 0)
	s.InDelta(0, testutil.ToFloat64(s.metrics.AnalysesInFlight), 0)
}

func (s *ManagerSuite) TestResetThenRestartKeepsOnlyNewJob() {
	snap, _ := s.mgr.Create()
	_, err := s.mgr.Start(snap.ID, analysis.KindResume, oneFile())
	s.Require().NoError(err)
	_, err = s.mgr.Reset(snap.ID)
	s.Require().NoError(err)

	in := oneFile()
	in.DreamCompany, in.DreamRole = "Acme", "Staff Engineer"
	_, err = s.mgr.Start(snap.ID, analysis.KindReskill, in)
	s.Require().NoError(err)

	done := s.waitState(snap.ID, StateReady)
	s.Require().NotNil(done.Result.Reskill)
	s.Nil(done.Result.Resume)

	time.Sleep(40 * time.Millisecond)
	completed := 0
	for _, t := range s.pub.types() {
		if t == sse.TypeAnalysisCompleted {
			completed++
		}
	}
	s.Equal(1, completed)
}

func (s *ManagerSuite) TestResetReadySession() {
	snap, _ := s.mgr.Create()
	_, _ = s.mgr.Start(snap.ID, analysis.KindResume, oneFile())
	s.waitState(snap.ID, StateReady)
	time.Sleep(10 * time.Millisecond)

	reset, err := s.mgr.Reset(snap.ID)
	s.Require().NoError(err)
	s.Equal(StateIdle, reset.State)
	s.Nil(reset.Result)
	s.Empty(reset.Kind)

	_, err = s.mgr.Reset("missing")
	s.ErrorIs(err, apperr.ErrNotFound)
}

func (s *ManagerSuite) TestCloseCancelsAndForgets() {
	snap, _ := s.mgr.Create()
	_, err := s.mgr.Start(snap.ID, analysis.KindResume, oneFile())
	s.Require().NoError(err)

	s.Require().NoError(s.mgr.Close(snap.ID))
	_, err = s.mgr.Get(snap.ID)
	s.ErrorIs(err, apperr.ErrNotFound)
	s.ErrorIs(s.mgr.Close(snap.ID), apperr.ErrNotFound)

	time.Sleep(60 * time.Millisecond)
	s.NotContains(s.pub.types(), sse.TypeAnalysisCompleted)
	s.Equal(0, s.mgr.Len())
}

func (s *ManagerSuite) TestShutdownCancelsAll() {
	a, _ := s.mgr.Create()
	b, _ := s.mgr.Create()
	_, _ = s.mgr.Start(a.ID, analysis.KindResume, oneFile())
	_, _ = s.mgr.Start(b.ID, analysis.KindResume, oneFile())

	s.mgr.Shutdown()
	s.mgr.Shutdown()

	time.Sleep(60 * time.Millisecond)
	for _, id := range []string{a.ID, b.ID} {
		got, err := s.mgr.Get(id)
		s.Require().NoError(err)
		s.Equal(StateIdle, got.State)
		s.Nil(got.Result)
	}

	_, err := s.mgr.Create()
	s.ErrorIs(err, ErrClosed)
	_, err = s.mgr.Start(a.ID, analysis.KindResume, oneFile())
	s.ErrorIs(err, ErrClosed)
}

func (s *ManagerSuite) TestSweep() {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	mgr := s.newManager(time.Hour, WithTTL(10*time.Minute), WithClock(clock))
	defer mgr.Shutdown()

	old, _ := mgr.Create()
	busy, _ := mgr.Create()
	_, err := mgr.Start(busy.ID, analysis.KindResume, oneFile())
	s.Require().NoError(err)

	now = now.Add(5 * time.Minute)
	fresh, _ := mgr.Create()

	now = now.Add(6 * time.Minute)
	s.Equal(1, mgr.Sweep())

	_, err = mgr.Get(old.ID)
	s.ErrorIs(err, apperr.ErrNotFound)
	_, err = mgr.Get(busy.ID)
	s.NoError(err, "sessions with a pending job are kept")
	_, err = mgr.Get(fresh.ID)
	s.NoError(err)
}

func TestManagerSuite(t *testing.T) {
	suite.Run(t, new(ManagerSuite))
}

func TestDefaultDelays(t *testing.T) {
	require.Len(t, DefaultDelays, len(analysis.Kinds))
	assert.Equal(t, 3500*time.Millisecond, DefaultDelays[analysis.KindReskill])
	assert.Equal(t, 4*time.Second, DefaultDelays[analysis.KindCandidates])

	m := NewManager(analysis.NewGenerator(), WithDelays(map[analysis.Kind]time.Duration{analysis.KindResume: time.Second}))
	defer m.Shutdown()
	assert.Equal(t, time.Second, m.delays[analysis.KindResume])
	assert.Equal(t, 4*time.Second, m.delays[analysis.KindAdmin])
	assert.Equal(t, 3*time.Second, DefaultDelays[analysis.KindResume], "defaults must not be mutated")
}
