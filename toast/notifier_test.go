package toast

import (
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeScheduler fires timers when Advance moves its clock past their deadline
type fakeScheduler struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*fakeTimer
}

type fakeTimer struct {
	at      time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	wasPending := !t.stopped && !t.fired
	t.stopped = true
	return wasPending
}

func (s *fakeScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &fakeTimer{at: s.now + d, f: f}
	s.timers = append(s.timers, t)
	return t
}

func (s *fakeScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	s.now += d
	var due []*fakeTimer
	for _, t := range s.timers {
		if !t.stopped && !t.fired && t.at <= s.now {
			t.fired = true
			due = append(due, t)
		}
	}
	s.mu.Unlock()

	sort.Slice(due, func(i, j int) bool { return due[i].at < due[j].at })
	for _, t := range due {
		t.f()
	}
}

func TestStartsHidden(t *testing.T) {
	n := NewNotifierWithScheduler(&fakeScheduler{})

	got := n.Current()
	assert.False(t, got.Visible)
	assert.Empty(t, got.Message)
}

func TestShowAutoHidesAfterDuration(t *testing.T) {
	s := &fakeScheduler{}
	n := NewNotifierWithScheduler(s)

	n.Show("Guardado", KindSuccess, time.Second)
	s.Advance(999 * time.Millisecond)
	assert.True(t, n.Current().Visible)

	s.Advance(time.Millisecond)
	got := n.Current()
	assert.False(t, got.Visible)
	assert.Equal(t, "Guardado", got.Message)
}

func TestNewToastCancelsPreviousTimer(t *testing.T) {
	s := &fakeScheduler{}
	n := NewNotifierWithScheduler(s)

	n.Show("m1", KindError, 1000*time.Millisecond)
	s.Advance(400 * time.Millisecond)
	n.Show("m2", KindSuccess, 0)

	s.Advance(600 * time.Millisecond)
	got := n.Current()
	assert.True(t, got.Visible)
	assert.Equal(t, "m2", got.Message)
	assert.Equal(t, KindSuccess, got.Kind)

	s.Advance(time.Hour)
	assert.True(t, n.Current().Visible, "a zero duration never auto-hides")
}

func TestStaleTimerDoesNotHideNewerToast(t *testing.T) {
	s := &fakeScheduler{}
	n := NewNotifierWithScheduler(s)

	n.Show("m1", KindInfo, time.Second)
	first := s.timers[0]
	n.Show("m2", KindInfo, 0)

	// simulate the first timer firing after it was superseded
	first.f()

	assert.True(t, n.Current().Visible)
	assert.Equal(t, "m2", n.Current().Message)
}

func TestHideCancelsPendingTimer(t *testing.T) {
	s := &fakeScheduler{}
	n := NewNotifierWithScheduler(s)

	n.Show("m1", KindSuccess, time.Second)
	n.Hide()
	assert.False(t, n.Current().Visible)
	require.Len(t, s.timers, 1)
	assert.True(t, s.timers[0].stopped)

	n.Hide()
	assert.False(t, n.Current().Visible)
}

func TestSuccessAndErrorUseDefaultDuration(t *testing.T) {
	s := &fakeScheduler{}
	n := NewNotifierWithScheduler(s)

	n.Error("Falló")
	assert.Equal(t, KindError, n.Current().Kind)
	assert.Equal(t, DefaultDuration, n.Current().Duration)

	n.Success("Listo")
	s.Advance(DefaultDuration)
	assert.False(t, n.Current().Visible)
}

func TestRealTimerHides(t *testing.T) {
	n := NewNotifier()

	n.Show("rápido", KindInfo, 10*time.Millisecond)

	assert.Eventually(t, func() bool { return !n.Current().Visible }, time.Second, 5*time.Millisecond)
}
