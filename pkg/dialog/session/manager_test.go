package session

import (
	"sync"
	"testing"
	"time"

	"restaurant-chatbot-be/internal/repository/memory"
	"restaurant-chatbot-be/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func newManager() *Manager {
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	return NewManager(memory.NewSessionRepository(time.Hour, 0)).WithClock(func() time.Time { return now })
}

func TestIDFromPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{path: "projects/demo/agent/sessions/abc-123", want: "abc-123"},
		{path: "abc", want: "abc"},
		{path: "projects/demo/agent/sessions/", want: DefaultID},
		{path: "  ", want: DefaultID},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IDFromPath(tt.path), "path %q", tt.path)
	}
}

func TestGetOrCreate(t *testing.T) {
	m := newManager()

	s := m.GetOrCreate("s1")
	assert.Equal(t, store.FlowNone, s.ActiveFlow)
	assert.Equal(t, store.AwaitNone, s.Feedback.Awaiting)
	assert.Equal(t, 1, m.Count())

	s.TurnCount = 3
	m.Save(s)
	assert.Equal(t, 3, m.GetOrCreate("s1").TurnCount)
}

func TestSnapshotIsACopy(t *testing.T) {
	m := newManager()

	_, ok := m.Snapshot("missing")
	assert.False(t, ok)

	s := m.GetOrCreate("s1")
	s.Feedback.Name = store.StringPtr("Ali")
	m.Save(s)

	snap, ok := m.Snapshot("s1")
	require.True(t, ok)
	*snap.Feedback.Name = "changed"
	assert.Equal(t, "Ali", *m.GetOrCreate("s1").Feedback.Name)
}

func TestResets(t *testing.T) {
	m := newManager()

	s := m.GetOrCreate("s1")
	s.ActiveFlow = store.FlowSupport
	s.Reservation.Guests = store.IntPtr(4)
	s.Support.Name = store.StringPtr("Sara")
	s.AwaitingOrderID = true
	m.Save(s)

	m.ResetReservation("s1")
	snap, _ := m.Snapshot("s1")
	assert.Nil(t, snap.Reservation.Guests)
	assert.Equal(t, store.FlowSupport, snap.ActiveFlow)

	m.ResetSupport("s1")
	snap, _ = m.Snapshot("s1")
	assert.Nil(t, snap.Support.Name)
	assert.Equal(t, store.FlowNone, snap.ActiveFlow)
	assert.True(t, snap.AwaitingOrderID)

	assert.True(t, m.Reset("s1"))
	snap, _ = m.Snapshot("s1")
	assert.False(t, snap.AwaitingOrderID)

	assert.False(t, m.Reset("unknown"))
}

func TestLockSerializesAndCleansUp(t *testing.T) {
	defer goleak.VerifyNone(t)

	m := newManager()
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := m.Lock("s1")
			counter++
			unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, counter)
	m.mu.Lock()
	assert.Empty(t, m.locks)
	m.mu.Unlock()
}

func TestOnExpiredReportsIdleSessions(t *testing.T) {
	m := NewManager(memory.NewSessionRepository(20*time.Millisecond, 5*time.Millisecond))

	expired := make(chan string, 1)
	m.OnExpired(func(id string) {
		expired <- id
	})
	m.GetOrCreate("idle")

	select {
	case id := <-expired:
		assert.Equal(t, "idle", id)
	case <-time.After(2 * time.Second):
		t.Fatal("session was not reported as expired")
	}
	assert.Equal(t, 0, m.Count())
}
