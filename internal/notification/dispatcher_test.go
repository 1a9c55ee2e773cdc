package notification

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ordones18/Ponte-Once-Store/internal/domain"
)

type recordingSender struct {
	mutex   sync.Mutex
	sent    []*domain.EmailMessage
	fail    bool
	release chan struct{}
}

func (s *recordingSender) Send(msg *domain.EmailMessage) error {
	if s.release != nil {
		<-s.release
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.fail {
		return errors.New("gateway down")
	}
	s.sent = append(s.sent, msg)
	return nil
}

func (s *recordingSender) count() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return len(s.sent)
}

func TestDispatcher_DeliversQueuedMail(t *testing.T) {
	sender := &recordingSender{}
	dispatcher := NewDispatcher(2, 8, sender, testLogger())
	dispatcher.Start()

	for i := 0; i < 5; i++ {
		assert.True(t, dispatcher.Enqueue(testMessage()))
	}

	// Stop drains the queue before returning.
	dispatcher.Stop()

	assert.Equal(t, 5, sender.count())
	stats := dispatcher.Stats()
	assert.EqualValues(t, 5, stats.Submitted)
	assert.EqualValues(t, 5, stats.Completed)
	assert.Zero(t, stats.Failed)
}

func TestDispatcher_EnqueueBeforeStart(t *testing.T) {
	dispatcher := NewDispatcher(1, 4, &recordingSender{}, testLogger())

	assert.False(t, dispatcher.Enqueue(testMessage()))
}

func TestDispatcher_FailuresAreSwallowed(t *testing.T) {
	sender := &recordingSender{fail: true}
	dispatcher := NewDispatcher(1, 4, sender, testLogger())
	dispatcher.Start()

	require.True(t, dispatcher.Enqueue(testMessage()))
	dispatcher.Stop()

	stats := dispatcher.Stats()
	assert.EqualValues(t, 1, stats.Failed)
	assert.Zero(t, stats.Completed)
}

func TestDispatcher_FullQueueDropsInsteadOfBlocking(t *testing.T) {
	sender := &recordingSender{release: make(chan struct{})}
	dispatcher := NewDispatcher(1, 2, sender, testLogger())
	dispatcher.Start()

	dropped := false
	for i := 0; i < 10; i++ {
		if !dispatcher.Enqueue(testMessage()) {
			dropped = true
			break
		}
	}
	assert.True(t, dropped)

	close(sender.release)
	dispatcher.Stop()

	stats := dispatcher.Stats()
	assert.EqualValues(t, stats.Submitted, stats.Completed)
	assert.NotZero(t, stats.Rejected)
}
