package elevcar

import (
	"sync"

	"github.com/dinaMadelen/elevator-dispatch/internal/elevconsts"
	"github.com/dinaMadelen/elevator-dispatch/internal/elevrequest"

	"github.com/tiendc/go-deepcopy"
)

// mailbox holds the Up and Down queues of one car. Producers only append,
// the car's own dispatch loop is the only consumer.
type mailbox struct {
	mu   sync.Mutex
	up   []elevrequest.Request
	down []elevrequest.Request

	parked  bool          //true while the loop waits with nothing queued
	drained chan struct{} //closed while parked
	wake    chan struct{} //buffered, one pending wake-up is enough
}

func newMailbox() *mailbox {
	drained := make(chan struct{})
	close(drained)
	return &mailbox{
		parked:  true,
		drained: drained,
		wake:    make(chan struct{}, 1),
	}
}

func (m *mailbox) queue(dir elevconsts.Direction) *[]elevrequest.Request {
	if dir == elevconsts.Up {
		return &m.up
	}
	return &m.down
}

func (m *mailbox) push(request elevrequest.Request) {
	m.mu.Lock()
	queue := m.queue(request.Direction())
	*queue = append(*queue, request)
	if m.parked {
		m.parked = false
		m.drained = make(chan struct{})
	}
	m.mu.Unlock()

	select {
	case m.wake <- struct{}{}:
	default:
	}
}

func (m *mailbox) pop(dir elevconsts.Direction) (elevrequest.Request, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	queue := m.queue(dir)
	if len(*queue) == 0 {
		return elevrequest.Request{}, false
	}
	head := (*queue)[0]
	*queue = (*queue)[1:]
	return head, true
}

func (m *mailbox) count(dir elevconsts.Direction) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(*m.queue(dir))
}

func (m *mailbox) empty() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.up) == 0 && len(m.down) == 0
}

// park marks the car as drained. It fails when a request slipped in after
// the last emptiness check, in which case the loop has to keep serving.
func (m *mailbox) park() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.up) != 0 || len(m.down) != 0 {
		return false
	}
	if !m.parked {
		m.parked = true
		close(m.drained)
	}
	return true
}

func (m *mailbox) drainedSignal() <-chan struct{} {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.drained
}

func (m *mailbox) items(dir elevconsts.Direction) []elevrequest.Request {
	m.mu.Lock()
	defer m.mu.Unlock()

	var copied []elevrequest.Request
	if err := deepcopy.Copy(&copied, *m.queue(dir)); err != nil {
		Log.Error().Msgf("Error copying %s queue: %v", dir, err)
		return nil
	}
	return copied
}
