package viewsync

import "sync"

// Viewer is what the hub delivers to. Deliver must never block.
type Viewer interface {
	ID() SessionID
	Deliver(evt SessionEvent)
	Done() <-chan struct{}
}

// Mailbox is a Viewer for one Bubble Tea program. Every frame is a complete
// ViewState, so only the newest unread frame is kept: a frame delivered
// before the view read the previous one replaces it. Slot notices queue up
// and are handed out before any frame.
type Mailbox struct {
	id SessionID

	mu       sync.Mutex
	notices  []SessionEvent
	frame    *ViewState
	replaced uint64

	ready    chan struct{} // Holds one wake-up while something is unread
	done     chan struct{}
	doneOnce sync.Once
}

// NewMailbox creates an empty mailbox.
func NewMailbox(id SessionID) *Mailbox {
	return &Mailbox{
		id:    id,
		ready: make(chan struct{}, 1),
		done:  make(chan struct{}),
	}
}

// ID returns the session identifier.
func (m *Mailbox) ID() SessionID {
	return m.id
}

// Deliver stores evt. A FrameEvent overwrites an unread frame. Deliveries
// after Close are ignored.
func (m *Mailbox) Deliver(evt SessionEvent) {
	select {
	case <-m.done:
		return
	default:
	}

	m.mu.Lock()
	switch e := evt.(type) {
	case FrameEvent:
		if m.frame != nil {
			m.replaced++
		}
		m.frame = e.State
	default:
		m.notices = append(m.notices, evt)
	}
	m.mu.Unlock()

	select {
	case m.ready <- struct{}{}:
	default:
	}
}

// TryNext returns the next unread event without waiting.
func (m *Mailbox) TryNext() (SessionEvent, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.notices) > 0 {
		evt := m.notices[0]
		m.notices = m.notices[1:]
		return evt, true
	}
	if m.frame != nil {
		v := m.frame
		m.frame = nil
		return FrameEvent{State: v}, true
	}
	return nil, false
}

// Next waits for the next event. It returns false once the mailbox is
// closed and nothing is left to read.
func (m *Mailbox) Next() (SessionEvent, bool) {
	for {
		if evt, ok := m.TryNext(); ok {
			return evt, true
		}
		select {
		case <-m.ready:
		case <-m.done:
			return m.TryNext()
		}
	}
}

// Replaced returns how many frames were overwritten before being read.
func (m *Mailbox) Replaced() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.replaced
}

// Done is closed by Close.
func (m *Mailbox) Done() <-chan struct{} {
	return m.done
}

// Close ends the session. It may be called more than once.
func (m *Mailbox) Close() {
	m.doneOnce.Do(func() {
		close(m.done)
	})
}
