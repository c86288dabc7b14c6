package sidebar

import (
	"log/slog"
	"slices"
	"sync"
)

// EventName identifies a notification channel.
type EventName string

const (
	// Any matches every event when used with ListenFor.
	Any EventName = ""
	// EventChanged fires after every visibility transition.
	EventChanged EventName = "sidebar:changed"
	// EventGroupChanged fires after a navigation group is toggled.
	EventGroupChanged EventName = "sidebar:group-changed"
)

// Event is broadcast once per completed transition. Observers must tolerate redundant events.
type Event struct {
	Name      EventName
	State     State
	Group     string
	Collapsed bool
}

func NewNotifier() *Notifier {
	return &Notifier{
		readers:   make(map[EventName][]*reader),
		readersMu: &sync.RWMutex{},
	}
}

// Notifier fans out sidebar events to any number of registered channels.
type Notifier struct {
	readersAny []*reader
	readers    map[EventName][]*reader
	readersMu  *sync.RWMutex
}

// ListenFor registers a channel to receive the named event, or every event for Any.
// The returned func removes the registration.
func (n *Notifier) ListenFor(name EventName, handler chan<- Event) func() {
	n.readersMu.Lock()
	defer n.readersMu.Unlock()

	registered := newReader(handler)
	if name == Any {
		n.readersAny = append(n.readersAny, registered)
	} else {
		n.readers[name] = append(n.readers[name], registered)
	}

	return func() {
		n.readersMu.Lock()
		defer n.readersMu.Unlock()

		match := func(r *reader) bool { return r == registered }
		if name == Any {
			n.readersAny = slices.DeleteFunc(n.readersAny, match)
		} else {
			n.readers[name] = slices.DeleteFunc(n.readers[name], match)
		}

		registered.stop()
	}
}

// Broadcast delivers the event without blocking the caller. When a reader's channel is full
// the event is queued for that reader and replaces any queued event with the same name and
// group, so a slow reader skips intermediate states but always receives the latest one.
func (n *Notifier) Broadcast(event Event) {
	if n == nil {
		return
	}

	n.readersMu.RLock()
	defer n.readersMu.RUnlock()

	for _, handler := range n.readers[event.Name] {
		handler.send(event)
	}

	for _, handler := range n.readersAny {
		handler.send(event)
	}
}

// reader is one registered channel plus the events waiting for room in it.
type reader struct {
	ch       chan<- Event
	done     chan struct{}
	stopOnce sync.Once
	mu       sync.Mutex
	pending  []Event
	flushing bool
}

func newReader(ch chan<- Event) *reader {
	return &reader{ch: ch, done: make(chan struct{})}
}

func (r *reader) send(event Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.flushing {
		select {
		case r.ch <- event:
			return
		default:
		}

		r.flushing = true
		go r.flush()
	}

	r.pending = coalesce(r.pending, event)

	slog.Debug("Queued sidebar event for slow reader",
		slog.String("event", string(event.Name)), slog.Int("pending", len(r.pending)))
}

// flush delivers queued events in order until the queue is empty or the reader is removed.
func (r *reader) flush() {
	for {
		r.mu.Lock()
		if len(r.pending) == 0 {
			r.flushing = false
			r.mu.Unlock()

			return
		}

		event := r.pending[0]
		r.pending = r.pending[1:]
		r.mu.Unlock()

		select {
		case r.ch <- event:
		case <-r.done:
			return
		}
	}
}

func (r *reader) stop() {
	r.stopOnce.Do(func() { close(r.done) })
}

func coalesce(pending []Event, event Event) []Event {
	pending = slices.DeleteFunc(pending, func(queued Event) bool {
		return queued.Name == event.Name && queued.Group == event.Group
	})

	return append(pending, event)
}
