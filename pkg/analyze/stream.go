package analyze

import "sync"

// streamBufferSize bounds each subscriber's event buffer. Producers
// never block; a subscriber that falls behind misses events.
const streamBufferSize = 1000

// EventKind discriminates stream event variants. Events are a tagged
// union rather than an interface hierarchy so they stay serializable
// across process and transport boundaries.
type EventKind string

const (
	EventAdded     EventKind = "added"
	EventResolved  EventKind = "resolved"
	EventDismissed EventKind = "dismissed"
	EventFileClear EventKind = "file_clear"
	EventProgress  EventKind = "progress"
)

// Progress reports analysis progress for live status feeds.
type Progress struct {
	Phase       string `json:"phase"`
	CurrentFile string `json:"currentFile,omitempty"`
	Processed   int    `json:"processed"`
	Total       int    `json:"total"`
	Found       int    `json:"found"`
}

// Event is one diagnostic stream event. Only the fields relevant to
// its Kind are populated.
type Event struct {
	Kind         EventKind   `json:"kind"`
	Diagnostic   *Diagnostic `json:"diagnostic,omitempty"`
	DiagnosticID string      `json:"diagnosticId,omitempty"`
	Resolution   string      `json:"resolution,omitempty"`
	Path         string      `json:"path,omitempty"`
	Progress     *Progress   `json:"progress,omitempty"`
}

// Stream is a multi-producer, multi-consumer broadcast channel with no
// replay. Delivery is best-effort: when a subscriber's buffer is full,
// the event is dropped for that subscriber instead of blocking the
// producer. This is a live-status feed, not a transaction log.
type Stream struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan Event
	closed bool
}

// NewStream creates an empty stream.
func NewStream() *Stream {
	return &Stream{subs: make(map[int]chan Event)}
}

// Subscribe registers a consumer. The returned cancel function
// unsubscribes and closes the channel; it is safe to call twice.
func (s *Stream) Subscribe() (<-chan Event, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++

	ch := make(chan Event, streamBufferSize)
	if s.closed {
		close(ch)
		return ch, func() {}
	}
	s.subs[id] = ch

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if sub, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Publish broadcasts an event to all subscribers without blocking.
func (s *Stream) Publish(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
			// Subscriber buffer exhausted; drop rather than block.
		}
	}
}

// Close tears down the stream and closes all subscriber channels.
func (s *Stream) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}
}

// PublishAdded emits an Added event for a new diagnostic.
func (s *Stream) PublishAdded(d Diagnostic) {
	s.Publish(Event{Kind: EventAdded, Diagnostic: &d})
}

// PublishResolved emits a Resolved event.
func (s *Stream) PublishResolved(diagnosticID, resolution string) {
	s.Publish(Event{Kind: EventResolved, DiagnosticID: diagnosticID, Resolution: resolution})
}

// PublishDismissed emits a Dismissed event.
func (s *Stream) PublishDismissed(diagnosticID string) {
	s.Publish(Event{Kind: EventDismissed, DiagnosticID: diagnosticID})
}

// PublishFileClear signals that a file's diagnostics are obsolete.
func (s *Stream) PublishFileClear(path string) {
	s.Publish(Event{Kind: EventFileClear, Path: path})
}

// PublishProgress emits a Progress event.
func (s *Stream) PublishProgress(p Progress) {
	s.Publish(Event{Kind: EventProgress, Progress: &p})
}
