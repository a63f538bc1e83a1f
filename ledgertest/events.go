package ledgertest

import (
	"sync"

	"github.com/iov-one/ledger"
)

// EventRecorder is an in memory ledger.EventSink. All published events are
// kept in the order of publication.
type EventRecorder struct {
	mu     sync.Mutex
	events []ledger.Event
	// Err if set is returned by Publish and nothing is recorded.
	Err error
}

var _ ledger.EventSink = (*EventRecorder)(nil)

func (r *EventRecorder) Publish(ctx ledger.Context, events ...ledger.Event) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	r.events = append(r.events, events...)
	r.mu.Unlock()
	return nil
}

// Events returns a copy of all recorded events.
func (r *EventRecorder) Events() []ledger.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ledger.Event(nil), r.events...)
}

// Reset drops all recorded events.
func (r *EventRecorder) Reset() {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()
}
