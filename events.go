package ledger

import (
	"fmt"
	"strings"
)

// Event is a notification about a successful state change. Each event is
// identified by its topic and carries an ordered list of attributes.
type Event struct {
	Topic      string      `json:"topic"`
	Attributes []Attribute `json:"attributes,omitempty"`
}

// Attribute is a single key value pair of an event.
type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// NewEvent returns an event without attributes.
func NewEvent(topic string) Event {
	return Event{Topic: topic}
}

// With returns a copy of the event extended by given attribute. Values are
// formatted using fmt, which means that types implementing Stringer (ie.
// Address) are stored in their human readable form.
func (e Event) With(key string, value interface{}) Event {
	attrs := make([]Attribute, len(e.Attributes), len(e.Attributes)+1)
	copy(attrs, e.Attributes)
	e.Attributes = append(attrs, Attribute{Key: key, Value: fmt.Sprint(value)})
	return e
}

// Get returns the value of the first attribute with given key.
func (e Event) Get(key string) (string, bool) {
	for _, a := range e.Attributes {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

func (e Event) String() string {
	pairs := make([]string, len(e.Attributes))
	for i, a := range e.Attributes {
		pairs[i] = a.Key + "=" + a.Value
	}
	return fmt.Sprintf("%s(%s)", e.Topic, strings.Join(pairs, ", "))
}

// EventSink is where the events of every successful invocation are
// published to, in the order they were emitted.
type EventSink interface {
	Publish(ctx Context, events ...Event) error
}

// NopSink drops all events.
type NopSink struct{}

var _ EventSink = NopSink{}

// Publish implements EventSink.
func (NopSink) Publish(Context, ...Event) error { return nil }

// MultiSink publishes events to all sinks. It stops on the first failure.
type MultiSink []EventSink

var _ EventSink = MultiSink(nil)

// Publish implements EventSink.
func (m MultiSink) Publish(ctx Context, events ...Event) error {
	for _, s := range m {
		if err := s.Publish(ctx, events...); err != nil {
			return err
		}
	}
	return nil
}
