package ledger

import (
	"context"
	"testing"

	"github.com/iov-one/ledger/errors"
	"github.com/stretchr/testify/assert"
)

func TestEventWith(t *testing.T) {
	addr := Address([]byte{0xAA, 0xBB})
	base := NewEvent("mint").With("admin", addr)
	a := base.With("amount", 10)
	b := base.With("amount", 20)

	// extending an event must not change the one it was built from
	assert.Len(t, base.Attributes, 1)
	v, ok := a.Get("amount")
	assert.True(t, ok)
	assert.Equal(t, "10", v)
	v, _ = b.Get("amount")
	assert.Equal(t, "20", v)
	v, _ = a.Get("admin")
	assert.Equal(t, "AABB", v)
	_, ok = a.Get("missing")
	assert.False(t, ok)
	assert.Equal(t, "mint(admin=AABB, amount=10)", a.String())
}

type failingSink struct{ calls int }

func (f *failingSink) Publish(Context, ...Event) error {
	f.calls++
	return errors.Wrap(errors.ErrDatabase, "down")
}

func TestMultiSink(t *testing.T) {
	first := &failingSink{}
	second := &failingSink{}
	sink := MultiSink{NopSink{}, first, second}
	err := sink.Publish(context.Background(), NewEvent("burn"))
	assert.True(t, errors.ErrDatabase.Is(err))
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 0, second.calls)
}

func TestDeliverResultEmit(t *testing.T) {
	var res DeliverResult
	res.Emit(NewEvent("a"))
	res.Emit(NewEvent("b"), NewEvent("c"))
	assert.Equal(t, []Event{NewEvent("a"), NewEvent("b"), NewEvent("c")}, res.Events)
}

func TestReadOptions(t *testing.T) {
	opts := Options{"token": []byte(`{"name":"Gold"}`)}
	var got struct{ Name string }
	assert.NoError(t, opts.ReadOptions("token", &got))
	assert.Equal(t, "Gold", got.Name)
	assert.NoError(t, opts.ReadOptions("missing", &got))
	assert.Error(t, Options{"bad": []byte(`{`)}.ReadOptions("bad", &got))
}
