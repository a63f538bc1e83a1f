package ledger

import (
	"context"
	"regexp"

	"github.com/iov-one/ledger/errors"
	"github.com/tendermint/tendermint/libs/log"
)

type contextKey int // local to the ledger module

const (
	contextKeySequence contextKey = iota
	contextKeyChainID
	contextKeyLogger
)

var (
	// DefaultLogger is used for all context that have not
	// set anything themselves
	DefaultLogger = log.NewNopLogger()

	// IsValidChainID is the RegExp to ensure valid chain IDs
	IsValidChainID = regexp.MustCompile(`^[a-zA-Z0-9_\-]{6,20}$`).MatchString
)

// Context is just an alias for the standard implementation.
// We use functions to extend it to our domain
type Context = context.Context

// WithSequence sets the ledger sequence number for the context.
// The sequence is what every expiration is compared against.
// Panics if the sequence is already set.
func WithSequence(ctx Context, seq uint64) Context {
	if _, ok := GetSequence(ctx); ok {
		panic("Sequence already set")
	}
	return context.WithValue(ctx, contextKeySequence, seq)
}

// GetSequence returns the current ledger sequence number.
func GetSequence(ctx Context) (uint64, bool) {
	val, ok := ctx.Value(contextKeySequence).(uint64)
	return val, ok
}

// CurrentSequence returns the ledger sequence number or an error if the
// context was not prepared by the application.
func CurrentSequence(ctx Context) (uint64, error) {
	seq, ok := GetSequence(ctx)
	if !ok {
		return 0, errors.Wrap(errors.ErrHuman, "sequence not set in the context")
	}
	return seq, nil
}

// WithChainID sets the chain id for the Context.
// panics if called with chain id already set
func WithChainID(ctx Context, chainID string) Context {
	if ctx.Value(contextKeyChainID) != nil {
		panic("Chain ID already set")
	}
	if !IsValidChainID(chainID) {
		panic("Invalid chain ID: " + chainID)
	}
	return context.WithValue(ctx, contextKeyChainID, chainID)
}

// GetChainID returns the current chain id
// panics if chain id not already set (should never happen)
func GetChainID(ctx Context) string {
	if x := ctx.Value(contextKeyChainID); x == nil {
		panic("Chain id not set")
	}
	return ctx.Value(contextKeyChainID).(string)
}

// WithLogger sets the logger for this Context
func WithLogger(ctx Context, logger log.Logger) Context {
	return context.WithValue(ctx, contextKeyLogger, logger)
}

// WithLogInfo accepts keyvalue pairs, and returns another
// context like this, after passing all the keyvals to the
// Logger
func WithLogInfo(ctx Context, keyvals ...interface{}) Context {
	logger := GetLogger(ctx).With(keyvals...)
	return WithLogger(ctx, logger)
}

// GetLogger returns the currently set logger, or
// DefaultLogger if none was set
func GetLogger(ctx Context) log.Logger {
	val, ok := ctx.Value(contextKeyLogger).(log.Logger)
	if !ok {
		return DefaultLogger
	}
	return val
}
