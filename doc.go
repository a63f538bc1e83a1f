/*
Package ledger defines the interfaces shared by all parts of the token
ledger: storage, messages, handlers, events and the context keys that
travel with every invocation.

We pass context through context.Context between the application, the
decorators and the handlers. There should exist two functions for every XYZ
of type T that we want to support in Context:

	WithXYZ(Context, T) Context
	GetXYZ(Context) (val T, ok bool)

WithXYZ panics if the value was previously set to avoid lower-level modules
overwriting the value (eg. sequence, chain id).

Extensions live under x/. Each of them registers its handlers with a
Registry, its read paths with a QueryRouter and its genesis state with an
Initializer.
*/
package ledger
