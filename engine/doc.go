// Package engine defines the boundary to the external typed-storage
// engine and provides a goleveldb-backed implementation of it.
//
// The Engine interface is deliberately narrow: create or open a typed
// chunked table, append raw record bytes, read raw record bytes back,
// introspect the declared type and record count, and release the handle.
// Everything above it (packet tables, buffered writers, typed views)
// lives in other packages; everything below it (chunk persistence,
// atomicity of one write call) belongs to the engine.
//
// The engine is not assumed internally thread-safe. Every call funnels
// through one process-wide critical section, so concurrent use from
// multiple goroutines is safe exactly when every call goes through this
// package.
package engine
