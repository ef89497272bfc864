package recording

import (
	"slices"
	"sync"

	"github.com/gogpu/drawing/internal/binio"
)

// unmarshalFunc rebuilds an op from its record payload. It reads the
// payload through r; the caller rejects the op if r reports a short read.
type unmarshalFunc func(list *DrawCmdList, r *binio.Reader) DrawOpItem

// Registry state - protected by mutex for thread-safe access.
var (
	registryMu   sync.RWMutex
	unmarshalers = make(map[OpType]unmarshalFunc)
)

// registerOp installs the unmarshal function for an op type. Op files call
// it from init(), following the database/sql driver pattern.
//
// registerOp panics if fn is nil or the type is already registered, so
// clashing op tables are caught during program initialization.
func registerOp(t OpType, fn unmarshalFunc) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if fn == nil {
		panic("recording: registerOp func is nil")
	}
	if _, dup := unmarshalers[t]; dup {
		panic("recording: registerOp called twice for " + t.String())
	}
	unmarshalers[t] = fn
}

// unregisterOp removes an op type. Tests use it to simulate records
// written by a newer version.
func unregisterOp(t OpType) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(unmarshalers, t)
}

func lookupUnmarshaler(t OpType) (unmarshalFunc, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	fn, ok := unmarshalers[t]
	return fn, ok
}

// IsRegistered reports whether records of type t can be played back.
func IsRegistered(t OpType) bool {
	_, ok := lookupUnmarshaler(t)
	return ok
}

// RegisteredOps returns the registered op types in ascending order.
func RegisteredOps() []OpType {
	registryMu.RLock()
	defer registryMu.RUnlock()

	types := make([]OpType, 0, len(unmarshalers))
	for t := range unmarshalers {
		types = append(types, t)
	}
	slices.Sort(types)
	return types
}
