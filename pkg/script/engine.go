// Package script contains the bridge between typed readings and the
// embedded JavaScript engine: value marshalling in both directions, the
// per-record execution session, and the lifecycle of the single
// process-wide engine instance.
package script

import (
	"sync"

	"github.com/dop251/goja"
)

// The embedded engine is a process-wide singleton. Every interaction with
// it, from a single record execution to final shutdown, must happen while
// holding engineMu. The lock is engine-wide, not per record: only one
// record anywhere in the process may be mid-execution at a time.
var (
	engineMu sync.Mutex
	engineVM *goja.Runtime
)

// Engine is a handle to the shared embedded engine. Multiple filter
// instances in one process share the same underlying runtime; the handle
// that actually created it is the one allowed to finalize it.
type Engine struct {
	owned bool
}

// NewEngine returns a handle to the process-wide engine. The engine itself
// is not started until Initialize is called.
func NewEngine() *Engine {
	return &Engine{}
}

// Initialize starts the embedded engine if no other handle has done so
// already. It is idempotent and returns immediately with the engine lock
// released, so other pipeline stages are never blocked between ingestion
// calls. The handle that performs the actual startup becomes the owner.
func (e *Engine) Initialize() {
	engineMu.Lock()
	defer engineMu.Unlock()

	if engineVM == nil {
		engineVM = goja.New()
		e.owned = true
	}
}

// Acquire takes the engine-wide lock and returns a guard scoped to it.
// The caller must call Release on every exit path; all engine access
// funnels through the returned guard.
func (e *Engine) Acquire() *Guard {
	engineMu.Lock()
	return &Guard{}
}

// Shutdown finalizes the embedded engine, but only if this handle
// performed the original Initialize. A non-owning handle merely takes and
// releases the lock, leaving the externally owned engine running.
func (e *Engine) Shutdown() {
	g := e.Acquire()
	defer g.Release()

	if !e.owned {
		return
	}
	e.owned = false
	engineVM = nil
}

// Guard represents held exclusive access to the embedded engine. It is
// valid until Release is called; Release is safe to call more than once.
type Guard struct {
	released bool
}

// Release gives up exclusive access to the engine.
func (g *Guard) Release() {
	if g.released {
		return
	}
	g.released = true
	engineMu.Unlock()
}

// Runtime returns the engine runtime. Only valid while the guard is held.
func (g *Guard) Runtime() *goja.Runtime {
	return engineVM
}

// SetGlobal binds a value into the engine's global scope under the given
// name, making it visible to every script executed afterwards.
func (g *Guard) SetGlobal(name string, value interface{}) error {
	return engineVM.Set(name, value)
}

// DeleteGlobal removes a binding from the engine's global scope.
func (g *Guard) DeleteGlobal(name string) error {
	return engineVM.GlobalObject().Delete(name)
}
