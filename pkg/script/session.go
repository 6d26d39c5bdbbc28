package script

import (
	"fmt"

	"github.com/dop251/goja"

	"github.com/wehubfusion/scriptfilter/pkg/reading"
)

// InputKey is the binding under which a record's packed datapoints are
// visible to user code, and the binding read back after execution.
const InputKey = "reading"

// SharedStateKey is the global binding under which the per-batch shared
// state mapping is visible to user code.
const SharedStateKey = "user_data"

// Session executes one code string against records, one at a time. The
// code is treated as a full program body; each run gets a fresh local
// scope holding the packed record, layered over the engine's persistent
// global scope. A session lives for one traversal of a batch.
//
// Sessions are not safe for concurrent use, which is moot: every Run
// requires the engine-wide guard.
type Session struct {
	code       string
	fn         goja.Callable
	compileErr *ScriptError
	compiled   bool
}

// NewSession creates a session for the given user code. Compilation is
// deferred to the first Run so a syntax error surfaces as a per-record
// Failed outcome rather than a construction failure.
func NewSession(code string) *Session {
	return &Session{code: code}
}

// Run executes the session's code against one record's datapoints and
// classifies the result. The caller must hold the engine guard g for the
// duration of the call.
//
// Engine errors of any kind, from a syntax error to an exception thrown
// by user code, produce a Failed outcome and never escape as a fault.
func (s *Session) Run(g *Guard, points []*reading.Datapoint) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			out = Failed(NewInternalError(fmt.Sprintf("panic during execution: %v", r)))
		}
	}()

	fn, serr := s.callable(g)
	if serr != nil {
		return Failed(serr)
	}

	input := g.Runtime().ToValue(Pack(points))
	result, err := fn(goja.Undefined(), input)
	if err != nil {
		return Failed(WrapEngineError(err))
	}

	mapping, ok := result.Export().(map[string]interface{})
	if !ok {
		return Drop()
	}
	replacement, ok := Unpack(mapping)
	if !ok {
		return Drop()
	}
	return Replace(replacement)
}

// callable compiles the user code into a single-parameter function taking
// the record binding and returning it. The local scope of each invocation
// is the function activation; assignments without a declaration still
// reach the engine's global scope, which is where the shared state lives.
func (s *Session) callable(g *Guard) (goja.Callable, *ScriptError) {
	if s.compiled {
		return s.fn, s.compileErr
	}
	s.compiled = true

	src := fmt.Sprintf("(function(%s) {\n%s\nreturn %s;\n})", InputKey, s.code, InputKey)
	prog, err := goja.Compile("filter", src, false)
	if err != nil {
		s.compileErr = WrapEngineError(err)
		return nil, s.compileErr
	}

	value, err := g.Runtime().RunProgram(prog)
	if err != nil {
		s.compileErr = WrapEngineError(err)
		return nil, s.compileErr
	}

	fn, ok := goja.AssertFunction(value)
	if !ok {
		s.compileErr = NewInternalError("compiled code is not callable")
		return nil, s.compileErr
	}

	s.fn = fn
	return s.fn, nil
}
