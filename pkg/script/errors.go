package script

import (
	"fmt"

	"github.com/dop251/goja"
)

// ErrorType categorizes script execution failures.
type ErrorType string

const (
	ErrorTypeSyntax   ErrorType = "syntax_error"
	ErrorTypeRuntime  ErrorType = "runtime_error"
	ErrorTypeInternal ErrorType = "internal_error"
)

// ScriptError is the rendered form of a failure raised by user code. It is
// carried inside a Failed outcome and never propagated as a process fault.
type ScriptError struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`
}

// Error implements the error interface.
func (e *ScriptError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// NewSyntaxError creates a syntax error.
func NewSyntaxError(message string) *ScriptError {
	return &ScriptError{Type: ErrorTypeSyntax, Message: message}
}

// NewInternalError creates an internal error.
func NewInternalError(message string) *ScriptError {
	return &ScriptError{Type: ErrorTypeInternal, Message: message}
}

// WrapEngineError renders an error returned by the embedded engine into a
// ScriptError, carrying the exception type and its representation.
func WrapEngineError(err error) *ScriptError {
	if err == nil {
		return nil
	}

	switch e := err.(type) {
	case *ScriptError:
		return e
	case *goja.Exception:
		return &ScriptError{Type: ErrorTypeRuntime, Message: e.Error()}
	case *goja.CompilerSyntaxError:
		return &ScriptError{Type: ErrorTypeSyntax, Message: e.Error()}
	case *goja.CompilerReferenceError:
		return &ScriptError{Type: ErrorTypeSyntax, Message: e.Error()}
	default:
		return &ScriptError{Type: ErrorTypeInternal, Message: err.Error()}
	}
}
