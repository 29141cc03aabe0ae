package interpreter

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/hc12r/filipeX/ast"
)

type ErrorKind int

const (
	NameError ErrorKind = iota + 1
	TypeError
	ValueError
	ArgumentError
)

func (k ErrorKind) String() string {
	switch k {
	case NameError:
		return "NameError"
	case TypeError:
		return "TypeError"
	case ValueError:
		return "ValueError"
	case ArgumentError:
		return "ArgumentError"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// RuntimeError is the single diagnostic produced by a failed evaluation.
// Stack lists the user functions the error unwound through, innermost first.
type RuntimeError struct {
	Kind  ErrorKind
	Msg   string
	File  string
	Span  ast.Span
	Line  string
	Stack []string
}

func newError(kind ErrorKind, format string, args ...any) *RuntimeError {
	return &RuntimeError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func NameErrorf(format string, args ...any) *RuntimeError {
	return newError(NameError, format, args...)
}

func TypeErrorf(format string, args ...any) *RuntimeError {
	return newError(TypeError, format, args...)
}

func ValueErrorf(format string, args ...any) *RuntimeError {
	return newError(ValueError, format, args...)
}

func ArgumentErrorf(format string, args ...any) *RuntimeError {
	return newError(ArgumentError, format, args...)
}

func (e *RuntimeError) hasLocation() bool {
	return e.Span.Line > 0 && e.Span.Col > 0
}

// Headline is the "<Kind>: <message>" form without location or stack.
func (e *RuntimeError) Headline() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *RuntimeError) Error() string {
	var b strings.Builder
	b.WriteString(e.Headline())
	b.WriteString("\n")
	e.writeDetail(&b)
	return strings.TrimRight(b.String(), "\n")
}

func (e *RuntimeError) writeDetail(b *strings.Builder) {
	if e.hasLocation() {
		if e.File != "" {
			b.WriteString(fmt.Sprintf("  at %s:%d:%d\n", e.File, e.Span.Line, e.Span.Col))
		} else {
			b.WriteString(fmt.Sprintf("  at %d:%d\n", e.Span.Line, e.Span.Col))
		}
	}

	if e.Line != "" && e.hasLocation() {
		b.WriteString(fmt.Sprintf("  %d | %s\n", e.Span.Line, e.Line))

		prefix := fmt.Sprintf("  %d | ", e.Span.Line)
		caretSpaces := len(prefix) + (e.Span.Col - 1)
		if caretSpaces < 0 {
			caretSpaces = 0
		}
		b.WriteString(strings.Repeat(" ", caretSpaces))
		b.WriteString("^\n")
	}

	if len(e.Stack) > 0 {
		b.WriteString("Stack:\n")
		// runs of the same frame, as left by deep recursion, print once
		for idx := 0; idx < len(e.Stack); {
			fn := e.Stack[idx]
			n := 1
			for idx+n < len(e.Stack) && e.Stack[idx+n] == fn {
				n++
			}
			if n > 1 {
				b.WriteString(fmt.Sprintf("  at %s() x%d\n", fn, n))
			} else {
				b.WriteString(fmt.Sprintf("  at %s()\n", fn))
			}
			idx += n
		}
	}
}

// AsRuntimeError unwraps err into a *RuntimeError when it is one.
func AsRuntimeError(err error) (*RuntimeError, bool) {
	var rerr *RuntimeError
	if errors.As(err, &rerr) {
		return rerr, true
	}
	return nil, false
}

// IsKind reports whether err is a RuntimeError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	rerr, ok := AsRuntimeError(err)
	return ok && rerr.Kind == kind
}

type ColorMode int

const (
	ColorAuto ColorMode = iota
	ColorAlways
	ColorNever
)

// ErrorHandler holds at most one pending diagnostic. The first error set
// wins; later ones are dropped until Clear.
type ErrorHandler struct {
	err  error
	mode ColorMode
}

func (h *ErrorHandler) Set(err error) {
	if err == nil || h.err != nil {
		return
	}
	h.err = err
}

func (h *ErrorHandler) HasError() bool { return h.err != nil }

func (h *ErrorHandler) Err() error { return h.err }

func (h *ErrorHandler) Clear() { h.err = nil }

func (h *ErrorHandler) SetColorMode(mode ColorMode) { h.mode = mode }

func (h *ErrorHandler) paint(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	switch h.mode {
	case ColorAlways:
		c.EnableColor()
	case ColorNever:
		c.DisableColor()
	}
	return c
}

// Report writes the pending diagnostic to w. It is a no-op when no error is
// pending.
func (h *ErrorHandler) Report(w io.Writer) {
	if h.err == nil {
		return
	}
	rerr, ok := AsRuntimeError(h.err)
	if !ok {
		h.paint(color.FgRed, color.Bold).Fprintln(w, h.err.Error())
		return
	}
	h.paint(color.FgRed, color.Bold).Fprintln(w, rerr.Headline())
	var b strings.Builder
	rerr.writeDetail(&b)
	if b.Len() > 0 {
		h.paint(color.Faint).Fprint(w, b.String())
	}
}
