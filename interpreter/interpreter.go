// interpreter/interpreter.go
package interpreter

import (
	"io"
	"log/slog"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/edwingeng/deque"

	"github.com/hc12r/filipeX/ast"
)

const DefaultMaxCallDepth = 1000

// frame is one active user-function call.
type frame struct {
	name string
	span ast.Span
}

type Interpreter struct {
	global *Environment
	errors ErrorHandler

	out    io.Writer
	errOut io.Writer
	exit   func(int)
	rng    *rand.Rand
	logger *slog.Logger

	frames   deque.Deque
	maxDepth int

	filename string
	lines    []string
}

type Option func(*Interpreter)

// WithOutput sets the sink print writes to.
func WithOutput(w io.Writer) Option { return func(i *Interpreter) { i.out = w } }

// WithErrorOutput sets the sink diagnostics are reported to.
func WithErrorOutput(w io.Writer) Option { return func(i *Interpreter) { i.errOut = w } }

// WithExit replaces the process-exit hook used by the exit built-in.
func WithExit(fn func(code int)) Option { return func(i *Interpreter) { i.exit = fn } }

func WithSeed(seed int64) Option {
	return func(i *Interpreter) { i.rng = rand.New(rand.NewSource(seed)) }
}

func WithLogger(l *slog.Logger) Option { return func(i *Interpreter) { i.logger = l } }

func WithMaxCallDepth(n int) Option {
	return func(i *Interpreter) {
		if n > 0 {
			i.maxDepth = n
		}
	}
}

func WithColor(mode ColorMode) Option {
	return func(i *Interpreter) { i.errors.SetColorMode(mode) }
}

func WithSource(filename, source string) Option {
	return func(i *Interpreter) { i.SetSource(filename, source) }
}

func New(opts ...Option) *Interpreter {
	i := &Interpreter{
		global:   NewGlobalEnvironment(),
		out:      os.Stdout,
		errOut:   os.Stderr,
		exit:     defaultExit,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		frames:   deque.NewDeque(),
		maxDepth: DefaultMaxCallDepth,
		lines:    []string{},
	}
	seedBuiltins(i.global)
	for _, opt := range opts {
		opt(i)
	}
	return i
}

func NewWithSource(filename string, source string, opts ...Option) *Interpreter {
	return New(append([]Option{WithSource(filename, source)}, opts...)...)
}

func splitLinesPreserve(src string) []string {
	if src == "" {
		return []string{}
	}
	src = strings.ReplaceAll(src, "\r\n", "\n")
	src = strings.ReplaceAll(src, "\r", "\n")
	return strings.Split(src, "\n")
}

// Global is the outermost scope.
func (i *Interpreter) Global() *Environment { return i.global }

// Errors is the driver-side holder of the pending diagnostic.
func (i *Interpreter) Errors() *ErrorHandler { return &i.errors }

// Evaluate runs program and returns the value of its last statement. On the
// first error nothing further runs, the diagnostic is reported to the error
// sink and ok is false.
func (i *Interpreter) Evaluate(program ast.Program) (result Value, ok bool) {
	i.errors.Clear()
	val, has, err := i.Run(program)
	if err != nil {
		i.errors.Set(err)
	}
	if i.errors.HasError() {
		i.errors.Report(i.errOut)
		return Value{}, false
	}
	return val, has
}

// Run is Evaluate without reporting: the first error is returned. has is
// false when the last statement produced no value (declarations, loops,
// assignments).
func (i *Interpreter) Run(program ast.Program) (result Value, has bool, err error) {
	for _, s := range program {
		span, _ := ast.SpanOf(s)
		i.logger.Debug("exec", "stmt", s.NodeKind(), "line", span.Line)

		c, err := i.execStmt(s, i.global)
		if err != nil {
			return Value{}, false, err
		}
		result, has = c.value, c.hasValue
		if c.returning {
			return c.value, true, nil
		}
	}
	return result, has, nil
}

// errAt builds a RuntimeError located at span in the active source.
func (i *Interpreter) errAt(span ast.Span, kind ErrorKind, format string, args ...any) error {
	return i.locate(newError(kind, format, args...), span)
}

// locate fills in the position of a RuntimeError that has none yet.
func (i *Interpreter) locate(err error, span ast.Span) error {
	rerr, ok := AsRuntimeError(err)
	if !ok || rerr.hasLocation() {
		return err
	}
	rerr.Span = span
	rerr.File = i.filename
	if span.Line > 0 && span.Line-1 < len(i.lines) {
		rerr.Line = i.lines[span.Line-1]
	}
	return rerr
}

func (i *Interpreter) callContext() *CallContext {
	return &CallContext{
		Out:    i.out,
		Exit:   i.exit,
		Rand:   i.rng,
		Logger: i.logger,
	}
}

// currentFunction names the innermost active user function, or "" at top level.
func (i *Interpreter) currentFunction() string {
	if i.frames.Empty() {
		return ""
	}
	return i.frames.Back().(*frame).name
}
