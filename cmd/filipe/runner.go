package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/hc12r/filipeX/config"
	"github.com/hc12r/filipeX/interpreter"
	"github.com/hc12r/filipeX/parser"
)

// errReported marks a runtime error the interpreter has already written to
// its error sink.
var errReported = errors.New("runtime error reported")

func newSession(cfg *config.Config, logger *slog.Logger, stdout, stderr io.Writer) *interpreter.Interpreter {
	opts := append(cfg.Options(),
		interpreter.WithOutput(stdout),
		interpreter.WithErrorOutput(stderr),
		interpreter.WithLogger(logger),
	)
	return interpreter.New(opts...)
}

// runSource parses src and evaluates it in the given session. Parse errors are
// returned as is; runtime errors are reported by the session and come back as
// errReported.
func runSource(in *interpreter.Interpreter, filename, src string) (interpreter.Value, bool, error) {
	prog, err := parser.ParseSource(src)
	if err != nil {
		return interpreter.Value{}, false, fmt.Errorf("%s: %w", filename, err)
	}

	// Ensure runtime errors have the right context for this chunk.
	in.SetSource(filename, src)

	val, ok := in.Evaluate(prog)
	if in.Errors().HasError() {
		return interpreter.Value{}, false, errReported
	}
	return val, ok, nil
}
