package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/hc12r/filipeX/config"
	"github.com/hc12r/filipeX/interpreter"
)

type repl struct {
	logger  *slog.Logger
	out     io.Writer
	errOut  io.Writer
	session *interpreter.Interpreter
	chunk   int
	colors  interpreter.ColorMode
}

func runREPL(cfg *config.Config, logger *slog.Logger, stdout, stderr io.Writer) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:                 cfg.Repl.Prompt,
		HistoryFile:            cfg.HistoryPath(),
		InterruptPrompt:        "^C",
		EOFPrompt:              "exit",
		HistorySearchFold:      true,
		DisableAutoSaveHistory: false,
		Stdout:                 stdout,
		Stderr:                 stderr,
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	r := &repl{
		logger:  logger,
		out:     stdout,
		errOut:  stderr,
		session: newSession(cfg, logger, stdout, stderr),
		colors:  cfg.ColorMode(),
	}

	r.paint(color.Bold).Fprintf(stdout, "Filipe %s REPL", version)
	fmt.Fprintln(stdout, " :help for commands, :quit to exit.")
	fmt.Fprintln(stdout, "Multi-line blocks are read until their braces balance.")
	fmt.Fprintln(stdout)

	var buf strings.Builder
	depth := 0

	pasteMode := false
	var pasteBuf strings.Builder

	for {
		switch {
		case pasteMode:
			rl.SetPrompt("paste> ")
		case depth > 0:
			rl.SetPrompt("...    ")
		default:
			rl.SetPrompt(cfg.Repl.Prompt)
		}

		line, err := rl.Readline()

		// Ctrl+C
		if errors.Is(err, readline.ErrInterrupt) {
			if pasteMode {
				pasteMode = false
				pasteBuf.Reset()
				fmt.Fprintln(stdout, "^C (paste cancelled)")
				continue
			}
			if buf.Len() > 0 || depth > 0 {
				buf.Reset()
				depth = 0
				fmt.Fprintln(stdout, "^C (buffer cleared)")
			}
			continue
		}

		// Ctrl+D
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(stdout)
			return nil
		}
		if err != nil {
			return err
		}

		trim := strings.TrimSpace(line)

		if pasteMode {
			switch trim {
			case ".", ":endpaste":
				src := pasteBuf.String()
				pasteBuf.Reset()
				pasteMode = false
				if strings.TrimSpace(src) == "" {
					fmt.Fprintln(stdout, "(paste buffer empty)")
					continue
				}
				r.eval(r.chunkName(), src)
			case ":cancel":
				pasteBuf.Reset()
				pasteMode = false
				fmt.Fprintln(stdout, "(paste cancelled)")
			default:
				pasteBuf.WriteString(line)
				pasteBuf.WriteString("\n")
			}
			continue
		}

		// Commands only when not buffering a block.
		if depth == 0 && buf.Len() == 0 && strings.HasPrefix(trim, ":") {
			quit, cmdErr := r.command(trim, &pasteMode)
			if cmdErr != nil {
				fmt.Fprintln(stderr, cmdErr.Error())
			}
			if quit {
				return nil
			}
			continue
		}

		buf.WriteString(line)
		buf.WriteString("\n")

		depth = updateDepth(depth, line)
		if depth > 0 {
			continue
		}

		src := buf.String()
		buf.Reset()
		depth = 0
		if strings.TrimSpace(src) == "" {
			continue
		}
		r.eval(r.chunkName(), src)
	}
}

// paint applies the configured colour mode on top of fatih/color's terminal
// detection.
func (r *repl) paint(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	switch r.colors {
	case interpreter.ColorAlways:
		c.EnableColor()
	case interpreter.ColorNever:
		c.DisableColor()
	}
	return c
}

func (r *repl) chunkName() string {
	r.chunk++
	return fmt.Sprintf("<repl:%d>", r.chunk)
}

// eval runs one chunk in the session and echoes its value. A host fault such
// as integer division by zero ends the chunk, not the session.
func (r *repl) eval(filename, src string) {
	defer func() {
		if p := recover(); p != nil {
			r.logger.Debug("recovered", "panic", p)
			r.paint(color.FgRed, color.Bold).Fprintf(r.errOut, "fatal: %v\n", p)
		}
	}()

	val, ok, err := runSource(r.session, filename, src)
	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(r.errOut, err)
		}
		return
	}
	if ok && val.Kind != interpreter.ValNull {
		r.paint(color.FgCyan).Fprintln(r.out, val.String())
	}
}

func (r *repl) command(cmd string, pasteMode *bool) (quit bool, err error) {
	switch {
	case cmd == ":q" || cmd == ":quit" || cmd == ":exit":
		return true, nil

	case cmd == ":h" || cmd == ":help":
		fmt.Fprintln(r.out, "Commands:")
		fmt.Fprintln(r.out, "  :help              Show this help")
		fmt.Fprintln(r.out, "  :quit              Exit the REPL")
		fmt.Fprintln(r.out, "  :vars              Show global bindings")
		fmt.Fprintln(r.out, "  :funcs             Show user-defined functions")
		fmt.Fprintln(r.out, "  :reset             Forget every binding of this session")
		fmt.Fprintln(r.out, "  :clear             Clear the screen")
		fmt.Fprintln(r.out, "  :load <file>       Run a file inside this session")
		fmt.Fprintln(r.out, "  :paste             Start paste mode (end with '.' or :endpaste)")
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, "Paste mode controls:")
		fmt.Fprintln(r.out, "  .                  End + run pasted program")
		fmt.Fprintln(r.out, "  :endpaste          End + run pasted program")
		fmt.Fprintln(r.out, "  :cancel            Cancel paste without running")
		return false, nil

	case strings.HasPrefix(cmd, ":load"):
		path := strings.TrimSpace(strings.TrimPrefix(cmd, ":load"))
		if path == "" {
			return false, fmt.Errorf("Usage: :load <file.fl>")
		}
		b, err := os.ReadFile(path)
		if err != nil {
			return false, fmt.Errorf("Failed to read %s: %s", path, err.Error())
		}
		r.eval(filepath.Base(path), string(b))
		return false, nil

	case cmd == ":reset":
		r.session.Reset()
		fmt.Fprintln(r.out, "(session reset)")
		return false, nil

	case cmd == ":clear":
		fmt.Fprint(r.out, "\033[2J\033[H")
		return false, nil

	case cmd == ":paste":
		*pasteMode = true
		fmt.Fprintln(r.out, "(paste mode: end with '.' or :endpaste, cancel with :cancel)")
		return false, nil

	case cmd == ":vars":
		names := r.session.GlobalNames()
		if len(names) == 0 {
			fmt.Fprintln(r.out, "(no globals)")
			return false, nil
		}
		globs := r.session.GlobalsSnapshot()
		for _, k := range names {
			b := globs[k]
			kw := "let"
			if !b.Mutable {
				kw = "const"
			}
			fmt.Fprintf(r.out, "%s %s: %s = %s\n", kw, k, b.Type, b.Value)
		}
		return false, nil

	case cmd == ":funcs":
		names := r.session.FuncNames()
		if len(names) == 0 {
			fmt.Fprintln(r.out, "(no user functions)")
			return false, nil
		}
		globs := r.session.GlobalsSnapshot()
		for _, n := range names {
			fmt.Fprintln(r.out, globs[n].Value.ToString())
		}
		return false, nil

	default:
		fmt.Fprintln(r.out, "Unknown command. Try :help")
		return false, nil
	}
}

// updateDepth adds the line's brace balance to depth, ignoring braces inside
// string literals and // comments.
func updateDepth(depth int, line string) int {
	inString := false
	escaped := false
	for idx := 0; idx < len(line); idx++ {
		ch := line[idx]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '/':
			if idx+1 < len(line) && line[idx+1] == '/' {
				return max(depth, 0)
			}
		case '{':
			depth++
		case '}':
			depth--
		}
	}
	return max(depth, 0)
}
