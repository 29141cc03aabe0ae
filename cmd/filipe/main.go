package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"git.sr.ht/~sircmpwn/getopt"
	"github.com/fatih/color"

	"github.com/hc12r/filipeX/config"
	"github.com/hc12r/filipeX/interpreter"
)

const version = "0.1.0"

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  filipe [-c config] [-s seed] [-d] [-n] <file.fl>")
	fmt.Fprintln(w, "  filipe [-c config] [-s seed] [-d] [-n] -e <source>")
	fmt.Fprintln(w, "  filipe                     start the REPL")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fmt.Fprintln(w, "  -c FILE   read settings from FILE instead of .filipe.yaml")
	fmt.Fprintln(w, "  -s SEED   seed the random built-in")
	fmt.Fprintln(w, "  -d        debug logging")
	fmt.Fprintln(w, "  -n        no colour in diagnostics")
	fmt.Fprintln(w, "  -e SRC    evaluate SRC and exit")
	fmt.Fprintln(w, "  -h        show this help")
	fmt.Fprintln(w, "  -v        print the version")
}

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

// cliOptions is what the command line asked for, before the config file is
// merged in.
type cliOptions struct {
	configPath string
	seed       *int64
	debug      bool
	noColor    bool
	inline     *string
}

func run(argv []string, stdout, stderr io.Writer) int {
	opts, optind, err := getopt.Getopts(argv, "c:de:hns:v")
	if err != nil {
		fmt.Fprintln(stderr, err)
		usage(stderr)
		return 2
	}
	args := argv[optind:]

	var cli cliOptions
	for _, opt := range opts {
		switch opt.Option {
		case 'c':
			cli.configPath = opt.Value
		case 'd':
			cli.debug = true
		case 'e':
			src := opt.Value
			cli.inline = &src
		case 'h':
			usage(stdout)
			return 0
		case 'n':
			cli.noColor = true
		case 's':
			seed, err := strconv.ParseInt(opt.Value, 10, 64)
			if err != nil {
				fmt.Fprintf(stderr, "invalid -s parameter %q\n", opt.Value)
				return 2
			}
			cli.seed = &seed
		case 'v':
			fmt.Fprintf(stdout, "filipe %s\n", version)
			return 0
		}
	}

	cfg, err := loadConfig(cli.configPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	if cli.seed != nil {
		cfg.Seed = *cli.seed
	}
	if cli.noColor {
		cfg.Color = "never"
		color.NoColor = true
	}

	level := cfg.Level()
	if cli.debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	if cfg.Path != "" {
		logger.Debug("config loaded", "path", cfg.Path)
	}

	switch {
	case cli.inline != nil:
		return runFile(newSession(cfg, logger, stdout, stderr), "<eval>", *cli.inline, stderr)

	case len(args) > 0:
		filename := args[0]
		src, err := os.ReadFile(filename)
		if err != nil {
			fmt.Fprintf(stderr, "Error reading %s: %v\n", filename, err)
			return 1
		}
		return runFile(newSession(cfg, logger, stdout, stderr), filepath.Base(filename), string(src), stderr)

	default:
		if err := runREPL(cfg, logger, stdout, stderr); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		return 0
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.LoadDefault()
}

// runFile evaluates a whole program and maps the outcome to an exit status.
func runFile(in *interpreter.Interpreter, filename, src string, stderr io.Writer) int {
	_, _, err := runSource(in, filename, src)
	if err == nil {
		return 0
	}
	if !errors.Is(err, errReported) {
		fmt.Fprintln(stderr, err)
	}
	return 1
}
