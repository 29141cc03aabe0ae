package config

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hc12r/filipeX/interpreter"
	"github.com/hc12r/filipeX/parser"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, interpreter.DefaultMaxCallDepth, cfg.MaxCallDepth)
	assert.Equal(t, interpreter.ColorAuto, cfg.ColorMode())
	assert.Equal(t, slog.LevelWarn, cfg.Level())
	assert.Equal(t, "filipe> ", cfg.Repl.Prompt)
	assert.Empty(t, cfg.Path)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
seed: 42
max_call_depth: 64
color: never
log_level: debug
repl:
  prompt: "> "
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, 64, cfg.MaxCallDepth)
	assert.Equal(t, interpreter.ColorNever, cfg.ColorMode())
	assert.Equal(t, slog.LevelDebug, cfg.Level())
	assert.Equal(t, "> ", cfg.Repl.Prompt)
	assert.Equal(t, "~/.filipe_history", cfg.Repl.HistoryFile, "unset fields keep defaults")
	assert.Equal(t, path, cfg.Path)
}

func TestLoadEmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default().MaxCallDepth, cfg.MaxCallDepth)
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	_, err := Load(writeConfig(t, "max_depth: 10\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_depth")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	_, err = Load("")
	assert.Error(t, err)
}

func TestValidateCollectsIssues(t *testing.T) {
	_, err := Load(writeConfig(t, "max_call_depth: 0\ncolor: purple\nlog_level: loud\nrepl:\n  prompt: \" \"\n"))
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Issues, 4)
	assert.Contains(t, err.Error(), "config validation failed:\n- max_call_depth must be positive, got 0")
	assert.Contains(t, err.Error(), `got "purple"`)
}

func TestHistoryPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	cfg := Default()
	assert.Equal(t, filepath.Join(home, ".filipe_history"), cfg.HistoryPath())

	cfg.Repl.HistoryFile = "/tmp/hist"
	assert.Equal(t, "/tmp/hist", cfg.HistoryPath())
}

func TestOptionsConfigureInterpreter(t *testing.T) {
	cfg := Default()
	assert.Len(t, cfg.Options(), 2)

	cfg.Seed = 9
	assert.Len(t, cfg.Options(), 3)

	draw := func() string {
		prog, err := parser.ParseSource(`print(random(1000));`)
		require.NoError(t, err)
		var out bytes.Buffer
		in := interpreter.New(append(cfg.Options(), interpreter.WithOutput(&out))...)
		_, _, err = in.Run(prog)
		require.NoError(t, err)
		return out.String()
	}
	assert.Equal(t, draw(), draw(), "seeded sessions draw the same numbers")
}

func TestLoadDefaultFallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("HOME", dir)

	cfg, err := LoadDefault()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("seed: 5\n"), 0o644))
	cfg, err = LoadDefault()
	require.NoError(t, err)
	assert.Equal(t, int64(5), cfg.Seed)
}
