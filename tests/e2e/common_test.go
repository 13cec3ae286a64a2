package main_test

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
)

var (
	buildOnce sync.Once
	rvBin     string
	buildErr  error
	buildLog  []byte
)

// buildRvBinary compiles cmd/rv once per test run.
func buildRvBinary(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping e2e test in short mode")
	}
	buildOnce.Do(func() {
		dir, err := os.MkdirTemp("", "rv-e2e-")
		if err != nil {
			buildErr = err
			return
		}
		name := "rv"
		if runtime.GOOS == "windows" {
			name += ".exe"
		}
		rvBin = filepath.Join(dir, name)
		cmd := exec.Command("go", "build", "-o", rvBin, "./cmd/rv")
		cmd.Dir = filepath.Join("..", "..")
		buildLog, buildErr = cmd.CombinedOutput()
	})
	if buildErr != nil {
		t.Fatalf("build rv: %v\n%s", buildErr, buildLog)
	}
	return rvBin
}

// testEnv is an isolated home with a config file pointing history and
// exports into it.
type testEnv struct {
	Dir    string
	Config string
	Out    string
	DB     string
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	dir := t.TempDir()
	e := testEnv{
		Dir:    dir,
		Config: filepath.Join(dir, "config.yaml"),
		Out:    filepath.Join(dir, "exports"),
		DB:     filepath.Join(dir, "history.db"),
	}
	cfg := "export:\n  dir: " + e.Out + "\n  formats: [json]\nhistory:\n  enabled: true\n  path: " + e.DB + "\n"
	if err := os.WriteFile(e.Config, []byte(cfg), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return e
}

// rv runs the binary with --config prepended after the subcommand and
// returns stdout, stderr and the exit code.
func (e testEnv) rv(t *testing.T, bin, sub string, args ...string) (string, string, int) {
	t.Helper()
	full := []string{}
	if sub != "" {
		full = append(full, sub)
	}
	full = append(full, "--config", e.Config)
	full = append(full, args...)

	cmd := exec.Command(bin, full...)
	cmd.Dir = e.Dir
	cmd.Env = append(os.Environ(), "HOME="+e.Dir)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()

	code := 0
	if exitErr, ok := err.(*exec.ExitError); ok {
		code = exitErr.ExitCode()
	} else if err != nil {
		t.Fatalf("run rv: %v", err)
	}
	return stdout.String(), stderr.String(), code
}
