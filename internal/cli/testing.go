package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// CLI runs ringy in tests against a temp working directory and a temp home,
// so no real user config or history is touched.
type CLI struct {
	t   *testing.T
	Dir string
	Env map[string]string
}

// NewCLI creates a new test CLI with temp work and home directories.
func NewCLI(t *testing.T) *CLI {
	t.Helper()

	home := t.TempDir()

	return &CLI{
		t:   t,
		Dir: t.TempDir(),
		Env: map[string]string{
			"HOME":            home,
			"XDG_CONFIG_HOME": filepath.Join(home, ".config"),
		},
	}
}

// Run executes ringy with stdin and returns stdout, stderr, and exit code.
// Args should not include "ringy" or "--cwd", those are added automatically.
func (r *CLI) Run(stdin string, args ...string) (string, string, int) {
	var outBuf, errBuf bytes.Buffer

	fullArgs := append([]string{"ringy", "--cwd", r.Dir}, args...)
	code := Run(strings.NewReader(stdin), &outBuf, &errBuf, fullArgs, r.Env)

	return outBuf.String(), errBuf.String(), code
}

// MustRun executes ringy and fails the test on a non-zero exit code.
// Returns trimmed stdout on success.
func (r *CLI) MustRun(stdin string, args ...string) string {
	r.t.Helper()

	stdout, stderr, code := r.Run(stdin, args...)
	if code != 0 {
		r.t.Fatalf("ringy %v failed with exit code %d\nstderr: %s", args, code, stderr)
	}

	return strings.TrimSpace(stdout)
}

// MustFail executes ringy and fails the test if it succeeds.
// Returns trimmed stderr.
func (r *CLI) MustFail(stdin string, args ...string) string {
	r.t.Helper()

	stdout, stderr, code := r.Run(stdin, args...)
	if code == 0 {
		r.t.Fatalf("ringy %v should have failed but succeeded\nstdout: %s", args, stdout)
	}

	return strings.TrimSpace(stderr)
}

// WriteFile writes content to a path relative to the work directory,
// creating parent directories.
func (r *CLI) WriteFile(name, content string) string {
	r.t.Helper()

	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(r.Dir, name)
	}

	err := os.MkdirAll(filepath.Dir(path), 0o750)
	if err != nil {
		r.t.Fatalf("failed to create dir for %s: %v", path, err)
	}

	err = os.WriteFile(path, []byte(content), 0o600)
	if err != nil {
		r.t.Fatalf("failed to write %s: %v", path, err)
	}

	return path
}

// GlobalConfigPath returns where the test home's global config lives.
func (r *CLI) GlobalConfigPath() string {
	return filepath.Join(r.Env["XDG_CONFIG_HOME"], "ringy", "config.json")
}

// AssertContains fails the test if content doesn't contain substr.
func AssertContains(t *testing.T, content, substr string) {
	t.Helper()

	if !strings.Contains(content, substr) {
		t.Errorf("content should contain %q\ncontent:\n%s", substr, content)
	}
}
