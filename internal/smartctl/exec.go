package smartctl

import (
	"context"
	"os/exec"
	"time"
)

// waitDelay bounds how long Run waits for output pipes after the process
// has been killed.
const waitDelay = 2 * time.Second

// Runner runs an external command and returns its combined stdout and
// stderr. The output is returned even when err is non-nil.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (string, error)
}

// ExecRunner runs commands with os/exec. A zero Timeout waits for the
// command to finish however long it takes.
type ExecRunner struct {
	Timeout time.Duration
}

// Run executes the command and captures both output streams. When the
// context ends first, the context error is returned instead of the kill
// status.
func (r ExecRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.WaitDelay = waitDelay
	out, err := cmd.CombinedOutput()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return string(out), ctxErr
	}
	return string(out), err
}

// LookPathFunc resolves an executable name to a path.
type LookPathFunc func(name string) (string, error)

// findExecutable returns the full path of an executable, or empty string.
func findExecutable(name string, lookPath LookPathFunc) string {
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	p, err := lookPath(name)
	if err != nil {
		return ""
	}
	return p
}
