// Package smartctl wraps invocations of the smartctl binary from
// smartmontools.
package smartctl

import (
	"context"
	"errors"
	"fmt"
	"os/exec"

	"github.com/sirupsen/logrus"

	"smartinfo/internal/logger"
	"smartinfo/internal/smart"
)

// Binary is the executable name searched for on PATH.
const Binary = "smartctl"

// ErrNotFound is returned by Locate when smartctl cannot be found.
var ErrNotFound = errors.New("smartctl not found")

// Locate returns the smartctl path to use. A configured path wins over the
// PATH lookup; it is resolved through lookPath as well so that a bare name or
// a missing file is caught here rather than at first use.
func Locate(configured string, lookPath LookPathFunc) (string, error) {
	name := Binary
	if configured != "" {
		name = configured
	}
	if p := findExecutable(name, lookPath); p != "" {
		return p, nil
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, name)
}

// Client runs smartctl through a Runner.
type Client struct {
	path   string
	runner Runner
}

// NewClient returns a client for the smartctl binary at path.
func NewClient(path string, runner Runner) *Client {
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Client{path: path, runner: runner}
}

// Path returns the smartctl binary the client runs.
func (c *Client) Path() string {
	return c.path
}

// Scan runs `smartctl --scan` and returns the reported device paths.
func (c *Client) Scan(ctx context.Context) ([]string, error) {
	out, err := c.runner.Run(ctx, c.path, "--scan")
	if err != nil {
		return nil, fmt.Errorf("smartctl --scan failed: %w", err)
	}
	devices := smart.ParseScan(out)
	logger.Debugf("smartctl --scan found %d devices", len(devices))
	return devices, nil
}

// Query runs `smartctl -a <device>` and returns the captured report.
//
// smartctl encodes drive conditions in its exit status, so a non-zero exit
// still carries a usable report and is not treated as an error. Failing to
// start the process or hitting the timeout is.
func (c *Client) Query(ctx context.Context, device string) (string, error) {
	out, err := c.runner.Run(ctx, c.path, "-a", device)
	if err == nil {
		return out, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		logger.WithFields(logrus.Fields{
			"device": device,
			"status": exitErr.ExitCode(),
		}).Debug("smartctl exited non-zero, parsing its output anyway")
		return out, nil
	}
	return out, fmt.Errorf("smartctl -a %s: %w", device, err)
}

// Inspect queries a device and parses the report.
func (c *Client) Inspect(ctx context.Context, device string, includeRaw bool) (smart.Result, error) {
	out, err := c.Query(ctx, device)
	if err != nil {
		return smart.Result{}, err
	}
	return smart.Parse(device, out, includeRaw), nil
}
