package smartctl

import (
	"context"
	"errors"
	"os/exec"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	name string
	args []string
}

// fakeRunner returns canned output and records every invocation.
type fakeRunner struct {
	out   string
	err   error
	calls []call
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) (string, error) {
	f.calls = append(f.calls, call{name: name, args: args})
	return f.out, f.err
}

func lookPathFrom(paths map[string]string) LookPathFunc {
	return func(name string) (string, error) {
		if p, ok := paths[name]; ok {
			return p, nil
		}
		return "", exec.ErrNotFound
	}
}

func TestLocate(t *testing.T) {
	lookPath := lookPathFrom(map[string]string{
		"smartctl":            "/usr/sbin/smartctl",
		"/opt/bin/smartctl-7": "/opt/bin/smartctl-7",
	})

	p, err := Locate("", lookPath)
	require.NoError(t, err)
	assert.Equal(t, "/usr/sbin/smartctl", p)

	p, err = Locate("/opt/bin/smartctl-7", lookPath)
	require.NoError(t, err)
	assert.Equal(t, "/opt/bin/smartctl-7", p)

	_, err = Locate("/missing/smartctl", lookPath)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocateNotOnPath(t *testing.T) {
	_, err := Locate("", lookPathFrom(nil))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestScan(t *testing.T) {
	r := &fakeRunner{out: "/dev/sda -d ata # /dev/sda, ATA device\n/dev/nvme0 -d nvme # /dev/nvme0, NVMe device\n"}
	c := NewClient("/usr/sbin/smartctl", r)

	devices, err := c.Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"/dev/sda", "/dev/nvme0"}, devices)
	require.Len(t, r.calls, 1)
	assert.Equal(t, call{name: "/usr/sbin/smartctl", args: []string{"--scan"}}, r.calls[0])
}

func TestScanFailure(t *testing.T) {
	r := &fakeRunner{err: errors.New("permission denied")}
	_, err := NewClient("smartctl", r).Scan(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "smartctl --scan failed")
}

func TestQueryStartFailure(t *testing.T) {
	r := &fakeRunner{out: "", err: errors.New("fork/exec: permission denied")}
	_, err := NewClient("smartctl", r).Query(context.Background(), "/dev/sda")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "smartctl -a /dev/sda")
}

func TestInspect(t *testing.T) {
	r := &fakeRunner{out: "Model Number: Disk\nSMART/Health Information\nTemperature: 40 Celsius\n"}
	c := NewClient("smartctl", r)

	res, err := c.Inspect(context.Background(), "/dev/nvme0", true)
	require.NoError(t, err)
	assert.Equal(t, "/dev/nvme0", res.Device)
	assert.Equal(t, "Disk", res.Identity.Model)
	assert.True(t, res.IncludeRaw)
	assert.Equal(t, r.out, res.Report)
	assert.Equal(t, []string{"temperature"}, res.Health.Keys())
	assert.Equal(t, []string{"-a", "/dev/nvme0"}, r.calls[0].args)
}

func requireShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("needs /bin/sh")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestExecRunnerCombinedOutput(t *testing.T) {
	requireShell(t)

	out, err := ExecRunner{}.Run(context.Background(), "sh", "-c", "echo out; echo err 1>&2")
	require.NoError(t, err)
	assert.Contains(t, out, "out\n")
	assert.Contains(t, out, "err\n")
}

func TestQueryIgnoresNonZeroExit(t *testing.T) {
	requireShell(t)

	// smartctl sets bits in its exit status for drive conditions.
	script := "echo 'Serial Number: ABC'; exit 4"
	c := NewClient("sh", ExecRunner{})

	out, err := c.runner.Run(context.Background(), c.path, "-c", script)
	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)

	c = NewClient("sh", scriptRunner{script: script})
	res, err := c.Inspect(context.Background(), "/dev/sda", false)
	require.NoError(t, err)
	assert.Equal(t, out, res.Report)
	assert.Equal(t, "ABC", res.Identity.Serial)
}

func TestExecRunnerTimeout(t *testing.T) {
	requireShell(t)

	_, err := ExecRunner{Timeout: 50 * time.Millisecond}.Run(context.Background(), "sh", "-c", "exec sleep 5")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

// scriptRunner ignores the smartctl arguments and runs a shell script instead.
type scriptRunner struct {
	script string
}

func (s scriptRunner) Run(ctx context.Context, name string, _ ...string) (string, error) {
	return ExecRunner{}.Run(ctx, name, "-c", s.script)
}
