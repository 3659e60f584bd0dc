package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"smartinfo/internal/config"
	"smartinfo/internal/logger"
	"smartinfo/internal/report"
	"smartinfo/internal/smartctl"
)

// Exit codes.
const (
	exitOK         = 0
	exitFailure    = 1
	exitUsage      = 2
	exitNotFound   = 2
	exitScanFailed = 3
)

// exitError carries the process exit code for a failed invocation.
type exitError struct {
	Code    int
	Message string
	Err     error
}

func (e *exitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *exitError) Unwrap() error {
	return e.Err
}

// app holds the collaborators a run needs, so tests can swap them out.
type app struct {
	lookPath  smartctl.LookPathFunc // nil means exec.LookPath
	newRunner func(timeout time.Duration) smartctl.Runner
	stdout    io.Writer
	stderr    io.Writer
	terminal  *os.File // checked for colour support
}

type options struct {
	list       bool
	device     string
	json       bool
	includeRaw bool
	noColor    bool
	configFile string
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "\n[FATAL] smartinfo crashed unexpectedly: %v\n", r)
			os.Exit(exitFailure)
		}
	}()

	a := &app{
		newRunner: func(timeout time.Duration) smartctl.Runner {
			return smartctl.ExecRunner{Timeout: timeout}
		},
		stdout:   os.Stdout,
		stderr:   os.Stderr,
		terminal: os.Stdout,
	}
	os.Exit(a.execute(context.Background(), os.Args[1:]))
}

// execute runs the command line and returns the exit code.
func (a *app) execute(ctx context.Context, args []string) int {
	cmd := a.newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return exitOK
	}

	var ee *exitError
	if errors.As(err, &ee) {
		logger.Errorf("exit %d: %v", ee.Code, ee)
		pterm.Error.WithWriter(a.stderr).Println(ee.Error())
		return ee.Code
	}
	// cobra reports flag and argument problems as plain errors.
	pterm.Error.WithWriter(a.stderr).Println(err.Error())
	return exitUsage
}

func (a *app) newRootCmd() *cobra.Command {
	var opts options
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "smartinfo",
		Short: "View SMART information via smartctl",
		Long: `smartinfo runs smartctl from smartmontools, parses its report and prints
the device identity, overall health and health attributes as text or JSON.

Examples:
  smartinfo --list
  smartinfo --list --json
  smartinfo --device /dev/sda
  smartinfo --device /dev/nvme0n1 --json --include-raw`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd.Context(), v, opts)
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&opts.list, "list", false, "List detected devices")
	flags.StringVar(&opts.device, "device", "", "Device path, e.g. /dev/sda or /dev/nvme0n1")
	flags.BoolVar(&opts.json, "json", false, "Output JSON")
	flags.BoolVar(&opts.includeRaw, "include-raw", false, "Include raw smartctl output in JSON")
	flags.BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	flags.String("smartctl", "", "Path to the smartctl binary (default: search PATH)")
	flags.Duration("timeout", 0, "Kill smartctl after this long (0 waits forever)")
	flags.StringVar(&opts.configFile, "config", "", "Config file (default: ./configs/config.yaml)")
	flags.String("log-level", "", "Log level (debug, info, warn, error, fatal)")

	bindFlag(v, "smartctl.path", flags.Lookup("smartctl"))
	bindFlag(v, "smartctl.timeout", flags.Lookup("timeout"))
	bindFlag(v, "log.level", flags.Lookup("log-level"))

	cmd.AddCommand(newVersionCmd())
	return cmd
}

func (a *app) run(ctx context.Context, v *viper.Viper, opts options) error {
	cfg, err := config.Load(v, opts.configFile)
	if err != nil {
		return &exitError{Code: exitFailure, Message: "failed to load configuration", Err: err}
	}
	if _, err := logger.InitLogger(&cfg.Log); err != nil {
		return &exitError{Code: exitFailure, Message: "failed to init logger", Err: err}
	}

	color := !opts.noColor && report.ColorEnabled(cfg.Output.Color, a.terminal)
	if !color {
		pterm.DisableColor()
	}

	path, err := smartctl.Locate(cfg.Smartctl.Path, a.lookPath)
	if err != nil {
		return &exitError{Code: exitNotFound, Message: "smartctl not found. Please install smartmontools."}
	}
	client := smartctl.NewClient(path, a.newRunner(cfg.Smartctl.Timeout))
	logger.WithField("path", client.Path()).Debug("using smartctl")
	out := report.New(a.stdout, color)

	if opts.list {
		devices, err := client.Scan(ctx)
		if err != nil {
			return &exitError{Code: exitScanFailed, Message: "Failed to list devices", Err: err}
		}
		if len(devices) == 0 {
			logger.Warnf("smartctl --scan reported no devices")
		}
		if opts.json {
			return out.DevicesJSON(devices)
		}
		return out.Devices(devices)
	}

	if opts.device == "" {
		return &exitError{Code: exitUsage, Message: "Please specify --device or --list"}
	}

	logger.Infof("querying %s", opts.device)
	res, err := client.Inspect(ctx, opts.device, opts.includeRaw)
	if err != nil {
		return &exitError{Code: exitFailure, Message: "Failed to query device", Err: err}
	}
	logger.WithField("device", opts.device).Debugf("parsed %d health attributes", res.Health.Len())

	if opts.json {
		return out.JSON(res)
	}
	return out.Text(res)
}

// bindFlag binds a flag to a viper key. Only flags the user actually set
// override the config file, because viper ignores unchanged bound flags.
func bindFlag(v *viper.Viper, key string, flag *pflag.Flag) {
	if err := v.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("bind flag %s: %v", key, err))
	}
}
