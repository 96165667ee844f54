// Command clinfo lists the OpenCL platforms and devices on this machine.
//
// Usage:
//
//	clinfo [--config file] [--library path] [--type gpu,cpu] [--no-color] [--verbose]
//	clinfo probe [--size bytes] [--queue profiling]
//
// probe creates a context, a buffer and a command queue on every platform
// to check that the runtime works end to end.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/gogpu/cl"
	"github.com/gogpu/cl/ll"
	"github.com/gogpu/cl/native/opencl"
)

var (
	configFlag = &cli.StringFlag{
		Name:    "config",
		Usage:   "TOML configuration file",
		EnvVars: []string{"CLINFO_CONFIG"},
	}
	libraryFlag = &cli.StringFlag{
		Name:  "library",
		Usage: "path of the OpenCL library (default: search, or $" + opencl.EnvLibrary + ")",
	}
	typeFlag = &cli.StringFlag{
		Name:  "type",
		Usage: "device types to list: default, cpu, gpu, accelerator, custom, all",
	}
	noColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "disable colored output",
	}
	verboseFlag = &cli.BoolFlag{
		Name:    "verbose",
		Aliases: []string{"v"},
		Usage:   "log native calls to stderr",
	}
	sizeFlag = &cli.IntFlag{
		Name:  "size",
		Usage: "probe buffer size in bytes",
	}
	queueFlag = &cli.StringFlag{
		Name:  "queue",
		Usage: "probe queue properties: none, profiling, out-of-order",
	}
)

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "clinfo:", err)
		os.Exit(1)
	}
}

// state carries the resolved configuration from Before to the actions.
type state struct {
	cfg    config
	filter ll.DeviceType
	stdout io.Writer
	stderr io.Writer
}

func newApp(stdout, stderr io.Writer) *cli.App {
	st := &state{stdout: stdout, stderr: stderr}

	return &cli.App{
		Name:      "clinfo",
		Usage:     "list OpenCL platforms and devices",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags:     []cli.Flag{configFlag, libraryFlag, typeFlag, noColorFlag, verboseFlag},
		Before:    st.setup,
		Action:    st.list,
		// main reports errors and picks the exit status.
		ExitErrHandler: func(*cli.Context, error) {},
		Commands: []*cli.Command{
			{
				Name:   "probe",
				Usage:  "create a context, buffer and queue on every platform",
				Flags:  []cli.Flag{sizeFlag, queueFlag},
				Action: st.probe,
			},
		},
	}
}

// setup merges config file and flags, then selects the runtime.
func (st *state) setup(c *cli.Context) error {
	cfg, err := loadConfig(c.String(configFlag.Name))
	if err != nil {
		return err
	}
	if c.IsSet(libraryFlag.Name) {
		cfg.Library = c.String(libraryFlag.Name)
	}
	if c.IsSet(typeFlag.Name) {
		cfg.Type = c.String(typeFlag.Name)
	}
	if c.IsSet(verboseFlag.Name) {
		cfg.Verbose = c.Bool(verboseFlag.Name)
	}
	if c.Bool(noColorFlag.Name) {
		off := false
		cfg.Color = &off
	}
	if cfg.Color != nil {
		color.NoColor = !*cfg.Color
	}

	st.filter, err = parseDeviceType(cfg.Type)
	if err != nil {
		return err
	}
	st.cfg = cfg

	if cfg.Verbose {
		cl.SetLogger(slog.New(slog.NewTextHandler(st.stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	if cfg.Library != "" {
		api, err := opencl.Open(opencl.WithLibraryPath(cfg.Library), opencl.WithLogger(cl.Logger()))
		if err != nil {
			return err
		}
		cl.SetRuntime(ll.NewRuntime(api))
	}
	_, err = cl.Runtime()
	return err
}

// recoverDiscovery turns a discovery panic from the facade into an error.
func recoverDiscovery(err *error) {
	r := recover()
	if r == nil {
		return
	}
	var clErr *cl.Error
	if e, ok := r.(error); ok && errors.As(e, &clErr) {
		*err = clErr
		return
	}
	panic(r)
}
