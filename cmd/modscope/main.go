// Command modscope is an analog modulation scope.
//
// Usage:
//
//	modscope serve [flags]
//	modscope render --out FILE [flags]
//
// serve opens the scope window as a local web page. render computes one
// parameter set and writes the ten plots as a PNG.
//
// Examples:
//
//	modscope serve --addr 127.0.0.1:9000
//	modscope render --out am.png --scheme AM --fc 20 --mu 0.8
//	modscope render --config scope.yaml --out - > plot.png
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/cwbudde/algo-modscope/internal/config"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return 1
	}

	var err error
	switch args[0] {
	case "serve":
		err = serveCommand(args[1:], stderr)
	case "render":
		err = renderCommand(args[1:], stdout, stderr)
	case "help", "-h", "--help":
		usage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "error: unknown command %q\n\n", args[0])
		usage(stderr)
		return 1
	}

	switch {
	case err == nil, errors.Is(err, pflag.ErrHelp):
		return 0
	default:
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
}

func usage(w io.Writer) {
	fmt.Fprintf(w, "Usage: modscope <command> [flags]\n\n")
	fmt.Fprintf(w, "Commands:\n")
	fmt.Fprintf(w, "  serve   open the scope window as a local web page\n")
	fmt.Fprintf(w, "  render  write the plots for one parameter set as PNG\n\n")
	fmt.Fprintf(w, "Run 'modscope <command> --help' for the flags of a command.\n")
}

// commonFlags registers the flags shared by every command.
type commonFlags struct {
	configPath string
	logLevel   string
}

func (c *commonFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&c.configPath, "config", "c", "", "YAML configuration file")
	fs.StringVar(&c.logLevel, "log-level", "", "log level (debug, info, warn, error); overrides the config file")
}

// load reads the config file and applies the flag overrides.
func (c *commonFlags) load(fs *pflag.FlagSet) (config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if fs.Changed("log-level") {
		cfg.LogLevel = c.logLevel
		if err := cfg.Validate(); err != nil {
			return config.Config{}, err
		}
	}
	return cfg, nil
}

func newLogger(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	return log.NewWithOptions(w, log.Options{
		Prefix:          "modscope",
		ReportTimestamp: true,
		Level:           lvl,
	}), nil
}
