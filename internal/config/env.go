package config

import (
	"flag"
	"fmt"
	"runtime"

	"github.com/caarlos0/env/v11"
)

// Options are the process-level settings; flags override the environment.
type Options struct {
	Input     string
	Threads   int
	Verbose   bool
	OutputDir string
	Seed      int64
}

type envOptions struct {
	Input     string `env:"ARGONMC_INPUT" envDefault:"argon"`
	Threads   int    `env:"ARGONMC_THREADS"`
	Verbose   bool   `env:"ARGONMC_VERBOSE"`
	OutputDir string `env:"ARGONMC_OUTPUT_DIR"`
	Seed      int64  `env:"ARGONMC_SEED"`
}

// ParseOptions reads the environment, then parses args into fs. Flags
// registered on fs before the call (output selection) are parsed too.
func ParseOptions(fs *flag.FlagSet, args []string) (Options, error) {
	var envOpts envOptions
	if err := env.Parse(&envOpts); err != nil {
		return Options{}, fmt.Errorf("parse env: %w", err)
	}
	opts := Options(envOpts)

	fs.StringVar(&opts.Input, "input", opts.Input, "run configuration in toml format (default: ARGONMC_INPUT or argon)")
	fs.IntVar(&opts.Threads, "threads", opts.Threads, "worker goroutines (0 = number of CPUs)")
	fs.BoolVar(&opts.Verbose, "v", opts.Verbose, "verbose logging")
	fs.StringVar(&opts.OutputDir, "o", opts.OutputDir, "output directory, overrides OutputDir of the run file")
	fs.Int64Var(&opts.Seed, "seed", opts.Seed, "random seed for every run (0 = per-run Seed)")
	if err := fs.Parse(args); err != nil {
		return Options{}, err
	}
	if opts.Threads < 0 {
		return Options{}, &ParameterValidationError{Field: "threads", Value: opts.Threads, Reason: "must be non-negative"}
	}
	if opts.Threads == 0 {
		opts.Threads = runtime.NumCPU()
	}
	return opts, nil
}
