// Package main provides the convengine CLI: benchmarks and agreement checks
// of the accelerator path against the reference backend.
//
// Usage:
//
//	convengine version
//	convengine bench  [-config run.yaml] [-backend auto|host|webgpu] [-iterations 20] ...
//	convengine verify [-config run.yaml] [-backend auto|host|webgpu] ...
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/born-ml/convengine/internal/config"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "convengine: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	if len(args) == 0 {
		usage(stdout)
		return nil
	}

	switch args[0] {
	case "version":
		fmt.Fprintf(stdout, "convengine v%s\n", config.Version)
		return nil
	case "bench":
		cfg, logger, err := parseFlags("bench", args[1:])
		if err != nil {
			return err
		}
		return bench(cfg, logger, stdout)
	case "verify":
		cfg, logger, err := parseFlags("verify", args[1:])
		if err != nil {
			return err
		}
		return verify(cfg, logger, stdout)
	case "help", "-h", "-help", "--help":
		usage(stdout)
		return nil
	default:
		usage(stdout)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func usage(w io.Writer) {
	fmt.Fprintf(w, "convengine v%s - dual-path 2D compute engine\n\n", config.Version)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  version    Show version")
	fmt.Fprintln(w, "  bench      Time every operator on the reference and accelerator paths")
	fmt.Fprintln(w, "  verify     Check that both paths agree within tolerance")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'convengine <command> -h' for flags.")
}

// parseFlags loads the optional config file, then applies every flag the
// user set explicitly on top of it.
func parseFlags(name string, args []string) (config.Config, *slog.Logger, error) {
	def := config.Default()

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	configPath := fs.String("config", "", "YAML config file")
	backend := fs.String("backend", def.Backend, "Accelerator: auto, host or webgpu (cpu compares the reference with itself)")
	logLevel := fs.String("log", def.LogLevel, "Log level: debug, info, warn, error")
	seed := fs.Int64("seed", def.Seed, "Random seed for generated tensors")
	iterations := fs.Int("iterations", def.Iterations, "Timed iterations per operator")
	width := fs.Int("width", def.Workload.InputWidth, "Input width")
	height := fs.Int("height", def.Workload.InputHeight, "Input height")
	window := fs.Int("window", def.Workload.WindowWidth, "Kernel/pool window size (square)")
	stride := fs.Int("stride", def.Workload.StrideX, "Stride on both axes")
	padding := fs.Int("padding", def.Workload.PaddingX, "Padding on both axes")
	reduceLen := fs.Int("reduce", def.Workload.ReduceLength, "Element count for reduce-sum")
	groupWidth := fs.Int("group-width", def.Engine.GroupWidth, "Reduce group width")
	workers := fs.Int("workers", def.Host.Workers, "Host executor workers (0 = one per CPU)")
	if err := fs.Parse(args); err != nil {
		return config.Config{}, nil, err
	}

	cfg := def
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return config.Config{}, nil, err
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "backend":
			cfg.Backend = *backend
		case "log":
			cfg.LogLevel = *logLevel
		case "seed":
			cfg.Seed = *seed
		case "iterations":
			cfg.Iterations = *iterations
		case "width":
			cfg.Workload.InputWidth = *width
		case "height":
			cfg.Workload.InputHeight = *height
		case "window":
			cfg.Workload.WindowWidth, cfg.Workload.WindowHeight = *window, *window
		case "stride":
			cfg.Workload.StrideX, cfg.Workload.StrideY = *stride, *stride
		case "padding":
			cfg.Workload.PaddingX, cfg.Workload.PaddingY = *padding, *padding
		case "reduce":
			cfg.Workload.ReduceLength = *reduceLen
		case "group-width":
			cfg.Engine.GroupWidth = *groupWidth
		case "workers":
			cfg.Host.Workers = *workers
		}
	})
	if err := cfg.Validate(); err != nil {
		return config.Config{}, nil, err
	}

	level, err := cfg.Level()
	if err != nil {
		return config.Config{}, nil, err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	return cfg, logger, nil
}
