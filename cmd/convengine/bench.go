package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/born-ml/convengine/internal/backend/cpu"
	"github.com/born-ml/convengine/internal/config"
	"github.com/born-ml/convengine/internal/tensor"
)

// bench times every operator on the reference backend and the accelerator.
func bench(cfg config.Config, logger *slog.Logger, stdout io.Writer) error {
	accel, release, err := openAccelerator(cfg, logger)
	if err != nil {
		return err
	}
	defer release()
	ref := cpu.New()

	w := newWorkload(cfg)
	fmt.Fprintf(stdout, "convengine benchmark: %s vs %s\n", ref.Name(), accel.Name())
	fmt.Fprintln(stdout, strings.Repeat("=", 70))
	fmt.Fprintf(stdout, "  Input: %dx%d, window: %dx%d, stride: (%d, %d), padding: (%d, %d)\n",
		w.input.Width, w.input.Height, w.kernel.Width, w.kernel.Height,
		w.params.StrideX, w.params.StrideY, w.params.PaddingX, w.params.PaddingY)
	fmt.Fprintf(stdout, "  Reduce: %d elements, group width %d\n", w.flat.Width, w.group)
	fmt.Fprintf(stdout, "  Iterations: %d\n\n", cfg.Iterations)

	for _, o := range ops {
		refTimes, err := timeOp(o, ref, w, cfg.Iterations)
		if err != nil {
			return fmt.Errorf("%s on %s: %w", o.name, ref.Name(), err)
		}
		accelTimes, err := timeOp(o, accel, w, cfg.Iterations)
		if err != nil {
			return fmt.Errorf("%s on %s: %w", o.name, accel.Name(), err)
		}

		refAvg, accelAvg := avgDuration(refTimes), avgDuration(accelTimes)
		fmt.Fprintf(stdout, "%-10s ref:   avg=%.2fms, min=%.2fms, max=%.2fms\n",
			o.name, ms(refAvg), ms(minDuration(refTimes)), ms(maxDuration(refTimes)))
		fmt.Fprintf(stdout, "%-10s accel: avg=%.2fms, min=%.2fms, max=%.2fms  speedup=%.2fx\n",
			"", ms(accelAvg), ms(minDuration(accelTimes)), ms(maxDuration(accelTimes)),
			float64(refAvg)/float64(max(accelAvg, 1)))
	}
	return nil
}

// timeOp runs o once untimed, then n timed iterations.
func timeOp(o op, b tensor.Backend, w *workload, n int) ([]time.Duration, error) {
	if _, err := o.run(b, w); err != nil {
		return nil, err
	}
	times := make([]time.Duration, n)
	for i := range times {
		start := time.Now()
		if _, err := o.run(b, w); err != nil {
			return nil, err
		}
		times[i] = time.Since(start)
	}
	return times, nil
}
