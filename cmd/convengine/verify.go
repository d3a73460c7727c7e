package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/born-ml/convengine/internal/backend/cpu"
	"github.com/born-ml/convengine/internal/config"
	"github.com/born-ml/convengine/internal/tensor"
)

// errMismatch is returned when any operator disagrees with the reference.
var errMismatch = errors.New("accelerator disagrees with reference")

// verify runs every operator once on both paths and compares the results
// within the configured tolerance.
func verify(cfg config.Config, logger *slog.Logger, stdout io.Writer) error {
	accel, release, err := openAccelerator(cfg, logger)
	if err != nil {
		return err
	}
	defer release()
	ref := cpu.New()
	tol := cfg.TensorTolerance()

	w := newWorkload(cfg)
	fmt.Fprintf(stdout, "Verifying %s against %s (abs=%g, rel=%g)\n", accel.Name(), ref.Name(), tol.Abs, tol.Rel)

	failed := 0
	for _, o := range ops {
		want, err := o.run(ref, w)
		if err != nil {
			return fmt.Errorf("%s on %s: %w", o.name, ref.Name(), err)
		}
		got, err := o.run(accel, w)
		if err != nil {
			return fmt.Errorf("%s on %s: %w", o.name, accel.Name(), err)
		}

		ok, relErr := compare(got, want, tol)
		status := "PASS"
		if !ok {
			status = "FAIL"
			failed++
		}
		fmt.Fprintf(stdout, "  %-10s %s  max rel error %.3g\n", o.name, status, relErr)
		logger.Debug("verified", "op", o.name, "ok", ok, "max_rel_error", relErr)
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d operators", errMismatch, failed, len(ops))
	}
	fmt.Fprintln(stdout, "All operators agree.")
	return nil
}

func compare(got, want result, tol tensor.Tolerance) (bool, float64) {
	if want.tensor != nil {
		return tensor.AllClose(got.tensor, want.tensor, tol), tensor.MaxRelError(got.tensor, want.tensor)
	}
	rel := math.Abs(got.scalar-want.scalar) / math.Max(math.Abs(want.scalar), 1)
	return tol.Close(got.scalar, want.scalar), rel
}
