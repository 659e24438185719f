// Command halinfo is a diagnostic and micro-benchmark CLI over the
// NeuronOS HAL's public surface. It is an external consumer, not part of
// the HAL core: no CLI or env-var surface lives inside the hal package
// itself, but nothing stops a sibling command from driving it.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/neuronos/neuronhal/hal"
	"github.com/neuronos/neuronhal/hal/gpudevice"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "halinfo",
		Short: "Inspect and benchmark the NeuronOS hardware abstraction layer",
	}
	root.AddCommand(infoCmd(), benchCmd())
	return root
}

func infoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "print detected capabilities, registered backends, and device tier",
		RunE: func(cmd *cobra.Command, args []string) error {
			if st := hal.Init(); st != hal.OK {
				return fmt.Errorf("hal init: %s", st)
			}
			defer hal.Shutdown()

			// NEURONHAL_FORCE_BACKEND is a test-only escape hatch read
			// here, not inside the hal package, so the HAL core itself
			// stays free of environment variables.
			if forced := os.Getenv("NEURONHAL_FORCE_BACKEND"); forced != "" {
				bt, ok := parseBackendType(forced)
				if !ok {
					logrus.Warnf("unrecognized NEURONHAL_FORCE_BACKEND=%q, ignoring", forced)
				} else if st := hal.SelectBackend(bt); st != hal.OK {
					logrus.Warnf("could not force backend %q: %s", forced, st)
				}
			}

			fmt.Print(hal.PrintInfo())
			if dev, ok := gpudevice.Probe(); ok {
				fmt.Printf("gpu: %s (%s, %d MiB)\n", dev.Name, dev.Type, dev.TotalMemoryBytes>>20)
			} else {
				fmt.Println("gpu: not available")
			}
			return nil
		},
	}
}

func parseBackendType(s string) (hal.BackendType, bool) {
	switch s {
	case "scalar":
		return hal.BackendScalar, true
	case "avx2":
		return hal.BackendAVX2, true
	case "avx_vnni", "avxvnni":
		return hal.BackendAVXVNNI, true
	case "neon":
		return hal.BackendNEON, true
	case "gpu":
		return hal.BackendGPU, true
	default:
		return 0, false
	}
}

func benchCmd() *cobra.Command {
	var n, nrc, iters int
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "micro-benchmark vec_dot on the selected backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			if st := hal.Init(); st != hal.OK {
				return fmt.Errorf("hal init: %s", st)
			}
			defer hal.Shutdown()

			cfg, st := hal.GetKernelConfig()
			if st != hal.OK {
				return fmt.Errorf("no active backend")
			}
			if n%cfg.QK != 0 {
				n = (n/cfg.QK + 1) * cfg.QK
				logrus.Warnf("rounding n up to %d to satisfy qk=%d", n, cfg.QK)
			}

			rowBytes := hal.PackedRowBytes(n)
			weights := make([]byte, rowBytes*nrc)
			acts := make([]int8, n*nrc)
			out := make([]float32, nrc)

			start := time.Now()
			for i := 0; i < iters; i++ {
				hal.VecDot(n, out, 1, weights, rowBytes, acts, n, nrc)
			}
			elapsed := time.Since(start)
			fmt.Printf("vec_dot n=%d nrc=%d backend=%s: %v/iter\n", n, nrc, activeBackendName(), elapsed/time.Duration(iters))
			return nil
		},
	}
	cmd.Flags().IntVar(&n, "n", 2048, "vector length, rounded up to qk")
	cmd.Flags().IntVar(&nrc, "nrc", 8, "dot products computed per call")
	cmd.Flags().IntVar(&iters, "iters", 1000, "number of calls to time")
	return cmd
}

func activeBackendName() string {
	b, st := hal.GetActiveBackend()
	if st != hal.OK {
		return "none"
	}
	return b.Name
}
