package cmd

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/analogrelay/sumffi/internal/arith"
)

// benchCmd represents the bench command
var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Benchmark concurrent calls to the sum export",
	Long: `Calls the exported sum symbol from several goroutines at once for a fixed duration.
Each call goes through the C entry point. Diagnostic output is discarded while the
benchmark runs. Reports throughput and mean latency.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSumBenchmark(cmd)
	},
}

type BenchmarkResults struct {
	TotalOps     int           `json:"totalOps"`
	ElapsedTime  time.Duration `json:"elapsedTime"`
	OpsPerSecond float64       `json:"opsPerSecond"`
	LatencyNs    float64       `json:"latencyNs"`
}

func runSumBenchmark(cmd *cobra.Command) error {
	duration, err := cmd.Flags().GetDuration("duration")
	if err != nil {
		return fmt.Errorf("failed to get duration: %w", err)
	}

	workers, err := cmd.Flags().GetInt("workers")
	if err != nil {
		return fmt.Errorf("failed to get workers: %w", err)
	}
	if workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", workers)
	}

	fn, err := exportedSum()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Starting sum benchmark...\n")
	fmt.Fprintf(out, "Duration: %v\n", duration)
	fmt.Fprintf(out, "Workers: %d\n", workers)
	fmt.Fprintln(out)

	prev := arith.SetOutput(io.Discard)
	defer arith.SetOutput(prev)

	results, err := executeBenchmark(cmd.Context(), out, fn, workers, duration)
	if err != nil {
		return fmt.Errorf("benchmark failed: %w", err)
	}

	printResults(out, results)
	return nil
}

func executeBenchmark(ctx context.Context, out io.Writer, fn SumFunc, workers int, duration time.Duration) (*BenchmarkResults, error) {
	startTime := time.Now()
	endTime := startTime.Add(duration)

	logger.Debug("benchmark started",
		zap.Time("start", startTime),
		zap.Int("workers", workers))

	// Shared counters for all workers
	var totalOps int64
	var totalLatency int64

	benchCtx, cancel := context.WithTimeout(ctx, duration)
	defer cancel()

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			workerBenchmark(benchCtx, fn, &totalOps, &totalLatency, workerID)
		}(i)
	}

	progressTicker := time.NewTicker(5 * time.Second)
	defer progressTicker.Stop()

	progressDone := make(chan struct{})
	go func() {
		defer close(progressDone)
		for {
			select {
			case <-progressTicker.C:
				currentOps := atomic.LoadInt64(&totalOps)
				elapsed := time.Since(startTime)
				currentOpsPerSec := float64(currentOps) / elapsed.Seconds()
				remaining := time.Until(endTime)
				if remaining > 0 {
					fmt.Fprintf(out, "Progress: %d ops, %.1f ops/sec, %v remaining\n",
						currentOps, currentOpsPerSec, remaining.Round(time.Second))
				}
			case <-benchCtx.Done():
				return
			}
		}
	}()

	<-benchCtx.Done()
	wg.Wait()
	<-progressDone

	actualElapsed := time.Since(startTime)
	finalOps := atomic.LoadInt64(&totalOps)
	finalLatency := atomic.LoadInt64(&totalLatency)

	if finalOps == 0 {
		return nil, fmt.Errorf("no operations completed")
	}

	return &BenchmarkResults{
		TotalOps:     int(finalOps),
		ElapsedTime:  actualElapsed,
		OpsPerSecond: float64(finalOps) / actualElapsed.Seconds(),
		LatencyNs:    float64(finalLatency) / float64(finalOps),
	}, nil
}

func workerBenchmark(ctx context.Context, fn SumFunc, totalOps, totalLatency *int64, workerID int) {
	// Local random source per worker to avoid contention
	localRand := rand.New(rand.NewSource(time.Now().UnixNano() + int64(workerID)))

	for {
		select {
		case <-ctx.Done():
			return
		default:
			a, b := uint(localRand.Uint64()), uint(localRand.Uint64())

			opStart := time.Now()
			got := fn(a, b)
			opLatency := time.Since(opStart)

			if got != a+b {
				logger.Error("export returned wrong sum",
					zap.Int("worker", workerID),
					zap.Uint("a", a),
					zap.Uint("b", b),
					zap.Uint("got", got))
				continue
			}

			atomic.AddInt64(totalOps, 1)
			atomic.AddInt64(totalLatency, opLatency.Nanoseconds())
		}
	}
}

func printResults(out io.Writer, results *BenchmarkResults) {
	fmt.Fprintf(out, "\n=== Benchmark Results ===\n")
	fmt.Fprintf(out, "Total ops: %d\n", results.TotalOps)
	fmt.Fprintf(out, "Total elapsed time: %v\n", results.ElapsedTime.Round(time.Millisecond))
	fmt.Fprintf(out, "Ops/sec: %.2f\n", results.OpsPerSecond)
	fmt.Fprintf(out, "Latency (mean): %.2f ns\n", results.LatencyNs)
	fmt.Fprintf(out, "========================\n")

	fmt.Fprintf(out, "\n=== Markdown Table (Sum Benchmark) ===\n")
	fmt.Fprintf(out, "| Implementation | Total Ops | Duration (ms) | Ops/sec | Latency (ns) |\n")
	fmt.Fprintf(out, "|---------------|-----------|---------------|---------|--------------|\n")
	fmt.Fprintf(out, "| Go export | %d | %d | %.2f | %.2f |\n",
		results.TotalOps,
		results.ElapsedTime.Milliseconds(),
		results.OpsPerSecond,
		results.LatencyNs)
	fmt.Fprintf(out, "======================================\n")
}

func init() {
	rootCmd.AddCommand(benchCmd)

	benchCmd.Flags().DurationP("duration", "t", 10*time.Second, "Duration to run the benchmark")
	benchCmd.Flags().IntP("workers", "w", runtime.NumCPU(), "Number of concurrent workers")
}
