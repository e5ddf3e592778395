package cli

import (
	"context"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/kubev2v/threadsched/internal/config"
	"github.com/kubev2v/threadsched/internal/logger"
	"github.com/kubev2v/threadsched/pkg/disposable"
	"github.com/kubev2v/threadsched/pkg/scheduler"
)

type report struct {
	Thread       string
	Expected     int64
	Executed     int64
	OffThread    int64
	CancelledRan bool
	Elapsed      time.Duration
}

func (r report) ok() bool {
	return r.Executed == r.Expected && r.OffThread == 0 && !r.CancelledRan
}

func newRunCmd(v *viper.Viper, defaults *config.Configuration) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Submit actions from concurrent producers and verify they all ran on the worker thread",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfiguration(v)
			if err != nil {
				return err
			}

			undo, err := logger.Setup(cfg.LogFormat, cfg.LogLevel)
			if err != nil {
				return err
			}
			defer undo()

			zap.S().Named("cli").Infow("configuration loaded", "config", cfg.DebugMap())

			r, err := runWorkload(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			printReport(cmd.OutOrStdout(), r)

			if !r.ok() {
				return fmt.Errorf("workload check failed: executed %d of %d actions", r.Executed, r.Expected)
			}
			return nil
		},
	}

	fs := cmd.Flags()
	fs.String("thread-name", defaults.Scheduler.ThreadName, "Worker thread name")
	fs.String("panic-policy", defaults.Scheduler.PanicPolicy, "What to do when an action panics (recover, crash)")
	fs.Bool("detect-reentrancy", defaults.Scheduler.DetectReentrancy, "Fail blocking calls made from the worker thread")
	fs.Int("producers", defaults.Demo.Producers, "Number of goroutines submitting actions")
	fs.Int("actions", defaults.Demo.ActionsPerProducer, "Actions submitted by each producer")
	fs.Duration("timeout", defaults.Demo.Timeout, "Upper bound for collecting the result")
	cobra.CheckErr(bindFlags(v, fs, map[string]string{
		"thread-name":       "scheduler.thread-name",
		"panic-policy":      "scheduler.panic-policy",
		"detect-reentrancy": "scheduler.detect-reentrancy",
		"producers":         "demo.producers",
		"actions":           "demo.actions",
		"timeout":           "demo.timeout",
	}))

	return cmd
}

// runWorkload has every producer submit its actions through PerformAction,
// then reads the total back with a blocking call. The counter is only touched
// on the worker thread and needs no lock.
func runWorkload(ctx context.Context, cfg *config.Configuration) (report, error) {
	log := zap.S().Named("workload")

	s := scheduler.NewScheduler(cfg.Scheduler.ThreadName, cfg.SchedulerOptions(zap.S().Named("scheduler"))...)
	defer s.Close()

	var (
		executed  int64
		offThread atomic.Int64
		wg        sync.WaitGroup
	)

	start := time.Now()
	for p := range cfg.Demo.Producers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range cfg.Demo.ActionsPerProducer {
				s.PerformAction(func() {
					if !s.IsWorkerThread() {
						offThread.Add(1)
					}
					executed++
				})
			}
			log.Debugw("producer done", "producer", p)
		}()
	}
	wg.Wait()

	cancelledRan := scheduleCancelled(s)

	ctx, cancel := context.WithTimeout(ctx, cfg.Demo.Timeout)
	defer cancel()

	total, err := scheduler.PerformSyncContext(ctx, s, func() int64 { return executed })
	if err != nil {
		return report{}, fmt.Errorf("failed to collect result: %w", err)
	}

	r := report{
		Thread:       s.Name(),
		Expected:     int64(cfg.Demo.Producers * cfg.Demo.ActionsPerProducer),
		Executed:     total,
		OffThread:    offThread.Load(),
		CancelledRan: cancelledRan.Load(),
		Elapsed:      time.Since(start),
	}
	log.Infow("workload finished", "expected", r.Expected, "executed", r.Executed, "elapsed", r.Elapsed)

	return r, nil
}

// scheduleCancelled holds the worker, schedules a continuation, disposes it
// and releases the worker. The returned flag is set if the continuation ran anyway.
func scheduleCancelled(s *scheduler.Scheduler) *atomic.Bool {
	var ran atomic.Bool
	unblock := make(chan struct{})

	s.PerformAction(func() { <-unblock })
	d := s.Schedule(nil, func(any) disposable.Disposable {
		ran.Store(true)
		return disposable.Empty()
	})
	d.Dispose()
	close(unblock)

	return &ran
}

func printReport(w io.Writer, r report) {
	status := color.New(color.FgGreen, color.Bold).Sprint("OK")
	if !r.ok() {
		status = color.New(color.FgRed, color.Bold).Sprint("FAILED")
	}

	fmt.Fprintf(w, "%s thread=%s\n", status, r.Thread)
	fmt.Fprintf(w, "  executed:      %d/%d\n", r.Executed, r.Expected)
	fmt.Fprintf(w, "  off thread:    %d\n", r.OffThread)
	fmt.Fprintf(w, "  cancelled ran: %t\n", r.CancelledRan)
	fmt.Fprintf(w, "  elapsed:       %s\n", r.Elapsed.Round(time.Microsecond))
}
