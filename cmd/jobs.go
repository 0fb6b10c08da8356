package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vibast-solutions/ms-go-atobarai/app/service"
	"github.com/vibast-solutions/ms-go-atobarai/config"
)

var (
	workerMode bool
)

var voidHeldCmd = &cobra.Command{
	Use:   "void-held",
	Short: "Retry the void of held NP Atobarai authorizations whose automatic cancel failed",
	Run: func(_ *cobra.Command, _ []string) {
		runCommand(
			"void_held",
			func(cfg *config.Config) time.Duration { return cfg.Jobs.VoidHeldInterval },
			func(s *service.TransactionService, ctx context.Context) error {
				return s.RunVoidHeldBatch(ctx)
			},
		)
	},
}

func init() {
	rootCmd.AddCommand(voidHeldCmd)

	voidHeldCmd.Flags().BoolVar(&workerMode, "worker", false, "Run continuously using configured interval")
}

func runCommand(
	name string,
	intervalResolver func(cfg *config.Config) time.Duration,
	fn func(s *service.TransactionService, ctx context.Context) error,
) {
	cfg, transactionService, cleanup := mustCreateTransactionService()
	defer cleanup()

	if workerMode {
		runWorker(name, intervalResolver(cfg), transactionService, fn)
		return
	}

	ctx := context.Background()
	runJob(name, func() error { return fn(transactionService, ctx) })
}

func runWorker(
	name string,
	interval time.Duration,
	transactionService *service.TransactionService,
	fn func(s *service.TransactionService, ctx context.Context) error,
) {
	if interval <= 0 {
		logrus.WithField("job", name).Fatal("invalid worker interval")
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runJob(name, func() error { return fn(transactionService, ctx) })

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	for {
		select {
		case <-quit:
			logrus.WithField("job", name).Info("Worker shutdown requested")
			return
		case <-ticker.C:
			runJob(name, func() error { return fn(transactionService, ctx) })
		}
	}
}

func runJob(name string, fn func() error) {
	entry := logrus.WithFields(logrus.Fields{
		"job":    name,
		"run_id": uuid.NewString(),
	})

	start := time.Now()
	err := fn()
	latency := time.Since(start)
	if err != nil {
		entry.WithError(err).WithField("latency", latency.String()).Error("job_failed")
		return
	}
	entry.WithField("latency", latency.String()).Info("job_completed")
}
