package cmd

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/volleyclip/clipper/internal/queue"
	"github.com/volleyclip/clipper/internal/worker"
)

// workerCmd runs a queue-fed processing worker
var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Run a processing worker consuming the task queues",
	Long: `Consume indexing and clip-job tasks from RabbitMQ and execute them
on the local worker pool. Requires queue.enabled in the configuration.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		if !a.cfg.Queue.Enabled {
			return errors.New("queue.enabled must be set to run a worker")
		}

		pool := worker.NewPool(a.indexing, a.clipping, a.cfg.Worker, a.logger)
		pool.Start(ctx)
		defer pool.Close()

		consumer, err := queue.NewConsumer(a.cfg.Queue.URL, pool, a.logger)
		if err != nil {
			return err
		}
		defer consumer.Close()

		a.logger.Info("worker consuming task queues", "queues", []string{queue.IndexQueue, queue.JobQueue})
		if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)
}
