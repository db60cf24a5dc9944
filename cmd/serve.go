package cmd

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/volleyclip/clipper/internal/api"
	"github.com/volleyclip/clipper/internal/queue"
	"github.com/volleyclip/clipper/internal/worker"
)

// serveCmd runs the webhook HTTP server
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the webhook HTTP server",
	Long: `Run the webhook HTTP server. Tasks run on an in-process worker pool
by default; with queue.enabled they are published to RabbitMQ instead,
for consumption by a separate "clipper worker" process.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		var dispatcher worker.Dispatcher
		var cleanup func()

		if a.cfg.Queue.Enabled {
			publisher, err := queue.NewPublisher(a.cfg.Queue.URL, a.logger)
			if err != nil {
				return err
			}
			dispatcher = publisher
			cleanup = func() { publisher.Close() }
		} else {
			pool := worker.NewPool(a.indexing, a.clipping, a.cfg.Worker, a.logger)
			pool.Start(ctx)
			dispatcher = pool
			cleanup = pool.Close
		}
		defer cleanup()

		server := api.NewServer(api.ServerConfig{
			Addr:       a.cfg.Server.Addr,
			Dispatcher: dispatcher,
			Jobs:       a.jobs,
			Clips:      a.clips,
			Logger:     a.logger,
			StartTime:  time.Now(),
		})

		errCh := make(chan error, 1)
		go func() { errCh <- server.Start() }()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
