package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-scorer/internal/config"
	"github.com/jonathan/resume-scorer/internal/queue"
	"github.com/jonathan/resume-scorer/internal/source"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Consume score requests from a RabbitMQ queue",
	Long: `Consume score requests from a durable RabbitMQ queue and publish each result to the
message's reply-to queue.

Résumés may be sent inline or as s3://bucket/key references when S3 is configured.`,
	RunE: runWorker,
}

var (
	workerQueue       string
	workerResultQueue string
	workerConcurrency int
	workerFilesRoot   string
)

func init() {
	workerCmd.Flags().StringVarP(&workerQueue, "queue", "q", "", "Request queue (default from config)")
	workerCmd.Flags().StringVar(&workerResultQueue, "result-queue", "", "Queue for results of messages without reply-to")
	workerCmd.Flags().IntVarP(&workerConcurrency, "concurrency", "c", 0, "Messages processed at once (default from config)")
	workerCmd.Flags().StringVar(&workerFilesRoot, "files-root", "", "Allow local file references inside this directory")

	rootCmd.AddCommand(workerCmd)
}

func runWorker(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.AMQPURL == "" {
		return fmt.Errorf("AMQP_URL is required")
	}
	if workerQueue != "" {
		cfg.Queue = workerQueue
	}
	if workerConcurrency > 0 {
		cfg.Workers = workerConcurrency
	}

	eng, err := newEngine(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fetcher, err := workerFetcher(ctx, cfg)
	if err != nil {
		return err
	}

	conn, ch, err := queue.Dial(cfg.AMQPURL)
	if err != nil {
		return err
	}
	defer conn.Close()

	w := queue.NewWorker(ch, eng, fetcher, queue.Options{
		Queue:       cfg.Queue,
		ResultQueue: workerResultQueue,
		Concurrency: cfg.Workers,
	})
	log.Printf("[worker] consuming %s with concurrency %d", cfg.Queue, cfg.Workers)

	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Println("[worker] stopped")
	return nil
}

// workerFetcher enables S3 references when configured and file references only inside
// --files-root. It returns nil when neither is enabled.
func workerFetcher(ctx context.Context, cfg config.Config) (queue.TextFetcher, error) {
	router, err := newSourceRouter(ctx, cfg)
	if err != nil {
		return nil, err
	}

	router.File = nil
	if workerFilesRoot != "" {
		router.File = &source.FileFetcher{Root: workerFilesRoot, MaxBytes: int64(cfg.MaxInputBytes)}
	}
	if router.S3 == nil && router.File == nil {
		return nil, nil
	}
	return router, nil
}
