package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/grapevine-ai/grapevine/internal/queue"
	"github.com/grapevine-ai/grapevine/internal/util"
	"github.com/grapevine-ai/grapevine/pkg/loader"
	loadercsv "github.com/grapevine-ai/grapevine/pkg/loader/csv"
	loaderio "github.com/grapevine-ai/grapevine/pkg/loader/io"
	loaders3 "github.com/grapevine-ai/grapevine/pkg/loader/s3"
	"github.com/grapevine-ai/grapevine/pkg/logger"
	"github.com/grapevine-ai/grapevine/pkg/logger/console"
)

// ingest reads a review dataset CSV from disk or S3 and queues every review
// for the worker.
func main() {
	util.LoadEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		path   = flag.String("file", "", "path or object key of the review CSV")
		source = flag.String("source", "local", "where to read the file from: local or s3")
	)
	flag.Parse()

	debug := util.GetEnvBool("DEBUG", false)
	logger.Init(console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug:  debug,
		Prefix: "ingest",
	}))

	if *path == "" {
		logger.Fatal("Missing -file argument")
	}

	var fl loader.ReviewFileLoader
	switch *source {
	case "s3":
		s3Loader, err := loaders3.NewS3ReviewFileLoader(ctx, loaders3.NewS3ReviewFileLoaderParams{
			Bucket:    util.GetEnvString("AWS_BUCKET", "grapevine"),
			Endpoint:  util.GetEnv("AWS_ENDPOINT"),
			Region:    util.GetEnvString("AWS_REGION", "us-east-1"),
			AccessKey: util.GetEnv("AWS_ACCESS_KEY_ID"),
			SecretKey: util.GetEnv("AWS_SECRET_ACCESS_KEY"),
		})
		if err != nil {
			logger.Fatal("Failed to create S3 loader", "err", err)
		}
		fl = s3Loader
	case "local":
		fl = loaderio.NewIOReviewFileLoader()
	default:
		logger.Fatal("Unknown source", "source", *source)
	}

	reviews, err := loadercsv.LoadReviews(ctx, fl, *path)
	if err != nil {
		logger.Fatal("Failed to load reviews", "file", *path, "err", err)
	}
	logger.Info("Loaded reviews", "file", *path, "reviews", len(reviews))

	conn := queue.Init()
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Fatal("Failed to open channel", "err", err)
	}
	defer ch.Close()

	if err := queue.SetupQueues(ch, []string{queue.ReviewQueue, queue.ProjectionQueue}); err != nil {
		logger.Fatal("Failed to set up queues", "err", err)
	}

	published := 0
	for _, review := range reviews {
		if ctx.Err() != nil {
			logger.Warn("Interrupted, stopping early", "published", published)
			return
		}

		body, err := json.Marshal(queue.QueueReviewMsg{Review: review})
		if err != nil {
			logger.Error("Failed to encode review", "user_id", review.UserID, "err", err)
			continue
		}
		if err := queue.PublishFIFO(ch, queue.ReviewQueue, body); err != nil {
			logger.Fatal("Failed to publish review", "user_id", review.UserID, "err", err)
		}
		published++
	}

	logger.Info("Queued reviews for processing", "published", published)
}
