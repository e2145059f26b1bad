package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/grapevine-ai/grapevine/internal/queue"
	"github.com/grapevine-ai/grapevine/internal/util"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/grapevine-ai/grapevine/pkg/ai"
	olai "github.com/grapevine-ai/grapevine/pkg/ai/ollama"
	oai "github.com/grapevine-ai/grapevine/pkg/ai/openai"
	"github.com/grapevine-ai/grapevine/pkg/extract"
	"github.com/grapevine-ai/grapevine/pkg/graphstore"
	neo4jstore "github.com/grapevine-ai/grapevine/pkg/graphstore/neo4j"
	"github.com/grapevine-ai/grapevine/pkg/leaselock"
	"github.com/grapevine-ai/grapevine/pkg/logger"
	"github.com/grapevine-ai/grapevine/pkg/logger/console"
	"github.com/grapevine-ai/grapevine/pkg/store"
	pgxstore "github.com/grapevine-ai/grapevine/pkg/store/pgx"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	util.LoadEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// logger
	debug := util.GetEnvBool("DEBUG", false)
	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug:  debug,
		Prefix: "worker",
	})
	logger.Init(consoleLogger)

	// AI client
	adapter := util.GetEnv("AI_ADAPTER")
	var aiClient ai.ReviewAIClient

	switch adapter {
	case "ollama":
		client, err := olai.NewReviewOllamaClient(olai.NewReviewOllamaClientParams{
			ExtractionModel: util.GetEnv("AI_EXTRACT_MODEL"),
			ChatModel:       util.GetEnv("AI_CHAT_MODEL"),

			BaseURL: util.GetEnv("AI_CHAT_URL"),
			ApiKey:  util.GetEnv("AI_CHAT_KEY"),

			MaxConcurrentRequests: int64(util.GetEnvInt("AI_MAX_CONCURRENT", 1)),
		})
		if err != nil {
			logger.Fatal("Could not create Ollama client", "err", err)
		}
		aiClient = client
	default:
		aiClient = oai.NewReviewOpenAIClient(oai.NewReviewOpenAIClientParams{
			ExtractionModel: util.GetEnv("AI_EXTRACT_MODEL"),
			ChatModel:       util.GetEnv("AI_CHAT_MODEL"),

			ChatURL: util.GetEnv("AI_CHAT_URL"),
			ChatKey: util.GetEnv("AI_CHAT_KEY"),
		})
	}

	extractor := extract.NewExtractor(extract.NewExtractorParams{
		Client:     aiClient,
		MaxRetries: util.GetEnvInt("AI_MAX_RETRIES", 3),
		Timeout:    time.Duration(util.GetEnvInt("AI_TIMEOUT_SECONDS", 120)) * time.Second,
	})

	// Init pgx pool and schema
	pgConn, err := pgxpool.New(ctx, util.GetEnv("DATABASE_URL"))
	if err != nil {
		logger.Fatal("Unable to connect to database", "err", err)
	}
	defer pgConn.Close()

	var records store.ReviewStore = pgxstore.NewReviewDBStoreWithConnection(pgConn)
	if err := records.EnsureSchema(ctx); err != nil {
		logger.Fatal("Unable to ensure review schema", "err", err)
	}
	locks := leaselock.New(pgConn)
	if err := locks.EnsureSchema(ctx); err != nil {
		logger.Fatal("Unable to ensure lock schema", "err", err)
	}

	// Neo4j graph store
	var graph graphstore.GraphStore
	graph, err = neo4jstore.NewReviewGraphStore(neo4jstore.NewReviewGraphStoreParams{
		URI:      util.GetEnv("NEO4J_URI"),
		Username: util.GetEnv("NEO4J_USER"),
		Password: util.GetEnv("NEO4J_PASSWORD"),
		Database: util.GetEnvString("NEO4J_DATABASE", "neo4j"),
	})
	if err != nil {
		logger.Fatal("Unable to connect to neo4j", "err", err)
	}
	defer graph.Close(context.Background())

	// Init rabbitmq
	conn := queue.Init()
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Fatal("Failed to open channel", "err", err)
	}
	defer ch.Close()

	queues := []string{queue.ReviewQueue, queue.ProjectionQueue}
	if err := queue.SetupQueues(ch, queues); err != nil {
		logger.Fatal("Failed to set up queues", "err", err)
	}

	logger.Info("Listening for messages")

	// Single consumer channel with prefetch=1 so only one message is in
	// flight at a time across all queues.
	consumerCh, err := conn.Channel()
	if err != nil {
		logger.Fatal("Failed to open consumer channel", "err", err)
	}
	defer consumerCh.Close()

	err = consumerCh.Qos(1, 0, true)
	if err != nil {
		logger.Fatal("Failed to set QoS", "err", err)
	}

	type queuedMessage struct {
		msg       amqp.Delivery
		queueName string
	}

	messageChan := make(chan queuedMessage)

	for _, queueName := range queues {
		go func(qName string) {
			consumerTag := fmt.Sprintf("%s_consumer", qName)
			msgs, err := consumerCh.Consume(
				qName,
				consumerTag,
				false, // autoAck
				false, // exclusive
				false, // noLocal
				false, // noWait
				nil,   // args
			)
			if err != nil {
				logger.Fatal("Failed to start consuming", "queue", qName, "err", err)
			}

			for {
				select {
				case <-ctx.Done():
					logger.Info("Stopping consumer", "queue", qName)
					return
				case msg, ok := <-msgs:
					if !ok {
						logger.Info("Message channel closed", "queue", qName)
						return
					}
					messageChan <- queuedMessage{msg: msg, queueName: qName}
				}
			}
		}(queueName)
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				logger.Info("Stopping message processor")
				return
			case qm := <-messageChan:
				startTime := time.Now()
				logger.Info("Received message", "queue", qm.queueName)

				var processingErr error
				switch qm.queueName {
				case queue.ReviewQueue:
					processingErr = queue.ProcessReviewMessage(ctx, extractor, records, ch, string(qm.msg.Body))
				case queue.ProjectionQueue:
					processingErr = queue.ProcessProjectionMessage(ctx, locks, records, graph, string(qm.msg.Body))
				}

				// On error send to retry or dead-letter, otherwise ack
				if processingErr != nil {
					logger.Error("Error processing message", "queue", qm.queueName, "err", processingErr)
					handleProcessingError(consumerCh, qm.msg, qm.queueName)
				} else {
					if err := qm.msg.Ack(false); err != nil {
						logger.Error("Failed to ack message", "err", err)
					}
					logger.Info("Message processed successfully", "queue", qm.queueName)
				}

				metrics := aiClient.GetMetrics()
				logger.Info(
					"AI Metrics",
					"input_tokens", metrics.InputTokens,
					"output_tokens", metrics.OutputTokens,
					"total_tokens", metrics.TotalTokens,
					"tokens_per_second", metrics.TokenPerSecond,
				)

				logger.Info("Processing time", "duration", time.Since(startTime).Round(time.Millisecond).String())
				logger.Info("Waiting for next message")
				aiClient.ResetMetrics()
			}
		}
	}()

	<-ctx.Done()
	logger.Info("Shutdown signal received, exiting...")
}

func handleProcessingError(ch *amqp.Channel, msg amqp.Delivery, queueName string) {
	retries := 0
	if val, ok := msg.Headers["x-retries"]; ok {
		if v, ok := val.(int32); ok {
			retries = int(v)
		}
	}

	// After 10 retries send to dead-letter
	if retries >= 10 {
		dlqName := queueName + "_dlq"
		logger.Info("Sending message to DLQ", "dlq", dlqName)
		pubErr := ch.Publish(
			"",
			dlqName,
			false,
			false,
			amqp.Publishing{
				ContentType: "application/json",
				Body:        msg.Body,
				Headers:     msg.Headers,
			},
		)
		if pubErr != nil {
			logger.Error("Failed to publish to DLQ", "dlq", dlqName, "err", pubErr)
			msg.Nack(false, true)
			return
		}
		msg.Ack(false)
		return
	}

	retryName := queueName + "_retry"
	headers := msg.Headers
	if headers == nil {
		headers = amqp.Table{}
	}
	headers["x-retries"] = retries + 1

	pubErr := ch.Publish(
		"",
		retryName,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        msg.Body,
			Headers:     headers,
		},
	)
	if pubErr != nil {
		logger.Error("Failed to publish to retry queue", "retry_queue", retryName, "err", pubErr)
		msg.Nack(false, true)
		return
	}
	msg.Ack(false)
}
