package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/grapevine-ai/grapevine/internal/util"
	neo4jstore "github.com/grapevine-ai/grapevine/pkg/graphstore/neo4j"
	"github.com/grapevine-ai/grapevine/pkg/logger"
	"github.com/grapevine-ai/grapevine/pkg/logger/console"
	"github.com/grapevine-ai/grapevine/pkg/query"
)

// report runs the read-only analytics against the projected graph and prints
// the results.
func main() {
	util.LoadEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		userID = flag.String("user", "", "user ID for the preference ranking (skipped when empty)")
		limit  = flag.Int("limit", query.DefaultLimit, "ranking depth for the top-N queries")
	)
	flag.Parse()

	debug := util.GetEnvBool("DEBUG", false)
	logger.Init(console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug:  debug,
		Prefix: "report",
	}))

	graph, err := neo4jstore.NewReviewGraphStore(neo4jstore.NewReviewGraphStoreParams{
		URI:      util.GetEnv("NEO4J_URI"),
		Username: util.GetEnv("NEO4J_USER"),
		Password: util.GetEnv("NEO4J_PASSWORD"),
		Database: util.GetEnvString("NEO4J_DATABASE", "neo4j"),
	})
	if err != nil {
		logger.Fatal("Unable to connect to neo4j", "err", err)
	}
	defer graph.Close(context.Background())

	svc := query.NewService(query.NewServiceParams{Graph: graph})

	pairs, err := svc.FrequentCoPurchases(ctx, *limit)
	if err != nil {
		logger.Fatal("Co-purchase query failed", "err", err)
	}
	fmt.Println("Frequently co-purchased entities:")
	if len(pairs) == 0 {
		fmt.Println("  (none)")
	}
	for _, pair := range pairs {
		fmt.Printf("  %s and %s were co-purchased %d times\n", pair.Entity1, pair.Entity2, pair.Frequency)
	}

	if *userID != "" {
		prefs, err := svc.UserPreferences(ctx, *userID, *limit)
		if err != nil {
			logger.Fatal("Preference query failed", "user", *userID, "err", err)
		}
		fmt.Printf("\nPreferences for user %s:\n", *userID)
		if len(prefs) == 0 {
			fmt.Println("  (none)")
		}
		for _, pref := range prefs {
			fmt.Printf("  %s with a score of %d\n", pref.Entity, pref.Score)
		}
	}

	histogram, err := svc.SentimentHistogram(ctx)
	if err != nil {
		logger.Fatal("Sentiment query failed", "err", err)
	}
	fmt.Println("\nEntity sentiment histogram:")
	if len(histogram) == 0 {
		fmt.Println("  (none)")
	}
	for _, bucket := range histogram {
		fmt.Printf("  %-10s %d\n", bucket.Sentiment, bucket.Count)
	}
}
