// Package main runs the pattern analysis for a stored session and prints
// the report as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/redis/go-redis/v9"

	"github.com/mindloop/therasim/internal/cache"
	"github.com/mindloop/therasim/internal/config"
	"github.com/mindloop/therasim/internal/emotion"
	"github.com/mindloop/therasim/internal/repository"
	"github.com/mindloop/therasim/internal/session"
)

func main() {
	sessionID := flag.String("session", "", "session id to analyze")
	k := flag.Int("k", 0, "cluster count (defaults to CLUSTER_COUNT)")
	cached := flag.Bool("cached", false, "print the cached report instead of recomputing")
	flag.Parse()

	if *sessionID == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.Load()
	if *k <= 0 {
		*k = cfg.ClusterCount
	}

	ctx := context.Background()

	store, err := repository.NewStore(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer store.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer redisClient.Close()

	service := session.NewService(
		nil, // analysis does not detect
		emotion.NewSynthesizer(emotion.NewTimeSource(), nil),
		emotion.NewClusterEngine(emotion.NewTimeSource()),
		store.Sessions,
		store.Snapshots,
		cache.NewReportCache(redisClient),
	)
	service.SetAnalysisParams(cfg.SmoothingAlpha, cfg.TransitionThreshold)

	if *cached {
		report, err := service.CachedReport(ctx, *sessionID)
		if err != nil {
			log.Fatalf("failed to load cached report: %v", err)
		}
		if report == nil {
			log.Fatalf("no cached report for session %s", *sessionID)
		}
		printJSON(report)
		return
	}

	report, err := service.Analyze(ctx, *sessionID, *k)
	if err != nil {
		log.Fatalf("analysis failed: %v", err)
	}
	printJSON(report)
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("failed to encode report: %v", err)
	}
	fmt.Println(string(data))
}
