// Package main is the entry point for the interactive therapy-training
// session driver.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/redis/go-redis/v9"
	"google.golang.org/adk/model"
	"google.golang.org/genai"

	"github.com/mindloop/therasim/internal/cache"
	"github.com/mindloop/therasim/internal/config"
	"github.com/mindloop/therasim/internal/detector"
	"github.com/mindloop/therasim/internal/emotion"
	"github.com/mindloop/therasim/internal/models"
	"github.com/mindloop/therasim/internal/repository"
	"github.com/mindloop/therasim/internal/session"
	"github.com/mindloop/therasim/internal/types"
)

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nshutting down...")
		cancel()
	}()

	store, err := repository.NewStore(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer store.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer redisClient.Close()
	reports := cache.NewReportCache(redisClient)

	if cfg.APIKey == "" {
		log.Fatal("OPENAI_API_KEY environment variable is required")
	}
	clientCfg := &genai.ClientConfig{APIKey: cfg.APIKey}
	var llm model.LLM
	if cfg.BaseURL != "" {
		llm, err = models.NewCompatibleModel(ctx, cfg.LLMModel, cfg.BaseURL, clientCfg)
	} else {
		llm, err = models.NewOpenAIModel(ctx, cfg.LLMModel, clientCfg)
	}
	if err != nil {
		log.Fatalf("failed to create detection model: %v", err)
	}

	service := session.NewService(
		detector.New(llm),
		emotion.NewSynthesizer(emotion.NewTimeSource(), emotion.DefaultRules()),
		emotion.NewClusterEngine(emotion.NewTimeSource()),
		store.Sessions,
		store.Snapshots,
		reports,
	)
	service.SetAnalysisParams(cfg.SmoothingAlpha, cfg.TransitionThreshold)

	current, err := service.Start(ctx, cfg.Scenario)
	if err != nil {
		log.Fatalf("failed to start session: %v", err)
	}
	fmt.Printf("session %s (%s)\n", current.ID, current.Scenario)
	fmt.Println("type patient utterances; /context <tag>, /analyze, /similar, /reset, /exit")

	contextTag := emotion.ContextGeneralConversation
	var lastPoint *types.DimensionalPoint
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("patient> ")
		if !scanner.Scan() {
			break
		}
		if ctx.Err() != nil {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch {
		case line == "/exit":
			return
		case line == "/reset":
			current, err = service.Start(ctx, cfg.Scenario)
			if err != nil {
				log.Fatalf("failed to restart session: %v", err)
			}
			lastPoint = nil
			fmt.Printf("session %s\n", current.ID)
		case line == "/analyze":
			report, analyzeErr := service.Analyze(ctx, current.ID, cfg.ClusterCount)
			if analyzeErr != nil {
				fmt.Printf("analysis failed: %v\n", analyzeErr)
				continue
			}
			data, _ := json.MarshalIndent(report, "", "  ")
			fmt.Println(string(data))
		case line == "/similar":
			if lastPoint == nil {
				fmt.Println("no utterance processed yet")
				continue
			}
			moments, similarErr := service.SimilarMoments(ctx, current.ID, *lastPoint, cfg.SimilarLimit)
			if similarErr != nil {
				fmt.Printf("similarity lookup failed: %v\n", similarErr)
				continue
			}
			for _, moment := range moments {
				fmt.Printf("%s  %s  distance=%.3f intensity=%.2f\n",
					moment.Timestamp.Format("15:04:05"),
					moment.PrimaryEmotion,
					moment.Distance,
					moment.Intensity)
			}
		case strings.HasPrefix(line, "/context "):
			contextTag = strings.TrimSpace(strings.TrimPrefix(line, "/context "))
			fmt.Printf("context set to %q\n", contextTag)
		default:
			profile, projected, processErr := service.ProcessUtterance(ctx, current.ID, contextTag, line)
			if processErr != nil {
				fmt.Printf("turn failed: %v\n", processErr)
				continue
			}
			lastPoint = &projected.Dimensions
			fmt.Printf("%s  v=%+.2f a=%.2f d=%+.2f  intensity=%.2f confidence=%.2f\n",
				projected.PrimaryEmotion,
				projected.Dimensions.Valence,
				projected.Dimensions.Arousal,
				projected.Dimensions.Dominance,
				projected.Intensity,
				profile.Confidence)
		}
	}

	if err := scanner.Err(); err != nil {
		log.Fatalf("failed to read input: %v", err)
	}
}
