package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/FundFlow/config"
	"github.com/Alias1177/FundFlow/internal/api/binance"
	"github.com/Alias1177/FundFlow/internal/api/openai"
	"github.com/Alias1177/FundFlow/internal/flow"
	"github.com/Alias1177/FundFlow/internal/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	lvl, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(lvl).With().Timestamp().Logger()

	client := binance.NewClient(binance.ClientOptions{
		SpotBaseURL:    cfg.SpotBaseURL,
		FuturesBaseURL: cfg.FuturesBaseURL,
		RequestTimeout: time.Duration(cfg.RequestTimeout) * time.Second,
		RequestsPerSec: cfg.RequestsPerSec,
	})
	analyzer := flow.New(flow.Variant(cfg.Variant))
	builder := report.NewBuilder(client, analyzer, cfg.Interval, cfg.WindowSize, cfg.DepthLimit)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	rep, err := builder.Build(ctx, cfg.Symbols)
	if err != nil {
		log.Fatal().Err(err).Msg("Analysis failed")
	}

	text := rep.RenderText()
	fmt.Println(text)

	if cfg.Narrate && cfg.OpenAIAPIKey != "" {
		narrator := openai.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)
		summary, err := narrator.NarrateReport(ctx, text)
		if err != nil {
			log.Error().Err(err).Msg("Narration failed")
		} else if summary != "" {
			fmt.Println("Summary:")
			fmt.Println(summary)
		}
	}
}
