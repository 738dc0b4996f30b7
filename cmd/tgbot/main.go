package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/FundFlow/config"
	"github.com/Alias1177/FundFlow/internal/api/binance"
	"github.com/Alias1177/FundFlow/internal/database"
	"github.com/Alias1177/FundFlow/internal/flow"
	"github.com/Alias1177/FundFlow/internal/report"
)

const helpText = `Commands:
/analyze SYMBOL - run a funding-flow analysis (e.g. /analyze BTCUSDT)
/watch SYMBOL - add a symbol to your watchlist
/unwatch SYMBOL - remove a symbol from your watchlist
/list - show your watchlist`

type bot struct {
	api     *tgbotapi.BotAPI
	builder *report.Builder
	db      *database.DB
	cfg     *config.Config
	logger  zerolog.Logger
}

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

	if cfg.TelegramToken == "" {
		log.Fatal().Msg("TELEGRAM_BOT_TOKEN not set in environment")
	}

	api, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize Telegram bot")
	}
	log.Info().Str("username", api.Self.UserName).Msg("Authorized on Telegram")

	// The watchlist is optional; the bot still answers /analyze without it.
	var db *database.DB
	if cfg.DBHost != "" {
		db, err = database.New(database.ConnectionParams{
			Host:     cfg.DBHost,
			Port:     cfg.DBPort,
			User:     cfg.DBUser,
			Password: cfg.DBPassword,
			DBName:   cfg.DBName,
			SSLMode:  cfg.DBSSLMode,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize database")
		}
	}

	client := binance.NewClient(binance.ClientOptions{
		SpotBaseURL:    cfg.SpotBaseURL,
		FuturesBaseURL: cfg.FuturesBaseURL,
		RequestTimeout: time.Duration(cfg.RequestTimeout) * time.Second,
		RequestsPerSec: cfg.RequestsPerSec,
	})
	analyzer := flow.New(flow.Variant(cfg.Variant))

	b := &bot{
		api:     api,
		builder: report.NewBuilder(client, analyzer, cfg.Interval, cfg.WindowSize, cfg.DepthLimit),
		db:      db,
		cfg:     cfg,
		logger:  log.With().Str("component", "tgbot").Logger(),
	}

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60

	for update := range api.GetUpdatesChan(updateConfig) {
		if update.Message == nil {
			continue
		}
		b.handleMessage(update.Message)
	}
}

func (b *bot) handleMessage(msg *tgbotapi.Message) {
	command := msg.Command()
	arg := strings.ToUpper(strings.TrimSpace(msg.CommandArguments()))

	switch command {
	case "start", "help":
		b.reply(msg.Chat.ID, helpText)
	case "analyze":
		if arg == "" {
			b.reply(msg.Chat.ID, "Usage: /analyze SYMBOL")
			return
		}
		b.analyze(msg.Chat.ID, arg)
	case "watch":
		b.watch(msg.Chat.ID, arg)
	case "unwatch":
		b.unwatch(msg.Chat.ID, arg)
	case "list":
		b.list(msg.Chat.ID)
	default:
		b.reply(msg.Chat.ID, helpText)
	}
}

func (b *bot) analyze(chatID int64, symbol string) {
	b.logger.Info().Int64("chat_id", chatID).Str("symbol", symbol).Msg("Analysis requested")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	rep, err := b.builder.Build(ctx, []string{symbol})
	if err != nil {
		b.logger.Error().Err(err).Str("symbol", symbol).Msg("Analysis failed")
		b.reply(chatID, fmt.Sprintf("Analysis of %s failed, try again later.", symbol))
		return
	}
	b.reply(chatID, rep.RenderText())
}

func (b *bot) watch(chatID int64, symbol string) {
	if b.db == nil {
		b.reply(chatID, "Watchlist is not available.")
		return
	}
	if symbol == "" {
		b.reply(chatID, "Usage: /watch SYMBOL")
		return
	}
	if err := b.db.AddWatch(chatID, symbol, b.cfg.Interval); err != nil {
		b.logger.Error().Err(err).Msg("Failed to add watch")
		b.reply(chatID, "Could not update your watchlist.")
		return
	}
	b.reply(chatID, fmt.Sprintf("Watching %s.", symbol))
}

func (b *bot) unwatch(chatID int64, symbol string) {
	if b.db == nil {
		b.reply(chatID, "Watchlist is not available.")
		return
	}
	if symbol == "" {
		b.reply(chatID, "Usage: /unwatch SYMBOL")
		return
	}
	if err := b.db.RemoveWatch(chatID, symbol); err != nil {
		b.logger.Error().Err(err).Msg("Failed to remove watch")
		b.reply(chatID, "Could not update your watchlist.")
		return
	}
	b.reply(chatID, fmt.Sprintf("Stopped watching %s.", symbol))
}

func (b *bot) list(chatID int64) {
	if b.db == nil {
		b.reply(chatID, "Watchlist is not available.")
		return
	}
	entries, err := b.db.ListWatches(chatID)
	if err != nil {
		b.logger.Error().Err(err).Msg("Failed to list watches")
		b.reply(chatID, "Could not read your watchlist.")
		return
	}
	if len(entries) == 0 {
		b.reply(chatID, "Your watchlist is empty.")
		return
	}
	var sb strings.Builder
	sb.WriteString("Your watchlist:\n")
	for _, e := range entries {
		fmt.Fprintf(&sb, "- %s (%s)\n", e.Symbol, e.Interval)
	}
	b.reply(chatID, sb.String())
}

func (b *bot) reply(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		b.logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send message")
	}
}
