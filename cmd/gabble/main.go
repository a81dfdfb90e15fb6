// ABOUTME: Entry point for the gabble bot: config, logging, signal handling
// ABOUTME: Wires registries, stores, adapters, dispatcher, and the transport

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"

	"github.com/gabblebot/gabble/internal/callbacks"
	"github.com/gabblebot/gabble/internal/commands"
	"github.com/gabblebot/gabble/internal/config"
	"github.com/gabblebot/gabble/internal/dispatch"
	"github.com/gabblebot/gabble/internal/llm"
	"github.com/gabblebot/gabble/internal/session"
	"github.com/gabblebot/gabble/internal/telegram"
	"github.com/gabblebot/gabble/internal/users"
)

const version = "0.3.0"

const aboutText = "gabble v" + version + " - a Telegram bot that chats and draws with OpenAI."

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var err error
	switch os.Args[1] {
	case "serve":
		err = runServe(ctx, os.Args[2:])
	case "version":
		fmt.Println(aboutText)
	default:
		color.Red("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		color.Red("Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	cyan := color.New(color.FgCyan)
	fmt.Println("Usage: gabble <command>")
	fmt.Println()
	fmt.Println("Commands:")
	_, _ = cyan.Print("  serve")
	fmt.Println("     Start the bot (flags: -config <path>)")
	_, _ = cyan.Print("  version")
	fmt.Println("   Print version information")
}

func runServe(ctx context.Context, args []string) error {
	configPath := "gabble.yaml"
	for i := 0; i < len(args); i++ {
		if args[i] == "-config" && i+1 < len(args) {
			configPath = args[i+1]
			i++
		}
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := newLogger(cfg.Logging)
	slog.SetDefault(logger)

	backend := llm.New(llm.Config{
		APIKey:     cfg.OpenAI.APIKey,
		BaseURL:    cfg.OpenAI.BaseURL,
		ChatModel:  cfg.OpenAI.ChatModel,
		ImageModel: cfg.OpenAI.ImageModel,
	}, logger)

	userRegistry := users.NewRegistry()
	sessions := session.NewStore(session.WithMaxTurns(cfg.History.MaxTurns))

	router := commands.NewRouter(logger)
	commands.RegisterBuiltins(router, commands.Deps{
		Users:  userRegistry,
		Models: backend,
		Images: backend,
	})

	callbackRegistry := callbacks.NewRegistry(callbacks.DefaultBindings(aboutText))

	bot, err := telegram.NewBot(cfg.Telegram.Token)
	if err != nil {
		return err
	}

	sender := telegram.NewSender(bot, logger)
	dispatcher := dispatch.New(userRegistry, sessions, router, callbackRegistry, backend, sender, logger)
	transport := telegram.NewTransport(bot, cfg.Telegram, dispatcher, logger)

	logger.Info("gabble starting",
		"version", version,
		"webhook", cfg.Telegram.Webhook.Enabled,
		"chat_model", cfg.OpenAI.ChatModel,
		"max_turns", cfg.History.MaxTurns,
	)
	return transport.Run(ctx)
}

// newLogger builds the process logger from config. Level defaults to info,
// format to text; "json" switches to the JSON handler.
func newLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(cfg.Format, "json") {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
