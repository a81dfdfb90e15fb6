// ABOUTME: Telegram update intake via long polling or webhook delivery
// ABOUTME: Converts telego updates into transport-neutral dispatch events

package telegram

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mymmrac/telego"

	"github.com/gabblebot/gabble/internal/config"
	"github.com/gabblebot/gabble/internal/dedupe"
	"github.com/gabblebot/gabble/internal/dispatch"
)

// webhookPath is where the webhook HTTP server accepts Telegram updates.
const webhookPath = "/telegram/updates"

// EventHandler is what the transport needs from the dispatch layer.
type EventHandler interface {
	HandleEvent(ctx context.Context, ev *dispatch.Event)
}

// NewBot creates a telego bot client for the given token.
func NewBot(token string) (*telego.Bot, error) {
	bot, err := telego.NewBot(token, telego.WithDiscardLogger())
	if err != nil {
		return nil, fmt.Errorf("creating telegram bot: %w", err)
	}
	return bot, nil
}

// Transport receives Telegram updates and feeds them to the dispatcher.
type Transport struct {
	bot     *telego.Bot
	cfg     config.TelegramConfig
	handler EventHandler
	seen    *dedupe.Cache
	logger  *slog.Logger
}

// NewTransport creates a transport over an existing bot client.
func NewTransport(bot *telego.Bot, cfg config.TelegramConfig, handler EventHandler, logger *slog.Logger) *Transport {
	if logger == nil {
		logger = slog.Default()
	}
	return &Transport{
		bot:     bot,
		cfg:     cfg,
		handler: handler,
		seen:    dedupe.New(10*time.Minute, 10_000),
		logger:  logger.With("component", "telegram"),
	}
}

// Run receives updates until the context is canceled. Delivery mode is
// chosen by config: webhook when enabled, long polling otherwise.
func (t *Transport) Run(ctx context.Context) error {
	defer t.seen.Close()

	if t.cfg.Webhook.Enabled {
		return t.runWebhook(ctx)
	}
	return t.runPolling(ctx)
}

func (t *Transport) runPolling(ctx context.Context) error {
	t.logger.Info("starting long polling")

	updates, err := t.bot.UpdatesViaLongPolling(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting long polling: %w", err)
	}

	for update := range updates {
		go t.process(ctx, update)
	}

	t.logger.Info("long polling stopped")
	return nil
}

func (t *Transport) runWebhook(ctx context.Context) error {
	hookURL := strings.TrimRight(t.cfg.Webhook.PublicURL, "/") + webhookPath
	t.logger.Info("registering webhook", "url", hookURL, "listen_addr", t.cfg.Webhook.ListenAddr)

	err := t.bot.SetWebhook(ctx, &telego.SetWebhookParams{
		URL:         hookURL,
		SecretToken: t.cfg.Webhook.Secret,
	})
	if err != nil {
		return fmt.Errorf("registering webhook: %w", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc(webhookPath, t.handleWebhookRequest(ctx))
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	server := &http.Server{
		Addr:              t.cfg.Webhook.ListenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("webhook server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		t.logger.Info("context canceled, shutting down webhook server")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := t.bot.DeleteWebhook(shutdownCtx, &telego.DeleteWebhookParams{}); err != nil {
		t.logger.Warn("deleting webhook failed", "error", err)
	}
	return server.Shutdown(shutdownCtx)
}

// handleWebhookRequest decodes one update per request, verifying the shared
// secret header when one is configured.
func (t *Transport) handleWebhookRequest(ctx context.Context) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if t.cfg.Webhook.Secret != "" &&
			r.Header.Get("X-Telegram-Bot-Api-Secret-Token") != t.cfg.Webhook.Secret {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		var update telego.Update
		if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
			t.logger.Warn("undecodable webhook update", "error", err)
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}

		// Acknowledge before processing: Telegram retries until it gets 200,
		// and the dedupe cache covers retries that raced the handler.
		w.WriteHeader(http.StatusOK)
		go t.process(ctx, update)
	}
}

// process filters one update and hands it to the dispatcher.
func (t *Transport) process(ctx context.Context, update telego.Update) {
	if t.seen.Duplicate(int64(update.UpdateID)) {
		t.logger.Debug("duplicate update dropped", "update_id", update.UpdateID)
		return
	}

	ev := toEvent(update)
	if ev == nil {
		return
	}
	t.handler.HandleEvent(ctx, ev)
}

// toEvent converts a Telegram update into a transport-neutral event.
// Returns nil for update kinds the core has no interest in.
func toEvent(update telego.Update) *dispatch.Event {
	switch {
	case update.CallbackQuery != nil:
		cq := update.CallbackQuery
		ev := &dispatch.Event{
			UserID:        cq.From.ID,
			CallbackToken: cq.Data,
			CallbackID:    cq.ID,
		}
		if cq.Message != nil {
			ev.ChatID = cq.Message.GetChat().ID
		}
		return ev

	case update.Message != nil:
		msg := update.Message
		ev := &dispatch.Event{
			ChatID: msg.Chat.ID,
			Text:   msg.Text,
		}
		if msg.From != nil {
			ev.UserID = msg.From.ID
		}
		return ev

	default:
		return nil
	}
}
