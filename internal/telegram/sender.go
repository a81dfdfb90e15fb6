// ABOUTME: Outbound delivery of replies, photos, acks, and typing actions
// ABOUTME: Renders Markdown to Telegram HTML with a plain-text fallback

package telegram

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"

	"github.com/gabblebot/gabble/internal/commands"
)

// Sender delivers dispatcher outcomes to Telegram. Implements
// dispatch.Replier.
type Sender struct {
	bot    *telego.Bot
	logger *slog.Logger
}

// NewSender creates a sender over an existing bot client.
func NewSender(bot *telego.Bot, logger *slog.Logger) *Sender {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sender{
		bot:    bot,
		logger: logger.With("component", "telegram-sender"),
	}
}

// Send delivers a reply to a chat: a photo when an image locator is set,
// text otherwise. Buttons become an inline keyboard.
func (s *Sender) Send(ctx context.Context, chatID int64, reply *commands.Reply) error {
	if reply.Image != "" {
		return s.sendPhoto(ctx, chatID, reply)
	}
	return s.sendText(ctx, chatID, reply)
}

func (s *Sender) sendText(ctx context.Context, chatID int64, reply *commands.Reply) error {
	keyboard := inlineKeyboard(reply.Buttons)

	if html, ok := RenderHTML(reply.Text); ok {
		params := &telego.SendMessageParams{
			ChatID:    tu.ID(chatID),
			Text:      html,
			ParseMode: telego.ModeHTML,
		}
		if keyboard != nil {
			params.ReplyMarkup = keyboard
		}
		_, err := s.bot.SendMessage(ctx, params)
		if err == nil {
			return nil
		}
		// Telegram rejects HTML it cannot parse; retry as plain text
		s.logger.Debug("html send rejected, retrying plain", "error", err)
	}

	params := &telego.SendMessageParams{
		ChatID: tu.ID(chatID),
		Text:   reply.Text,
	}
	if keyboard != nil {
		params.ReplyMarkup = keyboard
	}
	if _, err := s.bot.SendMessage(ctx, params); err != nil {
		return fmt.Errorf("sending message: %w", err)
	}
	return nil
}

func (s *Sender) sendPhoto(ctx context.Context, chatID int64, reply *commands.Reply) error {
	photo, err := photoInput(reply.Image)
	if err != nil {
		return err
	}

	_, err = s.bot.SendPhoto(ctx, &telego.SendPhotoParams{
		ChatID:  tu.ID(chatID),
		Photo:   photo,
		Caption: reply.Text,
	})
	if err != nil {
		return fmt.Errorf("sending photo: %w", err)
	}
	return nil
}

// AckCallback clears the client-side loading state for a button press.
func (s *Sender) AckCallback(ctx context.Context, callbackID string) error {
	err := s.bot.AnswerCallbackQuery(ctx, &telego.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
	})
	if err != nil {
		return fmt.Errorf("answering callback query: %w", err)
	}
	return nil
}

// SendTyping shows the "typing..." indicator while a reply is prepared.
func (s *Sender) SendTyping(ctx context.Context, chatID int64) error {
	return s.bot.SendChatAction(ctx, &telego.SendChatActionParams{
		ChatID: tu.ID(chatID),
		Action: telego.ChatActionTyping,
	})
}

// photoInput turns an image locator into telego input: data URIs are
// decoded and uploaded as bytes, anything else is passed as a URL for
// Telegram to fetch.
func photoInput(locator string) (telego.InputFile, error) {
	const dataPrefix = "data:image/png;base64,"
	if strings.HasPrefix(locator, dataPrefix) {
		raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(locator, dataPrefix))
		if err != nil {
			return telego.InputFile{}, fmt.Errorf("decoding image payload: %w", err)
		}
		return tu.File(tu.NameReader(bytes.NewReader(raw), "image.png")), nil
	}
	return tu.FileFromURL(locator), nil
}

// inlineKeyboard maps reply buttons onto a single-row inline keyboard.
// Returns nil when there are no buttons so the message carries no markup.
func inlineKeyboard(buttons []commands.Button) *telego.InlineKeyboardMarkup {
	if len(buttons) == 0 {
		return nil
	}

	row := make([]telego.InlineKeyboardButton, 0, len(buttons))
	for _, b := range buttons {
		row = append(row, telego.InlineKeyboardButton{
			Text:         b.Label,
			CallbackData: b.Token,
		})
	}
	return &telego.InlineKeyboardMarkup{
		InlineKeyboard: [][]telego.InlineKeyboardButton{row},
	}
}
