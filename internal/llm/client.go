// ABOUTME: OpenAI-backed adapters for chat completion, images, and model listing
// ABOUTME: Collapses all backend failures into the ErrGeneration sentinel

package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/gabblebot/gabble/internal/session"
)

// ErrGeneration is returned when the backend could not produce a result.
// The wrapped cause carries detail for logs; user-facing code should show a
// fixed apology instead of the cause.
var ErrGeneration = errors.New("generation failed")

// Image sizes accepted by the image adapter. Any other value is a caller
// bug; the command layer validates before calling GenerateImage.
const (
	SizeSquare    = "1024x1024"
	SizePortrait  = "1024x1536"
	SizeLandscape = "1536x1024"
	SizeAuto      = "auto"

	DefaultImageSize = SizeSquare
)

var imageSizes = map[string]struct{}{
	SizeSquare:    {},
	SizePortrait:  {},
	SizeLandscape: {},
	SizeAuto:      {},
}

// ValidImageSize reports whether s is a member of the image size enum.
func ValidImageSize(s string) bool {
	_, ok := imageSizes[s]
	return ok
}

// Config holds backend connection settings for the client.
type Config struct {
	APIKey     string
	BaseURL    string // optional override, used by tests and proxies
	ChatModel  string
	ImageModel string
}

// Client talks to the OpenAI API. Stateless apart from configuration;
// safe for concurrent use.
type Client struct {
	api        openai.Client
	chatModel  string
	imageModel string
	logger     *slog.Logger
}

// New creates a backend client from config.
func New(cfg Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	chatModel := cfg.ChatModel
	if chatModel == "" {
		chatModel = "gpt-4o-mini"
	}
	imageModel := cfg.ImageModel
	if imageModel == "" {
		imageModel = "gpt-image-1"
	}

	return &Client{
		api:        openai.NewClient(opts...),
		chatModel:  chatModel,
		imageModel: imageModel,
		logger:     logger.With("component", "llm"),
	}
}

// Complete sends the full ordered turn sequence and returns the generated
// assistant text. Returns ErrGeneration on any backend failure or an empty
// reply.
func (c *Client) Complete(ctx context.Context, turns []session.Turn) (string, error) {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(turns))
	for _, turn := range turns {
		switch turn.Role {
		case session.RoleAssistant:
			messages = append(messages, openai.AssistantMessage(turn.Content))
		default:
			messages = append(messages, openai.UserMessage(turn.Content))
		}
	}

	resp, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(c.chatModel),
		Messages: messages,
	})
	if err != nil {
		return "", fmt.Errorf("%w: chat completion: %w", ErrGeneration, err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("%w: backend returned no content", ErrGeneration)
	}

	reply := resp.Choices[0].Message.Content
	c.logger.Debug("completion finished",
		"model", c.chatModel,
		"turns", len(turns),
		"reply_len", len(reply))
	return reply, nil
}

// ListModels returns the identifiers of models available on the backend.
func (c *Client) ListModels(ctx context.Context) ([]string, error) {
	page, err := c.api.Models.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list models: %w", ErrGeneration, err)
	}

	ids := make([]string, 0, len(page.Data))
	for _, m := range page.Data {
		ids = append(ids, m.ID)
	}
	return ids, nil
}

// GenerateImage generates one image for prompt at the given size and returns
// a locator for the asset: the backend URL when one is provided, otherwise a
// data URI built from the inline payload. The core never fetches or re-hosts
// the asset.
func (c *Client) GenerateImage(ctx context.Context, prompt, size string) (string, error) {
	resp, err := c.api.Images.Generate(ctx, openai.ImageGenerateParams{
		Prompt: prompt,
		Model:  openai.ImageModel(c.imageModel),
		Size:   openai.ImageGenerateParamsSize(size),
		N:      openai.Int(1),
	})
	if err != nil {
		return "", fmt.Errorf("%w: image generation: %w", ErrGeneration, err)
	}
	if len(resp.Data) == 0 {
		return "", fmt.Errorf("%w: backend returned no image", ErrGeneration)
	}

	img := resp.Data[0]
	switch {
	case img.URL != "":
		return img.URL, nil
	case img.B64JSON != "":
		return "data:image/png;base64," + img.B64JSON, nil
	default:
		return "", fmt.Errorf("%w: backend returned an empty image entry", ErrGeneration)
	}
}
