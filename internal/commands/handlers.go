// ABOUTME: Built-in command handlers: start, help, models, image, users
// ABOUTME: Enforces the image size enum and argument policy before adapter calls

package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/gabblebot/gabble/internal/callbacks"
	"github.com/gabblebot/gabble/internal/llm"
)

const welcomeText = `Hi! I'm gabble, an AI-powered chat bot.

Send me any message and I'll reply with generated text.
Use /image <prompt> to generate a picture, /help for everything else.`

const helpText = `Available commands:
/start - start the bot
/help - show this help
/models - list available generation models
/image <prompt> [size] - generate an image (sizes: 1024x1024, 1024x1536, 1536x1024, auto)
/users - how many people have talked to me

Or just send a message to chat.`

// ModelLister is what the models command needs from the backend adapter.
type ModelLister interface {
	ListModels(ctx context.Context) ([]string, error)
}

// ImageGenerator is what the image command needs from the backend adapter.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt, size string) (string, error)
}

// UserCounter is what the start and users commands need from the registry.
type UserCounter interface {
	Register(id int64) bool
	Count() int
}

// Deps are the collaborators behind the built-in command set.
type Deps struct {
	Users  UserCounter
	Models ModelLister
	Images ImageGenerator
}

// RegisterBuiltins fills the router with the standard command table.
func RegisterBuiltins(r *Router, deps Deps) {
	r.Register("start", startHandler(deps.Users))
	r.Register("help", helpHandler())
	r.Register("models", modelsHandler(deps.Models))
	r.Register("image", imageHandler(deps.Images))
	r.Register("users", usersHandler(deps.Users))
}

func startHandler(users UserCounter) Handler {
	return func(ctx context.Context, inv *Invocation) (*Reply, error) {
		users.Register(inv.UserID)
		return &Reply{
			Text: welcomeText,
			Buttons: []Button{
				{Label: "Models", Token: callbacks.TokenModels},
				{Label: "Help", Token: callbacks.TokenHelp},
				{Label: "About", Token: callbacks.TokenAbout},
			},
		}, nil
	}
}

func helpHandler() Handler {
	return func(ctx context.Context, inv *Invocation) (*Reply, error) {
		return &Reply{Text: helpText}, nil
	}
}

func modelsHandler(models ModelLister) Handler {
	return func(ctx context.Context, inv *Invocation) (*Reply, error) {
		ids, err := models.ListModels(ctx)
		if err != nil {
			return nil, err
		}

		var b strings.Builder
		b.WriteString("Available models:\n")
		for _, id := range ids {
			fmt.Fprintf(&b, "- %s\n", id)
		}
		return &Reply{Text: strings.TrimRight(b.String(), "\n")}, nil
	}
}

func imageHandler(images ImageGenerator) Handler {
	return func(ctx context.Context, inv *Invocation) (*Reply, error) {
		prompt, size, err := ParseImageArgs(inv.Args)
		if err != nil {
			return nil, err
		}

		locator, err := images.GenerateImage(ctx, prompt, size)
		if err != nil {
			return nil, err
		}
		return &Reply{Image: locator, Text: prompt}, nil
	}
}

func usersHandler(users UserCounter) Handler {
	return func(ctx context.Context, inv *Invocation) (*Reply, error) {
		return &Reply{Text: fmt.Sprintf("%d users have talked to me so far.", users.Count())}, nil
	}
}

// ParseImageArgs applies the image command's argument policy: the last token
// is consumed as the size iff it matches the size enum, otherwise all tokens
// form the prompt and the default size applies. Zero tokens is a usage error.
func ParseImageArgs(args []string) (prompt, size string, err error) {
	if len(args) == 0 {
		return "", "", &UsageError{Text: "Usage: /image <prompt> [size]\nSizes: 1024x1024, 1024x1536, 1536x1024, auto"}
	}

	size = llm.DefaultImageSize
	last := args[len(args)-1]
	if llm.ValidImageSize(last) {
		size = last
		args = args[:len(args)-1]
	}
	if len(args) == 0 {
		return "", "", &UsageError{Text: "Usage: /image <prompt> [size] - the prompt cannot be empty"}
	}

	return strings.Join(args, " "), size, nil
}
