// ABOUTME: Tests for built-in command handlers and image argument parsing
// ABOUTME: Uses consumer-interface mocks in place of the backend adapters

package commands

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gabblebot/gabble/internal/llm"
	"github.com/gabblebot/gabble/internal/users"
)

// mockBackend implements ModelLister and ImageGenerator for tests.
type mockBackend struct {
	models    []string
	modelsErr error

	locator    string
	imageErr   error
	lastPrompt string
	lastSize   string
	imageCalls int
}

func (m *mockBackend) ListModels(ctx context.Context) ([]string, error) {
	return m.models, m.modelsErr
}

func (m *mockBackend) GenerateImage(ctx context.Context, prompt, size string) (string, error) {
	m.imageCalls++
	m.lastPrompt = prompt
	m.lastSize = size
	return m.locator, m.imageErr
}

func newTestRouter(backend *mockBackend, registry *users.Registry) *Router {
	r := NewRouter(nil)
	RegisterBuiltins(r, Deps{
		Users:  registry,
		Models: backend,
		Images: backend,
	})
	return r
}

func dispatch(t *testing.T, r *Router, command string, args ...string) (*Reply, error) {
	t.Helper()
	return r.Dispatch(context.Background(), &Invocation{
		UserID:  10,
		ChatID:  20,
		Command: command,
		Args:    args,
	})
}

func TestParseImageArgs(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantPrompt string
		wantSize   string
		wantUsage  bool
	}{
		{
			name:       "trailing size token consumed",
			args:       []string{"a", "cat", "1024x1536"},
			wantPrompt: "a cat",
			wantSize:   "1024x1536",
		},
		{
			name:       "no size token means default",
			args:       []string{"a", "cat"},
			wantPrompt: "a cat",
			wantSize:   llm.DefaultImageSize,
		},
		{
			name:      "zero args is a usage error",
			args:      []string{},
			wantUsage: true,
		},
		{
			name:       "auto size",
			args:       []string{"sunset", "auto"},
			wantPrompt: "sunset",
			wantSize:   "auto",
		},
		{
			name:       "size-like token mid-prompt stays in prompt",
			args:       []string{"1024x1024", "pixels", "of", "joy"},
			wantPrompt: "1024x1024 pixels of joy",
			wantSize:   llm.DefaultImageSize,
		},
		{
			name:      "size alone leaves empty prompt",
			args:      []string{"1536x1024"},
			wantUsage: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompt, size, err := ParseImageArgs(tt.args)
			if tt.wantUsage {
				var usage *UsageError
				require.Error(t, err)
				assert.True(t, errors.As(err, &usage))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantPrompt, prompt)
			assert.Equal(t, tt.wantSize, size)
		})
	}
}

func TestImageCommand_CallsAdapterWithParsedArgs(t *testing.T) {
	backend := &mockBackend{locator: "https://img.example/1.png"}
	r := newTestRouter(backend, users.NewRegistry())

	reply, err := dispatch(t, r, "image", "a", "cat", "1024x1536")
	require.NoError(t, err)
	assert.Equal(t, "https://img.example/1.png", reply.Image)
	assert.Equal(t, "a cat", reply.Text)
	assert.Equal(t, "a cat", backend.lastPrompt)
	assert.Equal(t, "1024x1536", backend.lastSize)
}

func TestImageCommand_UsageErrorMakesNoBackendCall(t *testing.T) {
	backend := &mockBackend{}
	r := newTestRouter(backend, users.NewRegistry())

	_, err := dispatch(t, r, "image")
	var usage *UsageError
	require.True(t, errors.As(err, &usage))
	assert.Equal(t, 0, backend.imageCalls)
}

func TestStartCommand_RegistersCallerAndOffersButtons(t *testing.T) {
	registry := users.NewRegistry()
	r := newTestRouter(&mockBackend{}, registry)

	reply, err := dispatch(t, r, "start")
	require.NoError(t, err)
	assert.Contains(t, reply.Text, "gabble")
	require.NotEmpty(t, reply.Buttons)
	assert.True(t, registry.Known(10))
}

func TestModelsCommand_FormatsListing(t *testing.T) {
	backend := &mockBackend{models: []string{"gpt-4o", "gpt-4o-mini"}}
	r := newTestRouter(backend, users.NewRegistry())

	reply, err := dispatch(t, r, "models")
	require.NoError(t, err)
	assert.Equal(t, "Available models:\n- gpt-4o\n- gpt-4o-mini", reply.Text)
}

func TestModelsCommand_AdapterFailurePropagates(t *testing.T) {
	backend := &mockBackend{modelsErr: llm.ErrGeneration}
	r := newTestRouter(backend, users.NewRegistry())

	_, err := dispatch(t, r, "models")
	assert.True(t, errors.Is(err, llm.ErrGeneration))
}

func TestUsersCommand_ReportsCardinality(t *testing.T) {
	registry := users.NewRegistry()
	registry.Register(1)
	registry.Register(2)
	registry.Register(3)
	r := newTestRouter(&mockBackend{}, registry)

	reply, err := dispatch(t, r, "users")
	require.NoError(t, err)
	assert.Equal(t, "3 users have talked to me so far.", reply.Text)
}

func TestRouter_UnknownCommandIsDefensiveUsageReply(t *testing.T) {
	r := newTestRouter(&mockBackend{}, users.NewRegistry())

	_, err := dispatch(t, r, "frobnicate")
	var usage *UsageError
	require.True(t, errors.As(err, &usage))
	assert.Contains(t, usage.Text, "frobnicate")
}

func TestHelpCommand_ListsEverything(t *testing.T) {
	r := newTestRouter(&mockBackend{}, users.NewRegistry())

	reply, err := dispatch(t, r, "help")
	require.NoError(t, err)
	for _, name := range []string{"/start", "/help", "/models", "/image", "/users"} {
		assert.Contains(t, reply.Text, name)
	}
}
