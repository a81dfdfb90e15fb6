// ABOUTME: Tests for config parsing, env expansion, overrides, and validation
// ABOUTME: Uses t.Setenv to isolate environment-dependent behavior

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalYAML = `
telegram:
  token: tg-token
openai:
  api_key: sk-test
`

func TestParse_Minimal(t *testing.T) {
	cfg, err := Parse([]byte(minimalYAML))
	require.NoError(t, err)
	assert.Equal(t, "tg-token", cfg.Telegram.Token)
	assert.Equal(t, "sk-test", cfg.OpenAI.APIKey)
	assert.Equal(t, 0, cfg.History.MaxTurns)
	assert.False(t, cfg.Telegram.Webhook.Enabled)
}

func TestParse_EnvExpansion(t *testing.T) {
	t.Setenv("TEST_TG_TOKEN", "expanded-token")
	cfg, err := Parse([]byte(`
telegram:
  token: ${TEST_TG_TOKEN}
openai:
  api_key: sk-test
`))
	require.NoError(t, err)
	assert.Equal(t, "expanded-token", cfg.Telegram.Token)
}

func TestParse_EnvOverridesWinOverFile(t *testing.T) {
	t.Setenv("GABBLE_TELEGRAM_TOKEN", "override-token")
	t.Setenv("GABBLE_OPENAI_API_KEY", "override-key")

	cfg, err := Parse([]byte(minimalYAML))
	require.NoError(t, err)
	assert.Equal(t, "override-token", cfg.Telegram.Token)
	assert.Equal(t, "override-key", cfg.OpenAI.APIKey)
}

func TestParse_MissingToken(t *testing.T) {
	_, err := Parse([]byte(`
openai:
  api_key: sk-test
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "telegram.token")
}

func TestParse_MissingAPIKey(t *testing.T) {
	_, err := Parse([]byte(`
telegram:
  token: tg-token
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "openai.api_key")
}

func TestParse_WebhookRequiresAddrAndURL(t *testing.T) {
	_, err := Parse([]byte(`
telegram:
  token: tg-token
  webhook:
    enabled: true
openai:
  api_key: sk-test
`))
	require.Error(t, err)
}

func TestParse_WebhookComplete(t *testing.T) {
	cfg, err := Parse([]byte(`
telegram:
  token: tg-token
  webhook:
    enabled: true
    listen_addr: ":8080"
    public_url: https://bot.example.com
    secret: hush
openai:
  api_key: sk-test
history:
  max_turns: 40
logging:
  level: debug
  format: json
`))
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Telegram.Webhook.ListenAddr)
	assert.Equal(t, "https://bot.example.com", cfg.Telegram.Webhook.PublicURL)
	assert.Equal(t, 40, cfg.History.MaxTurns)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestParse_NegativeMaxTurns(t *testing.T) {
	_, err := Parse([]byte(minimalYAML + `
history:
  max_turns: -1
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_turns")
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("telegram: [unbalanced"))
	assert.Error(t, err)
}
