// ABOUTME: Tests for Markdown to Telegram HTML rendering
// ABOUTME: Verifies allowed tags survive and unsupported tags are stripped

package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderHTML_Emphasis(t *testing.T) {
	out, ok := RenderHTML("some **bold** and *italic* text")
	require.True(t, ok)
	assert.Contains(t, out, "<strong>bold</strong>")
	assert.Contains(t, out, "<em>italic</em>")
	assert.NotContains(t, out, "<p>")
}

func TestRenderHTML_CodeBlock(t *testing.T) {
	out, ok := RenderHTML("```\nfmt.Println(\"hi\")\n```")
	require.True(t, ok)
	assert.Contains(t, out, "<pre>")
	assert.Contains(t, out, "<code>")
	// Goldmark escapes text content, which Telegram requires
	assert.Contains(t, out, "&quot;hi&quot;")
}

func TestRenderHTML_InlineCodeAndStrikethrough(t *testing.T) {
	out, ok := RenderHTML("use `go test` and ~~skip~~ run it")
	require.True(t, ok)
	assert.Contains(t, out, "<code>go test</code>")
	assert.Contains(t, out, "<del>skip</del>")
}

func TestRenderHTML_HeadingsAndListsAreFlattened(t *testing.T) {
	out, ok := RenderHTML("# Title\n\n- one\n- two")
	require.True(t, ok)
	assert.NotContains(t, out, "<h1>")
	assert.NotContains(t, out, "<ul>")
	assert.NotContains(t, out, "<li>")
	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "• one")
	assert.Contains(t, out, "• two")
}

func TestRenderHTML_LinksSurvive(t *testing.T) {
	out, ok := RenderHTML("[docs](https://example.com)")
	require.True(t, ok)
	assert.Contains(t, out, `<a href="https://example.com">docs</a>`)
}

func TestRenderHTML_PlainTextPassesThrough(t *testing.T) {
	out, ok := RenderHTML("just words")
	require.True(t, ok)
	assert.Equal(t, "just words", out)
}

func TestRenderHTML_EmptyInput(t *testing.T) {
	_, ok := RenderHTML("")
	assert.False(t, ok)
}
