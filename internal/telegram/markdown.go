// ABOUTME: Renders model-produced Markdown into Telegram's HTML subset
// ABOUTME: Strips tags Telegram rejects, keeping bold/italic/code/links

package telegram

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.Strikethrough),
)

// Telegram accepts only a small HTML subset: b, strong, i, em, u, s, del,
// code, pre, a, and blockquote. Everything else must be stripped, not
// escaped, or the API rejects the message.
var (
	allowedTag = regexp.MustCompile(`^</?(b|strong|i|em|u|s|del|code|pre|a|blockquote)(\s|>|/>)`)
	anyTag     = regexp.MustCompile(`</?[a-zA-Z][^>]*>`)

	paragraphClose = strings.NewReplacer(
		"</p>", "\n",
		"</li>", "\n",
		"</h1>", "\n", "</h2>", "\n", "</h3>", "\n",
		"</h4>", "\n", "</h5>", "\n", "</h6>", "\n",
		"<li>", "• ",
		"<br>", "\n", "<br/>", "\n", "<br />", "\n",
		"<hr>", "\n", "<hr/>", "\n", "<hr />", "\n",
	)
)

// RenderHTML converts Markdown text to Telegram-compatible HTML. The second
// return is false when rendering failed or produced nothing useful, in
// which case the caller should send the original text without a parse mode.
func RenderHTML(text string) (string, bool) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(text), &buf); err != nil {
		return "", false
	}

	out := paragraphClose.Replace(buf.String())
	out = anyTag.ReplaceAllStringFunc(out, func(tag string) string {
		if allowedTag.MatchString(tag) {
			return tag
		}
		return ""
	})
	out = strings.TrimSpace(out)
	if out == "" {
		return "", false
	}
	return out, true
}
