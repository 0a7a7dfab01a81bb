package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderMarkdown(t *testing.T) {
	html, err := RenderMarkdown("# Başlık\n\nSome **bold** text")

	require.NoError(t, err)
	assert.Contains(t, html, "<h1>")
	assert.Contains(t, html, "<strong>bold</strong>")
}

func TestRenderMarkdownCodeBlock(t *testing.T) {
	html, err := RenderMarkdown("```go\nfunc main() {}\n```")

	require.NoError(t, err)
	assert.Contains(t, html, "<pre>")
}

func TestStripHTML(t *testing.T) {
	plain := StripHTML("<p>Hello <b>world</b></p>")

	assert.Equal(t, "Hello world", plain)
}

func TestStripHTMLNoTags(t *testing.T) {
	assert.Equal(t, "düz metin", StripHTML("düz metin"))
}
