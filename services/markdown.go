package services

import (
	"bytes"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var (
	markdown    = goldmark.New(goldmark.WithExtensions(extension.GFM))
	stripPolicy = bluemonday.StrictPolicy()
)

// Markdown içeriği HTML'e çevirir
func RenderMarkdown(source string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// HTML içeriğinden tüm etiketleri temizleyip düz metni döner
func StripHTML(source string) string {
	stripped := stripPolicy.Sanitize(source)
	return strings.TrimSpace(html.UnescapeString(stripped))
}
