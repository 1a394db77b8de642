package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// Parser renders Markdown bodies into the HTML stored on page blocks. It is
// stateless, so one instance can be shared across imports without locking.
type Parser struct {
	engine goldmark.Markdown
}

// NewParser constructs a parser with GFM extensions and raw HTML passthrough,
// since imported documents feed rich-text HTML components.
func NewParser() *Parser {
	return &Parser{
		engine: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.Linkify,
				extension.TaskList,
			),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
			goldmark.WithRendererOptions(
				html.WithUnsafe(),
			),
		),
	}
}

// Render converts a Markdown body into HTML.
func (p *Parser) Render(source []byte) (string, error) {
	var buf bytes.Buffer
	if err := p.engine.Convert(source, &buf); err != nil {
		return "", fmt.Errorf("markdown parse: %w", err)
	}
	return buf.String(), nil
}
