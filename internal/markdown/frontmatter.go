package markdown

import (
	"bytes"
	"fmt"

	"github.com/adrg/frontmatter"
)

// FrontMatter carries the page attributes declared at the top of a Markdown
// document.
type FrontMatter struct {
	Name            string `yaml:"name"`
	Slug            string `yaml:"slug"`
	Title           string `yaml:"title"`
	MetaDescription string `yaml:"meta_description"`
	Sequence        int    `yaml:"sequence"`
	Draft           bool   `yaml:"draft"`
}

// ParseFrontMatter extracts metadata and the Markdown body from the provided
// source bytes. The body comes back without the frontmatter delimiters.
func ParseFrontMatter(source []byte) (FrontMatter, []byte, error) {
	var meta FrontMatter
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return FrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	return meta, body, nil
}
