package assembler

import (
	"github.com/goliatone/go-pagecms/internal/content"
	"github.com/goliatone/go-pagecms/pkg/interfaces"
	"github.com/google/uuid"
)

// PageView is the language-specific, serializable projection of a page. It
// holds no live references to storage.
type PageView struct {
	ID              uuid.UUID   `json:"id"`
	Name            string      `json:"name"`
	Slug            string      `json:"slug"`
	Title           string      `json:"title"`
	MetaDescription string      `json:"meta_description"`
	Blocks          []BlockView `json:"blocks"`
}

// BlockView is one block's resolved payload. Only the fields matching the
// block type are populated; the JSON shape mirrors the public read API.
type BlockView struct {
	ID       uuid.UUID         `json:"id"`
	Name     string            `json:"name"`
	Type     content.BlockType `json:"type"`
	Sequence int               `json:"sequence"`

	// html, text
	Content string `json:"content,omitempty"`

	// heading
	Text  string `json:"text,omitempty"`
	Level string `json:"level,omitempty"`

	// image
	URL string `json:"url,omitempty"`
	Alt string `json:"alt,omitempty"`

	// hero
	Title           string `json:"title,omitempty"`
	Subtitle        string `json:"subtitle,omitempty"`
	ButtonText      string `json:"buttonText,omitempty"`
	ButtonURL       string `json:"buttonUrl,omitempty"`
	BackgroundImage string `json:"backgroundImage,omitempty"`

	// user_list
	Users []interfaces.UserRecord `json:"users,omitempty"`
	Limit int                     `json:"limit,omitempty"`
}

// PageSummary is the list-endpoint projection of a page.
type PageSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Slug  string    `json:"slug"`
	Title string    `json:"title"`
}
