package content

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the persistence contract for the content tree.
type Repository interface {
	CreatePage(ctx context.Context, record *Page) (*Page, error)
	GetPageByID(ctx context.Context, id uuid.UUID) (*Page, error)
	GetPageBySlug(ctx context.Context, slug string) (*Page, error)
	ListPages(ctx context.Context) ([]*Page, error)
	UpdatePage(ctx context.Context, record *Page) (*Page, error)
	// DeletePage removes the page and cascades deletion of its blocks.
	// Components referenced by deleted blocks are kept.
	DeletePage(ctx context.Context, id uuid.UUID) error

	CreateBlock(ctx context.Context, record *Block) (*Block, error)
	GetBlockByID(ctx context.Context, id uuid.UUID) (*Block, error)
	UpdateBlock(ctx context.Context, record *Block) (*Block, error)
	DeleteBlock(ctx context.Context, id uuid.UUID) error
	// ListBlocksByPage returns the page's blocks ordered by (sequence, id) ascending.
	ListBlocksByPage(ctx context.Context, pageID uuid.UUID) ([]*Block, error)

	CreateTitleComponent(ctx context.Context, record *TitleComponent) (*TitleComponent, error)
	GetTitleComponent(ctx context.Context, id uuid.UUID) (*TitleComponent, error)
	UpdateTitleComponent(ctx context.Context, record *TitleComponent) (*TitleComponent, error)

	CreateTextComponent(ctx context.Context, record *TextComponent) (*TextComponent, error)
	GetTextComponent(ctx context.Context, id uuid.UUID) (*TextComponent, error)
	UpdateTextComponent(ctx context.Context, record *TextComponent) (*TextComponent, error)

	CreateHtmlComponent(ctx context.Context, record *HtmlComponent) (*HtmlComponent, error)
	GetHtmlComponent(ctx context.Context, id uuid.UUID) (*HtmlComponent, error)
	UpdateHtmlComponent(ctx context.Context, record *HtmlComponent) (*HtmlComponent, error)

	CreateImageComponent(ctx context.Context, record *ImageComponent) (*ImageComponent, error)
	GetImageComponent(ctx context.Context, id uuid.UUID) (*ImageComponent, error)
	UpdateImageComponent(ctx context.Context, record *ImageComponent) (*ImageComponent, error)
}
