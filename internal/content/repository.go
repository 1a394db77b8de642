package content

import (
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

func NewPageRepository(db *bun.DB) repository.Repository[*Page] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Page]{
		NewRecord: func() *Page { return &Page{} },
		GetID: func(p *Page) uuid.UUID {
			return p.ID
		},
		SetID: func(p *Page, id uuid.UUID) {
			p.ID = id
		},
		GetIdentifier: func() string {
			return "slug"
		},
		GetIdentifierValue: func(p *Page) string {
			return p.Slug
		},
	})
}

func NewBlockRepository(db *bun.DB) repository.Repository[*Block] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Block]{
		NewRecord: func() *Block { return &Block{} },
		GetID: func(b *Block) uuid.UUID {
			return b.ID
		},
		SetID: func(b *Block, id uuid.UUID) {
			b.ID = id
		},
	})
}

func NewTitleComponentRepository(db *bun.DB) repository.Repository[*TitleComponent] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*TitleComponent]{
		NewRecord: func() *TitleComponent { return &TitleComponent{} },
		GetID: func(c *TitleComponent) uuid.UUID {
			return c.ID
		},
		SetID: func(c *TitleComponent, id uuid.UUID) {
			c.ID = id
		},
	})
}

func NewTextComponentRepository(db *bun.DB) repository.Repository[*TextComponent] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*TextComponent]{
		NewRecord: func() *TextComponent { return &TextComponent{} },
		GetID: func(c *TextComponent) uuid.UUID {
			return c.ID
		},
		SetID: func(c *TextComponent, id uuid.UUID) {
			c.ID = id
		},
	})
}

func NewHtmlComponentRepository(db *bun.DB) repository.Repository[*HtmlComponent] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*HtmlComponent]{
		NewRecord: func() *HtmlComponent { return &HtmlComponent{} },
		GetID: func(c *HtmlComponent) uuid.UUID {
			return c.ID
		},
		SetID: func(c *HtmlComponent, id uuid.UUID) {
			c.ID = id
		},
	})
}

func NewImageComponentRepository(db *bun.DB) repository.Repository[*ImageComponent] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*ImageComponent]{
		NewRecord: func() *ImageComponent { return &ImageComponent{} },
		GetID: func(c *ImageComponent) uuid.UUID {
			return c.ID
		},
		SetID: func(c *ImageComponent, id uuid.UUID) {
			c.ID = id
		},
	})
}
