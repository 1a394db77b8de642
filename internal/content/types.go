package content

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BlockType enumerates the closed set of block variants. Every consumer
// dispatches on this type with an exhaustive switch.
type BlockType string

const (
	BlockTypeHTML     BlockType = "html"
	BlockTypeText     BlockType = "text"
	BlockTypeHeading  BlockType = "heading"
	BlockTypeImage    BlockType = "image"
	BlockTypeUserList BlockType = "user_list"
	BlockTypeHero     BlockType = "hero"
)

// BlockTypes lists every known block variant in declaration order.
func BlockTypes() []BlockType {
	return []BlockType{
		BlockTypeHTML,
		BlockTypeText,
		BlockTypeHeading,
		BlockTypeImage,
		BlockTypeUserList,
		BlockTypeHero,
	}
}

// Valid reports whether the value names a known block variant.
func (t BlockType) Valid() bool {
	switch t {
	case BlockTypeHTML, BlockTypeText, BlockTypeHeading, BlockTypeImage, BlockTypeUserList, BlockTypeHero:
		return true
	default:
		return false
	}
}

// Entity type identifiers used to address components in translation records.
const (
	EntityBlockTitle = "block_title"
	EntityBlockText  = "block_text"
	EntityBlockHTML  = "block_html"
	EntityBlockImage = "block_image"
)

// Translatable component field names.
const (
	FieldTitle   = "title"
	FieldContent = "content"
	FieldAlt     = "alt"
)

// DefaultUserListLimit bounds dynamic user list blocks when no limit is set.
const DefaultUserListLimit = 10

// Page is the root of the content tree. The slug is unique across all pages
// and immutable once created.
type Page struct {
	bun.BaseModel `bun:"table:pages,alias:p"`

	ID              uuid.UUID `bun:",pk,type:uuid" json:"id"`
	Name            string    `bun:"name,notnull" json:"name"`
	Slug            string    `bun:"slug,notnull,unique" json:"slug"`
	Title           string    `bun:"title" json:"title"`
	MetaDescription string    `bun:"meta_description" json:"meta_description"`
	Active          bool      `bun:"active,notnull,default:true" json:"active"`
	Sequence        int       `bun:"sequence,notnull,default:10" json:"sequence"`
	CreatedAt       time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt       time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`

	Blocks []*Block `bun:"rel:has-many,join:id=page_id" json:"blocks,omitempty"`
}

// Block is an ordered content unit owned by a page. Exactly one component
// reference set matches the block type; stale references from earlier type
// switches are kept so their content retains history.
type Block struct {
	bun.BaseModel `bun:"table:blocks,alias:b"`

	ID       uuid.UUID `bun:",pk,type:uuid" json:"id"`
	PageID   uuid.UUID `bun:"page_id,notnull,type:uuid" json:"page_id"`
	Name     string    `bun:"name,notnull" json:"name"`
	Type     BlockType `bun:"block_type,notnull" json:"type"`
	Sequence int       `bun:"sequence,notnull,default:10" json:"sequence"`
	Active   bool      `bun:"active,notnull,default:true" json:"active"`

	HTMLComponentID  *uuid.UUID `bun:"html_component_id,type:uuid" json:"html_component_id,omitempty"`
	TextComponentID  *uuid.UUID `bun:"text_component_id,type:uuid" json:"text_component_id,omitempty"`
	HeadingTitleID   *uuid.UUID `bun:"heading_title_id,type:uuid" json:"heading_title_id,omitempty"`
	HeadingLevel     string     `bun:"heading_level,default:'h2'" json:"heading_level,omitempty"`
	ImageComponentID *uuid.UUID `bun:"image_component_id,type:uuid" json:"image_component_id,omitempty"`

	HeroTitleID         *uuid.UUID `bun:"hero_title_id,type:uuid" json:"hero_title_id,omitempty"`
	HeroSubtitleID      *uuid.UUID `bun:"hero_subtitle_id,type:uuid" json:"hero_subtitle_id,omitempty"`
	HeroButtonTextID    *uuid.UUID `bun:"hero_button_text_id,type:uuid" json:"hero_button_text_id,omitempty"`
	HeroButtonURL       string     `bun:"hero_button_url" json:"hero_button_url,omitempty"`
	HeroBackgroundImage string     `bun:"hero_background_image" json:"hero_background_image,omitempty"`

	Limit int `bun:"item_limit,notnull,default:10" json:"limit,omitempty"`

	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// TitleComponent holds a short localizable string. It backs headings as well
// as hero titles, subtitles, and button labels.
type TitleComponent struct {
	bun.BaseModel `bun:"table:title_components,alias:tc"`

	ID        uuid.UUID `bun:",pk,type:uuid" json:"id"`
	Title     string    `bun:"title" json:"title"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// TextComponent holds localizable plain text.
type TextComponent struct {
	bun.BaseModel `bun:"table:text_components,alias:xc"`

	ID        uuid.UUID `bun:",pk,type:uuid" json:"id"`
	Content   string    `bun:"content" json:"content"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// HtmlComponent holds localizable rich text.
type HtmlComponent struct {
	bun.BaseModel `bun:"table:html_components,alias:hc"`

	ID        uuid.UUID `bun:",pk,type:uuid" json:"id"`
	Content   string    `bun:"content" json:"content"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// ImageComponent holds an image URL plus a localizable alt text. The URL is
// not localizable.
type ImageComponent struct {
	bun.BaseModel `bun:"table:image_components,alias:ic"`

	ID        uuid.UUID `bun:",pk,type:uuid" json:"id"`
	URL       string    `bun:"url" json:"url"`
	Alt       string    `bun:"alt" json:"alt"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// ComponentRef addresses one translatable component field on a block.
type ComponentRef struct {
	EntityType string    `json:"entity_type"`
	EntityID   uuid.UUID `json:"entity_id"`
	Field      string    `json:"field"`
	Label      string    `json:"label"`
}

// TranslatableRefs returns the component references carrying translatable
// fields for the block, in display order. The mapping is the per-type field
// table: html/text expose content, heading exposes its title, hero exposes
// title, subtitle, and button text, image exposes alt. User list blocks carry
// no translatable fields.
func (b *Block) TranslatableRefs() []ComponentRef {
	if b == nil {
		return nil
	}
	refs := []ComponentRef{}
	switch b.Type {
	case BlockTypeHTML:
		if b.HTMLComponentID != nil {
			refs = append(refs, ComponentRef{EntityBlockHTML, *b.HTMLComponentID, FieldContent, "HTML Content"})
		}
	case BlockTypeText:
		if b.TextComponentID != nil {
			refs = append(refs, ComponentRef{EntityBlockText, *b.TextComponentID, FieldContent, "Text Content"})
		}
	case BlockTypeHeading:
		if b.HeadingTitleID != nil {
			refs = append(refs, ComponentRef{EntityBlockTitle, *b.HeadingTitleID, FieldTitle, "Heading"})
		}
	case BlockTypeImage:
		if b.ImageComponentID != nil {
			refs = append(refs, ComponentRef{EntityBlockImage, *b.ImageComponentID, FieldAlt, "Image Alt Text"})
		}
	case BlockTypeHero:
		if b.HeroTitleID != nil {
			refs = append(refs, ComponentRef{EntityBlockTitle, *b.HeroTitleID, FieldTitle, "Hero Title"})
		}
		if b.HeroSubtitleID != nil {
			refs = append(refs, ComponentRef{EntityBlockTitle, *b.HeroSubtitleID, FieldTitle, "Hero Subtitle"})
		}
		if b.HeroButtonTextID != nil {
			refs = append(refs, ComponentRef{EntityBlockTitle, *b.HeroButtonTextID, FieldTitle, "Button Text"})
		}
	case BlockTypeUserList:
	}
	return refs
}
