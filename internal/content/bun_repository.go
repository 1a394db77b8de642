package content

import (
	"context"
	"fmt"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunRepository persists the content tree through bun-backed repositories.
type BunRepository struct {
	db              *bun.DB
	pages           repository.Repository[*Page]
	blocks          repository.Repository[*Block]
	titleComponents repository.Repository[*TitleComponent]
	textComponents  repository.Repository[*TextComponent]
	htmlComponents  repository.Repository[*HtmlComponent]
	imageComponents repository.Repository[*ImageComponent]
}

// NewBunRepository constructs a content repository backed by bun.
func NewBunRepository(db *bun.DB) *BunRepository {
	return NewBunRepositoryWithCache(db, nil, nil)
}

// NewBunRepositoryWithCache constructs a content repository backed by bun with optional caching.
func NewBunRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunRepository {
	return &BunRepository{
		db:              db,
		pages:           wrapWithCache(NewPageRepository(db), cacheService, keySerializer),
		blocks:          wrapWithCache(NewBlockRepository(db), cacheService, keySerializer),
		titleComponents: wrapWithCache(NewTitleComponentRepository(db), cacheService, keySerializer),
		textComponents:  wrapWithCache(NewTextComponentRepository(db), cacheService, keySerializer),
		htmlComponents:  wrapWithCache(NewHtmlComponentRepository(db), cacheService, keySerializer),
		imageComponents: wrapWithCache(NewImageComponentRepository(db), cacheService, keySerializer),
	}
}

var _ Repository = (*BunRepository)(nil)

func (r *BunRepository) CreatePage(ctx context.Context, record *Page) (*Page, error) {
	if existing, err := r.GetPageBySlug(ctx, record.Slug); err == nil && existing != nil {
		return nil, ErrSlugExists
	}
	created, err := r.pages.Create(ctx, record)
	if err != nil {
		return nil, mapRepositoryError(err, "page", record.Slug, &PageNotFoundError{Key: record.Slug})
	}
	return created, nil
}

func (r *BunRepository) GetPageByID(ctx context.Context, id uuid.UUID) (*Page, error) {
	result, err := r.pages.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "page", id.String(), &PageNotFoundError{Key: id.String()})
	}
	return result, nil
}

func (r *BunRepository) GetPageBySlug(ctx context.Context, slug string) (*Page, error) {
	normalized := strings.ToLower(strings.TrimSpace(slug))
	records, _, err := r.pages.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.slug = ?", normalized)
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "page", slug, &PageNotFoundError{Key: slug})
	}
	if len(records) == 0 {
		return nil, &PageNotFoundError{Key: slug}
	}
	return records[0], nil
}

func (r *BunRepository) ListPages(ctx context.Context) ([]*Page, error) {
	records, _, err := r.pages.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.OrderExpr("?TableAlias.sequence ASC, ?TableAlias.id ASC")
	}))
	if err != nil {
		return nil, mapRepositoryError(err, "page", "", &PageNotFoundError{})
	}
	return records, nil
}

func (r *BunRepository) UpdatePage(ctx context.Context, record *Page) (*Page, error) {
	updated, err := r.pages.Update(ctx, record,
		repository.UpdateByID(record.ID.String()),
		repository.UpdateColumns(
			"name",
			"title",
			"meta_description",
			"active",
			"sequence",
			"updated_at",
		),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "page", record.ID.String(), &PageNotFoundError{Key: record.ID.String()})
	}
	return updated, nil
}

func (r *BunRepository) DeletePage(ctx context.Context, id uuid.UUID) error {
	if r.db == nil {
		return fmt.Errorf("content repository: database not configured")
	}

	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*Block)(nil)).
			Where("?TableAlias.page_id = ?", id).
			Exec(ctx); err != nil {
			return fmt.Errorf("delete page blocks: %w", err)
		}

		result, err := tx.NewDelete().
			Model((*Page)(nil)).
			Where("?TableAlias.id = ?", id).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("delete page: %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("page delete rows affected: %w", err)
		}
		if affected == 0 {
			return &PageNotFoundError{Key: id.String()}
		}
		return nil
	})
}

func (r *BunRepository) CreateBlock(ctx context.Context, record *Block) (*Block, error) {
	created, err := r.blocks.Create(ctx, record)
	if err != nil {
		return nil, mapRepositoryError(err, "block", record.ID.String(), &BlockNotFoundError{Key: record.ID.String()})
	}
	return created, nil
}

func (r *BunRepository) GetBlockByID(ctx context.Context, id uuid.UUID) (*Block, error) {
	result, err := r.blocks.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "block", id.String(), &BlockNotFoundError{Key: id.String()})
	}
	return result, nil
}

func (r *BunRepository) UpdateBlock(ctx context.Context, record *Block) (*Block, error) {
	updated, err := r.blocks.Update(ctx, record,
		repository.UpdateByID(record.ID.String()),
		repository.UpdateColumns(
			"name",
			"block_type",
			"sequence",
			"active",
			"html_component_id",
			"text_component_id",
			"heading_title_id",
			"heading_level",
			"image_component_id",
			"hero_title_id",
			"hero_subtitle_id",
			"hero_button_text_id",
			"hero_button_url",
			"hero_background_image",
			"item_limit",
			"updated_at",
		),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "block", record.ID.String(), &BlockNotFoundError{Key: record.ID.String()})
	}
	return updated, nil
}

func (r *BunRepository) DeleteBlock(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.NewDelete().
		Model((*Block)(nil)).
		Where("?TableAlias.id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete block: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("block delete rows affected: %w", err)
	}
	if affected == 0 {
		return &BlockNotFoundError{Key: id.String()}
	}
	return nil
}

func (r *BunRepository) ListBlocksByPage(ctx context.Context, pageID uuid.UUID) ([]*Block, error) {
	records, _, err := r.blocks.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.page_id = ?", pageID).
				OrderExpr("?TableAlias.sequence ASC, ?TableAlias.id ASC")
		}),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "block", pageID.String(), &BlockNotFoundError{Key: pageID.String()})
	}
	return records, nil
}

func (r *BunRepository) CreateTitleComponent(ctx context.Context, record *TitleComponent) (*TitleComponent, error) {
	created, err := r.titleComponents.Create(ctx, record)
	if err != nil {
		return nil, mapRepositoryError(err, "title component", record.ID.String(), &ComponentNotFoundError{EntityType: EntityBlockTitle, Key: record.ID.String()})
	}
	return created, nil
}

func (r *BunRepository) GetTitleComponent(ctx context.Context, id uuid.UUID) (*TitleComponent, error) {
	result, err := r.titleComponents.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "title component", id.String(), &ComponentNotFoundError{EntityType: EntityBlockTitle, Key: id.String()})
	}
	return result, nil
}

func (r *BunRepository) UpdateTitleComponent(ctx context.Context, record *TitleComponent) (*TitleComponent, error) {
	updated, err := r.titleComponents.Update(ctx, record,
		repository.UpdateByID(record.ID.String()),
		repository.UpdateColumns("title", "updated_at"),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "title component", record.ID.String(), &ComponentNotFoundError{EntityType: EntityBlockTitle, Key: record.ID.String()})
	}
	return updated, nil
}

func (r *BunRepository) CreateTextComponent(ctx context.Context, record *TextComponent) (*TextComponent, error) {
	created, err := r.textComponents.Create(ctx, record)
	if err != nil {
		return nil, mapRepositoryError(err, "text component", record.ID.String(), &ComponentNotFoundError{EntityType: EntityBlockText, Key: record.ID.String()})
	}
	return created, nil
}

func (r *BunRepository) GetTextComponent(ctx context.Context, id uuid.UUID) (*TextComponent, error) {
	result, err := r.textComponents.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "text component", id.String(), &ComponentNotFoundError{EntityType: EntityBlockText, Key: id.String()})
	}
	return result, nil
}

func (r *BunRepository) UpdateTextComponent(ctx context.Context, record *TextComponent) (*TextComponent, error) {
	updated, err := r.textComponents.Update(ctx, record,
		repository.UpdateByID(record.ID.String()),
		repository.UpdateColumns("content", "updated_at"),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "text component", record.ID.String(), &ComponentNotFoundError{EntityType: EntityBlockText, Key: record.ID.String()})
	}
	return updated, nil
}

func (r *BunRepository) CreateHtmlComponent(ctx context.Context, record *HtmlComponent) (*HtmlComponent, error) {
	created, err := r.htmlComponents.Create(ctx, record)
	if err != nil {
		return nil, mapRepositoryError(err, "html component", record.ID.String(), &ComponentNotFoundError{EntityType: EntityBlockHTML, Key: record.ID.String()})
	}
	return created, nil
}

func (r *BunRepository) GetHtmlComponent(ctx context.Context, id uuid.UUID) (*HtmlComponent, error) {
	result, err := r.htmlComponents.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "html component", id.String(), &ComponentNotFoundError{EntityType: EntityBlockHTML, Key: id.String()})
	}
	return result, nil
}

func (r *BunRepository) UpdateHtmlComponent(ctx context.Context, record *HtmlComponent) (*HtmlComponent, error) {
	updated, err := r.htmlComponents.Update(ctx, record,
		repository.UpdateByID(record.ID.String()),
		repository.UpdateColumns("content", "updated_at"),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "html component", record.ID.String(), &ComponentNotFoundError{EntityType: EntityBlockHTML, Key: record.ID.String()})
	}
	return updated, nil
}

func (r *BunRepository) CreateImageComponent(ctx context.Context, record *ImageComponent) (*ImageComponent, error) {
	created, err := r.imageComponents.Create(ctx, record)
	if err != nil {
		return nil, mapRepositoryError(err, "image component", record.ID.String(), &ComponentNotFoundError{EntityType: EntityBlockImage, Key: record.ID.String()})
	}
	return created, nil
}

func (r *BunRepository) GetImageComponent(ctx context.Context, id uuid.UUID) (*ImageComponent, error) {
	result, err := r.imageComponents.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "image component", id.String(), &ComponentNotFoundError{EntityType: EntityBlockImage, Key: id.String()})
	}
	return result, nil
}

func (r *BunRepository) UpdateImageComponent(ctx context.Context, record *ImageComponent) (*ImageComponent, error) {
	updated, err := r.imageComponents.Update(ctx, record,
		repository.UpdateByID(record.ID.String()),
		repository.UpdateColumns("url", "alt", "updated_at"),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "image component", record.ID.String(), &ComponentNotFoundError{EntityType: EntityBlockImage, Key: record.ID.String()})
	}
	return updated, nil
}

func mapRepositoryError(err error, resource, key string, notFound error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return notFound
	}
	return fmt.Errorf("%s repository error (%s): %w", resource, key, err)
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
