package content

import (
	"context"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-pagecms/internal/identity"
	"github.com/goliatone/go-pagecms/internal/logging"
	"github.com/goliatone/go-pagecms/pkg/interfaces"
	slug "github.com/goliatone/go-slug"
	"github.com/google/uuid"
)

// Service exposes CRUD operations over the content tree and owns component
// provisioning for blocks.
type Service struct {
	repo   Repository
	logger interfaces.Logger
	now    func() time.Time
	newID  func() uuid.UUID
}

// Option configures a Service instance.
type Option func(*Service)

// WithLogger injects the content logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the time source, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides uuid generation, mainly for deterministic tests.
func WithIDGenerator(gen func() uuid.UUID) Option {
	return func(s *Service) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// NewService constructs the content service.
func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{
		repo:   repo,
		logger: logging.NoOp(),
		now:    time.Now,
		newID:  uuid.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreatePageInput captures the attributes accepted when creating a page.
// ID is optional; seeders pass a derived id so reseeded content keeps a
// stable identity.
type CreatePageInput struct {
	ID              uuid.UUID
	Name            string
	Slug            string
	Title           string
	MetaDescription string
	Sequence        int
	Active          *bool
}

// Validate ensures required page attributes are present.
func (in CreatePageInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required.Error(ErrNameRequired.Error())),
		validation.Field(&in.Slug, validation.Required.Error(ErrSlugRequired.Error())),
	)
}

// CreatePage validates and persists a new page. The slug is normalized and
// must be unique; it is immutable afterwards.
func (s *Service) CreatePage(ctx context.Context, input CreatePageInput) (*Page, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	normalized, err := slug.Normalize(input.Slug)
	if err != nil || !slug.IsValid(normalized) {
		return nil, ErrSlugInvalid
	}

	active := true
	if input.Active != nil {
		active = *input.Active
	}
	sequence := input.Sequence
	if sequence == 0 {
		sequence = 10
	}

	id := input.ID
	if id == uuid.Nil {
		id = s.newID()
	}

	now := s.now()
	record := &Page{
		ID:              id,
		Name:            strings.TrimSpace(input.Name),
		Slug:            normalized,
		Title:           strings.TrimSpace(input.Title),
		MetaDescription: input.MetaDescription,
		Active:          active,
		Sequence:        sequence,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	created, err := s.repo.CreatePage(ctx, record)
	if err != nil {
		return nil, err
	}
	s.logger.Info("content.page.created", "slug", created.Slug, "id", created.ID)
	return created, nil
}

// UpdatePageInput captures mutable page attributes. The slug is intentionally
// absent; it cannot change after creation.
type UpdatePageInput struct {
	Name            *string
	Title           *string
	MetaDescription *string
	Active          *bool
	Sequence        *int
}

// UpdatePage applies the provided attribute changes to a page.
func (s *Service) UpdatePage(ctx context.Context, id uuid.UUID, input UpdatePageInput) (*Page, error) {
	record, err := s.repo.GetPageByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, ErrNameRequired
		}
		record.Name = strings.TrimSpace(*input.Name)
	}
	if input.Title != nil {
		record.Title = strings.TrimSpace(*input.Title)
	}
	if input.MetaDescription != nil {
		record.MetaDescription = *input.MetaDescription
	}
	if input.Active != nil {
		record.Active = *input.Active
	}
	if input.Sequence != nil {
		record.Sequence = *input.Sequence
	}
	record.UpdatedAt = s.now()
	return s.repo.UpdatePage(ctx, record)
}

// GetPageBySlug fetches a page by its unique slug.
func (s *Service) GetPageBySlug(ctx context.Context, pageSlug string) (*Page, error) {
	return s.repo.GetPageBySlug(ctx, strings.TrimSpace(pageSlug))
}

// GetPageByID fetches a page by identifier.
func (s *Service) GetPageByID(ctx context.Context, id uuid.UUID) (*Page, error) {
	return s.repo.GetPageByID(ctx, id)
}

// ListPages returns every page ordered by (sequence, id).
func (s *Service) ListPages(ctx context.Context) ([]*Page, error) {
	return s.repo.ListPages(ctx)
}

// DeletePage removes a page and its blocks.
func (s *Service) DeletePage(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeletePage(ctx, id); err != nil {
		return err
	}
	s.logger.Info("content.page.deleted", "id", id)
	return nil
}

// CreateBlockInput captures the attributes accepted when creating a block.
// ID is optional, like CreatePageInput.ID.
type CreateBlockInput struct {
	ID                  uuid.UUID
	PageID              uuid.UUID
	Name                string
	Type                BlockType
	Sequence            int
	Active              *bool
	HeadingLevel        string
	HeroButtonURL       string
	HeroBackgroundImage string
	ImageURL            string
	Limit               int
}

// Validate ensures required block attributes are present and the type is known.
func (in CreateBlockInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required.Error(ErrNameRequired.Error())),
		validation.Field(&in.Type, validation.By(func(any) error {
			if !in.Type.Valid() {
				return ErrBlockTypeInvalid
			}
			return nil
		})),
		validation.Field(&in.PageID, validation.By(func(any) error {
			if in.PageID == uuid.Nil {
				return ErrPageRequired
			}
			return nil
		})),
	)
}

// CreateBlock validates, provisions the type's components, and persists a new
// block on the page.
func (s *Service) CreateBlock(ctx context.Context, input CreateBlockInput) (*Block, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	active := true
	if input.Active != nil {
		active = *input.Active
	}
	sequence := input.Sequence
	if sequence == 0 {
		sequence = 10
	}
	limit := input.Limit
	if limit <= 0 {
		limit = DefaultUserListLimit
	}

	id := input.ID
	if id == uuid.Nil {
		id = s.newID()
	}

	now := s.now()
	record := &Block{
		ID:                  id,
		PageID:              input.PageID,
		Name:                strings.TrimSpace(input.Name),
		Type:                input.Type,
		Sequence:            sequence,
		Active:              active,
		HeadingLevel:        normalizeHeadingLevel(input.HeadingLevel),
		HeroButtonURL:       input.HeroButtonURL,
		HeroBackgroundImage: input.HeroBackgroundImage,
		Limit:               limit,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := s.ensureComponents(ctx, record, input.ImageURL); err != nil {
		return nil, err
	}

	created, err := s.repo.CreateBlock(ctx, record)
	if err != nil {
		return nil, err
	}
	s.logger.Info("content.block.created", "id", created.ID, "type", created.Type)
	return created, nil
}

// UpdateBlockInput captures mutable block attributes. The type changes
// through ChangeBlockType so components are provisioned alongside.
type UpdateBlockInput struct {
	Name                *string
	Sequence            *int
	Active              *bool
	HeadingLevel        *string
	HeroButtonURL       *string
	HeroBackgroundImage *string
	Limit               *int
}

// UpdateBlock applies the provided attribute changes to a block.
func (s *Service) UpdateBlock(ctx context.Context, id uuid.UUID, input UpdateBlockInput) (*Block, error) {
	record, err := s.repo.GetBlockByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, ErrNameRequired
		}
		record.Name = strings.TrimSpace(*input.Name)
	}
	if input.Sequence != nil {
		record.Sequence = *input.Sequence
	}
	if input.Active != nil {
		record.Active = *input.Active
	}
	if input.HeadingLevel != nil {
		record.HeadingLevel = *input.HeadingLevel
	}
	if input.HeroButtonURL != nil {
		record.HeroButtonURL = *input.HeroButtonURL
	}
	if input.HeroBackgroundImage != nil {
		record.HeroBackgroundImage = *input.HeroBackgroundImage
	}
	if input.Limit != nil {
		record.Limit = *input.Limit
	}
	record.UpdatedAt = s.now()
	return s.repo.UpdateBlock(ctx, record)
}

// GetBlockByID fetches a block by identifier.
func (s *Service) GetBlockByID(ctx context.Context, id uuid.UUID) (*Block, error) {
	return s.repo.GetBlockByID(ctx, id)
}

// ListBlocksByPage returns a page's blocks in render order.
func (s *Service) ListBlocksByPage(ctx context.Context, pageID uuid.UUID) ([]*Block, error) {
	return s.repo.ListBlocksByPage(ctx, pageID)
}

// DeleteBlock removes a block. Its components are kept.
func (s *Service) DeleteBlock(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteBlock(ctx, id)
}

// ChangeBlockType switches the block to a new variant, provisioning the
// matching components when absent. Components for the previous type are left
// in place so their content retains history.
func (s *Service) ChangeBlockType(ctx context.Context, id uuid.UUID, newType BlockType) (*Block, error) {
	if !newType.Valid() {
		return nil, ErrBlockTypeInvalid
	}
	record, err := s.repo.GetBlockByID(ctx, id)
	if err != nil {
		return nil, err
	}
	record.Type = newType
	if err := s.ensureComponents(ctx, record, ""); err != nil {
		return nil, err
	}
	record.UpdatedAt = s.now()
	return s.repo.UpdateBlock(ctx, record)
}

// ensureComponents provisions the component records required by the block's
// type. It is idempotent: existing references are left untouched. Component
// ids are derived from the block id and slot, so a block created with a
// seeded id provisions the same component ids on every run.
func (s *Service) ensureComponents(ctx context.Context, block *Block, imageURL string) error {
	componentID := func(slot string) uuid.UUID {
		return identity.ComponentUUID(slot, block.ID.String())
	}
	switch block.Type {
	case BlockTypeHTML:
		if block.HTMLComponentID == nil {
			component, err := s.repo.CreateHtmlComponent(ctx, &HtmlComponent{ID: componentID("html"), CreatedAt: s.now(), UpdatedAt: s.now()})
			if err != nil {
				return err
			}
			block.HTMLComponentID = &component.ID
		}
	case BlockTypeText:
		if block.TextComponentID == nil {
			component, err := s.repo.CreateTextComponent(ctx, &TextComponent{ID: componentID("text"), CreatedAt: s.now(), UpdatedAt: s.now()})
			if err != nil {
				return err
			}
			block.TextComponentID = &component.ID
		}
	case BlockTypeHeading:
		if block.HeadingTitleID == nil {
			component, err := s.repo.CreateTitleComponent(ctx, &TitleComponent{ID: componentID("heading_title"), CreatedAt: s.now(), UpdatedAt: s.now()})
			if err != nil {
				return err
			}
			block.HeadingTitleID = &component.ID
		}
	case BlockTypeImage:
		if block.ImageComponentID == nil {
			component, err := s.repo.CreateImageComponent(ctx, &ImageComponent{ID: componentID("image"), URL: imageURL, CreatedAt: s.now(), UpdatedAt: s.now()})
			if err != nil {
				return err
			}
			block.ImageComponentID = &component.ID
		}
	case BlockTypeHero:
		slots := []struct {
			target **uuid.UUID
			slot   string
		}{
			{&block.HeroTitleID, "hero_title"},
			{&block.HeroSubtitleID, "hero_subtitle"},
			{&block.HeroButtonTextID, "hero_button_text"},
		}
		for _, entry := range slots {
			if *entry.target != nil {
				continue
			}
			component, err := s.repo.CreateTitleComponent(ctx, &TitleComponent{ID: componentID(entry.slot), CreatedAt: s.now(), UpdatedAt: s.now()})
			if err != nil {
				return err
			}
			id := component.ID
			*entry.target = &id
		}
	case BlockTypeUserList:
		// No components; the block embeds dynamic records at read time.
	}
	return nil
}

// ComponentField reads the base-language value of a component field.
func (s *Service) ComponentField(ctx context.Context, entityType string, entityID uuid.UUID, field string) (string, error) {
	switch entityType {
	case EntityBlockTitle:
		record, err := s.repo.GetTitleComponent(ctx, entityID)
		if err != nil {
			return "", err
		}
		if field != FieldTitle {
			return "", ErrFieldInvalid
		}
		return record.Title, nil
	case EntityBlockText:
		record, err := s.repo.GetTextComponent(ctx, entityID)
		if err != nil {
			return "", err
		}
		if field != FieldContent {
			return "", ErrFieldInvalid
		}
		return record.Content, nil
	case EntityBlockHTML:
		record, err := s.repo.GetHtmlComponent(ctx, entityID)
		if err != nil {
			return "", err
		}
		if field != FieldContent {
			return "", ErrFieldInvalid
		}
		return record.Content, nil
	case EntityBlockImage:
		record, err := s.repo.GetImageComponent(ctx, entityID)
		if err != nil {
			return "", err
		}
		if field != FieldAlt {
			return "", ErrFieldInvalid
		}
		return record.Alt, nil
	default:
		return "", ErrEntityTypeInvalid
	}
}

// SetComponentField writes the base-language value of a component field.
func (s *Service) SetComponentField(ctx context.Context, entityType string, entityID uuid.UUID, field, value string) error {
	switch entityType {
	case EntityBlockTitle:
		record, err := s.repo.GetTitleComponent(ctx, entityID)
		if err != nil {
			return err
		}
		if field != FieldTitle {
			return ErrFieldInvalid
		}
		record.Title = value
		record.UpdatedAt = s.now()
		_, err = s.repo.UpdateTitleComponent(ctx, record)
		return err
	case EntityBlockText:
		record, err := s.repo.GetTextComponent(ctx, entityID)
		if err != nil {
			return err
		}
		if field != FieldContent {
			return ErrFieldInvalid
		}
		record.Content = value
		record.UpdatedAt = s.now()
		_, err = s.repo.UpdateTextComponent(ctx, record)
		return err
	case EntityBlockHTML:
		record, err := s.repo.GetHtmlComponent(ctx, entityID)
		if err != nil {
			return err
		}
		if field != FieldContent {
			return ErrFieldInvalid
		}
		record.Content = value
		record.UpdatedAt = s.now()
		_, err = s.repo.UpdateHtmlComponent(ctx, record)
		return err
	case EntityBlockImage:
		record, err := s.repo.GetImageComponent(ctx, entityID)
		if err != nil {
			return err
		}
		if field != FieldAlt {
			return ErrFieldInvalid
		}
		record.Alt = value
		record.UpdatedAt = s.now()
		_, err = s.repo.UpdateImageComponent(ctx, record)
		return err
	default:
		return ErrEntityTypeInvalid
	}
}

// ImageURL reads the non-localizable URL stored on an image component.
func (s *Service) ImageURL(ctx context.Context, entityID uuid.UUID) (string, error) {
	record, err := s.repo.GetImageComponent(ctx, entityID)
	if err != nil {
		return "", err
	}
	return record.URL, nil
}

// SetImageURL updates the non-localizable URL on an image component.
func (s *Service) SetImageURL(ctx context.Context, entityID uuid.UUID, url string) error {
	record, err := s.repo.GetImageComponent(ctx, entityID)
	if err != nil {
		return err
	}
	record.URL = strings.TrimSpace(url)
	record.UpdatedAt = s.now()
	_, err = s.repo.UpdateImageComponent(ctx, record)
	return err
}

func normalizeHeadingLevel(level string) string {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "h1":
		return "h1"
	case "h2", "":
		return "h2"
	case "h3":
		return "h3"
	case "h4":
		return "h4"
	default:
		return "h2"
	}
}
