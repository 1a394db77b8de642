package assembler

import (
	"context"

	"github.com/goliatone/go-pagecms/internal/content"
	"github.com/goliatone/go-pagecms/internal/logging"
	"github.com/goliatone/go-pagecms/internal/translations"
	"github.com/goliatone/go-pagecms/pkg/interfaces"
	"github.com/google/uuid"
)

// Service assembles language-specific page views from the content tree and the
// translation resolver.
type Service struct {
	content  *content.Service
	resolver *translations.Service
	users    interfaces.UserDirectory
	logger   interfaces.Logger
}

// Option configures a Service instance.
type Option func(*Service)

// WithLogger injects the assembler logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithUserDirectory provides the source for user_list blocks. When absent,
// user list blocks render with an empty collection.
func WithUserDirectory(users interfaces.UserDirectory) Option {
	return func(s *Service) {
		s.users = users
	}
}

// NewService constructs the assembler.
func NewService(contentSvc *content.Service, resolver *translations.Service, opts ...Option) *Service {
	s := &Service{
		content:  contentSvc,
		resolver: resolver,
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListPages returns summaries for every active page, in display order.
func (s *Service) ListPages(ctx context.Context) ([]PageSummary, error) {
	pages, err := s.content.ListPages(ctx)
	if err != nil {
		return nil, err
	}
	summaries := make([]PageSummary, 0, len(pages))
	for _, page := range pages {
		if !page.Active {
			continue
		}
		summaries = append(summaries, PageSummary{
			ID:    page.ID,
			Name:  page.Name,
			Slug:  page.Slug,
			Title: page.Title,
		})
	}
	return summaries, nil
}

// Assemble builds the full view of an active page in the requested language.
// Inactive pages are treated as absent. An empty lang renders the authoring
// language.
func (s *Service) Assemble(ctx context.Context, slug, lang string) (*PageView, error) {
	page, err := s.content.GetPageBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !page.Active {
		return nil, &content.PageNotFoundError{Key: slug}
	}

	blocks, err := s.content.ListBlocksByPage(ctx, page.ID)
	if err != nil {
		return nil, err
	}

	view := &PageView{
		ID:              page.ID,
		Name:            page.Name,
		Slug:            page.Slug,
		Title:           page.Title,
		MetaDescription: page.MetaDescription,
		Blocks:          make([]BlockView, 0, len(blocks)),
	}
	for _, block := range blocks {
		if !block.Active {
			continue
		}
		blockView, err := s.assembleBlock(ctx, block, lang)
		if err != nil {
			return nil, err
		}
		view.Blocks = append(view.Blocks, blockView)
	}
	return view, nil
}

func (s *Service) assembleBlock(ctx context.Context, block *content.Block, lang string) (BlockView, error) {
	view := BlockView{
		ID:       block.ID,
		Name:     block.Name,
		Type:     block.Type,
		Sequence: block.Sequence,
	}

	switch block.Type {
	case content.BlockTypeHTML:
		value, err := s.resolveRef(ctx, content.EntityBlockHTML, block.HTMLComponentID, content.FieldContent, lang)
		if err != nil {
			return view, err
		}
		view.Content = value
	case content.BlockTypeText:
		value, err := s.resolveRef(ctx, content.EntityBlockText, block.TextComponentID, content.FieldContent, lang)
		if err != nil {
			return view, err
		}
		view.Content = value
	case content.BlockTypeHeading:
		value, err := s.resolveRef(ctx, content.EntityBlockTitle, block.HeadingTitleID, content.FieldTitle, lang)
		if err != nil {
			return view, err
		}
		view.Text = value
		view.Level = block.HeadingLevel
	case content.BlockTypeImage:
		if block.ImageComponentID != nil {
			url, err := s.content.ImageURL(ctx, *block.ImageComponentID)
			if err != nil {
				return view, err
			}
			view.URL = url
		}
		alt, err := s.resolveRef(ctx, content.EntityBlockImage, block.ImageComponentID, content.FieldAlt, lang)
		if err != nil {
			return view, err
		}
		view.Alt = alt
	case content.BlockTypeHero:
		title, err := s.resolveRef(ctx, content.EntityBlockTitle, block.HeroTitleID, content.FieldTitle, lang)
		if err != nil {
			return view, err
		}
		subtitle, err := s.resolveRef(ctx, content.EntityBlockTitle, block.HeroSubtitleID, content.FieldTitle, lang)
		if err != nil {
			return view, err
		}
		buttonText, err := s.resolveRef(ctx, content.EntityBlockTitle, block.HeroButtonTextID, content.FieldTitle, lang)
		if err != nil {
			return view, err
		}
		view.Title = title
		view.Subtitle = subtitle
		view.ButtonText = buttonText
		view.ButtonURL = block.HeroButtonURL
		view.BackgroundImage = block.HeroBackgroundImage
	case content.BlockTypeUserList:
		view.Limit = block.Limit
		view.Users = s.listUsers(ctx, block.Limit)
	}
	return view, nil
}

// resolveRef tolerates missing component references: a block whose component
// was never provisioned renders as empty instead of failing the whole page.
func (s *Service) resolveRef(ctx context.Context, entityType string, entityID *uuid.UUID, field, lang string) (string, error) {
	if entityID == nil {
		return "", nil
	}
	return s.resolver.Resolve(ctx, entityType, *entityID, field, lang)
}

func (s *Service) listUsers(ctx context.Context, limit int) []interfaces.UserRecord {
	if s.users == nil {
		return []interfaces.UserRecord{}
	}
	if limit <= 0 {
		limit = content.DefaultUserListLimit
	}
	users, err := s.users.ListUsers(ctx, limit)
	if err != nil {
		s.logger.Warn("assembler.users.failed", "error", err)
		return []interfaces.UserRecord{}
	}
	return users
}
