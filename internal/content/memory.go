package content

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// MemoryRepository is an in-memory content store for scaffolding/tests.
type MemoryRepository struct {
	mu              sync.RWMutex
	pages           map[uuid.UUID]*Page
	slugIndex       map[string]uuid.UUID
	blocks          map[uuid.UUID]*Block
	titleComponents map[uuid.UUID]*TitleComponent
	textComponents  map[uuid.UUID]*TextComponent
	htmlComponents  map[uuid.UUID]*HtmlComponent
	imageComponents map[uuid.UUID]*ImageComponent
}

// NewMemoryRepository constructs the repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		pages:           make(map[uuid.UUID]*Page),
		slugIndex:       make(map[string]uuid.UUID),
		blocks:          make(map[uuid.UUID]*Block),
		titleComponents: make(map[uuid.UUID]*TitleComponent),
		textComponents:  make(map[uuid.UUID]*TextComponent),
		htmlComponents:  make(map[uuid.UUID]*HtmlComponent),
		imageComponents: make(map[uuid.UUID]*ImageComponent),
	}
}

var _ Repository = (*MemoryRepository)(nil)

func (m *MemoryRepository) CreatePage(_ context.Context, record *Page) (*Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := slugKey(record.Slug)
	if _, exists := m.slugIndex[key]; exists {
		return nil, ErrSlugExists
	}
	copied := clonePage(record)
	m.pages[copied.ID] = copied
	m.slugIndex[key] = copied.ID
	return clonePage(copied), nil
}

func (m *MemoryRepository) GetPageByID(_ context.Context, id uuid.UUID) (*Page, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	page, ok := m.pages[id]
	if !ok {
		return nil, &PageNotFoundError{Key: id.String()}
	}
	return clonePage(page), nil
}

func (m *MemoryRepository) GetPageBySlug(_ context.Context, slug string) (*Page, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.slugIndex[slugKey(slug)]
	if !ok {
		return nil, &PageNotFoundError{Key: slug}
	}
	return clonePage(m.pages[id]), nil
}

func (m *MemoryRepository) ListPages(_ context.Context) ([]*Page, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Page, 0, len(m.pages))
	for _, record := range m.pages {
		out = append(out, clonePage(record))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Sequence != out[j].Sequence {
			return out[i].Sequence < out[j].Sequence
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

func (m *MemoryRepository) UpdatePage(_ context.Context, record *Page) (*Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.pages[record.ID]
	if !ok {
		return nil, &PageNotFoundError{Key: record.ID.String()}
	}

	updated := clonePage(current)
	updated.Name = record.Name
	updated.Title = record.Title
	updated.MetaDescription = record.MetaDescription
	updated.Active = record.Active
	updated.Sequence = record.Sequence
	updated.UpdatedAt = record.UpdatedAt

	m.pages[record.ID] = updated
	return clonePage(updated), nil
}

func (m *MemoryRepository) DeletePage(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	record, ok := m.pages[id]
	if !ok {
		return &PageNotFoundError{Key: id.String()}
	}
	delete(m.slugIndex, slugKey(record.Slug))
	delete(m.pages, id)
	for blockID, block := range m.blocks {
		if block.PageID == id {
			delete(m.blocks, blockID)
		}
	}
	return nil
}

func (m *MemoryRepository) CreateBlock(_ context.Context, record *Block) (*Block, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.pages[record.PageID]; !ok {
		return nil, &PageNotFoundError{Key: record.PageID.String()}
	}
	copied := cloneBlock(record)
	m.blocks[copied.ID] = copied
	return cloneBlock(copied), nil
}

func (m *MemoryRepository) GetBlockByID(_ context.Context, id uuid.UUID) (*Block, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	block, ok := m.blocks[id]
	if !ok {
		return nil, &BlockNotFoundError{Key: id.String()}
	}
	return cloneBlock(block), nil
}

func (m *MemoryRepository) UpdateBlock(_ context.Context, record *Block) (*Block, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.blocks[record.ID]; !ok {
		return nil, &BlockNotFoundError{Key: record.ID.String()}
	}
	copied := cloneBlock(record)
	m.blocks[copied.ID] = copied
	return cloneBlock(copied), nil
}

func (m *MemoryRepository) DeleteBlock(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.blocks[id]; !ok {
		return &BlockNotFoundError{Key: id.String()}
	}
	delete(m.blocks, id)
	return nil
}

func (m *MemoryRepository) ListBlocksByPage(_ context.Context, pageID uuid.UUID) ([]*Block, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []*Block{}
	for _, block := range m.blocks {
		if block.PageID == pageID {
			out = append(out, cloneBlock(block))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Sequence != out[j].Sequence {
			return out[i].Sequence < out[j].Sequence
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

func (m *MemoryRepository) CreateTitleComponent(_ context.Context, record *TitleComponent) (*TitleComponent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *record
	m.titleComponents[copied.ID] = &copied
	out := copied
	return &out, nil
}

func (m *MemoryRepository) GetTitleComponent(_ context.Context, id uuid.UUID) (*TitleComponent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	record, ok := m.titleComponents[id]
	if !ok {
		return nil, &ComponentNotFoundError{EntityType: EntityBlockTitle, Key: id.String()}
	}
	out := *record
	return &out, nil
}

func (m *MemoryRepository) UpdateTitleComponent(_ context.Context, record *TitleComponent) (*TitleComponent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.titleComponents[record.ID]; !ok {
		return nil, &ComponentNotFoundError{EntityType: EntityBlockTitle, Key: record.ID.String()}
	}
	copied := *record
	m.titleComponents[copied.ID] = &copied
	out := copied
	return &out, nil
}

func (m *MemoryRepository) CreateTextComponent(_ context.Context, record *TextComponent) (*TextComponent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *record
	m.textComponents[copied.ID] = &copied
	out := copied
	return &out, nil
}

func (m *MemoryRepository) GetTextComponent(_ context.Context, id uuid.UUID) (*TextComponent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	record, ok := m.textComponents[id]
	if !ok {
		return nil, &ComponentNotFoundError{EntityType: EntityBlockText, Key: id.String()}
	}
	out := *record
	return &out, nil
}

func (m *MemoryRepository) UpdateTextComponent(_ context.Context, record *TextComponent) (*TextComponent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.textComponents[record.ID]; !ok {
		return nil, &ComponentNotFoundError{EntityType: EntityBlockText, Key: record.ID.String()}
	}
	copied := *record
	m.textComponents[copied.ID] = &copied
	out := copied
	return &out, nil
}

func (m *MemoryRepository) CreateHtmlComponent(_ context.Context, record *HtmlComponent) (*HtmlComponent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *record
	m.htmlComponents[copied.ID] = &copied
	out := copied
	return &out, nil
}

func (m *MemoryRepository) GetHtmlComponent(_ context.Context, id uuid.UUID) (*HtmlComponent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	record, ok := m.htmlComponents[id]
	if !ok {
		return nil, &ComponentNotFoundError{EntityType: EntityBlockHTML, Key: id.String()}
	}
	out := *record
	return &out, nil
}

func (m *MemoryRepository) UpdateHtmlComponent(_ context.Context, record *HtmlComponent) (*HtmlComponent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.htmlComponents[record.ID]; !ok {
		return nil, &ComponentNotFoundError{EntityType: EntityBlockHTML, Key: record.ID.String()}
	}
	copied := *record
	m.htmlComponents[copied.ID] = &copied
	out := copied
	return &out, nil
}

func (m *MemoryRepository) CreateImageComponent(_ context.Context, record *ImageComponent) (*ImageComponent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *record
	m.imageComponents[copied.ID] = &copied
	out := copied
	return &out, nil
}

func (m *MemoryRepository) GetImageComponent(_ context.Context, id uuid.UUID) (*ImageComponent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	record, ok := m.imageComponents[id]
	if !ok {
		return nil, &ComponentNotFoundError{EntityType: EntityBlockImage, Key: id.String()}
	}
	out := *record
	return &out, nil
}

func (m *MemoryRepository) UpdateImageComponent(_ context.Context, record *ImageComponent) (*ImageComponent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.imageComponents[record.ID]; !ok {
		return nil, &ComponentNotFoundError{EntityType: EntityBlockImage, Key: record.ID.String()}
	}
	copied := *record
	m.imageComponents[copied.ID] = &copied
	out := copied
	return &out, nil
}

func slugKey(slug string) string {
	return strings.ToLower(strings.TrimSpace(slug))
}

func clonePage(record *Page) *Page {
	if record == nil {
		return nil
	}
	copied := *record
	copied.Blocks = nil
	return &copied
}

func cloneBlock(record *Block) *Block {
	if record == nil {
		return nil
	}
	copied := *record
	copied.HTMLComponentID = cloneUUIDPointer(record.HTMLComponentID)
	copied.TextComponentID = cloneUUIDPointer(record.TextComponentID)
	copied.HeadingTitleID = cloneUUIDPointer(record.HeadingTitleID)
	copied.ImageComponentID = cloneUUIDPointer(record.ImageComponentID)
	copied.HeroTitleID = cloneUUIDPointer(record.HeroTitleID)
	copied.HeroSubtitleID = cloneUUIDPointer(record.HeroSubtitleID)
	copied.HeroButtonTextID = cloneUUIDPointer(record.HeroButtonTextID)
	return &copied
}

func cloneUUIDPointer(value *uuid.UUID) *uuid.UUID {
	if value == nil {
		return nil
	}
	copied := *value
	return &copied
}
