package translations

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// MemoryRepository is an in-memory translation store for scaffolding/tests.
type MemoryRepository struct {
	mu        sync.RWMutex
	records   map[string]*Record
	languages map[string]*Language
	keys      map[string]*DictionaryKey
	lines     map[string]*DictionaryLine
}

// NewMemoryRepository constructs the repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		records:   make(map[string]*Record),
		languages: make(map[string]*Language),
		keys:      make(map[string]*DictionaryKey),
		lines:     make(map[string]*DictionaryLine),
	}
}

var _ Repository = (*MemoryRepository)(nil)

func recordKey(entityType string, entityID uuid.UUID, field, lang string) string {
	return entityType + "|" + entityID.String() + "|" + field + "|" + strings.ToLower(lang)
}

func lineKey(keyID uuid.UUID, lang string) string {
	return keyID.String() + "|" + strings.ToLower(lang)
}

func (m *MemoryRepository) GetRecord(_ context.Context, entityType string, entityID uuid.UUID, field, lang string) (*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	record, ok := m.records[recordKey(entityType, entityID, field, lang)]
	if !ok {
		return nil, &RecordNotFoundError{EntityType: entityType, Key: entityID.String(), Field: field, Lang: lang}
	}
	copied := *record
	return &copied, nil
}

func (m *MemoryRepository) UpsertRecord(_ context.Context, record *Record) (*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := recordKey(record.EntityType, record.EntityID, record.Field, record.Lang)
	if existing, ok := m.records[key]; ok {
		// Overwrite in place, keeping the original identity and creation time.
		updated := *existing
		updated.Value = record.Value
		updated.State = record.State
		updated.UpdatedAt = record.UpdatedAt
		m.records[key] = &updated
		copied := updated
		return &copied, nil
	}
	copied := *record
	m.records[key] = &copied
	out := copied
	return &out, nil
}

func (m *MemoryRepository) ListRecords(_ context.Context, entityType string, entityID uuid.UUID, field string) ([]*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []*Record{}
	for _, record := range m.records {
		if record.EntityType == entityType && record.EntityID == entityID && record.Field == field {
			copied := *record
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Lang < out[j].Lang })
	return out, nil
}

func (m *MemoryRepository) CreateLanguage(_ context.Context, record *Language) (*Language, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	code := strings.ToLower(strings.TrimSpace(record.Code))
	if _, ok := m.languages[code]; ok {
		return nil, ErrLanguageExists
	}
	copied := *record
	m.languages[code] = &copied
	out := copied
	return &out, nil
}

func (m *MemoryRepository) GetLanguage(_ context.Context, code string) (*Language, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	record, ok := m.languages[strings.ToLower(strings.TrimSpace(code))]
	if !ok {
		return nil, ErrLanguageNotFound
	}
	copied := *record
	return &copied, nil
}

func (m *MemoryRepository) ListLanguages(_ context.Context) ([]*Language, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []*Language{}
	for _, record := range m.languages {
		if !record.Active {
			continue
		}
		copied := *record
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (m *MemoryRepository) CreateDictionaryKey(_ context.Context, record *DictionaryKey) (*DictionaryKey, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := strings.TrimSpace(record.Key)
	if _, ok := m.keys[key]; ok {
		return nil, ErrKeyExists
	}
	copied := cloneDictionaryKey(record)
	m.keys[key] = copied
	return cloneDictionaryKey(copied), nil
}

func (m *MemoryRepository) GetDictionaryKey(_ context.Context, key string) (*DictionaryKey, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	record, ok := m.keys[strings.TrimSpace(key)]
	if !ok {
		return nil, &KeyNotFoundError{Key: key}
	}
	return m.attachLines(cloneDictionaryKey(record)), nil
}

func (m *MemoryRepository) ListDictionaryKeys(_ context.Context) ([]*DictionaryKey, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []*DictionaryKey{}
	for _, record := range m.keys {
		if !record.Active {
			continue
		}
		out = append(out, m.attachLines(cloneDictionaryKey(record)))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (m *MemoryRepository) UpsertDictionaryLine(_ context.Context, record *DictionaryLine) (*DictionaryLine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := lineKey(record.KeyID, record.Lang)
	if existing, ok := m.lines[key]; ok {
		updated := *existing
		updated.Value = record.Value
		updated.Active = record.Active
		m.lines[key] = &updated
		copied := updated
		return &copied, nil
	}
	copied := *record
	m.lines[key] = &copied
	out := copied
	return &out, nil
}

func (m *MemoryRepository) attachLines(record *DictionaryKey) *DictionaryKey {
	if record == nil {
		return nil
	}
	lines := []*DictionaryLine{}
	for _, line := range m.lines {
		if line.KeyID == record.ID {
			copied := *line
			lines = append(lines, &copied)
		}
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].Lang < lines[j].Lang })
	record.Lines = lines
	return record
}

func cloneDictionaryKey(record *DictionaryKey) *DictionaryKey {
	if record == nil {
		return nil
	}
	copied := *record
	copied.Lines = nil
	return &copied
}
