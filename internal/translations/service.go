package translations

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/goliatone/go-pagecms/internal/identity"
	"github.com/goliatone/go-pagecms/internal/logging"
	"github.com/goliatone/go-pagecms/pkg/interfaces"
	"github.com/google/uuid"
)

// ComponentFields is the narrow seam through which translation storage reads
// and writes the base-language value stored directly on a component.
type ComponentFields interface {
	ComponentField(ctx context.Context, entityType string, entityID uuid.UUID, field string) (string, error)
	SetComponentField(ctx context.Context, entityType string, entityID uuid.UUID, field, value string) error
}

// Service implements fallback-aware translation resolution on top of the
// repository, plus the flat dictionary table and language listing.
type Service struct {
	repo       Repository
	components ComponentFields
	baseLang   string
	logger     interfaces.Logger
	now        func() time.Time
	newID      func() uuid.UUID
}

// Option configures a Service instance.
type Option func(*Service)

// WithLogger injects the translations logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithBaseLanguage overrides the authoring language. Defaults to en_US.
func WithBaseLanguage(code string) Option {
	return func(s *Service) {
		if strings.TrimSpace(code) != "" {
			s.baseLang = strings.TrimSpace(code)
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

// NewService constructs the translation service. The component accessor is
// required: base-language values live on components, not in the record table.
func NewService(repo Repository, components ComponentFields, opts ...Option) (*Service, error) {
	if components == nil {
		return nil, ErrComponentsRequired
	}
	s := &Service{
		repo:       repo,
		components: components,
		baseLang:   BaseLanguage,
		logger:     logging.NoOp(),
		now:        time.Now,
		newID:      uuid.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// BaseLang returns the authoring language code.
func (s *Service) BaseLang() string {
	return s.baseLang
}

// Resolve returns the display value for a component field in the requested
// language. The fallback chain is deterministic: requested-language record,
// base-language record, then the component's own base value. It never invents
// values; an empty base yields an empty string.
func (s *Service) Resolve(ctx context.Context, entityType string, entityID uuid.UUID, field, requestedLang string) (string, error) {
	requestedLang = strings.TrimSpace(requestedLang)
	if requestedLang == "" || strings.EqualFold(requestedLang, s.baseLang) {
		return s.components.ComponentField(ctx, entityType, entityID, field)
	}

	if record, err := s.repo.GetRecord(ctx, entityType, entityID, field, requestedLang); err == nil {
		if record.Value != "" {
			return record.Value, nil
		}
	} else if !errors.Is(err, ErrRecordNotFound) {
		return "", err
	}

	// Base-language records are redundant with the component value but are
	// honoured for uniformity when present.
	if record, err := s.repo.GetRecord(ctx, entityType, entityID, field, s.baseLang); err == nil {
		if record.Value != "" {
			return record.Value, nil
		}
	} else if !errors.Is(err, ErrRecordNotFound) {
		return "", err
	}

	return s.components.ComponentField(ctx, entityType, entityID, field)
}

// Get returns the stored record for the exact (entity, field, lang) tuple.
func (s *Service) Get(ctx context.Context, entityType string, entityID uuid.UUID, field, lang string) (*Record, error) {
	return s.repo.GetRecord(ctx, entityType, entityID, field, lang)
}

// Set upserts one field's value in one language. Base-language writes go to
// the component's own field rather than a translation record.
func (s *Service) Set(ctx context.Context, entityType string, entityID uuid.UUID, field, lang, value, state string) error {
	if entityID == uuid.Nil || entityType == "" || field == "" {
		return ErrEntityRequired
	}
	lang = strings.TrimSpace(lang)
	if lang == "" {
		return ErrLangRequired
	}
	if strings.EqualFold(lang, s.baseLang) {
		return s.components.SetComponentField(ctx, entityType, entityID, field, value)
	}
	if state == "" {
		state = StateHuman
	}
	now := s.now()
	_, err := s.repo.UpsertRecord(ctx, &Record{
		ID:         s.newID(),
		EntityType: entityType,
		EntityID:   entityID,
		Field:      field,
		Lang:       lang,
		Value:      value,
		State:      state,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	return err
}

// ListLanguages returns every active language.
func (s *Service) ListLanguages(ctx context.Context) ([]*Language, error) {
	return s.repo.ListLanguages(ctx)
}

// TargetLanguages returns every active language except the base language.
func (s *Service) TargetLanguages(ctx context.Context) ([]*Language, error) {
	languages, err := s.repo.ListLanguages(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*Language, 0, len(languages))
	for _, language := range languages {
		if strings.EqualFold(language.Code, s.baseLang) {
			continue
		}
		out = append(out, language)
	}
	return out, nil
}

// AddLanguage registers a display language. Codes are unique, so the id is
// derived from the code and stays stable across environments.
func (s *Service) AddLanguage(ctx context.Context, code, name, isoCode string) (*Language, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ErrLangRequired
	}
	return s.repo.CreateLanguage(ctx, &Language{
		ID:      identity.LanguageUUID(code),
		Code:    code,
		Name:    strings.TrimSpace(name),
		ISOCode: strings.TrimSpace(isoCode),
		Active:  true,
	})
}

// AddDictionaryKey registers a flat translation key. Keys are unique, so the
// id is derived from the key like language ids.
func (s *Service) AddDictionaryKey(ctx context.Context, key, description string) (*DictionaryKey, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, ErrKeyRequired
	}
	return s.repo.CreateDictionaryKey(ctx, &DictionaryKey{
		ID:          identity.DictionaryKeyUUID(key),
		Key:         key,
		Description: strings.TrimSpace(description),
		Active:      true,
	})
}

// SetDictionaryValue upserts one language's value for a dictionary key.
func (s *Service) SetDictionaryValue(ctx context.Context, key, lang, value string) error {
	lang = strings.TrimSpace(lang)
	if lang == "" {
		return ErrLangRequired
	}
	if strings.TrimSpace(value) == "" {
		return ErrValueRequired
	}
	record, err := s.repo.GetDictionaryKey(ctx, key)
	if err != nil {
		return err
	}
	_, err = s.repo.UpsertDictionaryLine(ctx, &DictionaryLine{
		ID:     s.newID(),
		KeyID:  record.ID,
		Lang:   lang,
		Value:  value,
		Active: true,
	})
	return err
}

// Translations resolves every active dictionary key for the requested
// language: requested language first, then the base language, then the key
// string itself as the final literal fallback.
func (s *Service) Translations(ctx context.Context, lang string) (map[string]string, error) {
	keys, err := s.repo.ListDictionaryKeys(ctx)
	if err != nil {
		return nil, err
	}
	lang = strings.TrimSpace(lang)

	out := make(map[string]string, len(keys))
	for _, key := range keys {
		out[key.Key] = resolveDictionaryKey(key, lang, s.baseLang)
	}
	return out, nil
}

func resolveDictionaryKey(key *DictionaryKey, lang, baseLang string) string {
	if line := findLine(key.Lines, lang); line != nil {
		return line.Value
	}
	if line := findLine(key.Lines, baseLang); line != nil {
		return line.Value
	}
	return key.Key
}

func findLine(lines []*DictionaryLine, lang string) *DictionaryLine {
	for _, line := range lines {
		if line.Active && strings.EqualFold(line.Lang, lang) {
			return line
		}
	}
	return nil
}
