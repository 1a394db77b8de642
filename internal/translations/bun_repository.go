package translations

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

// BunRepository persists translations through bun-backed repositories.
type BunRepository struct {
	db        *bun.DB
	records   repository.Repository[*Record]
	languages repository.Repository[*Language]
	keys      repository.Repository[*DictionaryKey]
	lines     repository.Repository[*DictionaryLine]
}

// NewBunRepository constructs a translation repository backed by bun.
func NewBunRepository(db *bun.DB) *BunRepository {
	return NewBunRepositoryWithCache(db, nil, nil)
}

// NewBunRepositoryWithCache constructs a translation repository backed by bun
// with optional caching.
func NewBunRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunRepository {
	return &BunRepository{
		db:        db,
		records:   wrapWithCache(NewRecordRepository(db), cacheService, keySerializer),
		languages: wrapWithCache(NewLanguageRepository(db), cacheService, keySerializer),
		keys:      wrapWithCache(NewDictionaryKeyRepository(db), cacheService, keySerializer),
		lines:     wrapWithCache(NewDictionaryLineRepository(db), cacheService, keySerializer),
	}
}

var _ Repository = (*BunRepository)(nil)

func (r *BunRepository) GetRecord(ctx context.Context, entityType string, entityID uuid.UUID, field, lang string) (*Record, error) {
	records, _, err := r.records.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.entity_type = ?", entityType).
				Where("?TableAlias.entity_id = ?", entityID).
				Where("?TableAlias.field = ?", field).
				Where("LOWER(?TableAlias.lang) = ?", langFold(lang))
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "translation record", &RecordNotFoundError{EntityType: entityType, Key: entityID.String(), Field: field, Lang: lang})
	}
	if len(records) == 0 {
		return nil, &RecordNotFoundError{EntityType: entityType, Key: entityID.String(), Field: field, Lang: lang}
	}
	return records[0], nil
}

func (r *BunRepository) UpsertRecord(ctx context.Context, record *Record) (*Record, error) {
	existing, err := r.GetRecord(ctx, record.EntityType, record.EntityID, record.Field, record.Lang)
	if err == nil {
		existing.Value = record.Value
		existing.State = record.State
		existing.UpdatedAt = record.UpdatedAt
		updated, err := r.records.Update(ctx, existing,
			repository.UpdateByID(existing.ID.String()),
			repository.UpdateColumns("value", "state", "updated_at"),
		)
		if err != nil {
			return nil, mapRepositoryError(err, "translation record", ErrRecordNotFound)
		}
		return updated, nil
	}

	record.Lang = normalizeLang(record.Lang)
	created, err := r.records.Create(ctx, record)
	if err != nil {
		return nil, mapRepositoryError(err, "translation record", ErrRecordNotFound)
	}
	return created, nil
}

func (r *BunRepository) ListRecords(ctx context.Context, entityType string, entityID uuid.UUID, field string) ([]*Record, error) {
	records, _, err := r.records.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.entity_type = ?", entityType).
				Where("?TableAlias.entity_id = ?", entityID).
				Where("?TableAlias.field = ?", field).
				OrderExpr("?TableAlias.lang ASC")
		}),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "translation record", ErrRecordNotFound)
	}
	return records, nil
}

func (r *BunRepository) CreateLanguage(ctx context.Context, record *Language) (*Language, error) {
	record.Code = normalizeLang(record.Code)
	if _, err := r.GetLanguage(ctx, record.Code); err == nil {
		return nil, ErrLanguageExists
	}
	created, err := r.languages.Create(ctx, record)
	if err != nil {
		return nil, mapRepositoryError(err, "language", ErrLanguageNotFound)
	}
	return created, nil
}

func (r *BunRepository) GetLanguage(ctx context.Context, code string) (*Language, error) {
	records, _, err := r.languages.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("LOWER(?TableAlias.code) = ?", langFold(code))
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "language", ErrLanguageNotFound)
	}
	if len(records) == 0 {
		return nil, ErrLanguageNotFound
	}
	return records[0], nil
}

func (r *BunRepository) ListLanguages(ctx context.Context) ([]*Language, error) {
	records, _, err := r.languages.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.active = TRUE").OrderExpr("?TableAlias.code ASC")
		}),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "language", ErrLanguageNotFound)
	}
	return records, nil
}

func (r *BunRepository) CreateDictionaryKey(ctx context.Context, record *DictionaryKey) (*DictionaryKey, error) {
	if _, err := r.GetDictionaryKey(ctx, record.Key); err == nil {
		return nil, ErrKeyExists
	}
	created, err := r.keys.Create(ctx, record)
	if err != nil {
		return nil, mapRepositoryError(err, "dictionary key", &KeyNotFoundError{Key: record.Key})
	}
	return created, nil
}

func (r *BunRepository) GetDictionaryKey(ctx context.Context, key string) (*DictionaryKey, error) {
	trimmed := strings.TrimSpace(key)
	records, _, err := r.keys.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.key = ?", trimmed).Relation("Lines")
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "dictionary key", &KeyNotFoundError{Key: key})
	}
	if len(records) == 0 {
		return nil, &KeyNotFoundError{Key: key}
	}
	return records[0], nil
}

func (r *BunRepository) ListDictionaryKeys(ctx context.Context) ([]*DictionaryKey, error) {
	records, _, err := r.keys.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.active = TRUE").OrderExpr("?TableAlias.key ASC").Relation("Lines")
		}),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "dictionary key", ErrKeyNotFound)
	}
	return records, nil
}

func (r *BunRepository) UpsertDictionaryLine(ctx context.Context, record *DictionaryLine) (*DictionaryLine, error) {
	record.Lang = normalizeLang(record.Lang)
	existing, _, err := r.lines.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.key_id = ?", record.KeyID).
				Where("LOWER(?TableAlias.lang) = ?", langFold(record.Lang))
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "dictionary line", ErrKeyNotFound)
	}
	if len(existing) > 0 {
		line := existing[0]
		line.Value = record.Value
		line.Active = record.Active
		updated, err := r.lines.Update(ctx, line,
			repository.UpdateByID(line.ID.String()),
			repository.UpdateColumns("value", "active"),
		)
		if err != nil {
			return nil, mapRepositoryError(err, "dictionary line", ErrKeyNotFound)
		}
		return updated, nil
	}
	created, err := r.lines.Create(ctx, record)
	if err != nil {
		return nil, mapRepositoryError(err, "dictionary line", ErrKeyNotFound)
	}
	return created, nil
}

// normalizeLang trims stored language codes; display case is preserved.
func normalizeLang(lang string) string {
	return strings.TrimSpace(lang)
}

// langFold is the lookup form. Both backends match language codes
// case-insensitively, so mixed-case writes land on the same tuple.
func langFold(lang string) string {
	return strings.ToLower(strings.TrimSpace(lang))
}

func mapRepositoryError(err error, resource string, notFound error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return notFound
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
