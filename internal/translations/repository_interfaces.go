package translations

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the persistence contract for translation records, languages,
// and the dictionary table.
type Repository interface {
	// GetRecord returns the record for the unique
	// (entityType, entityID, field, lang) tuple.
	GetRecord(ctx context.Context, entityType string, entityID uuid.UUID, field, lang string) (*Record, error)
	// UpsertRecord inserts or overwrites the record for its unique tuple.
	// Records are never deleted, only overwritten.
	UpsertRecord(ctx context.Context, record *Record) (*Record, error)
	ListRecords(ctx context.Context, entityType string, entityID uuid.UUID, field string) ([]*Record, error)

	CreateLanguage(ctx context.Context, record *Language) (*Language, error)
	GetLanguage(ctx context.Context, code string) (*Language, error)
	// ListLanguages returns active languages ordered by code.
	ListLanguages(ctx context.Context) ([]*Language, error)

	CreateDictionaryKey(ctx context.Context, record *DictionaryKey) (*DictionaryKey, error)
	GetDictionaryKey(ctx context.Context, key string) (*DictionaryKey, error)
	// ListDictionaryKeys returns active keys with their lines attached.
	ListDictionaryKeys(ctx context.Context) ([]*DictionaryKey, error)
	// UpsertDictionaryLine inserts or overwrites the line for its unique
	// (key, lang) pair.
	UpsertDictionaryLine(ctx context.Context, record *DictionaryLine) (*DictionaryLine, error)
}
