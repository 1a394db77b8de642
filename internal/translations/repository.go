package translations

import (
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

func NewRecordRepository(db *bun.DB) repository.Repository[*Record] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Record]{
		NewRecord: func() *Record { return &Record{} },
		GetID: func(r *Record) uuid.UUID {
			return r.ID
		},
		SetID: func(r *Record, id uuid.UUID) {
			r.ID = id
		},
	})
}

func NewLanguageRepository(db *bun.DB) repository.Repository[*Language] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Language]{
		NewRecord: func() *Language { return &Language{} },
		GetID: func(l *Language) uuid.UUID {
			return l.ID
		},
		SetID: func(l *Language, id uuid.UUID) {
			l.ID = id
		},
		GetIdentifier: func() string {
			return "code"
		},
		GetIdentifierValue: func(l *Language) string {
			return l.Code
		},
	})
}

func NewDictionaryKeyRepository(db *bun.DB) repository.Repository[*DictionaryKey] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*DictionaryKey]{
		NewRecord: func() *DictionaryKey { return &DictionaryKey{} },
		GetID: func(k *DictionaryKey) uuid.UUID {
			return k.ID
		},
		SetID: func(k *DictionaryKey, id uuid.UUID) {
			k.ID = id
		},
		GetIdentifier: func() string {
			return "key"
		},
		GetIdentifierValue: func(k *DictionaryKey) string {
			return k.Key
		},
	})
}

func NewDictionaryLineRepository(db *bun.DB) repository.Repository[*DictionaryLine] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*DictionaryLine]{
		NewRecord: func() *DictionaryLine { return &DictionaryLine{} },
		GetID: func(l *DictionaryLine) uuid.UUID {
			return l.ID
		},
		SetID: func(l *DictionaryLine, id uuid.UUID) {
			l.ID = id
		},
	})
}
