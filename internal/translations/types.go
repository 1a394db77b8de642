package translations

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BaseLanguage is the language content is authored in. Its values live on the
// component records themselves; translation records exist only for other
// languages.
const BaseLanguage = "en_US"

// Translation states.
const (
	StateMachine = "machine_translated"
	StateHuman   = "human_translated"
)

// Record stores one field's value in one non-base language. The
// (entity_type, entity_id, field, lang) tuple is unique; writes upsert.
type Record struct {
	bun.BaseModel `bun:"table:translation_records,alias:tr"`

	ID         uuid.UUID `bun:",pk,type:uuid" json:"id"`
	EntityType string    `bun:"entity_type,notnull" json:"entity_type"`
	EntityID   uuid.UUID `bun:"entity_id,notnull,type:uuid" json:"entity_id"`
	Field      string    `bun:"field,notnull" json:"field"`
	Lang       string    `bun:"lang,notnull" json:"lang"`
	Value      string    `bun:"value" json:"value"`
	State      string    `bun:"state,notnull,default:'machine_translated'" json:"state"`
	CreatedAt  time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt  time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// Language describes an available display language.
type Language struct {
	bun.BaseModel `bun:"table:languages,alias:lg"`

	ID      uuid.UUID `bun:",pk,type:uuid" json:"id"`
	Code    string    `bun:"code,notnull,unique" json:"code"`
	Name    string    `bun:"name,notnull" json:"name"`
	ISOCode string    `bun:"iso_code" json:"iso_code"`
	Active  bool      `bun:"active,notnull,default:true" json:"active"`
}

// DictionaryKey is a flat translation key independent of the content tree,
// e.g. "nav.home". The key string itself is the final fallback.
type DictionaryKey struct {
	bun.BaseModel `bun:"table:dictionary_keys,alias:dk"`

	ID          uuid.UUID `bun:",pk,type:uuid" json:"id"`
	Key         string    `bun:"key,notnull,unique" json:"key"`
	Description string    `bun:"description" json:"description,omitempty"`
	Active      bool      `bun:"active,notnull,default:true" json:"active"`

	Lines []*DictionaryLine `bun:"rel:has-many,join:id=key_id" json:"lines,omitempty"`
}

// DictionaryLine is one language's value for a dictionary key; (key, lang)
// is unique.
type DictionaryLine struct {
	bun.BaseModel `bun:"table:dictionary_lines,alias:dl"`

	ID     uuid.UUID `bun:",pk,type:uuid" json:"id"`
	KeyID  uuid.UUID `bun:"key_id,notnull,type:uuid" json:"key_id"`
	Lang   string    `bun:"lang,notnull" json:"lang"`
	Value  string    `bun:"value,notnull" json:"value"`
	Active bool      `bun:"active,notnull,default:true" json:"active"`
}
