package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions (prefix by domain/type).
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

func PageUUID(slug string) uuid.UUID {
	return UUID("go-pagecms:page:" + strings.ToLower(strings.TrimSpace(slug)))
}

func BlockUUID(pageID uuid.UUID, name string) uuid.UUID {
	return UUID("go-pagecms:block:" + pageID.String() + ":" + strings.TrimSpace(name))
}

func ComponentUUID(kind, key string) uuid.UUID {
	return UUID("go-pagecms:component:" + kind + ":" + strings.TrimSpace(key))
}

func LanguageUUID(code string) uuid.UUID {
	return UUID("go-pagecms:language:" + strings.ToLower(strings.TrimSpace(code)))
}

func DictionaryKeyUUID(key string) uuid.UUID {
	return UUID("go-pagecms:dictionary_key:" + strings.TrimSpace(key))
}
