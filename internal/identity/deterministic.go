package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions
// (prefix by domain/type).
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

// DocumentUUID yields a stable identifier for a content item, keyed by its
// type, locale and slug.
func DocumentUUID(contentType, localeCode, slug string) uuid.UUID {
	return UUID("sitekit:document:" + strings.TrimSpace(contentType) + ":" +
		strings.ToLower(strings.TrimSpace(localeCode)) + ":" + strings.TrimSpace(slug))
}

// LikeUUID yields a stable identifier for a like record so concurrent inserts
// for the same (post, email) pair collide on the primary key as well as the
// unique index.
func LikeUUID(postID, userEmail string) uuid.UUID {
	return UUID("sitekit:like:" + strings.TrimSpace(postID) + ":" +
		strings.ToLower(strings.TrimSpace(userEmail)))
}
