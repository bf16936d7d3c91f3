package engagement

import (
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

func NewCommentRepository(db *bun.DB) repository.Repository[*Comment] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Comment]{
		NewRecord: func() *Comment { return &Comment{} },
		GetID: func(c *Comment) uuid.UUID {
			return c.ID
		},
		SetID: func(c *Comment, id uuid.UUID) {
			c.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(c *Comment) string {
			if c == nil {
				return ""
			}
			return c.ID.String()
		},
	})
}

func NewLikeRepository(db *bun.DB) repository.Repository[*Like] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Like]{
		NewRecord: func() *Like { return &Like{} },
		GetID: func(l *Like) uuid.UUID {
			return l.ID
		},
		SetID: func(l *Like, id uuid.UUID) {
			l.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(l *Like) string {
			if l == nil {
				return ""
			}
			return l.ID.String()
		},
	})
}
