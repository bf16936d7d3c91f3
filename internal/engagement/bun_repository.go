package engagement

import (
	"context"
	"fmt"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type BunCommentRepository struct {
	repo repository.Repository[*Comment]
}

func NewBunCommentRepository(db *bun.DB) *BunCommentRepository {
	return NewBunCommentRepositoryWithCache(db, nil, nil)
}

func NewBunCommentRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunCommentRepository {
	base := NewCommentRepository(db)
	return &BunCommentRepository{repo: wrapWithCache(base, cacheService, keySerializer)}
}

func (r *BunCommentRepository) Create(ctx context.Context, record *Comment) (*Comment, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, mapRepositoryError(err, "comment", record.PostID)
	}
	return created, nil
}

func (r *BunCommentRepository) ListApprovedByPost(ctx context.Context, postID string) ([]*Comment, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.post_id = ?", postID).
				Where("?TableAlias.approved = ?", true).
				OrderExpr("?TableAlias.created_at DESC")
		}),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "comment", postID)
	}
	return records, nil
}

type BunLikeRepository struct {
	repo repository.Repository[*Like]
}

func NewBunLikeRepository(db *bun.DB) *BunLikeRepository {
	return NewBunLikeRepositoryWithCache(db, nil, nil)
}

func NewBunLikeRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunLikeRepository {
	base := NewLikeRepository(db)
	return &BunLikeRepository{repo: wrapWithCache(base, cacheService, keySerializer)}
}

// Create inserts a like. The (post_id, user_email) unique index is the
// arbiter under concurrent requests; a violation maps to ErrAlreadyLiked.
func (r *BunLikeRepository) Create(ctx context.Context, record *Like) (*Like, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAlreadyLiked
		}
		return nil, mapRepositoryError(err, "like", record.PostID)
	}
	return created, nil
}

func (r *BunLikeRepository) CountByPost(ctx context.Context, postID string) (int, error) {
	_, total, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.post_id = ?", postID)
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return 0, mapRepositoryError(err, "like", postID)
	}
	return total, nil
}

func (r *BunLikeRepository) FindByPostAndEmail(ctx context.Context, postID, email string) (*Like, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.post_id = ?", postID).
				Where("?TableAlias.user_email = ?", email)
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "like", postID)
	}
	if len(records) == 0 {
		return nil, &NotFoundError{Resource: "like", Key: fmt.Sprintf("%s:%s", postID, email)}
	}
	return records[0], nil
}

func (r *BunLikeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.repo.Delete(ctx, &Like{ID: id})
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{
			Resource: resource,
			Key:      key,
		}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}

// isUniqueViolation recognizes unique index violations from both supported
// drivers: SQLSTATE 23505 on postgres, "UNIQUE constraint failed" on sqlite.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "23505") ||
		strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
