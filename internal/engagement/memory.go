package engagement

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// MemoryCommentRepository is an in-memory implementation for scaffolding and
// tests.
type MemoryCommentRepository struct {
	mu       sync.RWMutex
	comments map[uuid.UUID]*Comment
}

// NewMemoryCommentRepository creates an empty in-memory comment repository.
func NewMemoryCommentRepository() *MemoryCommentRepository {
	return &MemoryCommentRepository{
		comments: make(map[uuid.UUID]*Comment),
	}
}

// Create inserts the supplied comment.
func (m *MemoryCommentRepository) Create(_ context.Context, record *Comment) (*Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := cloneComment(record)
	m.comments[copied.ID] = copied
	return cloneComment(copied), nil
}

// ListApprovedByPost returns approved comments for a post, newest first.
func (m *MemoryCommentRepository) ListApprovedByPost(_ context.Context, postID string) ([]*Comment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Comment, 0)
	for _, rec := range m.comments {
		if rec.PostID == postID && rec.Approved {
			out = append(out, cloneComment(rec))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func cloneComment(src *Comment) *Comment {
	if src == nil {
		return nil
	}
	copied := *src
	return &copied
}

// MemoryLikeRepository stores likes in-memory with the same uniqueness rule
// the database enforces.
type MemoryLikeRepository struct {
	mu    sync.RWMutex
	likes map[uuid.UUID]*Like
}

// NewMemoryLikeRepository constructs the repository.
func NewMemoryLikeRepository() *MemoryLikeRepository {
	return &MemoryLikeRepository{
		likes: make(map[uuid.UUID]*Like),
	}
}

// Create inserts a like, rejecting duplicates per (post, email).
func (m *MemoryLikeRepository) Create(_ context.Context, record *Like) (*Like, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, rec := range m.likes {
		if rec.PostID == record.PostID && strings.EqualFold(rec.UserEmail, record.UserEmail) {
			return nil, ErrAlreadyLiked
		}
	}
	copied := cloneLike(record)
	m.likes[copied.ID] = copied
	return cloneLike(copied), nil
}

// CountByPost counts likes for a post.
func (m *MemoryLikeRepository) CountByPost(_ context.Context, postID string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, rec := range m.likes {
		if rec.PostID == postID {
			count++
		}
	}
	return count, nil
}

// FindByPostAndEmail resolves the like a reader placed on a post.
func (m *MemoryLikeRepository) FindByPostAndEmail(_ context.Context, postID, email string) (*Like, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, rec := range m.likes {
		if rec.PostID == postID && strings.EqualFold(rec.UserEmail, email) {
			return cloneLike(rec), nil
		}
	}
	return nil, &NotFoundError{Resource: "like", Key: fmt.Sprintf("%s:%s", postID, email)}
}

// Delete removes a like by id. Deleting an absent like is a no-op.
func (m *MemoryLikeRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.likes, id)
	return nil
}

func cloneLike(src *Like) *Like {
	if src == nil {
		return nil
	}
	copied := *src
	return &copied
}
