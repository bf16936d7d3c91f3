package engagement

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Comment is a reader comment on a post. Comments are created pending and
// only served once approved; approval happens outside this system.
type Comment struct {
	bun.BaseModel `bun:"table:comments,alias:cm"`

	ID        uuid.UUID `bun:",pk,type:uuid"         json:"id"`
	PostID    string    `bun:"post_id,notnull"       json:"postId"`
	UserName  string    `bun:"user_name,notnull"     json:"userName"`
	UserEmail string    `bun:"user_email,notnull"    json:"-"`
	Content   string    `bun:"content,notnull"       json:"content"`
	Approved  bool      `bun:"approved,notnull,default:false" json:"-"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"createdAt"`
}

// Like records that one email address liked one post. The (post_id,
// user_email) pair is unique; the table is append-and-delete only.
type Like struct {
	bun.BaseModel `bun:"table:likes,alias:lk"`

	ID        uuid.UUID `bun:",pk,type:uuid"      json:"id"`
	PostID    string    `bun:"post_id,notnull"    json:"postId"`
	UserName  string    `bun:"user_name"          json:"userName,omitempty"`
	UserEmail string    `bun:"user_email,notnull" json:"-"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"createdAt"`
}

// LikeStatus is the aggregate a post page renders: total count plus whether
// the asking reader already liked the post.
type LikeStatus struct {
	PostID string `json:"postId"`
	Count  int    `json:"count"`
	Liked  bool   `json:"liked"`
}

// CommentRepository is the storage contract for comments.
type CommentRepository interface {
	Create(ctx context.Context, record *Comment) (*Comment, error)
	ListApprovedByPost(ctx context.Context, postID string) ([]*Comment, error)
}

// LikeRepository is the storage contract for likes.
type LikeRepository interface {
	Create(ctx context.Context, record *Like) (*Like, error)
	CountByPost(ctx context.Context, postID string) (int, error)
	FindByPostAndEmail(ctx context.Context, postID, email string) (*Like, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
