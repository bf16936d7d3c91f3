package engagement

import (
	"context"
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"

	"github.com/mekongworks/sitekit/internal/identity"
	"github.com/mekongworks/sitekit/internal/logging"
	"github.com/mekongworks/sitekit/pkg/interfaces"
)

// CreateCommentInput carries a new comment submission.
type CreateCommentInput struct {
	PostID  string `json:"postId"`
	Name    string `json:"authorName"`
	Email   string `json:"authorEmail"`
	Content string `json:"content"`
}

// Validate checks the submission before it reaches storage.
func (in CreateCommentInput) Validate() error {
	errs := validation.Errors{}
	if strings.TrimSpace(in.PostID) == "" {
		errs["postId"] = validation.NewError("site.engagement.comment.post_required", "postId is required")
	}
	if strings.TrimSpace(in.Name) == "" {
		errs["authorName"] = validation.NewError("site.engagement.comment.name_required", "authorName is required")
	}
	if err := validation.Validate(in.Email, validation.Required, is.Email); err != nil {
		errs["authorEmail"] = validation.NewError("site.engagement.comment.email_invalid", "a valid email is required")
	}
	if strings.TrimSpace(in.Content) == "" {
		errs["content"] = validation.NewError("site.engagement.comment.content_required", "content is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// LikeInput identifies the post and the reader for like operations. Name is
// display-only; uniqueness hangs on the email.
type LikeInput struct {
	PostID string `json:"postId"`
	Name   string `json:"userName"`
	Email  string `json:"userEmail"`
}

// Validate checks the like request.
func (in LikeInput) Validate() error {
	errs := validation.Errors{}
	if strings.TrimSpace(in.PostID) == "" {
		errs["postId"] = validation.NewError("site.engagement.like.post_required", "postId is required")
	}
	if err := validation.Validate(in.Email, validation.Required, is.Email); err != nil {
		errs["email"] = validation.NewError("site.engagement.like.email_invalid", "a valid email is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Service implements comment and like behaviour over the datastore. Reads
// are fail-soft: with no datastore configured, or on query failure, they
// return empty results. Writes surface errors because a dropped write is a
// lie to the reader.
type Service struct {
	comments CommentRepository
	likes    LikeRepository
	logger   interfaces.Logger
}

// NewService wires the engagement service. Nil repositories mean the
// datastore backend is not configured.
func NewService(comments CommentRepository, likes LikeRepository, logger interfaces.Logger) *Service {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Service{comments: comments, likes: likes, logger: logger}
}

// Configured reports whether writes can be accepted.
func (s *Service) Configured() bool {
	return s.comments != nil && s.likes != nil
}

// ListComments returns approved comments for a post, newest first. It never
// errors: an unconfigured or failing datastore yields an empty, non-nil
// slice.
func (s *Service) ListComments(ctx context.Context, postID string) []*Comment {
	empty := []*Comment{}
	if s.comments == nil || strings.TrimSpace(postID) == "" {
		return empty
	}
	records, err := s.comments.ListApprovedByPost(ctx, postID)
	if err != nil {
		s.logger.Error("engagement: list comments failed", "post_id", postID, "error", err)
		return empty
	}
	if records == nil {
		return empty
	}
	return records
}

// CreateComment stores a submission and publishes it immediately.
func (s *Service) CreateComment(ctx context.Context, in CreateCommentInput) (*Comment, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if s.comments == nil {
		return nil, ErrDatastoreUnavailable
	}
	// Comments go live immediately; the approved flag exists so an operator
	// can take one down from the database without deleting it.
	record := &Comment{
		ID:        uuid.New(),
		PostID:    strings.TrimSpace(in.PostID),
		UserName:  strings.TrimSpace(in.Name),
		UserEmail: normalizeEmail(in.Email),
		Content:   strings.TrimSpace(in.Content),
		Approved:  true,
	}
	created, err := s.comments.Create(ctx, record)
	if err != nil {
		s.logger.Error("engagement: create comment failed", "post_id", record.PostID, "error", err)
		return nil, err
	}
	return created, nil
}

// LikeStatus reports the like count for a post and, when an email is given,
// whether that reader already liked it. It never errors.
func (s *Service) LikeStatus(ctx context.Context, postID, email string) LikeStatus {
	status := LikeStatus{PostID: postID}
	if s.likes == nil || strings.TrimSpace(postID) == "" {
		return status
	}
	count, err := s.likes.CountByPost(ctx, postID)
	if err != nil {
		s.logger.Error("engagement: like count failed", "post_id", postID, "error", err)
		return status
	}
	status.Count = count

	if normalized := normalizeEmail(email); normalized != "" {
		if _, err := s.likes.FindByPostAndEmail(ctx, postID, normalized); err == nil {
			status.Liked = true
		}
	}
	return status
}

// Like records a like. A like the reader already placed surfaces as
// ErrAlreadyLiked; the deterministic id makes concurrent duplicates collide
// in storage rather than double count.
func (s *Service) Like(ctx context.Context, in LikeInput) (*Like, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if s.likes == nil {
		return nil, ErrDatastoreUnavailable
	}
	postID := strings.TrimSpace(in.PostID)
	email := normalizeEmail(in.Email)
	record := &Like{
		ID:        identity.LikeUUID(postID, email),
		PostID:    postID,
		UserName:  strings.TrimSpace(in.Name),
		UserEmail: email,
	}
	created, err := s.likes.Create(ctx, record)
	if err != nil {
		if errors.Is(err, ErrAlreadyLiked) {
			return nil, ErrAlreadyLiked
		}
		s.logger.Error("engagement: like failed", "post_id", postID, "error", err)
		return nil, err
	}
	return created, nil
}

// Unlike removes a reader's like. Removing a like that does not exist is a
// no-op so retries are harmless.
func (s *Service) Unlike(ctx context.Context, in LikeInput) error {
	if err := in.Validate(); err != nil {
		return err
	}
	if s.likes == nil {
		return ErrDatastoreUnavailable
	}
	postID := strings.TrimSpace(in.PostID)
	email := normalizeEmail(in.Email)

	record, err := s.likes.FindByPostAndEmail(ctx, postID, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		s.logger.Error("engagement: unlike lookup failed", "post_id", postID, "error", err)
		return err
	}
	if err := s.likes.Delete(ctx, record.ID); err != nil {
		s.logger.Error("engagement: unlike failed", "post_id", postID, "error", err)
		return err
	}
	return nil
}

// Toggle applies a like action by name. Anything other than "like" or
// "unlike" is rejected before validation runs.
func (s *Service) Toggle(ctx context.Context, action string, in LikeInput) (*Like, error) {
	switch strings.ToLower(strings.TrimSpace(action)) {
	case "like":
		return s.Like(ctx, in)
	case "unlike":
		return nil, s.Unlike(ctx, in)
	default:
		return nil, ErrActionInvalid
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
