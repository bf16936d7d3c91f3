package engagementcmd

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/mekongworks/sitekit/internal/commands"
	"github.com/mekongworks/sitekit/internal/engagement"
	"github.com/mekongworks/sitekit/pkg/interfaces"
)

const (
	likeMessageType   = "site.engagement.like.create"
	unlikeMessageType = "site.engagement.like.remove"
)

// LikeCommand records a reader's like on a post.
type LikeCommand struct {
	PostID string `json:"postId"`
	Name   string `json:"userName"`
	Email  string `json:"userEmail"`
}

// Type implements command.Message.
func (LikeCommand) Type() string { return likeMessageType }

// Validate ensures the message identifies post and reader.
func (m LikeCommand) Validate() error {
	return validateLikeFields(m.PostID, m.Email)
}

// UnlikeCommand removes a reader's like from a post.
type UnlikeCommand struct {
	PostID string `json:"postId"`
	Email  string `json:"userEmail"`
}

// Type implements command.Message.
func (UnlikeCommand) Type() string { return unlikeMessageType }

// Validate ensures the message identifies post and reader.
func (m UnlikeCommand) Validate() error {
	return validateLikeFields(m.PostID, m.Email)
}

func validateLikeFields(postID, email string) error {
	errs := validation.Errors{}
	if postID == "" {
		errs["postId"] = validation.NewError("site.engagement.like.post_required", "postId is required")
	}
	if err := validation.Validate(email, validation.Required, is.Email); err != nil {
		errs["userEmail"] = validation.NewError("site.engagement.like.email_invalid", "a valid email is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// LikeHandler records likes via the engagement service.
type LikeHandler struct {
	inner *commands.Handler[LikeCommand]
}

// NewLikeHandler constructs a handler wired to the engagement service.
func NewLikeHandler(service *engagement.Service, logger interfaces.Logger, opts ...commands.HandlerOption[LikeCommand]) *LikeHandler {
	exec := func(ctx context.Context, msg LikeCommand) error {
		_, err := service.Like(ctx, engagement.LikeInput{PostID: msg.PostID, Name: msg.Name, Email: msg.Email})
		return err
	}

	handlerOpts := []commands.HandlerOption[LikeCommand]{
		commands.WithLogger[LikeCommand](logger),
		commands.WithOperation[LikeCommand]("engagement.like.create"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &LikeHandler{
		inner: commands.NewHandler[LikeCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[LikeCommand].Execute.
func (h *LikeHandler) Execute(ctx context.Context, msg LikeCommand) error {
	return h.inner.Execute(ctx, msg)
}

// UnlikeHandler removes likes via the engagement service.
type UnlikeHandler struct {
	inner *commands.Handler[UnlikeCommand]
}

// NewUnlikeHandler constructs a handler wired to the engagement service.
func NewUnlikeHandler(service *engagement.Service, logger interfaces.Logger, opts ...commands.HandlerOption[UnlikeCommand]) *UnlikeHandler {
	exec := func(ctx context.Context, msg UnlikeCommand) error {
		return service.Unlike(ctx, engagement.LikeInput{PostID: msg.PostID, Email: msg.Email})
	}

	handlerOpts := []commands.HandlerOption[UnlikeCommand]{
		commands.WithLogger[UnlikeCommand](logger),
		commands.WithOperation[UnlikeCommand]("engagement.like.remove"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &UnlikeHandler{
		inner: commands.NewHandler[UnlikeCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[UnlikeCommand].Execute.
func (h *UnlikeHandler) Execute(ctx context.Context, msg UnlikeCommand) error {
	return h.inner.Execute(ctx, msg)
}
