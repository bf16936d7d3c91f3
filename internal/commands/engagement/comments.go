package engagementcmd

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/mekongworks/sitekit/internal/commands"
	"github.com/mekongworks/sitekit/internal/engagement"
	"github.com/mekongworks/sitekit/pkg/interfaces"
)

const createCommentMessageType = "site.engagement.comment.create"

// CreateCommentCommand requests storage of a new reader comment.
type CreateCommentCommand struct {
	PostID  string `json:"postId"`
	Name    string `json:"authorName"`
	Email   string `json:"authorEmail"`
	Content string `json:"content"`
}

// Type implements command.Message.
func (CreateCommentCommand) Type() string { return createCommentMessageType }

// Validate ensures the message carries the required fields before reaching
// handlers.
func (m CreateCommentCommand) Validate() error {
	errs := validation.Errors{}
	if m.PostID == "" {
		errs["postId"] = validation.NewError("site.engagement.comment.post_required", "postId is required")
	}
	if m.Name == "" {
		errs["authorName"] = validation.NewError("site.engagement.comment.name_required", "authorName is required")
	}
	if err := validation.Validate(m.Email, validation.Required, is.Email); err != nil {
		errs["authorEmail"] = validation.NewError("site.engagement.comment.email_invalid", "a valid email is required")
	}
	if m.Content == "" {
		errs["content"] = validation.NewError("site.engagement.comment.content_required", "content is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// CreateCommentHandler stores comments via the engagement service using the
// shared command handler foundation.
type CreateCommentHandler struct {
	inner *commands.Handler[CreateCommentCommand]
}

// NewCreateCommentHandler constructs a handler wired to the engagement
// service.
func NewCreateCommentHandler(service *engagement.Service, logger interfaces.Logger, opts ...commands.HandlerOption[CreateCommentCommand]) *CreateCommentHandler {
	exec := func(ctx context.Context, msg CreateCommentCommand) error {
		_, err := service.CreateComment(ctx, engagement.CreateCommentInput{
			PostID:  msg.PostID,
			Name:    msg.Name,
			Email:   msg.Email,
			Content: msg.Content,
		})
		return err
	}

	handlerOpts := []commands.HandlerOption[CreateCommentCommand]{
		commands.WithLogger[CreateCommentCommand](logger),
		commands.WithOperation[CreateCommentCommand]("engagement.comment.create"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &CreateCommentHandler{
		inner: commands.NewHandler[CreateCommentCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[CreateCommentCommand].Execute.
func (h *CreateCommentHandler) Execute(ctx context.Context, msg CreateCommentCommand) error {
	return h.inner.Execute(ctx, msg)
}
