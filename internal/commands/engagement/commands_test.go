package engagementcmd

import (
	"context"
	"errors"
	"testing"

	goerrors "github.com/goliatone/go-errors"

	"github.com/mekongworks/sitekit/internal/engagement"
)

func newTestService() *engagement.Service {
	return engagement.NewService(
		engagement.NewMemoryCommentRepository(),
		engagement.NewMemoryLikeRepository(),
		nil,
	)
}

func TestCreateCommentHandler(t *testing.T) {
	svc := newTestService()
	handler := NewCreateCommentHandler(svc, nil)

	err := handler.Execute(context.Background(), CreateCommentCommand{
		PostID:  "launch",
		Name:    "Minh",
		Email:   "minh@example.com",
		Content: "Great post",
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
}

func TestCreateCommentHandlerValidation(t *testing.T) {
	handler := NewCreateCommentHandler(newTestService(), nil)

	err := handler.Execute(context.Background(), CreateCommentCommand{PostID: "launch"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
}

func TestLikeHandlerSurfacesDuplicate(t *testing.T) {
	svc := newTestService()
	handler := NewLikeHandler(svc, nil)
	msg := LikeCommand{PostID: "launch", Email: "minh@example.com"}

	if err := handler.Execute(context.Background(), msg); err != nil {
		t.Fatalf("first like: %v", err)
	}

	err := handler.Execute(context.Background(), msg)
	if err == nil {
		t.Fatal("expected duplicate like error")
	}
	if !errors.Is(err, engagement.ErrAlreadyLiked) {
		t.Fatalf("expected ErrAlreadyLiked to unwrap, got %v", err)
	}
}

func TestUnlikeHandlerIdempotent(t *testing.T) {
	svc := newTestService()
	like := NewLikeHandler(svc, nil)
	unlike := NewUnlikeHandler(svc, nil)

	if err := like.Execute(context.Background(), LikeCommand{PostID: "launch", Email: "minh@example.com"}); err != nil {
		t.Fatalf("like: %v", err)
	}
	msg := UnlikeCommand{PostID: "launch", Email: "minh@example.com"}
	if err := unlike.Execute(context.Background(), msg); err != nil {
		t.Fatalf("unlike: %v", err)
	}
	if err := unlike.Execute(context.Background(), msg); err != nil {
		t.Fatalf("repeated unlike must succeed, got %v", err)
	}
}
