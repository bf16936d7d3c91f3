package engagement

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

func newTestService() *Service {
	return NewService(NewMemoryCommentRepository(), NewMemoryLikeRepository(), nil)
}

func TestCreateCommentGoesLiveImmediately(t *testing.T) {
	svc := newTestService()

	created, err := svc.CreateComment(context.Background(), CreateCommentInput{
		PostID:  "launch",
		Name:    "Minh",
		Email:   "Minh@Example.com",
		Content: "Great post",
	})
	if err != nil {
		t.Fatalf("CreateComment: %v", err)
	}
	if !created.Approved {
		t.Fatalf("new comments must be approved by default")
	}
	if created.UserEmail != "minh@example.com" {
		t.Fatalf("email must be normalized, got %q", created.UserEmail)
	}

	if got := svc.ListComments(context.Background(), "launch"); len(got) != 1 {
		t.Fatalf("expected the new comment in the listing, got %d", len(got))
	}
}

func TestCreateCommentValidation(t *testing.T) {
	svc := newTestService()

	_, err := svc.CreateComment(context.Background(), CreateCommentInput{
		PostID: "launch",
		Email:  "not-an-email",
	})
	var errs validation.Errors
	if !errors.As(err, &errs) {
		t.Fatalf("expected validation errors, got %v", err)
	}
	for _, field := range []string{"authorName", "authorEmail", "content"} {
		if _, ok := errs[field]; !ok {
			t.Fatalf("expected %s validation error, got %v", field, errs)
		}
	}
}

func TestListCommentsApprovedNewestFirst(t *testing.T) {
	repo := NewMemoryCommentRepository()
	svc := NewService(repo, NewMemoryLikeRepository(), nil)

	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	seed := []*Comment{
		{ID: uuid.New(), PostID: "launch", UserName: "a", Approved: true, CreatedAt: base},
		{ID: uuid.New(), PostID: "launch", UserName: "b", Approved: true, CreatedAt: base.Add(time.Hour)},
		{ID: uuid.New(), PostID: "launch", UserName: "c", Approved: false, CreatedAt: base.Add(2 * time.Hour)},
		{ID: uuid.New(), PostID: "other", UserName: "d", Approved: true, CreatedAt: base},
	}
	for _, c := range seed {
		if _, err := repo.Create(context.Background(), c); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	got := svc.ListComments(context.Background(), "launch")
	if len(got) != 2 {
		t.Fatalf("expected 2 approved comments, got %d", len(got))
	}
	if got[0].UserName != "b" || got[1].UserName != "a" {
		t.Fatalf("expected newest first, got %q then %q", got[0].UserName, got[1].UserName)
	}
}

func TestUnconfiguredDatastore(t *testing.T) {
	svc := NewService(nil, nil, nil)

	if got := svc.ListComments(context.Background(), "launch"); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil listing, got %v", got)
	}
	if status := svc.LikeStatus(context.Background(), "launch", ""); status.Count != 0 || status.Liked {
		t.Fatalf("expected zero like status, got %+v", status)
	}

	_, err := svc.CreateComment(context.Background(), CreateCommentInput{
		PostID: "launch", Name: "a", Email: "a@example.com", Content: "hi",
	})
	if !errors.Is(err, ErrDatastoreUnavailable) {
		t.Fatalf("writes must fail without a datastore, got %v", err)
	}
	if _, err := svc.Like(context.Background(), LikeInput{PostID: "launch", Email: "a@example.com"}); !errors.Is(err, ErrDatastoreUnavailable) {
		t.Fatalf("like must fail without a datastore, got %v", err)
	}
}

func TestLikeOncePerReader(t *testing.T) {
	svc := newTestService()
	in := LikeInput{PostID: "launch", Email: "Minh@Example.com"}

	if _, err := svc.Like(context.Background(), in); err != nil {
		t.Fatalf("Like: %v", err)
	}
	if _, err := svc.Like(context.Background(), in); !errors.Is(err, ErrAlreadyLiked) {
		t.Fatalf("expected ErrAlreadyLiked, got %v", err)
	}
	// Same reader, different email casing: still one like.
	if _, err := svc.Like(context.Background(), LikeInput{PostID: "launch", Email: "minh@example.com"}); !errors.Is(err, ErrAlreadyLiked) {
		t.Fatalf("expected case-insensitive dedupe, got %v", err)
	}

	status := svc.LikeStatus(context.Background(), "launch", "minh@example.com")
	if status.Count != 1 || !status.Liked {
		t.Fatalf("unexpected status %+v", status)
	}
}

func TestLikeConcurrentDuplicatesStoreOne(t *testing.T) {
	svc := newTestService()
	in := LikeInput{PostID: "launch", Email: "minh@example.com"}

	const workers = 16
	start := make(chan struct{})
	results := make(chan error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := svc.Like(context.Background(), in)
			results <- err
		}()
	}
	close(start)
	wg.Wait()
	close(results)

	var wins, conflicts int
	for err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrAlreadyLiked):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if wins != 1 || conflicts != workers-1 {
		t.Fatalf("wins=%d conflicts=%d, want 1 and %d", wins, conflicts, workers-1)
	}

	status := svc.LikeStatus(context.Background(), "launch", "minh@example.com")
	if status.Count != 1 || !status.Liked {
		t.Fatalf("unexpected status %+v", status)
	}
}

func TestToggleDispatchesOnAction(t *testing.T) {
	svc := newTestService()
	in := LikeInput{PostID: "launch", Name: "Ann", Email: "ann@x.com"}

	record, err := svc.Toggle(context.Background(), "like", in)
	if err != nil || record == nil {
		t.Fatalf("Toggle like = (%v, %v)", record, err)
	}
	if _, err := svc.Toggle(context.Background(), "unlike", in); err != nil {
		t.Fatalf("Toggle unlike: %v", err)
	}
	if _, err := svc.Toggle(context.Background(), "boost", in); !errors.Is(err, ErrActionInvalid) {
		t.Fatalf("expected ErrActionInvalid, got %v", err)
	}
}

func TestUnlikeIsIdempotent(t *testing.T) {
	svc := newTestService()
	in := LikeInput{PostID: "launch", Email: "minh@example.com"}

	if _, err := svc.Like(context.Background(), in); err != nil {
		t.Fatalf("Like: %v", err)
	}
	if err := svc.Unlike(context.Background(), in); err != nil {
		t.Fatalf("Unlike: %v", err)
	}
	if err := svc.Unlike(context.Background(), in); err != nil {
		t.Fatalf("repeated Unlike must be a no-op, got %v", err)
	}

	status := svc.LikeStatus(context.Background(), "launch", "minh@example.com")
	if status.Count != 0 || status.Liked {
		t.Fatalf("unexpected status after unlike %+v", status)
	}
}
