package engagement_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/mekongworks/sitekit/internal/engagement"
	"github.com/mekongworks/sitekit/pkg/testsupport"
)

// newLikesDB applies the shipped likes migration so the unique index under
// test is exactly the one production databases carry.
func newLikesDB(t *testing.T) *bun.DB {
	t.Helper()

	sqlDB, err := testsupport.NewSQLiteMemoryDB()
	if err != nil {
		t.Fatalf("new sqlite db: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	bunDB := bun.NewDB(sqlDB, sqlitedialect.New())
	bunDB.SetMaxOpenConns(1)

	ddl, err := os.ReadFile(filepath.Join("..", "..", "data", "sql", "migrations", "20240501000001_create_likes.sql"))
	if err != nil {
		t.Fatalf("read likes migration: %v", err)
	}
	if _, err := bunDB.ExecContext(context.Background(), string(ddl)); err != nil {
		t.Fatalf("apply likes migration: %v", err)
	}
	return bunDB
}

func TestBunLikeRepositoryRejectsDuplicateReader(t *testing.T) {
	ctx := context.Background()
	repo := engagement.NewBunLikeRepository(newLikesDB(t))

	first := &engagement.Like{
		ID:        uuid.New(),
		PostID:    "p1",
		UserName:  "Ann",
		UserEmail: "ann@example.com",
	}
	if _, err := repo.Create(ctx, first); err != nil {
		t.Fatalf("create like: %v", err)
	}

	// A different id with the same (post, email) must trip the unique index
	// and surface as the already-liked conflict, not a raw driver error.
	second := &engagement.Like{
		ID:        uuid.New(),
		PostID:    "p1",
		UserName:  "Ann",
		UserEmail: "ann@example.com",
	}
	if _, err := repo.Create(ctx, second); !errors.Is(err, engagement.ErrAlreadyLiked) {
		t.Fatalf("expected ErrAlreadyLiked, got %v", err)
	}

	count, err := repo.CountByPost(ctx, "p1")
	if err != nil {
		t.Fatalf("count likes: %v", err)
	}
	if count != 1 {
		t.Fatalf("count = %d, want 1", count)
	}

	found, err := repo.FindByPostAndEmail(ctx, "p1", "ann@example.com")
	if err != nil {
		t.Fatalf("find like: %v", err)
	}
	if found.ID != first.ID {
		t.Fatalf("found id = %s, want %s", found.ID, first.ID)
	}

	if err := repo.Delete(ctx, first.ID); err != nil {
		t.Fatalf("delete like: %v", err)
	}
	count, err = repo.CountByPost(ctx, "p1")
	if err != nil {
		t.Fatalf("count after delete: %v", err)
	}
	if count != 0 {
		t.Fatalf("count after delete = %d, want 0", count)
	}

	// The reader may like again after unliking.
	if _, err := repo.Create(ctx, &engagement.Like{
		ID:        uuid.New(),
		PostID:    "p1",
		UserEmail: "ann@example.com",
	}); err != nil {
		t.Fatalf("re-create like: %v", err)
	}
}
