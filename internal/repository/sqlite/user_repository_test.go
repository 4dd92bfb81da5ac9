package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"account-server/internal/domain"
	"account-server/internal/repository"
)

func newTestRepo(t *testing.T) repository.UserRepository {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	repo := NewUserRepository(db)
	if err := repo.Init(context.Background()); err != nil {
		t.Fatalf("init repo: %v", err)
	}
	return repo
}

func testUser(email string) *domain.User {
	return &domain.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: "$2a$10$fakehashfakehashfakehash",
	}
}

func TestCreateAndGet(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	user := testUser("test@example.com")
	id, err := repo.Create(ctx, user)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id == 0 || user.ID != id {
		t.Fatalf("expected assigned id, got %d/%d", id, user.ID)
	}
	if user.CreatedAt.IsZero() || user.UpdatedAt.IsZero() {
		t.Fatal("expected timestamps set on create")
	}

	byEmail, err := repo.GetByEmail(ctx, "test@example.com")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if byEmail.ID != id || byEmail.PasswordHash != user.PasswordHash {
		t.Fatalf("record mismatch: %+v", byEmail)
	}

	byID, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if byID.Email != "test@example.com" {
		t.Fatalf("email mismatch: %q", byID.Email)
	}
}

func TestGetMissing(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if _, err := repo.GetByEmail(ctx, "missing@example.com"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := repo.GetByID(ctx, 42); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUniqueEmail(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if _, err := repo.Create(ctx, testUser("test@example.com")); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := repo.Create(ctx, testUser("test@example.com"))
	if !errors.Is(err, repository.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestExists(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	user := testUser("test@example.com")
	id, err := repo.Create(ctx, user)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	for _, tc := range []struct {
		email string
		want  bool
	}{
		{"test@example.com", true},
		{"missing@example.com", false},
	} {
		got, err := repo.ExistsByEmail(ctx, tc.email)
		if err != nil {
			t.Fatalf("exists by email: %v", err)
		}
		if got != tc.want {
			t.Errorf("ExistsByEmail(%q) = %v, want %v", tc.email, got, tc.want)
		}
	}

	if ok, err := repo.ExistsByID(ctx, id); err != nil || !ok {
		t.Fatalf("ExistsByID(%d) = %v, %v", id, ok, err)
	}
	if ok, err := repo.ExistsByID(ctx, id+1); err != nil || ok {
		t.Fatalf("ExistsByID(%d) = %v, %v", id+1, ok, err)
	}
}

func TestUpdate(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	user := testUser("test@example.com")
	if _, err := repo.Create(ctx, user); err != nil {
		t.Fatalf("create: %v", err)
	}

	user.Name = "Renamed"
	user.Email = "renamed@example.com"
	if err := repo.Update(ctx, user); err != nil {
		t.Fatalf("update: %v", err)
	}

	stored, err := repo.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Name != "Renamed" || stored.Email != "renamed@example.com" {
		t.Fatalf("update not applied: %+v", stored)
	}
}

func TestUpdateDuplicateEmail(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first := testUser("first@example.com")
	if _, err := repo.Create(ctx, first); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := repo.Create(ctx, testUser("second@example.com")); err != nil {
		t.Fatalf("create: %v", err)
	}

	first.Email = "second@example.com"
	if err := repo.Update(ctx, first); !errors.Is(err, repository.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestUpdatePassword(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	user := testUser("test@example.com")
	if _, err := repo.Create(ctx, user); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := repo.UpdatePassword(ctx, user.ID, "new-hash"); err != nil {
		t.Fatalf("update password: %v", err)
	}
	stored, err := repo.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.PasswordHash != "new-hash" {
		t.Fatalf("password hash not updated: %q", stored.PasswordHash)
	}

	if err := repo.UpdatePassword(ctx, 9999, "x"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	user := testUser("test@example.com")
	if _, err := repo.Create(ctx, user); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := repo.Delete(ctx, user.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, user.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := repo.Delete(ctx, user.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on double delete, got %v", err)
	}
}
