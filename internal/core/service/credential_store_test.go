package service

import (
	"context"
	"testing"

	"github.com/HapppyEnd/api-server/internal/core/domain"
)

func seedUser(t *testing.T, repo *stubUserRepo, username, plain string, role domain.Role) {
	t.Helper()
	hash, err := newTestHasher(t).Hash(plain)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if _, err := repo.Create(context.Background(), &domain.User{Username: username, PasswordHash: hash, Role: role}); err != nil {
		t.Fatalf("seed: %v", err)
	}
}

func TestCredentialStore_FindByUsername_ExactMatch(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "testuser", "testpassword", domain.RoleDoctor)

	store, err := NewCredentialStore(repo, newTestHasher(t))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	u, err := store.FindByUsername(context.Background(), "testuser")
	if err != nil || u.Username != "testuser" {
		t.Fatalf("unexpected result: %+v %v", u, err)
	}
	if _, err := store.FindByUsername(context.Background(), "TestUser"); err != domain.ErrUserNotFound {
		t.Fatalf("expected case-sensitive miss, got %v", err)
	}
	if _, err := store.FindByUsername(context.Background(), "test"); err != domain.ErrUserNotFound {
		t.Fatalf("expected no partial match, got %v", err)
	}
}

func TestCredentialStore_VerifyCredentials(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "testuser", "testpassword", domain.RoleDoctor)

	store, err := NewCredentialStore(repo, newTestHasher(t))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()

	u, err := store.VerifyCredentials(ctx, "testuser", "testpassword")
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if u.Role != domain.RoleDoctor {
		t.Fatalf("unexpected role %s", u.Role)
	}

	_, wrongPass := store.VerifyCredentials(ctx, "testuser", "wrongpassword")
	_, noUser := store.VerifyCredentials(ctx, "wronguser", "testpassword")
	if wrongPass != domain.ErrInvalidCredentials || noUser != domain.ErrInvalidCredentials {
		t.Fatalf("expected identical ErrInvalidCredentials, got %v / %v", wrongPass, noUser)
	}
	if wrongPass.Error() != noUser.Error() {
		t.Fatalf("failure messages must be uniform")
	}
}

func TestCredentialStore_CorruptedHashFailsClosed(t *testing.T) {
	repo := newStubUserRepo()
	_, _ = repo.Create(context.Background(), &domain.User{Username: "broken", PasswordHash: "not-a-bcrypt-hash", Role: domain.RoleDoctor})

	store, err := NewCredentialStore(repo, newTestHasher(t))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	if _, err := store.VerifyCredentials(context.Background(), "broken", "not-a-bcrypt-hash"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
