package filestore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"muni-hostelhub/internal/adapters/persistence/models"
	"muni-hostelhub/internal/adapters/persistence/repositories"
)

func TestStoreReadMissingKey(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	var items []string
	if err := store.Read("nothing", &items); err != nil {
		t.Fatalf("read missing key: %v", err)
	}
	if items != nil {
		t.Errorf("missing key decoded to %v, want nil", items)
	}
}

func TestStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	in := []string{"a", "b", "c"}
	if err := store.Write("letters", in); err != nil {
		t.Fatalf("write: %v", err)
	}

	var out []string
	if err := store.Read("letters", &out); err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(out) != 3 || out[0] != "a" || out[2] != "c" {
		t.Errorf("round trip mismatch: %v", out)
	}

	// No stray temp file left behind
	if _, err := os.Stat(filepath.Join(dir, "letters.json.tmp")); !os.IsNotExist(err) {
		t.Error("temp file not cleaned up")
	}
}

func TestStoreUpdate(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	for i := 0; i < 3; i++ {
		var items []int
		err := store.Update("counters", &items, func() error {
			items = append(items, i)
			return nil
		})
		if err != nil {
			t.Fatalf("update %d: %v", i, err)
		}
	}

	var items []int
	if err := store.Read("counters", &items); err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(items) != 3 {
		t.Errorf("got %d items, want 3", len(items))
	}
}

func TestStoreUpdateErrorDiscardsWrite(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	if err := store.Write("items", []int{1}); err != nil {
		t.Fatalf("write: %v", err)
	}

	boom := errors.New("boom")
	var items []int
	err = store.Update("items", &items, func() error {
		items = append(items, 2)
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}

	items = nil
	if err := store.Read("items", &items); err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(items) != 1 {
		t.Errorf("failed update was persisted: %v", items)
	}
}

func TestStoreKeys(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	for _, key := range []string{"favorites_u1", "favorites_u2", "hostels"} {
		if err := store.Write(key, []int{}); err != nil {
			t.Fatalf("write %s: %v", key, err)
		}
	}

	keys, err := store.Keys("favorites_")
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	if len(keys) != 2 {
		t.Errorf("got %d keys, want 2: %v", len(keys), keys)
	}
}

func TestUserRecordKeepsPassword(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	repos := NewSet(store)
	ctx := context.Background()

	user := &models.User{
		ID:       "u1",
		Email:    "student@muni.test",
		Password: "Secret@123",
	}
	if err := repos.Users.Create(ctx, user); err != nil {
		t.Fatalf("create: %v", err)
	}

	// The model's json:"-" tag must not lose the credential on disk
	got, err := repos.Users.GetByEmail(ctx, "STUDENT@muni.test")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Password != "Secret@123" {
		t.Errorf("password lost in storage, got %q", got.Password)
	}
}

func TestHostelSequentialIDs(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	repos := NewSet(store)
	ctx := context.Background()

	first := &models.Hostel{Name: "First"}
	second := &models.Hostel{Name: "Second"}
	if err := repos.Hostels.Create(ctx, first); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repos.Hostels.Create(ctx, second); err != nil {
		t.Fatalf("create: %v", err)
	}

	if first.ID != 1 || second.ID != 2 {
		t.Errorf("IDs = %d, %d, want 1, 2", first.ID, second.ID)
	}

	if err := repos.Hostels.Delete(ctx, 2); err != nil {
		t.Fatalf("delete: %v", err)
	}
	third := &models.Hostel{Name: "Third"}
	if err := repos.Hostels.Create(ctx, third); err != nil {
		t.Fatalf("create: %v", err)
	}
	if third.ID != 2 {
		t.Errorf("ID after delete = %d, want max+1 = 2", third.ID)
	}
}

func TestRefreshTokenRevocation(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	repos := NewSet(store)
	ctx := context.Background()

	token := &models.RefreshToken{UserID: "u1", TokenHash: "hash-1"}
	if err := repos.RefreshTokens.Create(ctx, token); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repos.RefreshTokens.GetByTokenHash(ctx, "hash-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.UserID != "u1" {
		t.Errorf("user = %s, want u1", got.UserID)
	}

	if err := repos.RefreshTokens.RevokeByTokenHash(ctx, "hash-1"); err != nil {
		t.Fatalf("revoke: %v", err)
	}

	// Revoked tokens are invisible to the hash lookup
	if _, err := repos.RefreshTokens.GetByTokenHash(ctx, "hash-1"); !errors.Is(err, repositories.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
