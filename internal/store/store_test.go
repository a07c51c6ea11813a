package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "rosa.db"))
	if err != nil {
		t.Fatalf("New err: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestMigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rosa.db")
	for i := 0; i < 2; i++ {
		s, err := New(path)
		if err != nil {
			t.Fatalf("New (pass %d) err: %v", i, err)
		}
		s.Close()
	}
}

func TestGetOrCreateTokenKeepsFirstToken(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	exists, err := s.HasToken(ctx, "hash-1")
	if err != nil {
		t.Fatalf("HasToken err: %v", err)
	}
	if exists {
		t.Fatal("expected no token before creation")
	}

	first, err := s.GetOrCreateToken(ctx, "hash-1", "token-a")
	if err != nil {
		t.Fatalf("GetOrCreateToken err: %v", err)
	}
	second, err := s.GetOrCreateToken(ctx, "hash-1", "token-b")
	if err != nil {
		t.Fatalf("GetOrCreateToken err: %v", err)
	}

	if first != "token-a" || second != "token-a" {
		t.Fatalf("expected stable token-a, got %s then %s", first, second)
	}

	exists, err = s.HasToken(ctx, "hash-1")
	if err != nil {
		t.Fatalf("HasToken err: %v", err)
	}
	if !exists {
		t.Fatal("expected token after creation")
	}
}

func TestAuthorizedRequestLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	req := AuthorizedRequest{
		ARID:        "arid-1",
		UserToken:   "token-a",
		Application: "netflix",
		Action:      "get",
		CreatedAt:   now,
		ExpiresAt:   now.Add(time.Minute),
	}
	if err := s.InsertAuthorizedRequest(ctx, req); err != nil {
		t.Fatalf("InsertAuthorizedRequest err: %v", err)
	}

	got, err := s.GetAuthorizedRequest(ctx, "arid-1")
	if err != nil {
		t.Fatalf("GetAuthorizedRequest err: %v", err)
	}
	if got.Application != "netflix" || got.Action != "get" || got.RedeemedAt != nil {
		t.Fatalf("unexpected request: %+v", got)
	}
	if !got.ExpiresAt.Equal(req.ExpiresAt) {
		t.Fatalf("expires_at mismatch: got %s want %s", got.ExpiresAt, req.ExpiresAt)
	}

	ok, err := s.MarkRedeemed(ctx, "arid-1", now)
	if err != nil || !ok {
		t.Fatalf("first MarkRedeemed = %v, %v", ok, err)
	}
	ok, err = s.MarkRedeemed(ctx, "arid-1", now)
	if err != nil || ok {
		t.Fatalf("second MarkRedeemed = %v, %v", ok, err)
	}

	if _, err := s.GetAuthorizedRequest(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	n, err := s.DeleteExpiredRequests(ctx, now.Add(2*time.Minute))
	if err != nil || n != 1 {
		t.Fatalf("DeleteExpiredRequests = %d, %v", n, err)
	}
}

func TestApplicationsAreScopedPerUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.UpsertApplication(ctx, "token-a", Application{NormalizedName: "netflix", DisplayName: "Netflix"}); err != nil {
		t.Fatalf("UpsertApplication err: %v", err)
	}
	if err := s.UpsertApplication(ctx, "token-a", Application{NormalizedName: "netflix", DisplayName: "NETFLIX"}); err != nil {
		t.Fatalf("UpsertApplication err: %v", err)
	}
	if err := s.UpsertApplication(ctx, "token-b", Application{NormalizedName: "hulu", DisplayName: "Hulu"}); err != nil {
		t.Fatalf("UpsertApplication err: %v", err)
	}

	apps, err := s.ListApplications(ctx, "token-a")
	if err != nil {
		t.Fatalf("ListApplications err: %v", err)
	}
	if len(apps) != 1 || apps[0].DisplayName != "NETFLIX" {
		t.Fatalf("unexpected inventory: %+v", apps)
	}
}
