package application

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	model "github.com/rosabot/rosa/backend/internal/model/application"
	"github.com/rosabot/rosa/backend/internal/store"
)

type fakeResolver struct {
	name  string
	ok    bool
	err   error
	calls int
}

func (f *fakeResolver) Resolve(_ context.Context, _ string, _ []string) (string, bool, error) {
	f.calls++
	return f.name, f.ok, f.err
}

func newTestService(t *testing.T, resolver Resolver, names ...string) *Service {
	t.Helper()
	st, err := store.New(filepath.Join(t.TempDir(), "rosa.db"))
	if err != nil {
		t.Fatalf("store.New err: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	svc := NewService(st, resolver)
	for _, name := range names {
		if _, err := svc.Register(context.Background(), "token-a", name); err != nil {
			t.Fatalf("Register(%q) err: %v", name, err)
		}
	}
	return svc
}

func TestMatchExact(t *testing.T) {
	svc := newTestService(t, nil, "Netflix", "Bank of America")

	got, err := svc.Match(context.Background(), "NETFLIX", "token-a")
	if err != nil {
		t.Fatalf("Match err: %v", err)
	}
	if got != (model.ExactFound{Name: "netflix"}) {
		t.Fatalf("expected exact netflix, got %#v", got)
	}
}

func TestMatchSimilarByPrefix(t *testing.T) {
	svc := newTestService(t, nil, "Netflix", "Hulu")

	got, err := svc.Match(context.Background(), "netfl", "token-a")
	if err != nil {
		t.Fatalf("Match err: %v", err)
	}
	if got != (model.SimilarFound{Name: "netflix"}) {
		t.Fatalf("expected similar netflix, got %#v", got)
	}
}

func TestMatchSimilarByEditDistance(t *testing.T) {
	svc := newTestService(t, nil, "Bank of America")

	got, err := svc.Match(context.Background(), "bank of amerika", "token-a")
	if err != nil {
		t.Fatalf("Match err: %v", err)
	}
	if got != (model.SimilarFound{Name: "bankofamerica"}) {
		t.Fatalf("expected similar bankofamerica, got %#v", got)
	}
}

func TestMatchNotFound(t *testing.T) {
	svc := newTestService(t, nil, "Netflix")

	for _, raw := range []string{"spotify", "", "   "} {
		got, err := svc.Match(context.Background(), raw, "token-a")
		if err != nil {
			t.Fatalf("Match err: %v", err)
		}
		if got != (model.NotFound{}) {
			t.Fatalf("expected not found for %q, got %#v", raw, got)
		}
	}
}

func TestMatchIsScopedToUser(t *testing.T) {
	svc := newTestService(t, nil, "Netflix")

	got, err := svc.Match(context.Background(), "netflix", "token-b")
	if err != nil {
		t.Fatalf("Match err: %v", err)
	}
	if got != (model.NotFound{}) {
		t.Fatalf("expected not found for other user, got %#v", got)
	}
}

func TestMatchFallsBackToResolver(t *testing.T) {
	resolver := &fakeResolver{name: "Amazon Prime", ok: true}
	svc := newTestService(t, resolver, "Amazon Prime", "Netflix")

	got, err := svc.Match(context.Background(), "the shopping one", "token-a")
	if err != nil {
		t.Fatalf("Match err: %v", err)
	}
	if got != (model.SimilarFound{Name: "amazonprime"}) {
		t.Fatalf("expected similar amazonprime, got %#v", got)
	}
	if resolver.calls != 1 {
		t.Fatalf("expected one resolver call, got %d", resolver.calls)
	}
}

func TestMatchIgnoresResolverOutsideInventory(t *testing.T) {
	resolver := &fakeResolver{name: "Disney+", ok: true}
	svc := newTestService(t, resolver, "Netflix")

	got, err := svc.Match(context.Background(), "mouse movies", "token-a")
	if err != nil {
		t.Fatalf("Match err: %v", err)
	}
	if got != (model.NotFound{}) {
		t.Fatalf("expected not found, got %#v", got)
	}
}

func TestMatchResolverErrorDegradesToNotFound(t *testing.T) {
	resolver := &fakeResolver{err: errors.New("model unavailable")}
	svc := newTestService(t, resolver, "Netflix")

	got, err := svc.Match(context.Background(), "zzzzzz", "token-a")
	if err != nil {
		t.Fatalf("Match err: %v", err)
	}
	if got != (model.NotFound{}) {
		t.Fatalf("expected not found, got %#v", got)
	}
}

func TestRegisterRejectsEmptyName(t *testing.T) {
	svc := newTestService(t, nil)
	if _, err := svc.Register(context.Background(), "token-a", "?!"); !errors.Is(err, ErrNameRequired) {
		t.Fatalf("expected ErrNameRequired, got %v", err)
	}
}

func TestClosestPrefersSmallestDistance(t *testing.T) {
	got, ok := closest("hul", []string{"hulu", "hulkapp"})
	if !ok || got != "hulu" {
		t.Fatalf("expected hulu, got %q (%v)", got, ok)
	}
	if _, ok := closest("ab", []string{"abcdefgh"}); ok {
		t.Fatal("expected short query to need a close edit distance")
	}
}
