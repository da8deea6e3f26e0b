//go:build integration

package cached

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"

	"github.com/roguepikachu/canopy/internal/domain"
	"github.com/roguepikachu/canopy/internal/repository/fake"
)

func newCached(t *testing.T, items ...domain.Snippet) (*SnippetRepository, *fake.SnippetRepository, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	primary := fake.NewSnippetRepository(fake.WithItems(items...))
	return NewSnippetRepository(primary, client, time.Minute), primary, mr
}

func publicSnippet(uid, title string, created time.Time) domain.Snippet {
	return domain.Snippet{
		UID: uid, Title: title, SourceCode: "x", Language: "go",
		Visibility: domain.VisibilityPublic, Theme: "monokai", UserID: 1, CreatedAt: created,
	}
}

func TestFindByUID_PopulatesCache(t *testing.T) {
	s := publicSnippet("cacheduid01", "hello", time.Now().UTC())
	repo, _, mr := newCached(t, s)

	got, err := repo.FindByUID(context.Background(), "cacheduid01")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.Title != "hello" {
		t.Errorf("unexpected snippet: %+v", got)
	}
	if !mr.Exists(keySnippet("cacheduid01")) {
		t.Error("expected cache entry after read")
	}
}

func TestFindByUID_ServesFromCache(t *testing.T) {
	s := publicSnippet("cacheduid02", "original", time.Now().UTC())
	repo, primary, _ := newCached(t, s)

	if _, err := repo.FindByUID(context.Background(), "cacheduid02"); err != nil {
		t.Fatalf("warm read: %v", err)
	}
	// Mutate the primary behind the cache's back; the stale cached copy wins.
	title := "mutated"
	if err := primary.Update(context.Background(), "cacheduid02", domain.SnippetPatch{Title: &title}); err != nil {
		t.Fatalf("primary update: %v", err)
	}
	got, err := repo.FindByUID(context.Background(), "cacheduid02")
	if err != nil {
		t.Fatalf("cached read: %v", err)
	}
	if got.Title != "original" {
		t.Errorf("expected cached copy, got %q", got.Title)
	}
}

func TestListPublic_CachesPageWithTotal(t *testing.T) {
	now := time.Now().UTC()
	repo, _, mr := newCached(t,
		publicSnippet("uid00000001", "alpha", now),
		publicSnippet("uid00000002", "beta", now.Add(time.Second)),
	)

	items, total, err := repo.ListPublic(context.Background(), "", 1, 10)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if total != 2 || len(items) != 2 {
		t.Fatalf("want 2/2, got total=%d len=%d", total, len(items))
	}
	if !mr.Exists(keyPublicList("", 1, 10)) {
		t.Error("expected cached page")
	}

	// Second read is idempotent and comes from the cache.
	items2, total2, err := repo.ListPublic(context.Background(), "", 1, 10)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if total2 != total || len(items2) != len(items) {
		t.Errorf("cached page mismatch: %d/%d vs %d/%d", total2, len(items2), total, len(items))
	}
}

func TestUpdate_EvictsSnippetAndPages(t *testing.T) {
	s := publicSnippet("uid00000003", "gamma", time.Now().UTC())
	repo, _, mr := newCached(t, s)

	if _, err := repo.FindByUID(context.Background(), s.UID); err != nil {
		t.Fatalf("warm read: %v", err)
	}
	if _, _, err := repo.ListPublic(context.Background(), "", 1, 10); err != nil {
		t.Fatalf("warm list: %v", err)
	}

	title := "delta"
	if err := repo.Update(context.Background(), s.UID, domain.SnippetPatch{Title: &title}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if mr.Exists(keySnippet(s.UID)) {
		t.Error("snippet cache entry not evicted")
	}
	if mr.Exists(keyPublicList("", 1, 10)) {
		t.Error("public page not evicted")
	}

	got, err := repo.FindByUID(context.Background(), s.UID)
	if err != nil {
		t.Fatalf("reread: %v", err)
	}
	if got.Title != "delta" {
		t.Errorf("expected fresh copy after eviction, got %q", got.Title)
	}
}

func TestDelete_Evicts(t *testing.T) {
	s := publicSnippet("uid00000004", "epsilon", time.Now().UTC())
	repo, _, mr := newCached(t, s)

	if _, err := repo.FindByUID(context.Background(), s.UID); err != nil {
		t.Fatalf("warm read: %v", err)
	}
	if err := repo.Delete(context.Background(), s.UID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if mr.Exists(keySnippet(s.UID)) {
		t.Error("snippet cache entry not evicted")
	}
	if _, err := repo.FindByUID(context.Background(), s.UID); err == nil {
		t.Error("deleted snippet still readable")
	}
}
