package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/roguepikachu/canopy/internal/apperror"
	"github.com/roguepikachu/canopy/internal/domain"
	"github.com/roguepikachu/canopy/internal/repository/fake"
)

type stubClock struct{ t time.Time }

func (s stubClock) Now() time.Time { return s.t }

func snippetWithUID(uid string) domain.Snippet {
	return domain.Snippet{
		UID: uid, Title: "t", SourceCode: "s", Language: "go",
		Visibility: domain.VisibilityPublic, Theme: "monokai", UserID: 1,
		CreatedAt: time.Now().UTC(),
	}
}

func newTestService(t *testing.T, items ...domain.Snippet) (*Service, *fake.SnippetRepository) {
	t.Helper()
	snippets := fake.NewSnippetRepository(fake.WithItems(items...))
	users := fake.NewUserRepository(fake.WithUsers(
		domain.User{ID: 1, Name: "Ada", Username: "ada", Email: "ada@example.com"},
		domain.User{ID: 2, Name: "Bob", Username: "bob", Email: "bob@example.com"},
	))
	fixed := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)
	return NewService(snippets, users, stubClock{t: fixed}), snippets
}

func validCreateReq() domain.CreateSnippetRequest {
	return domain.CreateSnippetRequest{
		Title:      "fizzbuzz",
		SourceCode: "print(1)",
		Language:   "py",
		Tags:       []string{"a", "b"},
		Visibility: domain.VisibilityPublic,
		Theme:      "monokai",
	}
}

func TestCreateSnippet_OK(t *testing.T) {
	svc, _ := newTestService(t)
	got, err := svc.CreateSnippet(context.Background(), 1, validCreateReq())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got.UID) != UIDLength {
		t.Errorf("want %d-char uid, got %q", UIDLength, got.UID)
	}
	if got.ID == 0 {
		t.Error("expected assigned internal id")
	}
	if got.OwnerName != "Ada" {
		t.Errorf("want owner name resolved, got %q", got.OwnerName)
	}
}

func TestCreateSnippet_TagsRoundTrip(t *testing.T) {
	svc, _ := newTestService(t)
	created, err := svc.CreateSnippet(context.Background(), 1, validCreateReq())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	viewer := 1
	got, err := svc.GetSnippet(context.Background(), created.UID, &viewer)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "a" || got.Tags[1] != "b" {
		t.Errorf("tags must round-trip in order: %v", got.Tags)
	}
}

func TestCreateSnippet_UnknownLanguage(t *testing.T) {
	svc, _ := newTestService(t)
	req := validCreateReq()
	req.Language = "zz"
	_, err := svc.CreateSnippet(context.Background(), 1, req)
	if !errors.Is(err, apperror.ErrValidation) {
		t.Fatalf("want validation error, got %v", err)
	}
}

func TestCreateSnippet_PrivateRequiresPassCode(t *testing.T) {
	svc, _ := newTestService(t)
	req := validCreateReq()
	req.Visibility = domain.VisibilityPrivate
	if _, err := svc.CreateSnippet(context.Background(), 1, req); !errors.Is(err, apperror.ErrValidation) {
		t.Fatalf("want validation error, got %v", err)
	}
	req.PassCode = "abc123"
	got, err := svc.CreateSnippet(context.Background(), 1, req)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.PassCode != "abc123" {
		t.Errorf("pass code not stored: %q", got.PassCode)
	}
}

func TestGetSnippet_PublicVisibleToAnyone(t *testing.T) {
	s := snippetWithUID("publicuid1")
	svc, _ := newTestService(t, s)

	if _, err := svc.GetSnippet(context.Background(), "publicuid1", nil); err != nil {
		t.Errorf("anonymous read of public snippet: %v", err)
	}
	stranger := 2
	if _, err := svc.GetSnippet(context.Background(), "publicuid1", &stranger); err != nil {
		t.Errorf("stranger read of public snippet: %v", err)
	}
}

func TestGetSnippet_PrivateOnlyOwner(t *testing.T) {
	s := snippetWithUID("privateuid")
	s.Visibility = domain.VisibilityPrivate
	s.PassCode = "abc123"
	svc, _ := newTestService(t, s)

	owner := 1
	if _, err := svc.GetSnippet(context.Background(), "privateuid", &owner); err != nil {
		t.Errorf("owner read: %v", err)
	}
	stranger := 2
	if _, err := svc.GetSnippet(context.Background(), "privateuid", &stranger); !errors.Is(err, apperror.ErrForbidden) {
		t.Errorf("want forbidden for stranger, got %v", err)
	}
	if _, err := svc.GetSnippet(context.Background(), "privateuid", nil); !errors.Is(err, apperror.ErrForbidden) {
		t.Errorf("want forbidden for anonymous, got %v", err)
	}
}

func TestGetSnippet_NotFound(t *testing.T) {
	svc, _ := newTestService(t)
	if _, err := svc.GetSnippet(context.Background(), "absentuid0", nil); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("want not found, got %v", err)
	}
}

func TestUnlockPrivateSnippet(t *testing.T) {
	s := snippetWithUID("lockeduid0")
	s.Visibility = domain.VisibilityPrivate
	s.PassCode = "abc123"
	svc, _ := newTestService(t, s)

	if _, err := svc.UnlockPrivateSnippet(context.Background(), "lockeduid0", "abc123"); err != nil {
		t.Errorf("correct pass code: %v", err)
	}
	if _, err := svc.UnlockPrivateSnippet(context.Background(), "lockeduid0", "xyz789"); !errors.Is(err, apperror.ErrForbidden) {
		t.Errorf("want forbidden on mismatch, got %v", err)
	}
	if _, err := svc.UnlockPrivateSnippet(context.Background(), "absentuid0", "abc123"); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("want not found, got %v", err)
	}
	if _, err := svc.UnlockPrivateSnippet(context.Background(), "lockeduid0", "bad"); !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("want validation error on malformed code, got %v", err)
	}
}

func TestGetSnippetForEdit_OwnerOnly(t *testing.T) {
	svc, _ := newTestService(t, snippetWithUID("editable01"))
	if _, err := svc.GetSnippetForEdit(context.Background(), "editable01", 1); err != nil {
		t.Errorf("owner edit view: %v", err)
	}
	if _, err := svc.GetSnippetForEdit(context.Background(), "editable01", 2); !errors.Is(err, apperror.ErrForbidden) {
		t.Errorf("want forbidden for non-owner, got %v", err)
	}
}

func TestUpdateSnippet_OwnerOnlyAndPartial(t *testing.T) {
	svc, repo := newTestService(t, snippetWithUID("updatable1"))

	title := "renamed"
	if err := svc.UpdateSnippet(context.Background(), "updatable1", 2, domain.UpdateSnippetRequest{Title: &title}); !errors.Is(err, apperror.ErrForbidden) {
		t.Fatalf("want forbidden for non-owner, got %v", err)
	}

	if err := svc.UpdateSnippet(context.Background(), "updatable1", 1, domain.UpdateSnippetRequest{Title: &title}); err != nil {
		t.Fatalf("owner update: %v", err)
	}
	got, err := repo.FindByUID(context.Background(), "updatable1")
	if err != nil {
		t.Fatalf("refetch: %v", err)
	}
	if got.Title != "renamed" {
		t.Errorf("title not updated: %q", got.Title)
	}
	// Everything else untouched.
	if got.SourceCode != "s" || got.Language != "go" || got.Visibility != domain.VisibilityPublic || got.Theme != "monokai" {
		t.Errorf("unexpected field drift: %+v", got)
	}
}

func TestUpdateSnippet_PassCodeAloneOnPrivateSnippet(t *testing.T) {
	private := snippetWithUID("privupd001")
	private.Visibility = domain.VisibilityPrivate
	private.PassCode = "abc123"
	svc, repo := newTestService(t, private)

	// A lone malformed pass code must not reach the store.
	bad := "x"
	err := svc.UpdateSnippet(context.Background(), "privupd001", 1, domain.UpdateSnippetRequest{PassCode: &bad})
	if !errors.Is(err, apperror.ErrValidation) {
		t.Fatalf("want validation error, got %v", err)
	}
	got, _ := repo.FindByUID(context.Background(), "privupd001")
	if got.PassCode != "abc123" {
		t.Fatalf("stored pass code changed to %q", got.PassCode)
	}

	// A well-formed replacement goes through.
	good := "xy12ab"
	if err := svc.UpdateSnippet(context.Background(), "privupd001", 1, domain.UpdateSnippetRequest{PassCode: &good}); err != nil {
		t.Fatalf("valid pass code update: %v", err)
	}
	got, _ = repo.FindByUID(context.Background(), "privupd001")
	if got.PassCode != "xy12ab" {
		t.Errorf("pass code not updated: %q", got.PassCode)
	}
	if got.Visibility != domain.VisibilityPrivate {
		t.Errorf("visibility drifted: %d", got.Visibility)
	}
}

func TestUpdateSnippet_FieldsMapOneToOne(t *testing.T) {
	svc, repo := newTestService(t, snippetWithUID("mapping001"))

	tags := []string{"x", "y"}
	vis := domain.VisibilityPrivate
	code := "ab12cd"
	theme := "dracula"
	lang := "py"
	src := "print(2)"
	req := domain.UpdateSnippetRequest{
		SourceCode: &src,
		Language:   &lang,
		Tags:       &tags,
		Visibility: &vis,
		PassCode:   &code,
		Theme:      &theme,
	}
	if err := svc.UpdateSnippet(context.Background(), "mapping001", 1, req); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ := repo.FindByUID(context.Background(), "mapping001")
	if got.SourceCode != "print(2)" {
		t.Errorf("source_code: %q", got.SourceCode)
	}
	if got.Language != "py" {
		t.Errorf("language: %q", got.Language)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "x" {
		t.Errorf("tags: %v", got.Tags)
	}
	if got.Visibility != domain.VisibilityPrivate {
		t.Errorf("visibility: %d", got.Visibility)
	}
	if got.PassCode != "ab12cd" {
		t.Errorf("pass_code: %q", got.PassCode)
	}
	if got.Theme != "dracula" {
		t.Errorf("theme: %q", got.Theme)
	}
}

func TestDeleteSnippet_OwnerOnly(t *testing.T) {
	svc, _ := newTestService(t, snippetWithUID("deletable1"))
	if err := svc.DeleteSnippet(context.Background(), "deletable1", 2); !errors.Is(err, apperror.ErrForbidden) {
		t.Fatalf("want forbidden for non-owner, got %v", err)
	}
	if err := svc.DeleteSnippet(context.Background(), "deletable1", 1); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if _, err := svc.GetSnippet(context.Background(), "deletable1", nil); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("deleted snippet still readable: %v", err)
	}
}

func TestListPublic_FilterAndIdempotence(t *testing.T) {
	now := time.Now().UTC()
	pub1 := snippetWithUID("pub0000001")
	pub1.Title = "golang tips"
	pub1.CreatedAt = now
	pub2 := snippetWithUID("pub0000002")
	pub2.Title = "misc"
	pub2.Tags = []string{"golang"}
	pub2.CreatedAt = now.Add(time.Second)
	priv := snippetWithUID("prv0000001")
	priv.Title = "golang secrets"
	priv.Visibility = domain.VisibilityPrivate
	priv.PassCode = "ab12cd"
	svc, _ := newTestService(t, pub1, pub2, priv)

	items, total, err := svc.ListPublic(context.Background(), "golang", 1, 10)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if total != 2 || len(items) != 2 {
		t.Fatalf("want 2 public matches, got total=%d len=%d", total, len(items))
	}

	items2, total2, err := svc.ListPublic(context.Background(), "golang", 1, 10)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if total2 != total || len(items2) != len(items) {
		t.Error("repeated query must return identical results")
	}
	for i := range items {
		if items[i].UID != items2[i].UID {
			t.Errorf("order drifted at %d: %s vs %s", i, items[i].UID, items2[i].UID)
		}
	}
}

func TestListMine_CapsPaging(t *testing.T) {
	svc, _ := newTestService(t)
	if _, err := svc.ListMine(context.Background(), 1, "", 0, 100000); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}
