package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"filedesk-backend/internal/auth"
	"filedesk-backend/internal/kv"
	"filedesk-backend/internal/models"
	"filedesk-backend/internal/store"

	"go.uber.org/zap"
)

func newServices(t *testing.T) (*AuthService, *FileService) {
	t.Helper()
	backend := kv.NewMemoryStore()
	st := store.New(backend)
	resolver := auth.NewResolver(backend)
	log := zap.NewNop()
	return NewAuthService(st, resolver, Delays{}, log),
		NewFileService(st, resolver, Delays{}, log)
}

func mustStatus(t *testing.T, err error, want int) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected status %d error, got nil", want)
	}
	var opErr *Error
	if !errors.As(err, &opErr) {
		t.Fatalf("expected *service.Error, got %T: %v", err, err)
	}
	if opErr.Status != want {
		t.Fatalf("expected status %d, got %d (%s)", want, opErr.Status, opErr.Message)
	}
}

// === Auth ===

func TestRegisterThenLoginReturnsSameUser(t *testing.T) {
	authSvc, _ := newServices(t)
	ctx := context.Background()

	reg, err := authSvc.Register(ctx, "a@x.com", "A", "pw1")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if reg.Token != "mock-jwt-"+reg.User.ID {
		t.Errorf("token %q does not carry the user id %q", reg.Token, reg.User.ID)
	}

	login, err := authSvc.Login(ctx, "a@x.com", "pw1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if login.User.ID != reg.User.ID {
		t.Errorf("login returned user %q, registered %q", login.User.ID, reg.User.ID)
	}
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	authSvc, _ := newServices(t)
	ctx := context.Background()

	if _, err := authSvc.Register(ctx, "a@x.com", "A", "pw1"); err != nil {
		t.Fatal(err)
	}
	_, err := authSvc.Register(ctx, "a@x.com", "Other", "pw2")
	mustStatus(t, err, http.StatusConflict)

	// The first registration must be untouched: the original password still
	// logs in, the second one never does.
	if _, err := authSvc.Login(ctx, "a@x.com", "pw1"); err != nil {
		t.Errorf("original credentials should survive the conflict: %v", err)
	}
	_, err = authSvc.Login(ctx, "a@x.com", "pw2")
	mustStatus(t, err, http.StatusUnauthorized)
}

func TestLoginWrongPassword(t *testing.T) {
	authSvc, _ := newServices(t)
	_, err := authSvc.Login(context.Background(), "user@example.com", "wrong")
	mustStatus(t, err, http.StatusUnauthorized)
}

func TestLoginSeedUser(t *testing.T) {
	authSvc, _ := newServices(t)

	result, err := authSvc.Login(context.Background(), "user@example.com", "demo")
	if err != nil {
		t.Fatalf("seed user login failed: %v", err)
	}
	if result.User.ID != "u1" || result.User.Name != "Demo" {
		t.Errorf("unexpected seed user: %+v", result.User)
	}
}

func TestWhoamiWithoutSession(t *testing.T) {
	authSvc, _ := newServices(t)
	_, err := authSvc.Whoami(context.Background())
	mustStatus(t, err, http.StatusUnauthorized)
}

func TestWhoamiAfterRegister(t *testing.T) {
	authSvc, _ := newServices(t)
	ctx := context.Background()

	reg, err := authSvc.Register(ctx, "a@x.com", "A", "pw1")
	if err != nil {
		t.Fatal(err)
	}

	user, err := authSvc.Whoami(ctx)
	if err != nil {
		t.Fatalf("whoami failed: %v", err)
	}
	if user.ID != reg.User.ID || user.Email != "a@x.com" || user.Name != "A" {
		t.Errorf("unexpected whoami result: %+v", user)
	}
}

func TestWhoamiStaleToken(t *testing.T) {
	authSvc, _ := newServices(t)
	ctx := auth.WithToken(context.Background(), auth.Token("gone"))

	_, err := authSvc.Whoami(ctx)
	mustStatus(t, err, http.StatusNotFound)
}

func TestLogoutEndsSession(t *testing.T) {
	authSvc, _ := newServices(t)
	ctx := context.Background()

	if _, err := authSvc.Register(ctx, "a@x.com", "A", "pw1"); err != nil {
		t.Fatal(err)
	}
	if err := authSvc.Logout(ctx); err != nil {
		t.Fatal(err)
	}
	_, err := authSvc.Whoami(ctx)
	mustStatus(t, err, http.StatusUnauthorized)
}

// === Files ===

func register(t *testing.T, authSvc *AuthService, email string) context.Context {
	t.Helper()
	result, err := authSvc.Register(context.Background(), email, email, "pw")
	if err != nil {
		t.Fatal(err)
	}
	// Sessions are addressed by explicit tokens so that tests can hold several
	// at once without fighting over the shared stored token.
	return auth.WithToken(context.Background(), result.Token)
}

func TestFileOpsRequireSession(t *testing.T) {
	_, fileSvc := newServices(t)
	ctx := context.Background()

	if _, err := fileSvc.List(ctx, ""); err == nil {
		t.Error("list without session should fail")
	} else {
		mustStatus(t, err, http.StatusUnauthorized)
	}
	_, err := fileSvc.Create(ctx, "a.txt", "", models.TypeFile)
	mustStatus(t, err, http.StatusUnauthorized)
}

func TestCreateFileDefaults(t *testing.T) {
	authSvc, fileSvc := newServices(t)
	ctx := register(t, authSvc, "a@x.com")

	entry, err := fileSvc.Create(ctx, "note.txt", "", "")
	if err != nil {
		t.Fatal(err)
	}
	if entry.Type != models.TypeFile || entry.Parent != models.RootParent {
		t.Errorf("unexpected defaults: %+v", entry)
	}
	if entry.Content == nil || *entry.Content != "" || entry.Size == nil || *entry.Size != 0 {
		t.Errorf("new file should have empty content and size 0: %+v", entry)
	}
	if entry.Modified == 0 {
		t.Error("new entry should be stamped")
	}
}

func TestCreateDirHasNoContent(t *testing.T) {
	authSvc, fileSvc := newServices(t)
	ctx := register(t, authSvc, "a@x.com")

	dir, err := fileSvc.Create(ctx, "docs", "", models.TypeDir)
	if err != nil {
		t.Fatal(err)
	}
	if dir.Content != nil || dir.Size != nil {
		t.Errorf("directory should carry neither content nor size: %+v", dir)
	}
}

func TestCreateDoesNotCheckSiblingNames(t *testing.T) {
	// Creation deliberately skips the collision check that rename enforces;
	// the asymmetry is observable behavior and must stay.
	authSvc, fileSvc := newServices(t)
	ctx := register(t, authSvc, "a@x.com")

	if _, err := fileSvc.Create(ctx, "same.txt", "", models.TypeFile); err != nil {
		t.Fatal(err)
	}
	if _, err := fileSvc.Create(ctx, "same.txt", "", models.TypeFile); err != nil {
		t.Errorf("duplicate sibling name at create should be allowed: %v", err)
	}

	entries, err := fileSvc.List(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Errorf("expected both entries, got %d", len(entries))
	}
}

func TestSaveUpdatesSizeAndModified(t *testing.T) {
	authSvc, fileSvc := newServices(t)
	ctx := register(t, authSvc, "a@x.com")

	entry, err := fileSvc.Create(ctx, "note.txt", "", models.TypeFile)
	if err != nil {
		t.Fatal(err)
	}

	first, err := fileSvc.Save(ctx, entry.ID, "hello")
	if err != nil {
		t.Fatal(err)
	}
	if *first.Size != 5 || *first.Content != "hello" {
		t.Errorf("expected size 5 and content hello, got %+v", first)
	}
	if first.Modified <= entry.Modified {
		t.Errorf("modified did not increase: %d -> %d", entry.Modified, first.Modified)
	}

	second, err := fileSvc.Save(ctx, entry.ID, "hi")
	if err != nil {
		t.Fatal(err)
	}
	if *second.Size != 2 {
		t.Errorf("expected size 2, got %d", *second.Size)
	}
	if second.Modified <= first.Modified {
		t.Errorf("modified must strictly increase even under back-to-back saves: %d -> %d",
			first.Modified, second.Modified)
	}
}

func TestSaveMissingFile(t *testing.T) {
	authSvc, fileSvc := newServices(t)
	ctx := register(t, authSvc, "a@x.com")

	_, err := fileSvc.Save(ctx, "nope", "x")
	mustStatus(t, err, http.StatusNotFound)
}

func TestRename(t *testing.T) {
	authSvc, fileSvc := newServices(t)
	ctx := register(t, authSvc, "a@x.com")

	a, err := fileSvc.Create(ctx, "a.txt", "", models.TypeFile)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fileSvc.Create(ctx, "b.txt", "", models.TypeFile); err != nil {
		t.Fatal(err)
	}

	// Sibling collision.
	_, err = fileSvc.Rename(ctx, a.ID, "b.txt")
	mustStatus(t, err, http.StatusConflict)

	// Empty after trim.
	_, err = fileSvc.Rename(ctx, a.ID, "   ")
	mustStatus(t, err, http.StatusBadRequest)

	// Unique name succeeds, is trimmed, and shows up in a subsequent Get.
	renamed, err := fileSvc.Rename(ctx, a.ID, "  c.txt  ")
	if err != nil {
		t.Fatal(err)
	}
	if renamed.Name != "c.txt" {
		t.Errorf("expected trimmed name c.txt, got %q", renamed.Name)
	}
	got, err := fileSvc.Get(ctx, a.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "c.txt" {
		t.Errorf("rename not visible via Get: %q", got.Name)
	}
	if got.Modified <= a.Modified {
		t.Error("rename should restamp the entry")
	}
}

func TestRenameToOwnNameIsAllowed(t *testing.T) {
	authSvc, fileSvc := newServices(t)
	ctx := register(t, authSvc, "a@x.com")

	a, err := fileSvc.Create(ctx, "a.txt", "", models.TypeFile)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fileSvc.Rename(ctx, a.ID, "a.txt"); err != nil {
		t.Errorf("renaming an entry to its own name should not conflict: %v", err)
	}
}

func TestDelete(t *testing.T) {
	authSvc, fileSvc := newServices(t)
	ctx := register(t, authSvc, "a@x.com")

	entry, err := fileSvc.Create(ctx, "a.txt", "", models.TypeFile)
	if err != nil {
		t.Fatal(err)
	}

	if err := fileSvc.Delete(ctx, entry.ID); err != nil {
		t.Fatal(err)
	}

	_, err = fileSvc.Get(ctx, entry.ID)
	mustStatus(t, err, http.StatusNotFound)

	entries, err := fileSvc.List(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("deleted entry still listed: %+v", entries)
	}

	// Second delete of the same id fails.
	mustStatus(t, fileSvc.Delete(ctx, entry.ID), http.StatusNotFound)
}

func TestDeleteDirectoryOrphansChildren(t *testing.T) {
	authSvc, fileSvc := newServices(t)
	ctx := register(t, authSvc, "a@x.com")

	dir, err := fileSvc.Create(ctx, "docs", "", models.TypeDir)
	if err != nil {
		t.Fatal(err)
	}
	child, err := fileSvc.Create(ctx, "note.txt", dir.ID, models.TypeFile)
	if err != nil {
		t.Fatal(err)
	}

	if err := fileSvc.Delete(ctx, dir.ID); err != nil {
		t.Fatal(err)
	}

	// Non-recursive: the child survives, addressable by id, still listed
	// under its old (now dangling) parent id.
	got, err := fileSvc.Get(ctx, child.ID)
	if err != nil {
		t.Fatalf("orphaned child should still resolve: %v", err)
	}
	if got.Parent != dir.ID {
		t.Errorf("orphan parent should still be %q, got %q", dir.ID, got.Parent)
	}

	root, err := fileSvc.List(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(root) != 0 {
		t.Errorf("orphan must not surface at root: %+v", root)
	}
}

func TestMove(t *testing.T) {
	authSvc, fileSvc := newServices(t)
	ctx := register(t, authSvc, "a@x.com")

	dir, err := fileSvc.Create(ctx, "docs", "", models.TypeDir)
	if err != nil {
		t.Fatal(err)
	}
	file, err := fileSvc.Create(ctx, "note.txt", "", models.TypeFile)
	if err != nil {
		t.Fatal(err)
	}

	moved, err := fileSvc.Move(ctx, file.ID, dir.ID)
	if err != nil {
		t.Fatal(err)
	}
	if moved.Parent != dir.ID {
		t.Errorf("expected parent %q, got %q", dir.ID, moved.Parent)
	}
	if moved.Modified <= file.Modified {
		t.Error("move should restamp the entry")
	}

	inDir, err := fileSvc.List(ctx, dir.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(inDir) != 1 || inDir[0].ID != file.ID {
		t.Errorf("moved file not listed under new parent: %+v", inDir)
	}
}

func TestMoveHasNoCycleCheck(t *testing.T) {
	// Moving a directory into its own child is accepted and produces an
	// unreachable subtree, exactly like the original demo.
	authSvc, fileSvc := newServices(t)
	ctx := register(t, authSvc, "a@x.com")

	outer, err := fileSvc.Create(ctx, "outer", "", models.TypeDir)
	if err != nil {
		t.Fatal(err)
	}
	inner, err := fileSvc.Create(ctx, "inner", outer.ID, models.TypeDir)
	if err != nil {
		t.Fatal(err)
	}

	moved, err := fileSvc.Move(ctx, outer.ID, inner.ID)
	if err != nil {
		t.Fatalf("cycle-producing move should be accepted: %v", err)
	}
	if moved.Parent != inner.ID {
		t.Errorf("expected parent %q, got %q", inner.ID, moved.Parent)
	}
}

func TestCrossUserIsolation(t *testing.T) {
	authSvc, fileSvc := newServices(t)
	ctxA := register(t, authSvc, "a@x.com")
	ctxB := register(t, authSvc, "b@x.com")

	entry, err := fileSvc.Create(ctxA, "secret.txt", "", models.TypeFile)
	if err != nil {
		t.Fatal(err)
	}

	entries, err := fileSvc.List(ctxB, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("user B sees user A's entries: %+v", entries)
	}

	_, err = fileSvc.Get(ctxB, entry.ID)
	mustStatus(t, err, http.StatusNotFound)
	_, err = fileSvc.Save(ctxB, entry.ID, "overwritten")
	mustStatus(t, err, http.StatusNotFound)
	_, err = fileSvc.Rename(ctxB, entry.ID, "grabbed.txt")
	mustStatus(t, err, http.StatusNotFound)
	_, err = fileSvc.Move(ctxB, entry.ID, models.RootParent)
	mustStatus(t, err, http.StatusNotFound)
	mustStatus(t, fileSvc.Delete(ctxB, entry.ID), http.StatusNotFound)

	// And user A's entry is untouched by all of it.
	got, err := fileSvc.Get(ctxA, entry.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "secret.txt" || *got.Content != "" {
		t.Errorf("entry was modified across the isolation boundary: %+v", got)
	}
}

func TestEndToEndScenario(t *testing.T) {
	authSvc, fileSvc := newServices(t)
	ctx := register(t, authSvc, "a@x.com")

	docs, err := fileSvc.Create(ctx, "docs", "", models.TypeDir)
	if err != nil {
		t.Fatal(err)
	}
	note, err := fileSvc.Create(ctx, "note.txt", docs.ID, models.TypeFile)
	if err != nil {
		t.Fatal(err)
	}

	saved, err := fileSvc.Save(ctx, note.ID, "hello")
	if err != nil {
		t.Fatal(err)
	}
	if *saved.Size != 5 {
		t.Errorf("expected size 5, got %d", *saved.Size)
	}

	if _, err := fileSvc.Rename(ctx, docs.ID, "archive"); err != nil {
		t.Fatal(err)
	}

	root, err := fileSvc.List(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(root) != 1 || root[0].Name != "archive" {
		t.Errorf("expected one root entry named archive, got %+v", root)
	}
}
