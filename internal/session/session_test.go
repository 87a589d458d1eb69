package session

import (
	"path/filepath"
	"testing"
)

func TestSaveCurrentClear(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "session.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer store.Close()

	if _, ok, err := store.Current(); err != nil || ok {
		t.Fatalf("fresh store should be empty, got ok=%v err=%v", ok, err)
	}

	sess := Session{Token: "jwt-abc", Username: "ada", Nickname: "Ada"}
	if err := store.Save(sess); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, ok, err := store.Current()
	if err != nil || !ok {
		t.Fatalf("Current after Save: ok=%v err=%v", ok, err)
	}
	if got.Token != "jwt-abc" || got.Username != "ada" || got.Nickname != "Ada" {
		t.Errorf("got %+v", got)
	}
	if got.SavedAt.IsZero() {
		t.Errorf("SavedAt not recorded")
	}

	// saving again replaces the single row
	if err := store.Save(Session{Token: "jwt-def", Username: "ada"}); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}
	got, ok, err = store.Current()
	if err != nil || !ok {
		t.Fatalf("Current after second Save: ok=%v err=%v", ok, err)
	}
	if got.Token != "jwt-def" {
		t.Errorf("token = %q, want jwt-def", got.Token)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, ok, err := store.Current(); err != nil || ok {
		t.Fatalf("store should be empty after Clear, got ok=%v err=%v", ok, err)
	}

	// clearing twice is fine
	if err := store.Clear(); err != nil {
		t.Fatalf("second Clear failed: %v", err)
	}
}

func TestSaveRejectsEmptyToken(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "session.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer store.Close()

	if err := store.Save(Session{Username: "ada"}); err == nil {
		t.Fatal("want an error for an empty token")
	}
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Fatal("want an error for an empty path")
	}
}
