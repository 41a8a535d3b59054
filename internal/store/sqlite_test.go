package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/chirag7gaming/my-code/internal/store"
	"github.com/chirag7gaming/my-code/tests/testutil"
)

func TestAbsentKeyIsNotAnError(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	if _, ok, err := s.GetString(ctx, "never_written"); err != nil || ok {
		t.Errorf("GetString absent: ok=%v err=%v, want ok=false err=nil", ok, err)
	}
	if _, ok, err := s.GetBool(ctx, "never_written"); err != nil || ok {
		t.Errorf("GetBool absent: ok=%v err=%v, want ok=false err=nil", ok, err)
	}
	if _, ok, err := s.GetInt(ctx, "never_written"); err != nil || ok {
		t.Errorf("GetInt absent: ok=%v err=%v, want ok=false err=nil", ok, err)
	}
}

func TestTypedSetGet(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	if err := s.SetString(ctx, store.KeyProjects, `[{"id":"p"}]`); err != nil {
		t.Fatalf("SetString: %v", err)
	}
	got, ok, err := s.GetString(ctx, store.KeyProjects)
	if err != nil || !ok || got != `[{"id":"p"}]` {
		t.Errorf("GetString = (%q, %v, %v)", got, ok, err)
	}

	if err := s.SetBool(ctx, store.KeyLocalMode, true); err != nil {
		t.Fatalf("SetBool: %v", err)
	}
	b, ok, err := s.GetBool(ctx, store.KeyLocalMode)
	if err != nil || !ok || !b {
		t.Errorf("GetBool = (%v, %v, %v)", b, ok, err)
	}

	if err := s.SetInt(ctx, store.KeyThemePref, 2); err != nil {
		t.Fatalf("SetInt: %v", err)
	}
	n, ok, err := s.GetInt(ctx, store.KeyThemePref)
	if err != nil || !ok || n != 2 {
		t.Errorf("GetInt = (%d, %v, %v)", n, ok, err)
	}
}

func TestSetOverwrites(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	if err := s.SetInt(ctx, store.KeyThemePref, 1); err != nil {
		t.Fatalf("SetInt: %v", err)
	}
	if err := s.SetInt(ctx, store.KeyThemePref, 2); err != nil {
		t.Fatalf("SetInt: %v", err)
	}

	n, _, err := s.GetInt(ctx, store.KeyThemePref)
	if err != nil || n != 2 {
		t.Errorf("GetInt after overwrite = (%d, %v), want 2", n, err)
	}
}

func TestGetIntRejectsNonNumeric(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	if err := s.SetString(ctx, "bad_int", "nope"); err != nil {
		t.Fatalf("SetString: %v", err)
	}
	if _, _, err := s.GetInt(ctx, "bad_int"); err == nil {
		t.Error("GetInt on non-numeric value succeeded")
	}
}

func TestClearRemovesEverything(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	if err := s.SetString(ctx, store.KeyFiles, "[]"); err != nil {
		t.Fatalf("SetString: %v", err)
	}
	if err := s.SetBool(ctx, store.KeyLocalMode, true); err != nil {
		t.Fatalf("SetBool: %v", err)
	}

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	if _, ok, _ := s.GetString(ctx, store.KeyFiles); ok {
		t.Error("files key survived Clear")
	}
	if _, ok, _ := s.GetBool(ctx, store.KeyLocalMode); ok {
		t.Error("local-mode key survived Clear")
	}
}

func TestDurableAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.db")
	ctx := context.Background()

	s, err := store.NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	if err := s.SetString(ctx, store.KeyFiles, `[{"id":"f","name":"a.html","content":"X"}]`); err != nil {
		t.Fatalf("SetString: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("closing store: %v", err)
	}

	reopened, err := store.NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("reopening store: %v", err)
	}
	defer reopened.Close()

	got, ok, err := reopened.GetString(ctx, store.KeyFiles)
	if err != nil || !ok {
		t.Fatalf("GetString after reopen: ok=%v err=%v", ok, err)
	}
	if got == "" {
		t.Error("value lost across reopen")
	}
}
