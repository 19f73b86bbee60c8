// Package tests provides reusable contract suites for ports implementations.
package tests

import (
	"context"
	"errors"
	"testing"

	"menuflow/pkg/domain"
	"menuflow/pkg/ports"
)

// SessionStoreContractTest verifies that an adapter complies with
// ports.SessionStore. Call it from the adapter's own test package.
func SessionStoreContractTest(t *testing.T, store ports.SessionStore) {
	t.Helper()
	ctx := context.Background()

	t.Run("Load_NotFound", func(t *testing.T) {
		_, err := store.Load(ctx, "absent-user")
		if !errors.Is(err, domain.ErrSessionNotFound) {
			t.Fatalf("expected ErrSessionNotFound, got %v", err)
		}
	})

	t.Run("Save_Load_RoundTrip", func(t *testing.T) {
		s := domain.NewSession("contract-user", "main")
		s.MergeContext(map[string]any{"track_id": "a"})
		s.PushReturn("main")
		s.Turn("list", 1)
		s.RecordSelection("tracks", domain.SelectSingle, map[string]any{"target": "a"})

		if err := store.Save(ctx, s); err != nil {
			t.Fatalf("save failed: %v", err)
		}

		got, err := store.Load(ctx, "contract-user")
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if got.CurrentScreen != "main" {
			t.Errorf("current screen: got %q, want %q", got.CurrentScreen, "main")
		}
		if got.Context["track_id"] != "a" {
			t.Errorf("context not preserved: %v", got.Context)
		}
		if len(got.ReturnStack) != 1 || got.ReturnStack[0] != "main" {
			t.Errorf("return stack not preserved: %v", got.ReturnStack)
		}
		if got.Page("list") != 1 {
			t.Errorf("pagination not preserved: %v", got.Pagination)
		}
		if len(got.Selections) != 1 {
			t.Errorf("selections not preserved: %v", got.Selections)
		}
	})

	t.Run("Load_Isolated", func(t *testing.T) {
		s := domain.NewSession("isolated-user", "main")
		if err := store.Save(ctx, s); err != nil {
			t.Fatalf("save failed: %v", err)
		}

		first, err := store.Load(ctx, "isolated-user")
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		first.CurrentScreen = "mutated"
		first.Context["k"] = "v"

		second, err := store.Load(ctx, "isolated-user")
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if second.CurrentScreen != "main" {
			t.Error("store handed out a shared session pointer")
		}
		if _, ok := second.Context["k"]; ok {
			t.Error("store handed out a shared context map")
		}
	})

	t.Run("List", func(t *testing.T) {
		if err := store.Save(ctx, domain.NewSession("list-user", "main")); err != nil {
			t.Fatalf("save failed: %v", err)
		}
		ids, err := store.List(ctx)
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		found := false
		for _, id := range ids {
			if id == "list-user" {
				found = true
			}
		}
		if !found {
			t.Errorf("list-user missing from %v", ids)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := store.Save(ctx, domain.NewSession("del-user", "main")); err != nil {
			t.Fatalf("save failed: %v", err)
		}
		if err := store.Delete(ctx, "del-user"); err != nil {
			t.Fatalf("delete failed: %v", err)
		}
		if _, err := store.Load(ctx, "del-user"); !errors.Is(err, domain.ErrSessionNotFound) {
			t.Fatalf("expected ErrSessionNotFound after delete, got %v", err)
		}
		// Deleting again is not an error.
		if err := store.Delete(ctx, "del-user"); err != nil {
			t.Fatalf("repeated delete failed: %v", err)
		}
	})
}
