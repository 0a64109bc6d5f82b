package memory

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/giantswarm/oauth-compliance/configstore"
)

func TestStore_GetSet(t *testing.T) {
	store := New(nil)
	ctx := context.Background()

	store.Set("oauth_server.settings", map[string]any{
		"use_implicit": false,
	})

	record, err := store.Get(ctx, "oauth_server.settings")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if record.GetBool("use_implicit", true) {
		t.Error("use_implicit should be false")
	}
}

func TestStore_GetMissing(t *testing.T) {
	store := New(nil)

	_, err := store.Get(context.Background(), "missing")
	if !errors.Is(err, configstore.ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestStore_SetReplaces(t *testing.T) {
	store := New(nil)
	ctx := context.Background()

	store.Set("test.settings", map[string]any{"mode": "first"})
	store.Set("test.settings", map[string]any{"mode": "second"})

	record, err := store.Get(ctx, "test.settings")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got := record.GetString("mode", ""); got != "second" {
		t.Errorf("mode = %q, want %q", got, "second")
	}
}

func TestStore_Delete(t *testing.T) {
	store := New(nil)
	ctx := context.Background()

	store.Set("test.settings", map[string]any{"k": "v"})
	store.Delete("test.settings")

	if _, err := store.Get(ctx, "test.settings"); !errors.Is(err, configstore.ErrNotFound) {
		t.Errorf("Get() after Delete error = %v, want ErrNotFound", err)
	}
}

func TestStore_Names(t *testing.T) {
	store := New(nil)

	store.Set("b.settings", nil)
	store.Set("a.settings", nil)
	store.Set("c.settings", nil)

	names, err := store.Names(context.Background())
	if err != nil {
		t.Fatalf("Names() error = %v", err)
	}

	want := []string{"a.settings", "b.settings", "c.settings"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("Names() = %v, want %v", names, want)
	}
}
