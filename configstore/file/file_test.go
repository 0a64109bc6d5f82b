package file

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/giantswarm/oauth-compliance/configstore"
)

func writeConfigFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config file %s: %v", name, err)
	}
}

func TestStore_Get(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "oauth_server_pkce.settings.yml", `
enforcement: mandatory
s256: true
plain: false
`)

	store, err := New(dir, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	record, err := store.Get(context.Background(), "oauth_server_pkce.settings")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	if got := record.GetString("enforcement", ""); got != "mandatory" {
		t.Errorf("enforcement = %q, want %q", got, "mandatory")
	}
	if !record.GetBool("s256", false) {
		t.Error("s256 should be true")
	}
}

func TestStore_GetMissing(t *testing.T) {
	store, err := New(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	_, err = store.Get(context.Background(), "missing")
	if !errors.Is(err, configstore.ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestStore_SkipsMalformedFiles(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "good.settings.yml", "mode: strict\n")
	writeConfigFile(t, dir, "bad.settings.yml", ":\n  - [broken")
	writeConfigFile(t, dir, "ignored.txt", "not yaml\n")

	store, err := New(dir, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	names, err := store.Names(context.Background())
	if err != nil {
		t.Fatalf("Names() error = %v", err)
	}
	if want := []string{"good.settings"}; !reflect.DeepEqual(names, want) {
		t.Errorf("Names() = %v, want %v", names, want)
	}
}

func TestStore_YamlExtension(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "a.settings.yaml", "k: v\n")

	store, err := New(dir, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if _, err := store.Get(context.Background(), "a.settings"); err != nil {
		t.Errorf("Get() error = %v, want nil for .yaml file", err)
	}
}

func TestStore_Reload(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "test.settings.yml", "mode: before\n")

	store, err := New(dir, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	writeConfigFile(t, dir, "test.settings.yml", "mode: after\n")
	if err := store.Reload(); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}

	record, err := store.Get(context.Background(), "test.settings")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got := record.GetString("mode", ""); got != "after" {
		t.Errorf("mode = %q, want %q after reload", got, "after")
	}
}

func TestNew_MissingDirectory(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "does-not-exist"), nil); err == nil {
		t.Error("New() should fail for a missing directory")
	}
}
