package compliance

import (
	"context"
	"errors"
	"testing"

	"github.com/giantswarm/oauth-compliance/configstore/mock"
	"github.com/giantswarm/oauth-compliance/registry"
)

func newTestAccessor(store *mock.Store, modules ...string) *Accessor {
	resolver := registry.NewResolver(nil, registry.NewStaticModules(modules...), nil)
	return NewAccessor(store, resolver, nil, nil)
}

func TestAccessor_Config(t *testing.T) {
	store := mock.New()
	store.Set("oauth_server.settings", map[string]any{"use_implicit": true})

	accessor := newTestAccessor(store)

	record := accessor.Config(context.Background(), "oauth_server.settings")
	if record == nil {
		t.Fatal("Config() = nil, want record")
	}
	if !record.GetBool("use_implicit", false) {
		t.Error("use_implicit should be true")
	}
}

func TestAccessor_ConfigMissing(t *testing.T) {
	accessor := newTestAccessor(mock.New())

	if record := accessor.Config(context.Background(), "missing"); record != nil {
		t.Errorf("Config(missing) = %v, want nil", record)
	}
}

func TestAccessor_ConfigStoreError(t *testing.T) {
	store := mock.New()
	store.GetError = errors.New("backend unavailable")

	accessor := newTestAccessor(store)

	// Store failures are absorbed, not propagated.
	if record := accessor.Config(context.Background(), "oauth_server.settings"); record != nil {
		t.Errorf("Config() = %v, want nil on store error", record)
	}
}

func TestAccessor_ConfigWithFallback(t *testing.T) {
	tests := []struct {
		name       string
		modules    []string
		records    map[string]map[string]any
		wantRecord bool
		wantValue  string
	}{
		{
			name:    "bundled identity record",
			modules: []string{"oauth_server_pkce"},
			records: map[string]map[string]any{
				"oauth_server_pkce.settings": {"enforcement": "mandatory"},
			},
			wantRecord: true,
			wantValue:  "mandatory",
		},
		{
			name:    "standalone identity record",
			modules: []string{"oauth_pkce"},
			records: map[string]map[string]any{
				"oauth_pkce.settings": {"enforcement": "optional"},
			},
			wantRecord: true,
			wantValue:  "optional",
		},
		{
			name:    "bundled identity wins over standalone record",
			modules: []string{"oauth_server_pkce", "oauth_pkce"},
			records: map[string]map[string]any{
				"oauth_server_pkce.settings": {"enforcement": "mandatory"},
				"oauth_pkce.settings":        {"enforcement": "optional"},
			},
			wantRecord: true,
			wantValue:  "mandatory",
		},
		{
			name:       "capability not enabled",
			modules:    []string{"oauth_server"},
			records:    nil,
			wantRecord: false,
		},
		{
			name:       "enabled module without record",
			modules:    []string{"oauth_server_pkce"},
			records:    nil,
			wantRecord: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := mock.New()
			for name, values := range tt.records {
				store.Set(name, values)
			}
			accessor := newTestAccessor(store, tt.modules...)

			record := accessor.ConfigWithFallback(context.Background(), registry.CapabilityPKCE, "settings")
			if (record != nil) != tt.wantRecord {
				t.Fatalf("ConfigWithFallback() record = %v, want present=%v", record, tt.wantRecord)
			}
			if record != nil {
				if got := record.GetString("enforcement", ""); got != tt.wantValue {
					t.Errorf("enforcement = %q, want %q", got, tt.wantValue)
				}
			}
		})
	}
}
