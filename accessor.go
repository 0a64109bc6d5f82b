package compliance

import (
	"context"
	"errors"
	"log/slog"

	"github.com/giantswarm/oauth-compliance/configstore"
	"github.com/giantswarm/oauth-compliance/instrumentation"
	"github.com/giantswarm/oauth-compliance/registry"
)

// Accessor reads configuration records for the rule evaluator.
//
// Store failures never propagate: a record that cannot be fetched is
// indistinguishable from an absent record, logged at debug level. Rules treat
// a nil record as the "not configured" branch of their classification.
type Accessor struct {
	store    configstore.Store
	resolver *registry.Resolver
	logger   *slog.Logger
	inst     *instrumentation.Instrumentation
}

// NewAccessor creates a configuration accessor.
func NewAccessor(store configstore.Store, resolver *registry.Resolver, logger *slog.Logger, inst *instrumentation.Instrumentation) *Accessor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Accessor{
		store:    store,
		resolver: resolver,
		logger:   logger,
		inst:     inst,
	}
}

// Config fetches a named configuration record.
// Returns nil when the record does not exist or the store fails; the latter
// is logged at debug level and never propagated.
func (a *Accessor) Config(ctx context.Context, name string) *configstore.Record {
	record, err := a.store.Get(ctx, name)
	if err != nil {
		result := "missing"
		if !errors.Is(err, configstore.ErrNotFound) {
			result = "error"
			a.logger.Debug("Config record fetch failed, treating as absent",
				"name", name,
				"error", err)
		}
		a.recordLookup(ctx, name, result)
		return nil
	}

	a.recordLookup(ctx, name, "hit")
	return record
}

// ConfigWithFallback resolves the active identity for a capability and
// fetches that identity's record under "<identity>.<suffix>".
// Returns nil when no identity of the capability is enabled.
func (a *Accessor) ConfigWithFallback(ctx context.Context, base, suffix string) *configstore.Record {
	identity, ok := a.resolver.EnabledIdentity(base)
	if !ok {
		return nil
	}
	return a.Config(ctx, identity+"."+suffix)
}

// recordLookup emits the store lookup metric when instrumentation is set.
func (a *Accessor) recordLookup(ctx context.Context, name, result string) {
	if a.inst != nil {
		a.inst.Metrics().RecordStoreLookup(ctx, name, result)
	}
}
