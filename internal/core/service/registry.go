package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/olusolaa/picklist-drift-detector/internal/config"
	"github.com/olusolaa/picklist-drift-detector/internal/core/ports"
	"github.com/olusolaa/picklist-drift-detector/internal/errors"
)

// OrgFactory builds the Org for one side of a comparison from its configuration.
type OrgFactory func(ctx context.Context, cfg config.OrgConfig, logger ports.Logger) (ports.Org, error)

// ReporterFactory builds a reporter from the run settings.
type ReporterFactory func(settings config.SettingsConfig, logger ports.Logger) (ports.Reporter, error)

type ComponentRegistry struct {
	mu                sync.RWMutex
	orgFactories      map[string]OrgFactory
	reporterFactories map[string]ReporterFactory
}

func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		orgFactories:      make(map[string]OrgFactory),
		reporterFactories: make(map[string]ReporterFactory),
	}
}

func (r *ComponentRegistry) RegisterOrgFactory(providerType string, factory OrgFactory) error {
	if factory == nil {
		return errors.New(errors.CodeInternal, "attempted to register nil org factory")
	}
	if providerType == "" {
		return errors.New(errors.CodeInternal, "org provider type cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.orgFactories[providerType]; exists {
		return errors.New(errors.CodeInternal, fmt.Sprintf("org provider type '%s' already registered", providerType))
	}
	r.orgFactories[providerType] = factory
	return nil
}

// NewOrg builds an Org using the factory registered for cfg.Provider.
func (r *ComponentRegistry) NewOrg(ctx context.Context, cfg config.OrgConfig, logger ports.Logger) (ports.Org, error) {
	r.mu.RLock()
	factory, exists := r.orgFactories[cfg.Provider]
	supported := keys(r.orgFactories)
	r.mu.RUnlock()

	if !exists {
		return nil, errors.NewUserFacing(errors.CodeConfigValidation,
			fmt.Sprintf("org provider type '%s' not found", cfg.Provider),
			fmt.Sprintf("Supported providers: %v", supported))
	}
	return factory(ctx, cfg, logger)
}

func (r *ComponentRegistry) RegisterReporterFactory(reporterType string, factory ReporterFactory) error {
	if factory == nil {
		return errors.New(errors.CodeInternal, "attempted to register nil reporter factory")
	}
	if reporterType == "" {
		return errors.New(errors.CodeInternal, "reporter type cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.reporterFactories[reporterType]; exists {
		return errors.New(errors.CodeInternal, fmt.Sprintf("reporter type '%s' already registered", reporterType))
	}
	r.reporterFactories[reporterType] = factory
	return nil
}

func (r *ComponentRegistry) NewReporter(settings config.SettingsConfig, logger ports.Logger) (ports.Reporter, error) {
	r.mu.RLock()
	factory, exists := r.reporterFactories[settings.ReporterType]
	supported := keys(r.reporterFactories)
	r.mu.RUnlock()

	if !exists {
		return nil, errors.NewUserFacing(errors.CodeConfigValidation,
			fmt.Sprintf("unsupported reporter type: %s", settings.ReporterType),
			fmt.Sprintf("Supported: %v", supported))
	}
	return factory(settings, logger)
}

func keys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
