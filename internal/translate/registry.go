package translate

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"lughat.dev/lughat/internal/config"
)

// DefaultProviderName is used when no provider is configured.
const DefaultProviderName = "google"

// Registry stores translation providers and resolves a default provider.
type Registry struct {
	providers       map[string]Provider
	defaultProvider string
}

func NewRegistry(defaultProvider string) *Registry {
	normalizedDefault := normalizeProviderName(defaultProvider)
	if normalizedDefault == "" {
		normalizedDefault = DefaultProviderName
	}

	return &Registry{
		providers:       make(map[string]Provider),
		defaultProvider: normalizedDefault,
	}
}

// NewRegistryFromConfig builds the registry the service runs with: the
// Google gateway when a key is configured, the local provider always.
func NewRegistryFromConfig(cfg *config.Config) *Registry {
	registry := NewRegistry(cfg.TranslationProvider)
	timeout := time.Duration(cfg.GatewayTimeoutSecs) * time.Second

	if strings.TrimSpace(cfg.GoogleAPIKey) != "" {
		_ = registry.Register(NewGoogleProvider(cfg.GoogleAPIKey, timeout))
	}
	_ = registry.Register(NewLocalProvider(cfg.TranslationEndpoint, cfg.TranslationModel, timeout))

	if _, exists := registry.providers[registry.defaultProvider]; !exists {
		for _, name := range registry.ProviderNames() {
			registry.defaultProvider = name
			break
		}
	}

	return registry
}

// Register adds one provider.
func (r *Registry) Register(provider Provider) error {
	if provider == nil {
		return fmt.Errorf("provider is nil")
	}
	name := normalizeProviderName(provider.Name())
	if name == "" {
		return fmt.Errorf("provider name is required")
	}
	r.providers[name] = provider
	return nil
}

// Provider resolves a provider by name. Empty names use the configured
// default provider.
func (r *Registry) Provider(name string) (Provider, error) {
	if len(r.providers) == 0 {
		return nil, fmt.Errorf("no translation providers are registered")
	}

	resolvedName := normalizeProviderName(name)
	if resolvedName == "" {
		resolvedName = r.defaultProvider
	}
	if provider, ok := r.providers[resolvedName]; ok {
		return provider, nil
	}

	return nil, fmt.Errorf("translation provider %q is not registered (available: %s)",
		resolvedName, strings.Join(r.ProviderNames(), ", "))
}

func (r *Registry) DefaultProvider() string {
	return r.defaultProvider
}

func (r *Registry) ProviderNames() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func normalizeProviderName(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
