package feedback

import (
	"testing"

	"github.com/goliatone/go-formstate/pkg/aria"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg := NewConfig()
	if cfg.DefaultStrategyValue() != StrategyOnTouch {
		t.Fatalf("default strategy must be on-touch, got %s", cfg.DefaultStrategyValue())
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}
	rc := cfg.ResolveConfig()
	if rc.Strict {
		t.Fatalf("default mode must be lenient")
	}
}

func TestConfigValidateRejectsBadStrategy(t *testing.T) {
	if err := NewConfig(WithDefaultStrategy("bogus")).Validate(); err == nil {
		t.Fatalf("unknown strategy must fail validation")
	}
	if err := NewConfig(WithDefaultStrategy(StrategyInherit)).Validate(); err == nil {
		t.Fatalf("inherit sentinel is not a usable default")
	}
}

func TestConfigResolverCarriesRegistryAndLabeler(t *testing.T) {
	registry := NewRegistry()
	registry.MustAdd("custom", "Custom message")
	cfg := NewConfig(WithRegistry(registry))

	resolver := cfg.Resolver()
	if resolver.Registry != registry {
		t.Fatalf("resolver should carry the configured registry")
	}
	if resolver.Labeler == nil {
		t.Fatalf("resolver should carry a labeler by default")
	}
}

func TestConfigNameResolverFlowsIntoResolveConfig(t *testing.T) {
	cfg := NewConfig(
		WithNameResolver(func(aria.Element) string { return "resolved" }),
		WithStrictNames(true),
	)
	rc := cfg.ResolveConfig()
	if rc.Resolver == nil || !rc.Strict {
		t.Fatalf("resolve config should reflect options: %+v", rc)
	}
}

func TestNilConfigFallsBackToDefaults(t *testing.T) {
	var cfg *Config
	if cfg.DefaultStrategyValue() != StrategyOnTouch {
		t.Fatalf("nil config must yield the default strategy")
	}
	if cfg.Resolver().Labeler == nil {
		t.Fatalf("nil config resolver must still humanize")
	}
	if orDefault(nil) != Default() {
		t.Fatalf("orDefault(nil) must return the shared default")
	}
}
