package feedback

import (
	"fmt"

	"github.com/hay-kot/criterio"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-formstate/pkg/aria"
	"github.com/goliatone/go-formstate/pkg/model"
)

// Config is the process-wide configuration surface: default strategy, field
// name resolution behaviour, diagnostics channel, and message overrides.
// Build it once at startup via NewConfig and inject it by reference;
// reconfiguration means constructing a new Config, never mutating one in
// place.
type Config struct {
	defaultStrategy Strategy
	registry        *Registry
	labeler         func(string) string
	nameResolver    func(aria.Element) string
	strictNames     bool
	logger          zerolog.Logger
}

// Option mutates the configuration during construction.
type Option func(*Config)

// WithDefaultStrategy sets the form-level default display strategy.
func WithDefaultStrategy(strategy Strategy) Option {
	return func(c *Config) {
		c.defaultStrategy = strategy
	}
}

// WithRegistry installs the message override registry.
func WithRegistry(registry *Registry) Option {
	return func(c *Config) {
		if registry != nil {
			c.registry = registry
		}
	}
}

// WithLabeler overrides the humanizer used for unknown validation kinds.
func WithLabeler(labeler func(string) string) Option {
	return func(c *Config) {
		if labeler != nil {
			c.labeler = labeler
		}
	}
}

// WithNameResolver installs a custom field-name resolver consulted between
// the explicit data attribute and the id/name heuristics.
func WithNameResolver(resolver func(aria.Element) string) Option {
	return func(c *Config) {
		c.nameResolver = resolver
	}
}

// WithStrictNames makes field-name resolution failures fatal instead of
// logged warnings.
func WithStrictNames(strict bool) Option {
	return func(c *Config) {
		c.strictNames = strict
	}
}

// WithLogger routes developer diagnostics (unresolvable names, missing focus
// hooks) through the given logger. The default discards everything; raising
// the logger level is the debug toggle.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Config) {
		c.logger = logger
	}
}

// NewConfig builds an immutable configuration. Zero options yield the
// defaults: on-touch strategy, lenient names, silent logger, no overrides.
func NewConfig(options ...Option) *Config {
	cfg := &Config{
		defaultStrategy: DefaultStrategy,
		labeler:         model.DefaultLabeler,
		logger:          zerolog.Nop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}
	return cfg
}

// Validate checks the configuration for development-time mistakes.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("default_strategy", string(c.defaultStrategy), validStrategyValue),
	)
}

func validStrategyValue(raw string) error {
	strategy, err := ParseStrategy(raw)
	if err != nil {
		return err
	}
	if strategy == StrategyInherit {
		return fmt.Errorf("feedback: default strategy cannot be the inherit sentinel")
	}
	return nil
}

// DefaultStrategyValue returns the configured form-level default strategy.
func (c *Config) DefaultStrategyValue() Strategy {
	if c == nil || c.defaultStrategy == "" {
		return DefaultStrategy
	}
	return c.defaultStrategy
}

// Resolver returns a message resolver bound to this configuration.
func (c *Config) Resolver() Resolver {
	if c == nil {
		return Resolver{Labeler: model.DefaultLabeler}
	}
	return Resolver{Registry: c.registry, Labeler: c.labeler}
}

// ResolveConfig adapts the configuration for aria field-name resolution.
func (c *Config) ResolveConfig() aria.ResolveConfig {
	if c == nil {
		return aria.ResolveConfig{Logger: zerolog.Nop()}
	}
	return aria.ResolveConfig{
		Resolver: c.nameResolver,
		Strict:   c.strictNames,
		Logger:   c.logger,
	}
}

// Logger exposes the diagnostics channel.
func (c *Config) Logger() zerolog.Logger {
	if c == nil {
		return zerolog.Nop()
	}
	return c.logger
}

// defaultConfig backs nil-config call sites. It is never mutated.
var defaultConfig = NewConfig()

// Default returns the shared default configuration.
func Default() *Config {
	return defaultConfig
}

func orDefault(c *Config) *Config {
	if c == nil {
		return defaultConfig
	}
	return c
}
