package render

import (
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// DefaultThemeFallbacks returns the partial names renderers fall back to when
// a theme manifest does not override them.
func DefaultThemeFallbacks() map[string]string {
	return map[string]string{
		"forms.field":    "field",
		"forms.form":     "form",
		"forms.feedback": "feedback",
	}
}

// ResolveTheme asks the selector for a theme/variant pair and flattens the
// selection into the renderer configuration: manifest templates merged over
// the fallbacks, variant overrides merged over the manifest, tokens exposed
// both verbatim and as --token CSS variables, and asset lookups resolved
// against the manifest's asset table.
func ResolveTheme(selector theme.ThemeSelector, name, variant string, fallbacks map[string]string) (*theme.RendererConfig, error) {
	if selector == nil {
		return nil, nil
	}
	selection, err := selector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("render: select theme %q: %w", name, err)
	}
	if selection == nil {
		return nil, nil
	}
	return ThemeFromSelection(selection, fallbacks), nil
}

// ThemeFromSelection converts a go-theme selection into the renderer
// configuration without consulting a selector.
func ThemeFromSelection(selection *theme.Selection, fallbacks map[string]string) *theme.RendererConfig {
	if selection == nil {
		return nil
	}
	if fallbacks == nil {
		fallbacks = DefaultThemeFallbacks()
	}

	cfg := &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Partials: cloneStringMap(fallbacks),
		Tokens:   map[string]string{},
		CSSVars:  map[string]string{},
	}

	manifest := selection.Manifest
	if manifest == nil {
		return cfg
	}

	mergeStringMap(cfg.Partials, manifest.Templates)
	mergeStringMap(cfg.Tokens, manifest.Tokens)

	assets := manifest.Assets
	if selection.Variant != "" {
		if v, ok := manifest.Variants[selection.Variant]; ok {
			mergeStringMap(cfg.Partials, v.Templates)
			mergeStringMap(cfg.Tokens, v.Tokens)
			if len(v.Assets.Files) > 0 || v.Assets.Prefix != "" {
				merged := theme.Assets{Prefix: assets.Prefix, Files: cloneStringMap(assets.Files)}
				if v.Assets.Prefix != "" {
					merged.Prefix = v.Assets.Prefix
				}
				if merged.Files == nil {
					merged.Files = map[string]string{}
				}
				mergeStringMap(merged.Files, v.Assets.Files)
				assets = merged
			}
		}
	}

	for key, value := range cfg.Tokens {
		cfg.CSSVars["--"+key] = value
	}

	cfg.AssetURL = assetResolver(assets)
	return cfg
}

func assetResolver(assets theme.Assets) func(string) string {
	return func(name string) string {
		file, ok := assets.Files[name]
		if !ok || file == "" {
			return ""
		}
		prefix := strings.TrimSuffix(assets.Prefix, "/")
		if prefix == "" {
			return file
		}
		return prefix + "/" + strings.TrimPrefix(file, "/")
	}
}

func cloneStringMap(in map[string]string) map[string]string {
	if in == nil {
		return map[string]string{}
	}
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}

func mergeStringMap(target map[string]string, updates map[string]string) {
	for key, value := range updates {
		if value == "" {
			continue
		}
		target[key] = value
	}
}
