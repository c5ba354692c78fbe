package render

import (
	"testing"

	theme "github.com/goliatone/go-theme"
)

func TestThemeFromSelectionMergesVariant(t *testing.T) {
	selection := &theme.Selection{
		Theme:   "acme",
		Variant: "dark",
		Manifest: &theme.Manifest{
			Name: "acme",
			Tokens: map[string]string{
				"brand": "#123456",
			},
			Templates: map[string]string{
				"forms.field": "themes/acme/field.tpl",
			},
			Assets: theme.Assets{
				Prefix: "/assets/acme",
				Files:  map[string]string{"stylesheet": "theme.css"},
			},
			Variants: map[string]theme.Variant{
				"dark": {
					Tokens: map[string]string{"brand": "#654321"},
				},
			},
		},
	}

	cfg := ThemeFromSelection(selection, nil)
	if cfg == nil {
		t.Fatalf("nil config")
	}
	if cfg.Theme != "acme" || cfg.Variant != "dark" {
		t.Fatalf("selection not carried: %+v", cfg)
	}
	if cfg.Tokens["brand"] != "#654321" {
		t.Fatalf("variant token should win: %q", cfg.Tokens["brand"])
	}
	if cfg.CSSVars["--brand"] != "#654321" {
		t.Fatalf("css var not derived: %q", cfg.CSSVars["--brand"])
	}
	if cfg.Partials["forms.field"] != "themes/acme/field.tpl" {
		t.Fatalf("manifest template should override fallback: %q", cfg.Partials["forms.field"])
	}
	if cfg.Partials["forms.form"] != DefaultThemeFallbacks()["forms.form"] {
		t.Fatalf("fallback partial lost: %q", cfg.Partials["forms.form"])
	}
	if got := cfg.AssetURL("stylesheet"); got != "/assets/acme/theme.css" {
		t.Fatalf("asset url %q", got)
	}
	if got := cfg.AssetURL("missing"); got != "" {
		t.Fatalf("missing asset should resolve empty, got %q", got)
	}
}

func TestThemeFromSelectionWithoutManifest(t *testing.T) {
	cfg := ThemeFromSelection(&theme.Selection{Theme: "bare"}, nil)
	if cfg == nil || cfg.Theme != "bare" {
		t.Fatalf("config %+v", cfg)
	}
	if len(cfg.Partials) == 0 {
		t.Fatalf("fallback partials expected")
	}
}
