package aria

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"
)

// FieldNameAttr is the explicit per-element override for field names the
// automatic heuristics cannot guess, e.g. nested paths like "address.city".
const FieldNameAttr = "data-formstate-field"

// Element is the minimal view of a UI element name resolution needs.
type Element interface {
	// Attr returns the attribute value and whether it is present.
	Attr(name string) (string, bool)
}

// Attrs is a map-backed Element, convenient for tests and server-side
// rendering where no real DOM exists.
type Attrs map[string]string

// Attr implements Element.
func (a Attrs) Attr(name string) (string, bool) {
	value, ok := a[name]
	return value, ok
}

// ResolveConfig controls field-name resolution behaviour.
type ResolveConfig struct {
	// Resolver, when set, is consulted after the explicit data attribute and
	// before the id/name heuristics.
	Resolver func(Element) string
	// Strict makes resolution failure an error instead of a logged warning.
	Strict bool
	// Logger receives the lenient-mode diagnostic. The zero Logger is valid
	// and discards everything.
	Logger zerolog.Logger
}

// NameResolutionError reports a strict-mode resolution failure, identifying
// the element by its attributes so the misconfiguration is findable.
type NameResolutionError struct {
	Attributes map[string]string
}

func (e *NameResolutionError) Error() string {
	return fmt.Sprintf("aria: cannot resolve field name for element %s: set %s, an id, a name, or a custom resolver", describeElement(e.Attributes), FieldNameAttr)
}

// ResolveFieldName determines a field's logical name from element hints.
// Priority: explicit data attribute, custom resolver, id, name. In lenient
// mode (default) an unresolvable element logs a warning and yields "",
// letting consumers degrade; strict mode returns a NameResolutionError.
func ResolveFieldName(el Element, cfg ResolveConfig) (string, error) {
	if el == nil {
		if cfg.Strict {
			return "", &NameResolutionError{}
		}
		cfg.Logger.Warn().Msg("aria: nil element passed to field name resolution")
		return "", nil
	}

	if value, ok := el.Attr(FieldNameAttr); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value), nil
	}
	if cfg.Resolver != nil {
		if value := strings.TrimSpace(cfg.Resolver(el)); value != "" {
			return value, nil
		}
	}
	// id beats name: it is also what label association uses.
	if value, ok := el.Attr("id"); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value), nil
	}
	if value, ok := el.Attr("name"); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value), nil
	}

	if cfg.Strict {
		return "", &NameResolutionError{Attributes: snapshotAttrs(el)}
	}
	cfg.Logger.Warn().
		Str("element", describeElement(snapshotAttrs(el))).
		Msg("aria: could not resolve field name, feedback ids will be omitted")
	return "", nil
}

func snapshotAttrs(el Element) map[string]string {
	attrs, ok := el.(Attrs)
	if !ok {
		return nil
	}
	out := make(map[string]string, len(attrs))
	for k, v := range attrs {
		out[k] = v
	}
	return out
}

func describeElement(attrs map[string]string) string {
	if len(attrs) == 0 {
		return "<unknown>"
	}
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out strings.Builder
	out.WriteString("<element")
	for _, k := range keys {
		fmt.Fprintf(&out, " %s=%q", k, attrs[k])
	}
	out.WriteString(">")
	return out.String()
}
