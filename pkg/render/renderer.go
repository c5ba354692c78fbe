// Package render defines the renderer contract and registry for turning a
// runtime form tree into output (HTML, terminal prompts). Renderers consult
// the feedback engine per field so visibility decisions and ARIA wiring stay
// consistent across targets.
package render

import (
	"context"

	"github.com/goliatone/go-formstate/pkg/form"
)

// Renderer converts a form tree into a byte representation.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, root *form.Group, options Options) ([]byte, error)
}
