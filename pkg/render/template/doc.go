// Package template defines the renderer-agnostic template engine seam and its
// adapters, keeping renderers decoupled from any one template library.
package template
