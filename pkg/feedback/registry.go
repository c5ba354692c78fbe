package feedback

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formstate/pkg/model"
)

// MessageFunc produces a display string from the full error, giving access
// to validator-specific params such as minLength or max.
type MessageFunc func(model.ValidationError) string

// Registry stores per-kind message overrides. Entries are either literal
// strings (with {param} interpolation) or MessageFuncs. Build the registry
// once at application start; the feedback engine only reads it.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]registryEntry
}

type registryEntry struct {
	text string
	fn   MessageFunc
}

// NewRegistry creates an empty message registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]registryEntry)}
}

// Add registers an override for a validation kind. The message must be a
// string or a MessageFunc. Later additions for the same kind win.
func (r *Registry) Add(kind string, message any) error {
	kind = strings.TrimSpace(kind)
	if kind == "" {
		return fmt.Errorf("feedback: registry kind is required")
	}

	var entry registryEntry
	switch m := message.(type) {
	case string:
		entry.text = m
	case MessageFunc:
		if m == nil {
			return fmt.Errorf("feedback: registry entry for %q is a nil function", kind)
		}
		entry.fn = m
	case func(model.ValidationError) string:
		if m == nil {
			return fmt.Errorf("feedback: registry entry for %q is a nil function", kind)
		}
		entry.fn = m
	default:
		return fmt.Errorf("feedback: registry entry for %q must be a string or MessageFunc, got %T", kind, message)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[kind] = entry
	return nil
}

// MustAdd panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustAdd(kind string, message any) {
	if err := r.Add(kind, message); err != nil {
		panic(err)
	}
}

// Has reports whether an override exists for the kind.
func (r *Registry) Has(kind string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[kind]
	return ok
}

// Kinds returns the registered kinds in unspecified order.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.entries))
	for kind := range r.entries {
		out = append(out, kind)
	}
	return out
}

// resolve looks up the override for the error's exact kind. Function entries
// are invoked with the error; this deliberately does not guard against a
// third-party function raising.
func (r *Registry) resolve(err model.ValidationError) (string, bool) {
	r.mu.RLock()
	entry, ok := r.entries[err.Kind]
	r.mu.RUnlock()
	if !ok {
		return "", false
	}
	if entry.fn != nil {
		return entry.fn(err), true
	}
	return interpolate(entry.text, err.Params), true
}

type registryFile struct {
	Messages map[string]string `json:"messages" yaml:"messages"`
}

// LoadFS walks the filesystem and merges message overrides from JSON/YAML
// documents of the shape {messages: {kind: template}}. Files are visited in
// walk order; later entries for the same kind win. A nil filesystem is a
// no-op.
func (r *Registry) LoadFS(fsys fs.FS) error {
	if fsys == nil {
		return nil
	}

	return fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isMessageFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("feedback: read %s: %w", path, err)
		}
		doc, err := parseRegistryFile(data, path)
		if err != nil {
			return err
		}

		for kind, template := range doc.Messages {
			if err := r.Add(kind, template); err != nil {
				return fmt.Errorf("feedback: file %s: %w", path, err)
			}
		}
		return nil
	})
}

func parseRegistryFile(data []byte, source string) (registryFile, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return registryFile{}, fmt.Errorf("feedback: file %s is empty", source)
	}

	var doc registryFile
	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	return registryFile{}, fmt.Errorf("feedback: parse %s: invalid JSON or YAML", source)
}

func isMessageFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
