package form

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-formstate/pkg/feedback"
	"github.com/goliatone/go-formstate/pkg/model"
)

// Node is one member of the form tree: a leaf Field or a nested Group.
type Node interface {
	Name() string
	Path() string
	setPrefix(prefix string)
}

// Group is an ordered container of fields and sub-groups. Arrays are groups
// whose children carry numeric names ("0", "1", ...); see Append.
type Group struct {
	name     string
	path     string
	children []Node

	// elem builds a fresh element for array groups; nil for plain groups.
	elem func() (Node, error)
}

// NewGroup creates an empty group. The root group conventionally has an
// empty name so children's paths carry no prefix.
func NewGroup(name string) *Group {
	return &Group{name: name, path: name}
}

// Name returns the group's own name segment.
func (g *Group) Name() string { return g.name }

// Path returns the group's full dotted path.
func (g *Group) Path() string { return g.path }

func (g *Group) setPrefix(prefix string) {
	g.path = model.JoinPath(prefix, g.name)
	for _, child := range g.children {
		child.setPrefix(g.path)
	}
}

// Add appends a child node. Names must be unique within the group.
func (g *Group) Add(node Node) error {
	if node == nil {
		return fmt.Errorf("form: nil node")
	}
	name := node.Name()
	if name == "" {
		return fmt.Errorf("form: child of group %q needs a name", g.path)
	}
	for _, existing := range g.children {
		if existing.Name() == name {
			return fmt.Errorf("form: group %q already has a child named %q", g.path, name)
		}
	}
	node.setPrefix(g.path)
	g.children = append(g.children, node)
	return nil
}

// MustAdd panics on Add failure. Useful for declarative wiring.
func (g *Group) MustAdd(node Node) *Group {
	if err := g.Add(node); err != nil {
		panic(err)
	}
	return g
}

// Children returns the direct children in document order.
func (g *Group) Children() []Node {
	return append([]Node(nil), g.children...)
}

// Append adds an array element, naming it by the next free index. Plain
// groups can use it too, but it exists for array semantics.
func (g *Group) Append(node Node) error {
	idx := strconv.Itoa(len(g.children))
	switch n := node.(type) {
	case *Field:
		n.name = idx
	case *Group:
		n.name = idx
	default:
		return fmt.Errorf("form: cannot append node of type %T", node)
	}
	return g.Add(node)
}

// AppendElement builds a fresh element from the array's template and appends
// it. Errors for non-array groups.
func (g *Group) AppendElement() (Node, error) {
	if g.elem == nil {
		return nil, fmt.Errorf("form: group %q is not an array", g.path)
	}
	node, err := g.elem()
	if err != nil {
		return nil, err
	}
	if err := g.Append(node); err != nil {
		return nil, err
	}
	return node, nil
}

// RemoveAt removes the i-th child and renames the remaining tail so indices
// stay dense ("tags.0", "tags.1", ...). Values move down one slot; callers
// that need stable identity per element should key their UI off the element
// nodes, not the paths.
func (g *Group) RemoveAt(i int) bool {
	if i < 0 || i >= len(g.children) {
		return false
	}
	g.children = append(g.children[:i], g.children[i+1:]...)
	for idx := i; idx < len(g.children); idx++ {
		switch n := g.children[idx].(type) {
		case *Field:
			n.name = strconv.Itoa(idx)
		case *Group:
			n.name = strconv.Itoa(idx)
		}
		g.children[idx].setPrefix(g.path)
	}
	return true
}

// Len returns the number of direct children.
func (g *Group) Len() int { return len(g.children) }

// IsArray reports whether the group carries an element template.
func (g *Group) IsArray() bool { return g.elem != nil }

// FieldAt resolves a leaf by its path relative to this group, e.g.
// "address.city" or "tags.0". Nil when the path names nothing or a group.
func (g *Group) FieldAt(path string) *Field {
	node := g.nodeAt(path)
	field, _ := node.(*Field)
	return field
}

// GroupAt resolves a sub-group by relative path.
func (g *Group) GroupAt(path string) *Group {
	node := g.nodeAt(path)
	group, _ := node.(*Group)
	return group
}

func (g *Group) nodeAt(path string) Node {
	if path == "" {
		return g
	}
	head, rest, _ := strings.Cut(path, ".")
	for _, child := range g.children {
		if child.Name() != head {
			continue
		}
		if rest == "" {
			return child
		}
		if sub, ok := child.(*Group); ok {
			return sub.nodeAt(rest)
		}
		return nil
	}
	return nil
}

// Fields returns every leaf in traversal (document) order.
func (g *Group) Fields() []*Field {
	var out []*Field
	g.walk(func(f *Field) { out = append(out, f) })
	return out
}

func (g *Group) walk(fn func(*Field)) {
	for _, child := range g.children {
		switch n := child.(type) {
		case *Field:
			fn(n)
		case *Group:
			n.walk(fn)
		}
	}
}

// MarkAllTouched flags every leaf as touched. The submit helper calls this
// when an attempt begins so on-touch strategies reveal feedback everywhere.
func (g *Group) MarkAllTouched() {
	g.walk(func(f *Field) { f.MarkTouched() })
}

// ResetTouched clears the touched flag on every leaf.
func (g *Group) ResetTouched() {
	g.walk(func(f *Field) { f.ResetTouched() })
}

// Invalid reports whether any leaf currently has a blocking error. Warnings
// do not make a form invalid.
func (g *Group) Invalid() bool {
	for _, f := range g.Fields() {
		for _, err := range f.Errors() {
			if feedback.IsBlockingKind(err.Kind) {
				return true
			}
		}
	}
	return false
}

// ErrorRefs returns every current validation error across the tree in
// traversal order, annotated with the originating field's path and focus
// hook. This is the error-summary accessor the feedback engine's
// FocusFirstInvalid relies on.
func (g *Group) ErrorRefs() []feedback.ErrorRef {
	var out []feedback.ErrorRef
	g.walk(func(f *Field) {
		for _, err := range f.Errors() {
			out = append(out, feedback.ErrorRef{
				Path:  f.Path(),
				Err:   err,
				Focus: f.FocusHook(),
			})
		}
	})
	return out
}

// Values collects current leaf values keyed by dotted path.
func (g *Group) Values() map[string]any {
	out := make(map[string]any)
	g.walk(func(f *Field) {
		out[f.Path()] = f.Value()
	})
	return out
}
