package feedback

import (
	"reflect"

	"github.com/goliatone/go-formstate/pkg/model"
)

// Snapshot is the uniform read-only view of a field's validation state. All
// decisions within one evaluation are made against a single Snapshot so the
// error list and the touched flag are never read at materially different
// moments.
type Snapshot struct {
	Invalid  bool
	Touched  bool
	Required bool
	Errors   []model.ValidationError

	// Readable is false when the underlying state could not be adapted. An
	// unreadable field never shows feedback and never reads as invalid.
	Readable bool
}

// Snapshotter is implemented by runtime fields (and anything else) that can
// produce a consistent state snapshot on demand.
type Snapshotter interface {
	Snapshot() Snapshot
}

// Adapt normalises the heterogeneous shapes a "field" can take into a
// Snapshot: a Snapshot (or pointer to one), a callable field-tree, or a
// Snapshotter. Nil and unrecognised inputs yield an unreadable zero Snapshot
// rather than an error. Adapt does not cache; state is re-read on every call
// so the latest reactive value is observed.
func Adapt(input any) Snapshot {
	switch v := input.(type) {
	case nil:
		return Snapshot{}
	case Snapshot:
		return v
	case *Snapshot:
		if v == nil {
			return Snapshot{}
		}
		return *v
	case func() Snapshot:
		if v == nil {
			return Snapshot{}
		}
		return v()
	case Snapshotter:
		if v == nil || isNilValue(v) {
			return Snapshot{}
		}
		return v.Snapshot()
	default:
		return Snapshot{}
	}
}

// isNilValue reports whether the interface wraps a typed nil, which passes
// the plain nil check and then panics on method dispatch.
func isNilValue(v any) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
