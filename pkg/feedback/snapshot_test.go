package feedback

import (
	"testing"

	"github.com/goliatone/go-formstate/pkg/model"
)

type stubSnapshotter struct {
	snap Snapshot
}

func (s stubSnapshotter) Snapshot() Snapshot { return s.snap }

func TestAdaptNilAndUnknownInputsFailOpen(t *testing.T) {
	for _, input := range []any{nil, "nope", 42, struct{}{}} {
		snap := Adapt(input)
		if snap.Invalid || snap.Touched || snap.Readable || len(snap.Errors) != 0 {
			t.Fatalf("input %T must adapt to the unreadable zero snapshot, got %+v", input, snap)
		}
	}

	var nilSnap *Snapshot
	if got := Adapt(nilSnap); got.Readable {
		t.Fatalf("nil *Snapshot must be unreadable")
	}
	var nilFn func() Snapshot
	if got := Adapt(nilFn); got.Readable {
		t.Fatalf("nil accessor must be unreadable")
	}
}

func TestAdaptPassesThroughSnapshots(t *testing.T) {
	snap := Snapshot{Invalid: true, Touched: true, Readable: true, Errors: []model.ValidationError{{Kind: "required"}}}

	if got := Adapt(snap); !got.Invalid || len(got.Errors) != 1 {
		t.Fatalf("value passthrough failed: %+v", got)
	}
	if got := Adapt(&snap); !got.Invalid {
		t.Fatalf("pointer passthrough failed: %+v", got)
	}
}

func TestAdaptInvokesCallableFieldTree(t *testing.T) {
	calls := 0
	tree := func() Snapshot {
		calls++
		return Snapshot{Invalid: calls > 1, Readable: true}
	}

	if got := Adapt(tree); got.Invalid {
		t.Fatalf("first read should be valid")
	}
	// No caching: each adapt re-reads the live state.
	if got := Adapt(tree); !got.Invalid {
		t.Fatalf("second read should observe the new state")
	}
}

func TestAdaptUsesSnapshotterInterface(t *testing.T) {
	field := stubSnapshotter{snap: Snapshot{Touched: true, Readable: true}}
	if got := Adapt(field); !got.Touched || !got.Readable {
		t.Fatalf("got %+v", got)
	}
}

type pointerSnapshotter struct {
	snap Snapshot
}

func (s *pointerSnapshotter) Snapshot() Snapshot { return s.snap }

func TestAdaptTypedNilSnapshotterIsUnreadable(t *testing.T) {
	// A nil pointer stored in the interface passes the plain nil check;
	// dispatching Snapshot on it would dereference the nil receiver.
	var field *pointerSnapshotter
	if got := Adapt(field); got.Readable || got.Invalid {
		t.Fatalf("typed-nil snapshotter must adapt to the unreadable zero snapshot, got %+v", got)
	}
}
