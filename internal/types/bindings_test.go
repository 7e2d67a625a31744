package types_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/karupanerura/minilang/internal/types"
)

func TestBindings(t *testing.T) {
	t.Parallel()

	b := types.NewBindings()
	if _, ok := b.Get("a"); ok {
		t.Error("expected `a` to be unbound")
	}

	b.Set("b", 1)
	b.Set("a", 2)
	b.Set("b", 3) // overwrite keeps the original position

	if v, ok := b.Get("b"); !ok || v != 3 {
		t.Errorf("expected b => 3 but got %d (bound=%v)", v, ok)
	}
	if b.Len() != 2 {
		t.Errorf("expected 2 bindings but got %d", b.Len())
	}
	if diff := cmp.Diff([]string{"b", "a"}, b.Names()); diff != "" {
		t.Errorf("unexpected order (-expected, +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string]int64{"a": 2, "b": 3}, b.Map()); diff != "" {
		t.Errorf("unexpected map (-expected, +got):\n%s", diff)
	}

	// Map returns a copy.
	b.Map()["a"] = 100
	if v, _ := b.Get("a"); v != 2 {
		t.Errorf("expected a => 2 but got %d", v)
	}
}

func TestSeededBindings(t *testing.T) {
	t.Parallel()

	b := types.SeededBindings(map[string]int64{"y": 2, "x": 1, "z": 3})
	b.Set("a", 4)

	if diff := cmp.Diff([]string{"x", "y", "z", "a"}, b.Names()); diff != "" {
		t.Errorf("unexpected order (-expected, +got):\n%s", diff)
	}
}
