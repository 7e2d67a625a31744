package types

import (
	"sort"

	"github.com/samber/lo"
)

// Bindings is the variable table built by one evaluation pass: identifier
// text mapped to its last-assigned value. Names are keyed by content, so two
// occurrences of the same spelling denote the same binding. The table also
// remembers first-assignment order so reports are deterministic.
type Bindings struct {
	values map[string]int64
	order  []string
}

func NewBindings() *Bindings {
	return &Bindings{
		values: map[string]int64{},
	}
}

// SeededBindings builds a table pre-populated with the given variables.
// Seeded names are ordered lexicographically; names assigned afterwards
// follow in first-assignment order.
func SeededBindings(seed map[string]int64) *Bindings {
	b := NewBindings()

	names := lo.Keys(seed)
	sort.Strings(names)
	for _, name := range names {
		b.Set(name, seed[name])
	}
	return b
}

func (b *Bindings) Get(name string) (int64, bool) {
	v, ok := b.values[name]
	return v, ok
}

// Set binds name to value, overwriting any previous value. The name keeps
// its original position in the report order.
func (b *Bindings) Set(name string, value int64) {
	if _, ok := b.values[name]; !ok {
		b.order = append(b.order, name)
	}
	b.values[name] = value
}

func (b *Bindings) Len() int {
	return len(b.values)
}

// Names returns the bound names in first-assignment order.
func (b *Bindings) Names() []string {
	return append([]string(nil), b.order...)
}

// Map returns a copy of the bindings. Map iteration order is undefined; use
// Names when order matters.
func (b *Bindings) Map() map[string]int64 {
	return lo.Assign(map[string]int64{}, b.values)
}
