package object

// Attrs is an insertion-order-preserving map from attribute name to its
// AttrDef. Go's map has no ordering guarantee, but evaluation order within
// an object (source order of definitions, per the concurrency model) must
// be observable for tests and for `from NAME import *`, which binds names
// in this order, so
// this hand-rolls the index-plus-slice structure the standard library
// doesn't provide. No pack library is in the business of an
// order-preserving string map either, so this is the one deliberately
// hand-rolled container in the module.
type Attrs struct {
	order []string
	byName map[string]*AttrDef
}

// NewAttrs creates an empty Attrs.
func NewAttrs() *Attrs {
	return &Attrs{byName: make(map[string]*AttrDef)}
}

// Set inserts or replaces the attribute named def.Name, preserving the
// position of an existing entry with that name (so a redefinition doesn't
// move the attribute to the end).
func (a *Attrs) Set(def *AttrDef) {
	if _, exists := a.byName[def.Name]; !exists {
		a.order = append(a.order, def.Name)
	}
	a.byName[def.Name] = def
}

// Get returns the attribute named name and whether it exists on this
// Attrs directly (not following any prototype chain).
func (a *Attrs) Get(name string) (*AttrDef, bool) {
	d, ok := a.byName[name]
	return d, ok
}

// Names returns every attribute name in insertion order.
func (a *Attrs) Names() []string {
	out := make([]string, len(a.order))
	copy(out, a.order)
	return out
}

// Len reports how many attributes are defined.
func (a *Attrs) Len() int { return len(a.order) }
