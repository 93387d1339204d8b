// Package resolver builds reverse-lookup indexes over a parsed STEP
// entity table and implements the "dereferencing an unknown id is
// always absent, never an error" rule from spec 4.3.
package resolver

import (
	"sort"

	"github.com/ifcinspect/ifcinspect/pkg/step"
)

// Resolver indexes a step.Table by type name and, lazily, by inverse
// reference. It never mutates the underlying table. Entity, ByType,
// AllIDs, Resolve and ResolveList are safe for concurrent use; the
// first Inverse call builds the inverse index without locking, so
// Inverse is not.
type Resolver struct {
	table Table

	byType map[string][]uint64

	inverseOnce bool
	inverse     map[uint64][]uint64
}

// Table is the minimal view of a step.Table the resolver needs; it is
// defined as an interface-free alias so pkg/resolver has no import-time
// dependency beyond pkg/step's data types.
type Table = step.Table

// New builds a Resolver over table, computing the by-type index
// immediately (it is used repeatedly by the domain extractor) and
// deferring the inverse (many-to-one) index until first requested.
func New(table Table) *Resolver {
	r := &Resolver{table: table, byType: map[string][]uint64{}}
	for id, e := range table {
		r.byType[e.Type] = append(r.byType[e.Type], id)
	}
	for t := range r.byType {
		sort.Slice(r.byType[t], func(i, j int) bool { return r.byType[t][i] < r.byType[t][j] })
	}
	return r
}

// Entity dereferences id, returning (entity, true) if it resolves or
// (nil, false) if it is absent — dangling references are never an
// error at this layer.
func (r *Resolver) Entity(id uint64) (*step.Entity, bool) {
	e, ok := r.table[id]
	return e, ok
}

// ByType returns the sorted ids of all entities of the given upper-case
// type name. The returned slice must not be mutated by callers.
func (r *Resolver) ByType(typeName string) []uint64 {
	return r.byType[typeName]
}

// AllIDs returns every entity id in the table, sorted ascending —
// domain extraction visits entities in this order so output is
// deterministic for a given input file (spec 5).
func (r *Resolver) AllIDs() []uint64 {
	ids := make([]uint64, 0, len(r.table))
	for id := range r.table {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Inverse returns the ids of every entity that references id in any of
// its fields (including nested lists), materialising the index on
// first call.
func (r *Resolver) Inverse(id uint64) []uint64 {
	if !r.inverseOnce {
		r.buildInverse()
	}
	return r.inverse[id]
}

func (r *Resolver) buildInverse() {
	r.inverse = map[uint64][]uint64{}
	for _, id := range r.AllIDs() {
		e := r.table[id]
		seen := map[uint64]bool{}
		walkReferences(e.Fields, func(ref uint64) {
			if !seen[ref] {
				seen[ref] = true
				r.inverse[ref] = append(r.inverse[ref], id)
			}
		})
	}
	r.inverseOnce = true
}

func walkReferences(values []step.Value, visit func(uint64)) {
	for _, v := range values {
		switch v.Kind {
		case step.KindReference:
			visit(v.Ref)
		case step.KindList:
			walkReferences(v.List, visit)
		}
	}
}

// Resolve is a convenience for the common "field holds a reference,
// follow it" pattern used throughout the domain extractor. It returns
// (nil, false) if the field isn't a reference or the reference is
// dangling.
func (r *Resolver) Resolve(v step.Value) (*step.Entity, bool) {
	id, ok := v.AsReference()
	if !ok {
		return nil, false
	}
	return r.Entity(id)
}

// ResolveList resolves every reference in a List value, silently
// skipping entries that are not references or that dangle — this is
// the behaviour spec 8.9 requires for e.g. IFCRELDEFINESBYTYPE's
// related-objects list.
func (r *Resolver) ResolveList(v step.Value) []*step.Entity {
	list, ok := v.AsList()
	if !ok {
		return nil
	}
	var out []*step.Entity
	for _, item := range list {
		if e, ok := r.Resolve(item); ok {
			out = append(out, e)
		}
	}
	return out
}
