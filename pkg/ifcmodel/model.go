// Package ifcmodel defines the immutable project graph produced by
// pkg/extract and the read-only query accessors spec 4.5 describes.
// Once built, a Project is never mutated; all accessors are O(1) or
// O(elements) and never re-walk the originating entity table.
package ifcmodel

import "sort"

// Storey is a building level. Elements are spatially contained in at
// most one storey.
type Storey struct {
	ID           uint64
	Name         string
	Elevation    float64 // source units, typically millimetres
	ElementCount int     // derived: len(instances mapped to this storey)
}

// Category is a display grouping of element types, e.g. "Walls".
type Category struct {
	Name       string
	Priority   bool
	Types      []*ElementType
	TotalCount int // sum of Types[i].InstanceCount
}

// ElementType groups instances that share a type entity (or a
// synthetic per-family type when no explicit IFC*TYPE exists).
type ElementType struct {
	ID            uint64 // entity id; 0 for a synthetic type
	GlobalID      string
	Name          string
	CategoryName  string
	InstanceCount int
	InstanceIDs   []uint64
	Properties    map[string]string // property name -> formatted value
}

// Element is a single building-element instance.
type Element struct {
	ID       uint64
	GlobalID string
	Name     string
	Tag      string // optional; empty when absent
	TypeID   uint64 // 0 when unassigned
	HasType  bool
	StoreyID uint64 // 0 when unassigned
	HasStory bool
}

// Project is the root of the immutable domain graph.
type Project struct {
	Name       string
	Schema     string
	SourcePath string

	Categories []*Category
	Storeys    []*Storey

	elements        map[uint64]*Element
	elementProps    map[uint64]map[string]string
	elementToStorey map[uint64]uint64
	elementToGlobal map[uint64]string
	storeysByID     map[uint64]*Storey
	typesByID       map[uint64]*ElementType
}

// NewProject constructs an empty Project; pkg/extract populates it via
// the Add* methods below, then the caller treats it as read-only.
func NewProject(name, schema, sourcePath string) *Project {
	return &Project{
		Name:            name,
		Schema:          schema,
		SourcePath:      sourcePath,
		elements:        map[uint64]*Element{},
		elementProps:    map[uint64]map[string]string{},
		elementToStorey: map[uint64]uint64{},
		elementToGlobal: map[uint64]string{},
		storeysByID:     map[uint64]*Storey{},
		typesByID:       map[uint64]*ElementType{},
	}
}

// AddStorey registers a storey and indexes it by id.
func (p *Project) AddStorey(s *Storey) {
	p.Storeys = append(p.Storeys, s)
	p.storeysByID[s.ID] = s
}

// AddCategory appends a category; categories should already be sorted
// by the extractor per spec 4.4 step 7 before this is called for the
// last time.
func (p *Project) AddCategory(c *Category) {
	p.Categories = append(p.Categories, c)
	for _, t := range c.Types {
		if t.ID != 0 {
			p.typesByID[t.ID] = t
		}
	}
}

// AddElement registers an instance, its storey mapping (if any), its
// global id, and its formatted property map.
func (p *Project) AddElement(e *Element, props map[string]string) {
	p.elements[e.ID] = e
	if e.HasStory {
		p.elementToStorey[e.ID] = e.StoreyID
	}
	if e.GlobalID != "" {
		p.elementToGlobal[e.ID] = e.GlobalID
	}
	if len(props) > 0 {
		p.elementProps[e.ID] = props
	}
}

// TotalElements sums InstanceCount across all types in all categories —
// testable invariant 8.2 ties this to len(element-to-storey) when every
// element has a storey.
func (p *Project) TotalElements() int {
	total := 0
	for _, c := range p.Categories {
		for _, t := range c.Types {
			total += t.InstanceCount
		}
	}
	return total
}

// TotalTypes counts ElementType records across all categories.
func (p *Project) TotalTypes() int {
	total := 0
	for _, c := range p.Categories {
		total += len(c.Types)
	}
	return total
}

// StoreysDescending returns a copy of Storeys ordered by descending
// elevation, for presentation (spec 3: "ordering is not an invariant of
// the storage" — Storeys itself stays in insertion order).
func (p *Project) StoreysDescending() []*Storey {
	out := make([]*Storey, len(p.Storeys))
	copy(out, p.Storeys)
	sort.Slice(out, func(i, j int) bool { return out[i].Elevation > out[j].Elevation })
	return out
}

// StoreyByID returns the storey with the given id, if any.
func (p *Project) StoreyByID(id uint64) (*Storey, bool) {
	s, ok := p.storeysByID[id]
	return s, ok
}

// TypeByID returns the element type with the given id, if any.
func (p *Project) TypeByID(id uint64) (*ElementType, bool) {
	t, ok := p.typesByID[id]
	return t, ok
}

// ElementByID returns the instance with the given id, if any.
func (p *Project) ElementByID(id uint64) (*Element, bool) {
	e, ok := p.elements[id]
	return e, ok
}

// ElementCount returns the number of registered instances (distinct
// from TotalElements, which sums per-type counts; the two agree once
// every instance belongs to exactly one type, per invariant 2).
func (p *Project) ElementCount() int {
	return len(p.elements)
}

// InstancesOnStorey enumerates element ids whose storey mapping equals
// storeyID, in ascending id order.
func (p *Project) InstancesOnStorey(storeyID uint64) []uint64 {
	var ids []uint64
	for id, sid := range p.elementToStorey {
		if sid == storeyID {
			ids = append(ids, id)
		}
	}
	sortUint64s(ids)
	return ids
}

// ElementProperties returns the formatted property map for an
// instance, or nil if it has none.
func (p *Project) ElementProperties(elementID uint64) map[string]string {
	return p.elementProps[elementID]
}

// ElementGlobalID returns the instance's GlobalId, or "" if absent.
func (p *Project) ElementGlobalID(elementID uint64) string {
	return p.elementToGlobal[elementID]
}

// ElementStorey returns the storey id an element is mapped to and
// whether it has one at all.
func (p *Project) ElementStorey(elementID uint64) (uint64, bool) {
	id, ok := p.elementToStorey[elementID]
	return id, ok
}

// ElementToStoreyCount returns |element_to_storey|, the auxiliary map
// size used by testable invariant 8.2.
func (p *Project) ElementToStoreyCount() int {
	return len(p.elementToStorey)
}

func sortUint64s(ids []uint64) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}
