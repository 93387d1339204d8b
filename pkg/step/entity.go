package step

// Entity is one `#id = TYPE(fields);` record from the DATA section.
// Field order is significant; names are schema-derived and accessed
// positionally by pkg/extract.
type Entity struct {
	ID     uint64
	Type   string // upper-case
	Fields []Value
}

// Field returns the value at the given positional index, or Null if the
// index is out of range — entities with fewer fields than a newer
// schema version expects should look absent rather than panic.
func (e *Entity) Field(i int) Value {
	if e == nil || i < 0 || i >= len(e.Fields) {
		return Null
	}
	return e.Fields[i]
}

// Table is the flat id -> entity map produced by Parse. Keys are
// unique; iteration order is not defined — callers that need
// determinism (pkg/resolver, pkg/extract) sort ids explicitly.
type Table map[uint64]*Entity

// Document is the result of parsing one STEP source file: the schema
// tag plus the flat entity table.
type Document struct {
	Schema   string
	Entities Table
}
