// Package dictionary provides order-preserving per-column value dictionaries
// for columnar encoding. A Dictionary maps each distinct string value of a
// column to a dense integer id assigned in first-seen order. An Arena is an
// immutable snapshot of one Dictionary per column, handed to the packing
// stage once encoding has finished.
package dictionary

// Dictionary is a bijective mapping between string values and dense ids for
// a single column. Ids start at 0 and increase in insertion order.
type Dictionary struct {
	ids    map[string]int
	values []string
}

// New creates an empty dictionary.
func New() *Dictionary {
	return &Dictionary{
		ids: make(map[string]int),
	}
}

// GetOrInsert returns the id for value, inserting it with the next dense id
// if it has not been seen before. Insertion is idempotent: a value already
// present keeps its original id.
func (d *Dictionary) GetOrInsert(value string) int {
	if id, ok := d.ids[value]; ok {
		return id
	}
	id := len(d.values)
	d.ids[value] = id
	d.values = append(d.values, value)
	return id
}

// ID returns the id for value, if present.
func (d *Dictionary) ID(value string) (int, bool) {
	id, ok := d.ids[value]
	return id, ok
}

// Value returns the value for id, if present.
func (d *Dictionary) Value(id int) (string, bool) {
	if id < 0 || id >= len(d.values) {
		return "", false
	}
	return d.values[id], true
}

// Len returns the number of distinct values.
func (d *Dictionary) Len() int {
	return len(d.values)
}

// Values returns the values in id order. The returned slice must not be
// modified.
func (d *Dictionary) Values() []string {
	return d.values
}

// Arena is a finalized, read-only collection of per-column dictionaries
// indexed by column position. Packing accepts only an Arena, which makes it
// impossible to pack against dictionaries that are still being built.
type Arena struct {
	columns []*Dictionary
}

// NewArena seals the given column dictionaries into an immutable arena.
// Ownership of the dictionaries transfers to the arena; callers must not
// mutate them afterwards.
func NewArena(columns []*Dictionary) *Arena {
	return &Arena{columns: columns}
}

// Columns returns the number of columns.
func (a *Arena) Columns() int {
	return len(a.columns)
}

// Size returns the number of distinct values in the given column.
func (a *Arena) Size(col int) int {
	return a.columns[col].Len()
}

// Value resolves an id back to its value in the given column.
func (a *Arena) Value(col, id int) (string, bool) {
	if col < 0 || col >= len(a.columns) {
		return "", false
	}
	return a.columns[col].Value(id)
}

// ID resolves a value to its id in the given column.
func (a *Arena) ID(col int, value string) (int, bool) {
	if col < 0 || col >= len(a.columns) {
		return 0, false
	}
	return a.columns[col].ID(value)
}
