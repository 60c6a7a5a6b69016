// Package lookup provides the bidirectional id<->name tables built from a
// game's data package.
package lookup

// Table maps ids to names and back. Both directions are populated at
// construction; the table is read-only afterwards and safe for concurrent
// reads.
type Table struct {
	idToName map[int64]string
	nameToID map[string]int64
}

// FromNameToID builds a table from a data-package style name->id map.
func FromNameToID(m map[string]int64) *Table {
	t := &Table{
		idToName: make(map[int64]string, len(m)),
		nameToID: make(map[string]int64, len(m)),
	}
	for name, id := range m {
		t.nameToID[name] = id
		t.idToName[id] = name
	}
	return t
}

// Name resolves an id, ok=false if unknown.
func (t *Table) Name(id int64) (string, bool) {
	name, ok := t.idToName[id]
	return name, ok
}

// ID resolves a name, ok=false if unknown.
func (t *Table) ID(name string) (int64, bool) {
	id, ok := t.nameToID[name]
	return id, ok
}

// NameOr resolves an id, falling back to def.
func (t *Table) NameOr(id int64, def string) string {
	if name, ok := t.idToName[id]; ok {
		return name
	}
	return def
}

// Len reports how many pairs the table holds.
func (t *Table) Len() int { return len(t.nameToID) }

// IDs returns every id in the table, in no particular order.
func (t *Table) IDs() []int64 {
	ids := make([]int64, 0, len(t.idToName))
	for id := range t.idToName {
		ids = append(ids, id)
	}
	return ids
}

// GameLookup bundles the two tables a game's data package defines.
type GameLookup struct {
	Items     *Table
	Locations *Table
}
