// Package slots flattens a table subgraph of the schema into named dialogue slots.
package slots

import (
	"dbwizard/internal/schema"
)

// Slot is a flattened, addressable piece of information derivable from the schema.
type Slot struct {
	Name            string               `json:"name"`
	EntityNl        []string             `json:"entityNl"`
	Nl              []string             `json:"nl"`
	DataType        string               `json:"dataType"`
	List            bool                 `json:"list"`
	Requestable     bool                 `json:"requestable"`
	Displayable     bool                 `json:"displayable"`
	TableReference  string               `json:"tableReference"`
	ColumnReference string               `json:"columnReference"`
	Regex           string               `json:"regex"`
	LookupTable     []schema.LookupEntry `json:"lookupTable"`
}

// Name builds the slot name of column in table, qualified by prefix when set.
func Name(prefix, table, column string) string {
	if prefix != "" {
		return prefix + "___" + table + "__" + column
	}
	return table + "__" + column
}

// Set is an insertion ordered collection of slots keyed by name. The first slot
// added under a name wins.
type Set struct {
	slots []Slot
	seen  map[string]struct{}
}

// NewSet returns an empty set.
func NewSet() *Set {
	return &Set{seen: make(map[string]struct{})}
}

// Add appends the slots whose names are not in the set yet.
func (s *Set) Add(slots ...Slot) {
	for _, slot := range slots {
		if _, ok := s.seen[slot.Name]; ok {
			continue
		}
		s.seen[slot.Name] = struct{}{}
		s.slots = append(s.slots, slot)
	}
}

// Has reports whether a slot called name was added.
func (s *Set) Has(name string) bool {
	_, ok := s.seen[name]
	return ok
}

// Slots returns the slots in first-seen order.
func (s *Set) Slots() []Slot {
	out := make([]Slot, len(s.slots))
	copy(out, s.slots)
	return out
}
