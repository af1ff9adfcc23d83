package slots

import (
	"slices"

	"dbwizard/internal/schema"
)

// Extractor walks foreign key and mapping table relations of an indexed schema.
type Extractor struct {
	index *schema.Index
}

// NewExtractor indexes tables for extraction.
func NewExtractor(tables []schema.Table) *Extractor {
	return &Extractor{index: schema.NewIndex(tables)}
}

// Index returns the table index the extractor resolves references with.
func (e *Extractor) Index() *schema.Index {
	return e.index
}

// Slots extracts the slots of table down to its own resolve depth.
func (e *Extractor) Slots(table schema.Table) []Slot {
	return e.Extract(table, table.ResolveDepth, 0, "")
}

// Extract flattens table and everything reachable from it within maxDepth foreign
// key hops into a list of uniquely named slots, in first-seen order.
func (e *Extractor) Extract(table schema.Table, maxDepth, depth int, prefix string) []Slot {
	set := NewSet()
	e.extract(set, table, max(maxDepth, 0), max(depth, 0), prefix)
	return set.Slots()
}

func (e *Extractor) extract(set *Set, table schema.Table, maxDepth, depth int, prefix string) {
	set.Add(TableSlots(table, prefix)...)
	if depth >= maxDepth {
		return
	}

	edges := edgeColumns(table)
	for _, col := range edges {
		ref, ok := e.index.Table(col.TableReference)
		if !ok {
			continue
		}
		next := prefix
		if sharesTarget(edges, col) {
			next = table.Name + "__" + col.Name
		}
		e.extract(set, ref, maxDepth, depth+1, next)
	}

	mapping := MappingTables(table, e.index.Tables())
	for _, mt := range mapping {
		set.Add(TableSlots(mt, prefix)...)
	}
	for _, mt := range mapping {
		for _, col := range mt.Columns {
			if !col.ResolveDependency || col.TableReference == "" || col.TableReference == table.Name {
				continue
			}
			ref, ok := e.index.Table(col.TableReference)
			if !ok {
				continue
			}
			e.extract(set, ref, maxDepth, depth+1, prefix)
		}
	}
}

// TableSlots emits one slot per column of table.
func TableSlots(table schema.Table, prefix string) []Slot {
	out := make([]Slot, 0, len(table.Columns))
	for _, col := range table.Columns {
		out = append(out, Slot{
			Name:            Name(prefix, table.Name, col.Name),
			EntityNl:        slices.Clone(table.NlExpressions),
			Nl:              slices.Clone(col.NlExpressions),
			DataType:        col.DataType,
			List:            false,
			Requestable:     col.Requestable,
			Displayable:     col.Displayable,
			TableReference:  col.TableReference,
			ColumnReference: col.ColumnReference,
			Regex:           col.Regex,
			LookupTable:     slices.Clone(col.LookupTable),
		})
	}
	return out
}

// MappingTables returns the junction tables bridging target to other tables: tables
// with a composite primary key that holds a reference to target and at least two
// referencing key components.
func MappingTables(target schema.Table, tables []schema.Table) []schema.Table {
	var out []schema.Table
	seen := make(map[string]struct{})
	for _, refCol := range target.Columns {
		for _, t := range tables {
			if t.Name == target.Name || len(t.PrimaryKey) < 2 {
				continue
			}
			if _, ok := seen[t.Name]; ok {
				continue
			}
			if !referencesInKey(t, target.Name, refCol.Name) || referencingKeyParts(t) < 2 {
				continue
			}
			seen[t.Name] = struct{}{}
			out = append(out, t)
		}
	}
	return out
}

func referencesInKey(t schema.Table, table, column string) bool {
	return slices.ContainsFunc(t.Columns, func(c schema.Column) bool {
		return c.TableReference == table && c.ColumnReference == column && t.InPrimaryKey(c.Name)
	})
}

func referencingKeyParts(t schema.Table) int {
	n := 0
	for _, c := range t.Columns {
		if t.InPrimaryKey(c.Name) && c.IsReference() {
			n++
		}
	}
	return n
}

func edgeColumns(table schema.Table) []schema.Column {
	var out []schema.Column
	for _, c := range table.Columns {
		if c.IsEdge() {
			out = append(out, c)
		}
	}
	return out
}

// sharesTarget reports whether another edge points at the same table and column as col.
func sharesTarget(edges []schema.Column, col schema.Column) bool {
	return slices.ContainsFunc(edges, func(c schema.Column) bool {
		return c.Name != col.Name && c.TableReference == col.TableReference && c.ColumnReference == col.ColumnReference
	})
}
