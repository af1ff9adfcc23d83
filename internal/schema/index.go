package schema

// Index resolves tables by name. It is built once per compiler invocation and keeps
// the input order for callers that iterate.
type Index struct {
	tables []Table
	byName map[string]int
}

// NewIndex indexes tables. When two tables share a name the first one wins.
func NewIndex(tables []Table) *Index {
	idx := &Index{tables: tables, byName: make(map[string]int, len(tables))}
	for i, t := range tables {
		if _, ok := idx.byName[t.Name]; !ok {
			idx.byName[t.Name] = i
		}
	}
	return idx
}

// Table returns the table called name.
func (idx *Index) Table(name string) (Table, bool) {
	i, ok := idx.byName[name]
	if !ok {
		return Table{}, false
	}
	return idx.tables[i], true
}

// Column returns column of table.
func (idx *Index) Column(table, column string) (Column, bool) {
	t, ok := idx.Table(table)
	if !ok {
		return Column{}, false
	}
	return t.Column(column)
}

// Tables returns the indexed tables in input order.
func (idx *Index) Tables() []Table {
	return idx.tables
}
