// Package introspect holds the raw database catalog read by the dialect extractors and
// turns it into the editable schema model.
package introspect

// Column represents a table column.
type Column struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Nullable bool   `json:"nullable"`
}

// ForeignKey is one column of a foreign key relationship. Composite keys appear as
// one ForeignKey per column, sharing the constraint name.
type ForeignKey struct {
	FromSchema string `json:"from_schema,omitempty"`
	FromTable  string `json:"from_table"`
	FromColumn string `json:"from_column"`
	ToSchema   string `json:"to_schema,omitempty"`
	ToTable    string `json:"to_table"`
	ToColumn   string `json:"to_column"`
	Constraint string `json:"constraint,omitempty"`
}

// Table represents a database table and its columns.
type Table struct {
	Schema     string   `json:"schema,omitempty"`
	Name       string   `json:"name"`
	Columns    []Column `json:"columns"`
	PrimaryKey []string `json:"primary_key"`     // in key order
	Comment    *string  `json:"comment,omitempty"` // optional table comment
}

// Parameter modes as reported by the catalogs.
const (
	ModeIn    = "IN"
	ModeOut   = "OUT"
	ModeInOut = "INOUT"
	ModeTable = "TABLE"
)

// Parameter is an argument of a stored routine.
type Parameter struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Mode string `json:"mode"`
}

// Routine is a stored function or procedure.
type Routine struct {
	Schema string `json:"schema,omitempty"`
	Name   string `json:"name"`
	// Function is set for routines that hand data back to the caller.
	Function   bool        `json:"function"`
	ReturnType string      `json:"return_type,omitempty"`
	Parameters []Parameter `json:"parameters"`
	Body       string      `json:"body"`
}

// Catalog is everything an extractor reads from one database.
type Catalog struct {
	Tables      []Table      `json:"tables"`
	ForeignKeys []ForeignKey `json:"foreign_keys"`
	Routines    []Routine    `json:"routines"`
}
