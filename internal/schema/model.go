package schema

import (
	"encoding/json"
	"slices"
)

// Operation kinds of a Procedure.
const (
	OperationCall   = "call"
	OperationSelect = "select"
)

// LookupEntry maps a column value to the synonyms a user may say for it.
type LookupEntry struct {
	Value    string   `json:"value"`
	Synonyms []string `json:"synonyms"`
}

// NLPair is one (predicate, argument) phrasing of a procedure, e.g. ("order", "a pizza").
type NLPair struct {
	Predicate string `json:"predicate"`
	Argument  string `json:"argument"`
}

// EntitySample tells the template generator which parameter, table and column to
// draw example values from.
type EntitySample struct {
	ParameterName string   `json:"parameterName"`
	Predicates    []string `json:"predicates"`
	TableName     string   `json:"tableName"`
	ColumnName    string   `json:"columnName"`
}

// Column is a table attribute, possibly a foreign key.
type Column struct {
	Name              string        `json:"name"`
	NlExpressions     []string      `json:"nlExpressions"`
	DataType          string        `json:"dataType"`
	TableReference    string        `json:"tableReference"`
	ColumnReference   string        `json:"columnReference"`
	Nullable          bool          `json:"nullable"`
	Requestable       bool          `json:"requestable"`
	Displayable       bool          `json:"displayable"`
	ResolveDependency bool          `json:"resolveDependency"`
	Regex             string        `json:"regex"`
	LookupTable       []LookupEntry `json:"lookupTable"`

	absent fieldSet
}

// IsReference reports whether both foreign key pointers are set.
func (c Column) IsReference() bool {
	return c.TableReference != "" && c.ColumnReference != ""
}

// IsEdge reports whether the column is followed as a foreign key edge.
func (c Column) IsEdge() bool {
	return c.ResolveDependency && c.IsReference()
}

// Missing reports whether the JSON document this column was decoded from lacked field.
func (c Column) Missing(field string) bool {
	return c.absent.has(field)
}

// Filled marks field as present, e.g. after it was restored from another source.
func (c *Column) Filled(field string) {
	c.absent.clear(field)
}

func (c *Column) UnmarshalJSON(data []byte) error {
	type plain Column
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	absent, err := absentKeys(data, "requestable", "displayable", "resolveDependency", "lookupTable", "regex")
	if err != nil {
		return err
	}
	*c = Column(p)
	c.absent = absent
	return nil
}

func (c Column) clone() Column {
	c.NlExpressions = cloneStrings(c.NlExpressions)
	if c.LookupTable != nil {
		lt := make([]LookupEntry, len(c.LookupTable))
		for i, e := range c.LookupTable {
			lt[i] = LookupEntry{Value: e.Value, Synonyms: cloneStrings(e.Synonyms)}
		}
		c.LookupTable = lt
	}
	return c
}

// Table is a relational table with its natural language annotations.
type Table struct {
	Name           string   `json:"name"`
	PrimaryKey     []string `json:"primaryKey"`
	NlExpressions  []string `json:"nlExpressions"`
	Representation string   `json:"representation"`
	Columns        []Column `json:"columns"`
	ResolveDepth   int      `json:"resolveDepth"`

	absent fieldSet
}

// Column returns the column called name.
func (t Table) Column(name string) (Column, bool) {
	i := t.ColumnIndex(name)
	if i < 0 {
		return Column{}, false
	}
	return t.Columns[i], true
}

// ColumnIndex returns the position of the column called name, or -1.
func (t Table) ColumnIndex(name string) int {
	return slices.IndexFunc(t.Columns, func(c Column) bool { return c.Name == name })
}

// InPrimaryKey reports whether column is a component of the primary key.
func (t Table) InPrimaryKey(column string) bool {
	return slices.Contains(t.PrimaryKey, column)
}

// Missing reports whether the JSON document this table was decoded from lacked field.
func (t Table) Missing(field string) bool {
	return t.absent.has(field)
}

// Filled marks field as present.
func (t *Table) Filled(field string) {
	t.absent.clear(field)
}

func (t *Table) UnmarshalJSON(data []byte) error {
	type plain Table
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	absent, err := absentKeys(data, "representation", "resolveDepth")
	if err != nil {
		return err
	}
	*t = Table(p)
	t.absent = absent
	return nil
}

// Clone returns a deep copy of t.
func (t Table) Clone() Table {
	t.PrimaryKey = cloneStrings(t.PrimaryKey)
	t.NlExpressions = cloneStrings(t.NlExpressions)
	if t.Columns != nil {
		cols := make([]Column, len(t.Columns))
		for i, c := range t.Columns {
			cols[i] = c.clone()
		}
		t.Columns = cols
	}
	return t
}

// Argument is a procedure parameter or return value.
type Argument struct {
	Name            string   `json:"name"`
	NlExpressions   []string `json:"nlExpressions"`
	DataType        string   `json:"dataType"`
	List            bool     `json:"list"`
	TableReference  string   `json:"tableReference"`
	ColumnReference string   `json:"columnReference"`
}

// IsReference reports whether both foreign key style pointers are set.
func (a Argument) IsReference() bool {
	return a.TableReference != "" && a.ColumnReference != ""
}

// ReturnRecord describes what a procedure hands back.
type ReturnRecord struct {
	Name          string     `json:"name"`
	NlExpressions []string   `json:"nlExpressions"`
	Values        []Argument `json:"values"`
}

// Procedure is a callable backend operation.
type Procedure struct {
	Name       string        `json:"name"`
	NlPairs    []NLPair      `json:"nlPairs"`
	NlSample   *EntitySample `json:"nlSample"`
	Operation  string        `json:"operation"`
	Parameters []Argument    `json:"parameters"`
	Returns    *ReturnRecord `json:"returns"`
	Body       string        `json:"body"`
}

// Clone returns a deep copy of p.
func (p Procedure) Clone() Procedure {
	if p.NlPairs != nil {
		p.NlPairs = slices.Clone(p.NlPairs)
	}
	if p.NlSample != nil {
		s := *p.NlSample
		s.Predicates = cloneStrings(s.Predicates)
		p.NlSample = &s
	}
	p.Parameters = cloneArguments(p.Parameters)
	if p.Returns != nil {
		r := *p.Returns
		r.NlExpressions = cloneStrings(r.NlExpressions)
		r.Values = cloneArguments(r.Values)
		p.Returns = &r
	}
	return p
}

// Configuration is a persisted snapshot of the curated schema.
type Configuration struct {
	Tables     []Table     `json:"tables"`
	Procedures []Procedure `json:"procedures"`
}

// Clone returns a deep copy of c.
func (c Configuration) Clone() Configuration {
	return Configuration{
		Tables:     CloneTables(c.Tables),
		Procedures: CloneProcedures(c.Procedures),
	}
}

// CloneTables deep copies tables.
func CloneTables(tables []Table) []Table {
	if tables == nil {
		return nil
	}
	out := make([]Table, len(tables))
	for i, t := range tables {
		out[i] = t.Clone()
	}
	return out
}

// CloneProcedures deep copies procedures.
func CloneProcedures(procedures []Procedure) []Procedure {
	if procedures == nil {
		return nil
	}
	out := make([]Procedure, len(procedures))
	for i, p := range procedures {
		out[i] = p.Clone()
	}
	return out
}

func cloneArguments(args []Argument) []Argument {
	if args == nil {
		return nil
	}
	out := make([]Argument, len(args))
	for i, a := range args {
		a.NlExpressions = cloneStrings(a.NlExpressions)
		out[i] = a
	}
	return out
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return slices.Clone(s)
}
