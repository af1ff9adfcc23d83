// Package reconcile merges a previously exported configuration into the schema that
// was just discovered. The discovered baseline is authoritative for structure; the
// operator's annotations survive wherever the baseline has nothing to say.
package reconcile

import (
	"dbwizard/internal/schema"
)

// Result is a reconciled configuration and the corrections that produced it, in the
// order they were applied.
type Result struct {
	Configuration schema.Configuration `json:"configuration"`
	Warnings      []string             `json:"warnings"`
}

// pass corrects one aspect of the working configuration and reports what it changed.
type pass func(cfg *schema.Configuration, base baseline) []string

type baseline struct {
	tables     []schema.Table
	procedures []schema.Procedure
	tableIdx   *schema.Index
	procIdx    map[string]int
}

func newBaseline(tables []schema.Table, procedures []schema.Procedure) baseline {
	b := baseline{
		tables:     tables,
		procedures: procedures,
		tableIdx:   schema.NewIndex(tables),
		procIdx:    make(map[string]int, len(procedures)),
	}
	for i, p := range procedures {
		if _, ok := b.procIdx[p.Name]; !ok {
			b.procIdx[p.Name] = i
		}
	}
	return b
}

func (b baseline) procedure(name string) (schema.Procedure, bool) {
	i, ok := b.procIdx[name]
	if !ok {
		return schema.Procedure{}, false
	}
	return b.procedures[i], true
}

var passes = []pass{
	tablePresence,
	tableFields,
	columns,
	procedurePresence,
	procedureFields,
	references,
}

// Reconcile corrects imported against the baseline schema. Neither the import nor the
// baseline is modified; the result holds its own copies.
func Reconcile(imported schema.Configuration, baselineTables []schema.Table, baselineProcedures []schema.Procedure) Result {
	cfg := imported.Clone()
	if cfg.Tables == nil {
		cfg.Tables = []schema.Table{}
	}
	if cfg.Procedures == nil {
		cfg.Procedures = []schema.Procedure{}
	}
	base := newBaseline(schema.CloneTables(baselineTables), schema.CloneProcedures(baselineProcedures))

	warnings := []string{}
	for _, p := range passes {
		warnings = append(warnings, p(&cfg, base)...)
	}
	return Result{Configuration: cfg, Warnings: warnings}
}
