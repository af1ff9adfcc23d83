package reconcile

import (
	"fmt"

	"dbwizard/internal/schema"
)

// ref is a foreign key pointer of a column or an argument.
type ref struct {
	table, column string
}

// references reports foreign key pointers that lead nowhere in the reconciled
// configuration. Nothing is corrected; the slot extractor skips such edges. A pointer
// the baseline itself holds and cannot resolve either is left alone.
func references(cfg *schema.Configuration, base baseline) []string {
	var warn []string
	idx := schema.NewIndex(cfg.Tables)

	check := func(owner string, got ref, inBaseline ref, known bool) {
		if got.table == "" && got.column == "" {
			return
		}
		if _, ok := idx.Column(got.table, got.column); ok {
			return
		}
		if known && got == inBaseline {
			if _, ok := base.tableIdx.Column(got.table, got.column); !ok {
				return
			}
		}
		warn = append(warn, fmt.Sprintf("Configuration %s references unknown column '%s.%s'.", owner, got.table, got.column))
	}

	for _, t := range cfg.Tables {
		for _, c := range t.Columns {
			bc, ok := base.tableIdx.Column(t.Name, c.Name)
			check(fmt.Sprintf("column '%s.%s'", t.Name, c.Name),
				ref{c.TableReference, c.ColumnReference}, ref{bc.TableReference, bc.ColumnReference}, ok)
		}
	}
	for _, p := range cfg.Procedures {
		match, _ := base.procedure(p.Name)
		for _, a := range p.Parameters {
			m, ok := argument(match.Parameters, a.Name)
			check(fmt.Sprintf("parameter '%s.%s'", p.Name, a.Name),
				ref{a.TableReference, a.ColumnReference}, ref{m.TableReference, m.ColumnReference}, ok)
		}
		if p.Returns == nil {
			continue
		}
		var values []schema.Argument
		if match.Returns != nil {
			values = match.Returns.Values
		}
		for _, a := range p.Returns.Values {
			m, ok := argument(values, a.Name)
			check(fmt.Sprintf("return value '%s.%s'", p.Name, a.Name),
				ref{a.TableReference, a.ColumnReference}, ref{m.TableReference, m.ColumnReference}, ok)
		}
	}
	return warn
}

func argument(args []schema.Argument, name string) (schema.Argument, bool) {
	for _, a := range args {
		if a.Name == name {
			return a, true
		}
	}
	return schema.Argument{}, false
}
