package introspect

import (
	"strings"

	"github.com/jinzhu/inflection"

	"dbwizard/internal/schema"
)

// Options controls the defaults of a freshly discovered schema.
type Options struct {
	// ResolveDepth is the number of foreign key hops followed from every table.
	ResolveDepth int
}

// DefaultOptions returns the defaults used when nothing is configured.
func DefaultOptions() Options {
	return Options{ResolveDepth: 1}
}

// Baseline turns a catalog into the editable schema model. Tables are phrased by their
// singular name, keys are neither asked for nor shown, and every routine starts with an
// empty NL sample.
func Baseline(c Catalog, opts Options) ([]schema.Table, []schema.Procedure) {
	type column struct{ table, column string }
	refs := make(map[column]ForeignKey, len(c.ForeignKeys))
	for _, fk := range c.ForeignKeys {
		k := column{fk.FromTable, fk.FromColumn}
		if _, ok := refs[k]; !ok {
			refs[k] = fk
		}
	}

	tables := make([]schema.Table, 0, len(c.Tables))
	for _, t := range c.Tables {
		out := schema.Table{
			Name:          t.Name,
			PrimaryKey:    append([]string{}, t.PrimaryKey...),
			NlExpressions: []string{inflection.Singular(phrase(t.Name))},
			Columns:       make([]schema.Column, 0, len(t.Columns)),
			ResolveDepth:  opts.ResolveDepth,
		}
		for _, col := range t.Columns {
			fk, isRef := refs[column{t.Name, col.Name}]
			key := isRef || out.InPrimaryKey(col.Name)
			sc := schema.Column{
				Name:              col.Name,
				NlExpressions:     []string{phrase(col.Name)},
				DataType:          col.Type,
				Nullable:          col.Nullable,
				Requestable:       !key,
				Displayable:       !key,
				ResolveDependency: isRef,
				LookupTable:       []schema.LookupEntry{},
			}
			if isRef {
				sc.TableReference = fk.ToTable
				sc.ColumnReference = fk.ToColumn
			}
			out.Columns = append(out.Columns, sc)
		}
		tables = append(tables, out)
	}

	procedures := make([]schema.Procedure, 0, len(c.Routines))
	for _, r := range c.Routines {
		procedures = append(procedures, procedure(r))
	}
	return tables, procedures
}

func procedure(r Routine) schema.Procedure {
	p := schema.Procedure{
		Name:       r.Name,
		NlPairs:    []schema.NLPair{},
		NlSample:   &schema.EntitySample{Predicates: []string{}},
		Operation:  schema.OperationCall,
		Parameters: []schema.Argument{},
		Body:       r.Body,
	}

	var values []schema.Argument
	for _, param := range r.Parameters {
		switch param.Mode {
		case ModeOut, ModeTable:
			values = append(values, argument(strings.ToLower(param.Name), param.Type))
		case ModeInOut:
			p.Parameters = append(p.Parameters, argument(param.Name, param.Type))
			values = append(values, argument(strings.ToLower(param.Name), param.Type))
		default:
			p.Parameters = append(p.Parameters, argument(param.Name, param.Type))
		}
	}
	if !r.Function {
		return p
	}

	p.Operation = schema.OperationSelect
	if len(values) == 0 && r.ReturnType != "" {
		values = append(values, argument(strings.ToLower(r.Name), r.ReturnType))
	}
	if values == nil {
		values = []schema.Argument{}
	}
	p.Returns = &schema.ReturnRecord{
		Name:          r.Name,
		NlExpressions: []string{phrase(r.Name)},
		Values:        values,
	}
	return p
}

func argument(name, dataType string) schema.Argument {
	dataType, list := listType(dataType)
	return schema.Argument{
		Name:          name,
		NlExpressions: []string{phrase(name)},
		DataType:      dataType,
		List:          list,
	}
}

// listType strips the array marker from a catalog type name. PostgreSQL prefixes array
// types with an underscore; other catalogs spell them with a trailing "[]".
func listType(t string) (string, bool) {
	switch {
	case strings.HasPrefix(t, "_"):
		return strings.TrimLeft(t, "_"), true
	case strings.HasSuffix(t, "[]"):
		return strings.TrimSuffix(t, "[]"), true
	}
	return t, false
}

// phrase turns an identifier into the words a user would say for it.
func phrase(name string) string {
	return strings.TrimSpace(strings.ReplaceAll(strings.ToLower(name), "_", " "))
}
