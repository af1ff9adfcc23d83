package reconcile

import (
	"fmt"
	"slices"
	"strings"

	"dbwizard/internal/schema"
)

func tablePresence(cfg *schema.Configuration, base baseline) []string {
	var warn []string

	have := make(map[string]bool, len(cfg.Tables))
	for _, t := range cfg.Tables {
		have[t.Name] = true
	}
	var missing []string
	for _, t := range base.tables {
		if !have[t.Name] {
			missing = append(missing, t.Name)
			cfg.Tables = append(cfg.Tables, t.Clone())
		}
	}
	if len(missing) > 0 {
		warn = append(warn, fmt.Sprintf("Configuration misses the following tables: %s.", strings.Join(missing, ", ")))
	}

	var unknown []string
	kept := cfg.Tables[:0]
	for _, t := range cfg.Tables {
		if _, ok := base.tableIdx.Table(t.Name); !ok {
			unknown = append(unknown, t.Name)
			continue
		}
		kept = append(kept, t)
	}
	cfg.Tables = kept
	if len(unknown) > 0 {
		warn = append(warn, fmt.Sprintf("Configuration has unknown tables: %s. Skipping tables.", strings.Join(unknown, ", ")))
	}
	return warn
}

func tableFields(cfg *schema.Configuration, base baseline) []string {
	var warn []string
	for i := range cfg.Tables {
		t := &cfg.Tables[i]
		match, _ := base.tableIdx.Table(t.Name)

		if !sameMembers(t.PrimaryKey, match.PrimaryKey) {
			warn = append(warn, fmt.Sprintf("Primary key of configuration table '%s' '%s' does not match '%s'. Using existing configuration.",
				t.Name, strings.Join(t.PrimaryKey, ", "), strings.Join(match.PrimaryKey, ", ")))
			t.PrimaryKey = slices.Clone(match.PrimaryKey)
		}
		if t.NlExpressions == nil && match.NlExpressions != nil {
			warn = append(warn, fmt.Sprintf("NL Expressions of table '%s' are missing, using existing configuration", t.Name))
			t.NlExpressions = slices.Clone(match.NlExpressions)
		}
		if t.Missing("representation") {
			warn = append(warn, fmt.Sprintf("Representation of table '%s' is missing, using existing configuration", t.Name))
			t.Representation = match.Representation
			t.Filled("representation")
		}
		if t.ResolveDepth == 0 && match.ResolveDepth != 0 {
			warn = append(warn, fmt.Sprintf("Resolve depth of table '%s' is missing, using existing configuration", t.Name))
			t.ResolveDepth = match.ResolveDepth
			t.Filled("resolveDepth")
		}
	}
	return warn
}

func columns(cfg *schema.Configuration, base baseline) []string {
	var warn []string
	for i := range cfg.Tables {
		t := &cfg.Tables[i]
		match, _ := base.tableIdx.Table(t.Name)

		for _, mc := range match.Columns {
			j := t.ColumnIndex(mc.Name)
			if j < 0 {
				warn = append(warn, fmt.Sprintf("Configuration table '%s' has missing column '%s'. Adding column.", t.Name, mc.Name))
				t.Columns = append(t.Columns, mc)
				continue
			}
			warn = append(warn, column(t.Name, &t.Columns[j], mc)...)
		}

		var unknown []string
		kept := t.Columns[:0]
		for _, c := range t.Columns {
			if _, ok := match.Column(c.Name); !ok {
				unknown = append(unknown, c.Name)
				continue
			}
			kept = append(kept, c)
		}
		t.Columns = kept
		if len(unknown) > 0 {
			warn = append(warn, fmt.Sprintf("Configuration has unknown columns in table '%s': %s. Ignoring columns.", t.Name, strings.Join(unknown, ", ")))
		}
	}
	return warn
}

func column(table string, c *schema.Column, match schema.Column) []string {
	var warn []string
	qualified := table + "." + c.Name

	if c.DataType != match.DataType {
		warn = append(warn, fmt.Sprintf("Configuration column '%s' data type '%s' does not match '%s'. Updating value.",
			qualified, c.DataType, match.DataType))
		c.DataType = match.DataType
	}
	if c.TableReference != match.TableReference || c.ColumnReference != match.ColumnReference {
		warn = append(warn, fmt.Sprintf("Configuration column '%s' foreign key relation '%s.%s' does not match '%s.%s'. Updating value.",
			qualified, c.TableReference, c.ColumnReference, match.TableReference, match.ColumnReference))
		c.TableReference = match.TableReference
		c.ColumnReference = match.ColumnReference
	}
	if c.NlExpressions == nil && match.NlExpressions != nil {
		warn = append(warn, fmt.Sprintf("Configuration column '%s' misses natural language expressions. Using existing configuration", qualified))
		c.NlExpressions = slices.Clone(match.NlExpressions)
	}

	option := func(name string, restore func()) {
		if c.Missing(name) {
			warn = append(warn, fmt.Sprintf("Configuration column '%s' misses option '%s'. Using existing configuration", qualified, name))
			restore()
			c.Filled(name)
		}
	}
	option("requestable", func() { c.Requestable = match.Requestable })
	option("displayable", func() { c.Displayable = match.Displayable })
	option("resolveDependency", func() { c.ResolveDependency = match.ResolveDependency })
	option("lookupTable", func() { c.LookupTable = slices.Clone(match.LookupTable) })
	option("regex", func() { c.Regex = match.Regex })
	return warn
}

// sameMembers compares two keys ignoring order.
func sameMembers(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for _, x := range a {
		if !slices.Contains(b, x) {
			return false
		}
	}
	return true
}
