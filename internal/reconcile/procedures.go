package reconcile

import (
	"fmt"
	"slices"
	"strings"

	"dbwizard/internal/schema"
)

func procedurePresence(cfg *schema.Configuration, base baseline) []string {
	var warn []string

	have := make(map[string]bool, len(cfg.Procedures))
	for _, p := range cfg.Procedures {
		have[p.Name] = true
	}
	var missing []string
	for _, p := range base.procedures {
		if !have[p.Name] {
			missing = append(missing, p.Name)
			cfg.Procedures = append(cfg.Procedures, p.Clone())
		}
	}
	if len(missing) > 0 {
		warn = append(warn, fmt.Sprintf("Configuration misses the following procedures: %s.", strings.Join(missing, ", ")))
	}

	var unknown []string
	kept := cfg.Procedures[:0]
	for _, p := range cfg.Procedures {
		if _, ok := base.procedure(p.Name); !ok {
			unknown = append(unknown, p.Name)
			continue
		}
		kept = append(kept, p)
	}
	cfg.Procedures = kept
	if len(unknown) > 0 {
		warn = append(warn, fmt.Sprintf("Configuration has unknown procedures: %s. Skipping procedures.", strings.Join(unknown, ", ")))
	}
	return warn
}

func procedureFields(cfg *schema.Configuration, base baseline) []string {
	var warn []string
	for i := range cfg.Procedures {
		p := &cfg.Procedures[i]
		match, _ := base.procedure(p.Name)

		if p.NlSample == nil {
			warn = append(warn, fmt.Sprintf("Configuration procedure '%s' has missing nl sample. Adding empty sample.", p.Name))
			p.NlSample = &schema.EntitySample{Predicates: []string{}}
		}
		if p.Operation != match.Operation {
			warn = append(warn, fmt.Sprintf("Configuration procedure '%s' operation '%s' does not match '%s'. Updating value.",
				p.Name, p.Operation, match.Operation))
			p.Operation = match.Operation
		}

		p.Parameters, warn = arguments(p.Name, parameterKind, p.Parameters, match.Parameters, warn)

		switch {
		case match.Returns == nil:
		case p.Returns == nil:
			warn = append(warn, fmt.Sprintf("Configuration procedure '%s' has missing return record. Adding record.", p.Name))
			p.Returns = match.Clone().Returns
		default:
			p.Returns.Values, warn = arguments(p.Name, returnKind, p.Returns.Values, match.Returns.Values, warn)
		}

		if p.Body != match.Body {
			warn = append(warn, fmt.Sprintf("The body of '%s' has changed. Updating to new body.", p.Name))
			p.Body = match.Body
		}
	}
	return warn
}

// argumentKind holds the wording used when reporting on parameters or return values.
type argumentKind struct {
	singular, plural, added, ignored string
}

var (
	parameterKind = argumentKind{"parameter", "parameters", "Adding parameter.", "Ignoring parameters."}
	returnKind    = argumentKind{"return value", "return values", "Adding value.", "Ignoring values."}
)

// arguments corrects imported against the baseline arguments of procedure proc and
// returns the corrected list. Unknown arguments are dropped.
func arguments(proc string, kind argumentKind, imported, match []schema.Argument, warn []string) ([]schema.Argument, []string) {
	for _, m := range match {
		j := slices.IndexFunc(imported, func(a schema.Argument) bool { return a.Name == m.Name })
		if j < 0 {
			warn = append(warn, fmt.Sprintf("Configuration procedure '%s' has missing %s '%s'. %s", proc, kind.singular, m.Name, kind.added))
			imported = append(imported, m)
			continue
		}
		a := &imported[j]
		if a.DataType != m.DataType {
			warn = append(warn, fmt.Sprintf("Configuration %s '%s.%s' data type '%s' does not match '%s'. Updating value.",
				kind.singular, proc, m.Name, a.DataType, m.DataType))
			a.DataType = m.DataType
		}
		if a.List != m.List {
			if m.List {
				warn = append(warn, fmt.Sprintf("Configuration procedure '%s' %s '%s' type is a list. Updating value.", proc, kind.singular, m.Name))
			} else {
				warn = append(warn, fmt.Sprintf("Configuration procedure '%s' %s '%s' is not a list. Updating value.", proc, kind.singular, m.Name))
			}
			a.List = m.List
		}
	}

	var unknown []string
	kept := imported[:0]
	for _, a := range imported {
		if !slices.ContainsFunc(match, func(m schema.Argument) bool { return m.Name == a.Name }) {
			unknown = append(unknown, a.Name)
			continue
		}
		kept = append(kept, a)
	}
	if len(unknown) > 0 {
		warn = append(warn, fmt.Sprintf("Configuration has unknown %s in procedure '%s': %s. %s",
			kind.plural, proc, strings.Join(unknown, ", "), kind.ignored))
	}
	return kept, warn
}
