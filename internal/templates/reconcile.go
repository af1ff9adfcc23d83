package templates

import "fmt"

// Reconcile matches a previously exported template document against the catalogs
// generated from the current configuration. Generated entries missing from the import
// are added back, imported entries the generator does not know are dropped, and
// imported entries with a known id are kept as edited by the operator.
func Reconcile(imported, generated Export) (Export, []string) {
	var warnings []string
	responses, w := reconcileKind("response", imported.Responses, generated.Responses)
	warnings = append(warnings, w...)
	intents, w := reconcileKind("intent", imported.Intents, generated.Intents)
	warnings = append(warnings, w...)
	return Export{Responses: responses, Intents: intents}, warnings
}

func reconcileKind(kind string, imported, generated []Templateable) ([]Templateable, []string) {
	var warnings []string
	known := NewCatalog(generated...)
	have := NewCatalog(imported...)

	for _, g := range generated {
		if !have.Has(g.ID) {
			have.Add(g)
			warnings = append(warnings, fmt.Sprintf("Added default template for missing %s %s", kind, g.Name))
		}
	}

	out := make([]Templateable, 0, have.Len())
	for _, t := range have.Items() {
		if !known.Has(t.ID) {
			warnings = append(warnings, fmt.Sprintf("Unknown template for %s with key %s. Ignoring template.", kind, t.ID))
			continue
		}
		out = append(out, t)
	}
	return out, warnings
}
