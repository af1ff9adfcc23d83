// Package templates synthesizes the intent and response catalogs a dialogue
// training system learns from.
package templates

import (
	"fmt"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Templateable is one trainable utterance unit: an intent or a bot response.
type Templateable struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Templates    []string `json:"templates"`
	Placeholders []string `json:"placeholders"`
}

func (t Templateable) clone() Templateable {
	t.Templates = slices.Clone(t.Templates)
	t.Placeholders = slices.Clone(t.Placeholders)
	return t
}

// Export is the persisted template document.
type Export struct {
	Responses []Templateable `json:"responses"`
	Intents   []Templateable `json:"intents"`
}

// archetype is the fixed shape every generated templateable of one kind shares.
// name is a format string taking the display name of the instance.
type archetype struct {
	idPrefix     string
	name         string
	templates    []string
	placeholders []string
}

// instantiate returns a fresh templateable of kind a for the given id suffix.
func (a archetype) instantiate(idSuffix, display string) Templateable {
	return Templateable{
		ID:           a.idPrefix + idSuffix,
		Name:         fmt.Sprintf(a.name, display),
		Templates:    slices.Clone(a.templates),
		Placeholders: slices.Clone(a.placeholders),
	}
}

// DisplayName turns an identifier like place_order into "Place Order".
func DisplayName(id string) string {
	parts := strings.Split(id, "_")
	words := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(p)
		words = append(words, string(unicode.ToUpper(r))+p[size:])
	}
	return strings.Join(words, " ")
}

// Catalog is an id keyed, insertion ordered collection of templateables.
type Catalog struct {
	items []Templateable
	index map[string]int
}

// NewCatalog returns a catalog holding seed.
func NewCatalog(seed ...Templateable) *Catalog {
	c := &Catalog{index: make(map[string]int)}
	c.Add(seed...)
	return c
}

// Add inserts the templateables whose ids are not in the catalog yet and reports
// how many were inserted.
func (c *Catalog) Add(items ...Templateable) int {
	n := 0
	for _, t := range items {
		if _, ok := c.index[t.ID]; ok {
			continue
		}
		c.index[t.ID] = len(c.items)
		c.items = append(c.items, t.clone())
		n++
	}
	return n
}

// Get returns the templateable with id.
func (c *Catalog) Get(id string) (Templateable, bool) {
	i, ok := c.index[id]
	if !ok {
		return Templateable{}, false
	}
	return c.items[i].clone(), true
}

// Has reports whether id is in the catalog.
func (c *Catalog) Has(id string) bool {
	_, ok := c.index[id]
	return ok
}

// Len returns the number of templateables.
func (c *Catalog) Len() int {
	return len(c.items)
}

// Items returns a copy of the catalog in insertion order.
func (c *Catalog) Items() []Templateable {
	out := make([]Templateable, len(c.items))
	for i, t := range c.items {
		out[i] = t.clone()
	}
	return out
}

// Merge combines catalogs by id. The first occurrence of an id wins.
func Merge(catalogs ...[]Templateable) []Templateable {
	c := NewCatalog()
	for _, items := range catalogs {
		c.Add(items...)
	}
	return c.Items()
}

// withSlotLines appends one "- {slot_nl}: {slot}" line per slot to every template.
func withSlotLines(templates []string, slotNames []string) []string {
	out := make([]string, len(templates))
	for i, t := range templates {
		var b strings.Builder
		b.WriteString(t)
		for _, s := range slotNames {
			fmt.Fprintf(&b, "\n- {%s_nl}: {%s}", s, s)
		}
		out[i] = b.String()
	}
	return out
}

// appendUnique appends the values not yet in list.
func appendUnique(list []string, values ...string) []string {
	for _, v := range values {
		if !slices.Contains(list, v) {
			list = append(list, v)
		}
	}
	return list
}
