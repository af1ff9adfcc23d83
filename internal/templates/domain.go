package templates

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"dbwizard/internal/tasks"
)

// Slot types of the training domain.
const (
	SlotText         = "text"
	SlotUnfeaturized = "unfeaturized"
)

// Domain is the training domain document: everything the dialogue model can
// recognise, remember and say.
type Domain struct {
	Intents   []DomainIntent   `yaml:"intents" json:"intents"`
	Entities  []string         `yaml:"entities" json:"entities"`
	Slots     []DomainSlot     `yaml:"slots" json:"slots"`
	Templates []ActionTemplate `yaml:"templates" json:"templates"`
	Actions   []string         `yaml:"actions" json:"actions"`
}

// DomainIntent is an intent with the actions it triggers directly.
type DomainIntent struct {
	Name     string   `yaml:"name" json:"name"`
	Triggers []string `yaml:"triggers,omitempty" json:"triggers,omitempty"`
}

// DomainSlot is one slot of the dialogue state.
type DomainSlot struct {
	Name string `yaml:"name" json:"name"`
	Type string `yaml:"type" json:"type"`
}

// ActionTemplate holds the texts of one response action.
type ActionTemplate struct {
	ActionName string     `yaml:"action_name" json:"actionName"`
	Templates  []Template `yaml:"templates" json:"templates"`
}

// Template is one response text.
type Template struct {
	Text string `yaml:"text" json:"text"`
}

// BuildDomain assembles the training domain of tasks and their catalogs. Intent
// placeholders become entities and text slots; every other task slot is kept in the
// dialogue state without influencing predictions.
func BuildDomain(ts []tasks.Task, responses, intents []Templateable) Domain {
	d := Domain{
		Intents:   make([]DomainIntent, 0, len(intents)),
		Entities:  []string{},
		Slots:     []DomainSlot{},
		Templates: make([]ActionTemplate, 0, len(responses)),
		Actions:   make([]string, 0, len(responses)),
	}

	actions := NewCatalog(responses...)
	entities := map[string]bool{}
	for _, in := range intents {
		d.Intents = append(d.Intents, DomainIntent{Name: in.ID, Triggers: triggers(in.ID, actions)})
		for _, p := range in.Placeholders {
			if !entities[p] {
				entities[p] = true
				d.Entities = append(d.Entities, p)
			}
		}
	}

	seen := map[string]bool{}
	addSlot := func(name string) {
		if seen[name] {
			return
		}
		seen[name] = true
		typ := SlotUnfeaturized
		if entities[name] {
			typ = SlotText
		}
		d.Slots = append(d.Slots, DomainSlot{Name: name, Type: typ})
	}
	for _, e := range d.Entities {
		addSlot(e)
	}
	for _, task := range ts {
		for _, s := range task.Slots {
			addSlot(s.Name)
		}
		for _, s := range task.ReturnSlots {
			addSlot(s.Name)
		}
		for _, st := range task.Subtasks {
			for _, s := range st.Slots {
				addSlot(s.Name)
			}
		}
	}

	for _, r := range responses {
		at := ActionTemplate{ActionName: r.ID, Templates: make([]Template, len(r.Templates))}
		for i, text := range r.Templates {
			at.Templates[i] = Template{Text: text}
		}
		d.Templates = append(d.Templates, at)
		d.Actions = append(d.Actions, r.ID)
	}
	return d
}

// triggers returns the response a begin intent answers with directly: the proposal
// of the task it starts.
func triggers(intent string, actions *Catalog) []string {
	task, ok := strings.CutPrefix(intent, beginTransaction.idPrefix)
	if !ok {
		return nil
	}
	if id := proposeTask.idPrefix + task; actions.Has(id) {
		return []string{id}
	}
	return nil
}

// YAML encodes d.
func (d Domain) YAML() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return nil, fmt.Errorf("encode domain: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode domain: %w", err)
	}
	return buf.Bytes(), nil
}
