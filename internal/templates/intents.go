package templates

import (
	"strings"

	"dbwizard/internal/slots"
	"dbwizard/internal/tasks"
)

// SynthesizeIntents builds the user intent catalog for tasks: the built-in intents
// followed by one begin intent per task and the inform intents of its subtasks.
func SynthesizeIntents(ts []tasks.Task) []Templateable {
	c := NewCatalog(seedIntents()...)
	for _, task := range ts {
		c.Add(beginIntent(task))
		for _, st := range task.Subtasks {
			switch st.Operation {
			case tasks.OperationSelect:
				c.Add(selectionInforms(st)...)
			case tasks.OperationChoose:
				c.Add(choiceInforms(st)...)
			}
		}
	}
	return c.Items()
}

func beginIntent(task tasks.Task) Templateable {
	t := beginTransaction.instantiate(task.Name, DisplayName(task.Name))
	for _, st := range task.Subtasks {
		t.Placeholders = appendUnique(t.Placeholders, withNl(displayableNames(st.Slots))...)
	}
	return t
}

// selectionInforms describes how a user supplies the values of the entity a select
// subtask looks up. Requestable boolean slots get a positive/negative pair instead.
func selectionInforms(st tasks.Subtask) []Templateable {
	var out []Templateable
	inform := informSelection.instantiate(st.TargetTable, DisplayName(st.TargetTable))
	var examples []string
	for _, s := range st.Slots {
		if !s.Requestable || IsBool(s.DataType) {
			continue
		}
		tableNl := slotTable(s.Name) + "_nl"
		inform.Placeholders = appendUnique(inform.Placeholders, tableNl, s.Name, s.Name+"_nl")
		for _, base := range informSelection.templates {
			examples = append(examples, strings.NewReplacer(
				"{table_nl}", "{"+tableNl+"}",
				"{column_nl}", "{"+s.Name+"_nl}",
				"{value}", "{"+s.Name+"}",
			).Replace(base))
		}
	}
	if len(examples) > 0 {
		inform.Templates = examples
		out = append(out, inform)
	}
	for _, s := range st.Slots {
		if s.Requestable && IsBool(s.DataType) {
			out = append(out, boolInforms(s)...)
		}
	}
	return out
}

func choiceInforms(st tasks.Subtask) []Templateable {
	var out []Templateable
	for _, s := range st.Slots {
		if IsBool(s.DataType) {
			out = append(out, boolInforms(s)...)
			continue
		}
		out = append(out, informChoice.instantiate(s.Name, DisplayName(s.Name)))
	}
	return out
}

func boolInforms(s slots.Slot) []Templateable {
	display := DisplayName(s.Name)
	return []Templateable{
		informPositive.instantiate(s.Name+"_true", display),
		informNegative.instantiate(s.Name+"_false", display),
	}
}

// slotTable returns the leading table component of a slot name.
func slotTable(name string) string {
	table, _, _ := strings.Cut(name, "__")
	return table
}

// IsBool reports whether dataType is a boolean column or argument type.
func IsBool(dataType string) bool {
	switch strings.ToLower(dataType) {
	case "bool", "boolean":
		return true
	}
	return false
}
