package templates

import (
	"strings"

	"dbwizard/internal/schema"
	"dbwizard/internal/slots"
	"dbwizard/internal/tasks"
)

// SynthesizeResponses builds the bot response catalog for tasks: the built-in
// responses followed by the proposals, questions and outcome messages of every task.
func SynthesizeResponses(ts []tasks.Task, tables []schema.Table) []Templateable {
	e := slots.NewExtractor(tables)
	c := NewCatalog(seedResponses()...)
	for _, task := range ts {
		c.Add(taskResponses(e, task)...)
	}
	return c.Items()
}

func taskResponses(e *slots.Extractor, task tasks.Task) []Templateable {
	out := []Templateable{proposeTask.instantiate(task.Name, DisplayName(task.Name))}
	for _, s := range task.Slots {
		out = append(out, askParameter.instantiate(s.Name, DisplayName(s.Name)))
	}
	for _, st := range task.Subtasks {
		switch st.Operation {
		case tasks.OperationSelect:
			out = append(out, selectionProposal(st))
			for _, s := range st.Slots {
				if s.Requestable {
					out = append(out, askSelection.instantiate(s.Name, DisplayName(s.Name)))
				}
			}
		case tasks.OperationChoose:
			out = append(out, choiceProposal(st))
			out = append(out, askChoice.instantiate(st.TargetSlot, DisplayName(st.TargetSlot)))
		}
	}
	out = append(out, successResponse(e, task), failedTransaction.instantiate(task.Name, DisplayName(task.Name)))
	out = append(out, transactionProposal(task))
	return out
}

func selectionProposal(st tasks.Subtask) Templateable {
	t := proposeSelection.instantiate(st.TargetTable, DisplayName(st.TargetTable))
	shown := displayableNames(st.Slots)
	t.Placeholders = appendUnique(t.Placeholders, withNl(shown)...)
	t.Placeholders = appendUnique(t.Placeholders, "table_nl")
	t.Templates = withSlotLines(t.Templates, shown)
	return t
}

func choiceProposal(st tasks.Subtask) Templateable {
	task, slot, ok := strings.Cut(st.TargetSlot, "__")
	display := DisplayName(st.TargetSlot)
	if ok {
		display = DisplayName(slot) + " (" + DisplayName(task) + ")"
	}
	return proposeChoice.instantiate(st.TargetSlot, display)
}

func transactionProposal(task tasks.Task) Templateable {
	t := proposeTransaction.instantiate(task.Name, DisplayName(task.Name))
	params := make([]string, len(task.Slots))
	for i, s := range task.Slots {
		params[i] = s.Name
	}
	t.Templates = withSlotLines(t.Templates, params)
	t.Placeholders = appendUnique(t.Placeholders, withNl(params)...)
	for _, st := range task.Subtasks {
		if st.TargetTable == "" {
			continue
		}
		t.Placeholders = appendUnique(t.Placeholders, withNl(displayableNames(st.Slots))...)
	}
	return t
}

// successResponse lists every return slot as a placeholder, plus the displayable
// slots of the tables that referencing return values point at.
func successResponse(e *slots.Extractor, task tasks.Task) Templateable {
	t := successTransaction.instantiate(task.Name, DisplayName(task.Name))
	for _, s := range task.ReturnSlots {
		t.Placeholders = appendUnique(t.Placeholders, s.Name)
	}
	for _, s := range task.ReturnSlots {
		if s.TableReference == "" {
			continue
		}
		ref, ok := e.Index().Table(s.TableReference)
		if !ok {
			continue
		}
		t.Placeholders = appendUnique(t.Placeholders, displayableNames(e.Slots(ref))...)
	}
	return t
}

func displayableNames(ss []slots.Slot) []string {
	var out []string
	for _, s := range ss {
		if s.Displayable {
			out = append(out, s.Name)
		}
	}
	return out
}

// withNl pairs every name with its natural language companion placeholder.
func withNl(names []string) []string {
	out := make([]string, 0, 2*len(names))
	for _, n := range names {
		out = append(out, n, n+"_nl")
	}
	return out
}
