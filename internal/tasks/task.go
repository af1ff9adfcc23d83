// Package tasks turns stored procedures into dialogue tasks and the subtasks needed
// to fill their parameters.
package tasks

import (
	"slices"

	"dbwizard/internal/schema"
	"dbwizard/internal/slots"
)

// Subtask operations.
const (
	OperationSelect = "select"
	OperationChoose = "choose"
)

// Subtask is the resolution strategy for one parent slot.
type Subtask struct {
	TargetSlot                string       `json:"targetSlot"`
	TargetDataType            string       `json:"targetDataType"`
	TargetList                bool         `json:"targetList"`
	TargetTable               string       `json:"targetTable"`
	TargetTableNl             []string     `json:"targetTableNl"`
	TargetColumn              string       `json:"targetColumn"`
	TargetTableRepresentation string       `json:"targetTableRepresentation"`
	Operation                 string       `json:"operation"`
	Slots                     []slots.Slot `json:"slots"`
}

// Task is the dialogue facing shape of one procedure.
type Task struct {
	Name        string          `json:"name"`
	Operation   string          `json:"operation"`
	Nl          []schema.NLPair `json:"nl"`
	Slots       []slots.Slot    `json:"slots"`
	ReturnNl    []string        `json:"returnNl"`
	ReturnSlots []slots.Slot    `json:"returnSlots"`
	Subtasks    []Subtask       `json:"subtasks"`
}

// Synthesize builds one task per procedure, in procedure order.
func Synthesize(procedures []schema.Procedure, tables []schema.Table) []Task {
	return SynthesizeWith(slots.NewExtractor(tables), procedures)
}

// SynthesizeWith is Synthesize reusing an extractor built over the table set.
func SynthesizeWith(e *slots.Extractor, procedures []schema.Procedure) []Task {
	out := make([]Task, 0, len(procedures))
	for _, proc := range procedures {
		out = append(out, synthesize(e, proc))
	}
	return out
}

func synthesize(e *slots.Extractor, proc schema.Procedure) Task {
	params := argumentSlots(proc.Name, proc.Parameters)
	task := Task{
		Name:        proc.Name,
		Operation:   proc.Operation,
		Nl:          slices.Clone(proc.NlPairs),
		Slots:       params,
		ReturnNl:    []string{},
		ReturnSlots: []slots.Slot{},
		Subtasks:    make([]Subtask, 0, len(params)),
	}
	if task.Nl == nil {
		task.Nl = []schema.NLPair{}
	}
	if proc.Operation != schema.OperationCall && proc.Returns != nil {
		if proc.Returns.NlExpressions != nil {
			task.ReturnNl = slices.Clone(proc.Returns.NlExpressions)
		}
		task.ReturnSlots = argumentSlots(proc.Name, proc.Returns.Values)
	}
	for _, p := range params {
		task.Subtasks = append(task.Subtasks, subtask(e, p))
	}
	return task
}

func argumentSlots(procedure string, args []schema.Argument) []slots.Slot {
	out := make([]slots.Slot, 0, len(args))
	for _, a := range args {
		out = append(out, slots.Slot{
			Name:            procedure + "__" + a.Name,
			EntityNl:        []string{},
			Nl:              slices.Clone(a.NlExpressions),
			DataType:        a.DataType,
			List:            a.List,
			Requestable:     false,
			Displayable:     true,
			TableReference:  a.TableReference,
			ColumnReference: a.ColumnReference,
			LookupTable:     []schema.LookupEntry{},
		})
	}
	return out
}

func subtask(e *slots.Extractor, parent slots.Slot) Subtask {
	st := Subtask{
		TargetSlot:     parent.Name,
		TargetDataType: parent.DataType,
		TargetList:     parent.List,
	}
	if target, column, prefix, ok := resolveTarget(e.Index(), parent); ok {
		st.TargetTable = target.Name
		st.TargetTableNl = slices.Clone(target.NlExpressions)
		st.TargetColumn = column
		st.TargetTableRepresentation = target.Representation
		st.Operation = OperationSelect
		st.Slots = e.Extract(target, target.ResolveDepth, 0, prefix)
		return st
	}
	st.TargetTableNl = []string{}
	st.Operation = OperationChoose
	st.Slots = []slots.Slot{choiceSlot(parent)}
	return st
}

// resolveTarget finds the table a referencing slot selects from. A reference to a
// non key column that is itself a foreign key is followed one hop further, and the
// nested slots get a table__column prefix.
func resolveTarget(idx *schema.Index, parent slots.Slot) (schema.Table, string, string, bool) {
	if parent.TableReference == "" || parent.ColumnReference == "" {
		return schema.Table{}, "", "", false
	}
	table, ok := idx.Table(parent.TableReference)
	if !ok {
		return schema.Table{}, "", "", false
	}
	if table.InPrimaryKey(parent.ColumnReference) {
		return table, parent.ColumnReference, "", true
	}
	fkCol, ok := table.Column(parent.ColumnReference)
	if !ok || !fkCol.IsReference() {
		return table, parent.ColumnReference, "", true
	}
	next, ok := idx.Table(fkCol.TableReference)
	if !ok {
		return table, parent.ColumnReference, "", true
	}
	return next, fkCol.ColumnReference, parent.TableReference + "__" + parent.ColumnReference, true
}

func choiceSlot(parent slots.Slot) slots.Slot {
	return slots.Slot{
		Name:        "choice_" + parent.Name,
		EntityNl:    []string{},
		Nl:          slices.Clone(parent.Nl),
		DataType:    parent.DataType,
		List:        parent.List,
		Requestable: true,
		Displayable: true,
		LookupTable: []schema.LookupEntry{},
	}
}
