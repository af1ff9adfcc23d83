package tasks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dbwizard/internal/schema"
	"dbwizard/internal/slots"
)

func customerTable() schema.Table {
	return schema.Table{
		Name:           "customer",
		PrimaryKey:     []string{"id"},
		NlExpressions:  []string{"customer"},
		Representation: "{name}",
		ResolveDepth:   0,
		Columns: []schema.Column{
			{Name: "id", DataType: "int4", NlExpressions: []string{"id"}},
			{Name: "name", DataType: "text", NlExpressions: []string{"name"}, Requestable: true, Displayable: true},
		},
	}
}

func slotNames(s []slots.Slot) []string {
	out := make([]string, len(s))
	for i := range s {
		out[i] = s[i].Name
	}
	return out
}

func TestSynthesizePlaceOrder(t *testing.T) {
	proc := schema.Procedure{
		Name:      "placeOrder",
		Operation: "insert",
		Parameters: []schema.Argument{
			{Name: "customerId", DataType: "int4", TableReference: "customer", ColumnReference: "id"},
		},
	}

	got := Synthesize([]schema.Procedure{proc}, []schema.Table{customerTable()})

	require.Len(t, got, 1)
	task := got[0]
	assert.Equal(t, "placeOrder", task.Name)
	assert.Equal(t, []string{"placeOrder__customerId"}, slotNames(task.Slots))
	assert.False(t, task.Slots[0].Requestable)
	assert.True(t, task.Slots[0].Displayable)
	require.Len(t, task.Subtasks, 1)
	st := task.Subtasks[0]
	assert.Equal(t, OperationSelect, st.Operation)
	assert.Equal(t, "customer", st.TargetTable)
	assert.Equal(t, "id", st.TargetColumn)
	assert.Equal(t, "placeOrder__customerId", st.TargetSlot)
	assert.Equal(t, "{name}", st.TargetTableRepresentation)
	assert.Equal(t, []string{"customer"}, st.TargetTableNl)
	assert.Equal(t, []string{"customer__id", "customer__name"}, slotNames(st.Slots))
}

func TestSynthesizeReturnSlots(t *testing.T) {
	returns := &schema.ReturnRecord{
		Name:          "order",
		NlExpressions: []string{"order"},
		Values: []schema.Argument{
			{Name: "id", DataType: "int4"},
			{Name: "total", DataType: "numeric"},
		},
	}

	var tests = []struct {
		name      string
		operation string
		wantSlots []string
		wantNl    []string
	}{
		{"call has no returns", schema.OperationCall, []string{}, []string{}},
		{"select keeps returns", schema.OperationSelect, []string{"p__id", "p__total"}, []string{"order"}},
		{"insert keeps returns", "insert", []string{"p__id", "p__total"}, []string{"order"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			proc := schema.Procedure{Name: "p", Operation: tt.operation, Returns: returns}
			task := Synthesize([]schema.Procedure{proc}, nil)[0]
			assert.Equal(t, tt.wantSlots, slotNames(task.ReturnSlots))
			assert.Equal(t, tt.wantNl, task.ReturnNl)
			assert.NotNil(t, task.ReturnSlots)
			assert.NotNil(t, task.ReturnNl)
		})
	}
}

func TestSynthesizeWithoutReturnRecord(t *testing.T) {
	task := Synthesize([]schema.Procedure{{Name: "p", Operation: schema.OperationSelect}}, nil)[0]
	assert.Empty(t, task.ReturnSlots)
	assert.Empty(t, task.ReturnNl)
	assert.Empty(t, task.Subtasks)
}

func TestSynthesizeChoiceSubtask(t *testing.T) {
	proc := schema.Procedure{
		Name:      "book",
		Operation: schema.OperationCall,
		Parameters: []schema.Argument{
			{Name: "day", DataType: "date", List: true, NlExpressions: []string{"day", "date"}},
		},
	}

	task := Synthesize([]schema.Procedure{proc}, []schema.Table{customerTable()})[0]

	require.Len(t, task.Subtasks, 1)
	st := task.Subtasks[0]
	assert.Equal(t, OperationChoose, st.Operation)
	assert.Empty(t, st.TargetTable)
	assert.True(t, st.TargetList)
	require.Len(t, st.Slots, 1)
	choice := st.Slots[0]
	assert.Equal(t, "choice_book__day", choice.Name)
	assert.Equal(t, []string{"day", "date"}, choice.Nl)
	assert.Equal(t, "date", choice.DataType)
	assert.True(t, choice.List)
	assert.True(t, choice.Requestable)
	assert.True(t, choice.Displayable)
	assert.Empty(t, choice.TableReference)
	assert.Empty(t, choice.ColumnReference)
}

func TestSynthesizeFollowsForeignKeyColumn(t *testing.T) {
	order := schema.Table{
		Name:       "order",
		PrimaryKey: []string{"id"},
		Columns: []schema.Column{
			{Name: "id", DataType: "int4"},
			{Name: "customer_id", DataType: "int4", TableReference: "customer", ColumnReference: "id", ResolveDependency: true},
		},
	}
	proc := schema.Procedure{
		Name:      "refund",
		Operation: schema.OperationCall,
		Parameters: []schema.Argument{
			{Name: "buyer", DataType: "int4", TableReference: "order", ColumnReference: "customer_id"},
		},
	}

	task := Synthesize([]schema.Procedure{proc}, []schema.Table{customerTable(), order})[0]

	st := task.Subtasks[0]
	assert.Equal(t, OperationSelect, st.Operation)
	assert.Equal(t, "customer", st.TargetTable)
	assert.Equal(t, "id", st.TargetColumn)
	assert.Equal(t, []string{
		"order__customer_id___customer__id",
		"order__customer_id___customer__name",
	}, slotNames(st.Slots))
}

func TestSynthesizeUnknownReferenceFallsBackToChoice(t *testing.T) {
	proc := schema.Procedure{
		Name:       "p",
		Operation:  schema.OperationCall,
		Parameters: []schema.Argument{{Name: "x", TableReference: "nope", ColumnReference: "id"}},
	}

	task := Synthesize([]schema.Procedure{proc}, []schema.Table{customerTable()})[0]

	assert.Equal(t, OperationChoose, task.Subtasks[0].Operation)
	assert.Equal(t, "choice_p__x", task.Subtasks[0].Slots[0].Name)
}

func TestSynthesizeKeepsProcedureOrder(t *testing.T) {
	procs := []schema.Procedure{{Name: "b"}, {Name: "a"}, {Name: "c"}}
	got := Synthesize(procs, nil)
	require.Len(t, got, 3)
	assert.Equal(t, "b", got[0].Name)
	assert.Equal(t, "a", got[1].Name)
	assert.Equal(t, "c", got[2].Name)
}
