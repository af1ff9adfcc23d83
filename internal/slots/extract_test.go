package slots

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dbwizard/internal/schema"
)

func col(name, dataType string) schema.Column {
	return schema.Column{
		Name:          name,
		NlExpressions: []string{name},
		DataType:      dataType,
		Requestable:   true,
		Displayable:   true,
	}
}

func fk(name, table, column string) schema.Column {
	return schema.Column{
		Name:              name,
		NlExpressions:     []string{name},
		DataType:          "int4",
		TableReference:    table,
		ColumnReference:   column,
		ResolveDependency: true,
	}
}

func names(slots []Slot) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.Name
	}
	return out
}

// shop returns a small order schema: order -> customer -> city, order has two
// references to address, product <-> category through product_category.
func shop() []schema.Table {
	return []schema.Table{
		{Name: "city", PrimaryKey: []string{"id"}, NlExpressions: []string{"city"}, ResolveDepth: 1,
			Columns: []schema.Column{col("id", "int4"), col("name", "text")}},
		{Name: "customer", PrimaryKey: []string{"id"}, NlExpressions: []string{"customer"}, ResolveDepth: 1,
			Columns: []schema.Column{col("id", "int4"), col("name", "text"), fk("city_id", "city", "id")}},
		{Name: "address", PrimaryKey: []string{"id"}, NlExpressions: []string{"address"}, ResolveDepth: 1,
			Columns: []schema.Column{col("id", "int4"), col("street", "text")}},
		{Name: "order", PrimaryKey: []string{"id"}, NlExpressions: []string{"order"}, ResolveDepth: 2,
			Columns: []schema.Column{
				col("id", "int4"),
				fk("customer_id", "customer", "id"),
				fk("billing_id", "address", "id"),
				fk("shipping_id", "address", "id"),
			}},
	}
}

func TestExtractDepthZeroEmitsOwnColumns(t *testing.T) {
	tables := shop()
	e := NewExtractor(tables)
	order := tables[3]

	got := e.Extract(order, 0, 0, "")

	require.Len(t, got, len(order.Columns))
	assert.Equal(t, []string{"order__id", "order__customer_id", "order__billing_id", "order__shipping_id"}, names(got))
	for i, s := range got {
		c := order.Columns[i]
		assert.Equal(t, c.DataType, s.DataType)
		assert.Equal(t, c.NlExpressions, s.Nl)
		assert.Equal(t, order.NlExpressions, s.EntityNl)
		assert.False(t, s.List)
	}
}

func TestExtractFollowsReferencesWithPrefixes(t *testing.T) {
	tables := shop()
	e := NewExtractor(tables)

	got := e.Slots(tables[3])

	assert.Equal(t, []string{
		"order__id",
		"order__customer_id",
		"order__billing_id",
		"order__shipping_id",
		"customer__id",
		"customer__name",
		"customer__city_id",
		"city__id",
		"city__name",
		"order__billing_id___address__id",
		"order__billing_id___address__street",
		"order__shipping_id___address__id",
		"order__shipping_id___address__street",
	}, names(got))
}

func TestExtractNamesAreUnique(t *testing.T) {
	tables := shop()
	e := NewExtractor(tables)

	for _, tab := range tables {
		for depth := 0; depth <= 3; depth++ {
			seen := map[string]bool{}
			for _, s := range e.Extract(tab, depth, 0, "") {
				assert.False(t, seen[s.Name], "duplicate slot %s for %s at depth %d", s.Name, tab.Name, depth)
				seen[s.Name] = true
			}
		}
	}
}

func TestExtractSkipsNonEdges(t *testing.T) {
	var tests = []struct {
		name   string
		column schema.Column
	}{
		{"resolve dependency off", schema.Column{Name: "ref", TableReference: "b", ColumnReference: "id"}},
		{"missing column reference", schema.Column{Name: "ref", TableReference: "b", ResolveDependency: true}},
		{"missing table reference", schema.Column{Name: "ref", ColumnReference: "id", ResolveDependency: true}},
		{"unknown table", schema.Column{Name: "ref", TableReference: "zzz", ColumnReference: "id", ResolveDependency: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := schema.Table{Name: "a", PrimaryKey: []string{"id"}, Columns: []schema.Column{{Name: "id"}, tt.column}}
			b := schema.Table{Name: "b", PrimaryKey: []string{"id"}, Columns: []schema.Column{{Name: "id"}}}

			got := NewExtractor([]schema.Table{a, b}).Extract(a, 3, 0, "")

			assert.Equal(t, []string{"a__id", "a__ref"}, names(got))
		})
	}
}

func TestExtractMappingTables(t *testing.T) {
	a := schema.Table{Name: "A", PrimaryKey: []string{"id"}, Columns: []schema.Column{col("id", "int4")}}
	b := schema.Table{Name: "B", PrimaryKey: []string{"id"}, Columns: []schema.Column{col("id", "int4"), col("label", "text")}}
	ab := schema.Table{Name: "AB", PrimaryKey: []string{"a_id", "b_id"},
		Columns: []schema.Column{fk("a_id", "A", "id"), fk("b_id", "B", "id")}}
	tables := []schema.Table{a, b, ab}

	got := NewExtractor(tables).Extract(a, 1, 0, "")

	assert.Equal(t, []string{"A__id", "AB__a_id", "AB__b_id", "B__id", "B__label"}, names(got))
	assert.Equal(t, []schema.Table{ab}, MappingTables(a, tables))
	assert.Equal(t, []schema.Table{ab}, MappingTables(b, tables))
	assert.Empty(t, MappingTables(ab, tables))
}

func TestMappingTablesNeedTwoReferencingKeyParts(t *testing.T) {
	a := schema.Table{Name: "A", PrimaryKey: []string{"id"}, Columns: []schema.Column{col("id", "int4")}}
	history := schema.Table{Name: "history", PrimaryKey: []string{"a_id", "version"},
		Columns: []schema.Column{fk("a_id", "A", "id"), col("version", "int4")}}

	assert.Empty(t, MappingTables(a, []schema.Table{a, history}))
}

func TestExtractSelfReferenceTerminates(t *testing.T) {
	emp := schema.Table{Name: "employee", PrimaryKey: []string{"id"}, ResolveDepth: 50,
		Columns: []schema.Column{col("id", "int4"), fk("manager_id", "employee", "id")}}

	got := NewExtractor([]schema.Table{emp}).Slots(emp)

	assert.Equal(t, []string{"employee__id", "employee__manager_id"}, names(got))
}

func TestExtractNegativeDepthIsClamped(t *testing.T) {
	tables := shop()
	got := NewExtractor(tables).Extract(tables[1], -3, -1, "")
	assert.Equal(t, []string{"customer__id", "customer__name", "customer__city_id"}, names(got))
}

func TestSetFirstWins(t *testing.T) {
	s := NewSet()
	s.Add(Slot{Name: "a", DataType: "first"}, Slot{Name: "b"})
	s.Add(Slot{Name: "a", DataType: "second"})

	require.True(t, s.Has("a"))
	got := s.Slots()
	assert.Equal(t, []string{"a", "b"}, names(got))
	assert.Equal(t, "first", got[0].DataType)
}
