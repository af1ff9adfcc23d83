package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnUnmarshalTracksMissingOptions(t *testing.T) {
	var tests = []struct {
		name    string
		input   string
		missing []string
		present []string
	}{
		{"all present",
			`{"name":"id","requestable":false,"displayable":false,"resolveDependency":false,"lookupTable":[],"regex":null}`,
			nil,
			[]string{"requestable", "displayable", "resolveDependency", "lookupTable", "regex"}},
		{"all missing",
			`{"name":"id"}`,
			[]string{"requestable", "displayable", "resolveDependency", "lookupTable", "regex"},
			nil},
		{"falsy is not missing",
			`{"name":"id","requestable":false,"regex":""}`,
			[]string{"displayable", "resolveDependency", "lookupTable"},
			[]string{"requestable", "regex"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Column
			require.NoError(t, json.Unmarshal([]byte(tt.input), &c))
			assert.Equal(t, "id", c.Name)
			for _, f := range tt.missing {
				assert.True(t, c.Missing(f), "expected %s to be missing", f)
			}
			for _, f := range tt.present {
				assert.False(t, c.Missing(f), "expected %s to be present", f)
			}
		})
	}
}

func TestTableUnmarshalTracksMissingFields(t *testing.T) {
	var tab Table
	require.NoError(t, json.Unmarshal([]byte(`{"name":"customer","primaryKey":["id"],"columns":[{"name":"id"}]}`), &tab))

	assert.True(t, tab.Missing("representation"))
	assert.True(t, tab.Missing("resolveDepth"))
	assert.Nil(t, tab.NlExpressions)
	require.Len(t, tab.Columns, 1)
	assert.True(t, tab.Columns[0].Missing("requestable"))
}

func TestConstructedValuesMissNothing(t *testing.T) {
	c := Column{Name: "id"}
	assert.False(t, c.Missing("requestable"))
	assert.False(t, Table{}.Missing("representation"))
}

func TestCloneIsIndependent(t *testing.T) {
	cfg := Configuration{
		Tables: []Table{{
			Name:          "customer",
			PrimaryKey:    []string{"id"},
			NlExpressions: []string{"customer"},
			Columns: []Column{{
				Name:          "name",
				NlExpressions: []string{"name"},
				LookupTable:   []LookupEntry{{Value: "Bob", Synonyms: []string{"Bobby"}}},
			}},
		}},
		Procedures: []Procedure{{
			Name:       "placeOrder",
			NlSample:   &EntitySample{Predicates: []string{"order"}},
			Parameters: []Argument{{Name: "customerId", NlExpressions: []string{"customer"}}},
			Returns:    &ReturnRecord{Name: "order", Values: []Argument{{Name: "id"}}},
		}},
	}

	cp := cfg.Clone()
	require.Equal(t, cfg, cp)

	cp.Tables[0].PrimaryKey[0] = "changed"
	cp.Tables[0].Columns[0].LookupTable[0].Synonyms[0] = "changed"
	cp.Procedures[0].NlSample.Predicates[0] = "changed"
	cp.Procedures[0].Parameters[0].NlExpressions[0] = "changed"
	cp.Procedures[0].Returns.Values[0].Name = "changed"

	assert.Equal(t, "id", cfg.Tables[0].PrimaryKey[0])
	assert.Equal(t, "Bobby", cfg.Tables[0].Columns[0].LookupTable[0].Synonyms[0])
	assert.Equal(t, "order", cfg.Procedures[0].NlSample.Predicates[0])
	assert.Equal(t, "customer", cfg.Procedures[0].Parameters[0].NlExpressions[0])
	assert.Equal(t, "id", cfg.Procedures[0].Returns.Values[0].Name)
}

func TestIndex(t *testing.T) {
	idx := NewIndex([]Table{
		{Name: "a", Columns: []Column{{Name: "id"}}},
		{Name: "b"},
		{Name: "a", Columns: []Column{{Name: "other"}}},
	})

	a, ok := idx.Table("a")
	require.True(t, ok)
	assert.Equal(t, "id", a.Columns[0].Name, "first table with a name wins")

	_, ok = idx.Column("a", "id")
	assert.True(t, ok)
	_, ok = idx.Column("a", "other")
	assert.False(t, ok)
	_, ok = idx.Table("missing")
	assert.False(t, ok)
	assert.Len(t, idx.Tables(), 3)
}
