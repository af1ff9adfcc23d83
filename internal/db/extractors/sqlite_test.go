package extractors

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dbwizard/internal/db"
	"dbwizard/internal/introspect"
)

const shopDDL = `
CREATE TABLE customer (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    vip BOOLEAN
);
CREATE TABLE product (
    id INTEGER PRIMARY KEY,
    title TEXT
);
CREATE TABLE purchase (
    customer_id INTEGER NOT NULL REFERENCES customer(id),
    product_id INTEGER NOT NULL REFERENCES product,
    quantity INTEGER,
    PRIMARY KEY (product_id, customer_id)
);
`

func shopDatabase(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shop.db")
	conn, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer conn.Close()
	_, err = conn.Exec(shopDDL)
	require.NoError(t, err)
	return path
}

func TestSQLiteExtract(t *testing.T) {
	conn, err := sql.Open("sqlite", shopDatabase(t))
	require.NoError(t, err)
	defer conn.Close()

	c, err := sqliteExtractor{}.Extract(context.Background(), conn)
	require.NoError(t, err)

	require.Len(t, c.Tables, 3)
	assert.Equal(t, "customer", c.Tables[0].Name)
	assert.Equal(t, []introspect.Column{
		{Name: "id", Type: "INTEGER", Nullable: true},
		{Name: "name", Type: "TEXT", Nullable: false},
		{Name: "vip", Type: "BOOLEAN", Nullable: true},
	}, c.Tables[0].Columns)
	assert.Equal(t, []string{"id"}, c.Tables[0].PrimaryKey)

	purchase := c.Tables[2]
	assert.Equal(t, "purchase", purchase.Name)
	assert.Equal(t, []string{"product_id", "customer_id"}, purchase.PrimaryKey)

	for i := range c.ForeignKeys {
		assert.NotEmpty(t, c.ForeignKeys[i].Constraint)
		c.ForeignKeys[i].Constraint = ""
	}
	assert.ElementsMatch(t, []introspect.ForeignKey{
		{FromTable: "purchase", FromColumn: "customer_id", ToTable: "customer", ToColumn: "id"},
		{FromTable: "purchase", FromColumn: "product_id", ToTable: "product", ToColumn: "id"},
	}, c.ForeignKeys)
	assert.Empty(t, c.Routines)
}

func TestConnectAndExtractSQLite(t *testing.T) {
	c, err := db.ConnectAndExtract(context.Background(), "sqlite3", shopDatabase(t), 10*time.Second)
	require.NoError(t, err)
	assert.Len(t, c.Tables, 3)
	assert.Contains(t, db.RegisteredDialects(), "sqlite")
}

func TestParameterMode(t *testing.T) {
	var tests = []struct {
		in  string
		out string
	}{
		{"IN", introspect.ModeIn},
		{"", introspect.ModeIn},
		{"out", introspect.ModeOut},
		{"IN/OUT", introspect.ModeInOut},
		{"INOUT", introspect.ModeInOut},
		{"TABLE", introspect.ModeTable},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := parameterMode(tt.in); got != tt.out {
				t.Errorf("\ngot mode %v, wanted %v", got, tt.out)
			}
		})
	}
}
