package wizard

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "dbwizard/internal/db/extractors"
	"dbwizard/internal/reconcile"
	"dbwizard/internal/schema"
	"dbwizard/internal/tasks"
	"dbwizard/internal/templates"
	"dbwizard/pkg/config"
)

func shopDatabase(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shop.db")
	conn, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer conn.Close()
	_, err = conn.Exec(`
		CREATE TABLE customers (id INTEGER PRIMARY KEY, full_name TEXT NOT NULL);
		CREATE TABLE orders (id INTEGER PRIMARY KEY, customer_id INTEGER REFERENCES customers(id), total REAL);
	`)
	require.NoError(t, err)
	return path
}

func shopConfiguration() schema.Configuration {
	return schema.Configuration{
		Tables: []schema.Table{
			{Name: "customer", PrimaryKey: []string{"id"}, NlExpressions: []string{"customer"}, ResolveDepth: 1,
				Columns: []schema.Column{
					{Name: "id", NlExpressions: []string{"id"}, DataType: "int4"},
					{Name: "name", NlExpressions: []string{"name"}, DataType: "text", Requestable: true, Displayable: true},
				}},
		},
		Procedures: []schema.Procedure{
			{Name: "placeOrder", Operation: "insert", NlSample: &schema.EntitySample{Predicates: []string{}},
				NlPairs: []schema.NLPair{{Predicate: "order", Argument: "a pizza"}},
				Parameters: []schema.Argument{
					{Name: "customerId", DataType: "int4", TableReference: "customer", ColumnReference: "id"},
				}},
		},
	}
}

func TestDiscoverSQLite(t *testing.T) {
	cfg, err := Discover(context.Background(),
		config.DBConfig{Type: "sqlite", DSN: shopDatabase(t)},
		config.DiscoveryConfig{DefaultResolveDepth: 2, Timeout: 10})
	require.NoError(t, err)

	require.Len(t, cfg.Tables, 2)
	assert.Empty(t, cfg.Procedures)

	customers := cfg.Tables[0]
	assert.Equal(t, "customers", customers.Name)
	assert.Equal(t, []string{"customer"}, customers.NlExpressions)
	assert.Equal(t, 2, customers.ResolveDepth)

	ref, ok := cfg.Tables[1].Column("customer_id")
	require.True(t, ok)
	assert.Equal(t, "customers", ref.TableReference)
	assert.Equal(t, "id", ref.ColumnReference)
	assert.True(t, ref.ResolveDependency)
	assert.False(t, ref.Requestable)

	total, _ := cfg.Tables[1].Column("total")
	assert.True(t, total.Requestable)
	assert.True(t, total.Displayable)
}

func TestDiscoverUnknownDriver(t *testing.T) {
	_, err := Discover(context.Background(), config.DBConfig{Type: "nosuchdb", DSN: "x"}, config.DiscoveryConfig{Timeout: 1})
	assert.Error(t, err)
}

func TestImport(t *testing.T) {
	baseline := shopConfiguration()
	saved := shopConfiguration()
	saved.Procedures = []schema.Procedure{}
	data, err := json.Marshal(saved)
	require.NoError(t, err)

	res, err := Import(bytes.NewReader(data), baseline)
	require.NoError(t, err)
	assert.Equal(t, []string{"Configuration misses the following procedures: placeOrder."}, res.Warnings)
	assert.Len(t, res.Configuration.Procedures, 1)

	_, err = Import(strings.NewReader(`{"tables": []}`), baseline)
	if !errors.Is(err, reconcile.ErrInvalidConfiguration) {
		t.Errorf("\ngot error %v, wanted %v", err, reconcile.ErrInvalidConfiguration)
	}
}

func TestCompile(t *testing.T) {
	c := Compile(shopConfiguration())

	require.Len(t, c.Tasks, 1)
	assert.Equal(t, "placeOrder", c.Tasks[0].Name)
	require.Len(t, c.Tasks[0].Subtasks, 1)
	assert.Equal(t, tasks.OperationSelect, c.Tasks[0].Subtasks[0].Operation)

	assert.Len(t, c.Domain.Actions, len(c.Templates.Responses))
	assert.Len(t, c.Domain.Intents, len(c.Templates.Intents))
}

func TestWriteFiles(t *testing.T) {
	c := Compile(shopConfiguration())
	dir := filepath.Join(t.TempDir(), "out")

	require.NoError(t, c.WriteFiles(dir))

	data, err := os.ReadFile(filepath.Join(dir, TasksFile))
	require.NoError(t, err)
	var ts []tasks.Task
	require.NoError(t, json.Unmarshal(data, &ts))
	if diff := cmp.Diff(c.Tasks, ts, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("\ntasks differ after writing (-compiled +written):\n%s", diff)
	}

	data, err = os.ReadFile(filepath.Join(dir, TemplatesFile))
	require.NoError(t, err)
	var export templates.Export
	require.NoError(t, json.Unmarshal(data, &export))
	assert.Len(t, export.Responses, len(c.Templates.Responses))

	domain, err := os.ReadFile(filepath.Join(dir, DomainFile))
	require.NoError(t, err)
	assert.Contains(t, string(domain), "- name: begin_placeOrder")
}

func TestImportTemplates(t *testing.T) {
	cfg := shopConfiguration()
	generated := Compile(cfg).Templates
	edited := templates.Export{
		Responses: append([]templates.Templateable{}, generated.Responses[1:]...),
		Intents:   generated.Intents,
	}
	edited.Responses[0].Templates = []string{"See you!"}

	out, warnings := ImportTemplates(cfg, edited)

	assert.Len(t, warnings, 1)
	assert.Len(t, out.Responses, len(generated.Responses))
	assert.Equal(t, []string{"See you!"}, out.Responses[0].Templates)
}
