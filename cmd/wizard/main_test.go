package main

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dbwizard/internal/schema"
	"dbwizard/internal/templates"
	"dbwizard/internal/wizard"
)

func shopDatabase(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "shop.db")
	conn, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer conn.Close()
	_, err = conn.Exec(`
		CREATE TABLE customers (id INTEGER PRIMARY KEY, full_name TEXT NOT NULL);
		CREATE TABLE orders (id INTEGER PRIMARY KEY, customer_id INTEGER REFERENCES customers(id));
	`)
	require.NoError(t, err)
	return path
}

// run executes the root command with args and returns what it printed
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestWorkflow(t *testing.T) {
	dir := t.TempDir()
	dbPath := shopDatabase(t, dir)
	baseline := filepath.Join(dir, "baseline.json")

	out, _, err := run(t, "discover", "--driver", "sqlite", "--dsn", dbPath, "-o", baseline)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote 2 tables and 0 procedures")

	cfg, err := wizard.ReadConfiguration(baseline)
	require.NoError(t, err)
	require.Len(t, cfg.Tables, 2)

	// an operator annotates the baseline and drops a table
	cfg.Tables[0].NlExpressions = []string{"customer", "client"}
	cfg.Tables = cfg.Tables[:1]
	cfg.Procedures = []schema.Procedure{{
		Name:      "renameCustomer",
		NlPairs:   []schema.NLPair{{Predicate: "rename", Argument: "a customer"}},
		NlSample:  &schema.EntitySample{Predicates: []string{}},
		Operation: "update",
		Parameters: []schema.Argument{
			{Name: "customerId", DataType: "INTEGER", TableReference: "customers", ColumnReference: "id"},
		},
	}}
	edited := filepath.Join(dir, "edited.json")
	require.NoError(t, wizard.WriteJSON(edited, cfg))

	reconciled := filepath.Join(dir, "reconciled.json")
	out, errOut, err := run(t, "reconcile", edited, "-b", baseline, "-o", reconciled)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote "+reconciled)
	assert.Contains(t, errOut, "warning: Configuration misses the following tables: orders.")
	assert.Contains(t, errOut, "warning: Configuration has unknown procedures: renameCustomer. Skipping procedures.")

	fixed, err := wizard.ReadConfiguration(reconciled)
	require.NoError(t, err)
	assert.Len(t, fixed.Tables, 2)
	assert.Equal(t, []string{"customer", "client"}, fixed.Tables[0].NlExpressions)
	assert.Empty(t, fixed.Procedures)

	outDir := filepath.Join(dir, "out")
	_, _, err = run(t, "compile", edited, "-d", outDir, "-t", "")
	require.NoError(t, err)
	for _, name := range []string{wizard.TasksFile, wizard.TemplatesFile, wizard.DomainFile} {
		_, err := os.Stat(filepath.Join(outDir, name))
		assert.NoError(t, err, name)
	}

	// recompiling against the written templates keeps them and reports nothing
	_, errOut, err = run(t, "compile", edited, "-d", outDir, "-t", filepath.Join(outDir, wizard.TemplatesFile))
	require.NoError(t, err)
	assert.Empty(t, errOut)

	data, err := os.ReadFile(filepath.Join(outDir, wizard.TemplatesFile))
	require.NoError(t, err)
	var export templates.Export
	require.NoError(t, json.Unmarshal(data, &export))
	assert.NotEmpty(t, export.Intents)
}

func TestCommandErrors(t *testing.T) {
	dir := t.TempDir()
	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte(`{"tables": []}`), 0o644))

	var tests = []struct {
		name string
		args []string
	}{
		{"compile missing file", []string{"compile", filepath.Join(dir, "nope.json"), "-t", ""}},
		{"compile invalid configuration", []string{"compile", broken, "-t", ""}},
		{"reconcile missing baseline", []string{"reconcile", broken, "-b", filepath.Join(dir, "nope.json")}},
		{"discover unknown driver", []string{"discover", "--driver", "nosuchdb", "--dsn", "x", "-o", filepath.Join(dir, "x.json")}},
		{"compile without argument", []string{"compile"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := run(t, tt.args...); err == nil {
				t.Errorf("\ngot no error for %v", tt.args)
			}
		})
	}
}
