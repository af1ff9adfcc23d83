package extractors

import (
	"context"
	"database/sql"
	"fmt"

	"dbwizard/internal/db"
	"dbwizard/internal/introspect"
)

// pgExtractor implements Extractor using information_schema + pg_catalog queries.
type pgExtractor struct{}

// This is the extractor for PostgreSQL
func (pgExtractor) Extract(ctx context.Context, dbConn *sql.DB) (introspect.Catalog, error) {
	var c introspect.Catalog

	tr, err := dbConn.QueryContext(ctx, `
        SELECT table_schema, table_name,
		       obj_description((quote_ident(table_schema)||'.'||quote_ident(table_name))::regclass) AS table_comment
        FROM information_schema.tables
        WHERE table_type = 'BASE TABLE'
          AND table_schema NOT IN ('pg_catalog','information_schema','pg_toast')
        ORDER BY table_schema, table_name`)
	if err != nil {
		return c, fmt.Errorf("query tables: %w", err)
	}
	defer tr.Close()

	for tr.Next() {
		var tab introspect.Table
		if err := tr.Scan(&tab.Schema, &tab.Name, &tab.Comment); err != nil {
			return c, fmt.Errorf("scan table row: %w", err)
		}
		c.Tables = append(c.Tables, tab)
	}

	for i := range c.Tables {
		t := &c.Tables[i]
		// udt_name keeps the array marker ("_int4") that data_type folds into "ARRAY"
		cr, err := dbConn.QueryContext(ctx, `
            SELECT column_name, udt_name, is_nullable = 'YES'
            FROM information_schema.columns
            WHERE table_schema = $1 AND table_name = $2
            ORDER BY ordinal_position`, t.Schema, t.Name)
		if err != nil {
			return c, fmt.Errorf("query columns for %s.%s: %w", t.Schema, t.Name, err)
		}
		for cr.Next() {
			var col introspect.Column
			if err := cr.Scan(&col.Name, &col.Type, &col.Nullable); err != nil {
				cr.Close()
				return c, fmt.Errorf("scan column for %s.%s: %w", t.Schema, t.Name, err)
			}
			t.Columns = append(t.Columns, col)
		}
		cr.Close()

		t.PrimaryKey = primaryKey(dbConn.QueryContext(ctx, `
            SELECT a.attname
            FROM pg_index i
            JOIN pg_class c ON i.indrelid = c.oid
            JOIN pg_namespace ns ON c.relnamespace = ns.oid
            JOIN pg_attribute a ON a.attrelid = c.oid AND a.attnum = ANY(i.indkey)
            WHERE ns.nspname = $1 AND c.relname = $2 AND i.indisprimary
            ORDER BY array_position(i.indkey::int2[], a.attnum)`, t.Schema, t.Name))
	}

	c.ForeignKeys = foreignKeys(dbConn.QueryContext(ctx, `
        SELECT
          tc.table_schema from_schema,
          tc.table_name from_table,
          kcu.column_name from_column,
          rkcu.table_schema to_schema,
          rkcu.table_name to_table,
          rkcu.column_name to_column,
		  tc.constraint_name
        FROM information_schema.table_constraints tc
        JOIN information_schema.key_column_usage kcu
          ON tc.constraint_name = kcu.constraint_name
         AND tc.constraint_schema = kcu.constraint_schema
        JOIN information_schema.referential_constraints rc
          ON tc.constraint_name = rc.constraint_name
         AND tc.constraint_schema = rc.constraint_schema
        JOIN information_schema.key_column_usage rkcu
          ON rc.unique_constraint_name = rkcu.constraint_name
         AND rc.unique_constraint_schema = rkcu.constraint_schema
         AND kcu.ordinal_position = rkcu.ordinal_position
        WHERE tc.constraint_type = 'FOREIGN KEY'
          AND tc.table_schema NOT IN ('pg_catalog', 'information_schema', 'pg_toast')
        ORDER BY tc.table_schema, tc.table_name, tc.constraint_name, kcu.ordinal_position`))

	c.Routines = routines(ctx, dbConn, `
        SELECT routine_schema, routine_name, specific_name,
               COALESCE(routine_type = 'FUNCTION' AND data_type <> 'void', false) AS returns_data,
               type_udt_name, routine_definition
        FROM information_schema.routines
        WHERE routine_schema NOT IN ('pg_catalog', 'information_schema')
          AND data_type IS DISTINCT FROM 'trigger'
        ORDER BY routine_schema, routine_name`, `
        SELECT specific_schema, specific_name, parameter_mode, parameter_name, udt_name
        FROM information_schema.parameters
        WHERE specific_schema NOT IN ('pg_catalog', 'information_schema')
        ORDER BY specific_schema, specific_name, ordinal_position`)

	return c, nil
}

func init() {
	db.Register("postgres", pgExtractor{})
	db.Register("postgresql", pgExtractor{})
}
