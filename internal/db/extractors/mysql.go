package extractors

import (
	"context"
	"database/sql"
	"fmt"

	"dbwizard/internal/db"
	"dbwizard/internal/introspect"
)

// myExtractor implements Extractor for MySQL (information_schema).
type myExtractor struct{}

// This is the extractor for MySQL
func (myExtractor) Extract(ctx context.Context, dbConn *sql.DB) (introspect.Catalog, error) {
	var c introspect.Catalog

	tr, err := dbConn.QueryContext(ctx, `
        SELECT table_schema, table_name, table_comment
        FROM information_schema.tables
        WHERE table_type = 'BASE TABLE'
          AND table_schema NOT IN ('mysql','information_schema','performance_schema','sys')
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
		cr, err := dbConn.QueryContext(ctx, `
            SELECT column_name, column_type, is_nullable = 'YES'
            FROM information_schema.columns
            WHERE table_schema = ? AND table_name = ?
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
            SELECT k.COLUMN_NAME
            FROM information_schema.key_column_usage k
            JOIN information_schema.table_constraints tc ON k.constraint_name = tc.constraint_name AND k.table_schema = tc.table_schema AND k.table_name = tc.table_name
            WHERE tc.constraint_type = 'PRIMARY KEY' AND k.table_schema = ? AND k.table_name = ?
            ORDER BY k.ordinal_position`, t.Schema, t.Name))
	}

	c.ForeignKeys = foreignKeys(dbConn.QueryContext(ctx, `
        SELECT table_schema AS from_schema, table_name AS from_table, column_name AS from_column,
               referenced_table_schema AS to_schema, referenced_table_name AS to_table,
               referenced_column_name AS to_column, constraint_name
        FROM information_schema.key_column_usage
        WHERE referenced_table_name IS NOT NULL AND table_schema NOT IN ('mysql','information_schema','performance_schema','sys')
        ORDER BY table_schema, table_name, constraint_name, ordinal_position`))

	// ordinal 0 of a function is its return value, reported through DTD_IDENTIFIER instead
	c.Routines = routines(ctx, dbConn, `
        SELECT routine_schema, routine_name, specific_name, routine_type = 'FUNCTION',
               dtd_identifier, routine_definition
        FROM information_schema.routines
        WHERE routine_schema NOT IN ('mysql','information_schema','performance_schema','sys')
        ORDER BY routine_schema, routine_name`, `
        SELECT specific_schema, specific_name, parameter_mode, parameter_name, dtd_identifier
        FROM information_schema.parameters
        WHERE ordinal_position > 0
          AND specific_schema NOT IN ('mysql','information_schema','performance_schema','sys')
        ORDER BY specific_schema, specific_name, ordinal_position`)

	return c, nil
}

func init() {
	db.Register("mysql", myExtractor{})
	db.Register("mariadb", myExtractor{})
}
