//go:build oracle

package extractors

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/godror/godror"

	"dbwizard/internal/db"
	"dbwizard/internal/introspect"
)

// oracleExtractor implements Extractor for Oracle.
type oracleExtractor struct{}

// This is the extractor for Oracle
func (oracleExtractor) Extract(ctx context.Context, dbConn *sql.DB) (introspect.Catalog, error) {
	var c introspect.Catalog

	tr, err := dbConn.QueryContext(ctx, `
	    SELECT
		   ausr.username,
		   atab.table_name,
		   acom.comments
	    FROM all_users ausr
	    JOIN all_tables atab
		  ON ausr.username = atab.owner
	    LEFT JOIN all_tab_comments acom
		  ON acom.owner = atab.owner
		 AND acom.table_name = atab.table_name
	    WHERE ausr.oracle_maintained = 'N'
	    ORDER BY ausr.username, atab.table_name`)
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
            SELECT column_name, data_type, nullable
            FROM all_tab_columns
            WHERE owner = :1 AND table_name = :2
            ORDER BY column_id`, t.Schema, t.Name)
		if err != nil {
			return c, fmt.Errorf("query columns for %s.%s: %w", t.Schema, t.Name, err)
		}
		for cr.Next() {
			var col introspect.Column
			var nullable string
			if err := cr.Scan(&col.Name, &col.Type, &nullable); err != nil {
				cr.Close()
				return c, fmt.Errorf("scan column for %s.%s: %w", t.Schema, t.Name, err)
			}
			col.Nullable = (nullable == "Y")
			t.Columns = append(t.Columns, col)
		}
		cr.Close()

		t.PrimaryKey = primaryKey(dbConn.QueryContext(ctx, `
            SELECT acc.column_name
            FROM all_cons_columns acc
            JOIN all_constraints ac ON acc.owner = ac.owner AND acc.constraint_name = ac.constraint_name
            WHERE ac.constraint_type = 'P' AND acc.owner = :1 AND acc.table_name = :2
            ORDER BY acc.position`, t.Schema, t.Name))
	}

	c.ForeignKeys = foreignKeys(dbConn.QueryContext(ctx, `
        SELECT a.owner AS from_schema, a.table_name AS from_table, acc.column_name AS from_column,
               rcc.owner AS to_schema, rcc.table_name AS to_table, rcc.column_name AS to_column,
			   a.constraint_name
        FROM all_users ausr
		JOIN all_constraints a
		  ON ausr.username = a.owner
        JOIN all_cons_columns acc
		  ON a.owner = acc.owner
		 AND a.constraint_name = acc.constraint_name
        JOIN all_cons_columns rcc
		  ON a.r_owner = rcc.owner
		 AND a.r_constraint_name = rcc.constraint_name
		 AND nvl(acc.position, 0) = nvl(rcc.position, 0)
        WHERE a.constraint_type = 'R'
		  AND ausr.oracle_maintained = 'N'
		ORDER BY a.owner, a.table_name, a.constraint_name, acc.position`))

	// standalone functions and procedures; position 0 of a function is its return value
	c.Routines = routines(ctx, dbConn, `
        SELECT p.owner, p.object_name, to_char(p.object_id),
               CASE WHEN p.object_type = 'FUNCTION' THEN 1 ELSE 0 END,
               (SELECT ar.data_type FROM all_arguments ar
                 WHERE ar.object_id = p.object_id AND ar.position = 0 AND ar.data_level = 0),
               (SELECT listagg(src.text, '') WITHIN GROUP (ORDER BY src.line)
                  FROM all_source src
                 WHERE src.owner = p.owner AND src.name = p.object_name AND src.type = p.object_type)
        FROM all_users ausr
        JOIN all_procedures p ON ausr.username = p.owner
        WHERE ausr.oracle_maintained = 'N' AND p.object_type IN ('FUNCTION', 'PROCEDURE')
        ORDER BY p.owner, p.object_name`, `
        SELECT ar.owner, to_char(ar.object_id), ar.in_out, ar.argument_name, ar.data_type
        FROM all_users ausr
        JOIN all_arguments ar ON ausr.username = ar.owner
        WHERE ausr.oracle_maintained = 'N' AND ar.package_name IS NULL
          AND ar.position > 0 AND ar.data_level = 0
        ORDER BY ar.owner, ar.object_id, ar.position`)

	return c, nil
}

func init() {
	db.Register("godror", oracleExtractor{})
	db.Register("oracle", oracleExtractor{})
}
