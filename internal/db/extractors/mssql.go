package extractors

import (
	"context"
	"database/sql"
	"fmt"

	"dbwizard/internal/db"
	"dbwizard/internal/introspect"
)

// mssqlExtractor implements Extractor for Microsoft SQL Server.
type mssqlExtractor struct{}

// This is the extractor for Microsoft SQL Server
func (mssqlExtractor) Extract(ctx context.Context, dbConn *sql.DB) (introspect.Catalog, error) {
	var c introspect.Catalog

	// list tables with schema
	tr, err := dbConn.QueryContext(ctx, `
        SELECT
          s.name AS schema_name,
          t.name AS table_name,
          CAST(sep.value AS nvarchar(4000)) AS comment
        FROM sys.schemas AS s
        JOIN sys.tables AS t
		  ON s.schema_id = t.schema_id
        LEFT JOIN sys.extended_properties AS sep
		  ON t.object_id = sep.major_id
         AND sep.minor_id = 0
         AND sep.name = 'MS_Description'
        ORDER BY s.name, t.name`)
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

	// columns and PKs for each table
	for i := range c.Tables {
		t := &c.Tables[i]

		cr, err := dbConn.QueryContext(ctx, `
            SELECT COLUMN_NAME, DATA_TYPE, CASE WHEN IS_NULLABLE='YES' THEN 1 ELSE 0 END
            FROM INFORMATION_SCHEMA.COLUMNS
            WHERE TABLE_SCHEMA = @schema AND TABLE_NAME = @table
            ORDER BY ORDINAL_POSITION`, sql.Named("schema", t.Schema), sql.Named("table", t.Name))
		if err != nil {
			return c, fmt.Errorf("query columns for %s.%s: %w", t.Schema, t.Name, err)
		}

		for cr.Next() {
			var col introspect.Column
			var nullableInt int
			if err := cr.Scan(&col.Name, &col.Type, &nullableInt); err != nil {
				cr.Close()
				return c, fmt.Errorf("scan column for %s.%s: %w", t.Schema, t.Name, err)
			}
			col.Nullable = nullableInt == 1
			t.Columns = append(t.Columns, col)
		}
		cr.Close()

		t.PrimaryKey = primaryKey(dbConn.QueryContext(ctx, `
            SELECT k.COLUMN_NAME
            FROM INFORMATION_SCHEMA.TABLE_CONSTRAINTS t
            JOIN INFORMATION_SCHEMA.KEY_COLUMN_USAGE k ON t.CONSTRAINT_NAME = k.CONSTRAINT_NAME AND t.TABLE_SCHEMA = k.TABLE_SCHEMA
            WHERE t.CONSTRAINT_TYPE = 'PRIMARY KEY' AND k.TABLE_SCHEMA = @schema AND k.TABLE_NAME = @table
            ORDER BY k.ORDINAL_POSITION`, sql.Named("schema", t.Schema), sql.Named("table", t.Name)))
	}

	// one row per foreign key column
	c.ForeignKeys = foreignKeys(dbConn.QueryContext(ctx, `
        SELECT
            OBJECT_SCHEMA_NAME(fkc.parent_object_id) AS from_schema,
            OBJECT_NAME(fkc.parent_object_id) AS from_table,
            c.name AS from_column,
            OBJECT_SCHEMA_NAME(fkc.referenced_object_id) AS to_schema,
            OBJECT_NAME(fkc.referenced_object_id) AS to_table,
            rc.name AS to_column,
			fk.name AS constraint_name
        FROM sys.foreign_keys fk
		JOIN sys.foreign_key_columns fkc ON fk.object_id = fkc.constraint_object_id
        JOIN sys.columns c ON fkc.parent_object_id = c.object_id AND fkc.parent_column_id = c.column_id
        JOIN sys.columns rc ON fkc.referenced_object_id = rc.object_id AND fkc.referenced_column_id = rc.column_id
        ORDER BY from_schema, from_table, fk.name, fkc.constraint_column_id`))

	// ROUTINE_DEFINITION is cut at 4000 characters, OBJECT_DEFINITION is not
	c.Routines = routines(ctx, dbConn, `
        SELECT ROUTINE_SCHEMA, ROUTINE_NAME, SPECIFIC_NAME,
               CAST(CASE WHEN ROUTINE_TYPE = 'FUNCTION' THEN 1 ELSE 0 END AS bit),
               DATA_TYPE,
               OBJECT_DEFINITION(OBJECT_ID(QUOTENAME(ROUTINE_SCHEMA) + '.' + QUOTENAME(ROUTINE_NAME)))
        FROM INFORMATION_SCHEMA.ROUTINES
        ORDER BY ROUTINE_SCHEMA, ROUTINE_NAME`, `
        SELECT SPECIFIC_SCHEMA, SPECIFIC_NAME, PARAMETER_MODE, PARAMETER_NAME, DATA_TYPE
        FROM INFORMATION_SCHEMA.PARAMETERS
        WHERE ORDINAL_POSITION > 0
        ORDER BY SPECIFIC_SCHEMA, SPECIFIC_NAME, ORDINAL_POSITION`)

	return c, nil
}

func init() {
	db.Register("sqlserver", mssqlExtractor{})
	db.Register("mssql", mssqlExtractor{})
}
