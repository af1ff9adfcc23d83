package extractors

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"dbwizard/internal/db"
	"dbwizard/internal/introspect"
	"dbwizard/internal/logger"
)

// sqliteExtractor implements Extractor for SQLite. SQLite has no stored routines, so
// the catalog only carries tables and foreign keys.
type sqliteExtractor struct{}

// This is the extractor for SQLite
func (sqliteExtractor) Extract(ctx context.Context, dbConn *sql.DB) (introspect.Catalog, error) {
	var c introspect.Catalog
	dbName := "main"

	if rows, err := dbConn.QueryContext(ctx, `PRAGMA database_list`); err == nil {
		var seq int
		var name, file sql.NullString
		if rows.Next() {
			if err := rows.Scan(&seq, &name, &file); err == nil && name.Valid {
				dbName = name.String
			}
		}
		rows.Close()
	} else {
		logger.Error("database list: %v", err)
	}

	tr, err := dbConn.QueryContext(ctx, fmt.Sprintf(`
	    SELECT name
		FROM %q.sqlite_master
		WHERE type = 'table'
		AND name NOT LIKE 'sqlite_%%'
		ORDER BY name`, dbName))
	if err != nil {
		return c, fmt.Errorf("query tables: %w", err)
	}
	defer tr.Close()

	for tr.Next() {
		var tab introspect.Table
		if err := tr.Scan(&tab.Name); err != nil {
			return c, fmt.Errorf("scan table row: %w", err)
		}
		c.Tables = append(c.Tables, tab)
	}
	if err := tr.Err(); err != nil {
		return c, fmt.Errorf("query tables: %w", err)
	}

	for i := range c.Tables {
		t := &c.Tables[i]
		pr, err := dbConn.QueryContext(ctx, `
		    SELECT name, type, "notnull", pk
		    FROM pragma_table_info(?, ?)
		    ORDER BY cid`, t.Name, dbName)
		if err != nil {
			return c, fmt.Errorf("query columns for %s: %w", t.Name, err)
		}
		// pk is the 1-based position of the column in the primary key, 0 otherwise
		keyPos := map[string]int{}
		for pr.Next() {
			var name, ctype string
			var notnull, pk int
			if err := pr.Scan(&name, &ctype, &notnull, &pk); err != nil {
				pr.Close()
				return c, fmt.Errorf("scan column for %s: %w", t.Name, err)
			}
			t.Columns = append(t.Columns, introspect.Column{
				Name:     name,
				Type:     ctype,
				Nullable: notnull == 0,
			})
			if pk > 0 {
				keyPos[name] = pk
				t.PrimaryKey = append(t.PrimaryKey, name)
			}
		}
		pr.Close()
		sort.SliceStable(t.PrimaryKey, func(a, b int) bool {
			return keyPos[t.PrimaryKey[a]] < keyPos[t.PrimaryKey[b]]
		})

		fkRows, err := dbConn.QueryContext(ctx, `
		    SELECT id, "table", "from", "to"
		    FROM pragma_foreign_key_list(?, ?)
		    ORDER BY id, seq`, t.Name, dbName)
		if err != nil {
			logger.Error("query foreign key: %v", err)
			continue
		}
		for fkRows.Next() {
			var id int
			var table, from, to sql.NullString
			if err := fkRows.Scan(&id, &table, &from, &to); err != nil {
				logger.Error("scan foreign key: %v", err)
				continue
			}
			if !table.Valid || !from.Valid {
				continue
			}
			c.ForeignKeys = append(c.ForeignKeys, introspect.ForeignKey{
				FromTable:  t.Name,
				FromColumn: from.String,
				ToTable:    table.String,
				ToColumn:   to.String,
				Constraint: fmt.Sprintf("%s_fk%d", t.Name, id),
			})
		}
		fkRows.Close()
	}

	implicitTargets(&c)
	return c, nil
}

// implicitTargets fills in the referenced column of foreign keys declared without one,
// which SQLite resolves to the primary key of the referenced table.
func implicitTargets(c *introspect.Catalog) {
	keys := make(map[string][]string, len(c.Tables))
	for _, t := range c.Tables {
		keys[t.Name] = t.PrimaryKey
	}
	seq := map[string]int{}
	for i := range c.ForeignKeys {
		fk := &c.ForeignKeys[i]
		n := seq[fk.Constraint]
		seq[fk.Constraint]++
		if fk.ToColumn != "" {
			continue
		}
		if pk := keys[fk.ToTable]; n < len(pk) {
			fk.ToColumn = pk[n]
		}
	}
}

func init() {
	db.Register("sqlite3", sqliteExtractor{})
	db.Register("sqlite", sqliteExtractor{})
}
