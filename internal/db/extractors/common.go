package extractors

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"dbwizard/internal/introspect"
	"dbwizard/internal/logger"
)

// primaryKey collects key column names in key order. Failures are logged; a table
// whose key cannot be read is still discovered.
func primaryKey(rows *sql.Rows, err error) []string {
	if err != nil {
		logger.Error("query primary key: %v", err)
		return nil
	}
	defer rows.Close()
	var key []string
	for rows.Next() {
		var col string
		if err := rows.Scan(&col); err != nil {
			logger.Error("scan primary key: %v", err)
			continue
		}
		key = append(key, col)
	}
	return key
}

// foreignKeys scans one row per referencing column: from schema, from table, from
// column, to schema, to table, to column, constraint.
func foreignKeys(rows *sql.Rows, err error) []introspect.ForeignKey {
	if err != nil {
		logger.Error("query foreign key: %v", err)
		return nil
	}
	defer rows.Close()
	var fks []introspect.ForeignKey
	for rows.Next() {
		var fk introspect.ForeignKey
		if err := rows.Scan(&fk.FromSchema, &fk.FromTable, &fk.FromColumn, &fk.ToSchema, &fk.ToTable, &fk.ToColumn, &fk.Constraint); err != nil {
			logger.Error("scan foreign key: %v", err)
			continue
		}
		fks = append(fks, fk)
	}
	return fks
}

type routineKey struct{ schema, specific string }

// routines runs a routine query and a parameter query and joins them.
//
// The routine query yields schema, name, specific name, whether the routine hands back
// data, return type and body. The parameter query yields schema, specific name, mode,
// name and type, ordered by position. Failures are logged; the tables of a database
// whose routines cannot be read are still discovered.
func routines(ctx context.Context, dbConn *sql.DB, routineQuery, parameterQuery string) []introspect.Routine {
	out, err := readRoutines(ctx, dbConn, routineQuery, parameterQuery)
	if err != nil {
		logger.Error("query routines: %v", err)
		return nil
	}
	return out
}

func readRoutines(ctx context.Context, dbConn *sql.DB, routineQuery, parameterQuery string) ([]introspect.Routine, error) {
	rr, err := dbConn.QueryContext(ctx, routineQuery)
	if err != nil {
		return nil, err
	}
	defer rr.Close()

	var out []introspect.Routine
	index := map[routineKey]int{}
	for rr.Next() {
		var r introspect.Routine
		var specific string
		var returnType, body sql.NullString
		if err := rr.Scan(&r.Schema, &r.Name, &specific, &r.Function, &returnType, &body); err != nil {
			return nil, fmt.Errorf("scan routine: %w", err)
		}
		r.ReturnType = returnType.String
		r.Body = body.String
		index[routineKey{r.Schema, specific}] = len(out)
		out = append(out, r)
	}
	if err := rr.Err(); err != nil {
		return nil, err
	}

	pr, err := dbConn.QueryContext(ctx, parameterQuery)
	if err != nil {
		return nil, fmt.Errorf("query parameters: %w", err)
	}
	defer pr.Close()
	for pr.Next() {
		var k routineKey
		var mode, name sql.NullString
		var typ string
		if err := pr.Scan(&k.schema, &k.specific, &mode, &name, &typ); err != nil {
			return nil, fmt.Errorf("scan parameter: %w", err)
		}
		i, ok := index[k]
		if !ok {
			continue
		}
		r := &out[i]
		p := introspect.Parameter{
			Name: strings.TrimPrefix(name.String, "@"),
			Type: typ,
			Mode: parameterMode(mode.String),
		}
		if p.Name == "" {
			p.Name = fmt.Sprintf("arg%d", len(r.Parameters)+1)
		}
		r.Parameters = append(r.Parameters, p)
	}
	return out, pr.Err()
}

// parameterMode maps the catalog spellings onto the introspect modes.
func parameterMode(m string) string {
	switch strings.ToUpper(strings.TrimSpace(m)) {
	case "OUT":
		return introspect.ModeOut
	case "INOUT", "IN/OUT", "IN OUT":
		return introspect.ModeInOut
	case "TABLE":
		return introspect.ModeTable
	default:
		return introspect.ModeIn
	}
}
