// Package query builds parameterized PostgreSQL SELECT statements from a projection
// of logical field names onto table columns.
package query

import (
	"fmt"
	"strings"
)

// ProjectionMap maps logical field names to alias-qualified columns of one table.
type ProjectionMap struct {
	schema     string
	table      string
	alias      string
	columns    map[string]string
	columnList []string
}

// NewProjectionMap creates a ProjectionMap for the given schema, table, and alias.
func NewProjectionMap(schema, table, alias string) *ProjectionMap {
	return &ProjectionMap{
		schema:  schema,
		table:   table,
		alias:   alias,
		columns: make(map[string]string),
	}
}

// Project maps column to the logical field name.
func (p *ProjectionMap) Project(column, field string) *ProjectionMap {
	qualified := p.alias + "." + column
	p.columns[field] = qualified
	p.columnList = append(p.columnList, qualified)
	return p
}

// Table returns the qualified table reference with alias.
func (p *ProjectionMap) Table() string {
	return fmt.Sprintf("%s.%s %s", p.schema, p.table, p.alias)
}

// Column returns the qualified column for field and whether it is projected.
func (p *ProjectionMap) Column(field string) (string, bool) {
	col, ok := p.columns[field]
	return col, ok
}

// Columns returns all projected columns as a comma-separated list.
func (p *ProjectionMap) Columns() string {
	return strings.Join(p.columnList, ", ")
}
