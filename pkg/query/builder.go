package query

import (
	"fmt"
	"strings"
)

// SortField is one ORDER BY term over a logical field name.
type SortField struct {
	Field      string `json:"field"`
	Descending bool   `json:"descending"`
}

// ParseSortFields parses "label,-created_at" style input. A "-" prefix sorts descending.
func ParseSortFields(s string) []SortField {
	if s == "" {
		return nil
	}

	var fields []SortField
	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, desc := strings.CutPrefix(part, "-")
		fields = append(fields, SortField{Field: name, Descending: desc})
	}
	return fields
}

type condition struct {
	clause string
	args   []any
}

// Builder accumulates WHERE conditions and ordering, numbering parameters on build.
// Unprojected fields are ignored so client input never reaches the SQL text.
type Builder struct {
	projection  *ProjectionMap
	conditions  []condition
	sort        []SortField
	defaultSort []SortField
}

// NewBuilder creates a Builder for the given projection with optional default sort fields.
func NewBuilder(projection *ProjectionMap, defaultSort ...SortField) *Builder {
	return &Builder{
		projection:  projection,
		defaultSort: defaultSort,
	}
}

// OrderBy sets the sort order, overriding the default.
func (b *Builder) OrderBy(fields []SortField) *Builder {
	b.sort = fields
	return b
}

// WhereEquals adds an equality condition. Nil pointers are skipped.
func (b *Builder) WhereEquals(field string, value any) *Builder {
	col, ok := b.projection.Column(field)
	if !ok || isNil(value) {
		return b
	}
	b.conditions = append(b.conditions, condition{
		clause: col + " = ?",
		args:   []any{value},
	})
	return b
}

// WhereSearch adds a case-insensitive match of search across fields, joined with OR.
func (b *Builder) WhereSearch(search *string, fields ...string) *Builder {
	if search == nil || *search == "" {
		return b
	}

	pattern := "%" + *search + "%"
	var clauses []string
	var args []any
	for _, f := range fields {
		col, ok := b.projection.Column(f)
		if !ok {
			continue
		}
		clauses = append(clauses, col+" ILIKE ?")
		args = append(args, pattern)
	}
	if len(clauses) == 0 {
		return b
	}

	b.conditions = append(b.conditions, condition{
		clause: "(" + strings.Join(clauses, " OR ") + ")",
		args:   args,
	})
	return b
}

// BuildCount returns a COUNT(*) query with the current conditions.
func (b *Builder) BuildCount() (string, []any) {
	where, args := b.where()
	return fmt.Sprintf("SELECT COUNT(*) FROM %s%s", b.projection.Table(), where), args
}

// BuildPage returns a SELECT with conditions, ordering, LIMIT, and OFFSET.
func (b *Builder) BuildPage(page, pageSize int) (string, []any) {
	where, args := b.where()
	sql := fmt.Sprintf(
		"SELECT %s FROM %s%s%s LIMIT %d OFFSET %d",
		b.projection.Columns(),
		b.projection.Table(),
		where,
		b.orderBy(),
		pageSize,
		(page-1)*pageSize,
	)
	return sql, args
}

// BuildSingle returns a SELECT for the row whose idField equals id.
func (b *Builder) BuildSingle(idField string, id any) (string, []any) {
	col, ok := b.projection.Column(idField)
	if !ok {
		col = idField
	}
	sql := fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s = $1",
		b.projection.Columns(),
		b.projection.Table(),
		col,
	)
	return sql, []any{id}
}

func (b *Builder) where() (string, []any) {
	if len(b.conditions) == 0 {
		return "", nil
	}

	var args []any
	clauses := make([]string, len(b.conditions))
	for i, c := range b.conditions {
		clause := c.clause
		for _, arg := range c.args {
			args = append(args, arg)
			clause = strings.Replace(clause, "?", fmt.Sprintf("$%d", len(args)), 1)
		}
		clauses[i] = clause
	}

	return " WHERE " + strings.Join(clauses, " AND "), args
}

func (b *Builder) orderBy() string {
	fields := b.sort
	if len(fields) == 0 {
		fields = b.defaultSort
	}

	var parts []string
	for _, f := range fields {
		col, ok := b.projection.Column(f.Field)
		if !ok {
			continue
		}
		dir := "ASC"
		if f.Descending {
			dir = "DESC"
		}
		parts = append(parts, col+" "+dir)
	}
	if len(parts) == 0 {
		return ""
	}
	return " ORDER BY " + strings.Join(parts, ", ")
}

func isNil(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case *string:
		return v == nil
	case *bool:
		return v == nil
	case *int:
		return v == nil
	}
	return false
}
