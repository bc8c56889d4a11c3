package repository

import (
	"fmt"
	"strings"

	"github.com/JaedenTYY/justrsvp/internal/errs"
)

// Fields is a partial field set for dynamic updates.
//
// It preserves the order in which the caller set names, so the generated
// statement is reproducible for testing and logging. Setting a name twice
// overwrites the value but keeps the original position.
type Fields struct {
	names  []string
	values map[string]any
}

// NewFields creates an empty field set.
func NewFields() *Fields {
	return &Fields{values: make(map[string]any)}
}

// Set records a column value and returns the receiver for chaining.
func (f *Fields) Set(name string, value any) *Fields {
	if _, ok := f.values[name]; !ok {
		f.names = append(f.names, name)
	}
	f.values[name] = value
	return f
}

// Len reports how many fields are set.
func (f *Fields) Len() int {
	if f == nil {
		return 0
	}
	return len(f.names)
}

// Names returns the field names in insertion order.
func (f *Fields) Names() []string {
	out := make([]string, len(f.names))
	copy(out, f.names)
	return out
}

// buildUpdate constructs a parameterized UPDATE statement setting exactly
// the caller-supplied fields, filtered by keyColumn, returning the
// post-update row.
//
// Column names are checked against the per-entity updatable allow-list,
// never taken from unchecked input, and values are always bound
// parameters. An empty field set is a caller error and is rejected before
// any connection is acquired.
func buildUpdate(table string, updatable map[string]struct{}, fields *Fields, keyColumn string, key any, returning string) (string, []any, error) {
	if fields.Len() == 0 {
		return "", nil, errs.NewInvalidArgument("EMPTY_FIELD_SET", "At least one field must be provided")
	}

	var sql strings.Builder
	args := make([]any, 0, fields.Len()+1)

	sql.WriteString("UPDATE ")
	sql.WriteString(table)
	sql.WriteString(" SET ")

	setClauses := make([]string, 0, fields.Len())
	for i, name := range fields.names {
		if _, ok := updatable[name]; !ok {
			return "", nil, errs.NewInvalidArgument("UNKNOWN_FIELD",
				fmt.Sprintf("Field %q cannot be updated on %s", name, table))
		}
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", name, i+1))
		args = append(args, fields.values[name])
	}
	sql.WriteString(strings.Join(setClauses, ", "))

	sql.WriteString(fmt.Sprintf(" WHERE %s = $%d", keyColumn, len(args)+1))
	args = append(args, key)

	sql.WriteString(" RETURNING ")
	sql.WriteString(returning)

	return sql.String(), args, nil
}
