package table

import (
	"fmt"
	"strings"

	"boxoffice/internal/services"
)

// Column names shared by every dataset variant.
const (
	ColumnFilm        = "film"
	ColumnRevenue     = "revenue"
	ColumnBudget      = "budget"
	ColumnReleaseDate = "release_date"
	ColumnGross       = "gross"
)

const stageTable = "table"

// Kind enumerates supported column types.
type Kind int

const (
	KindInvalid Kind = iota
	KindInt
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindString:
		return "string"
	default:
		return "invalid"
	}
}

// ColumnSchema names one column and its type.
type ColumnSchema struct {
	Name string
	Kind Kind
}

// Schema describes the logical shape of a table.
type Schema struct {
	Columns []ColumnSchema
}

// Names returns the column names in schema order.
func (s Schema) Names() []string {
	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = c.Name
	}
	return names
}

// Index reports the position of the named column.
func (s Schema) Index(name string) (int, bool) {
	for i, c := range s.Columns {
		if c.Name == name {
			return i, true
		}
	}
	return 0, false
}

type column struct {
	ints    []int64
	strings []string
}

type derivation struct {
	target  int
	sources []int
	fn      func(values ...int64) int64
}

// Table is an ordered sequence of rows with a fixed schema.
type Table struct {
	schema  Schema
	cols    []column
	derived []derivation
	rows    int
}

// New creates an empty table. Column names must be unique and non-empty.
func New(schema Schema) (*Table, error) {
	seen := make(map[string]struct{}, len(schema.Columns))
	for _, c := range schema.Columns {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return nil, services.Wrap(services.ErrSchema, stageTable, "new", "column name must not be empty", nil)
		}
		if _, ok := seen[name]; ok {
			return nil, services.Wrap(services.ErrSchema, stageTable, "new", fmt.Sprintf("duplicate column %q", name), nil)
		}
		if c.Kind != KindInt && c.Kind != KindString {
			return nil, services.Wrap(services.ErrSchema, stageTable, "new", fmt.Sprintf("column %q has invalid kind", name), nil)
		}
		seen[name] = struct{}{}
	}
	cols := append([]ColumnSchema(nil), schema.Columns...)
	return &Table{schema: Schema{Columns: cols}, cols: make([]column, len(cols))}, nil
}

// Schema returns a copy of the table schema, derived columns included.
func (t *Table) Schema() Schema {
	return Schema{Columns: append([]ColumnSchema(nil), t.schema.Columns...)}
}

// Columns returns the column names in order.
func (t *Table) Columns() []string { return t.schema.Names() }

// Len returns the number of rows.
func (t *Table) Len() int { return t.rows }

// Has reports whether the table has the named column.
func (t *Table) Has(name string) bool {
	_, ok := t.schema.Index(name)
	return ok
}

// Append adds one row. Values are given for every non-derived column, in
// schema order; derived columns are computed.
func (t *Table) Append(values ...any) error {
	inputs := t.inputColumns()
	if len(values) != len(inputs) {
		return services.Wrap(services.ErrSchema, stageTable, "append", fmt.Sprintf("expected %d values, got %d", len(inputs), len(values)), nil)
	}
	ints := make(map[int]int64, len(inputs))
	strs := make(map[int]string, len(inputs))
	for i, idx := range inputs {
		cs := t.schema.Columns[idx]
		switch cs.Kind {
		case KindInt:
			v, ok := asInt64(values[i])
			if !ok {
				return services.Wrap(services.ErrSchema, stageTable, "append", fmt.Sprintf("column %q wants int, got %T", cs.Name, values[i]), nil)
			}
			ints[idx] = v
		case KindString:
			v, ok := values[i].(string)
			if !ok {
				return services.Wrap(services.ErrSchema, stageTable, "append", fmt.Sprintf("column %q wants string, got %T", cs.Name, values[i]), nil)
			}
			strs[idx] = v
		}
	}
	for _, d := range t.derived {
		args := make([]int64, len(d.sources))
		for i, src := range d.sources {
			args[i] = ints[src]
		}
		ints[d.target] = d.fn(args...)
	}
	for idx, cs := range t.schema.Columns {
		switch cs.Kind {
		case KindInt:
			t.cols[idx].ints = append(t.cols[idx].ints, ints[idx])
		case KindString:
			t.cols[idx].strings = append(t.cols[idx].strings, strs[idx])
		}
	}
	t.rows++
	return nil
}

// Row returns the values of row i for every column, derived ones included.
func (t *Table) Row(i int) []any {
	if i < 0 || i >= t.rows {
		return nil
	}
	out := make([]any, len(t.schema.Columns))
	for idx, cs := range t.schema.Columns {
		switch cs.Kind {
		case KindInt:
			out[idx] = t.cols[idx].ints[i]
		case KindString:
			out[idx] = t.cols[idx].strings[i]
		}
	}
	return out
}

// Ints returns a copy of the named int column.
func (t *Table) Ints(name string) ([]int64, error) {
	idx, err := t.lookup(name, KindInt)
	if err != nil {
		return nil, err
	}
	return append([]int64(nil), t.cols[idx].ints...), nil
}

// Strings returns a copy of the named string column.
func (t *Table) Strings(name string) ([]string, error) {
	idx, err := t.lookup(name, KindString)
	if err != nil {
		return nil, err
	}
	return append([]string(nil), t.cols[idx].strings...), nil
}

// Derive returns a copy of t with a new int column computed from the named
// int source columns. The column stays derived: rows appended to the copy
// get it recomputed.
func Derive(t *Table, name string, sources []string, fn func(values ...int64) int64) (*Table, error) {
	if t == nil {
		return nil, services.Wrap(services.ErrSchema, stageTable, "derive", "nil table", nil)
	}
	if t.Has(name) {
		return nil, services.Wrap(services.ErrSchema, stageTable, "derive", fmt.Sprintf("column %q already exists", name), nil)
	}
	sourceIdx := make([]int, len(sources))
	for i, src := range sources {
		idx, err := t.lookup(src, KindInt)
		if err != nil {
			return nil, err
		}
		sourceIdx[i] = idx
	}

	schema := t.Schema()
	schema.Columns = append(schema.Columns, ColumnSchema{Name: name, Kind: KindInt})
	out, err := New(schema)
	if err != nil {
		return nil, err
	}
	out.derived = append(append([]derivation(nil), t.derived...), derivation{
		target:  len(schema.Columns) - 1,
		sources: sourceIdx,
		fn:      fn,
	})

	inputs := t.inputColumns()
	for r := 0; r < t.rows; r++ {
		row := t.Row(r)
		values := make([]any, len(inputs))
		for i, idx := range inputs {
			values[i] = row[idx]
		}
		if err := out.Append(values...); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// WithGross adds the gross profit column, revenue plus the (already negated)
// budget.
func WithGross(t *Table) (*Table, error) {
	return Derive(t, ColumnGross, []string{ColumnRevenue, ColumnBudget}, func(values ...int64) int64 {
		return values[0] + values[1]
	})
}

func (t *Table) lookup(name string, kind Kind) (int, error) {
	idx, ok := t.schema.Index(name)
	if !ok {
		return 0, services.Wrap(services.ErrSchema, stageTable, "lookup", fmt.Sprintf("missing column %q", name), nil)
	}
	if got := t.schema.Columns[idx].Kind; got != kind {
		return 0, services.Wrap(services.ErrSchema, stageTable, "lookup", fmt.Sprintf("column %q is %s, not %s", name, got, kind), nil)
	}
	return idx, nil
}

func (t *Table) inputColumns() []int {
	derived := make(map[int]struct{}, len(t.derived))
	for _, d := range t.derived {
		derived[d.target] = struct{}{}
	}
	inputs := make([]int, 0, len(t.schema.Columns))
	for idx := range t.schema.Columns {
		if _, ok := derived[idx]; !ok {
			inputs = append(inputs, idx)
		}
	}
	return inputs
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	default:
		return 0, false
	}
}
