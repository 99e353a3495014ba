package postgres

import (
	"reflect"
	"sync"
)

// dbField locates one db-tagged field. The index path reaches through
// embedded structs such as entity.Base and entity.Priced.
type dbField struct {
	column string
	index  []int
}

var dbFieldCache sync.Map // map[reflect.Type][]dbField

// dbFields returns the db-tagged fields of t in declaration order.
// Promoted fields follow the embedded struct that carries them.
func dbFields(t reflect.Type) []dbField {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if cached, ok := dbFieldCache.Load(t); ok {
		return cached.([]dbField)
	}

	var fields []dbField
	if t.Kind() == reflect.Struct {
		for _, f := range reflect.VisibleFields(t) {
			if f.Anonymous || !f.IsExported() {
				continue
			}
			col := f.Tag.Get("db")
			if col == "" || col == "-" {
				continue
			}
			fields = append(fields, dbField{column: col, index: f.Index})
		}
	}

	dbFieldCache.Store(t, fields)
	return fields
}

// ExtractDBColumns lists the column names of T, e.g.
// ["id", "tenant_id", "version", ..., "name", "capacity"] for a property.
func ExtractDBColumns[T any]() []string {
	fields := dbFields(reflect.TypeFor[T]())
	cols := make([]string, len(fields))
	for i, f := range fields {
		cols[i] = f.column
	}
	return cols
}

// StructToMap returns column => value for every db-tagged field of v.
// Non-struct values yield nil.
func StructToMap(v any) map[string]any {
	rv := reflect.Indirect(reflect.ValueOf(v))
	if rv.Kind() != reflect.Struct {
		return nil
	}

	fields := dbFields(rv.Type())
	res := make(map[string]any, len(fields))
	for _, f := range fields {
		fv, err := rv.FieldByIndexErr(f.index)
		if err != nil {
			// nil embedded pointer
			continue
		}
		res[f.column] = fv.Interface()
	}
	return res
}

// PickColumns returns the entries of values whose keys are in cols.
func PickColumns(values map[string]any, cols []string) map[string]any {
	out := make(map[string]any, len(cols))
	for _, col := range cols {
		if v, ok := values[col]; ok {
			out[col] = v
		}
	}
	return out
}
