package simplequery

import (
	"fmt"
	"reflect"

	"github.com/kisielk/sqlstruct"
)

// Column is one entry of a SELECT column list.
//
// Expr is written into the statement verbatim, so it may be a plain column
// name or any SQL expression. Callers are responsible for its safety.
type Column struct {
	Expr  string
	Alias string
}

// Cols returns unaliased columns for the given names.
func Cols(names ...string) []Column {
	out := make([]Column, len(names))
	for i, n := range names {
		out[i] = Column{Expr: n}
	}
	return out
}

// As returns a column rendered as "expr AS alias".
func As(expr, alias string) Column {
	return Column{Expr: expr, Alias: alias}
}

// Field is a column/value pair written by INSERT or UPDATE.
type Field struct {
	Column string
	Value  any
}

// Fields is an ordered list of column/value pairs. Order is preserved in the
// rendered column list and in the bound parameters.
type Fields []Field

// Set returns a copy of f with column set to value. An existing entry for
// column keeps its position.
func (f Fields) Set(column string, value any) Fields {
	out := make(Fields, len(f), len(f)+1)
	copy(out, f)
	for i := range out {
		if out[i].Column == column {
			out[i].Value = value
			return out
		}
	}
	return append(out, Field{Column: column, Value: value})
}

// Columns returns the column names in order.
func (f Fields) Columns() []string {
	names := make([]string, len(f))
	for i, fld := range f {
		names[i] = fld.Column
	}
	return names
}

// FieldsFromStruct builds Fields from the exported fields of a struct (or
// pointer to struct).
//
// Column names follow the sqlstruct rules: the `db` tag when present, the
// field name converted to snake_case otherwise; a tag of "-" skips the field.
// When columns is non-empty only those columns are kept, in struct order.
func FieldsFromStruct(v any, columns ...string) (Fields, error) {
	val := reflect.ValueOf(v)
	for val.Kind() == reflect.Pointer {
		if val.IsNil() {
			return nil, fmt.Errorf("simplequery: FieldsFromStruct on nil %T", v)
		}
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return nil, fmt.Errorf("simplequery: FieldsFromStruct requires a struct, got %T", v)
	}

	var keep map[string]struct{}
	if len(columns) > 0 {
		keep = make(map[string]struct{}, len(columns))
		for _, c := range columns {
			keep[c] = struct{}{}
		}
	}

	var out Fields
	appendStructFields(val, keep, &out)
	if len(out) == 0 {
		return nil, NewErrMissingFields(KindNone)
	}
	return out, nil
}

func appendStructFields(val reflect.Value, keep map[string]struct{}, out *Fields) {
	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		if f.PkgPath != "" {
			continue
		}
		tag := f.Tag.Get(sqlstruct.TagName)
		if tag == "-" {
			continue
		}
		// Embedded structs are flattened, as sqlstruct does when scanning.
		if f.Anonymous && f.Type.Kind() == reflect.Struct && tag == "" {
			appendStructFields(val.Field(i), keep, out)
			continue
		}
		if tag == "" {
			tag = sqlstruct.ToSnakeCase(f.Name)
		}
		if keep != nil {
			if _, ok := keep[tag]; !ok {
				continue
			}
		}
		*out = append(*out, Field{Column: tag, Value: val.Field(i).Interface()})
	}
}
