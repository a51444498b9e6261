package simplequery

import "github.com/kisielk/sqlstruct"

// Struct fields map to columns through the `db` tag, falling back to the
// snake_case form of the field name. This applies to FieldsFromStruct and to
// the struct scanning done by Query.
func init() {
	sqlstruct.TagName = "db"
	sqlstruct.NameMapper = sqlstruct.ToSnakeCase
}
