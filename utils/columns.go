package utils

import (
	"reflect"
)

// ColumnList builds the list of column names of a db model struct from its
// `db` tags, so SELECTs stay in sync with the struct definition.
func ColumnList[T any](prefixes ...string) []string {
	var prefix string
	if len(prefixes) > 0 {
		prefix = prefixes[0] + "."
	}

	modelType := reflect.TypeOf(new(T)).Elem()
	columns := make([]string, 0, modelType.NumField())
	for i := 0; i < modelType.NumField(); i++ {
		tag, ok := modelType.Field(i).Tag.Lookup("db")
		if !ok || tag == "-" {
			continue
		}
		columns = append(columns, prefix+tag)
	}
	return columns
}
