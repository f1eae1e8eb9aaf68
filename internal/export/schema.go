package export

import (
	"os"

	json "github.com/goccy/go-json"
)

// BuildSchema walks tables in declaration order and produces a table id to
// column-name-to-SQL-type mapping. The first duplicate column name within a
// table fails immediately; a duplicate table id fails after that table's
// columns have been processed.
func (e *ExportFile) BuildSchema() (map[string]map[string]string, error) {
	schema := make(map[string]map[string]string, len(e.tables))

	for _, t := range e.tables {
		columns := make(map[string]string, len(t.columns))
		for _, c := range t.columns {
			if _, ok := columns[c.name]; ok {
				return nil, &DuplicateColumnError{Table: t.id, Column: c.name}
			}
			columns[c.name] = c.sqlType
		}

		if _, ok := schema[t.id]; ok {
			return nil, &DuplicateTableError{Table: t.id}
		}
		schema[t.id] = columns
	}

	return schema, nil
}

// SchemaJSONString serializes the schema as an object keyed by table id,
// each value an object keyed by column name mapped to its SQL type label.
// Key order is unspecified.
func (e *ExportFile) SchemaJSONString() (string, error) {
	schema, err := e.BuildSchema()
	if err != nil {
		return "", err
	}
	data, err := json.Marshal(schema)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// WriteSchemaJSON writes the schema JSON verbatim to path.
func (e *ExportFile) WriteSchemaJSON(path string) error {
	schema, err := e.SchemaJSONString()
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(schema), 0o644)
}
