// Package table provides the in-memory, column-ordered table every job works
// on. Columns are typed as String or Date and every cell is nullable.
//
// Tables are mutated in place by the loaders:
//
//	t.MapNames(normalize.ColumnName)
//	t.RenameColumns(map[string]string{"rua": "logradouro"})
//	t.Transform("cep", func(_ int, v table.Value) (table.Value, error) { ... })
//	t.TrimStrings()
package table
