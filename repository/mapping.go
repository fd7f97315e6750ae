package repository

// productColumns maps application field names to products table columns.
// Everything that builds SQL against products goes through this table.
var productColumns = map[string]string{
	"id":          "id",
	"ownerId":     "user_id",
	"title":       "title",
	"slug":        "slug",
	"description": "description",
	"price":       "price",
	"currency":    "currency",
	"images":      "images",
	"stock":       "stock",
	"status":      "status",
	"type":        "type",
	"region":      "region",
	"sizes":       "sizes",
	"colors":      "colors",
	"createdAt":   "created_at",
	"updatedAt":   "updated_at",
}

var productFields = invert(productColumns)

// ColumnForField returns the products column backing an application field.
func ColumnForField(field string) (string, bool) {
	col, ok := productColumns[field]
	return col, ok
}

// FieldForColumn returns the application field stored in a products column.
func FieldForColumn(column string) (string, bool) {
	field, ok := productFields[column]
	return field, ok
}

// ProductFields lists every mapped application field.
func ProductFields() []string {
	out := make([]string, 0, len(productColumns))
	for f := range productColumns {
		out = append(out, f)
	}
	return out
}

// column panics on an unmapped field; callers only pass literals.
func column(field string) string {
	col, ok := productColumns[field]
	if !ok {
		panic("repository: unmapped product field " + field)
	}
	return col
}

func invert(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[v] = k
	}
	return out
}
