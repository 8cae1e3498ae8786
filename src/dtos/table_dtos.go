package dtos

// FieldDefinitionDTO describes one column of a dynamic table as the frontend
// declares it: a logical type name plus, for FOREIGN_KEY fields, the table the
// column references.
type FieldDefinitionDTO struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	RelatedTable string `json:"relatedTable,omitempty"`
	Required     bool   `json:"required,omitempty"`
}

type CreateTableDTO struct {
	TableName string               `json:"table_name"`
	IsPrimary bool                 `json:"is_primary"`
	Fields    []FieldDefinitionDTO `json:"fields"`
}

// EditTableDTO carries the requested schema changes. Editing fields in place is
// unsupported: any entry in FieldsToEdit makes the whole request fail.
type EditTableDTO struct {
	FieldsToAdd    []FieldDefinitionDTO `json:"fieldsToAdd"`
	FieldsToDelete []string             `json:"fieldsToDelete"`
	FieldsToEdit   []FieldDefinitionDTO `json:"fieldsToEdit"`
}

type TableStatusDTO struct {
	IsPrimary bool `json:"is_primary"`
}

type FieldPreferenceDTO struct {
	VisibleColumns []string `json:"visible_columns"`
}

// ColumnDescriptionDTO is the introspected shape of a live column, with the
// native type normalized back to the logical set for display.
type ColumnDescriptionDTO struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	Nullable     bool   `json:"nullable"`
	RelatedTable string `json:"relatedTable,omitempty"`
}
