package models

// FieldPreferenceModel stores which columns of a dynamic table the frontend
// shows, and in which order. One row per table, upserted, never historized.
// VisibleColumns is a JSON-encoded ordered list of column names.
type FieldPreferenceModel struct {
	ID             int    `json:"id" gorm:"primaryKey;autoIncrement"`
	TableRef       string `json:"table_name" gorm:"column:table_name;type:varchar(255);uniqueIndex;not null"`
	VisibleColumns string `json:"visible_columns" gorm:"column:visible_columns;type:text;not null"`
}

func (FieldPreferenceModel) TableName() string {
	return "field_preferences"
}
