package models

// TableRegistryModel tracks every dynamically created table and whether it is
// shown as a primary view in the admin frontend. The registry is independent of
// the live catalog: dropping a table does not remove its registry row.
type TableRegistryModel struct {
	ID        int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string `json:"table_name" gorm:"column:table_name;type:varchar(255);uniqueIndex;not null"`
	IsPrimary bool   `json:"is_primary" gorm:"column:is_primary;type:boolean;default:false;not null"`
}

func (TableRegistryModel) TableName() string {
	return "table_registry"
}
