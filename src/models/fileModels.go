package models

import "time"

// FileAttachmentModel associates an uploaded file with a (table_name, record_id)
// pair. There is no foreign key to the dynamic table: the relation is by
// convention, so deleting the parent record does not cascade here.
//
// For pi_* tables the row is stored under the related inscription_caracterizacion
// record id, because plan line-items are scoped to one characterization record.
type FileAttachmentModel struct {
	ID                      int       `json:"id" gorm:"primaryKey;autoIncrement"`
	RecordID                int       `json:"record_id" gorm:"column:record_id;not null"`
	TableRef                string    `json:"table_name" gorm:"column:table_name;type:varchar(255);not null"`
	Name                    string    `json:"name" gorm:"type:varchar(255);not null"`
	FilePath                string    `json:"file_path" gorm:"column:file_path;type:text;not null"`
	Source                  *string   `json:"source" gorm:"type:varchar(100)"`
	Cumple                  *bool     `json:"cumple" gorm:"type:boolean"`
	DescripcionCumplimiento *string   `json:"descripcion cumplimiento" gorm:"column:descripcion_cumplimiento;type:text"`
	CreatedAt               time.Time `json:"created_at"`
}

func (FileAttachmentModel) TableName() string {
	return "file_attachments"
}
