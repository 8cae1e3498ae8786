package dtos

// UploadOptionsDTO carries the optional multipart form fields of a file upload.
// CaracterizacionID is mandatory for pi_* tables, whose files are stored under
// the characterization record they belong to.
type UploadOptionsDTO struct {
	FileName          string
	CaracterizacionID *int
	Source            string
}

type ComplianceDTO struct {
	Cumple                  *bool   `json:"cumple"`
	DescripcionCumplimiento *string `json:"descripcion cumplimiento"`
}
