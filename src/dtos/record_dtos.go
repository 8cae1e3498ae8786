package dtos

// RelatedOptionDTO is one selectable row of a related table: its id plus a
// human-readable label taken from the first non-id column.
type RelatedOptionDTO struct {
	ID           interface{} `json:"id"`
	DisplayValue interface{} `json:"displayValue"`
}

// RecordResponseDTO is the single-record read shape: the row itself plus, per
// foreign-key column, the full candidate list from the related table so the
// frontend can render a selection control.
type RecordResponseDTO struct {
	Record      map[string]interface{}        `json:"record"`
	RelatedData map[string][]RelatedOptionDTO `json:"relatedData"`
}

type BulkUpdateDTO struct {
	IDs     []int                  `json:"ids"`
	Updates map[string]interface{} `json:"updates"`
}

type MultiZipDTO struct {
	RecordIDs []int `json:"record_ids"`
}
