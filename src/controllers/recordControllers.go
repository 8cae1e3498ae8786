package controllers

import (
	"strconv"

	"github.com/ImpulsoLocal2024/impulso-local-back/src/dtos"
	"github.com/ImpulsoLocal2024/impulso-local-back/src/services"
	"github.com/gin-gonic/gin"
)

type RecordController struct {
	records *services.RecordService
}

func NewRecordController(records *services.RecordService) *RecordController {
	return &RecordController{records: records}
}

// ListRecords exposes every query parameter as an equality filter; the service
// drops the ones that match no live column.
func (rc *RecordController) ListRecords(c *gin.Context) {
	filters := make(map[string]string)
	for key, values := range c.Request.URL.Query() {
		if len(values) > 0 {
			filters[key] = values[0]
		}
	}

	records, err := rc.records.ListRecords(c.Param("table"), filters)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, records)
}

func (rc *RecordController) GetRecordByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid ID format"})
		return
	}

	response, err := rc.records.GetRecordByID(c.Param("table"), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, response)
}

func (rc *RecordController) CreateRecord(c *gin.Context) {
	var data map[string]interface{}
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	record, err := rc.records.CreateRecord(c.Param("table"), data)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(201, record)
}

func (rc *RecordController) UpdateRecord(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid ID format"})
		return
	}

	var data map[string]interface{}
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	record, err := rc.records.UpdateRecord(c.Param("table"), id, data)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, record)
}

func (rc *RecordController) UpdatePlanRecord(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid ID format"})
		return
	}

	var data map[string]interface{}
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	record, err := rc.records.UpdatePlanRecord(c.Param("table"), id, data)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, record)
}

// UpsertPlanRecord implements the idempotent "save" the plan frontend relies
// on: insert-or-update keyed by the table's natural key.
func (rc *RecordController) UpsertPlanRecord(c *gin.Context) {
	var data map[string]interface{}
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	record, err := rc.records.CreateOrUpdateByNaturalKey(c.Param("table"), data)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, record)
}

func (rc *RecordController) BulkUpdate(c *gin.Context) {
	var payload dtos.BulkUpdateDTO
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	affected, err := rc.records.BulkUpdate(c.Param("table"), payload.IDs, payload.Updates)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, gin.H{"updated": affected})
}

func (rc *RecordController) DeleteRecord(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid ID format"})
		return
	}

	if err := rc.records.DeleteRecord(c.Param("table"), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, gin.H{"message": "Registro eliminado correctamente"})
}
