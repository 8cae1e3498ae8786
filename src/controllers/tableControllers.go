package controllers

import (
	"github.com/ImpulsoLocal2024/impulso-local-back/src/dtos"
	"github.com/ImpulsoLocal2024/impulso-local-back/src/services"
	"github.com/gin-gonic/gin"
)

type TableController struct {
	schema *services.SchemaService
}

func NewTableController(schema *services.SchemaService) *TableController {
	return &TableController{schema: schema}
}

func (tc *TableController) CreateTable(c *gin.Context) {
	var payload dtos.CreateTableDTO
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	if err := tc.schema.CreateTable(payload.TableName, payload.IsPrimary, payload.Fields); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(201, gin.H{"message": "Tabla creada correctamente", "table_name": payload.TableName})
}

func (tc *TableController) EditTable(c *gin.Context) {
	table := c.Param("table")

	var payload dtos.EditTableDTO
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	if err := tc.schema.EditTable(table, payload); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, gin.H{"message": "Tabla actualizada correctamente"})
}

func (tc *TableController) DeleteTable(c *gin.Context) {
	if err := tc.schema.DeleteTable(c.Param("table")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, gin.H{"message": "Tabla eliminada correctamente"})
}

func (tc *TableController) DescribeTable(c *gin.Context) {
	columns, err := tc.schema.DescribeTable(c.Param("table"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, gin.H{"columns": columns})
}

func (tc *TableController) ListTables(c *gin.Context) {
	tables, err := tc.schema.ListTables()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, tables)
}

func (tc *TableController) UpdatePrimaryStatus(c *gin.Context) {
	var payload dtos.TableStatusDTO
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	if err := tc.schema.UpdatePrimaryStatus(c.Param("table"), payload.IsPrimary); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, gin.H{"message": "Estado actualizado correctamente"})
}

func (tc *TableController) SaveFieldPreference(c *gin.Context) {
	var payload dtos.FieldPreferenceDTO
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	if err := tc.schema.SaveFieldPreference(c.Param("table"), payload.VisibleColumns); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, gin.H{"message": "Preferencia guardada correctamente"})
}

func (tc *TableController) GetFieldPreference(c *gin.Context) {
	columns, err := tc.schema.GetFieldPreference(c.Param("table"))
	if err != nil {
		respondError(c, err)
		return
	}
	if columns == nil {
		columns = []string{}
	}
	c.JSON(200, gin.H{"visible_columns": columns})
}
