package controllers

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ImpulsoLocal2024/impulso-local-back/src/services"
	"github.com/gin-gonic/gin"
)

type TransferController struct {
	transfer *services.TransferService
}

func NewTransferController(transfer *services.TransferService) *TransferController {
	return &TransferController{transfer: transfer}
}

func (tc *TransferController) ExportCSV(c *gin.Context) {
	table := c.Param("table")

	var buffer bytes.Buffer
	if err := tc.transfer.ExportCSV(table, &buffer); err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s_data.csv", table))
	c.Data(200, "text/csv", buffer.Bytes())
}

func (tc *TransferController) ExportTemplate(c *gin.Context) {
	table := c.Param("table")

	var buffer bytes.Buffer
	if err := tc.transfer.ExportTemplate(table, &buffer); err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s_template.csv", table))
	c.Data(200, "text/csv", buffer.Bytes())
}

func (tc *TransferController) ExportExcel(c *gin.Context) {
	table := c.Param("table")

	var buffer bytes.Buffer
	if err := tc.transfer.ExportExcel(table, &buffer); err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s_data.xlsx", table))
	c.Data(200, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buffer.Bytes())
}

// ImportCSV stores the upload in a temporary file and hands it to the service,
// which removes it whether the import succeeds or not.
func (tc *TransferController) ImportCSV(c *gin.Context) {
	table := c.Param("table")

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(400, gin.H{"error": "No file uploaded"})
		return
	}

	tempPath := filepath.Join(os.TempDir(),
		fmt.Sprintf("import_%d_%s", time.Now().UnixNano(), filepath.Base(file.Filename)))
	if err := c.SaveUploadedFile(file, tempPath); err != nil {
		c.JSON(500, gin.H{"error": "Could not save uploaded file"})
		return
	}

	imported, err := tc.transfer.ImportCSV(table, tempPath)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, gin.H{"message": "Importación completada", "imported": imported})
}
