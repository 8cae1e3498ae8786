package controllers

import (
	"fmt"
	"strconv"

	"github.com/ImpulsoLocal2024/impulso-local-back/src/dtos"
	"github.com/ImpulsoLocal2024/impulso-local-back/src/services"
	"github.com/gin-gonic/gin"
)

type FileController struct {
	files *services.FileService
}

func NewFileController(files *services.FileService) *FileController {
	return &FileController{files: files}
}

// caracterizacionID reads the optional caracterizacion_id form/query field,
// which pi_* uploads must supply.
func caracterizacionID(c *gin.Context) (*int, error) {
	raw := c.PostForm("caracterizacion_id")
	if raw == "" {
		raw = c.Query("caracterizacion_id")
	}
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("caracterizacion_id inválido")
	}
	return &id, nil
}

func (fc *FileController) UploadFile(c *gin.Context) {
	recordID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid ID format"})
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(400, gin.H{"error": "No file uploaded"})
		return
	}

	caracterizacion, err := caracterizacionID(c)
	if err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	opts := dtos.UploadOptionsDTO{
		FileName:          c.PostForm("fileName"),
		CaracterizacionID: caracterizacion,
		Source:            c.PostForm("source"),
	}

	attachment, err := fc.files.SaveAttachment(c.Param("table"), recordID, header, opts)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(201, attachment)
}

func (fc *FileController) GetFiles(c *gin.Context) {
	recordID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid ID format"})
		return
	}

	caracterizacion, err := caracterizacionID(c)
	if err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	files, err := fc.files.GetFiles(c.Param("table"), recordID, caracterizacion)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, files)
}

func (fc *FileController) UpdateCompliance(c *gin.Context) {
	fileID, err := strconv.Atoi(c.Param("fileId"))
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid ID format"})
		return
	}

	var payload dtos.ComplianceDTO
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	attachment, err := fc.files.UpdateCompliance(fileID, payload)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, attachment)
}

func (fc *FileController) DeleteFile(c *gin.Context) {
	fileID, err := strconv.Atoi(c.Param("fileId"))
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid ID format"})
		return
	}

	if err := fc.files.DeleteFile(fileID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, gin.H{"message": "Archivo eliminado correctamente"})
}

// DownloadZip streams every file of one record as a zip archive.
func (fc *FileController) DownloadZip(c *gin.Context) {
	recordID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid ID format"})
		return
	}

	caracterizacion, err := caracterizacionID(c)
	if err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	table := c.Param("table")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s_%d.zip", table, recordID))
	c.Header("Content-Type", "application/zip")
	if err := fc.files.WriteZip(table, recordID, caracterizacion, c.Writer); err != nil {
		// Headers may already be out; nothing to do beyond closing the stream
		c.Abort()
	}
}

// DownloadMultipleZip streams the files of several records, nested under
// <table>/<record_id>/ inside the archive.
func (fc *FileController) DownloadMultipleZip(c *gin.Context) {
	var payload dtos.MultiZipDTO
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	table := c.Param("table")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s_files.zip", table))
	c.Header("Content-Type", "application/zip")
	if err := fc.files.WriteMultiZip(table, payload.RecordIDs, c.Writer); err != nil {
		c.Abort()
	}
}
