package services

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ImpulsoLocal2024/impulso-local-back/src/dtos"
	"github.com/ImpulsoLocal2024/impulso-local-back/src/models"
	"gorm.io/gorm"
)

// FileService stores uploaded files on disk under a configured root and tracks
// them with metadata rows addressed by (table_name, record_id). Files for pi_*
// tables are stored and looked up under their characterization record, not the
// plan item itself.
type FileService struct {
	db   *gorm.DB
	root string
}

func NewFileService(db *gorm.DB, root string) *FileService {
	return &FileService{db: db, root: root}
}

// effectiveTarget resolves the storage address of a record's files. For pi_*
// tables the characterization id is required and substitutes the record id;
// the validation runs before any filesystem write.
func effectiveTarget(table string, recordID int, caracterizacionID *int) (string, int, error) {
	if !ValidTableName(table) {
		return "", 0, fmt.Errorf("%w: %s", ErrInvalidName, table)
	}
	if strings.HasPrefix(table, PrefixPlan) {
		if caracterizacionID == nil {
			return "", 0, fmt.Errorf("%w: caracterizacion_id es obligatorio para tablas pi_", ErrMissingField)
		}
		return CaracterizacionTable, *caracterizacionID, nil
	}
	return table, recordID, nil
}

// SaveAttachment copies the uploaded file to its deterministic destination and
// inserts the metadata row. The row stores the path relative to the uploads
// root; the file is removed again if the row cannot be saved.
func (s *FileService) SaveAttachment(table string, recordID int, header *multipart.FileHeader, opts dtos.UploadOptionsDTO) (*models.FileAttachmentModel, error) {
	targetTable, effectiveID, err := effectiveTarget(table, recordID, opts.CaracterizacionID)
	if err != nil {
		return nil, err
	}

	finalName := attachmentName(header.Filename, opts.FileName)
	destDir := filepath.Join(s.root, targetTable, strconv.Itoa(effectiveID))
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return nil, fmt.Errorf("creando directorio de carga: %w", err)
	}

	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("abriendo archivo subido: %w", err)
	}
	defer src.Close()

	destPath := filepath.Join(destDir, finalName)
	dst, err := os.Create(destPath)
	if err != nil {
		return nil, fmt.Errorf("guardando archivo: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(destPath)
		return nil, fmt.Errorf("guardando archivo: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(destPath)
		return nil, fmt.Errorf("guardando archivo: %w", err)
	}

	attachment := models.FileAttachmentModel{
		RecordID:  effectiveID,
		TableRef:  targetTable,
		Name:      finalName,
		FilePath:  path.Join("/uploads", targetTable, strconv.Itoa(effectiveID), finalName),
		CreatedAt: time.Now(),
	}
	if opts.Source != "" {
		attachment.Source = &opts.Source
	}
	if err := s.db.Create(&attachment).Error; err != nil {
		// Clean up the file if the metadata row fails
		os.Remove(destPath)
		return nil, fmt.Errorf("guardando metadatos del archivo: %w", err)
	}
	return &attachment, nil
}

// GetFiles lists the attachments of a record, newest first, using the same
// effective-id substitution as uploads.
func (s *FileService) GetFiles(table string, recordID int, caracterizacionID *int) ([]models.FileAttachmentModel, error) {
	targetTable, effectiveID, err := effectiveTarget(table, recordID, caracterizacionID)
	if err != nil {
		return nil, err
	}
	var files []models.FileAttachmentModel
	err = s.db.Where("table_name = ? AND record_id = ?", targetTable, effectiveID).
		Order("created_at DESC").
		Find(&files).Error
	if err != nil {
		return nil, err
	}
	return files, nil
}

// UpdateCompliance applies the post-attachment compliance fields to a file row.
func (s *FileService) UpdateCompliance(fileID int, compliance dtos.ComplianceDTO) (*models.FileAttachmentModel, error) {
	var attachment models.FileAttachmentModel
	if err := s.db.First(&attachment, fileID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: archivo %d", ErrNotFound, fileID)
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if compliance.Cumple != nil {
		updates["cumple"] = *compliance.Cumple
	}
	if compliance.DescripcionCumplimiento != nil {
		updates["descripcion_cumplimiento"] = *compliance.DescripcionCumplimiento
	}
	if len(updates) == 0 {
		return nil, fmt.Errorf("%w: sin campos de cumplimiento", ErrNoValidFields)
	}
	if err := s.db.Model(&attachment).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &attachment, nil
}

// DeleteFile removes the file from disk and its metadata row.
func (s *FileService) DeleteFile(fileID int) error {
	var attachment models.FileAttachmentModel
	if err := s.db.First(&attachment, fileID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: archivo %d", ErrNotFound, fileID)
		}
		return err
	}
	// El archivo puede no existir en disco; la fila se elimina igual
	_ = os.Remove(s.absolutePath(attachment.FilePath))
	return s.db.Delete(&attachment).Error
}

// WriteZip streams every attachment of one record as a deflate-compressed zip.
func (s *FileService) WriteZip(table string, recordID int, caracterizacionID *int, w io.Writer) error {
	files, err := s.GetFiles(table, recordID, caracterizacionID)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: sin archivos para %s/%d", ErrNotFound, table, recordID)
	}

	zipWriter := zip.NewWriter(w)
	if err := s.addEntries(zipWriter, files, ""); err != nil {
		zipWriter.Close()
		return err
	}
	return zipWriter.Close()
}

// WriteMultiZip streams the attachments of several records, nesting entries
// under <table>/<record_id>/. For pi_* tables the ids are characterization ids,
// matching the storage addressing.
func (s *FileService) WriteMultiZip(table string, recordIDs []int, w io.Writer) error {
	if !ValidTableName(table) {
		return fmt.Errorf("%w: %s", ErrInvalidName, table)
	}
	lookupTable := table
	if strings.HasPrefix(table, PrefixPlan) {
		lookupTable = CaracterizacionTable
	}

	zipWriter := zip.NewWriter(w)
	for _, recordID := range recordIDs {
		var files []models.FileAttachmentModel
		err := s.db.Where("table_name = ? AND record_id = ?", lookupTable, recordID).
			Find(&files).Error
		if err != nil {
			zipWriter.Close()
			return err
		}
		prefix := path.Join(table, strconv.Itoa(recordID)) + "/"
		if err := s.addEntries(zipWriter, files, prefix); err != nil {
			zipWriter.Close()
			return err
		}
	}
	return zipWriter.Close()
}

func (s *FileService) addEntries(zipWriter *zip.Writer, files []models.FileAttachmentModel, prefix string) error {
	for _, attachment := range files {
		source, err := os.Open(s.absolutePath(attachment.FilePath))
		if err != nil {
			// Orphaned metadata row; skip instead of aborting the archive
			continue
		}
		entry, err := zipWriter.Create(prefix + attachment.Name)
		if err != nil {
			source.Close()
			return err
		}
		if _, err := io.Copy(entry, source); err != nil {
			source.Close()
			return err
		}
		source.Close()
	}
	return nil
}

func (s *FileService) absolutePath(relative string) string {
	trimmed := strings.TrimPrefix(relative, "/uploads/")
	return filepath.Join(s.root, filepath.FromSlash(trimmed))
}

// attachmentName derives the stored file name: the supplied name keeps the
// original extension, otherwise the original file name is used as-is.
func attachmentName(original, supplied string) string {
	original = filepath.Base(original)
	if strings.TrimSpace(supplied) == "" {
		return original
	}
	return filepath.Base(strings.TrimSpace(supplied)) + filepath.Ext(original)
}
