package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ImpulsoLocal2024/impulso-local-back/src/dtos"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEffectiveTargetPassesThroughForRegularTables(t *testing.T) {
	table, id, err := effectiveTarget("provider_proveedores", 7, nil)
	require.NoError(t, err)
	assert.Equal(t, "provider_proveedores", table)
	assert.Equal(t, 7, id)
}

func TestEffectiveTargetSubstitutesCaracterizacionForPlanTables(t *testing.T) {
	caracterizacion := 42
	table, id, err := effectiveTarget("pi_formulacion", 7, &caracterizacion)
	require.NoError(t, err)
	assert.Equal(t, CaracterizacionTable, table)
	assert.Equal(t, 42, id)
}

func TestEffectiveTargetRequiresCaracterizacionForPlanTables(t *testing.T) {
	_, _, err := effectiveTarget("pi_formulacion", 7, nil)
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestEffectiveTargetRejectsBadTableNames(t *testing.T) {
	_, _, err := effectiveTarget("users", 7, nil)
	assert.ErrorIs(t, err, ErrInvalidName)
}

func TestSaveAttachmentValidatesBeforeAnyFilesystemWrite(t *testing.T) {
	root := t.TempDir()
	service := NewFileService(nil, root)

	_, err := service.SaveAttachment("pi_formulacion", 7, nil, dtos.UploadOptionsDTO{})
	assert.ErrorIs(t, err, ErrMissingField)

	entries, readErr := os.ReadDir(root)
	require.NoError(t, readErr)
	assert.Empty(t, entries, "la validación no debe dejar archivos")
}

func TestAttachmentName(t *testing.T) {
	// Supplied name keeps the original extension
	assert.Equal(t, "acta.pdf", attachmentName("documento.pdf", "acta"))
	// Without a supplied name the original is used as-is
	assert.Equal(t, "documento.pdf", attachmentName("documento.pdf", ""))
	assert.Equal(t, "documento.pdf", attachmentName("documento.pdf", "   "))
	// Path components are stripped from both inputs
	assert.Equal(t, "acta.pdf", attachmentName("../../etc/documento.pdf", "../acta"))
}

func TestAbsolutePathStaysUnderRoot(t *testing.T) {
	service := NewFileService(nil, "/srv/uploads")
	abs := service.absolutePath("/uploads/provider_proveedores/7/acta.pdf")
	assert.Equal(t, filepath.Join("/srv/uploads", "provider_proveedores", "7", "acta.pdf"), abs)
}
