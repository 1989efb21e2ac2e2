package controllers_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/intranet-portal/controllers"
	"github.com/yeremiapane/intranet-portal/models"
	"gorm.io/gorm"
)

var fakePDF = []byte("%PDF-1.4\n% protocolo de teste\n%%EOF\n")

func setupProtocolRouter(t *testing.T, db *gorm.DB, uploadDir string) *gin.Engine {
	r := newTestEngine(t)
	pc := controllers.NewProtocolController(db, uploadDir)
	pc.Now = func() time.Time { return testNow }

	r.GET("/protocolos/setores", pc.ListSectors)
	r.GET("/protocolos/setores/criar", pc.CreateSectorPage)
	r.POST("/protocolos/setores/criar", pc.CreateSector)
	r.GET("/protocolos/setores/editar/:id", pc.EditSectorPage)
	r.POST("/protocolos/setores/editar/:id", pc.UpdateSector)
	r.POST("/protocolos/setores/excluir/:id", pc.DeleteSector)

	r.GET("/protocolos", pc.ListProtocols)
	r.GET("/protocolos/criar", pc.CreatePage)
	r.POST("/protocolos/criar", pc.CreateProtocol)
	r.GET("/protocolos/:id", pc.ShowProtocol)
	r.GET("/protocolos/editar/:id", pc.EditPage)
	r.POST("/protocolos/editar/:id", pc.UpdateProtocol)
	r.POST("/protocolos/excluir/:id", pc.DeleteProtocol)
	r.GET("/protocolos/download/:id", pc.Download)
	return r
}

func postProtocolMultipart(t *testing.T, r *gin.Engine, fields map[string]string, file []byte) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if file != nil {
		part, err := mw.CreateFormFile("arquivo", "protocolo.pdf")
		require.NoError(t, err)
		_, err = part.Write(file)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/protocolos/criar", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSectorCRUD(t *testing.T) {
	db := setupTestDB(t)
	r := setupProtocolRouter(t, db, t.TempDir())

	w := doForm(r, http.MethodPost, "/protocolos/setores/criar", url.Values{"nome": {"Farmácia"}})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/protocolos/setores", w.Header().Get("Location"))

	w = doForm(r, http.MethodPost, "/protocolos/setores/criar", url.Values{"nome": {" "}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doGet(r, "/protocolos/setores")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Farmácia")

	assert.Equal(t, http.StatusOK, doGet(r, "/protocolos/setores/criar").Code)
	assert.Equal(t, http.StatusOK, doGet(r, "/protocolos/setores/editar/1").Code)
	assert.Equal(t, http.StatusNotFound, doGet(r, "/protocolos/setores/editar/9").Code)

	w = doForm(r, http.MethodPost, "/protocolos/setores/editar/1", url.Values{"nome": {"Farmácia Central"}})
	assert.Equal(t, http.StatusSeeOther, w.Code)

	var sector models.Sector
	require.NoError(t, db.First(&sector, 1).Error)
	assert.Equal(t, "Farmácia Central", sector.Name)

	w = doForm(r, http.MethodPost, "/protocolos/setores/excluir/1", nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.ErrorIs(t, db.First(&sector, 1).Error, gorm.ErrRecordNotFound)
}

func TestProtocolLifecycle(t *testing.T) {
	db := setupTestDB(t)
	uploadDir := filepath.Join(t.TempDir(), "uploads")
	r := setupProtocolRouter(t, db, uploadDir)

	require.NoError(t, db.Create(&models.Sector{Name: "Enfermagem"}).Error)
	require.NoError(t, db.Create(&models.Sector{Name: "CCIH"}).Error)

	assert.Equal(t, http.StatusOK, doGet(r, "/protocolos/criar").Code)

	w := postProtocolMultipart(t, r, map[string]string{
		"nome_exibicao":        "Higienização das mãos",
		"codigo_identificacao": "POP-001",
		"setor_responsavel_id": "1",
	}, fakePDF)
	require.Equal(t, http.StatusSeeOther, w.Code, w.Body.String())
	assert.Equal(t, "/protocolos", w.Header().Get("Location"))

	var protocol models.Protocol
	require.NoError(t, db.First(&protocol).Error)
	require.NotNil(t, protocol.File)
	assert.True(t, strings.HasSuffix(*protocol.File, ".pdf"))
	assert.NotEqual(t, "protocolo.pdf", *protocol.File)
	assert.True(t, testNow.Equal(protocol.CreatedAt))
	stored := filepath.Join(uploadDir, *protocol.File)
	assert.FileExists(t, stored)

	w = doGet(r, "/protocolos")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "POP-001")
	assert.Contains(t, w.Body.String(), "Enfermagem")

	w = doGet(r, "/protocolos/1")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/protocolos/download/1")

	w = doGet(r, "/protocolos/download/1")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, fakePDF, w.Body.Bytes())

	// a sector that owns protocols cannot be removed
	w = doForm(r, http.MethodPost, "/protocolos/setores/excluir/1", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	assert.Equal(t, http.StatusOK, doGet(r, "/protocolos/editar/1").Code)
	w = doForm(r, http.MethodPost, "/protocolos/editar/1", url.Values{
		"nome_exibicao":        {"Higienização das mãos (rev. 2)"},
		"codigo_identificacao": {"POP-001"},
		"setor_responsavel_id": {"2"},
	})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/protocolos/1", w.Header().Get("Location"))
	require.NoError(t, db.First(&protocol, 1).Error)
	assert.Equal(t, uint(2), protocol.SectorID)
	assert.Equal(t, "Higienização das mãos (rev. 2)", protocol.DisplayName)

	w = doForm(r, http.MethodPost, "/protocolos/excluir/1", nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.NoFileExists(t, stored)
	assert.Equal(t, http.StatusNotFound, doGet(r, "/protocolos/1").Code)
}

func TestProtocolValidationAndMissingFile(t *testing.T) {
	db := setupTestDB(t)
	uploadDir := t.TempDir()
	r := setupProtocolRouter(t, db, uploadDir)
	require.NoError(t, db.Create(&models.Sector{Name: "Enfermagem"}).Error)

	w := postProtocolMultipart(t, r, map[string]string{"nome_exibicao": "Sem setor", "setor_responsavel_id": "7"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postProtocolMultipart(t, r, map[string]string{"setor_responsavel_id": "1"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// no file attached
	w = postProtocolMultipart(t, r, map[string]string{"nome_exibicao": "Sem arquivo", "setor_responsavel_id": "1"}, nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, http.StatusNotFound, doGet(r, "/protocolos/download/1").Code)

	// file recorded but gone from disk
	gone := "missing.pdf"
	require.NoError(t, db.Model(&models.Protocol{}).Where("id = ?", 1).Update("arquivo", gone).Error)
	assert.Equal(t, http.StatusNotFound, doGet(r, "/protocolos/download/1").Code)

	// path components in the stored name are ignored
	outside := filepath.Join(filepath.Dir(uploadDir), "outside.pdf")
	require.NoError(t, os.WriteFile(outside, fakePDF, 0o600))
	require.NoError(t, db.Model(&models.Protocol{}).Where("id = ?", 1).Update("arquivo", "../outside.pdf").Error)
	assert.Equal(t, http.StatusNotFound, doGet(r, "/protocolos/download/1").Code)

	assert.Equal(t, http.StatusNotFound, doGet(r, "/protocolos/download/5").Code)
}
