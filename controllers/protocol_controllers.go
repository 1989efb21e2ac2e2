package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yeremiapane/intranet-portal/models"
	"github.com/yeremiapane/intranet-portal/utils"
	"gorm.io/gorm"
)

// ProtocolController manages sectors and the protocol documents (PDFs)
// they are responsible for.
type ProtocolController struct {
	DB        *gorm.DB
	UploadDir string
	Now       func() time.Time
}

func NewProtocolController(db *gorm.DB, uploadDir string) *ProtocolController {
	return &ProtocolController{DB: db, UploadDir: uploadDir, Now: time.Now}
}

// ----------------------------------------------------------------
//                      SECTORS
// ----------------------------------------------------------------

func (pc *ProtocolController) ListSectors(c *gin.Context) {
	var sectors []models.Sector
	if err := pc.DB.WithContext(c.Request.Context()).Order("nome ASC").Find(&sectors).Error; err != nil {
		utils.ErrorLogger.Printf("Error listing sectors: %v", err)
		c.String(http.StatusInternalServerError, "Erro ao carregar setores.")
		return
	}
	c.HTML(http.StatusOK, "setores_listar.html", gin.H{"Title": "Setores", "Sectors": sectors})
}

func (pc *ProtocolController) CreateSectorPage(c *gin.Context) {
	c.HTML(http.StatusOK, "setores_form.html", gin.H{
		"Title":  "Novo setor",
		"Action": "/protocolos/setores/criar",
	})
}

func (pc *ProtocolController) CreateSector(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("nome"))
	if name == "" {
		c.String(http.StatusBadRequest, "Nome do setor obrigatório.")
		return
	}

	if err := pc.DB.WithContext(c.Request.Context()).Create(&models.Sector{Name: name}).Error; err != nil {
		utils.ErrorLogger.Printf("Error creating sector: %v", err)
		c.String(http.StatusInternalServerError, "Erro ao criar setor.")
		return
	}
	c.Redirect(http.StatusSeeOther, "/protocolos/setores")
}

func (pc *ProtocolController) EditSectorPage(c *gin.Context) {
	sector, ok := pc.loadSector(c)
	if !ok {
		return
	}
	c.HTML(http.StatusOK, "setores_form.html", gin.H{
		"Title":  "Editar setor",
		"Sector": sector,
		"Action": fmt.Sprintf("/protocolos/setores/editar/%d", sector.ID),
	})
}

func (pc *ProtocolController) UpdateSector(c *gin.Context) {
	sector, ok := pc.loadSector(c)
	if !ok {
		return
	}

	name := strings.TrimSpace(c.PostForm("nome"))
	if name == "" {
		c.String(http.StatusBadRequest, "Nome do setor obrigatório.")
		return
	}

	if err := pc.DB.WithContext(c.Request.Context()).Model(&sector).Update("nome", name).Error; err != nil {
		utils.ErrorLogger.Printf("Error updating sector %d: %v", sector.ID, err)
		c.String(http.StatusInternalServerError, "Erro ao salvar setor.")
		return
	}
	c.Redirect(http.StatusSeeOther, "/protocolos/setores")
}

// DeleteSector refuses to remove a sector that still owns protocols.
func (pc *ProtocolController) DeleteSector(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		c.String(http.StatusBadRequest, "Setor inválido.")
		return
	}

	db := pc.DB.WithContext(c.Request.Context())

	var owned int64
	if err := db.Model(&models.Protocol{}).Where("setor_responsavel_id = ?", id).Count(&owned).Error; err != nil {
		utils.ErrorLogger.Printf("Error checking sector %d: %v", id, err)
		c.String(http.StatusInternalServerError, "Erro ao excluir setor.")
		return
	}
	if owned > 0 {
		c.String(http.StatusConflict, "Setor possui protocolos.")
		return
	}

	if err := db.Delete(&models.Sector{}, id).Error; err != nil {
		utils.ErrorLogger.Printf("Error deleting sector %d: %v", id, err)
		c.String(http.StatusInternalServerError, "Erro ao excluir setor.")
		return
	}
	c.Redirect(http.StatusSeeOther, "/protocolos/setores")
}

// ----------------------------------------------------------------
//                      PROTOCOLS
// ----------------------------------------------------------------

func (pc *ProtocolController) ListProtocols(c *gin.Context) {
	var protocols []models.Protocol
	if err := pc.DB.WithContext(c.Request.Context()).
		Preload("Sector").
		Order("created_at DESC").
		Find(&protocols).Error; err != nil {
		utils.ErrorLogger.Printf("Error listing protocols: %v", err)
		c.String(http.StatusInternalServerError, "Erro ao carregar protocolos.")
		return
	}
	c.HTML(http.StatusOK, "protocolos_listar.html", gin.H{"Title": "Protocolos", "Protocols": protocols})
}

func (pc *ProtocolController) CreatePage(c *gin.Context) {
	sectors, ok := pc.allSectors(c)
	if !ok {
		return
	}
	c.HTML(http.StatusOK, "protocolos_form.html", gin.H{
		"Title":   "Novo protocolo",
		"Sectors": sectors,
		"Action":  "/protocolos/criar",
	})
}

// CreateProtocol registers a protocol with an optional PDF in "arquivo".
// The file is stored under a random name.
func (pc *ProtocolController) CreateProtocol(c *gin.Context) {
	protocol, ok := pc.protocolFromForm(c)
	if !ok {
		return
	}
	protocol.CreatedAt = pc.Now()

	var storedPath string
	if file, err := c.FormFile("arquivo"); err == nil {
		if err := os.MkdirAll(pc.UploadDir, 0755); err != nil {
			utils.ErrorLogger.Printf("Error creating upload directory: %v", err)
			c.String(http.StatusInternalServerError, "Erro ao salvar arquivo.")
			return
		}

		name := uuid.NewString() + ".pdf"
		storedPath = filepath.Join(pc.UploadDir, name)
		if err := c.SaveUploadedFile(file, storedPath); err != nil {
			utils.ErrorLogger.Printf("Error saving protocol file: %v", err)
			c.String(http.StatusInternalServerError, "Erro ao salvar arquivo.")
			return
		}
		protocol.File = &name
		protocol.StoredName = &name
	} else if !errors.Is(err, http.ErrMissingFile) {
		c.String(http.StatusBadRequest, "Arquivo inválido.")
		return
	}

	if err := pc.DB.WithContext(c.Request.Context()).Create(&protocol).Error; err != nil {
		if storedPath != "" {
			os.Remove(storedPath)
		}
		utils.ErrorLogger.Printf("Error creating protocol: %v", err)
		c.String(http.StatusInternalServerError, "Erro ao criar protocolo.")
		return
	}

	utils.InfoLogger.Printf("Protocol %d (%s) created", protocol.ID, protocol.Code)
	c.Redirect(http.StatusSeeOther, "/protocolos")
}

func (pc *ProtocolController) ShowProtocol(c *gin.Context) {
	protocol, ok := pc.loadProtocol(c)
	if !ok {
		return
	}
	c.HTML(http.StatusOK, "protocolos_ver.html", gin.H{"Title": protocol.DisplayName, "Protocol": protocol})
}

func (pc *ProtocolController) EditPage(c *gin.Context) {
	protocol, ok := pc.loadProtocol(c)
	if !ok {
		return
	}
	sectors, ok := pc.allSectors(c)
	if !ok {
		return
	}
	c.HTML(http.StatusOK, "protocolos_form.html", gin.H{
		"Title":    "Editar protocolo",
		"Protocol": &protocol,
		"Sectors":  sectors,
		"Action":   fmt.Sprintf("/protocolos/editar/%d", protocol.ID),
	})
}

func (pc *ProtocolController) UpdateProtocol(c *gin.Context) {
	protocol, ok := pc.loadProtocol(c)
	if !ok {
		return
	}
	input, ok := pc.protocolFromForm(c)
	if !ok {
		return
	}

	err := pc.DB.WithContext(c.Request.Context()).Model(&models.Protocol{}).
		Where("id = ?", protocol.ID).
		Updates(map[string]interface{}{
			"nome_exibicao":        input.DisplayName,
			"codigo_identificacao": input.Code,
			"setor_responsavel_id": input.SectorID,
		}).Error
	if err != nil {
		utils.ErrorLogger.Printf("Error updating protocol %d: %v", protocol.ID, err)
		c.String(http.StatusInternalServerError, "Erro ao salvar protocolo.")
		return
	}
	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/protocolos/%d", protocol.ID))
}

// DeleteProtocol removes the record and its stored file.
func (pc *ProtocolController) DeleteProtocol(c *gin.Context) {
	protocol, ok := pc.loadProtocol(c)
	if !ok {
		return
	}

	if path, ok := pc.filePath(protocol); ok {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			utils.ErrorLogger.Printf("Error removing protocol file %s: %v", path, err)
		}
	}

	if err := pc.DB.WithContext(c.Request.Context()).Delete(&models.Protocol{}, protocol.ID).Error; err != nil {
		utils.ErrorLogger.Printf("Error deleting protocol %d: %v", protocol.ID, err)
		c.String(http.StatusInternalServerError, "Erro ao excluir protocolo.")
		return
	}
	c.Redirect(http.StatusSeeOther, "/protocolos")
}

// Download serves the protocol PDF inline.
func (pc *ProtocolController) Download(c *gin.Context) {
	protocol, ok := pc.loadProtocol(c)
	if !ok {
		return
	}

	path, ok := pc.filePath(protocol)
	if !ok {
		c.String(http.StatusNotFound, "Arquivo não encontrado para este protocolo.")
		return
	}
	if _, err := os.Stat(path); err != nil {
		c.String(http.StatusNotFound, "Arquivo não encontrado no servidor.")
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.File(path)
}

func (pc *ProtocolController) filePath(protocol models.Protocol) (string, bool) {
	if protocol.File == nil || *protocol.File == "" {
		return "", false
	}
	// stored names are generated here, Base guards against edited rows
	return filepath.Join(pc.UploadDir, filepath.Base(*protocol.File)), true
}

func (pc *ProtocolController) protocolFromForm(c *gin.Context) (models.Protocol, bool) {
	protocol := models.Protocol{
		DisplayName: strings.TrimSpace(c.PostForm("nome_exibicao")),
		Code:        strings.TrimSpace(c.PostForm("codigo_identificacao")),
	}
	if protocol.DisplayName == "" {
		c.String(http.StatusBadRequest, "Nome do protocolo obrigatório.")
		return protocol, false
	}

	sectorID, err := strconv.ParseUint(c.PostForm("setor_responsavel_id"), 10, 32)
	if err != nil || sectorID == 0 {
		c.String(http.StatusBadRequest, "Setor responsável inválido.")
		return protocol, false
	}

	var sector models.Sector
	if err := pc.DB.WithContext(c.Request.Context()).First(&sector, sectorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.String(http.StatusBadRequest, "Setor responsável inválido.")
			return protocol, false
		}
		utils.ErrorLogger.Printf("Error loading sector %d: %v", sectorID, err)
		c.String(http.StatusInternalServerError, "Erro ao carregar setor.")
		return protocol, false
	}
	protocol.SectorID = sector.ID
	return protocol, true
}

func (pc *ProtocolController) loadProtocol(c *gin.Context) (models.Protocol, bool) {
	var protocol models.Protocol

	id, err := paramID(c, "id")
	if err != nil {
		c.String(http.StatusBadRequest, "Protocolo inválido.")
		return protocol, false
	}

	if err := pc.DB.WithContext(c.Request.Context()).Preload("Sector").First(&protocol, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.String(http.StatusNotFound, "Protocolo não encontrado.")
			return protocol, false
		}
		utils.ErrorLogger.Printf("Error loading protocol %d: %v", id, err)
		c.String(http.StatusInternalServerError, "Erro ao carregar protocolo.")
		return protocol, false
	}
	return protocol, true
}

func (pc *ProtocolController) loadSector(c *gin.Context) (models.Sector, bool) {
	var sector models.Sector

	id, err := paramID(c, "id")
	if err != nil {
		c.String(http.StatusBadRequest, "Setor inválido.")
		return sector, false
	}

	if err := pc.DB.WithContext(c.Request.Context()).First(&sector, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.String(http.StatusNotFound, "Setor não encontrado.")
			return sector, false
		}
		utils.ErrorLogger.Printf("Error loading sector %d: %v", id, err)
		c.String(http.StatusInternalServerError, "Erro ao carregar setor.")
		return sector, false
	}
	return sector, true
}

func (pc *ProtocolController) allSectors(c *gin.Context) ([]models.Sector, bool) {
	var sectors []models.Sector
	if err := pc.DB.WithContext(c.Request.Context()).Order("nome ASC").Find(&sectors).Error; err != nil {
		utils.ErrorLogger.Printf("Error listing sectors: %v", err)
		c.String(http.StatusInternalServerError, "Erro ao carregar setores.")
		return nil, false
	}
	return sectors, true
}
