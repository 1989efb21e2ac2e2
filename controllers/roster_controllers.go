package controllers

import (
	"context"
	"encoding/csv"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/intranet-portal/models"
	"github.com/yeremiapane/intranet-portal/utils"
)

// PatientLister provides the active inpatient roster.
type PatientLister interface {
	ActivePatients(ctx context.Context) ([]models.PatientRecord, error)
}

var rosterHeader = []string{
	"doc_rh",
	"nome_completo",
	"dt_nascimento",
	"desc_especialidade",
	"desc_clinica",
	"desc_leito",
	"dt_entrada",
}

// RosterController exports the patient list for the cleaning staff
// (zeladoria). Source is nil when the hospital database is not configured.
type RosterController struct {
	Source PatientLister
}

func NewRosterController(source PatientLister) *RosterController {
	return &RosterController{Source: source}
}

func (rc *RosterController) Page(c *gin.Context) {
	c.HTML(http.StatusOK, "zeladoria.html", gin.H{"Title": "Lista de pacientes"})
}

// Download streams the roster as a ';' separated CSV attachment.
func (rc *RosterController) Download(c *gin.Context) {
	if rc.Source == nil {
		c.String(http.StatusServiceUnavailable, "Banco de dados da zeladoria não configurado.")
		return
	}

	patients, err := rc.Source.ActivePatients(c.Request.Context())
	if err != nil {
		utils.ErrorLogger.Printf("Error retrieving patient roster: %v", err)
		c.String(http.StatusInternalServerError, "Erro ao obter dados.")
		return
	}

	c.Header("Content-Disposition", "attachment; filename=pacientes.csv")
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	w.Comma = ';'
	if err := w.Write(rosterHeader); err != nil {
		utils.ErrorLogger.Printf("Error writing roster CSV: %v", err)
		return
	}
	for _, p := range patients {
		record := []string{
			p.DocRH,
			utils.StripAccents(p.FullName),
			utils.FormatBR(p.BirthDate),
			p.Specialty,
			utils.StripAccents(p.Clinic),
			p.Bed,
			utils.FormatBRDateTime(p.AdmittedAt),
		}
		if err := w.Write(record); err != nil {
			utils.ErrorLogger.Printf("Error writing roster CSV: %v", err)
			return
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		utils.ErrorLogger.Printf("Error writing roster CSV: %v", err)
	}
}
