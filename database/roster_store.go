package database

import (
	"context"

	"github.com/yeremiapane/intranet-portal/models"
	"gorm.io/gorm"
)

const activePatientsQuery = `
	SELECT
		cad_internacao.doc_rh,
		COALESCE(cad_paciente.nome_completo, '') AS nome_completo,
		cad_paciente.dt_nascimento,
		COALESCE(cad_internacao.desc_especialidade, '') AS desc_especialidade,
		COALESCE(cad_internacao.desc_clinica, '') AS desc_clinica,
		COALESCE(cad_internacao.desc_leito, '') AS desc_leito,
		cad_internacao.dt_entrada
	FROM cad_internacao
	JOIN cad_paciente ON cad_internacao.id_paciente = cad_paciente.id_paciente
	WHERE cad_internacao.dt_saida IS NULL`

// RosterStore reads the inpatient roster from the hospital database.
type RosterStore struct {
	DB *gorm.DB
}

func NewRosterStore(db *gorm.DB) *RosterStore {
	return &RosterStore{DB: db}
}

// ActivePatients lists admissions without a discharge date.
func (s *RosterStore) ActivePatients(ctx context.Context) ([]models.PatientRecord, error) {
	var rows []models.PatientRecord
	if err := s.DB.WithContext(ctx).Raw(activePatientsQuery).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
