package models

import "time"

// PatientRecord is one active admission read from the hospital database
// (cad_internacao joined with cad_paciente). Read-only.
type PatientRecord struct {
	DocRH      string     `gorm:"column:doc_rh"`
	FullName   string     `gorm:"column:nome_completo"`
	BirthDate  *time.Time `gorm:"column:dt_nascimento"`
	Specialty  string     `gorm:"column:desc_especialidade"`
	Clinic     string     `gorm:"column:desc_clinica"`
	Bed        string     `gorm:"column:desc_leito"`
	AdmittedAt *time.Time `gorm:"column:dt_entrada"`
}
