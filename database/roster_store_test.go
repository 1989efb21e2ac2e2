package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRosterStoreActivePatients(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, db.Exec(`CREATE TABLE cad_paciente (
		id_paciente INTEGER PRIMARY KEY,
		nome_completo TEXT,
		dt_nascimento DATETIME
	)`).Error)
	require.NoError(t, db.Exec(`CREATE TABLE cad_internacao (
		id_internacao INTEGER PRIMARY KEY,
		id_paciente INTEGER,
		doc_rh TEXT,
		desc_especialidade TEXT,
		desc_clinica TEXT,
		desc_leito TEXT,
		dt_entrada DATETIME,
		dt_saida DATETIME
	)`).Error)

	born := time.Date(1950, time.May, 4, 0, 0, 0, 0, time.UTC)
	admitted := time.Date(2025, time.March, 1, 14, 30, 0, 0, time.UTC)

	require.NoError(t, db.Exec(`INSERT INTO cad_paciente VALUES (1, 'João da Silva', ?), (2, 'Maria Souza', ?)`, born, born).Error)
	require.NoError(t, db.Exec(`INSERT INTO cad_internacao VALUES
		(10, 1, 'RH001', 'Cardiologia', 'Clínica Médica', '101A', ?, NULL),
		(11, 2, 'RH002', NULL, 'Cirurgia', '202B', ?, ?)`, admitted, admitted, admitted).Error)

	patients, err := NewRosterStore(db).ActivePatients(context.Background())
	require.NoError(t, err)
	require.Len(t, patients, 1)

	p := patients[0]
	assert.Equal(t, "RH001", p.DocRH)
	assert.Equal(t, "João da Silva", p.FullName)
	assert.Equal(t, "Clínica Médica", p.Clinic)
	assert.Equal(t, "101A", p.Bed)
	require.NotNil(t, p.AdmittedAt)
	assert.True(t, admitted.Equal(*p.AdmittedAt))
	require.NotNil(t, p.BirthDate)
	assert.True(t, born.Equal(*p.BirthDate))
}
