package models

import "time"

// Protocol is a registered document (PDF) owned by a sector.
type Protocol struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	DisplayName string    `gorm:"column:nome_exibicao;type:varchar(255);not null" json:"nome_exibicao"`
	Code        string    `gorm:"column:codigo_identificacao;type:varchar(100)" json:"codigo_identificacao"`
	File        *string   `gorm:"column:arquivo;type:varchar(255)" json:"arquivo"`
	StoredName  *string   `gorm:"column:nome_salvo;type:varchar(255)" json:"nome_salvo"`
	SectorID    uint      `gorm:"column:setor_responsavel_id;not null" json:"setor_responsavel_id"`
	Sector      Sector    `gorm:"foreignKey:SectorID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"setor"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
}

func (Protocol) TableName() string {
	return "protocolos"
}
