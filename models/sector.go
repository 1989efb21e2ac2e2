package models

type Sector struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"column:nome;type:varchar(255);not null" json:"nome"`
}

func (Sector) TableName() string {
	return "setores"
}
