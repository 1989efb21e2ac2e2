package models

// MenuEntry is one published meal for a given day. The pair (Day, MealSlot)
// is unique; writes for an existing pair update the dishes in place.
type MenuEntry struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Day        string `gorm:"column:dia;type:text;not null;uniqueIndex:idx_cardapio_dia_refeicao" json:"dia"`
	MealSlot   string `gorm:"column:refeicao;type:text;not null;uniqueIndex:idx_cardapio_dia_refeicao" json:"refeicao"`
	MainDish   string `gorm:"column:prato_principal;type:varchar(50)" json:"prato_principal"`
	SideOption string `gorm:"column:opcao;type:varchar(50)" json:"opcao"`
	Garnish    string `gorm:"column:guarnicao;type:varchar(50)" json:"guarnicao"`
	Salad      string `gorm:"column:salada;type:varchar(50)" json:"salada"`
	Juice      string `gorm:"column:suco;type:varchar(50)" json:"suco"`
	Dessert    string `gorm:"column:sobremesa;type:varchar(50)" json:"sobremesa"`
}

func (MenuEntry) TableName() string {
	return "cardapio"
}
