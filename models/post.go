package models

type Post struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Title   string `gorm:"type:varchar(255);not null" json:"title"`
	Author  string `gorm:"type:varchar(255)" json:"author"`
	Content string `gorm:"type:text" json:"content"`
	// Publication day as YYYY-MM-DD, kept as text like the menu days.
	PublishedOn string `gorm:"column:created_at;type:text" json:"created_at"`
}

func (Post) TableName() string {
	return "posts"
}
