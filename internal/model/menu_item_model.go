package model

import "time"

type MenuItem struct {
	Id          uint      `gorm:"primaryKey;autoIncrement"`
	Name        string    `gorm:"type:varchar(100);not null;uniqueIndex"`
	Category    string    `gorm:"type:varchar(50);not null;index"`
	Description string    `gorm:"type:text"`
	Price       float64   `gorm:"type:numeric(10,2);not null"`
	InStock     bool      `gorm:"not null;default:true"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (MenuItem) TableName() string {
	return "menu_items"
}
