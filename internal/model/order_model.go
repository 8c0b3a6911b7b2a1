package model

import (
	"time"
)

type Order struct {
	Id            uint        `gorm:"primaryKey;autoIncrement"`
	SessionId     string      `gorm:"type:varchar(255);index"`
	Status        string      `gorm:"type:varchar(32);not null;default:'Pending'"`
	TotalPrice    float64     `gorm:"type:numeric(10,2);not null;default:0"`
	EstimatedTime *time.Time  `gorm:"type:timestamptz"`
	Items         []OrderItem `gorm:"foreignKey:OrderId;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time   `gorm:"autoCreateTime"`
	UpdatedAt     time.Time   `gorm:"autoUpdateTime"`
}

func (Order) TableName() string {
	return "orders"
}

type OrderItem struct {
	Id        uint    `gorm:"primaryKey;autoIncrement"`
	OrderId   uint    `gorm:"not null;index"`
	ItemName  string  `gorm:"type:varchar(100);not null"`
	Quantity  int     `gorm:"not null"`
	UnitPrice float64 `gorm:"type:numeric(10,2);not null;default:0"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
