package model

import (
	"time"

	"gorm.io/datatypes"
)

type Reservation struct {
	Id            uint              `gorm:"primaryKey;autoIncrement"`
	SessionId     string            `gorm:"type:varchar(255);index"`
	Guests        int               `gorm:"not null;check:guests BETWEEN 1 AND 20"`
	ReservedFor   time.Time         `gorm:"type:timestamptz;not null;index"`
	RequestedText string            `gorm:"type:text"`
	Status        string            `gorm:"type:varchar(32);not null;default:'pending'"`
	Metadata      datatypes.JSONMap `gorm:"type:jsonb"`
	CreatedAt     time.Time         `gorm:"autoCreateTime"`
	UpdatedAt     time.Time         `gorm:"autoUpdateTime"`
}

func (Reservation) TableName() string {
	return "reservations"
}
