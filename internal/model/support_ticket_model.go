package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type SupportTicket struct {
	Id            uint              `gorm:"primaryKey;autoIncrement"`
	Reference     uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex;default:gen_random_uuid()"`
	SessionId     string            `gorm:"type:varchar(255);index"`
	CustomerName  *string           `gorm:"type:varchar(100)"`
	CustomerPhone *string           `gorm:"type:varchar(20)"`
	IssueType     string            `gorm:"type:varchar(50);not null"`
	Description   string            `gorm:"type:text;not null"`
	Status        string            `gorm:"type:varchar(20);not null;default:'open'"`
	Metadata      datatypes.JSONMap `gorm:"type:jsonb"`
	CreatedAt     time.Time         `gorm:"autoCreateTime"`
	UpdatedAt     time.Time         `gorm:"autoUpdateTime"`
}

func (SupportTicket) TableName() string {
	return "support_tickets"
}
