package model

import (
	"time"

	"gorm.io/datatypes"
)

type CustomerFeedback struct {
	Id             uint              `gorm:"primaryKey;autoIncrement"`
	SessionId      string            `gorm:"type:varchar(255);index"`
	CustomerName   *string           `gorm:"type:varchar(100)"`
	CustomerPhone  *string           `gorm:"type:varchar(20)"`
	FeedbackText   string            `gorm:"type:text;not null"`
	SourcePlatform string            `gorm:"type:varchar(50);not null;default:'dialogflow'"`
	Metadata       datatypes.JSONMap `gorm:"type:jsonb"`
	CreatedAt      time.Time         `gorm:"autoCreateTime"`
}

func (CustomerFeedback) TableName() string {
	return "customer_feedback"
}
