package entity

import "time"

type CustomerFeedback struct {
	Id             uint
	SessionId      string
	CustomerName   *string
	CustomerPhone  *string
	FeedbackText   string
	SourcePlatform string
	Metadata       map[string]interface{}
	CreatedAt      time.Time
}
