package dto

import "time"

type SessionResponse struct {
	Id              string                  `json:"id"`
	ActiveFlow      string                  `json:"active_flow"`
	AwaitingOrderId bool                    `json:"awaiting_order_id"`
	Reservation     ReservationSlotResponse `json:"reservation"`
	Feedback        FeedbackSlotResponse    `json:"feedback"`
	Support         SupportSlotResponse     `json:"support"`
	LastIntent      string                  `json:"last_intent"`
	TurnCount       int                     `json:"turn_count"`
	CreatedAt       time.Time               `json:"created_at"`
	UpdatedAt       time.Time               `json:"updated_at"`
}

type ReservationSlotResponse struct {
	Guests     *int    `json:"guests"`
	Datetime   *string `json:"datetime"`
	RetryCount int     `json:"retry_count"`
}

type FeedbackSlotResponse struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Text     *string `json:"text"`
	Awaiting string  `json:"awaiting"`
}

type SupportSlotResponse struct {
	Name        *string `json:"name"`
	Phone       *string `json:"phone"`
	IssueType   *string `json:"issue_type"`
	Description *string `json:"description"`
	Awaiting    string  `json:"awaiting"`
}

type HealthResponse struct {
	Status         string `json:"status"`
	Database       string `json:"database"`
	ActiveSessions int    `json:"active_sessions"`
	FeedClients    int    `json:"feed_clients"`
}
