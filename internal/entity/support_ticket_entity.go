package entity

import (
	"time"

	"github.com/google/uuid"
)

type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusResolved   TicketStatus = "resolved"
	TicketStatusClosed     TicketStatus = "closed"
)

type SupportTicket struct {
	Id            uint
	Reference     uuid.UUID
	SessionId     string
	CustomerName  *string
	CustomerPhone *string
	IssueType     string
	Description   string
	Status        TicketStatus
	Metadata      map[string]interface{}
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}
