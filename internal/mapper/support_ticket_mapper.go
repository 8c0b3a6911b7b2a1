package mapper

import (
	"time"

	"restaurant-chatbot-be/internal/entity"
	"restaurant-chatbot-be/internal/model"

	"gorm.io/datatypes"
)

type SupportTicketMapper struct{}

func NewSupportTicketMapper() *SupportTicketMapper {
	return &SupportTicketMapper{}
}

func (m *SupportTicketMapper) ToEntity(t *model.SupportTicket) *entity.SupportTicket {
	if t == nil {
		return nil
	}

	var updatedAt *time.Time
	if !t.UpdatedAt.IsZero() {
		u := t.UpdatedAt
		updatedAt = &u
	}

	return &entity.SupportTicket{
		Id:            t.Id,
		Reference:     t.Reference,
		SessionId:     t.SessionId,
		CustomerName:  t.CustomerName,
		CustomerPhone: t.CustomerPhone,
		IssueType:     t.IssueType,
		Description:   t.Description,
		Status:        entity.TicketStatus(t.Status),
		Metadata:      map[string]interface{}(t.Metadata),
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     updatedAt,
	}
}

func (m *SupportTicketMapper) ToModel(t *entity.SupportTicket) *model.SupportTicket {
	if t == nil {
		return nil
	}

	var updatedAt time.Time
	if t.UpdatedAt != nil {
		updatedAt = *t.UpdatedAt
	}

	return &model.SupportTicket{
		Id:            t.Id,
		Reference:     t.Reference,
		SessionId:     t.SessionId,
		CustomerName:  t.CustomerName,
		CustomerPhone: t.CustomerPhone,
		IssueType:     t.IssueType,
		Description:   t.Description,
		Status:        string(t.Status),
		Metadata:      datatypes.JSONMap(t.Metadata),
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     updatedAt,
	}
}
