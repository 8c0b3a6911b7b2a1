package mapper

import (
	"time"

	"restaurant-chatbot-be/internal/entity"
	"restaurant-chatbot-be/internal/model"

	"gorm.io/datatypes"
)

type ReservationMapper struct{}

func NewReservationMapper() *ReservationMapper {
	return &ReservationMapper{}
}

func (m *ReservationMapper) ToEntity(r *model.Reservation) *entity.Reservation {
	if r == nil {
		return nil
	}

	var updatedAt *time.Time
	if !r.UpdatedAt.IsZero() {
		t := r.UpdatedAt
		updatedAt = &t
	}

	return &entity.Reservation{
		Id:            r.Id,
		SessionId:     r.SessionId,
		Guests:        r.Guests,
		ReservedFor:   r.ReservedFor,
		RequestedText: r.RequestedText,
		Status:        entity.ReservationStatus(r.Status),
		Metadata:      map[string]interface{}(r.Metadata),
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     updatedAt,
	}
}

func (m *ReservationMapper) ToModel(r *entity.Reservation) *model.Reservation {
	if r == nil {
		return nil
	}

	var updatedAt time.Time
	if r.UpdatedAt != nil {
		updatedAt = *r.UpdatedAt
	}

	return &model.Reservation{
		Id:            r.Id,
		SessionId:     r.SessionId,
		Guests:        r.Guests,
		ReservedFor:   r.ReservedFor,
		RequestedText: r.RequestedText,
		Status:        string(r.Status),
		Metadata:      datatypes.JSONMap(r.Metadata),
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     updatedAt,
	}
}

func (m *ReservationMapper) ToEntities(rs []*model.Reservation) []*entity.Reservation {
	entities := make([]*entity.Reservation, len(rs))
	for i, r := range rs {
		entities[i] = m.ToEntity(r)
	}
	return entities
}
