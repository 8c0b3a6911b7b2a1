package mapper

import (
	"restaurant-chatbot-be/internal/dto"
	"restaurant-chatbot-be/pkg/store"
)

type SessionMapper struct{}

func NewSessionMapper() *SessionMapper {
	return &SessionMapper{}
}

func (m *SessionMapper) ToResponse(s *store.Session) *dto.SessionResponse {
	if s == nil {
		return nil
	}

	return &dto.SessionResponse{
		Id:              s.ID,
		ActiveFlow:      string(s.ActiveFlow),
		AwaitingOrderId: s.AwaitingOrderID,
		Reservation: dto.ReservationSlotResponse{
			Guests:     s.Reservation.Guests,
			Datetime:   s.Reservation.DatetimeText,
			RetryCount: s.Reservation.RetryCount,
		},
		Feedback: dto.FeedbackSlotResponse{
			Name:     s.Feedback.Name,
			Phone:    s.Feedback.Phone,
			Text:     s.Feedback.Text,
			Awaiting: string(s.Feedback.Awaiting),
		},
		Support: dto.SupportSlotResponse{
			Name:        s.Support.Name,
			Phone:       s.Support.Phone,
			IssueType:   s.Support.IssueType,
			Description: s.Support.Description,
			Awaiting:    string(s.Support.Awaiting),
		},
		LastIntent: s.LastIntent,
		TurnCount:  s.TurnCount,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}
