package mapper

import (
	"restaurant-chatbot-be/internal/entity"
	"restaurant-chatbot-be/internal/model"

	"gorm.io/datatypes"
)

type CustomerFeedbackMapper struct{}

func NewCustomerFeedbackMapper() *CustomerFeedbackMapper {
	return &CustomerFeedbackMapper{}
}

func (m *CustomerFeedbackMapper) ToEntity(f *model.CustomerFeedback) *entity.CustomerFeedback {
	if f == nil {
		return nil
	}
	return &entity.CustomerFeedback{
		Id:             f.Id,
		SessionId:      f.SessionId,
		CustomerName:   f.CustomerName,
		CustomerPhone:  f.CustomerPhone,
		FeedbackText:   f.FeedbackText,
		SourcePlatform: f.SourcePlatform,
		Metadata:       map[string]interface{}(f.Metadata),
		CreatedAt:      f.CreatedAt,
	}
}

func (m *CustomerFeedbackMapper) ToModel(f *entity.CustomerFeedback) *model.CustomerFeedback {
	if f == nil {
		return nil
	}
	return &model.CustomerFeedback{
		Id:             f.Id,
		SessionId:      f.SessionId,
		CustomerName:   f.CustomerName,
		CustomerPhone:  f.CustomerPhone,
		FeedbackText:   f.FeedbackText,
		SourcePlatform: f.SourcePlatform,
		Metadata:       datatypes.JSONMap(f.Metadata),
		CreatedAt:      f.CreatedAt,
	}
}
