package implementation

import (
	"context"

	"restaurant-chatbot-be/internal/entity"
	"restaurant-chatbot-be/internal/mapper"
	"restaurant-chatbot-be/internal/model"
	"restaurant-chatbot-be/internal/repository/contract"
	"restaurant-chatbot-be/internal/repository/specification"

	"gorm.io/gorm"
)

type CustomerFeedbackRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CustomerFeedbackMapper
}

func NewCustomerFeedbackRepository(db *gorm.DB) contract.CustomerFeedbackRepository {
	return &CustomerFeedbackRepositoryImpl{
		db:     db,
		mapper: mapper.NewCustomerFeedbackMapper(),
	}
}

func (r *CustomerFeedbackRepositoryImpl) Create(ctx context.Context, feedback *entity.CustomerFeedback) error {
	m := r.mapper.ToModel(feedback)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*feedback = *r.mapper.ToEntity(m)
	return nil
}

func (r *CustomerFeedbackRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CustomerFeedback, error) {
	var models []*model.CustomerFeedback
	query := specification.Apply(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]*entity.CustomerFeedback, len(models))
	for i, m := range models {
		out[i] = r.mapper.ToEntity(m)
	}
	return out, nil
}
