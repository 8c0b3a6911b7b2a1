package implementation

import (
	"context"
	"errors"

	"restaurant-chatbot-be/internal/entity"
	"restaurant-chatbot-be/internal/mapper"
	"restaurant-chatbot-be/internal/model"
	"restaurant-chatbot-be/internal/repository/contract"
	"restaurant-chatbot-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SupportTicketRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SupportTicketMapper
}

func NewSupportTicketRepository(db *gorm.DB) contract.SupportTicketRepository {
	return &SupportTicketRepositoryImpl{
		db:     db,
		mapper: mapper.NewSupportTicketMapper(),
	}
}

func (r *SupportTicketRepositoryImpl) Create(ctx context.Context, ticket *entity.SupportTicket) error {
	if ticket.Reference == uuid.Nil {
		ticket.Reference = uuid.New()
	}
	m := r.mapper.ToModel(ticket)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*ticket = *r.mapper.ToEntity(m)
	return nil
}

func (r *SupportTicketRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.SupportTicket, error) {
	var m model.SupportTicket
	query := specification.Apply(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}
