package implementation

import (
	"context"
	"errors"

	"restaurant-chatbot-be/internal/entity"
	"restaurant-chatbot-be/internal/mapper"
	"restaurant-chatbot-be/internal/model"
	"restaurant-chatbot-be/internal/repository/contract"
	"restaurant-chatbot-be/internal/repository/specification"

	"gorm.io/gorm"
)

type ReservationRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ReservationMapper
}

func NewReservationRepository(db *gorm.DB) contract.ReservationRepository {
	return &ReservationRepositoryImpl{
		db:     db,
		mapper: mapper.NewReservationMapper(),
	}
}

func (r *ReservationRepositoryImpl) Create(ctx context.Context, reservation *entity.Reservation) error {
	m := r.mapper.ToModel(reservation)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*reservation = *r.mapper.ToEntity(m)
	return nil
}

func (r *ReservationRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Reservation, error) {
	var m model.Reservation
	query := specification.Apply(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ReservationRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Reservation, error) {
	var models []*model.Reservation
	query := specification.Apply(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
