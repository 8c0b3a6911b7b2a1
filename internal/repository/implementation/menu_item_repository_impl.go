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
	"gorm.io/gorm/clause"
)

type MenuItemRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.MenuItemMapper
}

func NewMenuItemRepository(db *gorm.DB) contract.MenuItemRepository {
	return &MenuItemRepositoryImpl{
		db:     db,
		mapper: mapper.NewMenuItemMapper(),
	}
}

func (r *MenuItemRepositoryImpl) Upsert(ctx context.Context, item *entity.MenuItem) error {
	m := r.mapper.ToModel(item)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"category", "description", "price", "in_stock", "updated_at"}),
	}).Create(m).Error
	if err != nil {
		return err
	}
	*item = *r.mapper.ToEntity(m)
	return nil
}

func (r *MenuItemRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.MenuItem, error) {
	var m model.MenuItem
	query := specification.Apply(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *MenuItemRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.MenuItem, error) {
	var models []*model.MenuItem
	query := specification.Apply(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *MenuItemRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := specification.Apply(r.db.WithContext(ctx).Model(&model.MenuItem{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
