package mapper

import (
	"restaurant-chatbot-be/internal/entity"
	"restaurant-chatbot-be/internal/model"
)

type MenuItemMapper struct{}

func NewMenuItemMapper() *MenuItemMapper {
	return &MenuItemMapper{}
}

func (m *MenuItemMapper) ToEntity(mi *model.MenuItem) *entity.MenuItem {
	if mi == nil {
		return nil
	}
	return &entity.MenuItem{
		Id:          mi.Id,
		Name:        mi.Name,
		Category:    mi.Category,
		Description: mi.Description,
		Price:       mi.Price,
		InStock:     mi.InStock,
	}
}

func (m *MenuItemMapper) ToModel(mi *entity.MenuItem) *model.MenuItem {
	if mi == nil {
		return nil
	}
	return &model.MenuItem{
		Id:          mi.Id,
		Name:        mi.Name,
		Category:    mi.Category,
		Description: mi.Description,
		Price:       mi.Price,
		InStock:     mi.InStock,
	}
}

func (m *MenuItemMapper) ToEntities(items []*model.MenuItem) []*entity.MenuItem {
	entities := make([]*entity.MenuItem, len(items))
	for i, mi := range items {
		entities[i] = m.ToEntity(mi)
	}
	return entities
}
