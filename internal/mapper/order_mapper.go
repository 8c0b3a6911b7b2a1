package mapper

import (
	"time"

	"restaurant-chatbot-be/internal/entity"
	"restaurant-chatbot-be/internal/model"
)

type OrderMapper struct{}

func NewOrderMapper() *OrderMapper {
	return &OrderMapper{}
}

func (m *OrderMapper) ToEntity(o *model.Order) *entity.Order {
	if o == nil {
		return nil
	}

	var updatedAt *time.Time
	if !o.UpdatedAt.IsZero() {
		t := o.UpdatedAt
		updatedAt = &t
	}

	items := make([]*entity.OrderItem, len(o.Items))
	for i := range o.Items {
		items[i] = m.ItemToEntity(&o.Items[i])
	}

	return &entity.Order{
		Id:            o.Id,
		SessionId:     o.SessionId,
		Status:        entity.OrderStatus(o.Status),
		TotalPrice:    o.TotalPrice,
		EstimatedTime: o.EstimatedTime,
		Items:         items,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     updatedAt,
	}
}

func (m *OrderMapper) ToModel(o *entity.Order) *model.Order {
	if o == nil {
		return nil
	}

	var updatedAt time.Time
	if o.UpdatedAt != nil {
		updatedAt = *o.UpdatedAt
	}

	items := make([]model.OrderItem, 0, len(o.Items))
	for _, it := range o.Items {
		if it != nil {
			items = append(items, *m.ItemToModel(it))
		}
	}

	return &model.Order{
		Id:            o.Id,
		SessionId:     o.SessionId,
		Status:        string(o.Status),
		TotalPrice:    o.TotalPrice,
		EstimatedTime: o.EstimatedTime,
		Items:         items,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     updatedAt,
	}
}

func (m *OrderMapper) ItemToEntity(i *model.OrderItem) *entity.OrderItem {
	if i == nil {
		return nil
	}
	return &entity.OrderItem{
		Id:        i.Id,
		OrderId:   i.OrderId,
		ItemName:  i.ItemName,
		Quantity:  i.Quantity,
		UnitPrice: i.UnitPrice,
	}
}

func (m *OrderMapper) ItemToModel(i *entity.OrderItem) *model.OrderItem {
	if i == nil {
		return nil
	}
	return &model.OrderItem{
		Id:        i.Id,
		OrderId:   i.OrderId,
		ItemName:  i.ItemName,
		Quantity:  i.Quantity,
		UnitPrice: i.UnitPrice,
	}
}

func (m *OrderMapper) ToEntities(orders []*model.Order) []*entity.Order {
	entities := make([]*entity.Order, len(orders))
	for i, o := range orders {
		entities[i] = m.ToEntity(o)
	}
	return entities
}
