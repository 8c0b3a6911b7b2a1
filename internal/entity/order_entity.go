package entity

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusConfirmed OrderStatus = "Confirmed"
	OrderStatusPreparing OrderStatus = "Preparing"
	OrderStatusOnTheWay  OrderStatus = "On the way"
	OrderStatusDelivered OrderStatus = "Delivered"
	OrderStatusCancelled OrderStatus = "Cancelled"
)

type Order struct {
	Id            uint
	SessionId     string
	Status        OrderStatus
	TotalPrice    float64
	EstimatedTime *time.Time
	Items         []*OrderItem
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}

type OrderItem struct {
	Id        uint
	OrderId   uint
	ItemName  string
	Quantity  int
	UnitPrice float64
}
