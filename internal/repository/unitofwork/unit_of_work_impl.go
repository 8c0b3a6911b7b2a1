package unitofwork

import (
	"context"
	"fmt"

	"restaurant-chatbot-be/internal/repository/contract"
	"restaurant-chatbot-be/internal/repository/implementation"

	"gorm.io/gorm"
)

type UnitOfWorkImpl struct {
	db *gorm.DB
	tx *gorm.DB // set between Begin and Commit/Rollback
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &UnitOfWorkImpl{
		db: db,
	}
}

func (u *UnitOfWorkImpl) getDB() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWorkImpl) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}
	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	u.tx = tx
	return nil
}

func (u *UnitOfWorkImpl) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}
	err := u.tx.Commit().Error
	u.tx = nil
	return err
}

// Rollback is safe to defer: after Commit it does nothing.
func (u *UnitOfWorkImpl) Rollback() error {
	if u.tx == nil {
		return nil
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	return err
}

func (u *UnitOfWorkImpl) OrderRepository() contract.OrderRepository {
	return implementation.NewOrderRepository(u.getDB())
}

func (u *UnitOfWorkImpl) MenuItemRepository() contract.MenuItemRepository {
	return implementation.NewMenuItemRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ReservationRepository() contract.ReservationRepository {
	return implementation.NewReservationRepository(u.getDB())
}

func (u *UnitOfWorkImpl) SupportTicketRepository() contract.SupportTicketRepository {
	return implementation.NewSupportTicketRepository(u.getDB())
}

func (u *UnitOfWorkImpl) CustomerFeedbackRepository() contract.CustomerFeedbackRepository {
	return implementation.NewCustomerFeedbackRepository(u.getDB())
}
