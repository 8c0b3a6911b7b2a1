package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	"restaurant-chatbot-be/internal/entity"
	"restaurant-chatbot-be/internal/pkg/logger"
	"restaurant-chatbot-be/internal/repository/contract"
	"restaurant-chatbot-be/internal/repository/specification"
	"restaurant-chatbot-be/internal/repository/unitofwork"
	"restaurant-chatbot-be/pkg/dialog"
	"restaurant-chatbot-be/pkg/events"
	"restaurant-chatbot-be/pkg/heuristic"
	restaurantEvents "restaurant-chatbot-be/pkg/restaurant/events"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memDB backs every fake repository of one test.
type memDB struct {
	menu         []*entity.MenuItem
	orders       map[uint]*entity.Order
	reservations []*entity.Reservation
	tickets      []*entity.SupportTicket
	feedback     []*entity.CustomerFeedback
	nextOrderID  uint
	failWrites   error
	createDelay  time.Duration
	committed    int
	rolledBack   int
}

func newMemDB() *memDB {
	return &memDB{
		menu: []*entity.MenuItem{
			{Id: 1, Name: "chicken_biryani", Category: "rice", Price: 12.5, InStock: true},
			{Id: 2, Name: "pepsi", Category: "drinks", Price: 1.5, InStock: true},
			{Id: 3, Name: "chicken_karahi", Category: "curry", Price: 14, InStock: false},
			{Id: 4, Name: "karahi_special", Category: "curry", Price: 16, InStock: true},
		},
		orders:      map[uint]*entity.Order{},
		nextOrderID: 1001,
	}
}

type fakeFactory struct{ db *memDB }

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUow{db: f.db}
}

type fakeUow struct {
	db     *memDB
	inTx   bool
	staged []*entity.Order
}

func (u *fakeUow) Begin(ctx context.Context) error { u.inTx = true; return nil }

func (u *fakeUow) Commit() error {
	for _, o := range u.staged {
		u.db.orders[o.Id] = o
	}
	u.staged = nil
	u.inTx = false
	u.db.committed++
	return nil
}

func (u *fakeUow) Rollback() error {
	if u.inTx {
		u.staged = nil
		u.inTx = false
		u.db.rolledBack++
	}
	return nil
}

func (u *fakeUow) OrderRepository() contract.OrderRepository { return &fakeOrderRepo{u: u} }
func (u *fakeUow) MenuItemRepository() contract.MenuItemRepository {
	return &fakeMenuRepo{db: u.db}
}
func (u *fakeUow) ReservationRepository() contract.ReservationRepository {
	return &fakeReservationRepo{db: u.db}
}
func (u *fakeUow) SupportTicketRepository() contract.SupportTicketRepository {
	return &fakeTicketRepo{db: u.db}
}
func (u *fakeUow) CustomerFeedbackRepository() contract.CustomerFeedbackRepository {
	return &fakeFeedbackRepo{db: u.db}
}

type fakeMenuRepo struct{ db *memDB }

func (r *fakeMenuRepo) Upsert(ctx context.Context, item *entity.MenuItem) error { return nil }

func (r *fakeMenuRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.MenuItem, error) {
	items, err := r.FindAll(ctx, specs...)
	if err != nil || len(items) == 0 {
		return nil, err
	}
	return items[0], nil
}

func (r *fakeMenuRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.MenuItem, error) {
	out := append([]*entity.MenuItem(nil), r.db.menu...)
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.MenuNameEquals:
			out = filterMenu(out, func(m *entity.MenuItem) bool { return m.Name == s.Name })
		case specification.MenuNamesIn:
			out = filterMenu(out, func(m *entity.MenuItem) bool {
				for _, n := range s.Names {
					if n == m.Name {
						return true
					}
				}
				return false
			})
		case specification.MenuNameLike:
			out = filterMenu(out, func(m *entity.MenuItem) bool { return strings.Contains(m.Name, s.Fragment) })
			sort.SliceStable(out, func(i, j int) bool {
				pi, pj := strings.HasPrefix(out[i].Name, s.Fragment), strings.HasPrefix(out[j].Name, s.Fragment)
				if pi != pj {
					return pi
				}
				return len(out[i].Name) < len(out[j].Name)
			})
		}
	}
	return out, nil
}

func (r *fakeMenuRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	items, err := r.FindAll(ctx, specs...)
	return int64(len(items)), err
}

func filterMenu(in []*entity.MenuItem, keep func(*entity.MenuItem) bool) []*entity.MenuItem {
	var out []*entity.MenuItem
	for _, m := range in {
		if keep(m) {
			out = append(out, m)
		}
	}
	return out
}

type fakeOrderRepo struct{ u *fakeUow }

func (r *fakeOrderRepo) Create(ctx context.Context, order *entity.Order) error {
	if r.u.db.failWrites != nil {
		return r.u.db.failWrites
	}
	time.Sleep(r.u.db.createDelay)
	order.Id = r.u.db.nextOrderID
	r.u.db.nextOrderID++
	order.CreatedAt = time.Now()
	r.u.staged = append(r.u.staged, order)
	return nil
}

func (r *fakeOrderRepo) UpdateStatus(ctx context.Context, id uint, status entity.OrderStatus) error {
	return nil
}

func (r *fakeOrderRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Order, error) {
	for _, spec := range specs {
		if s, ok := spec.(specification.ByID); ok {
			return r.u.db.orders[s.ID], nil
		}
	}
	return nil, nil
}

func (r *fakeOrderRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Order, error) {
	return nil, nil
}

type fakeReservationRepo struct{ db *memDB }

func (r *fakeReservationRepo) Create(ctx context.Context, res *entity.Reservation) error {
	if r.db.failWrites != nil {
		return r.db.failWrites
	}
	res.Id = uint(len(r.db.reservations) + 1)
	r.db.reservations = append(r.db.reservations, res)
	return nil
}

func (r *fakeReservationRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Reservation, error) {
	return nil, nil
}

func (r *fakeReservationRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Reservation, error) {
	return r.db.reservations, nil
}

type fakeTicketRepo struct{ db *memDB }

func (r *fakeTicketRepo) Create(ctx context.Context, t *entity.SupportTicket) error {
	if r.db.failWrites != nil {
		return r.db.failWrites
	}
	t.Id = uint(len(r.db.tickets) + 1)
	r.db.tickets = append(r.db.tickets, t)
	return nil
}

func (r *fakeTicketRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.SupportTicket, error) {
	return nil, nil
}

type fakeFeedbackRepo struct{ db *memDB }

func (r *fakeFeedbackRepo) Create(ctx context.Context, f *entity.CustomerFeedback) error {
	if r.db.failWrites != nil {
		return r.db.failWrites
	}
	f.Id = uint(len(r.db.feedback) + 1)
	r.db.feedback = append(r.db.feedback, f)
	return nil
}

func (r *fakeFeedbackRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CustomerFeedback, error) {
	return r.db.feedback, nil
}

type capturedEvents struct{ got []events.Event }

func (c *capturedEvents) Publish(ctx context.Context, event events.Event) error {
	c.got = append(c.got, event)
	return nil
}

func newTestRestaurant(db *memDB) (*restaurantService, *capturedEvents) {
	sink := &capturedEvents{}
	log := logger.NewNopLogger()
	svc := NewRestaurantService(&fakeFactory{db: db}, restaurantEvents.NewPublisherWithSink(sink, log), log, "dialogflow", nil).(*restaurantService)
	svc.now = func() time.Time { return time.Date(2025, time.March, 10, 19, 0, 0, 0, time.UTC) }
	return svc, sink
}

func TestRestaurantService_CreateOrder(t *testing.T) {
	db := newMemDB()
	svc, sink := newTestRestaurant(db)

	order, err := svc.CreateOrder(context.Background(), dialog.OrderRequest{
		SessionID: "abc123",
		Lines:     []heuristic.OrderLine{{Item: "chicken_biryani", Quantity: 2}, {Item: "pepsi", Quantity: 1}},
	})
	require.NoError(t, err)

	assert.EqualValues(t, 1001, order.Id)
	assert.Equal(t, entity.OrderStatusConfirmed, order.Status)
	assert.InDelta(t, 26.5, order.TotalPrice, 0.001)
	require.NotNil(t, order.EstimatedTime)
	wait := order.EstimatedTime.Sub(svc.now())
	assert.GreaterOrEqual(t, wait, 20*time.Minute)
	assert.LessOrEqual(t, wait, 40*time.Minute)
	assert.Equal(t, 1, db.committed)

	require.Len(t, sink.got, 1)
	assert.Equal(t, restaurantEvents.OrderCreated, sink.got[0].EventType())

	second, err := svc.CreateOrder(context.Background(), dialog.OrderRequest{Lines: []heuristic.OrderLine{{Item: "naan", Quantity: 1}}})
	require.NoError(t, err)
	assert.EqualValues(t, 1002, second.Id)
	assert.Zero(t, second.TotalPrice)
}

func TestRestaurantService_CreateOrderFailures(t *testing.T) {
	db := newMemDB()
	svc, sink := newTestRestaurant(db)

	_, err := svc.CreateOrder(context.Background(), dialog.OrderRequest{})
	var se *dialog.StoreError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, dialog.ErrOrderCreationFailed, se.Kind)

	db.failWrites = &pgconn.PgError{Code: "23505", Message: "duplicate key"}
	_, err = svc.CreateOrder(context.Background(), dialog.OrderRequest{Lines: []heuristic.OrderLine{{Item: "pepsi", Quantity: 1}}})
	require.ErrorAs(t, err, &se)
	assert.Equal(t, dialog.ErrOrderCreationFailed, se.Kind)
	assert.Contains(t, se.Message, "23505")
	assert.Equal(t, 1, db.rolledBack)
	assert.Empty(t, sink.got)
}

func TestRestaurantService_GetOrderStatus(t *testing.T) {
	db := newMemDB()
	db.orders[1019] = &entity.Order{Id: 1019, Status: entity.OrderStatusPreparing}
	svc, _ := newTestRestaurant(db)

	order, err := svc.GetOrderStatus(context.Background(), "#1019")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPreparing, order.Status)

	order, err = svc.GetOrderStatus(context.Background(), "4040")
	require.NoError(t, err)
	assert.Nil(t, order)

	_, err = svc.GetOrderStatus(context.Background(), "abc")
	var se *dialog.StoreError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, dialog.ErrInvalidOrderID, se.Kind)

	order, err = svc.GetOrderStatus(context.Background(), "99999999999999")
	require.NoError(t, err)
	assert.Nil(t, order)
}

func TestRestaurantService_GetMenuItemDetails(t *testing.T) {
	svc, _ := newTestRestaurant(newMemDB())
	ctx := context.Background()

	item, err := svc.GetMenuItemDetails(ctx, "Chicken Biryani")
	require.NoError(t, err)
	assert.Equal(t, "chicken_biryani", item.Name)

	// Partial match prefers names starting with the fragment.
	item, err = svc.GetMenuItemDetails(ctx, "karahi")
	require.NoError(t, err)
	assert.Equal(t, "karahi_special", item.Name)

	item, err = svc.GetMenuItemDetails(ctx, "unicorn_steak")
	require.NoError(t, err)
	assert.Nil(t, item)
}

func TestRestaurantService_TicketReservationFeedback(t *testing.T) {
	db := newMemDB()
	svc, sink := newTestRestaurant(db)
	ctx := context.Background()
	name := "Sara"

	ticket, err := svc.CreateSupportTicket(ctx, dialog.SupportTicketRequest{SessionID: "abc123", Name: &name, IssueType: "payment", Description: "card declined"})
	require.NoError(t, err)
	assert.Equal(t, entity.TicketStatusOpen, ticket.Status)
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", ticket.Reference.String())

	when := time.Date(2025, time.June, 15, 19, 0, 0, 0, time.UTC)
	res, err := svc.CreateReservation(ctx, dialog.ReservationRequest{SessionID: "abc123", Guests: 4, When: when, Requested: "June 15 at 7 PM"})
	require.NoError(t, err)
	assert.Equal(t, entity.ReservationStatusPending, res.Status)
	assert.Equal(t, when, res.ReservedFor)

	fb, err := svc.SubmitCustomerFeedback(ctx, dialog.FeedbackRequest{SessionID: "abc123", Text: "great food"})
	require.NoError(t, err)
	assert.Equal(t, "dialogflow", fb.SourcePlatform)

	types := make([]string, 0, len(sink.got))
	for _, e := range sink.got {
		types = append(types, e.EventType())
	}
	assert.Equal(t, []string{
		restaurantEvents.SupportTicketCreated,
		restaurantEvents.ReservationCreated,
		restaurantEvents.FeedbackSubmitted,
	}, types)
}

func TestRestaurantService_WriteFailuresAreClassified(t *testing.T) {
	db := newMemDB()
	db.failWrites = errors.New("connection reset")
	svc, _ := newTestRestaurant(db)
	ctx := context.Background()

	var se *dialog.StoreError

	_, err := svc.CreateSupportTicket(ctx, dialog.SupportTicketRequest{IssueType: "other"})
	require.ErrorAs(t, err, &se)
	assert.Equal(t, dialog.ErrSupportTicketFailed, se.Kind)

	_, err = svc.CreateReservation(ctx, dialog.ReservationRequest{Guests: 2, When: time.Now()})
	require.ErrorAs(t, err, &se)
	assert.Equal(t, dialog.ErrReservationFailed, se.Kind)

	_, err = svc.CreateReservation(ctx, dialog.ReservationRequest{Guests: 2, Requested: "someday"})
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "Invalid date format: someday", se.Message)

	_, err = svc.SubmitCustomerFeedback(ctx, dialog.FeedbackRequest{Text: "x"})
	require.ErrorAs(t, err, &se)
	assert.Equal(t, dialog.ErrFeedbackFailed, se.Kind)

	db.failWrites = context.DeadlineExceeded
	_, err = svc.SubmitCustomerFeedback(ctx, dialog.FeedbackRequest{Text: "x"})
	require.ErrorAs(t, err, &se)
	assert.Equal(t, dialog.ErrDatabase, se.Kind)
}
