package dialog

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"restaurant-chatbot-be/internal/entity"
	"restaurant-chatbot-be/internal/pkg/logger"
	"restaurant-chatbot-be/internal/repository/memory"
	"restaurant-chatbot-be/pkg/dialog/session"
	"restaurant-chatbot-be/pkg/dialog/state"
	"restaurant-chatbot-be/pkg/heuristic"
	"restaurant-chatbot-be/pkg/store"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

var fixedNow = time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

type fakeStore struct {
	mu sync.Mutex

	menu   map[string]*entity.MenuItem
	orders map[string]*entity.Order
	nextID uint

	orderErr       error
	ticketErr      error
	reservationErr error
	feedbackErr    error
	panicOnStatus  bool

	orderRequests []OrderRequest
	tickets       []SupportTicketRequest
	reservations  []ReservationRequest
	feedback      []FeedbackRequest
	menuLookups   []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		menu: map[string]*entity.MenuItem{
			"zinger_burger": {Id: 1, Name: "zinger_burger", Category: "burgers", Price: 550, InStock: true},
			"kheer":         {Id: 2, Name: "kheer", Category: "desserts", Price: 250, InStock: false},
		},
		orders: map[string]*entity.Order{
			"1019": {Id: 1019, Status: entity.OrderStatusPreparing},
		},
		nextID: 1001,
	}
}

func (f *fakeStore) CreateOrder(ctx context.Context, req OrderRequest) (*entity.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.orderRequests = append(f.orderRequests, req)
	if f.orderErr != nil {
		return nil, f.orderErr
	}
	order := &entity.Order{Id: f.nextID, SessionId: req.SessionID, Status: entity.OrderStatusConfirmed}
	f.orders[strconv.Itoa(int(f.nextID))] = order
	f.nextID++
	return order, nil
}

func (f *fakeStore) GetOrderStatus(ctx context.Context, orderID string) (*entity.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.panicOnStatus {
		panic("connection pool exhausted")
	}
	return f.orders[orderID], nil
}

func (f *fakeStore) GetMenuItemDetails(ctx context.Context, name string) (*entity.MenuItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.menuLookups = append(f.menuLookups, name)
	return f.menu[name], nil
}

func (f *fakeStore) CreateSupportTicket(ctx context.Context, req SupportTicketRequest) (*entity.SupportTicket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tickets = append(f.tickets, req)
	if f.ticketErr != nil {
		return nil, f.ticketErr
	}
	return &entity.SupportTicket{Id: uint(len(f.tickets)), IssueType: req.IssueType, Description: req.Description}, nil
}

func (f *fakeStore) CreateReservation(ctx context.Context, req ReservationRequest) (*entity.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reservations = append(f.reservations, req)
	if f.reservationErr != nil {
		return nil, f.reservationErr
	}
	return &entity.Reservation{Id: 7, Guests: req.Guests, ReservedFor: req.When}, nil
}

func (f *fakeStore) SubmitCustomerFeedback(ctx context.Context, req FeedbackRequest) (*entity.CustomerFeedback, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.feedback = append(f.feedback, req)
	if f.feedbackErr != nil {
		return nil, f.feedbackErr
	}
	return &entity.CustomerFeedback{Id: 1, CustomerName: req.Name, FeedbackText: req.Text}, nil
}

type harness struct {
	t        *testing.T
	engine   *Engine
	sessions *session.Manager
	store    *fakeStore
}

const sid = "abc123"

func newHarness(t *testing.T) *harness {
	t.Helper()
	clock := func() time.Time { return fixedNow }
	st := newFakeStore()
	// A zero purge interval keeps go-cache from starting its janitor goroutine.
	sessions := session.NewManager(memory.NewSessionRepository(time.Hour, 0)).WithClock(clock)
	log := logger.NewNopLogger()
	engine := NewEngine(st, sessions, state.NewManager(log), log, Config{Now: clock})
	return &harness{t: t, engine: engine, sessions: sessions, store: st}
}

func (h *harness) say(text string) Result {
	return h.send(Turn{SessionID: sid, Text: text})
}

func (h *harness) send(turn Turn) Result {
	h.t.Helper()
	if turn.SessionID == "" {
		turn.SessionID = sid
	}
	return h.engine.HandleTurn(context.Background(), turn)
}

func (h *harness) session() *store.Session {
	h.t.Helper()
	s, ok := h.sessions.Snapshot(sid)
	require.True(h.t, ok, "session %q should exist", sid)
	return s
}

func TestReservation_HappyPath(t *testing.T) {
	h := newHarness(t)

	res := h.send(Turn{Intent: IntentMakeReservation, Text: "book a table for 4"})
	assert.Equal(t, PromptFor(SlotReservationDatetime), res)
	assert.Equal(t, store.FlowReservation, h.session().ActiveFlow)

	res = h.say("15 june at 7pm")
	require.Equal(t, KindReservationConfirmed, res.Kind)
	assert.Equal(t, &ReservationSummary{ID: 7, Guests: 4, Date: "Jun 15, 2025", Time: "07:00 PM"}, res.Reservation)

	require.Len(t, h.store.reservations, 1)
	req := h.store.reservations[0]
	assert.Equal(t, 4, req.Guests)
	assert.Equal(t, time.Date(2025, time.June, 15, 19, 0, 0, 0, time.UTC), req.When)
	assert.Equal(t, "15 june at 7pm", req.Requested)

	s := h.session()
	assert.Equal(t, store.FlowNone, s.ActiveFlow)
	assert.Equal(t, store.ReservationSlots{}, s.Reservation)
}

func TestReservation_SingleTurn(t *testing.T) {
	h := newHarness(t)

	res := h.say("I want to book a table for 2 on 15 june at 7pm")
	require.Equal(t, KindReservationConfirmed, res.Kind)
	assert.Equal(t, 2, res.Reservation.Guests)
}

func TestReservation_StructuredParams(t *testing.T) {
	h := newHarness(t)

	res := h.send(Turn{
		Intent: IntentMakeReservation,
		Text:   "reserve a table",
		Params: ResolveParams(map[string]interface{}{
			"guest_count":  float64(3),
			"reserve_date": "2025-06-15T12:00:00+05:00",
			"reserve_time": "2025-06-14T19:30:00+05:00",
		}),
	})
	require.Equal(t, KindReservationConfirmed, res.Kind)
	assert.Equal(t, "Jun 15, 2025", res.Reservation.Date)
	assert.Equal(t, "07:30 PM", res.Reservation.Time)
}

func TestReservation_GuestCountValidation(t *testing.T) {
	tests := []struct {
		name  string
		param string
	}{
		{name: "zero", param: "0"},
		{name: "over the limit", param: "21"},
		{name: "not a number", param: "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.send(Turn{Intent: IntentMakeReservation, Text: "I'd like a reservation"})

			res := h.send(Turn{Text: tt.param, Params: Params{"guest_count": tt.param}})
			assert.Equal(t, Reprompt(SlotGuestCount, ReasonInvalidGuestCount), res)

			s := h.session()
			assert.Nil(t, s.Reservation.Guests)
			assert.Equal(t, 1, s.Reservation.RetryCount)
		})
	}
}

func TestReservation_GuestCountBounds(t *testing.T) {
	for _, g := range []int{1, 20} {
		h := newHarness(t)
		h.send(Turn{Intent: IntentMakeReservation, Text: "reservation please"})

		res := h.send(Turn{Text: strconv.Itoa(g)})
		assert.Equal(t, PromptFor(SlotReservationDatetime), res, "guests=%d", g)
		require.NotNil(t, h.session().Reservation.Guests)
		assert.Equal(t, g, *h.session().Reservation.Guests)
	}
}

func TestReservation_RetryExhaustion(t *testing.T) {
	h := newHarness(t)
	h.send(Turn{Intent: IntentMakeReservation, Text: "book a table"})

	h.say("0 guests")
	h.say("21 people")
	res := h.send(Turn{Text: "lots", Params: Params{"guest_count": "abc"}})

	require.True(t, res.IsError())
	assert.Equal(t, ErrReservationFailed, res.Error.Kind)
	assert.True(t, res.Error.Terminal)
	assert.Equal(t, MaxAttemptsMessage, res.Error.Context)

	s := h.session()
	assert.Equal(t, store.FlowNone, s.ActiveFlow)
	assert.Equal(t, store.ReservationSlots{}, s.Reservation)
	assert.Empty(t, h.store.reservations)
}

func TestReservation_InvalidDatetimeCountsAsRetry(t *testing.T) {
	h := newHarness(t)
	h.say("table for 2 please, I want to book")

	res := h.say("31 february at 7pm")
	assert.Equal(t, Reprompt(SlotReservationDatetime, ReasonInvalidDatetime), res)
	assert.Equal(t, 1, h.session().Reservation.RetryCount)

	res = h.say("whenever suits")
	assert.Equal(t, Reprompt(SlotReservationDatetime, ReasonInvalidDatetime), res)

	res = h.say("sometime soon")
	require.True(t, res.IsError())
	assert.True(t, res.Error.Terminal)
	assert.Empty(t, h.store.reservations)
}

func TestReservation_StoreFailureIsRecoverable(t *testing.T) {
	h := newHarness(t)
	h.store.reservationErr = NewStoreError(ErrReservationFailed, "slot unavailable", nil)

	h.say("book a table for 4")
	res := h.say("15 june at 7pm")

	assert.Equal(t, Fail(ErrReservationFailed, "slot unavailable"), res)
	s := h.session()
	assert.Equal(t, store.FlowReservation, s.ActiveFlow)
	assert.Nil(t, s.Reservation.DatetimeText)
	require.NotNil(t, s.Reservation.Guests)
	assert.Equal(t, 4, *s.Reservation.Guests)
	assert.Equal(t, 1, s.Reservation.RetryCount)

	h.store.reservationErr = nil
	res = h.say("16 june at 8pm")
	assert.Equal(t, KindReservationConfirmed, res.Kind)
}

func TestFeedback_ThreeTurns(t *testing.T) {
	h := newHarness(t)

	res := h.send(Turn{Intent: FeedbackIntentPrefix, Text: "I want to give feedback"})
	assert.Equal(t, PromptFor(SlotFeedbackName), res)

	assert.Equal(t, PromptFor(SlotFeedbackPhone), h.say("Ali"))
	assert.Equal(t, PromptFor(SlotFeedbackText), h.say("03001234567"))

	res = h.say("The nihari was excellent")
	require.Equal(t, KindFeedbackSubmitted, res.Kind)
	require.NotNil(t, res.Name)
	assert.Equal(t, "Ali", *res.Name)

	require.Len(t, h.store.feedback, 1)
	got := h.store.feedback[0]
	assert.Equal(t, "The nihari was excellent", got.Text)
	assert.Equal(t, "03001234567", *got.Phone)

	s := h.session()
	assert.Equal(t, store.FlowNone, s.ActiveFlow)
	assert.Nil(t, s.Feedback.Name)
	assert.Nil(t, s.Feedback.Text)
}

func TestFeedback_ClearsSlotsOnFailure(t *testing.T) {
	h := newHarness(t)
	h.store.feedbackErr = errors.New("connection refused")

	h.send(Turn{Intent: FeedbackIntentPrefix, Text: "feedback"})
	h.say("Ali")
	h.say("skip")
	res := h.say("Too salty")

	require.True(t, res.IsError())
	assert.Equal(t, ErrFeedbackFailed, res.Error.Kind)
	require.Len(t, h.store.feedback, 1)
	assert.Nil(t, h.store.feedback[0].Phone)

	s := h.session()
	assert.Equal(t, store.FlowNone, s.ActiveFlow)
	assert.Equal(t, store.FeedbackSlots{Awaiting: store.AwaitNone}, s.Feedback)
}

func TestFeedback_FastPathAndSkipAction(t *testing.T) {
	h := newHarness(t)

	res := h.send(Turn{
		Intent: FeedbackIntentPrefix,
		Text:   "great experience",
		Params: Params{"name": "Sara", "phone": "0321", "feedback_text": "Loved it"},
	})
	assert.Equal(t, FeedbackSubmitted(store.StringPtr("Sara")), res)
	require.Len(t, h.store.feedback, 1)

	h.send(Turn{Intent: FeedbackIntentPrefix, Text: "feedback"})
	res = h.send(Turn{Intent: FeedbackIntentPrefix + " - skip_name", Text: "skip my name"})
	assert.Equal(t, PromptFor(SlotFeedbackPhone), res)
	assert.Nil(t, h.session().Feedback.Name)
}

func TestFeedback_ImplicitTrigger(t *testing.T) {
	h := newHarness(t)

	res := h.say("the staff was rude today")
	assert.Equal(t, PromptFor(SlotFeedbackName), res)
	assert.Equal(t, store.FlowFeedback, h.session().ActiveFlow)
}

func TestSupport_FastPath(t *testing.T) {
	h := newHarness(t)

	res := h.send(Turn{
		Intent: SupportIntentPrefix,
		Text:   "I need help",
		Params: Params{
			"name":        "Sara",
			"phone":       "0300",
			"issue":       "payment",
			"description": "card declined",
		},
	})

	require.Equal(t, KindSupportTicketCreated, res.Kind)
	assert.Equal(t, "card declined", res.Description)
	require.Len(t, h.store.tickets, 1)
	assert.Equal(t, "payment", h.store.tickets[0].IssueType)
	assert.Equal(t, "Sara", *h.store.tickets[0].Name)
	assert.Equal(t, store.FlowNone, h.session().ActiveFlow)
}

func TestSupport_StagedWithIssueClassification(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, PromptFor(SlotSupportName), h.send(Turn{Intent: SupportIntentPrefix, Text: "contact support"}))
	assert.Equal(t, PromptFor(SlotSupportPhone), h.say("Sara"))
	assert.Equal(t, PromptFor(SlotSupportIssueType), h.say("0300"))

	res := h.send(Turn{Intent: SupportIntentPrefix + " - select_issue", Text: "payment issue"})
	assert.Equal(t, PromptFor(SlotSupportDescription), res)
	require.NotNil(t, h.session().Support.IssueType)
	assert.Equal(t, heuristic.ExtractSupportCategory("payment issue"), *h.session().Support.IssueType)

	res = h.say("I was charged twice")
	require.Equal(t, KindSupportTicketCreated, res.Kind)
	require.Len(t, h.store.tickets, 1)
	assert.Equal(t, "I was charged twice", h.store.tickets[0].Description)
}

func TestSupport_DeviceFailureShortcut(t *testing.T) {
	tests := []struct {
		name      string
		turns     []string
		wantIssue string
	}{
		{
			name:      "awaiting issue type",
			turns:     []string{"Sara", "skip"},
			wantIssue: "device",
		},
		{
			name:      "awaiting description",
			turns:     []string{"Sara", "skip", "website"},
			wantIssue: heuristic.ExtractSupportCategory("website"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.send(Turn{Intent: SupportIntentPrefix, Text: "need support"})
			for _, text := range tt.turns {
				require.Equal(t, KindPrompt, h.say(text).Kind)
			}

			res := h.say("my device is not working")
			require.Equal(t, KindSupportTicketCreated, res.Kind)
			require.Len(t, h.store.tickets, 1)

			ticket := h.store.tickets[0]
			assert.Equal(t, "Sara", *ticket.Name)
			assert.Nil(t, ticket.Phone)
			assert.Equal(t, tt.wantIssue, ticket.IssueType)
			assert.Equal(t, "my device is not working", ticket.Description)
			assert.Equal(t, store.FlowNone, h.session().ActiveFlow)
		})
	}
}

func TestSupport_ImplicitDeviceFailureStartsAtName(t *testing.T) {
	h := newHarness(t)

	res := h.say("my device is not working")
	assert.Equal(t, PromptFor(SlotSupportName), res)
	assert.Empty(t, h.store.tickets)
}

func TestSupport_FailureClearsSlots(t *testing.T) {
	h := newHarness(t)
	h.store.ticketErr = errors.New("insert failed")

	res := h.send(Turn{
		Intent: SupportIntentPrefix,
		Params: Params{"name": "Sara", "phone": "0300", "issue": "app", "description": "crash"},
	})

	assert.Equal(t, Fail(ErrSupportTicketFailed, "insert failed"), res)
	assert.Equal(t, store.SupportSlots{Awaiting: store.AwaitNone}, h.session().Support)
}

func TestCancel(t *testing.T) {
	tests := []struct {
		name  string
		start Turn
		stop  Turn
		want  ResultKind
	}{
		{
			name:  "reservation by utterance",
			start: Turn{Intent: IntentMakeReservation, Text: "book a table"},
			stop:  Turn{Text: "never mind"},
			want:  KindReservationCancelled,
		},
		{
			name:  "feedback by utterance",
			start: Turn{Intent: FeedbackIntentPrefix, Text: "feedback"},
			stop:  Turn{Text: "cancel"},
			want:  KindFeedbackCancelled,
		},
		{
			name:  "support by intent",
			start: Turn{Intent: SupportIntentPrefix, Text: "help"},
			stop:  Turn{Intent: SupportIntentPrefix + " - cancel", Text: "forget about the ticket"},
			want:  KindSupportCancelled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.send(tt.start)

			res := h.send(tt.stop)
			assert.Equal(t, tt.want, res.Kind)

			s := h.session()
			assert.Equal(t, store.FlowNone, s.ActiveFlow)
			assert.Equal(t, store.ReservationSlots{}, s.Reservation)
		})
	}
}

func TestFreeTextStartingWithCancelWordIsAnAnswer(t *testing.T) {
	t.Run("feedback text", func(t *testing.T) {
		h := newHarness(t)
		h.send(Turn{Intent: FeedbackIntentPrefix, Text: "feedback"})
		h.say("Ali")
		h.say("03001234567")

		res := h.say("stop adding so much salt to the biryani")
		require.Equal(t, KindFeedbackSubmitted, res.Kind)
		require.Len(t, h.store.feedback, 1)
		assert.Equal(t, "stop adding so much salt to the biryani", h.store.feedback[0].Text)
	})

	t.Run("support description", func(t *testing.T) {
		h := newHarness(t)
		h.send(Turn{Intent: SupportIntentPrefix, Text: "contact support"})
		h.say("Sara")
		h.say("0300")
		h.send(Turn{Intent: SupportIntentPrefix + " - select_issue", Text: "payment issue"})

		res := h.say("cancel button on the payment page does nothing")
		require.Equal(t, KindSupportTicketCreated, res.Kind)
		require.Len(t, h.store.tickets, 1)
		assert.Equal(t, "cancel button on the payment page does nothing", h.store.tickets[0].Description)
	})
}

func TestReservation_DateDayIsNotAGuestCount(t *testing.T) {
	h := newHarness(t)

	res := h.say("I'd like to book for 15 march 7pm")
	assert.Equal(t, PromptFor(SlotGuestCount), res)

	s := h.session()
	assert.Equal(t, store.FlowReservation, s.ActiveFlow)
	assert.Nil(t, s.Reservation.Guests)
	assert.Empty(t, h.store.reservations)
}

func TestExplicitReservationOverridesFeedback(t *testing.T) {
	h := newHarness(t)
	h.send(Turn{Intent: FeedbackIntentPrefix, Text: "feedback"})
	h.say("Ali")

	res := h.send(Turn{Intent: IntentMakeReservation, Text: "book a table for 2"})
	assert.Equal(t, PromptFor(SlotReservationDatetime), res)

	s := h.session()
	assert.Equal(t, store.FlowReservation, s.ActiveFlow)
	assert.Nil(t, s.Feedback.Name)
}

func TestOrderStatus(t *testing.T) {
	h := newHarness(t)

	res := h.say("status of order #1019")
	require.Equal(t, KindOrderStatus, res.Kind)
	assert.Equal(t, entity.OrderStatusPreparing, res.Order.Status)

	res = h.say("status of order 4040")
	assert.Equal(t, Fail(ErrOrderNotFound, "4040"), res)
}

func TestOrderStatus_AwaitsID(t *testing.T) {
	h := newHarness(t)

	res := h.send(Turn{Intent: IntentCheckOrderStatus, Text: "where is my order"})
	assert.Equal(t, PromptFor(SlotOrderID), res)
	assert.True(t, h.session().AwaitingOrderID)

	res = h.say("it is 12")
	assert.Equal(t, Fail(ErrInvalidOrderID, "it is 12"), res)
	assert.True(t, h.session().AwaitingOrderID)

	res = h.say("1019")
	assert.Equal(t, KindOrderStatus, res.Kind)
	assert.False(t, h.session().AwaitingOrderID)
}

func TestOrderStatus_ReservationClearsAwaitedID(t *testing.T) {
	h := newHarness(t)
	h.send(Turn{Intent: IntentCheckOrderStatus, Text: "track my order"})

	res := h.say("actually I need a reservation for 3")
	assert.Equal(t, PromptFor(SlotReservationDatetime), res)

	s := h.session()
	assert.False(t, s.AwaitingOrderID)
	assert.Equal(t, store.FlowReservation, s.ActiveFlow)
}

func TestPlaceOrder(t *testing.T) {
	h := newHarness(t)

	res := h.send(Turn{Intent: IntentPlaceOrder, Text: "I want 2 chicken biryani and 1 pepsi"})
	require.Equal(t, KindOrderCreated, res.Kind)
	assert.Equal(t, uint(1001), res.Order.Id)

	want := []heuristic.OrderLine{{Item: "chicken_biryani", Quantity: 2}, {Item: "pepsi", Quantity: 1}}
	if diff := cmp.Diff(want, res.Lines); diff != "" {
		t.Errorf("order lines mismatch (-want +got):\n%s", diff)
	}
	require.Len(t, h.store.orderRequests, 1)
	assert.Equal(t, sid, h.store.orderRequests[0].SessionID)
}

func TestPlaceOrder_NoItems(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, PromptFor(SlotOrderItems), h.send(Turn{Intent: IntentPlaceOrder, Text: "I want to order"}))
	assert.Equal(t, PromptFor(SlotOrderItems), h.say("hello"))
	assert.Empty(t, h.store.orderRequests)
}

func TestPlaceOrder_StoreErrors(t *testing.T) {
	h := newHarness(t)

	h.store.orderErr = NewStoreError(ErrDatabase, "database unavailable", nil)
	res := h.say("I want 1 naan")
	assert.Equal(t, Fail(ErrDatabase, "database unavailable"), res)

	h.store.orderErr = errors.New("boom")
	res = h.say("I want 1 naan")
	assert.Equal(t, ErrOrderCreationFailed, res.Error.Kind)
}

func TestMenuQueries(t *testing.T) {
	h := newHarness(t)

	res := h.say("how much is the zinger burger")
	require.Equal(t, KindPriceInfo, res.Kind)
	assert.Equal(t, 550.0, res.Item.Price)

	res = h.say("is kheer available")
	require.Equal(t, KindStockInfo, res.Kind)
	assert.False(t, res.Item.InStock)

	res = h.send(Turn{Intent: IntentProductDetails, Text: "tell me about zinger", Params: Params{"dish": "zinger"}})
	assert.Equal(t, KindProductInfo, res.Kind)

	res = h.say("how much is the kulfi")
	require.True(t, res.IsError())
	assert.Equal(t, ErrItemNotFound, res.Error.Kind)
}

func TestPanicBecomesSystemError(t *testing.T) {
	h := newHarness(t)
	h.store.panicOnStatus = true

	res := h.say("status of order 1019")
	assert.Equal(t, Fail(ErrSystem, ""), res)

	h.store.panicOnStatus = false
	assert.Equal(t, KindOrderStatus, h.say("status of order 1019").Kind)
}

func TestDefaultSessionID(t *testing.T) {
	h := newHarness(t)

	h.engine.HandleTurn(context.Background(), Turn{Text: "hello"})
	_, ok := h.sessions.Snapshot(session.DefaultID)
	assert.True(t, ok)
}

func TestConcurrentTurnsAreSerialized(t *testing.T) {
	defer goleak.VerifyNone(t)

	h := newHarness(t)
	const turns = 50

	var wg sync.WaitGroup
	for i := 0; i < turns; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h.engine.HandleTurn(context.Background(), Turn{SessionID: sid, Text: "hello"})
		}()
	}
	wg.Wait()

	assert.Equal(t, turns, h.session().TurnCount)
}
