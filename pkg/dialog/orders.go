package dialog

import (
	"context"

	"restaurant-chatbot-be/internal/entity"
	"restaurant-chatbot-be/pkg/heuristic"
	"restaurant-chatbot-be/pkg/store"
)

func (e *Engine) menuLookup(ctx context.Context, turn Turn, render func(*entity.MenuItem) Result) Result {
	dish := heuristic.ExtractDishReference(turn.Text)
	if dish == "" {
		dish = heuristic.NormalizeItemName(turn.Params.Get(paramDish...))
	}
	if dish == "" {
		return Fail(ErrItemNotFound, "that item")
	}

	item, err := e.store.GetMenuItemDetails(ctx, dish)
	if err != nil {
		return e.storeFailure("get_menu_item_details", err, ErrDatabase, dish)
	}
	if item == nil {
		return Fail(ErrItemNotFound, dish)
	}
	return render(item)
}

func (e *Engine) orderStatus(ctx context.Context, id string) Result {
	order, err := e.store.GetOrderStatus(ctx, id)
	if err != nil {
		return e.storeFailure("get_order_status", err, ErrDatabase, id)
	}
	if order == nil {
		return Fail(ErrOrderNotFound, id)
	}
	return OrderStatus(order)
}

// awaitedOrderID consumes the reply to an earlier "which order?" prompt.
// Utterances that clearly start something else are left to the later rules.
func (e *Engine) awaitedOrderID(ctx context.Context, s *store.Session, turn Turn) (Result, bool) {
	id := heuristic.ExtractOrderID(turn.Text)
	if id == "" {
		id = turn.Params.Get(paramOrderID...)
	}
	if id != "" {
		s.AwaitingOrderID = false
		return e.orderStatus(ctx, id), true
	}

	if heuristic.MentionsReservation(turn.Text) || IsReservationIntent(turn.Intent) {
		// Handled by the reservation rule, which also clears the flag.
		return Result{}, false
	}
	if turn.Intent == IntentPlaceOrder || IsProductIntent(turn.Intent) ||
		heuristic.ClassifyUtterance(turn.Text) != heuristic.ClassNone ||
		len(heuristic.ExtractOrderLines(turn.Text)) > 0 {
		s.AwaitingOrderID = false
		return Result{}, false
	}

	if heuristic.ContainsDigits(turn.Text) {
		return Fail(ErrInvalidOrderID, turn.Text), true
	}
	return PromptFor(SlotOrderID), true
}

func (e *Engine) checkOrderStatus(ctx context.Context, s *store.Session, turn Turn) Result {
	id := heuristic.ExtractOrderID(turn.Text)
	if id == "" {
		id = turn.Params.Get(paramOrderID...)
	}
	if id == "" {
		s.AwaitingOrderID = true
		return PromptFor(SlotOrderID)
	}
	s.AwaitingOrderID = false
	return e.orderStatus(ctx, id)
}

func (e *Engine) placeOrder(ctx context.Context, s *store.Session, turn Turn) Result {
	lines := heuristic.ExtractOrderLines(turn.Text)
	if len(lines) == 0 {
		if dish := heuristic.NormalizeItemName(turn.Params.Get(paramDish...)); dish != "" {
			lines = []heuristic.OrderLine{{Item: dish, Quantity: 1}}
		}
	}
	if len(lines) == 0 {
		return PromptFor(SlotOrderItems)
	}

	order, err := e.store.CreateOrder(ctx, OrderRequest{SessionID: s.ID, Lines: lines})
	if err != nil {
		return e.storeFailure("create_order", err, ErrOrderCreationFailed, "")
	}
	return OrderCreated(order, lines, "Order created successfully")
}
