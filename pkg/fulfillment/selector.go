// Package fulfillment turns dialog results into Dialogflow fulfillment payloads.
package fulfillment

import (
	"fmt"
	"strings"
	"unicode"

	"restaurant-chatbot-be/internal/dto"
	"restaurant-chatbot-be/internal/entity"
	"restaurant-chatbot-be/pkg/dialog"
	"restaurant-chatbot-be/pkg/heuristic"
)

const clockLayout = "03:04 PM"

var statusPhrases = map[entity.OrderStatus]string{
	entity.OrderStatusPending:   "⏳ Awaiting confirmation",
	entity.OrderStatusConfirmed: "✅ Being prepared",
	entity.OrderStatusPreparing: "👨‍🍳 Cooking in progress",
	entity.OrderStatusOnTheWay:  "🛵 Out for delivery",
	entity.OrderStatusDelivered: "🎉 Delivered",
	entity.OrderStatusCancelled: "❌ Cancelled",
}

// Selector picks the reply text and suggestion chips for a Result.
type Selector struct{}

func NewSelector() *Selector {
	return &Selector{}
}

// Render always returns a usable response, including for unknown kinds.
func (s *Selector) Render(res dialog.Result) dto.WebhookResponse {
	switch res.Kind {
	case dialog.KindPriceInfo:
		return s.priceInfo(res.Item)
	case dialog.KindStockInfo:
		return s.stockInfo(res.Item)
	case dialog.KindProductInfo:
		return s.productInfo(res.Item)
	case dialog.KindOrderCreated:
		return s.orderCreated(res)
	case dialog.KindOrderStatus:
		return s.orderStatus(res.Order)
	case dialog.KindSupportTicketCreated:
		return s.ticketCreated(res)
	case dialog.KindFeedbackSubmitted:
		return s.feedbackSubmitted(res.Name)
	case dialog.KindFeedbackCancelled:
		return dto.WebhookResponse{
			FulfillmentText: "No problem, I've discarded your feedback. Anything else I can help with?",
			Payload:         payload(chips(chipPlaceOrder, chipReserve)),
		}
	case dialog.KindSupportCancelled:
		return dto.WebhookResponse{
			FulfillmentText: "Okay, I've cancelled your support request.",
			Payload:         payload(chips(chipPlaceOrder, chipCheckStatus)),
		}
	case dialog.KindReservationCancelled:
		return dto.WebhookResponse{
			FulfillmentText: "Your reservation request has been cancelled.",
			Payload:         payload(chips(chipReserve, chipPlaceOrder)),
		}
	case dialog.KindReservationConfirmed:
		return s.reservationConfirmed(res.Reservation)
	case dialog.KindPrompt:
		return s.prompt(res.Slot, res.Reason)
	case dialog.KindError:
		if res.Error != nil {
			return s.failure(*res.Error)
		}
	}
	return s.failure(dialog.ErrorInfo{Kind: dialog.ErrSystem})
}

func (s *Selector) priceInfo(item *entity.MenuItem) dto.WebhookResponse {
	if item == nil {
		return s.failure(dialog.ErrorInfo{Kind: dialog.ErrItemNotFound})
	}
	text := fmt.Sprintf("💰 Price Information:\n🍽️ Item: %s\n💵 Price: $%.2f\n📦 Category: %s\n\nWould you like to place an order?",
		itemTitle(item.Name), item.Price, item.Category)
	return dto.WebhookResponse{
		FulfillmentText: text,
		Payload:         payload(chips(orderChip(item.Name), chipBackToMenu)),
	}
}

func (s *Selector) stockInfo(item *entity.MenuItem) dto.WebhookResponse {
	if item == nil {
		return s.failure(dialog.ErrorInfo{Kind: dialog.ErrItemNotFound})
	}
	text := fmt.Sprintf("📦 Availability Information:\n🍽️ Item: %s\n🔄 Status: %s\n📦 Category: %s",
		itemTitle(item.Name), stockLabel(item.InStock), item.Category)

	first := chipNotifyMe
	if item.InStock {
		first = orderChip(item.Name)
	}
	return dto.WebhookResponse{
		FulfillmentText: text,
		Payload:         payload(chips(first, chipBackToMenu)),
	}
}

func (s *Selector) productInfo(item *entity.MenuItem) dto.WebhookResponse {
	if item == nil {
		return s.failure(dialog.ErrorInfo{Kind: dialog.ErrItemNotFound})
	}
	var b strings.Builder
	fmt.Fprintf(&b, "ℹ️ Product Information:\n🍽️ Item: %s\n", itemTitle(item.Name))
	if item.Description != "" {
		fmt.Fprintf(&b, "📝 %s\n", item.Description)
	}
	fmt.Fprintf(&b, "💰 Price: $%.2f\n📦 Status: %s\n🍽️ Category: %s\n\nWould you like to place an order?",
		item.Price, stockLabel(item.InStock), item.Category)

	first := chipNotifyMe
	if item.InStock {
		first = orderChip(item.Name)
	}
	return dto.WebhookResponse{
		FulfillmentText: b.String(),
		Payload:         payload(chips(first, chipMoreDetails)),
	}
}

func (s *Selector) orderCreated(res dialog.Result) dto.WebhookResponse {
	if res.Order == nil {
		return s.failure(dialog.ErrorInfo{Kind: dialog.ErrOrderCreationFailed})
	}
	id := res.Order.Id
	items := heuristic.FormatOrderItems(res.Lines)

	lines := []string{fmt.Sprintf("Order #%d confirmed!", id), "Items: " + items}
	text := fmt.Sprintf("🎉 Order #%d confirmed!\n🍽️ Items: %s\n", id, items)
	if eta := res.Order.EstimatedTime; eta != nil {
		ready := eta.Format(clockLayout)
		text += fmt.Sprintf("⏳ Estimated ready by: %s\n", ready)
		lines = append(lines, "Estimated ready by: "+ready)
	}
	text += fmt.Sprintf("🔍 Check status with: 'Status #%d'", id)

	return dto.WebhookResponse{
		FulfillmentText: text,
		Payload: payload(
			info("✅ Order Confirmed", lines...),
			chips(
				chipWith(fmt.Sprintf("🔍 Check order #%d", id), dialog.IntentCheckOrderStatus,
					map[string]string{"order_id": fmt.Sprint(id)}),
				chipPlaceOrder,
			),
		),
	}
}

func (s *Selector) orderStatus(order *entity.Order) dto.WebhookResponse {
	if order == nil {
		return s.failure(dialog.ErrorInfo{Kind: dialog.ErrOrderNotFound})
	}
	status := StatusPhrase(order)
	items := heuristic.FormatOrderItems(orderLines(order))
	if items == "" {
		items = "no items"
	}

	lines := []string{"Status: " + status, "Items: " + items}
	if order.EstimatedTime != nil {
		lines = append(lines, "Estimated: "+order.EstimatedTime.Format(clockLayout))
	}
	return dto.WebhookResponse{
		FulfillmentText: fmt.Sprintf("📦 Order #%d\n%s\n🍽️ Items: %s", order.Id, status, items),
		Payload: payload(
			info(fmt.Sprintf("Order #%d Status", order.Id), lines...),
			chips(chipPlaceOrder, chip("📞 Support", dialog.SupportIntentPrefix)),
		),
	}
}

// StatusPhrase describes an order status for guests. Unknown statuses are
// shown as stored.
func StatusPhrase(order *entity.Order) string {
	phrase, ok := statusPhrases[order.Status]
	if !ok {
		return string(order.Status)
	}
	if order.Status == entity.OrderStatusOnTheWay && order.EstimatedTime != nil {
		phrase += fmt.Sprintf(" (ETA: %s)", order.EstimatedTime.Format(clockLayout))
	}
	return phrase
}

func (s *Selector) ticketCreated(res dialog.Result) dto.WebhookResponse {
	greeting := "🛎️ Support ticket created!"
	if res.Name != nil && *res.Name != "" {
		greeting = fmt.Sprintf("🛎️ Thanks %s, your support ticket has been created!", *res.Name)
	}
	issue := res.Description
	if issue == "" {
		issue = "your issue"
	}

	lines := []string{"Your support ticket has been created", "Issue: " + issue}
	if res.Ticket != nil {
		lines = append(lines, "Reference: "+TicketReference(res.Ticket))
	}
	lines = append(lines, "We'll contact you shortly")

	return dto.WebhookResponse{
		FulfillmentText: fmt.Sprintf("%s\nWe've received your request about: %s\nOur team will contact you soon.", greeting, issue),
		Payload: payload(
			info("✅ Support Request Received", lines...),
			chips(chip("🛒 Place an order", dialog.IntentPlaceOrder), chip("🏠 Back to main menu", "Main_Menu")),
		),
	}
}

// TicketReference is the short code guests quote back to staff.
func TicketReference(t *entity.SupportTicket) string {
	ref := t.Reference.String()
	if i := strings.IndexByte(ref, '-'); i > 0 {
		ref = ref[:i]
	}
	return strings.ToUpper(ref)
}

func (s *Selector) feedbackSubmitted(name *string) dto.WebhookResponse {
	text := "🙏 Thank you! Your feedback has been recorded."
	if name != nil && *name != "" {
		text = fmt.Sprintf("🙏 Thank you, %s! Your feedback has been recorded.", *name)
	}
	return dto.WebhookResponse{
		FulfillmentText: text + " It helps us serve you better.",
		Payload:         payload(chips(chipPlaceOrder, chipReserve)),
	}
}

func (s *Selector) reservationConfirmed(r *dialog.ReservationSummary) dto.WebhookResponse {
	if r == nil {
		return s.failure(dialog.ErrorInfo{Kind: dialog.ErrReservationFailed})
	}
	return dto.WebhookResponse{
		FulfillmentText: fmt.Sprintf("🎉 Reservation confirmed! (ID: #%d)\n👥 Guests: %d\n📅 Date: %s\n⏰ Time: %s\n\nWe'll send a confirmation shortly.",
			r.ID, r.Guests, r.Date, r.Time),
		Payload: payload(
			info("✅ Reservation Confirmed",
				fmt.Sprintf("Reservation #%d confirmed!", r.ID),
				fmt.Sprintf("Guests: %d", r.Guests),
				"Date: "+r.Date,
				"Time: "+r.Time,
			),
			chips(chip("📅 View my reservations", "ViewReservations"), chip("🛎️ Special requests", "SpecialRequests")),
		),
	}
}

func stockLabel(inStock bool) string {
	if inStock {
		return "✅ In stock"
	}
	return "❌ Out of stock"
}

func itemTitle(key string) string {
	return titleWords(heuristic.DisplayName(key))
}

func titleWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

func orderLines(order *entity.Order) []heuristic.OrderLine {
	lines := make([]heuristic.OrderLine, 0, len(order.Items))
	for _, it := range order.Items {
		if it == nil {
			continue
		}
		lines = append(lines, heuristic.OrderLine{Item: it.ItemName, Quantity: it.Quantity})
	}
	return lines
}
