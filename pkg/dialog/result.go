package dialog

import (
	"restaurant-chatbot-be/internal/entity"
	"restaurant-chatbot-be/pkg/heuristic"
)

// ResultKind tags the outcome of a turn.
type ResultKind string

const (
	KindPriceInfo            ResultKind = "price_info"
	KindStockInfo            ResultKind = "stock_info"
	KindProductInfo          ResultKind = "product_info"
	KindOrderCreated         ResultKind = "order_created"
	KindOrderStatus          ResultKind = "order_status"
	KindSupportTicketCreated ResultKind = "support_ticket_created"
	KindFeedbackSubmitted    ResultKind = "feedback_submitted"
	KindFeedbackCancelled    ResultKind = "feedback_cancelled"
	KindSupportCancelled     ResultKind = "support_cancelled"
	KindReservationCancelled ResultKind = "reservation_cancelled"
	KindReservationConfirmed ResultKind = "reservation_confirmed"
	KindPrompt               ResultKind = "prompt"
	KindError                ResultKind = "error"
)

// Slot names a piece of information the engine is asking for.
type Slot string

const (
	SlotGuestCount          Slot = "guest_count"
	SlotReservationDatetime Slot = "reservation_datetime"
	SlotFeedbackName        Slot = "feedback_name"
	SlotFeedbackPhone       Slot = "feedback_phone"
	SlotFeedbackText        Slot = "feedback_text"
	SlotSupportName         Slot = "support_name"
	SlotSupportPhone        Slot = "support_phone"
	SlotSupportIssueType    Slot = "support_issue_type"
	SlotSupportDescription  Slot = "support_description"
	SlotOrderID             Slot = "order_id"
	SlotOrderItems          Slot = "order_items"
)

// PromptReason explains a re-prompt. Empty means a first-time ask.
type PromptReason string

const (
	ReasonNone              PromptReason = ""
	ReasonInvalidGuestCount PromptReason = "invalid_guest_count"
	ReasonInvalidDatetime   PromptReason = "invalid_datetime"
)

// ErrorKind is the user-facing failure taxonomy.
type ErrorKind string

const (
	ErrInvalidOrderID      ErrorKind = "invalid_order_id"
	ErrOrderNotFound       ErrorKind = "order_not_found"
	ErrOrderCreationFailed ErrorKind = "order_creation_failed"
	ErrDatabase            ErrorKind = "database_error"
	ErrItemNotFound        ErrorKind = "item_not_found"
	ErrSupportTicketFailed ErrorKind = "support_ticket_failed"
	ErrReservationFailed   ErrorKind = "reservation_failed"
	ErrFeedbackFailed      ErrorKind = "feedback_failed"
	ErrSystem              ErrorKind = "system_error"
)

type ErrorInfo struct {
	Kind     ErrorKind
	Context  string
	// Terminal means the flow was abandoned and its slots cleared.
	Terminal bool
}

type ReservationSummary struct {
	ID     uint
	Guests int
	Date   string
	Time   string
}

// Result is the abstract outcome of a turn. Only the fields relevant to Kind are set.
type Result struct {
	Kind ResultKind

	Item  *entity.MenuItem
	Order *entity.Order
	Lines []heuristic.OrderLine

	Message     string
	Description string
	Name        *string
	Ticket      *entity.SupportTicket
	Reservation *ReservationSummary

	Slot   Slot
	Reason PromptReason

	Error *ErrorInfo
}

func PriceInfo(item *entity.MenuItem) Result {
	return Result{Kind: KindPriceInfo, Item: item}
}

func StockInfo(item *entity.MenuItem) Result {
	return Result{Kind: KindStockInfo, Item: item}
}

func ProductInfo(item *entity.MenuItem) Result {
	return Result{Kind: KindProductInfo, Item: item}
}

func OrderCreated(order *entity.Order, lines []heuristic.OrderLine, message string) Result {
	return Result{Kind: KindOrderCreated, Order: order, Lines: lines, Message: message}
}

func OrderStatus(order *entity.Order) Result {
	return Result{Kind: KindOrderStatus, Order: order}
}

func SupportTicketCreated(ticket *entity.SupportTicket, description string, name *string) Result {
	return Result{Kind: KindSupportTicketCreated, Ticket: ticket, Description: description, Name: name}
}

func FeedbackSubmitted(name *string) Result {
	return Result{Kind: KindFeedbackSubmitted, Name: name}
}

func ReservationConfirmed(summary ReservationSummary) Result {
	return Result{Kind: KindReservationConfirmed, Reservation: &summary}
}

func Cancelled(kind ResultKind) Result {
	return Result{Kind: kind}
}

func PromptFor(slot Slot) Result {
	return Result{Kind: KindPrompt, Slot: slot}
}

func Reprompt(slot Slot, reason PromptReason) Result {
	return Result{Kind: KindPrompt, Slot: slot, Reason: reason}
}

func Fail(kind ErrorKind, context string) Result {
	return Result{Kind: KindError, Error: &ErrorInfo{Kind: kind, Context: context}}
}

func FailTerminal(kind ErrorKind, context string) Result {
	return Result{Kind: KindError, Error: &ErrorInfo{Kind: kind, Context: context, Terminal: true}}
}

// IsError reports whether the turn ended in a failure.
func (r Result) IsError() bool {
	return r.Kind == KindError
}
