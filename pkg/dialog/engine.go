package dialog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"restaurant-chatbot-be/internal/pkg/logger"
	"restaurant-chatbot-be/pkg/dialog/session"
	"restaurant-chatbot-be/pkg/dialog/state"
	"restaurant-chatbot-be/pkg/heuristic"
	"restaurant-chatbot-be/pkg/store"
)

type Config struct {
	// MaxRetries is how many invalid reservation submissions are re-prompted
	// before the flow is abandoned.
	MaxRetries  int
	MinGuests   int
	MaxGuests   int
	DefaultYear int
	Now         func() time.Time
}

func (c Config) withDefaults() Config {
	if c.MaxRetries <= 0 {
		c.MaxRetries = 2
	}
	if c.MinGuests <= 0 {
		c.MinGuests = 1
	}
	if c.MaxGuests <= 0 {
		c.MaxGuests = 20
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	return c
}

// Engine runs one turn at a time per session against the flow machines.
type Engine struct {
	store    Store
	sessions *session.Manager
	flows    *state.Manager
	logger   logger.ILogger
	cfg      Config
}

func NewEngine(st Store, sessions *session.Manager, flows *state.Manager, logger logger.ILogger, cfg Config) *Engine {
	return &Engine{
		store:    st,
		sessions: sessions,
		flows:    flows,
		logger:   logger,
		cfg:      cfg.withDefaults(),
	}
}

// HandleTurn never fails: every path, including panics below it, yields a Result.
func (e *Engine) HandleTurn(ctx context.Context, turn Turn) (res Result) {
	if turn.SessionID == "" {
		turn.SessionID = session.DefaultID
	}
	if turn.Params == nil {
		turn.Params = Params{}
	}
	turn.Text = strings.TrimSpace(turn.Text)

	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("DIALOG", "Turn panicked", map[string]interface{}{
				"session_id": turn.SessionID,
				"intent":     turn.Intent,
				"error":      fmt.Sprint(r),
			})
			res = Fail(ErrSystem, "")
		}
	}()

	unlock := e.sessions.Lock(turn.SessionID)
	defer unlock()

	s := e.sessions.GetOrCreate(turn.SessionID)
	before := s.ActiveFlow

	res = e.dispatch(ctx, s, turn)

	s.LastIntent = turn.Intent
	s.TurnCount++
	e.sessions.Save(s)

	details := map[string]interface{}{
		"session_id":  turn.SessionID,
		"intent":      turn.Intent,
		"flow_before": string(before),
		"flow_after":  string(s.ActiveFlow),
		"result":      string(res.Kind),
	}
	if res.Kind == KindPrompt {
		details["slot"] = string(res.Slot)
	}
	if res.Error != nil {
		details["error_kind"] = string(res.Error.Kind)
	}
	e.logger.Info("DIALOG", "Turn handled", details)
	return res
}

// dispatch applies the entry rules in priority order; the first that applies wins.
func (e *Engine) dispatch(ctx context.Context, s *store.Session, turn Turn) Result {
	text := turn.Text

	// Device failure while the support flow waits for issue details.
	if s.ActiveFlow == store.FlowSupport &&
		(s.Support.Awaiting == store.AwaitDescription || s.Support.Awaiting == store.AwaitIssueType) &&
		heuristic.IsDeviceFailure(text) {
		if s.Support.IssueType == nil {
			s.Support.IssueType = store.StringPtr("device")
		}
		s.Support.Description = store.StringPtr(text)
		return e.submitSupport(ctx, s, turn)
	}

	// A full natural-language date while the reservation waits for one.
	if e.awaitingReservationDatetime(s) && heuristic.ContainsMonthName(text) && heuristic.HasMeridiem(text) {
		return e.acceptReservationDatetime(ctx, s, turn, false)
	}

	if s.ActiveFlow != store.FlowNone && heuristic.IsCancelRequest(text) {
		return cancelledResult(e.flows.Cancel(s))
	}

	if IsFeedbackIntent(turn.Intent) {
		return e.feedbackTurn(ctx, s, turn)
	}
	if IsSupportIntent(turn.Intent) {
		return e.supportTurn(ctx, s, turn)
	}

	// An unfinished flow keeps the conversation unless the platform
	// explicitly switches to a reservation.
	switch s.ActiveFlow {
	case store.FlowReservation:
		return e.reservationTurn(ctx, s, turn)
	case store.FlowFeedback, store.FlowSupport:
		if IsReservationIntent(turn.Intent) {
			return e.startReservation(ctx, s, turn)
		}
		if s.ActiveFlow == store.FlowFeedback {
			return e.feedbackTurn(ctx, s, turn)
		}
		return e.supportTurn(ctx, s, turn)
	}

	class := heuristic.ClassifyUtterance(text)
	if class == heuristic.ClassSupportRequest && heuristic.IsDeviceFailure(text) {
		return e.supportTurn(ctx, s, turn)
	}
	if class == heuristic.ClassFeedbackRequest && !IsFeedbackIntent(turn.Intent) {
		return e.feedbackTurn(ctx, s, turn)
	}
	if class == heuristic.ClassSupportRequest && !IsSupportIntent(turn.Intent) {
		return e.supportTurn(ctx, s, turn)
	}

	if s.AwaitingOrderID {
		if res, handled := e.awaitedOrderID(ctx, s, turn); handled {
			return res
		}
	}

	if heuristic.IsOrderStatusQuery(text) && heuristic.ContainsDigits(text) {
		id := heuristic.ExtractOrderID(text)
		if id == "" {
			return Fail(ErrInvalidOrderID, "")
		}
		return e.orderStatus(ctx, id)
	}

	if heuristic.MentionsReservation(text) && s.AwaitingOrderID {
		s.AwaitingOrderID = false
		s.ResetReservation()
		return e.startReservation(ctx, s, turn)
	}

	switch class {
	case heuristic.ClassPriceQuery:
		return e.menuLookup(ctx, turn, PriceInfo)
	case heuristic.ClassStockQuery:
		return e.menuLookup(ctx, turn, StockInfo)
	}

	if IsReservationIntent(turn.Intent) || heuristic.MentionsReservation(text) {
		return e.startReservation(ctx, s, turn)
	}

	if IsProductIntent(turn.Intent) {
		return e.menuLookup(ctx, turn, ProductInfo)
	}

	if turn.Intent == IntentCheckOrderStatus || heuristic.IsOrderStatusQuery(text) {
		return e.checkOrderStatus(ctx, s, turn)
	}

	if turn.Intent == IntentPlaceOrder || heuristic.HasOrderingVerb(text) {
		s.AwaitingOrderID = false
		return e.placeOrder(ctx, s, turn)
	}

	return PromptFor(SlotOrderItems)
}

func cancelledResult(flow store.Flow) Result {
	switch flow {
	case store.FlowReservation:
		return Cancelled(KindReservationCancelled)
	case store.FlowFeedback:
		return Cancelled(KindFeedbackCancelled)
	default:
		return Cancelled(KindSupportCancelled)
	}
}

// storeFailure turns a repository error into an Error result.
// fallback is used when the store did not classify the failure;
// context, when set, overrides the store's message.
func (e *Engine) storeFailure(op string, err error, fallback ErrorKind, context string) Result {
	kind := fallback
	message := err.Error()

	var se *StoreError
	if errors.As(err, &se) {
		kind = se.Kind
		message = se.Message
	}

	e.logger.Error("DIALOG", "Store call failed", map[string]interface{}{
		"operation":  op,
		"error_kind": string(kind),
		"error":      err.Error(),
	})

	if context == "" {
		context = message
	}
	return Fail(kind, context)
}

func (e *Engine) metadata(s *store.Session, turn Turn) map[string]interface{} {
	params := make(map[string]interface{}, len(turn.Params))
	for k, v := range turn.Params {
		params[k] = v
	}
	return map[string]interface{}{
		"intent":     turn.Intent,
		"turn_count": s.TurnCount + 1,
		"params":     params,
	}
}
