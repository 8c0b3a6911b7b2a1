package dialog

import (
	"context"
	"strconv"

	"restaurant-chatbot-be/pkg/heuristic"
	"restaurant-chatbot-be/pkg/store"
)

const (
	MaxAttemptsMessage = "Maximum attempts reached"

	placeholderDate = "the requested date"
	placeholderTime = "the requested time"
)

func (e *Engine) awaitingReservationDatetime(s *store.Session) bool {
	return s.ActiveFlow == store.FlowReservation &&
		s.Reservation.Guests != nil &&
		s.Reservation.DatetimeText == nil
}

func (e *Engine) startReservation(ctx context.Context, s *store.Session, turn Turn) Result {
	entering := e.flows.Begin(s, store.FlowReservation)
	return e.reservationStep(ctx, s, turn, entering)
}

func (e *Engine) reservationTurn(ctx context.Context, s *store.Session, turn Turn) Result {
	return e.reservationStep(ctx, s, turn, false)
}

// reservationStep collects guests, then the date and time, then books.
// fresh is true when the slot being collected has not been asked for yet;
// a missing value then is a first prompt rather than a failed attempt.
func (e *Engine) reservationStep(ctx context.Context, s *store.Session, turn Turn, fresh bool) Result {
	r := &s.Reservation
	if r.Guests == nil {
		n, given := guestCountFrom(turn)
		if !given {
			if fresh {
				return PromptFor(SlotGuestCount)
			}
			return e.reservationRetry(s, Reprompt(SlotGuestCount, ReasonInvalidGuestCount))
		}
		if n < e.cfg.MinGuests || n > e.cfg.MaxGuests {
			return e.reservationRetry(s, Reprompt(SlotGuestCount, ReasonInvalidGuestCount))
		}
		r.Guests = store.IntPtr(n)
		fresh = true
	}
	return e.acceptReservationDatetime(ctx, s, turn, fresh)
}

// guestCountFrom prefers the structured parameter over the utterance.
// A parameter that is not a number still counts as given.
func guestCountFrom(turn Turn) (n int, given bool) {
	if raw := turn.Params.Get(paramGuests...); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return -1, true
		}
		return v, true
	}
	return heuristic.ExtractGuestCount(turn.Text)
}

// reservationDatetimeFrom picks the date and time for the booking: a
// month-name utterance first, then the platform parameter, then any other
// form the pattern table understands.
func reservationDatetimeFrom(turn Turn) (repr string, hint heuristic.DatetimeHint, found bool) {
	if heuristic.ContainsMonthName(turn.Text) {
		if h, ok := heuristic.ExtractDatetimeHint(turn.Text); ok {
			return turn.Text, h, true
		}
	}
	if p := turn.Params.Get(paramDatetime...); p != "" {
		if h, ok := heuristic.ExtractDatetimeHint(p); ok {
			return p, h, true
		}
	}
	if h, ok := heuristic.ExtractDatetimeHint(turn.Text); ok {
		return turn.Text, h, true
	}
	return "", heuristic.DatetimeHint{}, false
}

func (e *Engine) acceptReservationDatetime(ctx context.Context, s *store.Session, turn Turn, fresh bool) Result {
	r := &s.Reservation
	repr, hint, found := reservationDatetimeFrom(turn)
	if !found {
		if fresh {
			return PromptFor(SlotReservationDatetime)
		}
		return e.reservationRetry(s, Reprompt(SlotReservationDatetime, ReasonInvalidDatetime))
	}

	now := e.cfg.Now()
	when, err := hint.Resolve(now, e.cfg.DefaultYear)
	if err != nil {
		e.logger.Debug("DIALOG", "Unusable reservation datetime", map[string]interface{}{
			"session_id": s.ID,
			"input":      repr,
			"error":      err.Error(),
		})
		return e.reservationRetry(s, Reprompt(SlotReservationDatetime, ReasonInvalidDatetime))
	}

	canonical := heuristic.Canonical(when)
	r.DatetimeText = &canonical
	guests := *r.Guests

	meta := e.metadata(s, turn)
	meta["requested"] = repr
	reservation, err := e.store.CreateReservation(ctx, ReservationRequest{
		SessionID: s.ID,
		Guests:    guests,
		When:      when,
		Requested: repr,
		Metadata:  meta,
	})
	if err != nil {
		r.DatetimeText = nil
		return e.reservationRetry(s, e.storeFailure("create_reservation", err, ErrReservationFailed, ""))
	}

	e.flows.Finish(s, store.FlowReservation)

	date, clock, ok := heuristic.DisplayDatetime(canonical, now, e.cfg.DefaultYear)
	if !ok {
		date, clock = placeholderDate, placeholderTime
	}
	return ReservationConfirmed(ReservationSummary{
		ID:     reservation.Id,
		Guests: guests,
		Date:   date,
		Time:   clock,
	})
}

// reservationRetry counts a failed submission. Past the limit the flow is
// dropped and a terminal failure replaces the re-prompt.
func (e *Engine) reservationRetry(s *store.Session, next Result) Result {
	s.Reservation.RetryCount++
	if s.Reservation.RetryCount <= e.cfg.MaxRetries {
		return next
	}

	e.logger.Warn("DIALOG", "Reservation attempts exhausted", map[string]interface{}{
		"session_id": s.ID,
		"attempts":   s.Reservation.RetryCount,
	})
	e.flows.Finish(s, store.FlowReservation)
	return FailTerminal(ErrReservationFailed, MaxAttemptsMessage)
}
