package dialog

import (
	"context"

	"restaurant-chatbot-be/pkg/store"
)

var feedbackSequence = slotSequence{store.AwaitName, store.AwaitPhone, store.AwaitText}

var feedbackPrompts = map[store.Awaiting]Slot{
	store.AwaitName:  SlotFeedbackName,
	store.AwaitPhone: SlotFeedbackPhone,
	store.AwaitText:  SlotFeedbackText,
}

func feedbackField(f *store.FeedbackSlots, at store.Awaiting) **string {
	switch at {
	case store.AwaitName:
		return &f.Name
	case store.AwaitPhone:
		return &f.Phone
	default:
		return &f.Text
	}
}

// feedbackTurn runs the name, phone, text sequence. The entry turn only
// reads structured parameters; later turns assign the utterance verbatim
// to the slot being asked for.
func (e *Engine) feedbackTurn(ctx context.Context, s *store.Session, turn Turn) Result {
	action := actionOf(turn.Intent, FeedbackIntentPrefix)
	if action == actionCancel {
		if s.ActiveFlow == store.FlowNone {
			return Cancelled(KindFeedbackCancelled)
		}
		return cancelledResult(e.flows.Cancel(s))
	}

	entering := e.flows.Begin(s, store.FlowFeedback)
	f := &s.Feedback
	if entering || f.Awaiting == store.AwaitNone {
		f.Awaiting = store.AwaitName
	}

	if IsFeedbackIntent(turn.Intent) {
		fillFromParams(&f.Name, turn.Params, paramName)
		fillFromParams(&f.Phone, turn.Params, paramPhone)
		fillFromParams(&f.Text, turn.Params, paramFeedback)
	}

	from := f.Awaiting
	switch {
	case skipRequested(turn, action, f.Awaiting):
		*feedbackField(f, f.Awaiting) = nil
		from = feedbackSequence.following(f.Awaiting)
	case !entering && turn.Text != "":
		field := feedbackField(f, f.Awaiting)
		if *field == nil {
			*field = store.StringPtr(turn.Text)
		}
	}

	f.Awaiting = feedbackSequence.nextUnset(from, func(at store.Awaiting) bool {
		return *feedbackField(f, at) != nil
	})
	if f.Awaiting != store.AwaitNone {
		return PromptFor(feedbackPrompts[f.Awaiting])
	}
	return e.submitFeedback(ctx, s, turn)
}

// submitFeedback clears the flow before calling the store, so the slots are
// gone whether or not the write succeeds.
func (e *Engine) submitFeedback(ctx context.Context, s *store.Session, turn Turn) Result {
	f := s.Feedback
	req := FeedbackRequest{
		SessionID: s.ID,
		Name:      f.Name,
		Phone:     f.Phone,
		Text:      *f.Text,
		Metadata:  e.metadata(s, turn),
	}
	e.flows.Finish(s, store.FlowFeedback)

	if _, err := e.store.SubmitCustomerFeedback(ctx, req); err != nil {
		return e.storeFailure("submit_customer_feedback", err, ErrFeedbackFailed, "")
	}
	return FeedbackSubmitted(req.Name)
}
