package dialog

import (
	"context"

	"restaurant-chatbot-be/pkg/heuristic"
	"restaurant-chatbot-be/pkg/store"
)

var supportSequence = slotSequence{
	store.AwaitName,
	store.AwaitPhone,
	store.AwaitIssueType,
	store.AwaitDescription,
}

var supportPrompts = map[store.Awaiting]Slot{
	store.AwaitName:        SlotSupportName,
	store.AwaitPhone:       SlotSupportPhone,
	store.AwaitIssueType:   SlotSupportIssueType,
	store.AwaitDescription: SlotSupportDescription,
}

func supportField(sp *store.SupportSlots, at store.Awaiting) **string {
	switch at {
	case store.AwaitName:
		return &sp.Name
	case store.AwaitPhone:
		return &sp.Phone
	case store.AwaitIssueType:
		return &sp.IssueType
	default:
		return &sp.Description
	}
}

// supportTurn runs the name, phone, issue type, description sequence.
func (e *Engine) supportTurn(ctx context.Context, s *store.Session, turn Turn) Result {
	action := actionOf(turn.Intent, SupportIntentPrefix)
	if action == actionCancel {
		if s.ActiveFlow == store.FlowNone {
			return Cancelled(KindSupportCancelled)
		}
		return cancelledResult(e.flows.Cancel(s))
	}

	entering := e.flows.Begin(s, store.FlowSupport)
	sp := &s.Support
	if entering || sp.Awaiting == store.AwaitNone {
		sp.Awaiting = store.AwaitName
	}

	if IsSupportIntent(turn.Intent) {
		fillFromParams(&sp.Name, turn.Params, paramName)
		fillFromParams(&sp.Phone, turn.Params, paramPhone)
		fillFromParams(&sp.IssueType, turn.Params, paramIssue)
		fillFromParams(&sp.Description, turn.Params, paramDescription)
	}

	from := sp.Awaiting
	switch {
	case action == actionSelectIssue:
		if sp.IssueType == nil && turn.Text != "" {
			sp.IssueType = store.StringPtr(heuristic.ExtractSupportCategory(turn.Text))
		}
	case skipRequested(turn, action, sp.Awaiting):
		*supportField(sp, sp.Awaiting) = nil
		from = supportSequence.following(sp.Awaiting)
	case !entering && turn.Text != "":
		field := supportField(sp, sp.Awaiting)
		if *field != nil {
			break
		}
		if sp.Awaiting == store.AwaitIssueType {
			*field = store.StringPtr(heuristic.ExtractSupportCategory(turn.Text))
		} else {
			*field = store.StringPtr(turn.Text)
		}
	}

	sp.Awaiting = supportSequence.nextUnset(from, func(at store.Awaiting) bool {
		return *supportField(sp, at) != nil
	})
	if sp.Awaiting != store.AwaitNone {
		return PromptFor(supportPrompts[sp.Awaiting])
	}
	return e.submitSupport(ctx, s, turn)
}

// submitSupport files the ticket with whatever has been collected and
// clears the flow whether or not the write succeeds.
func (e *Engine) submitSupport(ctx context.Context, s *store.Session, turn Turn) Result {
	sp := s.Support
	req := SupportTicketRequest{
		SessionID:   s.ID,
		Name:        sp.Name,
		Phone:       sp.Phone,
		IssueType:   heuristic.DefaultSupportCategory,
		Description: "",
		Metadata:    e.metadata(s, turn),
	}
	if sp.IssueType != nil {
		req.IssueType = *sp.IssueType
	}
	if sp.Description != nil {
		req.Description = *sp.Description
	}
	e.flows.Finish(s, store.FlowSupport)

	ticket, err := e.store.CreateSupportTicket(ctx, req)
	if err != nil {
		return e.storeFailure("create_support_ticket", err, ErrSupportTicketFailed, "")
	}
	return SupportTicketCreated(ticket, req.Description, req.Name)
}
