package dialog

import (
	"restaurant-chatbot-be/pkg/heuristic"
	"restaurant-chatbot-be/pkg/store"
)

// slotSequence is the fixed order a linear flow asks its slots in.
type slotSequence []store.Awaiting

// following returns the slot after a, or AwaitNone past the end.
func (q slotSequence) following(a store.Awaiting) store.Awaiting {
	for i, s := range q {
		if s == a && i+1 < len(q) {
			return q[i+1]
		}
	}
	return store.AwaitNone
}

// nextUnset walks forward from a and returns the first slot still empty.
// Slots before a are never revisited, so a skipped slot stays skipped.
func (q slotSequence) nextUnset(from store.Awaiting, isSet func(store.Awaiting) bool) store.Awaiting {
	start := -1
	for i, s := range q {
		if s == from {
			start = i
			break
		}
	}
	if start < 0 {
		return store.AwaitNone
	}
	for _, s := range q[start:] {
		if !isSet(s) {
			return s
		}
	}
	return store.AwaitNone
}

// fillFromParams sets *dst from the first matching parameter unless already set.
func fillFromParams(dst **string, params Params, keys []string) {
	if *dst != nil {
		return
	}
	if v := params.Get(keys...); v != "" {
		*dst = store.StringPtr(v)
	}
}

// skipRequested reports whether the turn declines the optional slot at.
func skipRequested(turn Turn, action flowAction, at store.Awaiting) bool {
	switch at {
	case store.AwaitName:
		return action == actionSkipName || heuristic.IsSkipRequest(turn.Text)
	case store.AwaitPhone:
		return action == actionSkipPhone || heuristic.IsSkipRequest(turn.Text)
	default:
		return false
	}
}
