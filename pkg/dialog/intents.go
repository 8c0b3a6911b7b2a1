package dialog

import (
	"strings"
	"unicode"
)

const (
	IntentPlaceOrder         = "PlaceOrder"
	IntentCheckOrderStatus   = "CheckOrderStatus"
	IntentProductFAQ         = "Product_FAQ"
	IntentProductDetails     = "Product_Details"
	IntentMakeReservation    = "MakeReservation"
	IntentConfirmReservation = "ConfirmReservation"

	FeedbackIntentPrefix = "GiveCustomerFeedback"
	SupportIntentPrefix  = "Technical_Support"
)

// Follow-up actions encoded in the suffix of a flow intent,
// e.g. "Technical_Support - skip_phone".
type flowAction string

const (
	actionNone        flowAction = ""
	actionSkipName    flowAction = "skipname"
	actionSkipPhone   flowAction = "skipphone"
	actionCancel      flowAction = "cancel"
	actionSelectIssue flowAction = "selectissue"
)

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

func IsFeedbackIntent(intent string) bool {
	return hasPrefixFold(intent, FeedbackIntentPrefix)
}

func IsSupportIntent(intent string) bool {
	return hasPrefixFold(intent, SupportIntentPrefix)
}

func IsReservationIntent(intent string) bool {
	return intent == IntentMakeReservation || intent == IntentConfirmReservation
}

func IsProductIntent(intent string) bool {
	return intent == IntentProductFAQ || intent == IntentProductDetails
}

// actionOf reads the suffix after prefix, ignoring separators and case.
func actionOf(intent, prefix string) flowAction {
	if !hasPrefixFold(intent, prefix) {
		return actionNone
	}
	var b strings.Builder
	for _, r := range strings.ToLower(intent[len(prefix):]) {
		if unicode.IsLetter(r) {
			b.WriteRune(r)
		}
	}
	switch a := flowAction(b.String()); a {
	case actionSkipName, actionSkipPhone, actionCancel, actionSelectIssue:
		return a
	default:
		return actionNone
	}
}
