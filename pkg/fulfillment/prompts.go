package fulfillment

import (
	"fmt"
	"strings"

	"restaurant-chatbot-be/internal/dto"
	"restaurant-chatbot-be/pkg/dialog"
)

var slotQuestions = map[dialog.Slot]string{
	dialog.SlotGuestCount:          "👥 How many guests will be dining?",
	dialog.SlotReservationDatetime: "📅 What date and time would you like to book for? (e.g., 15 June at 7pm)",
	dialog.SlotFeedbackName:        "📝 We'd love to hear from you! May I have your name?",
	dialog.SlotFeedbackPhone:       "📱 Thanks! What phone number can we reach you on?",
	dialog.SlotFeedbackText:        "💬 Please share your feedback.",
	dialog.SlotSupportName:         "🛎️ Sorry you're having trouble. May I have your name?",
	dialog.SlotSupportPhone:        "📱 What phone number can our team reach you on?",
	dialog.SlotSupportIssueType:    "🧰 What kind of issue are you facing?",
	dialog.SlotSupportDescription:  "✍️ Please describe the problem in a few words.",
	dialog.SlotOrderID:             "Please provide your Order ID (example: '1019')",
	dialog.SlotOrderItems:          "What would you like to order today? (Example: '2 chicken biryani and 1 pepsi')",
}

var repromptText = map[dialog.PromptReason]string{
	dialog.ReasonInvalidGuestCount: "⚠️ Please tell me a number of guests between 1 and 20.",
	dialog.ReasonInvalidDatetime:   "⚠️ I couldn't understand that date and time. Try something like '15 June at 7pm'.",
}

func (s *Selector) prompt(slot dialog.Slot, reason dialog.PromptReason) dto.WebhookResponse {
	text, ok := slotQuestions[slot]
	if !ok {
		text = slotQuestions[dialog.SlotOrderItems]
		slot = dialog.SlotOrderItems
	}
	if r, ok := repromptText[reason]; ok {
		text = r
	}

	var options []dto.ChipOption
	switch slot {
	case dialog.SlotFeedbackName:
		text += " (You can say 'skip')"
		options = []dto.ChipOption{skipChip(dialog.FeedbackIntentPrefix, "skip_name"), chipCancelFeed}
	case dialog.SlotFeedbackPhone:
		text += " (You can say 'skip')"
		options = []dto.ChipOption{skipChip(dialog.FeedbackIntentPrefix, "skip_phone"), chipCancelFeed}
	case dialog.SlotFeedbackText:
		options = []dto.ChipOption{chipCancelFeed}
	case dialog.SlotSupportName:
		text += " (You can say 'skip')"
		options = []dto.ChipOption{skipChip(dialog.SupportIntentPrefix, "skip_name"), chipCancelSupport}
	case dialog.SlotSupportPhone:
		text += " (You can say 'skip')"
		options = []dto.ChipOption{skipChip(dialog.SupportIntentPrefix, "skip_phone"), chipCancelSupport}
	case dialog.SlotSupportIssueType:
		options = issueChips()
	case dialog.SlotSupportDescription:
		options = []dto.ChipOption{chipCancelSupport}
	case dialog.SlotOrderID:
		options = []dto.ChipOption{chipCheckStatus, chipPlaceOrder}
	case dialog.SlotOrderItems:
		options = quickOrderChips
	}

	if len(options) == 0 {
		return dto.WebhookResponse{FulfillmentText: text}
	}
	return dto.WebhookResponse{FulfillmentText: text, Payload: payload(chips(options...))}
}

var errorTemplates = map[dialog.ErrorKind]string{
	dialog.ErrInvalidOrderID:      "❌ Please enter a valid Order ID (numbers only)",
	dialog.ErrOrderNotFound:       "❌ Order #%s not found",
	dialog.ErrOrderCreationFailed: "❌ %s",
	dialog.ErrDatabase:            "⚠️ Temporary database issue",
	dialog.ErrItemNotFound:        "❌ We don't have information about '%s'",
	dialog.ErrSupportTicketFailed: "❌ Failed to create support ticket: %s",
	dialog.ErrReservationFailed:   "❌ Reservation failed: %s",
	dialog.ErrFeedbackFailed:      "❌ We couldn't save your feedback: %s",
	dialog.ErrSystem:              "⚠️ Our systems are busy. Please try again later.",
}

// contextDefaults fill the template when the engine gave no context.
var contextDefaults = map[dialog.ErrorKind]string{
	dialog.ErrOrderNotFound:       "unknown",
	dialog.ErrOrderCreationFailed: "We couldn't place your order",
	dialog.ErrItemNotFound:        "that item",
	dialog.ErrSupportTicketFailed: "please try again",
	dialog.ErrReservationFailed:   "please try again",
	dialog.ErrFeedbackFailed:      "please try again",
}

// ErrorMessage renders the guest-facing text for a failure.
func ErrorMessage(e dialog.ErrorInfo) string {
	tmpl, ok := errorTemplates[e.Kind]
	if !ok {
		return "⚠️ Something went wrong"
	}
	if !strings.Contains(tmpl, "%s") {
		return tmpl
	}
	ctx := strings.ReplaceAll(e.Context, "_", " ")
	if ctx == "" {
		ctx = contextDefaults[e.Kind]
	}
	return fmt.Sprintf(tmpl, ctx)
}

func (s *Selector) failure(e dialog.ErrorInfo) dto.WebhookResponse {
	options := []dto.ChipOption{chipTryAgain, chipContact}
	switch {
	case e.Kind == dialog.ErrReservationFailed && e.Terminal:
		options = []dto.ChipOption{chip("📅 Start a new reservation", dialog.IntentMakeReservation), chipContact}
	case e.Kind == dialog.ErrInvalidOrderID || e.Kind == dialog.ErrOrderNotFound:
		options = []dto.ChipOption{chipCheckStatus, chipContact}
	case e.Kind == dialog.ErrItemNotFound:
		options = []dto.ChipOption{chipBackToMenu, chipContact}
	case e.Kind == dialog.ErrFeedbackFailed:
		options = []dto.ChipOption{chipGiveFeedback, chipContact}
	}
	return dto.WebhookResponse{
		FulfillmentText: ErrorMessage(e),
		Payload:         payload(chips(options...)),
	}
}
