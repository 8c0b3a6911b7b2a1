package fulfillment

import (
	"restaurant-chatbot-be/internal/dto"
	"restaurant-chatbot-be/pkg/dialog"
	"restaurant-chatbot-be/pkg/heuristic"
)

const (
	chipTypeChips = "chips"
	chipTypeInfo  = "info"
)

func chip(text, intent string) dto.ChipOption {
	return dto.ChipOption{Text: text, Intent: intent}
}

func chipWith(text, intent string, params map[string]string) dto.ChipOption {
	return dto.ChipOption{Text: text, Intent: intent, Parameters: params}
}

var (
	chipPlaceOrder    = chip("🛒 New order", dialog.IntentPlaceOrder)
	chipCheckStatus   = chip("🔍 Check order status", dialog.IntentCheckOrderStatus)
	chipContact       = chip("📞 Contact support", dialog.SupportIntentPrefix)
	chipTryAgain      = chip("🔄 Try again", "")
	chipReserve       = chip("📅 Book a table", dialog.IntentMakeReservation)
	chipGiveFeedback  = chip("📝 Give feedback", dialog.FeedbackIntentPrefix)
	chipBackToMenu    = chip("🔙 Back to menu", "Show_Menu")
	chipNotifyMe      = chip("⏳ Notify when available", "Notify_Me")
	chipMoreDetails   = chip("🔍 More details", dialog.IntentProductDetails)
	chipCancelSupport = chip("✖️ Cancel", dialog.SupportIntentPrefix+" - cancel")
	chipCancelFeed    = chip("✖️ Cancel", dialog.FeedbackIntentPrefix+" - cancel")
)

var quickOrderChips = []dto.ChipOption{
	chip("🍛 2 Chicken Biryani + 🥤 1 Pepsi", "Quick_Order"),
	chip("🍔 1 Beef Burger + 🥤 2 Colas", "Quick_Order"),
	chip("🍲 1 Mutton Karahi + 🫓 2 Naan", "Quick_Order"),
	chip("📝 Custom order...", "Custom_Order"),
}

func orderChip(item string) dto.ChipOption {
	return chipWith("🛒 Place Order", dialog.IntentPlaceOrder, map[string]string{"dish_items": item})
}

func skipChip(intentPrefix, action string) dto.ChipOption {
	return chip("⏭️ Skip", intentPrefix+" - "+action)
}

// issueChips offers every support category as a one-tap answer.
func issueChips() []dto.ChipOption {
	cats := heuristic.SupportCategories()
	out := make([]dto.ChipOption, 0, len(cats)+1)
	for _, c := range cats {
		out = append(out, chipWith(titleWords(c), dialog.SupportIntentPrefix+" - select_issue", map[string]string{"issue": c}))
	}
	return append(out, chipCancelSupport)
}

func chips(options ...dto.ChipOption) dto.RichElement {
	return dto.RichElement{Type: chipTypeChips, Options: options}
}

func info(title string, lines ...string) dto.RichElement {
	return dto.RichElement{Type: chipTypeInfo, Title: title, Text: lines}
}

func payload(elements ...dto.RichElement) *dto.RichPayload {
	return &dto.RichPayload{RichContent: [][]dto.RichElement{elements}}
}
