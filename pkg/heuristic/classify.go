package heuristic

import (
	"regexp"
	"strings"
)

// UtteranceClass is the coarse category of a raw user utterance.
type UtteranceClass string

const (
	ClassNone            UtteranceClass = "none"
	ClassPriceQuery      UtteranceClass = "price_query"
	ClassStockQuery      UtteranceClass = "stock_query"
	ClassSupportRequest  UtteranceClass = "support_request"
	ClassFeedbackRequest UtteranceClass = "feedback_request"
)

var pricePhrases = []string{
	"price of", "cost of", "how much is",
	"what is the price", "what's the price",
	"how much for", "price for", "how much does",
	"what does cost", "tell me the price of",
	"what are the rates", "pricing", "what would be the cost",
}

var stockPhrases = []string{
	"in stock", "available", "do you have",
	"is there any", "any left", "have any",
	"is available", "are available",
	"do you serve", "is it on the menu", "menu item",
}

var supportPhrases = []string{
	"technical help", "technical problem", "contact support",
	"something is wrong", "technical issue", "need support",
	"not working", "need help", "have a problem",
	"facing a technical problem", "want to contact support",
	"wrong with my device", "help with my account",
	"device is not working", "website is not working",
	"app crash", "login issue", "payment problem",
	"error message", "stuck", "glitch", "bug",
	"my device", "my phone", "my app", "my website",
}

var feedbackPhrases = []string{
	"feedback", "review", "suggestion",
	"complaint", "experience",
	"like the", "not happy", "satisfied",
	"rude", "perfect", "give feedback", "share feedback",
	"tell you about my experience", "didn't like the service",
	"liked the food", "not happy with my order",
	"satisfied with the service", "great experience",
	"staff was rude", "everything was perfect", "amazing service",
	"terrible service", "delicious food",
}

var cancelPhrases = []string{
	"cancel", "stop", "never mind", "nevermind", "forget it", "abort",
}

var (
	orderingVerbRe  = regexp.MustCompile(`\b(order\w*|want\w*|get)\b`)
	reservationRe   = regexp.MustCompile(`\b(reservation\w*|reserve|book\w*)\b`)
	skipRe          = regexp.MustCompile(`^(skip|skip it|no|none|n/a|prefer not to say|rather not)\.?$`)
	orderStatusRe   = regexp.MustCompile(`\b(order status|status of|track\w*|where is my order)\b`)
	digitRe         = regexp.MustCompile(`\d`)
	leadingArticles = []string{"the ", "a ", "an ", "some ", "your "}
)

// Normalize lowercases and trims an utterance. Every classifier applies it.
func Normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

func containsAny(text string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}

// HasOrderingVerb reports whether the utterance reads like placing an order.
func HasOrderingVerb(text string) bool {
	return orderingVerbRe.MatchString(Normalize(text))
}

// IsPriceQuery requires a price phrase and no ordering verb, so
// "I want to order 2 biryani" never becomes a price lookup.
func IsPriceQuery(text string) bool {
	t := Normalize(text)
	return containsAny(t, pricePhrases) && !orderingVerbRe.MatchString(t)
}

func IsStockQuery(text string) bool {
	return containsAny(Normalize(text), stockPhrases)
}

func IsSupportRequest(text string) bool {
	return containsAny(Normalize(text), supportPhrases)
}

func IsFeedbackRequest(text string) bool {
	return containsAny(Normalize(text), feedbackPhrases)
}

// IsDeviceFailure matches the "my device is not working" shortcut.
func IsDeviceFailure(text string) bool {
	t := Normalize(text)
	return strings.Contains(t, "device") && strings.Contains(t, "not working")
}

// MentionsReservation matches "reservation", "reserve" and "book"/"booking".
func MentionsReservation(text string) bool {
	return reservationRe.MatchString(Normalize(text))
}

// IsOrderStatusQuery matches status phrasing such as "order status" or "track my order".
func IsOrderStatusQuery(text string) bool {
	return orderStatusRe.MatchString(Normalize(text))
}

// ContainsDigits reports whether text has at least one ASCII digit.
func ContainsDigits(text string) bool {
	return digitRe.MatchString(text)
}

// IsCancelRequest matches a whole-utterance request to abandon the current
// flow. Free-text answers that merely start with "stop" or "cancel" are
// not cancellations; only trailing punctuation and "please" are tolerated.
func IsCancelRequest(text string) bool {
	t := strings.TrimRight(Normalize(text), ".!")
	t = strings.TrimSpace(strings.TrimSuffix(t, "please"))
	t = strings.TrimSpace(strings.TrimPrefix(t, "please "))
	t = strings.TrimRight(t, ",.! ")
	if t == "" {
		return false
	}
	for _, p := range cancelPhrases {
		if t == p {
			return true
		}
	}
	return false
}

// IsSkipRequest matches a short answer declining to give an optional slot.
func IsSkipRequest(text string) bool {
	return skipRe.MatchString(Normalize(text))
}

// ClassifyUtterance checks price, stock, support and feedback phrasing in that order.
func ClassifyUtterance(text string) UtteranceClass {
	switch {
	case IsPriceQuery(text):
		return ClassPriceQuery
	case IsStockQuery(text):
		return ClassStockQuery
	case IsSupportRequest(text):
		return ClassSupportRequest
	case IsFeedbackRequest(text):
		return ClassFeedbackRequest
	default:
		return ClassNone
	}
}
