package heuristic

import (
	"regexp"
	"strconv"
	"strings"
)

// OrderLine is one parsed "<quantity> <item>" segment of an order utterance.
type OrderLine struct {
	Item     string `json:"item"`
	Quantity int    `json:"quantity"`
}

var (
	priceItemRe = regexp.MustCompile(`(?:tell me the price of|price of|cost of|how much is|how much for|price for)\s+([a-z\s]+)`)

	dishFallbackRes = []*regexp.Regexp{
		regexp.MustCompile(`(?:is|are)\s+([a-z\s]+?)\s+(?:available|in stock|left)`),
		regexp.MustCompile(`(?:tell me about|what is|what's)\s+([a-z\s]+)`),
		regexp.MustCompile(`([a-z\s]+?)\s+(?:price|cost|availability)`),
		regexp.MustCompile(`(?:i'd like|i want)\s+([a-z\s]+)`),
		regexp.MustCompile(`(?:order|get me|do you have)\s+([a-z\s]+)`),
	}

	orderLineRe  = regexp.MustCompile(`(\d+)\s+([a-z_\s]+)`)
	orderIDRe    = regexp.MustCompile(`(?:order\s*#?\s*|status\s*of\s*|#|id\s*)?(\d{3,})`)
	guestCountRe = regexp.MustCompile(`(\d+)\s*(?:guests?|people|persons?|pax|seats?|adults?)\b`)
	partyOfRe    = regexp.MustCompile(`\b(?:table for|party of|for)\s+(\d+)(st|nd|rd|th)?\b(?:\s+([a-z]+))?`)
	bareNumberRe = regexp.MustCompile(`^\s*(\d+)\s*$`)
)

// supportCategories is scanned in order; the first category with a matching keyword wins.
var supportCategories = []struct {
	name     string
	keywords []string
}{
	{"technical", []string{"technical", "tech", "problem", "issue", "not working", "error", "bug", "glitch"}},
	{"account", []string{"account", "login", "password", "sign in", "profile", "registration", "signup"}},
	{"device", []string{"device", "phone", "computer", "tablet", "mobile", "app", "application"}},
	{"website", []string{"website", "web", "page", "site", "online", "browser"}},
	{"payment", []string{"payment", "transaction", "money", "card", "credit", "debit", "pay"}},
	{"general", []string{"question", "help", "support", "assistance", "information", "how to"}},
}

// DefaultSupportCategory is used when no keyword matches.
const DefaultSupportCategory = "general"

// SupportCategories returns the known issue categories in lookup order.
func SupportCategories() []string {
	out := make([]string, 0, len(supportCategories))
	for _, c := range supportCategories {
		out = append(out, c.name)
	}
	return out
}

func stripArticles(s string) string {
	s = strings.TrimSpace(s)
	for _, a := range leadingArticles {
		s = strings.TrimPrefix(s, a)
	}
	return strings.TrimSpace(s)
}

// ExtractDishReference pulls a menu item out of a question about price,
// availability or details. It returns "" when nothing looks like a dish.
func ExtractDishReference(text string) string {
	t := Normalize(text)
	if t == "" {
		return ""
	}

	if IsPriceQuery(t) {
		if m := priceItemRe.FindStringSubmatch(t); m != nil {
			if item := NormalizeItemName(stripArticles(m[1])); item != "" {
				return item
			}
		}
	}

	for _, re := range dishFallbackRes {
		if m := re.FindStringSubmatch(t); m != nil {
			if item := NormalizeItemName(stripArticles(m[1])); item != "" {
				return item
			}
		}
	}
	return ""
}

// ExtractOrderLines parses "2 chicken biryani and 1 pepsi" into order lines.
// Lines that normalize to the same item are merged and keep first-seen order.
func ExtractOrderLines(text string) []OrderLine {
	t := Normalize(text)
	matches := orderLineRe.FindAllStringSubmatch(t, -1)

	lines := make([]OrderLine, 0, len(matches))
	index := make(map[string]int, len(matches))
	for _, m := range matches {
		qty, err := strconv.Atoi(m[1])
		if err != nil || qty <= 0 {
			continue
		}
		raw := strings.TrimSpace(trailingAndRe.ReplaceAllString(strings.TrimSpace(m[2]), ""))
		if raw == "" || raw == "and" {
			continue
		}
		item := NormalizeItemName(stripArticles(raw))
		if item == "" {
			continue
		}
		if i, ok := index[item]; ok {
			lines[i].Quantity += qty
			continue
		}
		index[item] = len(lines)
		lines = append(lines, OrderLine{Item: item, Quantity: qty})
	}
	return lines
}

// ExtractOrderID returns the first run of three or more digits, or "".
func ExtractOrderID(text string) string {
	m := orderIDRe.FindStringSubmatch(Normalize(text))
	if m == nil {
		return ""
	}
	return m[1]
}

// ExtractSupportCategory maps an issue description onto a support category.
func ExtractSupportCategory(text string) string {
	t := Normalize(text)
	for _, c := range supportCategories {
		if containsAny(t, c.keywords) {
			return c.name
		}
	}
	return DefaultSupportCategory
}

// ExtractGuestCount finds a party size such as "4 guests", "table for 2" or a bare "6".
// The number is returned unvalidated; range checks belong to the caller.
func ExtractGuestCount(text string) (int, bool) {
	t := Normalize(text)
	if m := guestCountRe.FindStringSubmatch(t); m != nil {
		return atoiOK(m[1])
	}
	// "for 15 march" and "for 7 pm" name a date or a time, not a party.
	for _, m := range partyOfRe.FindAllStringSubmatch(t, -1) {
		if m[2] != "" || isDateOrClockWord(m[3]) {
			continue
		}
		return atoiOK(m[1])
	}
	if m := bareNumberRe.FindStringSubmatch(t); m != nil {
		return atoiOK(m[1])
	}
	return 0, false
}

func isDateOrClockWord(w string) bool {
	if _, ok := monthNames[w]; ok {
		return true
	}
	return w == "am" || w == "pm" || w == "o"
}

func atoiOK(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
