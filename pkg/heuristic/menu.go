package heuristic

import (
	"regexp"
	"sort"
	"strings"
)

// menuKeys lists every canonical item key the kitchen knows about.
// Keys are lowercase with underscores, the same form stored in menu_items.name.
var menuKeys = []string{
	// Appetizers
	"samosa", "pakora", "fruit_chaat", "shami_kebab",

	// Main course
	"biryani", "chicken_biryani", "beef_biryani", "mutton_biryani",
	"karahi", "chicken_karahi", "beef_karahi", "mutton_karahi",
	"burger", "beef_burger", "chicken_burger", "zinger_burger",
	"kebab", "seekh_kebab", "beef_kebab", "chicken_kebab", "chapli_kebab",
	"naan", "garlic_naan", "tandoori_naan",
	"nihari", "haleem", "paya", "fish_fry", "malai_boti",

	// Desserts
	"kheer", "jalebi", "rasmalai", "chocolate_lava_cake",

	// Beverages
	"pepsi", "lassi", "rooh_afza",

	// Deals
	"biryani_combo", "bbq_platter", "nihari_combo", "zinger_combo", "dessert_combo",
}

// itemSynonyms maps spelling variants and colloquial names onto canonical keys.
var itemSynonyms = map[string]string{
	"biriyani":       "biryani",
	"biryan":         "biryani",
	"bryani":         "biryani",
	"chickenbiryani": "chicken_biryani",
	"beefburger":     "beef_burger",

	"cola":       "pepsi",
	"colas":      "pepsi",
	"cold_drink": "pepsi",
	"pepis":      "pepsi",
	"coke":       "pepsi",
	"soft_drink": "pepsi",
	"soda":       "pepsi",

	"seekh":        "seekh_kebab",
	"seekh_kabab":  "seekh_kebab",
	"chapli":       "chapli_kebab",
	"chapli_kabab": "chapli_kebab",
	"shami":        "shami_kebab",
	"shami_kabab":  "shami_kebab",

	"naan_bread": "naan",
	"tandoori":   "tandoori_naan",

	"biryani_deal":    "biryani_combo",
	"biryani_special": "biryani_combo",
	"bbq_combo":       "bbq_platter",
	"bbq_deal":        "bbq_platter",
	"bbq_special":     "bbq_platter",
	"nihari_deal":     "nihari_combo",
	"nihari_special":  "nihari_combo",
	"burger_combo":    "zinger_combo",
	"burger_deal":     "zinger_combo",
	"zinger_deal":     "zinger_combo",
	"dessert_deal":    "dessert_combo",
	"sweet_combo":     "dessert_combo",

	"zigar":    "zinger_burger",
	"zinger":   "zinger_burger",
	"ruhafza":  "rooh_afza",
	"roohafza": "rooh_afza",
}

var (
	menuKeySet      = make(map[string]struct{}, len(menuKeys))
	menuKeysByLen   []string
	trailingAndRe   = regexp.MustCompile(`\s+and$`)
	whitespaceRe    = regexp.MustCompile(`\s+`)
	edgePunctuation = "?!.,;:'\""
)

// minPartialLen keeps fragments like "a" from matching half the menu.
const minPartialLen = 3

func init() {
	for _, k := range menuKeys {
		menuKeySet[k] = struct{}{}
	}

	// Longest keys first so "chicken_biryani" wins over "biryani" in the containment scan.
	menuKeysByLen = append([]string(nil), menuKeys...)
	sort.SliceStable(menuKeysByLen, func(i, j int) bool {
		if len(menuKeysByLen[i]) != len(menuKeysByLen[j]) {
			return len(menuKeysByLen[i]) > len(menuKeysByLen[j])
		}
		return menuKeysByLen[i] < menuKeysByLen[j]
	})
}

// MenuKeys returns a copy of the canonical item keys in menu order.
func MenuKeys() []string {
	return append([]string(nil), menuKeys...)
}

// IsMenuKey reports whether key is a canonical item key.
func IsMenuKey(key string) bool {
	_, ok := menuKeySet[key]
	return ok
}

// NormalizeItemName maps free text onto a canonical item key.
//
// Unknown names come back normalized but otherwise untouched so the caller
// gets an "item not found" from the menu lookup instead of a silent guess.
func NormalizeItemName(name string) string {
	item := strings.ToLower(strings.TrimSpace(name))
	item = strings.Trim(item, edgePunctuation)
	item = strings.TrimSpace(item)
	item = trailingAndRe.ReplaceAllString(item, "")
	item = whitespaceRe.ReplaceAllString(item, "_")
	item = strings.TrimSuffix(item, "_and")

	if item == "" {
		return ""
	}
	if IsMenuKey(item) {
		return item
	}
	if canonical, ok := itemSynonyms[item]; ok {
		return canonical
	}
	for _, key := range menuKeysByLen {
		if strings.Contains(item, key) {
			return key
		}
		if len(item) >= minPartialLen && strings.Contains(key, item) {
			return key
		}
	}
	return item
}
