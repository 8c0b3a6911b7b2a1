package heuristic

import (
	"fmt"
	"strings"
)

// servingUnits is the counting word used when an item is displayed.
var servingUnits = map[string]string{
	"biryani": "plate", "chicken_biryani": "plate", "beef_biryani": "plate", "mutton_biryani": "plate",
	"karahi": "bowl", "chicken_karahi": "bowl", "beef_karahi": "bowl", "mutton_karahi": "bowl",
	"burger": "burger", "beef_burger": "burger", "chicken_burger": "burger", "zinger_burger": "burger",
	"kebab": "skewer", "seekh_kebab": "skewer", "beef_kebab": "skewer", "chicken_kebab": "skewer",
	"chapli_kebab": "piece", "shami_kebab": "piece",
	"naan": "naan", "garlic_naan": "naan", "tandoori_naan": "naan",
	"nihari": "bowl", "haleem": "bowl", "paya": "bowl",
	"fish_fry": "piece", "malai_boti": "piece",

	"samosa": "piece", "pakora": "plate", "fruit_chaat": "bowl",

	"kheer": "bowl", "jalebi": "piece", "rasmalai": "piece", "chocolate_lava_cake": "slice",

	"pepsi": "bottle", "lassi": "glass", "rooh_afza": "glass",

	"biryani_combo": "combo", "bbq_platter": "platter", "nihari_combo": "combo",
	"zinger_combo": "combo", "dessert_combo": "combo",
}

// DisplayName turns a canonical key into words: "chicken_biryani" -> "chicken biryani".
func DisplayName(key string) string {
	return strings.ReplaceAll(key, "_", " ")
}

func pluralize(word string, qty int) string {
	switch {
	case qty <= 1:
		return word
	case strings.HasSuffix(word, "ss"), strings.HasSuffix(word, "ch"), strings.HasSuffix(word, "sh"):
		return word + "es"
	case strings.HasSuffix(word, "s"):
		return word
	}
	return word + "s"
}

// FormatOrderLine renders one line, e.g. "2 plates of chicken biryani" or "3 garlic naans".
func FormatOrderLine(line OrderLine) string {
	name := DisplayName(line.Item)
	unit, ok := servingUnits[line.Item]
	if !ok || strings.HasSuffix(name, unit) {
		return fmt.Sprintf("%d %s", line.Quantity, pluralize(name, line.Quantity))
	}
	return fmt.Sprintf("%d %s of %s", line.Quantity, pluralize(unit, line.Quantity), name)
}

// FormatOrderItems joins lines as "a, b and c". An empty list renders as "".
func FormatOrderItems(lines []OrderLine) string {
	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		parts = append(parts, FormatOrderLine(l))
	}
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	default:
		return strings.Join(parts[:len(parts)-1], ", ") + " and " + parts[len(parts)-1]
	}
}
