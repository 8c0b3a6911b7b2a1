package dialog

import (
	"encoding/json"
	"strconv"
	"strings"

	"restaurant-chatbot-be/pkg/heuristic"
)

// Turn is one inbound platform request for a session.
type Turn struct {
	SessionID string
	Intent    string
	Text      string
	Params    Params
}

// Params holds platform parameters already resolved to canonical strings.
// Missing and empty values are never stored.
type Params map[string]string

// Get returns the first non-empty value among keys.
func (p Params) Get(keys ...string) string {
	for _, k := range keys {
		if v, ok := p[k]; ok && v != "" {
			return v
		}
	}
	return ""
}

func (p Params) Has(keys ...string) bool {
	return p.Get(keys...) != ""
}

// Parameter names the platform agent uses. Several flows accept aliases.
var (
	paramGuests      = []string{"guest_count", "guests", "number"}
	paramDatetime    = []string{"date-time", "date_time", "reserve_datetime"}
	paramDate        = []string{"reserve_date", "date"}
	paramTime        = []string{"reserve_time", "time"}
	paramName        = []string{"name", "person", "customer_name"}
	paramPhone       = []string{"phone", "phone-number", "phone_number"}
	paramFeedback    = []string{"feedback_text", "feedback"}
	paramIssue       = []string{"issue", "issue_type"}
	paramDescription = []string{"description", "issue_description"}
	paramDish        = []string{"dish_items", "dish", "item"}
	paramOrderID     = []string{"order_id", "order_number"}
)

// structuredKeys are tried in order when a parameter arrives as an object.
var structuredKeys = []string{"name", "date_time", "startDateTime", "original", "amount", "value"}

// ResolveParams flattens the platform's polymorphic parameter values once,
// so downstream code only ever sees strings. Separate date and time values
// are also joined into a single "date-time" entry.
func ResolveParams(raw map[string]interface{}) Params {
	out := make(Params, len(raw))
	for k, v := range raw {
		if s, ok := resolveValue(v); ok {
			out[k] = s
		}
	}

	if !out.Has(paramDatetime...) {
		if joined, ok := heuristic.JoinDateAndTime(out.Get(paramDate...), out.Get(paramTime...)); ok {
			out["date-time"] = joined
		}
	}
	return out
}

func resolveValue(v interface{}) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", false
	case string:
		s := strings.TrimSpace(val)
		return s, s != ""
	case float64:
		return formatNumber(val), true
	case float32:
		return formatNumber(float64(val)), true
	case int:
		return strconv.Itoa(val), true
	case int64:
		return strconv.FormatInt(val, 10), true
	case json.Number:
		return val.String(), true
	case bool:
		return strconv.FormatBool(val), true
	case map[string]interface{}:
		for _, k := range structuredKeys {
			if inner, ok := val[k]; ok {
				if s, ok := resolveValue(inner); ok {
					return s, true
				}
			}
		}
		return "", false
	case []interface{}:
		for _, item := range val {
			if s, ok := resolveValue(item); ok {
				return s, true
			}
		}
		return "", false
	default:
		return "", false
	}
}

func formatNumber(f float64) string {
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
