package heuristic

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DatetimePattern identifies which row of the pattern table matched.
type DatetimePattern int

const (
	PatternNone DatetimePattern = iota
	PatternDayMonthYear
	PatternSlashDate
	PatternMonthDayYear
	PatternDayMonth
	PatternMonthDay
	PatternISO
)

func (p DatetimePattern) String() string {
	switch p {
	case PatternDayMonthYear:
		return "day_month_year"
	case PatternSlashDate:
		return "slash_date"
	case PatternMonthDayYear:
		return "month_day_year"
	case PatternDayMonth:
		return "day_month"
	case PatternMonthDay:
		return "month_day"
	case PatternISO:
		return "iso"
	default:
		return "none"
	}
}

// Display layouts shared by confirmation messages.
const (
	DisplayDateLayout = "Jan 02, 2006"
	DisplayTimeLayout = "03:04 PM"
)

var (
	ErrNoDatetime      = errors.New("no recognizable date and time")
	ErrInvalidDatetime = errors.New("date or time out of range")
)

// DatetimeHint is the structured result of matching the pattern table.
// Year is zero when the utterance did not carry one.
type DatetimeHint struct {
	Pattern  DatetimePattern
	Day      int
	Month    time.Month
	Year     int
	Hour     int
	Minute   int
	Meridiem string
	Source   string
}

const (
	monthGroup = `(january|february|march|april|may|june|july|august|september|october|november|december|jan|feb|mar|apr|jun|jul|aug|sept|sep|oct|nov|dec)`
	ordinal    = `(?:st|nd|rd|th)?`
	yearGroup  = `(\d{4}|\d{2})`
	clockGroup = `(\d{1,2})(?::(\d{2}))?\s*(am|pm)\b`
	atGroup    = `\s+(?:at\s+)?`
)

var monthNames = map[string]time.Month{
	"january": time.January, "jan": time.January,
	"february": time.February, "feb": time.February,
	"march": time.March, "mar": time.March,
	"april": time.April, "apr": time.April,
	"may":  time.May,
	"june": time.June, "jun": time.June,
	"july": time.July, "jul": time.July,
	"august": time.August, "aug": time.August,
	"september": time.September, "sept": time.September, "sep": time.September,
	"october": time.October, "oct": time.October,
	"november": time.November, "nov": time.November,
	"december": time.December, "dec": time.December,
}

type datetimeRule struct {
	pattern DatetimePattern
	re      *regexp.Regexp
	build   func(m []string) DatetimeHint
}

// datetimeTable is the single ordered pattern list used both to read a
// datetime out of an utterance and to redisplay a stored representation.
// The first row that matches wins.
var datetimeTable = []datetimeRule{
	{
		pattern: PatternDayMonthYear,
		re:      regexp.MustCompile(`\b(\d{1,2})` + ordinal + `\s+(?:of\s+)?` + monthGroup + `,?\s+` + yearGroup + atGroup + clockGroup),
		build: func(m []string) DatetimeHint {
			return DatetimeHint{Day: atoi(m[1]), Month: monthNames[m[2]], Year: atoi(m[3]), Hour: atoi(m[4]), Minute: atoi(m[5]), Meridiem: m[6]}
		},
	},
	{
		pattern: PatternSlashDate,
		re:      regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})/` + yearGroup + atGroup + clockGroup),
		build: func(m []string) DatetimeHint {
			return DatetimeHint{Month: time.Month(atoi(m[1])), Day: atoi(m[2]), Year: atoi(m[3]), Hour: atoi(m[4]), Minute: atoi(m[5]), Meridiem: m[6]}
		},
	},
	{
		pattern: PatternMonthDayYear,
		re:      regexp.MustCompile(`\b` + monthGroup + `\s+(\d{1,2})` + ordinal + `,?\s+` + yearGroup + atGroup + clockGroup),
		build: func(m []string) DatetimeHint {
			return DatetimeHint{Month: monthNames[m[1]], Day: atoi(m[2]), Year: atoi(m[3]), Hour: atoi(m[4]), Minute: atoi(m[5]), Meridiem: m[6]}
		},
	},
	{
		pattern: PatternDayMonth,
		re:      regexp.MustCompile(`\b(\d{1,2})` + ordinal + `\s+(?:of\s+)?` + monthGroup + `,?` + atGroup + clockGroup),
		build: func(m []string) DatetimeHint {
			return DatetimeHint{Day: atoi(m[1]), Month: monthNames[m[2]], Hour: atoi(m[3]), Minute: atoi(m[4]), Meridiem: m[5]}
		},
	},
	{
		pattern: PatternMonthDay,
		re:      regexp.MustCompile(`\b` + monthGroup + `\s+(\d{1,2})` + ordinal + `,?` + atGroup + clockGroup),
		build: func(m []string) DatetimeHint {
			return DatetimeHint{Month: monthNames[m[1]], Day: atoi(m[2]), Hour: atoi(m[3]), Minute: atoi(m[4]), Meridiem: m[5]}
		},
	},
	{
		pattern: PatternISO,
		re:      regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})t(\d{2}):(\d{2})`),
		build: func(m []string) DatetimeHint {
			return DatetimeHint{Year: atoi(m[1]), Month: time.Month(atoi(m[2])), Day: atoi(m[3]), Hour: atoi(m[4]), Minute: atoi(m[5])}
		},
	},
}

var (
	monthWordRe   = regexp.MustCompile(`\b` + monthGroup + `\b`)
	meridiemRe    = regexp.MustCompile(`\d\s*(?:am|pm)\b`)
	dottedMeridRe = regexp.MustCompile(`\b([ap])\.m\.?`)
)

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func normalizeDatetimeText(text string) string {
	t := Normalize(text)
	return dottedMeridRe.ReplaceAllString(t, "${1}m")
}

// ContainsMonthName reports whether text names a calendar month.
func ContainsMonthName(text string) bool {
	return monthWordRe.MatchString(normalizeDatetimeText(text))
}

// HasMeridiem reports whether text carries an "am"/"pm" clock time like "7pm".
func HasMeridiem(text string) bool {
	return meridiemRe.MatchString(normalizeDatetimeText(text))
}

// ExtractDatetimeHint runs the pattern table over text and returns the first match.
func ExtractDatetimeHint(text string) (DatetimeHint, bool) {
	t := normalizeDatetimeText(text)
	if t == "" {
		return DatetimeHint{}, false
	}
	for _, rule := range datetimeTable {
		m := rule.re.FindStringSubmatch(t)
		if m == nil {
			continue
		}
		hint := rule.build(m)
		hint.Pattern = rule.pattern
		hint.Source = m[0]
		return hint, true
	}
	return DatetimeHint{}, false
}

// Resolve turns the hint into a concrete local time.
//
// A missing year uses defaultYear when it is positive; otherwise the current
// year, rolled forward by one when that date has already passed.
func (h DatetimeHint) Resolve(now time.Time, defaultYear int) (time.Time, error) {
	if h.Pattern == PatternNone {
		return time.Time{}, ErrNoDatetime
	}

	hour := h.Hour
	switch h.Meridiem {
	case "am", "pm":
		if hour < 1 || hour > 12 {
			return time.Time{}, fmt.Errorf("%w: hour %d", ErrInvalidDatetime, hour)
		}
		if h.Meridiem == "am" && hour == 12 {
			hour = 0
		}
		if h.Meridiem == "pm" && hour < 12 {
			hour += 12
		}
	default:
		if hour < 0 || hour > 23 {
			return time.Time{}, fmt.Errorf("%w: hour %d", ErrInvalidDatetime, hour)
		}
	}
	if h.Minute < 0 || h.Minute > 59 {
		return time.Time{}, fmt.Errorf("%w: minute %d", ErrInvalidDatetime, h.Minute)
	}
	if h.Month < time.January || h.Month > time.December {
		return time.Time{}, fmt.Errorf("%w: month %d", ErrInvalidDatetime, h.Month)
	}

	year := h.Year
	rollForward := false
	switch {
	case year == 0 && defaultYear > 0:
		year = defaultYear
	case year == 0:
		year = now.Year()
		rollForward = true
	case year < 100:
		year += 2000
	}

	t := time.Date(year, h.Month, h.Day, hour, h.Minute, 0, 0, now.Location())
	if t.Day() != h.Day || t.Month() != h.Month {
		return time.Time{}, fmt.Errorf("%w: day %d of %s", ErrInvalidDatetime, h.Day, h.Month)
	}

	if rollForward {
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, now.Location())
		if day.Before(today) {
			t = t.AddDate(1, 0, 0)
		}
	}
	return t, nil
}

// Canonical renders a resolved datetime in the ISO form the table reads back
// as PatternISO.
func Canonical(t time.Time) string {
	return t.Format("2006-01-02T15:04")
}

// DisplayDatetime re-reads a stored representation through the pattern table
// and formats it for people. ok is false when the representation no longer parses.
func DisplayDatetime(repr string, now time.Time, defaultYear int) (date, clock string, ok bool) {
	hint, found := ExtractDatetimeHint(repr)
	if !found {
		return "", "", false
	}
	t, err := hint.Resolve(now, defaultYear)
	if err != nil {
		return "", "", false
	}
	return t.Format(DisplayDateLayout), t.Format(DisplayTimeLayout), true
}

// JoinDateAndTime combines separate platform date and time values
// ("2025-06-15T12:00:00+05:00", "2025-06-14T19:30:00+05:00") into one
// ISO representation using the date of the first and the clock of the second.
func JoinDateAndTime(date, clock string) (string, bool) {
	d := strings.TrimSpace(date)
	c := strings.TrimSpace(clock)
	if len(d) < 10 || d[4] != '-' || d[7] != '-' {
		return "", false
	}
	if i := strings.IndexByte(c, 'T'); i >= 0 {
		c = c[i+1:]
	}
	if len(c) < 5 || c[2] != ':' {
		return "", false
	}
	return d[:10] + "T" + c[:5], true
}
