package snapshot

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
)

// Locale holds the calendar conventions used to render human-readable time:
// names, meridiem, ordinals and the week-numbering rule.
//
// dow is the first day of the week (0 = Sunday). doy is 7 + dow - janX where
// January janX is always part of week 1.
type Locale struct {
	name          string
	tag           language.Tag
	months        [12]string
	monthsShort   [12]string
	weekdays      [7]string
	weekdaysShort [7]string
	weekdaysMin   [7]string
	dow           int
	doy           int
	longPattern   string
	longDates     map[string]string
	meridiem      func(hour, minute int, lower bool) string
	ordinal       func(n int, token string) string
}

var English = &Locale{
	name: "en",
	tag:  language.English,
	months: [12]string{
		"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December",
	},
	monthsShort: [12]string{
		"Jan", "Feb", "Mar", "Apr", "May", "Jun",
		"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
	},
	weekdays:      [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
	weekdaysShort: [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
	weekdaysMin:   [7]string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"},
	dow:           0,
	doy:           6,
	longPattern:   "dddd, MMMM D, YYYY h:mm A",
	longDates: map[string]string{
		"LT":   "h:mm A",
		"LTS":  "h:mm:ss A",
		"L":    "MM/DD/YYYY",
		"LL":   "MMMM D, YYYY",
		"LLL":  "MMMM D, YYYY h:mm A",
		"LLLL": "dddd, MMMM D, YYYY h:mm A",
		"l":    "M/D/YYYY",
		"ll":   "MMM D, YYYY",
		"lll":  "MMM D, YYYY h:mm A",
		"llll": "ddd, MMM D, YYYY h:mm A",
	},
	meridiem: func(hour, _ int, lower bool) string {
		switch {
		case hour < 12 && lower:
			return "am"
		case hour < 12:
			return "AM"
		case lower:
			return "pm"
		default:
			return "PM"
		}
	},
	ordinal: func(n int, _ string) string {
		suffix := "th"
		if n%100 < 11 || n%100 > 13 {
			switch n % 10 {
			case 1:
				suffix = "st"
			case 2:
				suffix = "nd"
			case 3:
				suffix = "rd"
			}
		}
		return strconv.Itoa(n) + suffix
	},
}

var Chinese = &Locale{
	name: "zh-cn",
	tag:  language.SimplifiedChinese,
	months: [12]string{
		"一月", "二月", "三月", "四月", "五月", "六月",
		"七月", "八月", "九月", "十月", "十一月", "十二月",
	},
	monthsShort: [12]string{
		"1月", "2月", "3月", "4月", "5月", "6月",
		"7月", "8月", "9月", "10月", "11月", "12月",
	},
	weekdays:      [7]string{"星期日", "星期一", "星期二", "星期三", "星期四", "星期五", "星期六"},
	weekdaysShort: [7]string{"周日", "周一", "周二", "周三", "周四", "周五", "周六"},
	weekdaysMin:   [7]string{"日", "一", "二", "三", "四", "五", "六"},
	dow:           1,
	doy:           4,
	longPattern:   "YYYY年MM月DD日 HH:mm:ss",
	longDates: map[string]string{
		"LT":   "HH:mm",
		"LTS":  "HH:mm:ss",
		"L":    "YYYY/MM/DD",
		"LL":   "YYYY年M月D日",
		"LLL":  "YYYY年M月D日Ah点mm分",
		"LLLL": "YYYY年M月D日ddddAh点mm分",
		"l":    "YYYY/M/D",
		"ll":   "YYYY年M月D日",
		"lll":  "YYYY年M月D日 HH:mm",
		"llll": "YYYY年M月D日dddd HH:mm",
	},
	meridiem: func(hour, minute int, _ bool) string {
		hm := hour*100 + minute
		switch {
		case hm < 600:
			return "凌晨"
		case hm < 900:
			return "早上"
		case hm < 1130:
			return "上午"
		case hm < 1230:
			return "中午"
		case hm < 1800:
			return "下午"
		default:
			return "晚上"
		}
	},
	ordinal: func(n int, token string) string {
		switch token {
		case "M":
			return strconv.Itoa(n) + "月"
		case "w", "W":
			return strconv.Itoa(n) + "周"
		default:
			return strconv.Itoa(n) + "日"
		}
	},
}

// supported is ordered so that the default locale comes first: the matcher
// falls back to index 0 when nothing fits.
var supported = []*Locale{Chinese, English}

var matcher = func() language.Matcher {
	tags := make([]language.Tag, len(supported))
	for i, l := range supported {
		tags[i] = l.tag
	}
	return language.NewMatcher(tags)
}()

// DefaultLocale is used whenever a language cannot be matched.
func DefaultLocale() *Locale { return supported[0] }

// Locales lists every supported locale, default first.
func Locales() []*Locale { return append([]*Locale(nil), supported...) }

// ResolveLocale maps a language selector to a supported locale. It accepts
// BCP 47 tags ("en", "zh-CN") as well as POSIX values ("en_US.UTF-8",
// "en_US:en"). Anything unrecognised yields DefaultLocale.
func ResolveLocale(lang string) *Locale {
	lang = normalizeLanguage(lang)
	if lang == "" {
		return DefaultLocale()
	}

	tag, err := language.Parse(lang)
	if err != nil {
		return DefaultLocale()
	}

	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return DefaultLocale()
	}
	return supported[idx]
}

func normalizeLanguage(lang string) string {
	lang = strings.TrimSpace(lang)
	if i := strings.IndexByte(lang, ':'); i >= 0 {
		lang = lang[:i]
	}
	if i := strings.IndexAny(lang, ".@"); i >= 0 {
		lang = lang[:i]
	}
	if lang == "C" || lang == "POSIX" {
		return ""
	}
	return strings.ReplaceAll(lang, "_", "-")
}

func (l *Locale) Name() string        { return l.name }
func (l *Locale) Tag() language.Tag   { return l.tag }
func (l *Locale) LongPattern() string { return l.longPattern }

// LongDateFormat returns the pattern a localized token such as "LL" or
// "llll" stands for, or "" when key is not one.
func (l *Locale) LongDateFormat(key string) string { return l.longDates[key] }

func (l *Locale) WeekdayName(d time.Weekday) string { return l.weekdays[d] }

func (l *Locale) MonthName(m time.Month) string { return l.months[m-1] }

// Week returns the locale week number of t and the year that week belongs to.
func (l *Locale) Week(t time.Time) (week, year int) {
	return weekOfYear(t, l.dow, l.doy)
}

// LocaleWeekday is the day index counted from the locale's first day of week.
func (l *Locale) LocaleWeekday(t time.Time) int {
	return (int(t.Weekday()) + 7 - l.dow) % 7
}

func weekOfYear(t time.Time, dow, doy int) (int, int) {
	y := t.Year()
	offset := firstWeekOffset(y, dow, doy)
	days := t.YearDay() - offset - 1
	week := days/7 + 1
	if days < 0 {
		week = 0
	}

	switch {
	case week < 1:
		return week + weeksInYear(y-1, dow, doy), y - 1
	case week > weeksInYear(y, dow, doy):
		return week - weeksInYear(y, dow, doy), y + 1
	default:
		return week, y
	}
}

func weeksInYear(year, dow, doy int) int {
	offset := firstWeekOffset(year, dow, doy)
	next := firstWeekOffset(year+1, dow, doy)
	return (daysInYear(year) - offset + next) / 7
}

// firstWeekOffset is the day-of-year offset (possibly negative) of the first
// day of week 1.
func firstWeekOffset(year, dow, doy int) int {
	fwd := 7 + dow - doy
	jan := time.Date(year, time.January, fwd, 0, 0, 0, 0, time.UTC)
	fwdlw := (7 + int(jan.Weekday()) - dow) % 7
	return -fwdlw + fwd - 1
}

func daysInYear(year int) int {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}

// IsLeapYear applies the Gregorian rule.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
