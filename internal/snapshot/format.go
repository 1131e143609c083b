package snapshot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const maxPatternLen = 256

var (
	ErrEmptyPattern   = errors.New("pattern is empty")
	ErrPatternTooLong = fmt.Errorf("pattern exceeds %d bytes", maxPatternLen)
)

// localizedTokens name a locale's long date formats; each expands to a
// pattern of ordinary tokens before rendering.
var localizedTokens = []string{
	"LTS", "LT", "LLLL", "LLL", "LL", "L",
	"llll", "lll", "ll", "l",
}

// tokens is ordered longest first so that scanning picks "YYYY" over "YY".
var tokens = []string{
	"YYYY", "GGGG", "gggg", "MMMM", "DDDD", "dddd",
	"MMM", "DDD", "ddd", "SSS",
	"YY", "MM", "Mo", "DD", "Do", "dd", "do", "ww", "wo", "WW", "Wo",
	"HH", "hh", "kk", "mm", "ss", "SS", "ZZ",
	"Y", "Q", "M", "D", "d", "e", "E", "w", "W", "H", "h", "k",
	"m", "s", "S", "A", "a", "Z", "X", "x",
}

// ValidatePattern reports whether p can be used as a display pattern.
func ValidatePattern(p string) error {
	if strings.TrimSpace(p) == "" {
		return ErrEmptyPattern
	}
	if len(p) > maxPatternLen {
		return ErrPatternTooLong
	}
	return nil
}

// Format renders t with a moment-style pattern. Localized tokens (LT, LL,
// llll, ...) expand to the locale's long date formats first. Text inside
// [brackets] is copied literally, as is every byte that does not start a
// token, including a "[" that opens no escape.
func Format(t time.Time, pattern string, loc *Locale) string {
	if loc == nil {
		loc = DefaultLocale()
	}
	pattern = expandLocalized(pattern, loc)

	var b strings.Builder
	b.Grow(len(pattern) * 2)

	for i := 0; i < len(pattern); {
		if end := escapeEnd(pattern[i:]); end >= 0 {
			b.WriteString(pattern[i+1 : i+end])
			i += end + 1
			continue
		}

		tok := matchPrefix(pattern[i:], tokens)
		if tok == "" {
			b.WriteByte(pattern[i])
			i++
			continue
		}
		b.WriteString(render(t, tok, loc))
		i += len(tok)
	}

	return b.String()
}

// expandLocalized replaces localized tokens outside escapes. A long date
// format may itself use localized tokens, so expansion repeats a bounded
// number of times.
func expandLocalized(pattern string, loc *Locale) string {
	for range 5 {
		var b strings.Builder
		changed := false

		for i := 0; i < len(pattern); {
			if end := escapeEnd(pattern[i:]); end >= 0 {
				b.WriteString(pattern[i : i+end+1])
				i += end + 1
				continue
			}

			tok := matchPrefix(pattern[i:], localizedTokens)
			if tok == "" {
				b.WriteByte(pattern[i])
				i++
				continue
			}
			b.WriteString(loc.LongDateFormat(tok))
			i += len(tok)
			changed = true
		}

		pattern = b.String()
		if !changed {
			break
		}
	}
	return pattern
}

// escapeEnd returns the index of the "]" closing an escape that starts at
// s[0], or -1 when s does not start one. An escape cannot contain "[".
func escapeEnd(s string) int {
	if s == "" || s[0] != '[' {
		return -1
	}
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case ']':
			return i
		case '[':
			return -1
		}
	}
	return -1
}

func matchPrefix(s string, candidates []string) string {
	for _, tok := range candidates {
		if strings.HasPrefix(s, tok) {
			return tok
		}
	}
	return ""
}

func render(t time.Time, tok string, loc *Locale) string {
	switch tok {
	case "YYYY":
		return pad(t.Year(), 4)
	case "YY":
		return pad(t.Year()%100, 2)
	case "Y":
		return strconv.Itoa(t.Year())
	case "Q":
		return strconv.Itoa((int(t.Month())-1)/3 + 1)

	case "M":
		return strconv.Itoa(int(t.Month()))
	case "MM":
		return pad(int(t.Month()), 2)
	case "Mo":
		return loc.ordinal(int(t.Month()), "M")
	case "MMM":
		return loc.monthsShort[t.Month()-1]
	case "MMMM":
		return loc.months[t.Month()-1]

	case "D":
		return strconv.Itoa(t.Day())
	case "DD":
		return pad(t.Day(), 2)
	case "Do":
		return loc.ordinal(t.Day(), "D")
	case "DDD":
		return strconv.Itoa(t.YearDay())
	case "DDDD":
		return pad(t.YearDay(), 3)

	case "d":
		return strconv.Itoa(int(t.Weekday()))
	case "do":
		return loc.ordinal(int(t.Weekday()), "d")
	case "dd":
		return loc.weekdaysMin[t.Weekday()]
	case "ddd":
		return loc.weekdaysShort[t.Weekday()]
	case "dddd":
		return loc.weekdays[t.Weekday()]
	case "e":
		return strconv.Itoa(loc.LocaleWeekday(t))
	case "E":
		return strconv.Itoa(isoWeekday(t))

	case "w", "ww", "wo", "gggg":
		week, year := loc.Week(t)
		switch tok {
		case "ww":
			return pad(week, 2)
		case "wo":
			return loc.ordinal(week, "w")
		case "gggg":
			return pad(year, 4)
		}
		return strconv.Itoa(week)
	case "W", "WW", "Wo", "GGGG":
		year, week := t.ISOWeek()
		switch tok {
		case "WW":
			return pad(week, 2)
		case "Wo":
			return loc.ordinal(week, "W")
		case "GGGG":
			return pad(year, 4)
		}
		return strconv.Itoa(week)

	case "H":
		return strconv.Itoa(t.Hour())
	case "HH":
		return pad(t.Hour(), 2)
	case "h":
		return strconv.Itoa(hour12(t))
	case "hh":
		return pad(hour12(t), 2)
	case "k":
		return strconv.Itoa(hour24(t))
	case "kk":
		return pad(hour24(t), 2)
	case "m":
		return strconv.Itoa(t.Minute())
	case "mm":
		return pad(t.Minute(), 2)
	case "s":
		return strconv.Itoa(t.Second())
	case "ss":
		return pad(t.Second(), 2)
	case "S":
		return strconv.Itoa(t.Nanosecond() / 1e8)
	case "SS":
		return pad(t.Nanosecond()/1e7, 2)
	case "SSS":
		return pad(t.Nanosecond()/1e6, 3)

	case "A":
		return loc.meridiem(t.Hour(), t.Minute(), false)
	case "a":
		return loc.meridiem(t.Hour(), t.Minute(), true)
	case "Z":
		return t.Format("-07:00")
	case "ZZ":
		return t.Format("-0700")
	case "X":
		return strconv.FormatInt(t.Unix(), 10)
	case "x":
		return strconv.FormatInt(t.UnixMilli(), 10)
	}
	return tok
}

func pad(n, width int) string {
	if n < 0 {
		return "-" + pad(-n, width)
	}
	s := strconv.Itoa(n)
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}

func hour12(t time.Time) int {
	h := t.Hour() % 12
	if h == 0 {
		return 12
	}
	return h
}

func hour24(t time.Time) int {
	if t.Hour() == 0 {
		return 24
	}
	return t.Hour()
}

func isoWeekday(t time.Time) int {
	if t.Weekday() == time.Sunday {
		return 7
	}
	return int(t.Weekday())
}
