package normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// noDataTokens are the sentinel strings the source dataset uses for "no data".
// They map to missing for dates and integer-like fields.
var noDataTokens = map[string]bool{
	"":         true,
	"A/D":      true,
	"a/d":      true,
	"s/d":      true,
	"S/D":      true,
	"Sin dato": true,
	"SIN DATO": true,
}

// dateLayouts are tried in order when parsing calendar dates.
var dateLayouts = []string{"2006-01-02", "2006/01/02"}

var spaceRuns = regexp.MustCompile(`\s+`)

var semicolonSpacing = regexp.MustCompile(`\s*;\s*`)

func trimSpace(s string) string {
	return strings.TrimSpace(s)
}

func isNaNToken(s string) bool {
	return strings.EqualFold(s, "nan")
}

func isNoData(s string) bool {
	return noDataTokens[trimSpace(s)]
}

// Currency parses a locale-formatted amount ("$ 1.234.567,89") into a
// decimal. The source locale uses dots for thousands and a comma for
// decimals, but a dot is only a thousands separator when a comma is present.
// Missing or unparseable values degrade to zero.
func Currency(c Cell) decimal.Decimal {
	switch c.Kind {
	case KindNumber:
		return decimal.NewFromFloat(c.Number)
	case KindText:
		s := strings.ReplaceAll(c.Text, "$", "")
		s = spaceRuns.ReplaceAllString(s, "")
		if s == "" {
			return decimal.Zero
		}
		if strings.Contains(s, ",") {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero
		}
		return d
	default:
		return decimal.Zero
	}
}

// Percent strips a trailing "%" and parses the remainder as a number.
// Unparseable values degrade to zero. Range enforcement is not applied here;
// the 0-100 invariant belongs to the work record at save time.
func Percent(c Cell) float64 {
	switch c.Kind {
	case KindNumber:
		return c.Number
	case KindText:
		s := strings.TrimSuffix(trimSpace(c.Text), "%")
		s = trimSpace(s)
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		return v
	default:
		return 0
	}
}

// CalendarDate parses a date, mapping the source's no-data sentinels to
// missing. Unparseable text is missing too, never an error.
func CalendarDate(c Cell) (time.Time, bool) {
	switch c.Kind {
	case KindDate:
		return c.Date, true
	case KindText:
		s := trimSpace(c.Text)
		if isNoData(s) {
			return time.Time{}, false
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}

// Integer parses an integer-like field, mapping no-data sentinels to
// missing. Fractional values are rounded up: a contract term of 5.5 months
// occupies 6.
func Integer(c Cell) (int, bool) {
	switch c.Kind {
	case KindNumber:
		return int(math.Ceil(c.Number)), true
	case KindText:
		s := trimSpace(c.Text)
		if isNoData(s) {
			return 0, false
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return int(math.Ceil(v)), true
	default:
		return 0, false
	}
}

// Affirmative normalizes the localized boolean flag: the value "SI"
// (trimmed, upper-cased) is true, everything else including missing is false.
func Affirmative(c Cell) bool {
	if c.Kind != KindText {
		return false
	}
	return strings.ToUpper(trimSpace(c.Text)) == "SI"
}

// PlainText transliterates accents and trims. Missing stays empty.
func PlainText(c Cell) string {
	if c.Kind != KindText {
		return ""
	}
	return trimSpace(StripAccents(c.Text))
}

// PlaceText normalizes neighborhood and address text: accents stripped,
// trimmed, lower-cased, internal whitespace runs collapsed to one space.
func PlaceText(c Cell) string {
	s := PlainText(c)
	s = strings.ToLower(s)
	return spaceRuns.ReplaceAllString(s, " ")
}

// DelimitedList normalizes the spacing around ";" separators in a
// multi-reference field (tax ids, file numbers). The field stays a single
// text value; it is never split into a collection.
func DelimitedList(c Cell) string {
	s := PlainText(c)
	return semicolonSpacing.ReplaceAllString(s, ";")
}

// DistrictCode parses the district ("comuna") column. The source sometimes
// holds malformed multi-district strings; callers pass a fixed table of
// known variants mapped to their canonical single code. Variants outside the
// table that fail to parse as an integer are missing, not guessed.
func DistrictCode(c Cell, variants map[string]string) (int, bool) {
	switch c.Kind {
	case KindNumber:
		return int(c.Number), true
	case KindText:
		s := trimSpace(c.Text)
		if canonical, ok := variants[s]; ok {
			s = canonical
		}
		v, err := strconv.Atoi(s)
		if err != nil {
			return 0, false
		}
		return v, true
	default:
		return 0, false
	}
}

// Coordinate parses a latitude/longitude value whose decimal separator may
// be a comma. Missing or unparseable values are missing.
func Coordinate(c Cell) (float64, bool) {
	switch c.Kind {
	case KindNumber:
		return c.Number, true
	case KindText:
		s := strings.ReplaceAll(trimSpace(c.Text), ",", ".")
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return v, true
	default:
		return 0, false
	}
}
