package inventory

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Key is a normalized product identifier. The zero value means "no key".
type Key string

// String returns the key text.
func (k Key) String() string {
	return string(k)
}

// IsZero reports whether the key is empty.
func (k Key) IsZero() bool {
	return k == ""
}

var (
	// numericText matches decimal text, including spreadsheet exponent form ("6.28451000012E+11").
	// The exponent needs an explicit sign so codes like "12E4" stay text.
	numericText = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]\d+)?$`)

	separators = strings.NewReplacer(
		" ", "", "\t", "", "\n", "", "\r", "",
		"-", "", "_", "", ".", "", "/", "",
	)

	nullTokens = map[string]struct{}{
		"nan":  {},
		"none": {},
		"null": {},
		"nil":  {},
		"<na>": {},
	}
)

// NormalizeKey maps a raw identifier of any supported kind onto the shared key space.
// It returns false when no usable key remains; such rows are excluded by the caller.
//
// Numbers, and text that reads as a number, are cast through an integer first,
// truncating fractional noise: 123456.0, "123456.0" and "1.23456E+5" all give "123456".
// Whitespace, '-', '_', '.' and '/' are removed, then leading zeros are stripped.
// A key made only of zeros normalizes to "0".
func NormalizeKey(raw any) (Key, bool) {
	var text string

	switch v := raw.(type) {
	case nil:
		return "", false
	case Key:
		text = string(v)
	case string:
		text = v
	case int:
		text = strconv.FormatInt(int64(v), 10)
	case int8:
		text = strconv.FormatInt(int64(v), 10)
	case int16:
		text = strconv.FormatInt(int64(v), 10)
	case int32:
		text = strconv.FormatInt(int64(v), 10)
	case int64:
		text = strconv.FormatInt(v, 10)
	case uint:
		text = strconv.FormatUint(uint64(v), 10)
	case uint8:
		text = strconv.FormatUint(uint64(v), 10)
	case uint16:
		text = strconv.FormatUint(uint64(v), 10)
	case uint32:
		text = strconv.FormatUint(uint64(v), 10)
	case uint64:
		text = strconv.FormatUint(v, 10)
	case float32:
		s, ok := floatKey(float64(v))
		if !ok {
			return "", false
		}
		text = s
	case float64:
		s, ok := floatKey(v)
		if !ok {
			return "", false
		}
		text = s
	case decimal.Decimal:
		s, ok := integerKey(v)
		if !ok {
			return "", false
		}
		text = s
	case fmt.Stringer:
		text = v.String()
	default:
		return "", false
	}

	return normalizeText(text)
}

// MustKey normalizes raw and panics when it has no key. Intended for fixtures.
func MustKey(raw any) Key {
	k, ok := NormalizeKey(raw)
	if !ok {
		panic(fmt.Sprintf("inventory: %v does not normalize to a key", raw))
	}
	return k
}

// maxKeyDigits bounds the integer a numeric key may expand to.
const maxKeyDigits = 64

func floatKey(f float64) (string, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", false
	}
	return integerKey(decimal.NewFromFloat(f))
}

// integerKey truncates d toward zero and formats it without a sign.
func integerKey(d decimal.Decimal) (string, bool) {
	if d.NumDigits()+int(d.Exponent()) > maxKeyDigits {
		return "", false
	}
	return d.Truncate(0).Abs().String(), true
}

func normalizeText(text string) (Key, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", false
	}
	if _, null := nullTokens[strings.ToLower(text)]; null {
		return "", false
	}

	if numericText.MatchString(text) {
		d, err := decimal.NewFromString(text)
		if err != nil {
			return "", false
		}
		s, ok := integerKey(d)
		if !ok {
			return "", false
		}
		text = s
	}

	text = separators.Replace(text)
	if text == "" {
		return "", false
	}

	trimmed := strings.TrimLeft(text, "0")
	if trimmed == "" {
		return "0", true
	}
	return Key(trimmed), true
}
