package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// FlexFloat is a float64 that tolerates the currency-formatted strings found in
// imported portfolio data ("R$ 1.234,56", "1.234", ""). Anything unparseable
// coerces to zero instead of failing, so detail views always render.
type FlexFloat float64

// Float64 returns the underlying value.
func (f FlexFloat) Float64() float64 {
	return float64(f)
}

// ParseFlexible coerces a Brazilian currency/number string to a float64.
// The currency symbol and whitespace are stripped. When a decimal comma is
// present every dot is a thousands separator ("R$ 1.234,56"). Without a comma,
// dots are thousands separators only when they group digits in threes
// ("1.500", "1.234.567"); otherwise the dot is a decimal point, which is how
// PostgreSQL renders numeric columns ("1500.00"). Unparseable input yields 0.
func ParseFlexible(s string) float64 {
	var b strings.Builder
	for _, r := range s {
		if r == 'R' || r == '$' || unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}
	s = b.String()

	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	} else if isDotGrouped(s) {
		s = strings.ReplaceAll(s, ".", "")
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// isDotGrouped reports whether s reads as thousands grouping: at least one
// dot, and every group after the first is exactly three digits.
func isDotGrouped(s string) bool {
	parts := strings.Split(s, ".")
	if len(parts) < 2 {
		return false
	}
	for _, p := range parts[1:] {
		if len(p) != 3 {
			return false
		}
		for _, r := range p {
			if r < '0' || r > '9' {
				return false
			}
		}
	}
	return true
}

// UnmarshalJSON accepts numbers, formatted strings and null.
func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == "" {
		*f = 0
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexFloat(n)
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*f = FlexFloat(ParseFlexible(str))
		return nil
	}
	*f = 0
	return nil
}

// MarshalJSON emits a plain number.
func (f FlexFloat) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(f))
}

// Scan implements sql.Scanner so legacy rows stored as text still load.
func (f *FlexFloat) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*f = 0
	case float64:
		*f = FlexFloat(v)
	case int64:
		*f = FlexFloat(v)
	case []byte:
		*f = FlexFloat(ParseFlexible(string(v)))
	case string:
		*f = FlexFloat(ParseFlexible(v))
	default:
		return fmt.Errorf("cannot scan %T into FlexFloat", value)
	}
	return nil
}

// Value implements driver.Valuer.
func (f FlexFloat) Value() (driver.Value, error) {
	return float64(f), nil
}
