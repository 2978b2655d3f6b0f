package domain

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Amount decodes numeric fields that arrive as numbers, numeric strings, or null.
// Anything that does not parse decodes to 0.
type Amount float64

// UnmarshalJSON implements json.Unmarshaler.
func (a *Amount) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	*a = 0
	switch {
	case raw == "" || raw == "null":
		return nil
	case raw == "true":
		*a = 1
		return nil
	case strings.HasPrefix(raw, `"`):
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		raw = strings.TrimSpace(s)
		if raw == "" {
			return nil
		}
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	*a = Amount(value)
	return nil
}

// Float returns the underlying value.
func (a Amount) Float() float64 {
	return float64(a)
}

// Int truncates the value.
func (a Amount) Int() int {
	return int(a)
}
