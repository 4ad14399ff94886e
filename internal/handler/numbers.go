package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// NumberError reports a numeric field that could not be coerced
type NumberError struct {
	Value string
	Kind  string
}

func (e *NumberError) Error() string {
	return fmt.Sprintf("Invalid %s value: %s", e.Kind, e.Value)
}

// FlexFloat accepts a JSON number or a numeric string. NaN and infinities are rejected.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	v, err := parseFlexNumber(data, "number")
	if err != nil {
		return err
	}
	*f = FlexFloat(v)
	return nil
}

// Ptr returns the value as *float64, nil when the field was absent
func (f *FlexFloat) Ptr() *float64 {
	if f == nil {
		return nil
	}
	v := float64(*f)
	return &v
}

// FlexInt accepts a JSON number or a numeric string holding a whole number
type FlexInt int

func (i *FlexInt) UnmarshalJSON(data []byte) error {
	v, err := parseFlexNumber(data, "integer")
	if err != nil {
		return err
	}
	if v != math.Trunc(v) || v > math.MaxInt32 || v < math.MinInt32 {
		return &NumberError{Value: string(data), Kind: "integer"}
	}
	*i = FlexInt(v)
	return nil
}

// Ptr returns the value as *int, nil when the field was absent
func (i *FlexInt) Ptr() *int {
	if i == nil {
		return nil
	}
	v := int(*i)
	return &v
}

func parseFlexNumber(data []byte, kind string) (float64, error) {
	data = bytes.TrimSpace(data)
	raw := string(data)

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return 0, &NumberError{Value: raw, Kind: kind}
		}
		raw = strings.TrimSpace(s)
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &NumberError{Value: raw, Kind: kind}
	}
	return v, nil
}
