package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

type inboundFields struct {
	Name          json.RawMessage `json:"name"`
	Email         json.RawMessage `json:"email"`
	Phone         json.RawMessage `json:"phone"`
	Value         json.RawMessage `json:"value"`
	EventID       json.RawMessage `json:"event_id"`
	TestEventCode json.RawMessage `json:"test_event_code"`
}

// DecodeInboundEvent never fails. A missing, malformed or non-object body
// yields the zero InboundEvent, and each field falls back to its default on
// its own:
//   - text fields take strings as is, non-zero numbers as their literal text,
//     true as "true", arrays joined with commas and objects as
//     "[object Object]"; falsy values are "".
//   - value takes numbers and numeric strings; anything else is 0.
func DecodeInboundEvent(data []byte) InboundEvent {
	var f inboundFields
	if len(bytes.TrimSpace(data)) == 0 {
		return InboundEvent{}
	}
	if err := json.Unmarshal(data, &f); err != nil {
		return InboundEvent{}
	}

	return InboundEvent{
		Name:          coerceText(f.Name),
		Email:         coerceText(f.Email),
		Phone:         coerceText(f.Phone),
		Value:         coerceNumber(f.Value),
		EventID:       coerceText(f.EventID),
		TestEventCode: coerceText(f.TestEventCode),
	}
}

func decodeRaw(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil
	}
	return v
}

// coerceText turns a truthy value into the text a browser script would send
// for it; falsy values (false, 0, "", null, missing) are "".
func coerceText(raw json.RawMessage) string {
	v := decodeRaw(raw)
	if !truthy(v) {
		return ""
	}
	return stringify(v)
}

func truthy(v any) bool {
	switch v := v.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case json.Number:
		f, err := v.Float64()
		return err != nil || f != 0
	}
	return true
}

// stringify renders v the way String(v) does: arrays join their elements
// with commas (null elements are empty) and objects become "[object Object]".
// Numbers keep their literal text.
func stringify(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case json.Number:
		return v.String()
	case []any:
		parts := make([]string, len(v))
		for i, elem := range v {
			parts[i] = stringify(elem)
		}
		return strings.Join(parts, ",")
	}
	return "[object Object]"
}

func coerceNumber(raw json.RawMessage) float64 {
	var (
		f   float64
		err error
	)
	switch v := decodeRaw(raw).(type) {
	case json.Number:
		f, err = v.Float64()
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0
		}
		f, err = strconv.ParseFloat(s, 64)
	default:
		return 0
	}
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
