package domain

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestDecodeInboundEvent(t *testing.T) {
	cases := map[string]struct {
		body     string
		expected InboundEvent
	}{
		"full event": {
			body: `{"name":"Ana","email":"Ana@Example.com","phone":"11 91234-5678","value":49.9,"event_id":"evt-1","test_event_code":"TEST123"}`,
			expected: InboundEvent{
				Name:          "Ana",
				Email:         "Ana@Example.com",
				Phone:         "11 91234-5678",
				Value:         49.9,
				EventID:       "evt-1",
				TestEventCode: "TEST123",
			},
		},
		"empty body":      {body: ``},
		"whitespace body": {body: " \n"},
		"malformed json":  {body: `{"email":`},
		"array body":      {body: `[1,2]`},
		"null body":       {body: `null`},
		"numeric value as string": {
			body:     `{"value":" 19.90 "}`,
			expected: InboundEvent{Value: 19.9},
		},
		"non numeric value": {
			body: `{"value":"abc"}`,
		},
		"nan value": {
			body: `{"value":"NaN"}`,
		},
		"boolean value": {
			body: `{"value":true}`,
		},
		"numeric event id keeps its literal": {
			body:     `{"event_id":1712345678901}`,
			expected: InboundEvent{EventID: "1712345678901"},
		},
		"zero event id is absent": {
			body: `{"event_id":0}`,
		},
		"null and false fields are absent": {
			body: `{"email":null,"phone":false,"test_event_code":""}`,
		},
		"object field is stringified": {
			body:     `{"event_id":{"a":1},"email":{}}`,
			expected: InboundEvent{EventID: "[object Object]", Email: "[object Object]"},
		},
		"array field is joined": {
			body:     `{"event_id":[1,"b",null,[2,3],false],"test_event_code":[]}`,
			expected: InboundEvent{EventID: "1,b,,2,3,false"},
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			require.Equal(t, tc.expected, DecodeInboundEvent([]byte(tc.body)))
		})
	}
}

func TestNewPurchasePayload(t *testing.T) {
	eventTime := time.Unix(1700000000, 999)
	client := ClientInfo{UserAgent: "Mozilla/5.0", IPAddress: "203.0.113.7"}

	payload := NewPurchasePayload(InboundEvent{
		Email:   "User@Example.com",
		Phone:   "+55 (11) 91234-5678",
		Value:   120.5,
		EventID: "evt-42",
	}, client, eventTime)

	require.Len(t, payload.Data, 1)
	ev := payload.Data[0]
	require.Equal(t, EventNamePurchase, ev.EventName)
	require.Equal(t, int64(1700000000), ev.EventTime)
	require.Equal(t, ActionSourceWebsite, ev.ActionSource)
	require.Equal(t, "evt-42", ev.EventID)
	require.Equal(t, sha256Hex("user@example.com"), ev.UserData.Email)
	require.Equal(t, sha256Hex("5511912345678"), ev.UserData.Phone)
	require.Equal(t, "Mozilla/5.0", ev.UserData.ClientUserAgent)
	require.Equal(t, "203.0.113.7", ev.UserData.ClientIPAddress)
	require.Equal(t, CustomData{Currency: CurrencyBRL, Value: 120.5}, ev.CustomData)
	require.Empty(t, payload.TestEventCode)
}

func TestConversionPayload_JSON(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		payload := NewPurchasePayload(InboundEvent{}, ClientInfo{}, time.Unix(1, 0))

		var got map[string]any
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(data, &got))

		require.NotContains(t, got, "test_event_code")
		event := got["data"].([]any)[0].(map[string]any)
		require.Equal(t, "", event["event_id"])
		require.Equal(t, float64(0), event["custom_data"].(map[string]any)["value"])

		userData := event["user_data"].(map[string]any)
		require.NotContains(t, userData, "em")
		require.NotContains(t, userData, "ph")
		require.Contains(t, userData, "client_user_agent")
		require.Contains(t, userData, "client_ip_address")
	})

	t.Run("test event code", func(t *testing.T) {
		payload := NewPurchasePayload(InboundEvent{TestEventCode: "TEST123"}, ClientInfo{}, time.Unix(1, 0))

		data, err := json.Marshal(payload)
		require.NoError(t, err)
		require.Contains(t, string(data), `"test_event_code":"TEST123"`)
	})

	t.Run("no raw pii", func(t *testing.T) {
		payload := NewPurchasePayload(InboundEvent{
			Email: "user@example.com",
			Phone: "11912345678",
		}, ClientInfo{}, time.Unix(1, 0))

		data, err := json.Marshal(payload)
		require.NoError(t, err)
		require.NotContains(t, string(data), "user@example.com")
		require.NotContains(t, string(data), "11912345678\"")
	})
}

func TestInboundEvent_LogsNoPII(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := zerolog.New(buf)

	logger.Info().Object("event", InboundEvent{
		Email:   "user@example.com",
		Phone:   "11912345678",
		EventID: "evt-1",
	}).Send()

	out := buf.String()
	require.NotContains(t, out, "user@example.com")
	require.NotContains(t, out, "11912345678")
	require.Contains(t, out, `"has_email":true`)
	require.Contains(t, out, `"event_id":"evt-1"`)
}
