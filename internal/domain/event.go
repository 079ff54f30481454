package domain

import (
	"encoding/json"
	"time"

	"github.com/rs/zerolog"
)

const (
	EventNamePurchase   = "Purchase"
	ActionSourceWebsite = "website"
	CurrencyBRL         = "BRL"
)

// InboundEvent is the purchase posted by the browser pixel. Every field is
// optional; see DecodeInboundEvent for the defaults.
type InboundEvent struct {
	Name          string
	Email         string
	Phone         string
	Value         float64
	EventID       string
	TestEventCode string
}

// MarshalZerologObject keeps raw email and phone out of the logs.
func (e InboundEvent) MarshalZerologObject(ev *zerolog.Event) {
	ev.Str("event_id", e.EventID).
		Float64("value", e.Value).
		Bool("has_email", e.Email != "").
		Bool("has_phone", e.Phone != "").
		Bool("test_event", e.TestEventCode != "")
}

// ClientInfo is what the edge knows about the browser that sent the event.
type ClientInfo struct {
	UserAgent string
	IPAddress string
}

type UserData struct {
	Email           string `json:"em,omitempty"`
	Phone           string `json:"ph,omitempty"`
	ClientUserAgent string `json:"client_user_agent"`
	ClientIPAddress string `json:"client_ip_address"`
}

func NewUserData(e InboundEvent, client ClientInfo) UserData {
	ud := UserData{
		ClientUserAgent: client.UserAgent,
		ClientIPAddress: client.IPAddress,
	}
	if e.Email != "" {
		ud.Email = HashEmail(e.Email)
	}
	if e.Phone != "" {
		ud.Phone = HashPhone(e.Phone)
	}
	return ud
}

type CustomData struct {
	Currency string  `json:"currency"`
	Value    float64 `json:"value"`
}

type ServerEvent struct {
	EventName    string     `json:"event_name"`
	EventTime    int64      `json:"event_time"`
	ActionSource string     `json:"action_source"`
	EventID      string     `json:"event_id"`
	UserData     UserData   `json:"user_data"`
	CustomData   CustomData `json:"custom_data"`
}

// ConversionPayload is the body of a Conversions API events request.
type ConversionPayload struct {
	Data          []ServerEvent `json:"data"`
	TestEventCode string        `json:"test_event_code,omitempty"`
}

// NewPurchasePayload wraps a single purchase. EventID is forwarded untouched so
// Meta can merge it with the pixel's own report of the same purchase.
func NewPurchasePayload(e InboundEvent, client ClientInfo, eventTime time.Time) ConversionPayload {
	return ConversionPayload{
		Data: []ServerEvent{
			{
				EventName:    EventNamePurchase,
				EventTime:    eventTime.Unix(),
				ActionSource: ActionSourceWebsite,
				EventID:      e.EventID,
				UserData:     NewUserData(e, client),
				CustomData: CustomData{
					Currency: CurrencyBRL,
					Value:    e.Value,
				},
			},
		},
		TestEventCode: e.TestEventCode,
	}
}

// ForwardResult is returned to the pixel after Meta answered.
type ForwardResult struct {
	Sent bool            `json:"sent"`
	Meta json.RawMessage `json:"meta"`
}
