package types

import (
	"bytes"
	"encoding/json"
	"net/http"
)

// Endpoint identifies a remote operation
type Endpoint struct {
	Name   string
	Method string
}

var (
	EndpointTestAPIKey = Endpoint{Name: "test-api-key", Method: http.MethodGet}
	EndpointProfile    = Endpoint{Name: "get-profile", Method: http.MethodGet}
	EndpointPhones     = Endpoint{Name: "get-phones", Method: http.MethodGet}
	EndpointRecords    = Endpoint{Name: "get-records", Method: http.MethodGet}
	EndpointSendSMS    = Endpoint{Name: "send-sms", Method: http.MethodPost}
	EndpointSendVoice  = Endpoint{Name: "send-voice", Method: http.MethodPost}
)

// Endpoints lists every known endpoint in display order
var Endpoints = []Endpoint{
	EndpointTestAPIKey,
	EndpointProfile,
	EndpointPhones,
	EndpointRecords,
	EndpointSendSMS,
	EndpointSendVoice,
}

func (e Endpoint) String() string {
	return e.Method + " /" + e.Name
}

// SMSRequest is the payload of send-sms
type SMSRequest struct {
	Phone         string `json:"phone" yaml:"phone" validate:"required,phone7"`
	Text          string `json:"text" yaml:"text" validate:"required"`
	OutgoingPhone string `json:"outgoingPhone,omitempty" yaml:"outgoingPhone,omitempty"`
}

// VoiceRequest is the payload of send-voice
type VoiceRequest struct {
	Phone         string `json:"phone" yaml:"phone" validate:"required,phone7"`
	Text          string `json:"text" yaml:"text" validate:"required"`
	RecordID      *int   `json:"recordId,omitempty" yaml:"recordId,omitempty" validate:"omitempty,gt=0"`
	OutgoingPhone string `json:"outgoingPhone,omitempty" yaml:"outgoingPhone,omitempty"`
}

// APIResponse is the envelope returned by every endpoint
type APIResponse struct {
	Success bool            `json:"success" yaml:"success"`
	Message string          `json:"message,omitempty" yaml:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty" yaml:"-"`
	Error   string          `json:"error,omitempty" yaml:"error,omitempty"`
}

// HasData reports whether the response carries a non-null payload
func (r *APIResponse) HasData() bool {
	return len(r.Data) > 0 && string(r.Data) != "null"
}

// PhoneRecord is one entry of the get-phones payload.
// Phone stays raw: accounts return it as a string or as a number.
type PhoneRecord struct {
	Phone json.RawMessage `json:"phone"`
}

// Number returns the phone as text. ok is false when it is missing, empty,
// zero, or neither a string nor a number.
func (p PhoneRecord) Number() (phone string, ok bool) {
	var v any
	dec := json.NewDecoder(bytes.NewReader(p.Phone))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return "", false
	}

	switch v := v.(type) {
	case string:
		return v, v != ""
	case json.Number:
		if f, err := v.Float64(); err != nil || f == 0 {
			return "", false
		}
		return v.String(), true
	}
	return "", false
}

// RequestResult contains the HTTP response data
type RequestResult struct {
	RequestID    string            `json:"requestId"`
	Status       int               `json:"status"`
	StatusText   string            `json:"statusText"`
	Headers      map[string]string `json:"headers"`
	Body         string            `json:"body"`
	Duration     int64             `json:"duration"`     // milliseconds
	RequestSize  int               `json:"requestSize"`  // bytes
	ResponseSize int               `json:"responseSize"` // bytes
}
