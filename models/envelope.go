package models

import "encoding/json"

// Envelope is the {success, data, message} wrapper every upstream REST
// response uses. Data stays raw so callers can decode into their own type.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
}
