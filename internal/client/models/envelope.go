package models

import "encoding/json"

// Envelope is the body shape of every API response.
type Envelope[T any] struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    *T              `json:"data,omitempty"`
	Errors  json.RawMessage `json:"errors,omitempty"`
	Count   int             `json:"count,omitempty"`
}
