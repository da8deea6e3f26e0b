// Package pkg provides shared types and utilities for the Canopy API.
package pkg

// Response is the standard API envelope: a human-readable detail line plus an
// optional data payload.
type Response struct {
	Detail string      `json:"detail"`
	Data   interface{} `json:"data,omitempty"`
}

// NewResponse creates a new Response with the given detail and data.
func NewResponse(detail string, data interface{}) Response {
	return Response{
		Detail: detail,
		Data:   data,
	}
}

// Message creates a data-less Response for plain status bodies.
func Message(detail string) Response {
	return Response{Detail: detail}
}
