// Package httpdto holds the wire shapes of the REST surface.
package httpdto

// Response is the envelope every endpoint answers with. Success carries Data;
// failure carries Error (human-readable) and Code (machine-matchable), never
// both halves at once.
type Response[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
}

func NewSuccessResponse[T any](data T) Response[T] {
	return Response[T]{Success: true, Data: data}
}

func NewErrorResponse(message, code string) Response[any] {
	return Response[any]{Success: false, Error: message, Code: code}
}
