// Package response contains the JSON envelope types returned by the
// HTTP handlers. The shapes are fixed: errors carry a single "error"
// key, confirmations a single "message" key.
package response

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error string `json:"error" example:"not found"`
}

// MessageResponse is the body of every confirmation reply.
type MessageResponse struct {
	Message string `json:"message" example:"created"`
}

// Error builds an ErrorResponse with the given message.
func Error(msg string) ErrorResponse {
	return ErrorResponse{Error: msg}
}

// Message builds a MessageResponse with the given message.
func Message(msg string) MessageResponse {
	return MessageResponse{Message: msg}
}
