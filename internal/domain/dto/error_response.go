package dto

import "time"

// ErrorResponse is the standardized JSON error body returned by every
// failing endpoint.
//
// Fields:
//   - Message: human-readable summary of the failure.
//   - ErrorDetails: underlying error text, omitted when not available.
//   - Timestamp: when the error response was produced.
type ErrorResponse struct {
	Message      string    `json:"message" example:"Invalid request"`
	ErrorDetails string    `json:"error,omitempty" example:"client_id must be a positive integer"`
	Timestamp    time.Time `json:"timestamp" example:"2025-01-01T12:00:00Z"`
}

// Error implements the error interface so an ErrorResponse can travel
// through error-returning call chains.
func (e ErrorResponse) Error() string {
	if e.ErrorDetails == "" {
		return e.Message
	}
	return e.Message + ": " + e.ErrorDetails
}

// NewErrorResponse builds an ErrorResponse from a message and an
// optional inner error.
func NewErrorResponse(message string, err error) ErrorResponse {
	resp := ErrorResponse{
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
	if err != nil {
		resp.ErrorDetails = err.Error()
	}
	return resp
}
