package dto

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error" example:"validation_error"`
	Message string `json:"message,omitempty" example:"markup is required"`
}

// AcceptedResponse acknowledges a fire-and-forget intake signal
type AcceptedResponse struct {
	Status string `json:"status" example:"accepted"`
}
