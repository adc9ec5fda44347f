package handlers

// ChatRequest is one user utterance.
type ChatRequest struct {
	Message string `json:"message" binding:"required" validate:"required,notblank,max=2000"`
}

// ChatResponse carries the assistant's reply for one turn.
type ChatResponse struct {
	Reply     string `json:"reply" validate:"required"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorResponse represents an error response with validation
type ErrorResponse struct {
	Error   string `json:"error" validate:"required,min=1,max=500"`
	Code    string `json:"code,omitempty" validate:"omitempty,min=1,max=50"`
	Details string `json:"details,omitempty" validate:"omitempty,max=1000"`
}

// HealthResponse represents health check response with validation
type HealthResponse struct {
	Status    string `json:"status" validate:"required,oneof=ok alive ready degraded unavailable"`
	Version   string `json:"version,omitempty"`
	Uptime    string `json:"uptime" validate:"required"`
	Timestamp string `json:"timestamp,omitempty" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}
