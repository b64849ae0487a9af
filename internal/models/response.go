package models

// HealthResponse represents the response structure for the liveness endpoint
type HealthResponse struct {
	Status    string  `json:"status" example:"healthy"`
	Timestamp string  `json:"timestamp" example:"2025-11-10T14:30:00.000Z"` // ISO-8601 UTC with milliseconds
	Uptime    float64 `json:"uptime" example:"42.137"`                      // seconds since process start
}

// ReadinessResponse represents the response structure for the readiness endpoint
type ReadinessResponse struct {
	Status    string `json:"status" example:"ready"`
	Database  string `json:"database" example:"up"`
	Timestamp string `json:"timestamp" example:"2025-11-10T14:30:00.000Z"`
}

// APIVersionResponse is the static payload served at the API root
type APIVersionResponse struct {
	Message string `json:"message" example:"LightPath API v1"`
	Version string `json:"version" example:"1.0.0"`
}

// ErrorDetail is the body of every error response
type ErrorDetail struct {
	Message    string `json:"message" example:"Route GET /missing not found"`
	StatusCode int    `json:"statusCode" example:"404"`
	// Stack is only populated for recovered panics outside production
	Stack string `json:"stack,omitempty"`
}

// ErrorResponse wraps ErrorDetail under an "error" key
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// NewErrorResponse builds an ErrorResponse for the given status and message
func NewErrorResponse(statusCode int, message string) ErrorResponse {
	return ErrorResponse{
		Error: ErrorDetail{
			Message:    message,
			StatusCode: statusCode,
		},
	}
}
