package models

// ErrorResponse is the failure envelope returned by every handler
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// SuccessResponse is the success envelope returned by every handler
type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// HealthCheckResponse returns the health check response, true means the
// service is alive
type HealthCheckResponse struct {
	Alive bool `json:"alive"`
}
