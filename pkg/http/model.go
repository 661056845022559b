package http

// MessageResponse is the body of every 4xx response.
type MessageResponse struct {
	Message string `json:"message" example:"id must be an integer"`
}

// HealthResponse is the body of the health endpoint.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}
