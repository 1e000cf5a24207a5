package response

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// ValidationErrorResponse is returned when a payload fails its schema.
type ValidationErrorResponse struct {
	Error  string `json:"error"`
	Result any    `json:"result"`
}
