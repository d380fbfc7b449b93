package dto

// Response is the envelope every endpoint answers with.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// DataResponse is Response carrying a list payload.
type DataResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data"`
	Message string `json:"message"`
}

// Fail builds a failed envelope with message.
func Fail(message string) Response {
	return Response{Success: false, Message: message}
}
