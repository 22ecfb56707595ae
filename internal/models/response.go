package models

// ErrorResponse is the JSON body of every error returned by the API.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse is a plain {"message": "..."} body.
type MessageResponse struct {
	Message string `json:"message"`
}
