package models

import "intake-api/internal/apperror"

// Envelope is the {success, data|error} body returned by every endpoint.
type Envelope struct {
	Success bool                  `json:"success"`
	Data    interface{}           `json:"data,omitempty"`
	Error   string                `json:"error,omitempty"`
	Details []apperror.FieldError `json:"details,omitempty"`
}

func OK(data interface{}) Envelope {
	return Envelope{Success: true, Data: data}
}

func Fail(message string, details []apperror.FieldError) Envelope {
	return Envelope{Success: false, Error: message, Details: details}
}
