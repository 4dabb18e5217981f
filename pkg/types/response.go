package types

// SuccessEnvelope is the uniform shape for 2xx responses.
type SuccessEnvelope struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Data      any    `json:"data"`
	RequestID int    `json:"requestId"`
}

// ErrorEnvelope is the uniform shape for error responses. ErrorCode is the
// stable numeric application code clients branch on, independent of the HTTP
// status.
type ErrorEnvelope struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Error     any    `json:"error,omitempty"`
	ErrorCode int    `json:"errorCode"`
	RequestID int    `json:"requestId"`
}
