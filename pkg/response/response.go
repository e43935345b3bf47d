// Package response defines the JSON envelope every API endpoint returns.
package response

// Response is the uniform API envelope. Code is only set on errors that
// clients are expected to branch on.
type Response struct {
	Status     string      `json:"status"` // "success" or "error"
	StatusCode int         `json:"status_code"`
	Data       interface{} `json:"data,omitempty"`
	Error      string      `json:"error,omitempty"`
	Code       string      `json:"code,omitempty"`
}

// Success wraps data in a success envelope.
func Success(statusCode int, data interface{}) Response {
	return Response{
		Status:     "success",
		StatusCode: statusCode,
		Data:       data,
	}
}

// Error wraps a message in an error envelope.
func Error(statusCode int, err string) Response {
	return Response{
		Status:     "error",
		StatusCode: statusCode,
		Error:      err,
	}
}

// ErrorWithCode additionally carries a machine-readable code so clients
// can branch on the failure kind instead of parsing messages.
func ErrorWithCode(statusCode int, err, code string) Response {
	r := Error(statusCode, err)
	r.Code = code
	return r
}
