package model

// Result is the uniform response envelope returned by every endpoint. Code
// mirrors the HTTP status of the response.
type Result struct {
	Flag    bool   `json:"flag"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func Success(code int, message string, data any) Result {
	return Result{Flag: true, Code: code, Message: message, Data: data}
}

func Failure(code int, message string, data any) Result {
	return Result{Flag: false, Code: code, Message: message, Data: data}
}
