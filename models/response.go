package models

// Response is the JSON envelope returned by every API endpoint.
type Response[T any] struct {
	Success bool    `json:"success"`
	Data    T       `json:"data"`
	Message *string `json:"message"`
}

func OK[T any](data T) Response[T] {
	return Response[T]{Success: true, Data: data}
}

func OKWithMessage[T any](data T, message string) Response[T] {
	return Response[T]{Success: true, Data: data, Message: &message}
}

func Fail(message string) Response[any] {
	return Response[any]{Success: false, Message: &message}
}
