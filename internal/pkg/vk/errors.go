package vk

import (
	"errors"
	"fmt"
)

var (
	ErrUpstream       = errors.New("vk upstream error")
	ErrUserNotFound   = errors.New("vk user not found")
	ErrNotInitialized = errors.New("vk client is not initialized")
)

// APIError is the error object VK returns instead of a response.
type APIError struct {
	Code    int    `json:"error_code"`
	Message string `json:"error_msg"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("vk api error %d: %s", e.Code, e.Message)
}

// Is makes every API error match ErrUpstream.
func (e *APIError) Is(target error) bool {
	return target == ErrUpstream
}
