package errorutil

import (
	"errors"
	"fmt"
)

// Error 错误结构（包含可重试标记）
type Error struct {
	Message   string `json:"message"`
	Retryable bool   `json:"retryable"`
	cause     error
}

// Error 实现 error 接口
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap 支持 errors.Is / errors.As
func (e *Error) Unwrap() error {
	return e.cause
}

// Retriable 创建可重试错误（网络错误、DB 临时故障等）
func Retriable(message string, cause error) *Error {
	return &Error{Message: message, Retryable: true, cause: cause}
}

// NonRetriable 创建不可重试错误（载荷错误、影像无法解码等）
func NonRetriable(message string, cause error) *Error {
	return &Error{Message: message, Retryable: false, cause: cause}
}

// IsRetriable 判断错误是否可重试，未标记的错误视为不可重试
func IsRetriable(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Retryable
	}
	return false
}
