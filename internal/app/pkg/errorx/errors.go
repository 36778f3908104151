package errorx

import "errors"

// 定义业务错误
var (
	ErrPatientNotFound  = errors.New("patient not found")
	ErrInvalidPatientID = errors.New("invalid patient id")
	ErrUploadTooLarge   = errors.New("uploaded file too large")
	ErrInvalidUpload    = errors.New("invalid upload")
)

// BusinessError 业务错误结构
type BusinessError struct {
	Code    int
	Message string
	Details []ErrorDetail
	cause   error
}

// ErrorDetail 错误详情
type ErrorDetail struct {
	Path string
	Info string
}

// Error 实现 error 接口
func (e *BusinessError) Error() string {
	return e.Message
}

// Unwrap 返回底层错误
func (e *BusinessError) Unwrap() error {
	return e.cause
}

// NewBusinessError 创建业务错误
func NewBusinessError(code int, message string) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
	}
}

// WithCause 关联底层错误，便于 errors.Is 判断
func (e *BusinessError) WithCause(err error) *BusinessError {
	e.cause = err
	return e
}

// WithDetail 追加错误详情
func (e *BusinessError) WithDetail(path, info string) *BusinessError {
	e.Details = append(e.Details, ErrorDetail{Path: path, Info: info})
	return e
}
