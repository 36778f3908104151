package common

import (
	"errors"

	"neuroscan/pkg/errorutil"
)

// Response 统一响应结构
type Response struct {
	Error     *errorutil.Error `json:"error"`
	Result    interface{}      `json:"result"`
	Processed bool             `json:"processed"`
	Meta      *Meta            `json:"meta"`
}

// WrapResponse 包装响应
func (r *Response) WrapResponse(result interface{}, meta *Meta, err error) {
	r.Processed = err == nil
	r.Meta = meta
	r.Error = toError(err)
	r.Result = result
}

// toError 转换为带重试标记的错误，未标记的错误视为不可重试
func toError(err error) *errorutil.Error {
	if err == nil {
		return nil
	}
	var e *errorutil.Error
	if errors.As(err, &e) {
		return e
	}
	return errorutil.NonRetriable(err.Error(), err)
}
