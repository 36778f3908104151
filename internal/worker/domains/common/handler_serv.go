package common

import (
	"context"
	"encoding/json"
)

// HandlerFactory Handler 构造函数类型
type HandlerFactory func(ctx context.Context, meta *Meta, payload json.RawMessage) (HandlerServ, error)

// HandlerServ Handler 接口
type HandlerServ interface {
	GetProcess() *Response
}
