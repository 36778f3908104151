package domains

import (
	"neuroscan/common/model"
	"neuroscan/internal/worker/domains/common"
	"neuroscan/internal/worker/domains/handlers/thumbnail"
)

// HandlerMap 路由表（ActionType → Handler 构造函数）
type HandlerMap map[string]common.HandlerFactory

// NewHandlerMap 注册所有业务 Handler
func NewHandlerMap(thumbnailDeps thumbnail.Deps) HandlerMap {
	return HandlerMap{
		model.ActionTypeThumbnailRender: thumbnail.NewFactory(thumbnailDeps),
	}
}
