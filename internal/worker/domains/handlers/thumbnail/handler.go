package thumbnail

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"time"

	"github.com/nfnt/resize"

	"neuroscan/common/entity"
	"neuroscan/common/model"
	"neuroscan/internal/worker/domains/common"
	"neuroscan/pkg/errorutil"
	"neuroscan/pkg/infra/mysql"
	"neuroscan/pkg/logger"
	"neuroscan/pkg/storage"
)

// DefaultSize 缩略图默认边长（像素）
const DefaultSize uint = 192

// ThumbnailDAO 缩略图结果持久化
type ThumbnailDAO interface {
	UpdateThumbnails(ctx context.Context, patientID string, thumbs map[string]string, status string) error
}

// Notifier 完成通知（Redis PubSub）
type Notifier interface {
	Publish(ctx context.Context, channel string, message interface{}) error
}

// Deps Handler 依赖
type Deps struct {
	Store    *storage.UploadStore
	DAO      ThumbnailDAO
	Notifier Notifier
	Size     uint
	Logger   logger.Logger
}

// Result 处理结果
type Result struct {
	PatientID  string            `json:"patient_id"`
	Status     string            `json:"status"`
	Thumbnails map[string]string `json:"thumbnails,omitempty"`
}

// ThumbnailHandler 缩略图渲染 Handler
type ThumbnailHandler struct {
	ctx  context.Context
	meta *common.Meta
	data *model.ThumbnailJobData
	deps Deps
}

// NewFactory 返回绑定依赖的 Handler 构造函数
func NewFactory(deps Deps) common.HandlerFactory {
	if deps.Size == 0 {
		deps.Size = DefaultSize
	}

	return func(ctx context.Context, meta *common.Meta, payload json.RawMessage) (common.HandlerServ, error) {
		var data model.ThumbnailJobData
		if err := json.Unmarshal(payload, &data); err != nil {
			return nil, fmt.Errorf("unmarshal thumbnail data failed: %w", err)
		}
		if data.PatientID == "" {
			data.PatientID = meta.ID
		}
		if data.PatientID == "" {
			return nil, errors.New("patient_id is required")
		}

		return &ThumbnailHandler{
			ctx:  logger.WithPatientID(ctx, data.PatientID),
			meta: meta,
			data: &data,
			deps: deps,
		}, nil
	}
}

// GetProcess 处理缩略图任务
func (h *ThumbnailHandler) GetProcess() *common.Response {
	result := &Result{PatientID: h.data.PatientID}
	err := h.process(result)

	resp := &common.Response{}
	resp.WrapResponse(result, h.meta, err)
	return resp
}

// process 渲染全部影像的缩略图，写库后发布完成通知
// 影像无法读取/解码时记录标记为 FAILED 且不重试；存储或数据库故障可重试
func (h *ThumbnailHandler) process(result *Result) error {
	thumbs := make(map[string]string, len(h.data.Images))
	for _, item := range h.data.Images {
		if err := h.ctx.Err(); err != nil {
			return errorutil.Retriable("thumbnail job timed out", err)
		}

		thumbPath, err := h.render(item)
		if err != nil {
			if !errorutil.IsRetriable(err) {
				h.markFailed()
				result.Status = entity.ThumbnailStatusFailed
			}
			return err
		}
		thumbs[item.Position] = thumbPath
	}

	if err := h.deps.DAO.UpdateThumbnails(h.ctx, h.data.PatientID, thumbs, entity.ThumbnailStatusReady); err != nil {
		if errors.Is(err, mysql.ErrPatientNotFound) {
			return errorutil.NonRetriable("patient deleted before thumbnails were saved", err)
		}
		return errorutil.Retriable("update thumbnails failed", err)
	}

	result.Status = entity.ThumbnailStatusReady
	result.Thumbnails = thumbs
	h.notify(entity.ThumbnailStatusReady)

	h.deps.Logger.Infof(h.ctx, "thumbnails rendered: count=%d", len(thumbs))
	return nil
}

// render 生成单张缩略图，返回存储路径
func (h *ThumbnailHandler) render(item model.ThumbnailItem) (string, error) {
	src, err := h.deps.Store.Open(item.StoredPath)
	if err != nil {
		return "", errorutil.NonRetriable(fmt.Sprintf("open %s image failed", item.Position), err)
	}
	defer src.Close()

	img, _, err := image.Decode(src)
	if err != nil {
		return "", errorutil.NonRetriable(fmt.Sprintf("decode %s image failed", item.Position), err)
	}

	thumb := resize.Thumbnail(h.deps.Size, h.deps.Size, img, resize.Lanczos3)

	dst, thumbPath, err := h.deps.Store.CreateThumbnail(h.data.PatientID, item.Position)
	if err != nil {
		return "", errorutil.Retriable("create thumbnail file failed", err)
	}
	if err := png.Encode(dst, thumb); err != nil {
		_ = dst.Close()
		return "", errorutil.Retriable("encode thumbnail failed", err)
	}
	if err := dst.Close(); err != nil {
		return "", errorutil.Retriable("close thumbnail file failed", err)
	}

	return thumbPath, nil
}

func (h *ThumbnailHandler) markFailed() {
	if err := h.deps.DAO.UpdateThumbnails(h.ctx, h.data.PatientID, nil, entity.ThumbnailStatusFailed); err != nil {
		h.deps.Logger.Errorf(h.ctx, "mark thumbnails failed: %v", err)
	}
	h.notify(entity.ThumbnailStatusFailed)
}

// notify 推送完成通知，失败只记录日志（apiserver 侧 Smart Wait 超时后仍可读库）
func (h *ThumbnailHandler) notify(status string) {
	notification := model.ThumbnailNotification{
		PatientID: h.data.PatientID,
		Status:    status,
		Timestamp: time.Now().Unix(),
	}
	if err := h.deps.Notifier.Publish(h.ctx, model.ThumbnailChannel(h.data.PatientID), notification); err != nil {
		h.deps.Logger.Warnf(h.ctx, "publish thumbnail notification failed: %v", err)
	}
}
