package mdthumbnail

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"neuroscan/common/model"
	"neuroscan/internal/app/domains/entity/etpatient"
)

// JobPublisher 任务发布（lmstfy）
type JobPublisher interface {
	Publish(ctx context.Context, queue string, job interface{}) (string, error)
}

// ResultWaiter 等待频道消息（Redis PubSub）
type ResultWaiter interface {
	Wait(ctx context.Context, channel string, timeout time.Duration) (string, error)
}

// ThumbnailModule 缩略图模块
// 职责：
// 1. 构造缩略图任务消息并投递到 lmstfy 队列
// 2. 等待 thumbnail_worker 通过 Redis 推送的完成通知
type ThumbnailModule struct {
	publisher JobPublisher
	waiter    ResultWaiter
	queueName string
}

// NewThumbnailModule 创建缩略图模块实例
func NewThumbnailModule(publisher JobPublisher, waiter ResultWaiter, queueName string) *ThumbnailModule {
	return &ThumbnailModule{
		publisher: publisher,
		waiter:    waiter,
		queueName: queueName,
	}
}

// PublishRenderJob 发布缩略图渲染任务，返回 job_id
func (m *ThumbnailModule) PublishRenderJob(ctx context.Context, requestID string, record *etpatient.Record) (string, error) {
	data := model.ThumbnailJobData{
		PatientID: record.ID,
		Images:    make([]model.ThumbnailItem, 0, len(record.Images)),
	}
	for _, img := range record.Images {
		data.Images = append(data.Images, model.ThumbnailItem{
			Position:   img.Position,
			StoredPath: img.StoredPath,
		})
	}

	return m.publisher.Publish(ctx, m.queueName, model.NewThumbnailJob(requestID, data))
}

// WaitForThumbnails 等待缩略图完成通知（Smart Wait）
func (m *ThumbnailModule) WaitForThumbnails(ctx context.Context, patientID string, timeout time.Duration) (*model.ThumbnailNotification, error) {
	payload, err := m.waiter.Wait(ctx, model.ThumbnailChannel(patientID), timeout)
	if err != nil {
		return nil, err
	}

	var notification model.ThumbnailNotification
	if err := json.Unmarshal([]byte(payload), &notification); err != nil {
		return nil, fmt.Errorf("unmarshal thumbnail notification failed: %w", err)
	}
	return &notification, nil
}
