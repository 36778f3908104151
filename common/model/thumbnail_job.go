package model

// ActionTypeThumbnailRender 缩略图渲染任务类型
const ActionTypeThumbnailRender = "thumbnail_render"

// Job lmstfy 标准任务结构（apiserver 发布，thumbnail_worker 消费）
type Job struct {
	Payload *JobPayload `json:"payload"`
}

// JobPayload 任务载荷
type JobPayload struct {
	Data *JobPayloadData `json:"data"`
}

// JobPayloadData 任务元信息 + 业务数据
type JobPayloadData struct {
	RequestID  string      `json:"request_id"`
	ActionType string      `json:"action_type"`
	ID         string      `json:"id"`
	Data       interface{} `json:"data"`
}

// ThumbnailJobData 缩略图任务业务数据
type ThumbnailJobData struct {
	PatientID string          `json:"patient_id"`
	Images    []ThumbnailItem `json:"images"`
}

// ThumbnailItem 单张影像
type ThumbnailItem struct {
	Position   string `json:"position"`
	StoredPath string `json:"stored_path"`
}

// NewThumbnailJob 构造缩略图任务
func NewThumbnailJob(requestID string, data ThumbnailJobData) *Job {
	return &Job{
		Payload: &JobPayload{
			Data: &JobPayloadData{
				RequestID:  requestID,
				ActionType: ActionTypeThumbnailRender,
				ID:         data.PatientID,
				Data:       data,
			},
		},
	}
}
