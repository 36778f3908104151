package common

import "encoding/json"

// Job 标准 Job 结构（消费侧，业务数据延迟解析）
type Job struct {
	Payload *JobPayload `json:"payload"`
}

// JobPayload 任务载荷
type JobPayload struct {
	Data *JobPayloadData `json:"data"`
}

// JobPayloadData 任务元信息 + 业务数据
type JobPayloadData struct {
	RequestID  string          `json:"request_id"`
	ActionType string          `json:"action_type"`
	ID         string          `json:"id"`
	Data       json.RawMessage `json:"data"`
}

// Meta Job 元信息
type Meta struct {
	RequestID  string `json:"request_id"`
	ActionType string `json:"action_type"`
	ID         string `json:"id"`
}
