package model

import "fmt"

// ThumbnailNotification 缩略图完成通知（Redis PubSub）
type ThumbnailNotification struct {
	PatientID string `json:"patient_id"`
	Status    string `json:"status"` // READY/FAILED
	Timestamp int64  `json:"timestamp"`
}

// ThumbnailChannel 返回患者独立频道名称（业务约定：thumbnail:ready:{patientID}）
func ThumbnailChannel(patientID string) string {
	return fmt.Sprintf("thumbnail:ready:%s", patientID)
}
