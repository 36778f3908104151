package response

import "time"

// PatientResponse 检查记录响应（DTO）
type PatientResponse struct {
	ID              string           `json:"id"`
	RecordNo        int64            `json:"record_no"`
	Name            string           `json:"name"`
	Age             int              `json:"age"`
	Gender          string           `json:"gender"`
	Outcome         string           `json:"outcome"`
	Result          string           `json:"result"`
	Confidence      *float64         `json:"confidence"`
	Images          []*ImageResponse `json:"images"`
	ThumbnailStatus string           `json:"thumbnail_status"`
	Date            string           `json:"date"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// ImageResponse 上传影像（DTO）
type ImageResponse struct {
	Position     string `json:"position"`
	Filename     string `json:"filename"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
}

// PatientListResponse 检查记录列表（DTO）
type PatientListResponse struct {
	Items []*PatientResponse `json:"items"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}
