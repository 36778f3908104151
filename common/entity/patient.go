package entity

import (
	"time"

	"gorm.io/datatypes"
)

// Patient 患者检查记录实体（包含分类结果）
type Patient struct {
	// 基础字段
	ID       string `gorm:"column:id;primaryKey;type:varchar(64)"`
	RecordNo int64  `gorm:"column:record_no;not null;uniqueIndex:uk_record_no"`

	// 患者信息
	Name   string `gorm:"column:name;type:varchar(255);not null"`
	Age    int    `gorm:"column:age;not null"`
	Gender string `gorm:"column:gender;type:varchar(32)"`

	// 分类结果
	Outcome    string   `gorm:"column:outcome;type:varchar(16);not null;index:idx_outcome"`
	Result     string   `gorm:"column:result;type:varchar(255);not null"`
	Confidence *float64 `gorm:"column:confidence"`

	// 影像与缩略图
	Images          datatypes.JSON `gorm:"column:images;type:json"`
	ThumbnailStatus string         `gorm:"column:thumbnail_status;type:varchar(16);not null;default:'PENDING'"`

	// 时间戳
	CreatedAt time.Time `gorm:"column:created_at;not null;index:idx_created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

// TableName 指定表名
func (Patient) TableName() string {
	return "patients"
}

// 缩略图状态常量
const (
	ThumbnailStatusPending = "PENDING"
	ThumbnailStatusReady   = "READY"
	ThumbnailStatusFailed  = "FAILED"
	ThumbnailStatusSkipped = "SKIPPED"
)

// Image 影像文件（images 列的 JSON 元素）
type Image struct {
	Position      string `json:"position"`
	Filename      string `json:"filename"`
	StoredPath    string `json:"stored_path"`
	ThumbnailPath string `json:"thumbnail_path,omitempty"`
}
