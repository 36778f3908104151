package etpatient

import (
	"errors"
	"strings"
	"time"

	"neuroscan/internal/app/domains/classifier"
)

// 错误定义
var (
	ErrInvalidPatientID = errors.New("patient ID cannot be empty")
	ErrInvalidName      = errors.New("patient name cannot be empty")
	ErrInvalidAge       = errors.New("patient age must be between 0 and 150")
)

// DateLayout 报告页展示的检查时间格式
const DateLayout = "2006-01-02 15:04:05"

// Positions 上传表单中的四个视图位置（按表单顺序）
var Positions = []string{"top", "bottom", "left", "right"}

// Record 患者检查记录（聚合根）
type Record struct {
	ID              string          // 记录ID (UUID)
	RecordNo        int64           // 病历号
	Name            string          // 患者姓名
	Age             int             // 年龄
	Gender          string          // 性别
	Outcome         classifier.Kind // 分类结果类型
	Result          string          // 分类结论文字
	Confidence      *float64        // 置信度（未识别时为 nil）
	Images          []*Image        // 上传影像
	ThumbnailStatus ThumbnailStatus // 缩略图状态
	CreatedAt       time.Time       // 创建时间
	UpdatedAt       time.Time       // 更新时间
}

// Image 上传影像（值对象）
type Image struct {
	Position      string
	Filename      string
	StoredPath    string
	ThumbnailPath string
}

// ThumbnailStatus 缩略图状态
type ThumbnailStatus string

const (
	ThumbnailStatusPending ThumbnailStatus = "PENDING"
	ThumbnailStatusReady   ThumbnailStatus = "READY"
	ThumbnailStatusFailed  ThumbnailStatus = "FAILED"
	ThumbnailStatusSkipped ThumbnailStatus = "SKIPPED"
)

// Patient 患者基本信息（值对象）
type Patient struct {
	Name   string
	Age    int
	Gender string
}

// Validate 校验患者信息
func (p Patient) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrInvalidName
	}
	if p.Age < 0 || p.Age > 150 {
		return ErrInvalidAge
	}
	return nil
}

// NewRecord 创建检查记录（工厂方法）
func NewRecord(id string, recordNo int64, patient Patient, outcome classifier.Outcome, images []*Image) (*Record, error) {
	if id == "" {
		return nil, ErrInvalidPatientID
	}
	if err := patient.Validate(); err != nil {
		return nil, err
	}

	status := ThumbnailStatusPending
	if len(images) == 0 {
		status = ThumbnailStatusSkipped
	}

	now := time.Now()
	return &Record{
		ID:              id,
		RecordNo:        recordNo,
		Name:            strings.TrimSpace(patient.Name),
		Age:             patient.Age,
		Gender:          strings.TrimSpace(patient.Gender),
		Outcome:         outcome.Kind,
		Result:          outcome.Label,
		Confidence:      outcome.Confidence,
		Images:          images,
		ThumbnailStatus: status,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// AttachThumbnails 写入缩略图路径（领域行为）
// thumbs: position -> 缩略图路径
func (r *Record) AttachThumbnails(thumbs map[string]string) {
	for _, img := range r.Images {
		if p, ok := thumbs[img.Position]; ok {
			img.ThumbnailPath = p
		}
	}
	r.ThumbnailStatus = ThumbnailStatusReady
	r.UpdatedAt = time.Now()
}

// MarkThumbnailsFailed 标记缩略图渲染失败（领域行为）
func (r *Record) MarkThumbnailsFailed() {
	r.ThumbnailStatus = ThumbnailStatusFailed
	r.UpdatedAt = time.Now()
}

// ThumbnailsPending 缩略图是否仍在渲染
func (r *Record) ThumbnailsPending() bool {
	return r.ThumbnailStatus == ThumbnailStatusPending
}

// Image 按位置查找影像
func (r *Record) Image(position string) (*Image, bool) {
	for _, img := range r.Images {
		if img.Position == position {
			return img, true
		}
	}
	return nil, false
}

// Date 按报告格式输出检查时间
func (r *Record) Date() string {
	return r.CreatedAt.Format(DateLayout)
}
