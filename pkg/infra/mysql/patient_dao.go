package mysql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"neuroscan/common/entity"
)

// ErrPatientNotFound 记录不存在（任务处理期间被删除）
var ErrPatientNotFound = errors.New("patient not found")

// PatientDAO 检查记录数据访问对象（thumbnail_worker 使用）
type PatientDAO struct {
	db *gorm.DB
}

// NewPatientDAO 创建 PatientDAO 实例
func NewPatientDAO(dsn string) (*PatientDAO, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return NewPatientDAOWithDB(db), nil
}

// NewPatientDAOWithDB 使用已有连接创建
func NewPatientDAOWithDB(db *gorm.DB) *PatientDAO {
	return &PatientDAO{db: db}
}

// UpdateThumbnails 写入缩略图路径并更新缩略图状态
// 参数：
//   - patientID: 记录 ID
//   - thumbs: position -> 缩略图路径（失败时可为空）
//   - status: READY/FAILED
func (dao *PatientDAO) UpdateThumbnails(ctx context.Context, patientID string, thumbs map[string]string, status string) error {
	return dao.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var po entity.Patient
		if err := tx.Where("id = ?", patientID).First(&po).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %s", ErrPatientNotFound, patientID)
			}
			return fmt.Errorf("failed to get patient: %w", err)
		}

		images, err := MergeThumbnails(po.Images, thumbs)
		if err != nil {
			return err
		}

		result := tx.Model(&entity.Patient{}).
			Where("id = ?", patientID).
			Updates(map[string]interface{}{
				"images":           images,
				"thumbnail_status": status,
				"updated_at":       time.Now(),
			})
		if result.Error != nil {
			return fmt.Errorf("failed to update patient: %w", result.Error)
		}
		return nil
	})
}

// MergeThumbnails 将缩略图路径合并进 images 列
func MergeThumbnails(raw datatypes.JSON, thumbs map[string]string) (datatypes.JSON, error) {
	images := make([]entity.Image, 0)
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &images); err != nil {
			return nil, fmt.Errorf("failed to unmarshal images: %w", err)
		}
	}

	for i := range images {
		if p, ok := thumbs[images[i].Position]; ok {
			images[i].ThumbnailPath = p
		}
	}

	data, err := json.Marshal(images)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal images: %w", err)
	}
	return datatypes.JSON(data), nil
}

// Close 关闭数据库连接
func (dao *PatientDAO) Close() error {
	sqlDB, err := dao.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
