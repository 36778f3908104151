package rppatient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"neuroscan/common/entity"
	"neuroscan/internal/app/domains/classifier"
	"neuroscan/internal/app/domains/entity/etpatient"
	"neuroscan/internal/app/pkg/errorx"
)

// PatientRepositoryImpl 患者记录仓储实现（MySQL）
type PatientRepositoryImpl struct {
	db *gorm.DB
}

// NewPatientRepository 创建仓储实例
func NewPatientRepository(db *gorm.DB) PatientRepository {
	return &PatientRepositoryImpl{db: db}
}

// Create 创建记录，将领域对象转换为 GORM 模型后存储
func (r *PatientRepositoryImpl) Create(ctx context.Context, record *etpatient.Record) error {
	po, err := toGormModel(record)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(po).Error
}

// GetByID 根据ID查询记录
func (r *PatientRepositoryImpl) GetByID(ctx context.Context, id string) (*etpatient.Record, error) {
	var po entity.Patient
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&po).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.ErrPatientNotFound
		}
		return nil, err
	}
	return toDomainModel(&po)
}

// List 分页查询记录列表
func (r *PatientRepositoryImpl) List(ctx context.Context, page, limit int) ([]*etpatient.Record, int64, error) {
	var total int64
	var pos []entity.Patient

	if err := r.db.WithContext(ctx).Model(&entity.Patient{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&pos).Error
	if err != nil {
		return nil, 0, err
	}

	records := make([]*etpatient.Record, 0, len(pos))
	for i := range pos {
		record, err := toDomainModel(&pos[i])
		if err != nil {
			return nil, 0, err
		}
		records = append(records, record)
	}

	return records, total, nil
}

// Delete 删除记录
func (r *PatientRepositoryImpl) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Patient{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errorx.ErrPatientNotFound
	}
	return nil
}

// toGormModel 领域对象转换为 GORM 模型
func toGormModel(record *etpatient.Record) (*entity.Patient, error) {
	images := make([]entity.Image, 0, len(record.Images))
	for _, img := range record.Images {
		images = append(images, entity.Image{
			Position:      img.Position,
			Filename:      img.Filename,
			StoredPath:    img.StoredPath,
			ThumbnailPath: img.ThumbnailPath,
		})
	}
	imagesJSON, err := json.Marshal(images)
	if err != nil {
		return nil, fmt.Errorf("marshal images failed: %w", err)
	}

	return &entity.Patient{
		ID:              record.ID,
		RecordNo:        record.RecordNo,
		Name:            record.Name,
		Age:             record.Age,
		Gender:          record.Gender,
		Outcome:         string(record.Outcome),
		Result:          record.Result,
		Confidence:      record.Confidence,
		Images:          imagesJSON,
		ThumbnailStatus: string(record.ThumbnailStatus),
		CreatedAt:       record.CreatedAt,
		UpdatedAt:       record.UpdatedAt,
	}, nil
}

// toDomainModel GORM 模型转换为领域对象
func toDomainModel(po *entity.Patient) (*etpatient.Record, error) {
	var images []entity.Image
	if len(po.Images) > 0 {
		if err := json.Unmarshal(po.Images, &images); err != nil {
			return nil, fmt.Errorf("unmarshal images failed: %w", err)
		}
	}

	record := &etpatient.Record{
		ID:              po.ID,
		RecordNo:        po.RecordNo,
		Name:            po.Name,
		Age:             po.Age,
		Gender:          po.Gender,
		Outcome:         classifier.Kind(po.Outcome),
		Result:          po.Result,
		Confidence:      po.Confidence,
		Images:          make([]*etpatient.Image, 0, len(images)),
		ThumbnailStatus: etpatient.ThumbnailStatus(po.ThumbnailStatus),
		CreatedAt:       po.CreatedAt,
		UpdatedAt:       po.UpdatedAt,
	}
	for _, img := range images {
		record.Images = append(record.Images, &etpatient.Image{
			Position:      img.Position,
			Filename:      img.Filename,
			StoredPath:    img.StoredPath,
			ThumbnailPath: img.ThumbnailPath,
		})
	}

	return record, nil
}
