package mdpatient

import (
	"context"

	"neuroscan/internal/app/domains/entity/etpatient"
	"neuroscan/internal/app/domains/repo/rppatient"
)

// PatientModule 患者记录模块（数据操作）
type PatientModule struct {
	patientRepo rppatient.PatientRepository
}

// NewPatientModule 创建患者记录模块
func NewPatientModule(patientRepo rppatient.PatientRepository) *PatientModule {
	return &PatientModule{
		patientRepo: patientRepo,
	}
}

// CreateRecord 保存检查记录
func (m *PatientModule) CreateRecord(ctx context.Context, record *etpatient.Record) error {
	return m.patientRepo.Create(ctx, record)
}

// GetRecord 查询检查记录
func (m *PatientModule) GetRecord(ctx context.Context, id string) (*etpatient.Record, error) {
	return m.patientRepo.GetByID(ctx, id)
}

// ListRecords 分页查询检查记录，page/limit 越界时取默认值
func (m *PatientModule) ListRecords(ctx context.Context, page, limit int) ([]*etpatient.Record, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > MaxPageSize {
		limit = DefaultPageSize
	}
	return m.patientRepo.List(ctx, page, limit)
}

// DeleteRecord 删除检查记录
func (m *PatientModule) DeleteRecord(ctx context.Context, id string) error {
	return m.patientRepo.Delete(ctx, id)
}

const (
	// DefaultPageSize 默认分页大小
	DefaultPageSize = 20
	// MaxPageSize 最大分页大小
	MaxPageSize = 500
)
