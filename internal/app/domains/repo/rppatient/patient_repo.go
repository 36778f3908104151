package rppatient

import (
	"context"

	"neuroscan/internal/app/domains/entity/etpatient"
)

// PatientRepository 患者记录仓储接口
type PatientRepository interface {
	// Create 创建记录
	Create(ctx context.Context, record *etpatient.Record) error

	// GetByID 根据ID查询记录，不存在返回 errorx.ErrPatientNotFound
	GetByID(ctx context.Context, id string) (*etpatient.Record, error)

	// List 分页查询，按创建时间倒序
	List(ctx context.Context, page, limit int) ([]*etpatient.Record, int64, error)

	// Delete 删除记录，不存在返回 errorx.ErrPatientNotFound
	Delete(ctx context.Context, id string) error
}
