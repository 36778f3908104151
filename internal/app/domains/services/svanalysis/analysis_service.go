package svanalysis

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"neuroscan/internal/app/domains/classifier"
	"neuroscan/internal/app/domains/entity/etpatient"
	"neuroscan/internal/app/domains/modules/mdpatient"
	"neuroscan/internal/app/domains/modules/mdthumbnail"
	"neuroscan/internal/app/pkg/errorx"
	"neuroscan/internal/app/pkg/idgen"
	"neuroscan/internal/app/pkg/metrics"
	"neuroscan/pkg/logger"
	"neuroscan/pkg/storage"
)

// UploadFile 单个位置的上传影像
type UploadFile struct {
	Position string
	Filename string
	Content  io.Reader
}

// AnalyzeInput 一次分析请求的输入
type AnalyzeInput struct {
	Patient etpatient.Patient
	Files   []UploadFile
}

// AnalysisService 影像分析服务，负责分析业务编排
type AnalysisService struct {
	patientModule   *mdpatient.PatientModule
	thumbnailModule *mdthumbnail.ThumbnailModule
	store           *storage.UploadStore
	classifier      *classifier.Classifier
	idGen           *idgen.SnowflakeIDGenerator
	logger          logger.Logger
}

// NewAnalysisService 创建分析服务实例
func NewAnalysisService(
	patientModule *mdpatient.PatientModule,
	thumbnailModule *mdthumbnail.ThumbnailModule,
	store *storage.UploadStore,
	cls *classifier.Classifier,
	idGen *idgen.SnowflakeIDGenerator,
	log logger.Logger,
) *AnalysisService {
	return &AnalysisService{
		patientModule:   patientModule,
		thumbnailModule: thumbnailModule,
		store:           store,
		classifier:      cls,
		idGen:           idGen,
		logger:          log,
	}
}

// Analyze 分析上传影像（完整业务流程）
// 1. 校验患者信息
// 2. 保存上传文件
// 3. 按文件名分类
// 4. 创建检查记录并落库
// 5. 发布缩略图任务
func (s *AnalysisService) Analyze(ctx context.Context, input AnalyzeInput) (*etpatient.Record, error) {
	if err := input.Patient.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", errorx.ErrInvalidUpload, err)
	}

	patientID := uuid.New().String()
	ctx = logger.WithPatientID(ctx, patientID)

	images, err := s.saveFiles(ctx, patientID, input.Files)
	if err != nil {
		s.cleanup(ctx, patientID)
		return nil, err
	}

	names := make([]string, 0, len(images))
	for _, img := range images {
		names = append(names, img.Filename)
	}
	outcome := s.classifier.Classify(names)

	record, err := etpatient.NewRecord(patientID, s.idGen.NextID(), input.Patient, outcome, images)
	if err != nil {
		s.cleanup(ctx, patientID)
		return nil, fmt.Errorf("%w: %v", errorx.ErrInvalidUpload, err)
	}

	if err := s.patientModule.CreateRecord(ctx, record); err != nil {
		s.cleanup(ctx, patientID)
		return nil, fmt.Errorf("save patient record failed: %w", err)
	}
	metrics.ClassificationsTotal.WithLabelValues(string(outcome.Kind)).Inc()

	s.logger.Infof(ctx, "analysis finished: record_no=%d, outcome=%s, images=%d", record.RecordNo, outcome.Kind, len(images))

	if len(images) > 0 {
		s.publishThumbnails(ctx, record)
	}

	return record, nil
}

// GetPatient 查询检查记录
// wait > 0 且缩略图仍在渲染时，最多等待 wait 后重新加载（Smart Wait）
func (s *AnalysisService) GetPatient(ctx context.Context, patientID string, wait time.Duration) (*etpatient.Record, error) {
	if _, err := uuid.Parse(patientID); err != nil {
		return nil, fmt.Errorf("%w: %s", errorx.ErrPatientNotFound, patientID)
	}

	record, err := s.patientModule.GetRecord(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if wait <= 0 || !record.ThumbnailsPending() {
		return record, nil
	}

	ctx = logger.WithPatientID(ctx, patientID)
	notification, err := s.thumbnailModule.WaitForThumbnails(ctx, patientID, wait)
	if err != nil {
		// 通知可能在订阅前已发出，超时或订阅失败后仍重新加载一次
		s.logger.Warnf(ctx, "wait for thumbnails failed: %v", err)
	} else {
		s.logger.Debugf(ctx, "thumbnails notified: status=%s", notification.Status)
	}

	reloaded, err := s.patientModule.GetRecord(ctx, patientID)
	if err != nil {
		s.logger.Warnf(ctx, "reload patient after wait failed: %v", err)
		return record, nil
	}
	return reloaded, nil
}

// ListPatients 分页查询检查记录（最新的在前）
func (s *AnalysisService) ListPatients(ctx context.Context, page, limit int) ([]*etpatient.Record, int64, error) {
	return s.patientModule.ListRecords(ctx, page, limit)
}

// DeletePatient 删除检查记录及其文件
func (s *AnalysisService) DeletePatient(ctx context.Context, patientID string) error {
	if _, err := uuid.Parse(patientID); err != nil {
		return fmt.Errorf("%w: %s", errorx.ErrPatientNotFound, patientID)
	}

	if err := s.patientModule.DeleteRecord(ctx, patientID); err != nil {
		return err
	}

	ctx = logger.WithPatientID(ctx, patientID)
	s.cleanup(ctx, patientID)
	s.logger.Infof(ctx, "patient deleted")
	return nil
}

// ThumbnailFile 打开某个位置的缩略图
func (s *AnalysisService) ThumbnailFile(ctx context.Context, patientID, position string) (io.ReadCloser, error) {
	record, err := s.GetPatient(ctx, patientID, 0)
	if err != nil {
		return nil, err
	}

	img, ok := record.Image(position)
	if !ok || img.ThumbnailPath == "" {
		return nil, fmt.Errorf("%w: no thumbnail for %s", errorx.ErrPatientNotFound, position)
	}

	f, err := s.store.Open(img.ThumbnailPath)
	if err != nil {
		return nil, fmt.Errorf("open thumbnail failed: %w", err)
	}
	return f, nil
}

// saveFiles 保存上传文件，跳过空文件名的位置
func (s *AnalysisService) saveFiles(ctx context.Context, patientID string, files []UploadFile) ([]*etpatient.Image, error) {
	images := make([]*etpatient.Image, 0, len(files))
	for _, f := range files {
		if f.Filename == "" || f.Content == nil {
			continue
		}

		storedPath, err := s.store.Save(ctx, patientID, f.Filename, f.Content)
		if err != nil {
			if errors.Is(err, storage.ErrFileTooLarge) {
				return nil, fmt.Errorf("%w: %s", errorx.ErrUploadTooLarge, f.Position)
			}
			return nil, fmt.Errorf("save %s image failed: %w", f.Position, err)
		}

		images = append(images, &etpatient.Image{
			Position:   f.Position,
			Filename:   storage.SecureFilename(f.Filename),
			StoredPath: storedPath,
		})
	}
	return images, nil
}

// publishThumbnails 发布缩略图任务，失败只记录日志，不影响分析结果
func (s *AnalysisService) publishThumbnails(ctx context.Context, record *etpatient.Record) {
	requestID := logger.RequestID(ctx)
	if requestID == "" {
		requestID = uuid.New().String()
	}

	jobID, err := s.thumbnailModule.PublishRenderJob(ctx, requestID, record)
	if err != nil {
		metrics.ThumbnailJobsPublished.WithLabelValues("error").Inc()
		s.logger.Warnf(ctx, "publish thumbnail job failed: %v", err)
		return
	}
	metrics.ThumbnailJobsPublished.WithLabelValues("ok").Inc()
	s.logger.Debugf(ctx, "thumbnail job published: job_id=%s", jobID)
}

func (s *AnalysisService) cleanup(ctx context.Context, patientID string) {
	if err := s.store.RemovePatient(patientID); err != nil {
		s.logger.Errorf(ctx, "remove patient files failed: %v", err)
	}
}
