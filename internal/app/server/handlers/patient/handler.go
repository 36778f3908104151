package patient

import (
	"neuroscan/internal/app/domains/services/svanalysis"
	"neuroscan/pkg/logger"
)

// PatientHandler 检查记录 JSON API 处理器
type PatientHandler struct {
	analysisService *svanalysis.AnalysisService
	logger          logger.Logger
}

// NewPatientHandler 创建处理器实例
func NewPatientHandler(analysisService *svanalysis.AnalysisService, log logger.Logger) *PatientHandler {
	return &PatientHandler{
		analysisService: analysisService,
		logger:          log,
	}
}
