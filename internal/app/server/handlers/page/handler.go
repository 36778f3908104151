package page

import (
	"neuroscan/internal/app/domains/apimodel/response"
	"neuroscan/internal/app/domains/services/svanalysis"
	"neuroscan/pkg/logger"
)

// PageHandler HTML 页面处理器
type PageHandler struct {
	analysisService *svanalysis.AnalysisService
	logger          logger.Logger
}

// NewPageHandler 创建页面处理器实例
func NewPageHandler(analysisService *svanalysis.AnalysisService, log logger.Logger) *PageHandler {
	return &PageHandler{
		analysisService: analysisService,
		logger:          log,
	}
}

// indexView 上传表单页数据
type indexView struct {
	Error       string
	PatientName string
	Age         int
	Gender      string
	Positions   []string
}

// reportView 报告页数据
type reportView struct {
	Patient *response.PatientResponse
}

// patientsView 患者列表页数据
type patientsView struct {
	Patients      []*response.PatientResponse
	Total         int64
	Page          int
	TotalPages    int
	PrevPage      int // 0 表示没有上一页
	NextPage      int // 0 表示没有下一页
	Flash         string
	FlashCategory string
}
