package patient

import (
	"github.com/gin-gonic/gin"

	"neuroscan/internal/app/domains/apimodel/request"
	"neuroscan/internal/app/domains/apimodel/response"
	"neuroscan/internal/app/domains/services/svanalysis"
	"neuroscan/internal/app/pkg/ginx"
	"neuroscan/internal/app/server/handlers"
)

// Analyze 上传影像并分析
// POST /api/v1/analyses (multipart: patient_name, age, gender, top, bottom, left, right)
func (h *PatientHandler) Analyze(c *gin.Context) {
	var req request.AnalyzeRequest
	if err := c.ShouldBind(&req); err != nil {
		if handlers.IsBodyTooLarge(err) {
			ginx.Fail(c, handlers.BodyTooLargeError(err))
			return
		}
		ginx.BadRequestWithValidation(c, err)
		return
	}

	files, closeFiles, err := handlers.CollectUploads(c)
	if err != nil {
		ginx.Fail(c, err)
		return
	}
	defer closeFiles()

	ctx := c.Request.Context()
	record, err := h.analysisService.Analyze(ctx, svanalysis.AnalyzeInput{
		Patient: req.ToPatientEntity(),
		Files:   files,
	})
	if err != nil {
		h.logger.Errorf(ctx, "analyze failed: %v", err)
		ginx.Fail(c, err)
		return
	}

	ginx.Success(c, response.FromPatientEntity(record))
}
