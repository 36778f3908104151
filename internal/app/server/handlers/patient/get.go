package patient

import (
	"github.com/gin-gonic/gin"

	"neuroscan/internal/app/domains/apimodel/response"
	"neuroscan/internal/app/pkg/ginx"
	"neuroscan/internal/app/server/handlers"
)

// Get 查询检查记录
// GET /api/v1/patients/:id?wait=5
// 缩略图仍在渲染时，wait 秒内等待 worker 通知
func (h *PatientHandler) Get(c *gin.Context) {
	patientID := c.Param("id")
	if patientID == "" {
		ginx.BadRequest(c, "patient id required")
		return
	}

	ctx := c.Request.Context()
	record, err := h.analysisService.GetPatient(ctx, patientID, handlers.WaitDuration(c))
	if err != nil {
		h.logger.Warnf(ctx, "get patient failed: id=%s, error=%v", patientID, err)
		ginx.Fail(c, err)
		return
	}

	ginx.Success(c, response.FromPatientEntity(record))
}
