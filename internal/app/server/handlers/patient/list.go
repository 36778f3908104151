package patient

import (
	"github.com/gin-gonic/gin"

	"neuroscan/internal/app/domains/apimodel/request"
	"neuroscan/internal/app/domains/apimodel/response"
	"neuroscan/internal/app/domains/modules/mdpatient"
	"neuroscan/internal/app/pkg/ginx"
)

// List 分页查询检查记录
// GET /api/v1/patients?page=1&limit=20
func (h *PatientHandler) List(c *gin.Context) {
	var req request.ListPatientsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		ginx.BadRequestWithValidation(c, err)
		return
	}
	if req.Page == 0 {
		req.Page = 1
	}
	if req.Limit == 0 {
		req.Limit = mdpatient.DefaultPageSize
	}

	ctx := c.Request.Context()
	records, total, err := h.analysisService.ListPatients(ctx, req.Page, req.Limit)
	if err != nil {
		h.logger.Errorf(ctx, "list patients failed: %v", err)
		ginx.Fail(c, err)
		return
	}

	ginx.Success(c, response.FromPatientEntities(records, total, req.Page, req.Limit))
}
