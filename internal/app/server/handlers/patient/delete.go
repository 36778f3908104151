package patient

import (
	"github.com/gin-gonic/gin"

	"neuroscan/internal/app/pkg/ginx"
)

// Delete 删除检查记录
// DELETE /api/v1/patients/:id
func (h *PatientHandler) Delete(c *gin.Context) {
	patientID := c.Param("id")

	ctx := c.Request.Context()
	if err := h.analysisService.DeletePatient(ctx, patientID); err != nil {
		h.logger.Warnf(ctx, "delete patient failed: id=%s, error=%v", patientID, err)
		ginx.Fail(c, err)
		return
	}

	ginx.Success(c, gin.H{"id": patientID, "deleted": true})
}
