package page

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"neuroscan/internal/app/server/templates"
)

// Delete 删除记录后跳转回列表页
// POST /delete_patient/:id
func (h *PageHandler) Delete(c *gin.Context) {
	patientID := c.Param("id")

	flash := templates.FlashDeleted
	ctx := c.Request.Context()
	if err := h.analysisService.DeletePatient(ctx, patientID); err != nil {
		h.logger.Warnf(ctx, "delete patient failed: id=%s, error=%v", patientID, err)
		flash = templates.FlashDeleteFailed
	}

	c.Redirect(http.StatusFound, "/patients?flash="+flash)
}
