package page

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"neuroscan/internal/app/domains/apimodel/response"
	"neuroscan/internal/app/pkg/errorx"
	"neuroscan/internal/app/server/handlers"
)

// Detail 报告页
// GET /patient/:id
func (h *PageHandler) Detail(c *gin.Context) {
	patientID := c.Param("id")

	ctx := c.Request.Context()
	record, err := h.analysisService.GetPatient(ctx, patientID, handlers.WaitDuration(c))
	if errors.Is(err, errorx.ErrPatientNotFound) {
		c.String(http.StatusNotFound, "Patient not found")
		return
	}
	if err != nil {
		h.logger.Errorf(ctx, "get patient failed: id=%s, error=%v", patientID, err)
		c.String(http.StatusInternalServerError, "Failed to load patient record")
		return
	}

	c.HTML(http.StatusOK, "report.html", reportView{Patient: response.FromPatientEntity(record)})
}

// Thumbnail 缩略图
// GET /patient/:id/thumbnails/:position
func (h *PageHandler) Thumbnail(c *gin.Context) {
	patientID := c.Param("id")
	position := c.Param("position")

	ctx := c.Request.Context()
	rc, err := h.analysisService.ThumbnailFile(ctx, patientID, position)
	if errors.Is(err, errorx.ErrPatientNotFound) {
		c.String(http.StatusNotFound, "Thumbnail not found")
		return
	}
	if err != nil {
		h.logger.Errorf(ctx, "open thumbnail failed: id=%s, position=%s, error=%v", patientID, position, err)
		c.String(http.StatusInternalServerError, "Failed to load thumbnail")
		return
	}
	defer rc.Close()

	c.DataFromReader(http.StatusOK, -1, "image/png", rc, nil)
}
