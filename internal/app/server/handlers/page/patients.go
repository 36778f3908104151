package page

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"neuroscan/internal/app/domains/apimodel/response"
	"neuroscan/internal/app/domains/modules/mdpatient"
	"neuroscan/internal/app/server/templates"
)

var flashMessages = map[string]struct {
	message  string
	category string
}{
	templates.FlashDeleted:      {"Patient record deleted successfully.", "success"},
	templates.FlashDeleteFailed: {"Failed to delete patient record.", "error"},
}

// Patients 患者列表，每页 mdpatient.MaxPageSize 条
// GET /patients?page=2&flash=deleted
func (h *PageHandler) Patients(c *gin.Context) {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		page = 1
	}
	limit := mdpatient.MaxPageSize

	ctx := c.Request.Context()
	records, total, err := h.analysisService.ListPatients(ctx, page, limit)
	if err != nil {
		h.logger.Errorf(ctx, "list patients failed: %v", err)
		c.String(http.StatusInternalServerError, "Failed to load patient records")
		return
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	if totalPages < 1 {
		totalPages = 1
	}
	view := patientsView{
		Patients:   response.FromPatientEntities(records, total, page, limit).Items,
		Total:      total,
		Page:       page,
		TotalPages: totalPages,
	}
	if page > 1 {
		view.PrevPage = page - 1
	}
	if page < totalPages {
		view.NextPage = page + 1
	}
	if flash, ok := flashMessages[c.Query("flash")]; ok {
		view.Flash = flash.message
		view.FlashCategory = flash.category
	}

	c.HTML(http.StatusOK, "patients.html", view)
}
