package page

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"neuroscan/internal/app/domains/apimodel/request"
	"neuroscan/internal/app/domains/apimodel/response"
	"neuroscan/internal/app/domains/entity/etpatient"
	"neuroscan/internal/app/domains/services/svanalysis"
	"neuroscan/internal/app/pkg/errorx"
	"neuroscan/internal/app/pkg/ginx"
	"neuroscan/internal/app/server/handlers"
)

// Analyze 提交表单并展示报告
// POST /analyze
func (h *PageHandler) Analyze(c *gin.Context) {
	var req request.AnalyzeRequest
	if err := c.ShouldBind(&req); err != nil {
		if handlers.IsBodyTooLarge(err) {
			h.renderForm(c, http.StatusRequestEntityTooLarge, req, handlers.BodyTooLargeError(err).Error())
			return
		}
		h.renderForm(c, http.StatusBadRequest, req, bindErrorMessage(err))
		return
	}

	files, closeFiles, err := handlers.CollectUploads(c)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, errorx.ErrUploadTooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		h.renderForm(c, status, req, err.Error())
		return
	}
	defer closeFiles()

	ctx := c.Request.Context()
	record, err := h.analysisService.Analyze(ctx, svanalysis.AnalyzeInput{
		Patient: req.ToPatientEntity(),
		Files:   files,
	})
	switch {
	case err == nil:
	case errors.Is(err, errorx.ErrInvalidUpload):
		h.renderForm(c, http.StatusBadRequest, req, err.Error())
		return
	case errors.Is(err, errorx.ErrUploadTooLarge):
		h.renderForm(c, http.StatusRequestEntityTooLarge, req, err.Error())
		return
	default:
		h.logger.Errorf(ctx, "analyze failed: %v", err)
		h.renderForm(c, http.StatusInternalServerError, req, "Analysis failed, please try again.")
		return
	}

	c.HTML(http.StatusOK, "report.html", reportView{Patient: response.FromPatientEntity(record)})
}

func (h *PageHandler) renderForm(c *gin.Context, status int, req request.AnalyzeRequest, message string) {
	c.HTML(status, "index.html", indexView{
		Error:       message,
		PatientName: req.PatientName,
		Age:         req.Age,
		Gender:      req.Gender,
		Positions:   etpatient.Positions,
	})
}

func bindErrorMessage(err error) string {
	details := ginx.ValidationDetails(err)
	if len(details) == 0 {
		return err.Error()
	}
	msgs := make([]string, 0, len(details))
	for _, d := range details {
		msgs = append(msgs, d.Info)
	}
	return strings.Join(msgs, "; ")
}
