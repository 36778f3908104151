package page

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"neuroscan/internal/app/domains/entity/etpatient"
)

// Index 上传表单
// GET /
func (h *PageHandler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", indexView{Positions: etpatient.Positions})
}
