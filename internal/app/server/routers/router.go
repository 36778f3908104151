package routers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"neuroscan/internal/app/server/handlers"
	"neuroscan/internal/app/server/handlers/page"
	"neuroscan/internal/app/server/handlers/patient"
	"neuroscan/internal/app/server/middlewares"
	"neuroscan/internal/app/server/templates"
	"neuroscan/pkg/logger"
)

// Options 路由配置
type Options struct {
	ServiceName    string
	MaxUploadBytes int64
	Logger         logger.Logger
}

// SetupRoutes 配置所有路由，使用 Route Group 分类
func SetupRoutes(
	pageHandler *page.PageHandler,
	patientHandler *patient.PatientHandler,
	opts Options,
) (*gin.Engine, error) {
	r := gin.New()

	tmpl, err := templates.Load()
	if err != nil {
		return nil, fmt.Errorf("load templates failed: %w", err)
	}
	r.SetHTMLTemplate(tmpl)

	// MaxMultipartMemory 只是内存阈值，总大小由 BodyLimit 限制
	if opts.MaxUploadBytes > 0 {
		r.MaxMultipartMemory = opts.MaxUploadBytes
	}
	bodyLimit := middlewares.BodyLimit(handlers.RequestBodyLimit(opts.MaxUploadBytes))

	r.Use(gin.Recovery())
	r.Use(middlewares.CORS())
	r.Use(middlewares.Logger(opts.Logger))
	r.Use(middlewares.Metrics())
	r.Use(middlewares.ErrorHandler(opts.Logger))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": opts.ServiceName,
			"message": "Service is running",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// HTML 页面
	r.GET("/", pageHandler.Index)
	r.POST("/analyze", bodyLimit, pageHandler.Analyze)
	r.GET("/patients", pageHandler.Patients)
	r.GET("/patient/:id", pageHandler.Detail)
	r.GET("/patient/:id/thumbnails/:position", pageHandler.Thumbnail)
	r.POST("/delete_patient/:id", pageHandler.Delete)

	// JSON API
	v1 := r.Group("/api/v1")
	{
		v1.POST("/analyses", bodyLimit, patientHandler.Analyze)

		patients := v1.Group("/patients")
		{
			patients.GET("", patientHandler.List)
			patients.GET("/:id", patientHandler.Get)
			patients.DELETE("/:id", patientHandler.Delete)
		}
	}

	return r, nil
}
