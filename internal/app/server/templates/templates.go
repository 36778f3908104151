package templates

import (
	"embed"
	"fmt"
	"html/template"
)

//go:embed *.html
var files embed.FS

// 页面提示
const (
	FlashDeleted      = "deleted"
	FlashDeleteFailed = "delete_failed"
)

// Load 解析内嵌的页面模板，供 gin.Engine.SetHTMLTemplate 使用
func Load() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"confidence": formatConfidence,
	}).ParseFS(files, "*.html")
}

func formatConfidence(c *float64) string {
	if c == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.2f%%", *c)
}
