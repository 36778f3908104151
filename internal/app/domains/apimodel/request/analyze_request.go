package request

// AnalyzeRequest 影像分析请求（multipart 表单字段，文件按位置单独读取）
type AnalyzeRequest struct {
	PatientName string `form:"patient_name" binding:"required,max=128" example:"Jane Doe"`
	Age         int    `form:"age" binding:"gte=0,lte=150" example:"42"`
	Gender      string `form:"gender" binding:"max=32" example:"female"`
}

// ListPatientsRequest 患者列表查询参数
type ListPatientsRequest struct {
	Page  int `form:"page" binding:"omitempty,gte=1" example:"1"`
	Limit int `form:"limit" binding:"omitempty,gte=1,lte=500" example:"20"`
}
