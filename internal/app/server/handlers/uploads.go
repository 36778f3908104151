package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"neuroscan/internal/app/domains/entity/etpatient"
	"neuroscan/internal/app/domains/services/svanalysis"
	"neuroscan/internal/app/pkg/errorx"
)

// MaxWaitSeconds Smart Wait 最长等待时间
const MaxWaitSeconds = 30

// formOverheadBytes 表单字段与 multipart 边界的余量
const formOverheadBytes = 64 << 10

// RequestBodyLimit 分析请求的请求体上限：四个位置的单文件上限之和加表单余量
func RequestBodyLimit(maxUploadBytes int64) int64 {
	if maxUploadBytes <= 0 {
		return 0
	}
	return maxUploadBytes*int64(len(etpatient.Positions)) + formOverheadBytes
}

// IsBodyTooLarge 判断错误是否由请求体超限引起
func IsBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

// BodyTooLargeError 转换为 errorx.ErrUploadTooLarge
func BodyTooLargeError(err error) error {
	return fmt.Errorf("%w: %v", errorx.ErrUploadTooLarge, err)
}

// CollectUploads 按表单位置（top/bottom/left/right）读取上传文件，缺失的位置跳过
// 返回的 closeFn 负责关闭所有已打开的文件
func CollectUploads(c *gin.Context) ([]svanalysis.UploadFile, func(), error) {
	var opened []io.Closer
	closeFn := func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}

	files := make([]svanalysis.UploadFile, 0, len(etpatient.Positions))
	for _, position := range etpatient.Positions {
		header, err := c.FormFile(position)
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			continue
		}
		if err != nil {
			closeFn()
			if IsBodyTooLarge(err) {
				return nil, func() {}, BodyTooLargeError(err)
			}
			return nil, func() {}, fmt.Errorf("%w: read %s: %v", errorx.ErrInvalidUpload, position, err)
		}
		if header.Filename == "" {
			continue
		}

		f, err := header.Open()
		if err != nil {
			closeFn()
			return nil, func() {}, fmt.Errorf("%w: open %s: %v", errorx.ErrInvalidUpload, position, err)
		}
		opened = append(opened, f)

		files = append(files, svanalysis.UploadFile{
			Position: position,
			Filename: header.Filename,
			Content:  f,
		})
	}

	return files, closeFn, nil
}

// WaitDuration 解析 ?wait=<seconds>，非法值视为 0，超过上限时截断
func WaitDuration(c *gin.Context) time.Duration {
	waitStr := c.Query("wait")
	if waitStr == "" {
		return 0
	}
	w, err := strconv.Atoi(waitStr)
	if err != nil || w <= 0 {
		return 0
	}
	if w > MaxWaitSeconds {
		w = MaxWaitSeconds
	}
	return time.Duration(w) * time.Second
}
