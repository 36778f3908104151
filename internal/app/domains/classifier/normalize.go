package classifier

import (
	"path/filepath"
	"strings"
)

// separatorRemover 去掉空格、连字符、下划线
var separatorRemover = strings.NewReplacer(" ", "", "-", "", "_", "")

// Normalize 归一化文件名主干：去首尾空白、转小写、删除空格/连字符/下划线
// 其余字符保持不变；对已归一化的结果再次调用结果不变
func Normalize(stem string) string {
	return separatorRemover.Replace(strings.ToLower(strings.TrimSpace(stem)))
}

// Stem 去掉目录和最后一个扩展名，如 "/uploads/p/Left.PNG" -> "Left"
// 以 "." 开头且没有其他 "." 的文件名（如 ".hidden"）视为没有扩展名
func Stem(path string) string {
	base := filepath.Base(path)
	if base == "." || base == string(filepath.Separator) {
		return ""
	}
	if i := strings.LastIndex(base, "."); i > 0 && i < len(base)-1 {
		base = base[:i]
	}
	return base
}
