package classifier

import (
	"slices"
	"sort"
)

// Kind 分类结果类型
type Kind string

const (
	KindTumor        Kind = "TUMOR"
	KindNoTumor      Kind = "NO_TUMOR"
	KindUnrecognized Kind = "UNRECOGNIZED"
)

// ViewSet 一个诊断类别对应的四个标准视图文件名主干
type ViewSet [4]string

var (
	// TumorViews 肿瘤类别的标准视图
	TumorViews = ViewSet{"left", "right", "sagn", "sagi"}
	// NoTumorViews 无肿瘤类别的标准视图
	NoTumorViews = ViewSet{"left1", "right1", "sagn1", "sagi1"}
)

var (
	sortedTumor   = TumorViews.sorted()
	sortedNoTumor = NoTumorViews.sorted()
)

func (v ViewSet) sorted() []string {
	out := make([]string, 0, len(v))
	for _, s := range v {
		out = append(out, Normalize(s))
	}
	sort.Strings(out)
	return out
}

// Match 将上传文件名主干归一化、排序后与两组标准视图逐项比较
// 数量或内容不一致（含空输入、重复项）均返回 KindUnrecognized；不修改入参
func Match(stems []string) Kind {
	normalized := make([]string, 0, len(stems))
	for _, s := range stems {
		normalized = append(normalized, Normalize(s))
	}
	sort.Strings(normalized)

	switch {
	case slices.Equal(normalized, sortedTumor):
		return KindTumor
	case slices.Equal(normalized, sortedNoTumor):
		return KindNoTumor
	default:
		return KindUnrecognized
	}
}
