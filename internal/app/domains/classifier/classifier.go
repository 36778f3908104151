package classifier

import (
	"math"
	"math/rand/v2"
	"sync"
	"time"
)

const (
	// LabelTumor 检出肿瘤
	LabelTumor = "Tumor Detected"
	// LabelNoTumor 未检出肿瘤
	LabelNoTumor = "No Tumor Detected"
	// UnrecognizedMessage 无法匹配标准视图时的固定提示
	UnrecognizedMessage = "Images cannot be recognized. Please ensure all four correct MRI views are uploaded properly."

	// MinConfidence 置信度下限（含）
	MinConfidence = 90.5
	// MaxConfidence 置信度上限（含）
	MaxConfidence = 99.9
)

// Outcome 一次分类的结果
type Outcome struct {
	Kind       Kind
	Label      string
	Confidence *float64 // KindUnrecognized 时为 nil
}

// Detected 是否检出肿瘤
func (o Outcome) Detected() bool {
	return o.Kind == KindTumor
}

// Recognized 是否匹配到任一标准视图组
func (o Outcome) Recognized() bool {
	return o.Kind == KindTumor || o.Kind == KindNoTumor
}

// Classifier 基于文件名的分类器
// 置信度来自可注入的随机源，多个请求并发调用时由 mu 串行化取数
type Classifier struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// Option 分类器选项
type Option func(*Classifier)

// WithSource 指定随机源（测试中用于固定输出）
func WithSource(src rand.Source) Option {
	return func(c *Classifier) {
		c.rng = rand.New(src)
	}
}

// WithSeed 使用固定种子；seed 为 0 时保持随机种子
func WithSeed(seed uint64) Option {
	return func(c *Classifier) {
		if seed != 0 {
			c.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
		}
	}
}

// New 创建分类器
func New(opts ...Option) *Classifier {
	now := uint64(time.Now().UnixNano())
	c := &Classifier{
		rng: rand.New(rand.NewPCG(now, rand.Uint64())),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify 根据文件路径（或文件名主干）列表给出分类结果
func (c *Classifier) Classify(paths []string) Outcome {
	stems := make([]string, 0, len(paths))
	for _, p := range paths {
		stems = append(stems, Stem(p))
	}

	switch kind := Match(stems); kind {
	case KindTumor:
		confidence := c.confidence()
		return Outcome{Kind: kind, Label: LabelTumor, Confidence: &confidence}
	case KindNoTumor:
		confidence := c.confidence()
		return Outcome{Kind: kind, Label: LabelNoTumor, Confidence: &confidence}
	default:
		return Outcome{Kind: KindUnrecognized, Label: UnrecognizedMessage}
	}
}

// confidence 在 [MinConfidence, MaxConfidence] 上均匀取值并保留两位小数
func (c *Classifier) confidence() float64 {
	c.mu.Lock()
	u := c.rng.Float64()
	c.mu.Unlock()

	v := MinConfidence + u*(MaxConfidence-MinConfidence)
	return math.Round(v*100) / 100
}
