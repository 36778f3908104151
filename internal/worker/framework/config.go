package framework

import "time"

const (
	// DefaultErrorBackoff 拉取失败后的默认退避时间
	DefaultErrorBackoff = time.Second
	// DefaultProcessTimeout 单个任务默认处理超时
	DefaultProcessTimeout = 20 * time.Second
)

// SubscriberConfig Subscriber 配置
type SubscriberConfig struct {
	QueueName    string        // 队列名称
	Concurrency  int           // 并发拉取数
	Timeout      time.Duration // 拉取超时（lmstfy 按秒向上取整）
	TTR          time.Duration // 未 ACK 的任务在 TTR 后重新投递
	Rate         time.Duration // 速率限制（拉取间隔）
	ErrorBackoff time.Duration // 错误退避时间
}

// ProcessorConfig Processor 配置
type ProcessorConfig struct {
	Concurrency int           // 并发处理数
	BufferSize  int           // inputChan 缓冲区大小
	Timeout     time.Duration // 单个任务处理超时（渲染四张缩略图）
}

// Normalize 补全默认值
func (c *ProcessorConfig) Normalize() {
	if c.Concurrency < 1 {
		c.Concurrency = 1
	}
	if c.BufferSize < 0 {
		c.BufferSize = 0
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultProcessTimeout
	}
}

// Normalize 补全默认值，并保证 TTR 长于处理超时
// 否则渲染未完成的任务会被重新投递，同一患者的缩略图被重复渲染
func (c *SubscriberConfig) Normalize(proc *ProcessorConfig) {
	if c.Concurrency < 1 {
		c.Concurrency = 1
	}
	if c.ErrorBackoff <= 0 {
		c.ErrorBackoff = DefaultErrorBackoff
	}
	if c.Rate < 0 {
		c.Rate = 0
	}
	if proc != nil {
		minTTR := proc.Timeout.Truncate(time.Second) + time.Second
		if c.TTR < minTTR {
			c.TTR = minTTR
		}
	}
}
