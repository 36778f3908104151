package lmstfy

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/bitleak/lmstfy/client"

	"neuroscan/internal/worker/framework"
)

const (
	defaultTTL   uint32 = 3600 // 消息存活时间（秒）
	defaultTries uint16 = 3    // 最大投递次数
)

// Client Lmstfy 客户端封装
type Client struct {
	cli       *client.LmstfyClient
	namespace string
}

// NewClient 创建 Lmstfy 客户端
func NewClient(host string, port int, namespace string, token string) *Client {
	return &Client{
		cli:       client.NewLmstfyClient(host, port, namespace, token),
		namespace: namespace,
	}
}

// Publish 将任务序列化为 JSON 后发布到队列，返回 job_id
func (c *Client) Publish(ctx context.Context, queue string, job interface{}) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := json.Marshal(job)
	if err != nil {
		return "", fmt.Errorf("marshal job failed: %w", err)
	}

	jobID, err := c.cli.Publish(queue, data, defaultTTL, defaultTries, 0)
	if err != nil {
		return "", fmt.Errorf("lmstfy publish failed: %w", err)
	}
	return jobID, nil
}

// Consume 消费消息（实现 framework.MessageSource 接口）
// 超时未拉到消息时返回 nil, nil
func (c *Client) Consume(queue string, timeout time.Duration, ttr time.Duration) (*framework.Message, error) {
	// lmstfy 以秒为单位，不足一秒的等待会变成非阻塞轮询
	waitSeconds := uint32(math.Ceil(timeout.Seconds()))
	job, err := c.cli.Consume(queue, uint32(math.Ceil(ttr.Seconds())), waitSeconds)
	if err != nil {
		return nil, fmt.Errorf("lmstfy consume failed: %w", err)
	}
	if job == nil {
		return nil, nil
	}

	return &framework.Message{
		ID:    job.ID,
		Queue: job.Queue,
		Data:  job.Data,
	}, nil
}

// Ack 确认消息（实现 framework.MessageSource 接口）
func (c *Client) Ack(queue string, jobID string) error {
	if err := c.cli.Ack(queue, jobID); err != nil {
		return fmt.Errorf("lmstfy ack failed: %w", err)
	}
	return nil
}
