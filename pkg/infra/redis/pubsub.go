package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// PubSub Redis 发布/订阅客户端
type PubSub struct {
	client *redis.Client
}

// NewPubSub 创建 PubSub 实例，支持密码认证
func NewPubSub(addr, password string, db int) (*PubSub, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &PubSub{client: client}, nil
}

// Wait 订阅指定 channel 并等待一条消息，支持超时控制
// 用于 Smart Wait：订阅缩略图频道，等待 thumbnail_worker 推送结果
func (p *PubSub) Wait(ctx context.Context, channel string, timeout time.Duration) (string, error) {
	sub := p.client.Subscribe(ctx, channel)
	defer sub.Close()

	// 等待订阅确认，确认之后发布的消息不会丢失
	if _, err := sub.Receive(ctx); err != nil {
		return "", fmt.Errorf("subscribe %s failed: %w", channel, err)
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	select {
	case msg, ok := <-sub.Channel():
		if !ok {
			return "", fmt.Errorf("subscription %s closed", channel)
		}
		return msg.Payload, nil
	case <-timeoutCtx.Done():
		return "", timeoutCtx.Err()
	}
}

// Publish 将消息序列化为 JSON 后发布到指定 channel
func (p *PubSub) Publish(ctx context.Context, channel string, message interface{}) error {
	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}
	if err := p.client.Publish(ctx, channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}
	return nil
}

// Close 关闭 Redis 连接
func (p *PubSub) Close() error {
	return p.client.Close()
}
