package domains

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bitleak/lmstfy/client"
	"github.com/google/uuid"

	"neuroscan/internal/worker/domains/common"
	"neuroscan/internal/worker/framework"
	"neuroscan/pkg/logger"
)

// GetProcess 返回核心处理函数（注入到 Processor）
func GetProcess(log logger.Logger, handlers HandlerMap) framework.Proc {
	return func(ctx context.Context, lmstfyJob *client.Job) *framework.JobResp {
		startTime := time.Now()

		// 1. 解析 Job
		meta, bizPayload, err := parseJob(lmstfyJob)
		if err != nil {
			log.Errorf(ctx, "[GetProcess] parseJob failed: job_id=%s, error=%v", lmstfyJob.ID, err)
			return &framework.JobResp{Action: framework.JobRespStatusBury}
		}

		ctx = logger.WithRequestID(ctx, meta.RequestID)
		ctx = logger.WithActionType(ctx, meta.ActionType)

		log.Infof(ctx, "[GetProcess] Processing job: job_id=%s, id=%s", lmstfyJob.ID, meta.ID)

		// 2. 从 HandlerMap 获取 Handler
		factory, ok := handlers[meta.ActionType]
		if !ok {
			log.Errorf(ctx, "[GetProcess] handler not found for action_type: %s", meta.ActionType)
			return &framework.JobResp{Action: framework.JobRespStatusBury}
		}

		// 3. 调用 Handler（捕获 panic）
		resp := runHandler(ctx, factory, meta, bizPayload, log)

		log.Infof(ctx, "[GetProcess] Processing complete: action=%s, duration=%v", resp.Action, time.Since(startTime))
		return resp
	}
}

func runHandler(ctx context.Context, factory common.HandlerFactory, meta *common.Meta, payload json.RawMessage, log logger.Logger) (resp *framework.JobResp) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf(ctx, "[GetProcess] handler panic: %v", r)
			resp = &framework.JobResp{Action: framework.JobRespStatusBury}
		}
	}()

	handler, err := factory(ctx, meta, payload)
	if err != nil {
		log.Errorf(ctx, "[GetProcess] handler creation failed: %v", err)
		return &framework.JobResp{Action: framework.JobRespStatusBury}
	}

	return doJobReport(ctx, handler.GetProcess(), log)
}

// parseJob 解析 Job 并校验必填字段
func parseJob(lmstfyJob *client.Job) (*common.Meta, json.RawMessage, error) {
	var standardJob common.Job
	if err := json.Unmarshal(lmstfyJob.Data, &standardJob); err != nil {
		return nil, nil, fmt.Errorf("json unmarshal failed: %w", err)
	}
	if standardJob.Payload == nil || standardJob.Payload.Data == nil {
		return nil, nil, errors.New("invalid job structure: payload.data is nil")
	}

	data := standardJob.Payload.Data
	if data.ActionType == "" {
		return nil, nil, errors.New("invalid job structure: action_type is empty")
	}

	meta := &common.Meta{
		RequestID:  data.RequestID,
		ActionType: data.ActionType,
		ID:         data.ID,
	}
	if meta.RequestID == "" {
		meta.RequestID = uuid.New().String()
	}

	return meta, data.Data, nil
}

// doJobReport 根据 Response 判断 ACK/Bury/Release
// 成功 → Success；可重试错误 → Release；其余 → Bury
func doJobReport(ctx context.Context, resp *common.Response, log logger.Logger) *framework.JobResp {
	if resp == nil {
		return &framework.JobResp{Action: framework.JobRespStatusBury}
	}

	data, err := json.Marshal(resp)
	if err != nil {
		log.Errorf(ctx, "[doJobReport] marshal response failed: %v", err)
		data = nil
	}

	action := framework.JobRespStatusSuccess
	if resp.Error != nil {
		if resp.Error.Retryable {
			action = framework.JobRespStatusRelease
		} else {
			action = framework.JobRespStatusBury
		}
		log.Warnf(ctx, "[doJobReport] job failed: retryable=%v, error=%v", resp.Error.Retryable, resp.Error)
	}

	return &framework.JobResp{Action: action, Data: data}
}
