package domains

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/bitleak/lmstfy/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neuroscan/common/model"
	"neuroscan/internal/worker/domains/common"
	"neuroscan/internal/worker/framework"
	"neuroscan/pkg/errorutil"
	"neuroscan/pkg/logger"
)

type stubHandler struct {
	err   error
	panic bool
}

func (h *stubHandler) GetProcess() *common.Response {
	if h.panic {
		panic("boom")
	}
	resp := &common.Response{}
	resp.WrapResponse(map[string]string{"ok": "yes"}, &common.Meta{}, h.err)
	return resp
}

func stubFactory(h *stubHandler) common.HandlerFactory {
	return func(context.Context, *common.Meta, json.RawMessage) (common.HandlerServ, error) {
		return h, nil
	}
}

func jobBytes(t *testing.T, actionType string) []byte {
	t.Helper()
	data, err := json.Marshal(model.NewThumbnailJob("req-1", model.ThumbnailJobData{PatientID: "p-1"}))
	require.NoError(t, err)
	if actionType == model.ActionTypeThumbnailRender {
		return data
	}

	var job common.Job
	require.NoError(t, json.Unmarshal(data, &job))
	job.Payload.Data.ActionType = actionType
	data, err = json.Marshal(job)
	require.NoError(t, err)
	return data
}

func TestGetProcess_Actions(t *testing.T) {
	tests := []struct {
		name    string
		handler *stubHandler
		want    framework.JobRespStatus
	}{
		{"success", &stubHandler{}, framework.JobRespStatusSuccess},
		{"retriable error", &stubHandler{err: errorutil.Retriable("db down", nil)}, framework.JobRespStatusRelease},
		{"non-retriable error", &stubHandler{err: errorutil.NonRetriable("bad image", nil)}, framework.JobRespStatusBury},
		{"plain error", &stubHandler{err: errors.New("unknown")}, framework.JobRespStatusBury},
		{"panic", &stubHandler{panic: true}, framework.JobRespStatusBury},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			proc := GetProcess(logger.NewNop(), HandlerMap{model.ActionTypeThumbnailRender: stubFactory(tt.handler)})
			resp := proc(context.Background(), &client.Job{ID: "j-1", Data: jobBytes(t, model.ActionTypeThumbnailRender)})
			assert.Equal(t, tt.want, resp.Action)
		})
	}
}

func TestGetProcess_BuriesInvalidJobs(t *testing.T) {
	proc := GetProcess(logger.NewNop(), HandlerMap{model.ActionTypeThumbnailRender: stubFactory(&stubHandler{})})

	for name, data := range map[string][]byte{
		"not json":       []byte("{oops"),
		"missing data":   []byte(`{"payload":{}}`),
		"missing action": []byte(`{"payload":{"data":{"id":"p-1"}}}`),
		"unknown action": jobBytes(t, "order_diagnose"),
	} {
		resp := proc(context.Background(), &client.Job{ID: "j-1", Data: data})
		assert.Equal(t, framework.JobRespStatusBury, resp.Action, name)
	}
}

func TestGetProcess_FactoryError(t *testing.T) {
	failing := func(context.Context, *common.Meta, json.RawMessage) (common.HandlerServ, error) {
		return nil, errors.New("bad payload")
	}
	proc := GetProcess(logger.NewNop(), HandlerMap{model.ActionTypeThumbnailRender: failing})

	resp := proc(context.Background(), &client.Job{ID: "j-1", Data: jobBytes(t, model.ActionTypeThumbnailRender)})
	assert.Equal(t, framework.JobRespStatusBury, resp.Action)
}

func TestParseJob_GeneratesRequestID(t *testing.T) {
	meta, payload, err := parseJob(&client.Job{Data: []byte(`{"payload":{"data":{"action_type":"thumbnail_render","id":"p-1","data":{"patient_id":"p-1"}}}}`)})
	require.NoError(t, err)
	assert.NotEmpty(t, meta.RequestID)
	assert.Equal(t, "p-1", meta.ID)
	assert.JSONEq(t, `{"patient_id":"p-1"}`, string(payload))
}
