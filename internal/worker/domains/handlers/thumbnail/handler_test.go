package thumbnail

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neuroscan/common/entity"
	"neuroscan/common/model"
	"neuroscan/internal/worker/domains/common"
	"neuroscan/pkg/infra/mysql"
	"neuroscan/pkg/logger"
	"neuroscan/pkg/storage"
)

type daoCall struct {
	patientID string
	thumbs    map[string]string
	status    string
}

type fakeDAO struct {
	mu    sync.Mutex
	calls []daoCall
	err   error
}

func (d *fakeDAO) UpdateThumbnails(_ context.Context, patientID string, thumbs map[string]string, status string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = append(d.calls, daoCall{patientID: patientID, thumbs: thumbs, status: status})
	if status == entity.ThumbnailStatusReady {
		return d.err
	}
	return nil
}

type fakeNotifier struct {
	channels      []string
	notifications []model.ThumbnailNotification
}

func (n *fakeNotifier) Publish(_ context.Context, channel string, message interface{}) error {
	n.channels = append(n.channels, channel)
	n.notifications = append(n.notifications, message.(model.ThumbnailNotification))
	return nil
}

type fixture struct {
	store    *storage.UploadStore
	dao      *fakeDAO
	notifier *fakeNotifier
	factory  common.HandlerFactory
}

func newFixture() *fixture {
	f := &fixture{
		store:    storage.NewUploadStore(afero.NewMemMapFs(), 0),
		dao:      &fakeDAO{},
		notifier: &fakeNotifier{},
	}
	f.factory = NewFactory(Deps{
		Store:    f.store,
		DAO:      f.dao,
		Notifier: f.notifier,
		Logger:   logger.NewNop(),
	})
	return f
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func (f *fixture) save(t *testing.T, patientID, name string, content []byte) model.ThumbnailItem {
	t.Helper()
	storedPath, err := f.store.Save(context.Background(), patientID, name, bytes.NewReader(content))
	require.NoError(t, err)
	return model.ThumbnailItem{Position: strings.TrimSuffix(name, ".png"), StoredPath: storedPath}
}

func (f *fixture) run(t *testing.T, data model.ThumbnailJobData) *common.Response {
	t.Helper()
	payload, err := json.Marshal(data)
	require.NoError(t, err)

	handler, err := f.factory(context.Background(), &common.Meta{ID: data.PatientID, ActionType: model.ActionTypeThumbnailRender}, payload)
	require.NoError(t, err)
	return handler.GetProcess()
}

func TestThumbnailHandler_Success(t *testing.T) {
	f := newFixture()
	left := f.save(t, "p-1", "left.png", pngBytes(t, 400, 300))
	right := f.save(t, "p-1", "right.png", pngBytes(t, 100, 50))

	resp := f.run(t, model.ThumbnailJobData{PatientID: "p-1", Images: []model.ThumbnailItem{left, right}})
	require.Nil(t, resp.Error)
	assert.True(t, resp.Processed)

	require.Len(t, f.dao.calls, 1)
	call := f.dao.calls[0]
	assert.Equal(t, entity.ThumbnailStatusReady, call.status)
	assert.Equal(t, "p-1/thumbs/left.png", call.thumbs["left"])
	assert.Equal(t, "p-1/thumbs/right.png", call.thumbs["right"])

	thumb, err := f.store.Open(call.thumbs["left"])
	require.NoError(t, err)
	defer thumb.Close()
	cfg, err := png.DecodeConfig(thumb)
	require.NoError(t, err)
	assert.Equal(t, 192, cfg.Width)
	assert.Equal(t, 144, cfg.Height)

	// 小于边长的影像不放大
	small, err := f.store.Open(call.thumbs["right"])
	require.NoError(t, err)
	defer small.Close()
	cfg, err = png.DecodeConfig(small)
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Width)

	require.Len(t, f.notifier.notifications, 1)
	assert.Equal(t, "thumbnail:ready:p-1", f.notifier.channels[0])
	assert.Equal(t, entity.ThumbnailStatusReady, f.notifier.notifications[0].Status)
}

func TestThumbnailHandler_UndecodableImageIsNotRetried(t *testing.T) {
	f := newFixture()
	item := f.save(t, "p-2", "left.png", []byte("definitely not an image"))

	resp := f.run(t, model.ThumbnailJobData{PatientID: "p-2", Images: []model.ThumbnailItem{item}})
	require.NotNil(t, resp.Error)
	assert.False(t, resp.Error.Retryable)
	assert.False(t, resp.Processed)

	require.Len(t, f.dao.calls, 1)
	assert.Equal(t, entity.ThumbnailStatusFailed, f.dao.calls[0].status)
	require.Len(t, f.notifier.notifications, 1)
	assert.Equal(t, entity.ThumbnailStatusFailed, f.notifier.notifications[0].Status)
}

func TestThumbnailHandler_MissingFileIsNotRetried(t *testing.T) {
	f := newFixture()

	resp := f.run(t, model.ThumbnailJobData{PatientID: "p-3", Images: []model.ThumbnailItem{{Position: "left", StoredPath: "p-3/left.png"}}})
	require.NotNil(t, resp.Error)
	assert.False(t, resp.Error.Retryable)
}

func TestThumbnailHandler_DatabaseErrorIsRetried(t *testing.T) {
	f := newFixture()
	f.dao.err = errors.New("connection reset")
	item := f.save(t, "p-4", "left.png", pngBytes(t, 10, 10))

	resp := f.run(t, model.ThumbnailJobData{PatientID: "p-4", Images: []model.ThumbnailItem{item}})
	require.NotNil(t, resp.Error)
	assert.True(t, resp.Error.Retryable)
	assert.Empty(t, f.notifier.notifications)
}

func TestThumbnailHandler_DeletedPatientIsNotRetried(t *testing.T) {
	f := newFixture()
	f.dao.err = fmt.Errorf("%w: p-5", mysql.ErrPatientNotFound)
	item := f.save(t, "p-5", "left.png", pngBytes(t, 10, 10))

	resp := f.run(t, model.ThumbnailJobData{PatientID: "p-5", Images: []model.ThumbnailItem{item}})
	require.NotNil(t, resp.Error)
	assert.False(t, resp.Error.Retryable)
}

func TestNewFactory_InvalidPayload(t *testing.T) {
	f := newFixture()

	_, err := f.factory(context.Background(), &common.Meta{}, json.RawMessage(`{"images":[]}`))
	assert.Error(t, err)

	_, err = f.factory(context.Background(), &common.Meta{}, json.RawMessage(`[1,2`))
	assert.Error(t, err)

	h, err := f.factory(context.Background(), &common.Meta{ID: "p-6"}, json.RawMessage(`{"images":[]}`))
	require.NoError(t, err)
	assert.Equal(t, "p-6", h.(*ThumbnailHandler).data.PatientID)
}
