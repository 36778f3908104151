package rppatient

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"neuroscan/common/entity"
	"neuroscan/internal/app/domains/classifier"
	"neuroscan/internal/app/domains/entity/etpatient"
)

func TestGormModelConversion(t *testing.T) {
	confidence := 93.41
	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	record := &etpatient.Record{
		ID:         "p-1",
		RecordNo:   7,
		Name:       "Jane",
		Age:        40,
		Gender:     "F",
		Outcome:    classifier.KindNoTumor,
		Result:     classifier.LabelNoTumor,
		Confidence: &confidence,
		Images: []*etpatient.Image{
			{Position: "left", Filename: "left1.png", StoredPath: "p-1/left1.png", ThumbnailPath: "p-1/thumbs/left.png"},
		},
		ThumbnailStatus: etpatient.ThumbnailStatusReady,
		CreatedAt:       created,
		UpdatedAt:       created,
	}

	po, err := toGormModel(record)
	require.NoError(t, err)
	assert.Equal(t, "NO_TUMOR", po.Outcome)
	assert.Equal(t, "READY", po.ThumbnailStatus)
	assert.JSONEq(t, `[{"position":"left","filename":"left1.png","stored_path":"p-1/left1.png","thumbnail_path":"p-1/thumbs/left.png"}]`, string(po.Images))

	back, err := toDomainModel(po)
	require.NoError(t, err)
	assert.Equal(t, record, back)
}

func TestToDomainModel_EmptyImages(t *testing.T) {
	po := &entity.Patient{ID: "p-2", Outcome: "UNRECOGNIZED", ThumbnailStatus: entity.ThumbnailStatusSkipped}

	record, err := toDomainModel(po)
	require.NoError(t, err)
	assert.Empty(t, record.Images)
	assert.Nil(t, record.Confidence)
	assert.Equal(t, classifier.KindUnrecognized, record.Outcome)
}

func TestToDomainModel_CorruptImages(t *testing.T) {
	po := &entity.Patient{ID: "p-3", Images: datatypes.JSON(`{not json`)}

	_, err := toDomainModel(po)
	assert.Error(t, err)
}
