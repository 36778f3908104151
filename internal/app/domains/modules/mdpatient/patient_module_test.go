package mdpatient

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neuroscan/internal/app/domains/entity/etpatient"
)

type pageRecorder struct {
	page, limit int
}

func (r *pageRecorder) Create(context.Context, *etpatient.Record) error { return nil }

func (r *pageRecorder) GetByID(context.Context, string) (*etpatient.Record, error) {
	return nil, nil
}

func (r *pageRecorder) List(_ context.Context, page, limit int) ([]*etpatient.Record, int64, error) {
	r.page, r.limit = page, limit
	return nil, 0, nil
}

func (r *pageRecorder) Delete(context.Context, string) error { return nil }

func TestListRecords_Pagination(t *testing.T) {
	tests := []struct {
		name              string
		page, limit       int
		wantPage, wantLim int
	}{
		{"defaults", 0, 0, 1, DefaultPageSize},
		{"explicit", 3, 50, 3, 50},
		{"limit too large", 2, MaxPageSize + 1, 2, DefaultPageSize},
		{"negative", -1, -5, 1, DefaultPageSize},
		{"max", 1, MaxPageSize, 1, MaxPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &pageRecorder{}
			m := NewPatientModule(repo)

			_, _, err := m.ListRecords(context.Background(), tt.page, tt.limit)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPage, repo.page)
			assert.Equal(t, tt.wantLim, repo.limit)
		})
	}
}
