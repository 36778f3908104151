package framework

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProcessorConfig_Normalize(t *testing.T) {
	cfg := &ProcessorConfig{Concurrency: 0, BufferSize: -1}
	cfg.Normalize()

	assert.Equal(t, 1, cfg.Concurrency)
	assert.Equal(t, 0, cfg.BufferSize)
	assert.Equal(t, DefaultProcessTimeout, cfg.Timeout)
}

func TestSubscriberConfig_Normalize(t *testing.T) {
	tests := []struct {
		name        string
		ttr         time.Duration
		procTimeout time.Duration
		wantTTR     time.Duration
	}{
		{"ttr shorter than render timeout", 10 * time.Second, 20 * time.Second, 21 * time.Second},
		{"sub-second timeout", 0, 1500 * time.Millisecond, 2 * time.Second},
		{"ttr already long enough", 60 * time.Second, 20 * time.Second, 60 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			proc := &ProcessorConfig{Timeout: tt.procTimeout}
			cfg := &SubscriberConfig{TTR: tt.ttr, Rate: -time.Second}
			cfg.Normalize(proc)

			assert.Equal(t, tt.wantTTR, cfg.TTR)
			assert.Equal(t, 1, cfg.Concurrency)
			assert.Equal(t, DefaultErrorBackoff, cfg.ErrorBackoff)
			assert.Zero(t, cfg.Rate)
		})
	}
}
