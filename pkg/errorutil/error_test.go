package errorutil

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsRetriable(t *testing.T) {
	cause := errors.New("connection reset")

	assert.True(t, IsRetriable(Retriable("update patient failed", cause)))
	assert.False(t, IsRetriable(NonRetriable("decode image failed", cause)))
	assert.False(t, IsRetriable(cause))
	assert.False(t, IsRetriable(nil))

	wrapped := fmt.Errorf("render: %w", Retriable("update patient failed", cause))
	assert.True(t, IsRetriable(wrapped))
	assert.ErrorIs(t, wrapped, cause)
}

func TestError_Message(t *testing.T) {
	assert.Equal(t, "bad payload", NonRetriable("bad payload", nil).Error())
	assert.Equal(t, "db: timeout", Retriable("db", errors.New("timeout")).Error())
}
