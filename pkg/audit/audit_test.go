package audit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestLogWithNilRedisDoesNotPanic(t *testing.T) {
	logger := New(nil, zap.NewNop())
	assert.NotPanics(t, func() {
		logger.Log(context.Background(), "admin.stats", "127.0.0.1", true, "")
	})
}

func TestLogRecordsFailureWithDetail(t *testing.T) {
	logger := New(nil, zap.NewNop())
	assert.NotPanics(t, func() {
		logger.Log(context.Background(), "admin.expire", "10.0.0.1", false, "sweep failed")
	})
}
