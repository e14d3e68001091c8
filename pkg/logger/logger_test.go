package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestSetLevel(t *testing.T) {
	original := L
	t.Cleanup(func() { L = original })

	assert.True(t, L.Core().Enabled(zapcore.InfoLevel))

	SetLevel(zapcore.WarnLevel)

	assert.False(t, L.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, WithComponent("service").Core().Enabled(zapcore.WarnLevel))
}
