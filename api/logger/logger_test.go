package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew_Levels(t *testing.T) {
	l, err := New("")
	require.NoError(t, err)
	assert.True(t, l.Desugar().Core().Enabled(zapcore.InfoLevel))
	assert.False(t, l.Desugar().Core().Enabled(zapcore.DebugLevel))

	l, err = New("debug")
	require.NoError(t, err)
	assert.True(t, l.Desugar().Core().Enabled(zapcore.DebugLevel))

	l, err = New("error")
	require.NoError(t, err)
	assert.False(t, l.Desugar().Core().Enabled(zapcore.WarnLevel))

	_, err = New("loud")
	assert.Error(t, err)
}
