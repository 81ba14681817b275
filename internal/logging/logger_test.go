package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		env   string
		level string
		want  zapcore.Level
	}{
		{env: "development", level: "debug", want: zapcore.DebugLevel},
		{env: "production", level: "info", want: zapcore.InfoLevel},
		{env: "production", level: "warn", want: zapcore.WarnLevel},
	}
	for _, tt := range tests {
		t.Run(tt.env+"/"+tt.level, func(t *testing.T) {
			l, err := New(tt.env, tt.level)
			require.NoError(t, err)
			assert.True(t, l.Core().Enabled(tt.want))
			assert.False(t, l.Core().Enabled(tt.want-1))
		})
	}
}

func TestNew_BadLevel(t *testing.T) {
	_, err := New("development", "loud")
	assert.Error(t, err)
}
