package audit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerHashesUsernames(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewWithCore(zap.New(core), "matchmakr-backend", "test")

	l.LogLoginFailed(context.Background(), "alice", "invalid_password")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "login_failed", entry.Message)
	assert.Equal(t, zapcore.WarnLevel, entry.Level)

	fields := entry.ContextMap()
	assert.Equal(t, HashValue("alice"), fields["subject_value"])
	assert.NotEqual(t, "alice", fields["subject_value"])
}

func TestLoggerLevels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewWithCore(zap.New(core), "svc", "test")

	l.Log(context.Background(), Event{Event: EventStatusChanged, UserID: 4})
	l.LogAccessDenied(context.Background(), 4, "application", 12)

	require.Equal(t, 2, logs.Len())
	assert.Equal(t, zapcore.InfoLevel, logs.All()[0].Level)
	assert.Equal(t, zapcore.WarnLevel, logs.All()[1].Level)
	assert.Equal(t, "12", logs.All()[1].ContextMap()["subject_value"])
}

func TestNilLoggerIsSafe(t *testing.T) {
	var l *Logger
	assert.NotPanics(t, func() {
		l.Log(context.Background(), Event{Event: EventLoginSuccess})
	})
}
