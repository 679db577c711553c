package logger

import (
	"bytes"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		level    string
		expected logrus.Level
	}{
		{"debug", logrus.DebugLevel},
		{"info", logrus.InfoLevel},
		{"warn", logrus.WarnLevel},
		{"error", logrus.ErrorLevel},
		{"nonsense", logrus.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			log := NewLogger(tt.level, "development")
			assert.Equal(t, tt.expected, log.GetLevel())
		})
	}
}

func TestNewLoggerProductionUsesJSON(t *testing.T) {
	log := NewLogger("info", "production")
	_, ok := log.Formatter.(*logrus.JSONFormatter)
	assert.True(t, ok, "production logger should use the JSON formatter")
}

func TestAuditLoggerFields(t *testing.T) {
	base := logrus.New()
	var buf bytes.Buffer
	base.SetOutput(&buf)
	base.SetFormatter(&logrus.JSONFormatter{})

	audit := NewAuditLogger(base)
	audit.LogOutcomeAppended("abc", time.Date(2025, 5, 1, 19, 0, 0, 0, time.UTC), "win")

	out := buf.String()
	assert.Contains(t, out, `"component":"audit"`)
	assert.Contains(t, out, `"record_id":"abc"`)
	assert.Contains(t, out, `"result":"win"`)
}
