package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"

	"github.com/learnsphere/socialgraph/pkg/config"
)

func TestInitLogger(t *testing.T) {
	tests := []struct {
		name   string
		cfg    config.LoggingConfig
		expect zapcore.Level
	}{
		{"json info", config.LoggingConfig{Level: "INFO", Format: "json"}, zapcore.InfoLevel},
		{"text debug", config.LoggingConfig{Level: "DEBUG", Format: "text"}, zapcore.DebugLevel},
		{"bad level falls back to info", config.LoggingConfig{Level: "nope", Format: "json"}, zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := InitLogger(&tt.cfg); err != nil {
				t.Fatalf("InitLogger() error: %v", err)
			}
			if Logger == nil {
				t.Fatal("InitLogger() left Logger nil")
			}
			if got := Logger.Core().Enabled(tt.expect); !got {
				t.Errorf("logger should be enabled at %v", tt.expect)
			}
		})
	}
}

func TestGetLoggerFallback(t *testing.T) {
	old := Logger
	defer func() { Logger = old }()

	Logger = nil
	if GetLogger() == nil {
		t.Fatal("GetLogger() returned nil without InitLogger")
	}
}

func TestWithComponent(t *testing.T) {
	if WithComponent("social-graph") == nil {
		t.Fatal("WithComponent() returned nil")
	}
}
