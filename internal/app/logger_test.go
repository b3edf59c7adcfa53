package app

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestLogHandlerFormats(t *testing.T) {
	var buf bytes.Buffer

	logger := slog.New(newLogHandler(&buf, &Config{LogFormat: "json"}))
	logger.Info("audit enqueue", slog.String("type", "teacher_registered_as_ect"))
	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("LOG_FORMAT=json did not produce JSON: %v", err)
	}
	if line["msg"] != "audit enqueue" {
		t.Fatalf("unexpected msg: %v", line["msg"])
	}
	if line["type"] != "teacher_registered_as_ect" {
		t.Fatalf("attribute lost: %v", line["type"])
	}

	buf.Reset()
	logger = slog.New(newLogHandler(&buf, &Config{LogFormat: "pretty"}))
	logger.Info("audit enqueue")
	if strings.HasPrefix(strings.TrimSpace(buf.String()), "{") {
		t.Fatalf("pretty format emitted JSON: %s", buf.String())
	}

	buf.Reset()
	logger = slog.New(newLogHandler(&buf, &Config{AppEnv: "production", LogFormat: "pretty"}))
	logger.Info("audit enqueue")
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("production logs must be JSON: %v", err)
	}
}
