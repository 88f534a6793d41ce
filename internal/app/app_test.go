package app

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestInit_LoadsConfigAndSetsUpJSONLogging(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")

	var buf bytes.Buffer
	cfg := Init(&buf)

	if cfg == nil {
		t.Fatal("expected non-nil config")
	}
	if cfg.ServerPort != "9090" {
		t.Errorf("ServerPort = %q, want %q", cfg.ServerPort, "9090")
	}

	// グローバルロガーがJSON出力になっていることを確認
	slog.Default().Info("init test")
	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON log output, got error: %v\nraw: %s", err, buf.String())
	}
	if entry["msg"] != "init test" {
		t.Errorf("msg = %q, want %q", entry["msg"], "init test")
	}
}

// TestRunHealthcheck_NoServer_ReturnsError はサーバー未起動時に
// ヘルスチェックがエラーを返すことを検証する。
func TestRunHealthcheck_NoServer_ReturnsError(t *testing.T) {
	// 使われていないポートに対して実行する
	if err := runHealthcheck("1"); err == nil {
		t.Error("expected error when no server is listening")
	}
}
