package telemetry

import (
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInfoWritesFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	restore := SetLogger(zap.New(core))
	defer restore()

	Info("history.saved", map[string]any{"entry_id": "e-1", "skills": 3})
	Error("kv.write_failed", map[string]any{"err": errors.New("boom")})

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	ctx := entries[0].ContextMap()
	if ctx["entry_id"] != "e-1" {
		t.Fatalf("unexpected entry_id: %v", ctx["entry_id"])
	}
	if ctx["skills"] != int64(3) {
		t.Fatalf("unexpected skills: %v (%T)", ctx["skills"], ctx["skills"])
	}
	if entries[1].Level != zapcore.ErrorLevel {
		t.Fatalf("expected error level, got %s", entries[1].Level)
	}
	if entries[1].ContextMap()["err"] != "boom" {
		t.Fatalf("expected err field, got %v", entries[1].ContextMap())
	}
}

func TestInitFallsBackToInfo(t *testing.T) {
	prev := L()
	defer SetLogger(prev)

	if err := Init("nonsense"); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if L().Core().Enabled(zapcore.DebugLevel) {
		t.Fatalf("expected debug to be disabled")
	}
	if !L().Core().Enabled(zapcore.InfoLevel) {
		t.Fatalf("expected info to be enabled")
	}
}
