// Gamereel - Content-Based Game-to-Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamereel

package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestGenerateRunID(t *testing.T) {
	a := GenerateRunID()
	b := GenerateRunID()
	if a == "" || b == "" {
		t.Fatal("GenerateRunID returned empty string")
	}
	if a == b {
		t.Error("GenerateRunID returned duplicate IDs")
	}
}

func TestRunIDRoundTrip(t *testing.T) {
	ctx := context.Background()

	if got := RunIDFromContext(ctx); got != "" {
		t.Errorf("RunIDFromContext(empty) = %q, want empty", got)
	}

	ctx = ContextWithRunID(ctx, "run-42")
	if got := RunIDFromContext(ctx); got != "run-42" {
		t.Errorf("RunIDFromContext = %q, want run-42", got)
	}
}

func TestContextWithNewRunID(t *testing.T) {
	ctx := ContextWithNewRunID(context.Background())
	if RunIDFromContext(ctx) == "" {
		t.Error("ContextWithNewRunID did not set a run ID")
	}
}

func TestCtxIncludesRunID(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "info", Format: "json", Output: &buf})
	defer Init(DefaultConfig())

	ctx := ContextWithRunID(context.Background(), "abc123")
	Ctx(ctx).Info().Msg("scored")

	if !strings.Contains(buf.String(), `"run_id":"abc123"`) {
		t.Errorf("log output missing run_id: %s", buf.String())
	}
}

func TestLoggerFromContextFallsBack(t *testing.T) {
	// A context without a stored logger returns the global logger; the
	// call must not panic and Ctx must still be usable.
	ctx := context.Background()
	logger := LoggerFromContext(ctx)
	logger.Debug().Msg("ok")

	Ctx(ctx).Debug().Msg("ok")
}
