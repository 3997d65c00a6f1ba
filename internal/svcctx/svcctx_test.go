package svcctx

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/swiftgg/docmigrate/internal/config"
	"github.com/swiftgg/docmigrate/internal/home"
)

func TestServices(t *testing.T) {
	t.Run("empty context", func(t *testing.T) {
		ctx := context.Background()
		if ServicesFrom(ctx) != nil {
			t.Error("ServicesFrom() should be nil")
		}
		if ConfigFrom(ctx) != nil || HomeFrom(ctx) != nil {
			t.Error("extractors should return nil without services")
		}
		if LoggerFrom(ctx) != slog.Default() {
			t.Error("LoggerFrom() should fall back to slog.Default()")
		}
	})

	t.Run("round trip", func(t *testing.T) {
		h, err := home.New(t.TempDir())
		if err != nil {
			t.Fatal(err)
		}
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		svc := &Services{Config: config.DefaultConfig(), Home: h, Logger: logger}

		ctx := WithServices(context.Background(), svc)
		if ServicesFrom(ctx) != svc {
			t.Error("ServicesFrom() returned a different struct")
		}
		if ConfigFrom(ctx) != svc.Config {
			t.Error("ConfigFrom() mismatch")
		}
		if HomeFrom(ctx) != h {
			t.Error("HomeFrom() mismatch")
		}
		if LoggerFrom(ctx) != logger {
			t.Error("LoggerFrom() mismatch")
		}
	})
}
