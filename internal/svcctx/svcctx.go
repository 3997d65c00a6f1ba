// Package svcctx carries the services shared by every command through context.
// This package is separate from cmd so packages below it can be handed a
// context without importing the CLI.
package svcctx

import (
	"context"
	"log/slog"

	"github.com/swiftgg/docmigrate/internal/config"
	"github.com/swiftgg/docmigrate/internal/home"
)

// Services holds the core services that flow through context.
// Commands extract what they need via the individual extractors.
type Services struct {
	Config *config.Config
	Home   *home.Dir
	Logger *slog.Logger

	// ConfigFile is the config file that was loaded, empty when only
	// defaults and environment applied.
	ConfigFile string
}

type servicesKey struct{}

// WithServices returns a new context with services attached.
func WithServices(ctx context.Context, s *Services) context.Context {
	return context.WithValue(ctx, servicesKey{}, s)
}

// ServicesFrom extracts the full Services struct from context.
// Returns nil if not present.
func ServicesFrom(ctx context.Context) *Services {
	s, _ := ctx.Value(servicesKey{}).(*Services)
	return s
}

// ConfigFrom extracts the loaded configuration from context.
func ConfigFrom(ctx context.Context) *config.Config {
	if s := ServicesFrom(ctx); s != nil {
		return s.Config
	}
	return nil
}

// HomeFrom extracts the home directory from context.
func HomeFrom(ctx context.Context) *home.Dir {
	if s := ServicesFrom(ctx); s != nil {
		return s.Home
	}
	return nil
}

// LoggerFrom extracts the logger from context, falling back to the default
// logger.
func LoggerFrom(ctx context.Context) *slog.Logger {
	if s := ServicesFrom(ctx); s != nil && s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}
