// Package slog provides logging decorators for skim services.
package slog
