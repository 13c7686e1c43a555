// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging provides the leveled logger used by the converter and the
// grouper. The console implementation is backed by go-logger.
package logging

import (
	"fmt"
	"strings"

	glog "github.com/goliatone/go-logger/glog"

	"github.com/pdiddy/notekit/pkg/types"
)

// Logger is the leveled logging contract components depend on. Arguments
// after msg are key/value pairs.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Provider hands out named loggers that share one root configuration.
type Provider struct {
	root *glog.BaseLogger
}

// NewProvider builds a provider from cfg. An empty level means info and an
// empty format means console.
func NewProvider(cfg types.LogConfig) (*Provider, error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	options := []glog.Option{glog.WithLevel(level)}

	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "", "console":
		options = append(options, glog.WithLoggerTypeConsole())
	case "json":
		options = append(options, glog.WithLoggerTypeJSON())
	case "pretty":
		options = append(options, glog.WithLoggerTypePretty())
	default:
		return nil, fmt.Errorf("unsupported log format %q: use console, json, or pretty", cfg.Format)
	}

	return &Provider{root: glog.NewLogger(options...)}, nil
}

// Logger returns the child logger for name. A nil provider yields Nop.
func (p *Provider) Logger(name string) Logger {
	if p == nil {
		return Nop()
	}
	if name = strings.TrimSpace(name); name == "" {
		return p.root
	}
	return p.root.GetLogger(name)
}

func parseLevel(level string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "info":
		return glog.Info, nil
	case "trace":
		return glog.Trace, nil
	case "debug":
		return glog.Debug, nil
	case "warn", "warning":
		return glog.Warn, nil
	case "error":
		return glog.Error, nil
	default:
		return "", fmt.Errorf("unsupported log level %q", level)
	}
}

type nop struct{}

func (nop) Debug(string, ...any) {}
func (nop) Info(string, ...any)  {}
func (nop) Warn(string, ...any)  {}
func (nop) Error(string, ...any) {}

// Nop returns a Logger that discards everything.
func Nop() Logger { return nop{} }
