/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package config

import (
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"

	"dirpx.dev/access/apis"
)

const (
	// DefaultMaxDepth represents the default for MaxDepth.
	// Embedding chains deeper than this are not searched.
	DefaultMaxDepth = 16
	// DefaultConvertValues represents the default for ConvertValues.
	// Field writes require assignable values unless enabled.
	DefaultConvertValues = false
	// DefaultTagKey represents the default for TagKey.
	DefaultTagKey = "access"
)

// defaultLogger writes diagnostics to stderr at warn level.
var defaultLogger = slog.New(tint.NewHandler(os.Stderr, &tint.Options{
	Level:      slog.LevelWarn,
	TimeFormat: time.Kitchen,
}))

// discardLogger drops every record.
var discardLogger = slog.New(slog.DiscardHandler)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	// Ensure MaxDepth and TagKey are valid.
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}
	if cfg.TagKey == "" {
		cfg.TagKey = DefaultTagKey
	}
	return cfg
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		Logger:        defaultLogger,
		MaxDepth:      DefaultMaxDepth,
		ConvertValues: DefaultConvertValues,
		TagKey:        DefaultTagKey,
	}
}

// DefaultLogger returns the logger used by DefaultConfig.
func DefaultLogger() *slog.Logger {
	return defaultLogger
}

// DiscardLogger returns a logger that drops every record.
func DiscardLogger() *slog.Logger {
	return discardLogger
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithLogger sets the diagnostics logger. Nil silences diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *apis.Config) {
		if l == nil {
			l = discardLogger
		}
		c.Logger = l
	}
}

// WithMaxDepth sets the MaxDepth option.
// A non-positive value resets to the default.
func WithMaxDepth(depth int) Option {
	return func(c *apis.Config) {
		if depth <= 0 {
			c.MaxDepth = DefaultMaxDepth
			return
		}
		c.MaxDepth = depth
	}
}

// WithConvertValues sets the ConvertValues option.
func WithConvertValues(convert bool) Option {
	return func(c *apis.Config) {
		c.ConvertValues = convert
	}
}

// WithTagKey sets the struct tag key read for field modifiers.
// An empty key resets to the default.
func WithTagKey(key string) Option {
	return func(c *apis.Config) {
		if key == "" {
			key = DefaultTagKey
		}
		c.TagKey = key
	}
}
