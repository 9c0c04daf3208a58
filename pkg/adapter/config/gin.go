// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config

import (
	"fmt"
	"time"

	"github.com/momeni/slotkeeper/pkg/adapter/config/settings"
	"github.com/momeni/slotkeeper/pkg/adapter/restful/gin"
)

// Default values of the Gin settings.
const (
	DefaultAddress         = ":8080"
	DefaultShutdownTimeout = 10 * time.Second
)

var (
	minShutdownTimeout = settings.Duration(time.Second)
	maxShutdownTimeout = settings.Duration(5 * time.Minute)
)

// Gin contains the gin-gonic engine and HTTP server settings.
type Gin struct {
	Logger   *bool  // Whether to register the ginslog logger middleware
	Recovery *bool  // Whether to register the ginslog recovery middleware
	Release  *bool  // Whether to run gin-gonic in its release mode
	Address  string `yaml:",omitempty"` // listening address, like :8080

	// ShutdownTimeout bounds the graceful shutdown of the HTTP server.
	// It is clamped to the [1s, 5m] range.
	ShutdownTimeout *settings.Duration `yaml:"shutdown-timeout,omitempty"`
}

func (g *Gin) ValidateAndNormalize() error {
	settings.Nil2Zero(&g.Logger)
	settings.Nil2Zero(&g.Recovery)
	settings.Nil2Zero(&g.Release)
	if g.Address == "" {
		g.Address = DefaultAddress
	}
	d := settings.Duration(DefaultShutdownTimeout)
	settings.OverwriteNil(&g.ShutdownTimeout, &d)
	if err := settings.VerifyRange(
		&g.ShutdownTimeout, &minShutdownTimeout, &maxShutdownTimeout,
	); err != nil {
		return fmt.Errorf("shutdown-timeout: %w", err)
	}
	return nil
}

// Timeout returns the graceful shutdown timeout. It must be called
// after ValidateAndNormalize.
func (g Gin) Timeout() time.Duration {
	return time.Duration(*g.ShutdownTimeout)
}

// NewEngine instantiates a gin-gonic engine with the configured
// middlewares. A non-empty tracingService adds the tracing middleware
// which reports spans under that service name.
func (g Gin) NewEngine(tracingService string) *gin.Engine {
	if *g.Release {
		gin.SetReleaseMode()
	}
	middlewares := make([]gin.HandlerFunc, 0, 3)
	if tracingService != "" {
		middlewares = append(middlewares, gin.Tracing(tracingService))
	}
	if *g.Logger {
		middlewares = append(middlewares, gin.Logger())
	}
	if *g.Recovery {
		middlewares = append(middlewares, gin.Recovery())
	}
	return gin.New(middlewares...)
}
