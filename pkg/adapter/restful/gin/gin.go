// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package gin wraps the gin-gonic engine and its middlewares, so the
// commands and tests do not need to import gin-gonic directly.
package gin

import (
	"log/slog"

	"github.com/FabienMht/ginslog/logger"
	"github.com/FabienMht/ginslog/recovery"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

type HandlerFunc = gin.HandlerFunc
type Engine = gin.Engine

func New(middlewares ...HandlerFunc) *Engine {
	e := gin.New()
	e.Use(middlewares...)
	return e
}

// Logger logs each request through the default slog logger.
func Logger() HandlerFunc {
	return logger.New(slog.Default())
}

// Recovery recovers from the handler panics, logging them through the
// default slog logger and responding with 500 status code.
func Recovery() HandlerFunc {
	return recovery.New(slog.Default())
}

// Tracing starts a span for each request using the global
// OpenTelemetry tracer provider.
func Tracing(service string) HandlerFunc {
	return otelgin.Middleware(service)
}

// SetReleaseMode disables the gin-gonic debug messages.
func SetReleaseMode() {
	gin.SetMode(gin.ReleaseMode)
}
