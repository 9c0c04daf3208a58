// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package command provides the root and sub-commands for the skweb
// parking slots server. Commands are organized using the cobra library.
// The root command starts the web server itself while the "db" and
// "slots" sub-commands can be used for the maintenance actions.
//
//	./skweb [-c /path/of/config.yaml]           # start web server
//	./skweb db init [-c /path/of/config.yaml]   # create the tables
//	./skweb slots init <area-id> [-c /path/of/config.yaml]
//	./skweb slots recalc <area-id> [-c /path/of/config.yaml]
//	./skweb config show [-c /path/of/config.yaml]
package command

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/momeni/slotkeeper/pkg/adapter/config"
	"github.com/momeni/slotkeeper/pkg/adapter/db/postgres"
	"github.com/momeni/slotkeeper/pkg/adapter/notify/wshub"
	"github.com/momeni/slotkeeper/pkg/adapter/restful/gin/routes"
	"github.com/momeni/slotkeeper/pkg/adapter/telemetry"
	"github.com/momeni/slotkeeper/pkg/core/log"
	"github.com/momeni/slotkeeper/pkg/core/usecase/slotsuc"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
)

// Version of the skweb binary, which may be set at link time.
var Version = "dev"

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "skweb",
	Short: "A parking slots allocation and occupancy server",
	Long: `A parking slots allocation and occupancy server which keeps
the numbered slots of parking areas, registers the entering vehicles
in their requested slots, releases them upon exit (computing their
fees), and reconciles the slots occupancy and counters with the active
vehicles whenever they drift apart.
Committed changes of each area are broadcast to the websocket
subscribers of the events API.`,
	RunE:         startWebServer,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
}

func startWebServer(_ *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	defer stop()
	c, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("config.Load(%q): %w", cfgPath, err)
	}
	tracingService := ""
	if c.Telemetry.Enabled {
		shutdown, err := telemetry.Setup(ctx, c.Telemetry.Settings(Version))
		if err != nil {
			return fmt.Errorf("setting up telemetry: %w", err)
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				log.Warn(ctx, "shutting down telemetry", log.Err("err", err))
			}
		}()
		tracingService = c.Telemetry.ServiceName
	}
	p, err := c.Database.ConnectionPool(ctx)
	if err != nil {
		return fmt.Errorf("creating DB pool: %w", err)
	}
	defer p.Close()
	if c.Telemetry.Enabled {
		if err := p.Instrument(); err != nil {
			return fmt.Errorf("instrumenting DB pool: %w", err)
		}
	}
	hub := wshub.New()
	defer hub.Close()
	var n slotsuc.Notifier = hub
	if c.Telemetry.Enabled {
		n, err = telemetry.NewNotifier(hub, otel.GetMeterProvider())
		if err != nil {
			return fmt.Errorf("instrumenting notifier: %w", err)
		}
	}
	e := c.Gin.NewEngine(tracingService)
	if err = routes.Register(e, p, c, n, hub); err != nil {
		return fmt.Errorf("registering routes: %w", err)
	}
	srv := &http.Server{Addr: c.Gin.Address, Handler: e}
	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "listening", log.String("address", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err = <-errCh:
		return fmt.Errorf("running HTTP server: %w", err)
	case <-ctx.Done():
	}
	log.Info(ctx, "shutting down")
	ctx2, cancel := context.WithTimeout(context.Background(), c.Gin.Timeout())
	defer cancel()
	_ = hub.Close()
	if err = srv.Shutdown(ctx2); err != nil {
		return fmt.Errorf("shutting down HTTP server: %w", err)
	}
	return nil
}

// withPool loads the configuration file and passes a connection pool
// of its database to f. The pool is closed after f returns.
func withPool(
	ctx context.Context,
	f func(ctx context.Context, c *config.Config, p *postgres.Pool) error,
) error {
	c, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("config.Load(%q): %w", cfgPath, err)
	}
	p, err := c.Database.ConnectionPool(ctx)
	if err != nil {
		return fmt.Errorf("creating DB pool: %w", err)
	}
	defer p.Close()
	return f(ctx, c, p)
}

// Execute runs the rootCmd which in turn parses CLI arguments and
// flags and runs the most specific cobra command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadDotEnv, fixConfigPath)
	rootCmd.PersistentFlags().StringVarP(
		&cfgPath, "config", "c", "", "config file path",
	)
}

// loadDotEnv loads the environment variables from the .env file of
// the working directory, if there is one. Variables which are already
// set take precedence.
func loadDotEnv() {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "ignoring .env file: %v\n", err)
	}
}

// fixConfigPath ensures that cfgPath is set respectively by either the
// CLI args, the CONFIG_FILE environment variable, or its default value.
func fixConfigPath() {
	if cfgPath != "" {
		return
	}
	var found bool
	if cfgPath, found = os.LookupEnv("CONFIG_FILE"); !found {
		cfgPath = "configs/sample-config.yaml"
	}
}
