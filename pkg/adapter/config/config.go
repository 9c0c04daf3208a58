// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package config is an adapter which accepts yaml formatted config
// files from its users and allows the skweb to instantiate different
// components, from the adapter or use cases layers, using those loaded
// configuration settings.
// The parsed and validated configurations are passed to their ultimate
// components as a series of individual params (for the mandatory items)
// and a series of functional options (for the optional items), so they
// are validated once more by the relevant end-component such as the
// slotsuc.UseCase instance.
package config

import (
	"fmt"
	"os"

	"github.com/momeni/slotkeeper/pkg/adapter/config/vers"
	"github.com/momeni/slotkeeper/pkg/adapter/db/postgres/schemarp"
	"github.com/momeni/slotkeeper/pkg/core/model"
	"gopkg.in/yaml.v3"
)

// These constants define the major, minor, and patch version of the
// configuration settings which are supported by the Config struct.
const (
	Major = 1
	Minor = 0
	Patch = 0
)

// Version is the semantic version of Config struct.
var Version = model.SemVer{Major, Minor, Patch}

// Config contains all settings which are required by different parts
// of the skweb, such as adapters or use cases. It is implemented with
// primitive fields or structs which are defined locally, so the
// configuration format can be kept intact while other layers change.
type Config struct {
	Database  Database  // PostgreSQL database connection settings
	Gin       Gin       // Gin-Gonic instantiation settings
	Usecases  Usecases  // Supported use cases configuration settings
	Telemetry Telemetry // OpenTelemetry exporting settings

	// Vers contains the configuration file and database schema version
	// strings corresponding to this Config instance and its Database
	// target.
	Vers vers.Config `yaml:",inline"`
}

// Load function loads, validates, and normalizes the configuration
// file and returns its settings as an instance of the Config struct.
// Given path must belong to a configuration file which conforms with
// the latest known configuration settings format and its database
// schema version must match with the schemarp.Version.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(data)
}

// Parse unmarshals the data byte slice and loads a Config instance
// out of it. Extra items in the data will be ignored and missing items
// will take their default values. Thereafter, loaded Config will be
// validated and normalized.
//
// Environment variables which override the settings are consulted
// lazily, e.g., the database password is looked up when a connection
// pool is being created.
func Parse(data []byte) (*Config, error) {
	v, err := vers.Load(data)
	if err != nil {
		return nil, fmt.Errorf("loading versions: %w", err)
	}
	if err := v.Validate(Major, Minor); err != nil {
		return nil, fmt.Errorf(
			"expecting version v%d.%d: %w", Major, Minor, err,
		)
	}
	if err := v.ValidateDatabase(schemarp.Version); err != nil {
		return nil, fmt.Errorf("unexpected database schema: %w", err)
	}
	n := &yaml.Node{}
	if err := yaml.Unmarshal(data, n); err != nil {
		return nil, fmt.Errorf("unmarshalling yaml: %w", err)
	}
	if l := len(n.Content); l != 1 {
		return nil, fmt.Errorf(
			"found %d children nodes, instead of 1 mapping child", l,
		)
	}
	c := &Config{}
	if err := n.Decode(c); err != nil {
		return nil, fmt.Errorf("decoding yaml node: %w", err)
	}
	if err := c.ValidateAndNormalize(); err != nil {
		return nil, fmt.Errorf("validating configs: %w", err)
	}
	return c, nil
}

// ValidateAndNormalize validates the configuration settings and
// returns an error if they were not acceptable. It also replaces the
// missing settings with their default values.
func (c *Config) ValidateAndNormalize() error {
	if err := c.Database.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("validating database settings: %w", err)
	}
	if err := c.Gin.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("validating gin settings: %w", err)
	}
	if err := c.Usecases.Slots.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("validating slots use case settings: %w", err)
	}
	c.Telemetry.Normalize()
	return nil
}

// Marshalled struct contains a field for each one of the Config struct
// fields. Those fields which their default serialization format is
// not human-readable are replaced by their string representation.
type Marshalled struct {
	Database Database
	Gin      struct {
		Logger          *bool
		Recovery        *bool
		Release         *bool
		Address         string
		ShutdownTimeout *string `yaml:"shutdown-timeout,omitempty"`
	}
	Usecases  Usecases
	Telemetry Telemetry
	Versions  struct {
		Database string
		Config   string
	}
}

// MarshalYAML implements the yaml.Marshaler interface, so a Config
// is serialized using its Marshalled representation.
func (c *Config) MarshalYAML() (interface{}, error) {
	return c.Marshal(), nil
}

// Marshal creates a Marshalled instance representing c.
func (c *Config) Marshal() *Marshalled {
	m := &Marshalled{
		Database:  c.Database,
		Usecases:  c.Usecases,
		Telemetry: c.Telemetry,
	}
	m.Gin.Logger = c.Gin.Logger
	m.Gin.Recovery = c.Gin.Recovery
	m.Gin.Release = c.Gin.Release
	m.Gin.Address = c.Gin.Address
	m.Gin.ShutdownTimeout = c.Gin.ShutdownTimeout.Marshal()
	m.Versions.Database = c.Vers.Versions.Database.Marshal()
	m.Versions.Config = c.Vers.Versions.Config.Marshal()
	return m
}
