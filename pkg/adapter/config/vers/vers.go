// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package vers contains the versions parsing which precedes loading of
// a configuration file. Two versions are tracked, namely the
// configuration file format and the database schema. They are parsed
// before the actual settings, so an incompatible file can be rejected
// with a clear error instead of a partially decoded struct.
package vers

import (
	"fmt"

	"github.com/momeni/slotkeeper/pkg/core/cerr"
	"github.com/momeni/slotkeeper/pkg/core/model"
	"gopkg.in/yaml.v3"
)

// Config may be embedded with inline format in the config struct in
// order to indicate its versions.
type Config struct {
	Versions Versions `yaml:"versions"`
}

// Versions contains the configuration file and database schema
// versions. Each binary only supports the latest versions which are
// known to it.
type Versions struct {
	Database model.SemVer `yaml:"database"`
	Config   model.SemVer `yaml:"config"`
}

// Load deserializes the versions block of data. Extra fields in data
// are ignored.
func Load(data []byte) (*Config, error) {
	vc := &Config{}
	if err := yaml.Unmarshal(data, vc); err != nil {
		return nil, err
	}
	return vc, nil
}

// Validate returns an error if the configuration version of vc is not
// supported by the given major and minor versions. That is, the stored
// major version must match and the stored minor version must not be
// newer than minor.
func (vc *Config) Validate(major, minor uint) error {
	v := vc.Versions.Config
	if v[0] != major {
		return fmt.Errorf("incompatible major version: %d", v[0])
	}
	if v[1] > minor {
		return fmt.Errorf("unsupported minor version: %d", v[1])
	}
	return nil
}

// ValidateDatabase returns a *cerr.MismatchingSemVerError if the
// database schema version of vc is not equal to the expected version.
func (vc *Config) ValidateDatabase(expected model.SemVer) error {
	if actual := vc.Versions.Database; actual != expected {
		return &cerr.MismatchingSemVerError{expected, actual}
	}
	return nil
}
