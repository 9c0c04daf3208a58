// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/momeni/slotkeeper/pkg/core/model"
	"github.com/momeni/slotkeeper/pkg/core/repo"
	"github.com/momeni/slotkeeper/pkg/core/usecase/slotsuc"
)

// Usecases contains the configuration settings for all use cases.
type Usecases struct {
	Slots Slots // slots use cases related settings
}

// Slots contains the configuration settings for the slots use cases.
// Fields are defined as pointers, so a missing setting is left to the
// default of the slotsuc package.
type Slots struct {
	// PlatePattern is the regular expression which normalized licence
	// plates must match.
	PlatePattern *string `yaml:"plate-pattern,omitempty"`
	// DefaultVehicleType is assumed when a registration carries no
	// vehicle type.
	DefaultVehicleType *model.VehicleType `yaml:"default-vehicle-type,omitempty"`
}

func (s *Slots) ValidateAndNormalize() error {
	if s.PlatePattern != nil {
		if _, err := regexp.Compile(*s.PlatePattern); err != nil {
			return fmt.Errorf("plate-pattern: %w", err)
		}
	}
	if s.DefaultVehicleType != nil &&
		*s.DefaultVehicleType == model.VehicleTypeUnset {
		return errors.New("default-vehicle-type must not be empty")
	}
	return nil
}

// Options returns the functional options which realize s settings.
func (s Slots) Options() []slotsuc.Option {
	opts := make([]slotsuc.Option, 0, 2)
	if s.PlatePattern != nil {
		opts = append(opts, slotsuc.WithPlatePattern(*s.PlatePattern))
	}
	if s.DefaultVehicleType != nil {
		opts = append(opts,
			slotsuc.WithDefaultVehicleType(*s.DefaultVehicleType),
		)
	}
	return opts
}

// NewSlotsUseCase instantiates a new slots use case based on the
// settings in the c struct. The extra options, such as a notifier,
// are appended after the configured options.
func (c *Config) NewSlotsUseCase(
	p repo.Pool,
	areas repo.Areas,
	vehicles repo.Vehicles,
	users repo.Users,
	extra ...slotsuc.Option,
) (*slotsuc.UseCase, error) {
	opts := append(c.Usecases.Slots.Options(), extra...)
	return slotsuc.New(p, areas, vehicles, users, opts...)
}
