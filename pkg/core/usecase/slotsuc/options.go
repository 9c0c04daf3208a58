// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package slotsuc

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/momeni/slotkeeper/pkg/core/model"
)

// Option is a functional option for the slots use case.
type Option func(uc *UseCase) error

// WithNotifier option configures the n event sink to be informed about
// the committed changes of parking areas. By default, changes are not
// announced.
func WithNotifier(n Notifier) Option {
	return func(uc *UseCase) error {
		if n == nil {
			return errors.New("notifier is nil")
		}
		if uc.notifier != nil {
			return errors.New("notifier is already configured")
		}
		uc.notifier = n
		return nil
	}
}

// WithClock option replaces the time.Now function which is used for
// the entry, occupation, and default exit timestamps.
func WithClock(now func() time.Time) Option {
	return func(uc *UseCase) error {
		if now == nil {
			return errors.New("clock is nil")
		}
		if uc.now != nil {
			return errors.New("clock is already configured")
		}
		uc.now = now
		return nil
	}
}

// WithPlatePattern option configures the regular expression which the
// normalized (upper-cased) licence plates must match.
func WithPlatePattern(pattern string) Option {
	return func(uc *UseCase) error {
		if uc.platePattern != nil {
			return errors.New("plate pattern is already configured")
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			return fmt.Errorf("compiling plate pattern: %w", err)
		}
		uc.platePattern = re
		return nil
	}
}

// WithDefaultVehicleType option configures the vehicle type which is
// assumed when a registration does not mention any type.
func WithDefaultVehicleType(t model.VehicleType) Option {
	return func(uc *UseCase) error {
		if err := t.Validate(); err != nil {
			return err
		}
		if t == model.VehicleTypeUnset {
			return errors.New("default vehicle type must be specific")
		}
		if uc.defaultType != model.VehicleTypeUnset {
			return errors.New("default vehicle type is already configured")
		}
		uc.defaultType = t
		return nil
	}
}
