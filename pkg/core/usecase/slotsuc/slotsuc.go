// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package slotsuc contains the slots UseCase which assigns parking
// slots to the entering vehicles, releases them upon exit, and keeps
// the slot layout and counters of each parking area consistent with
// the set of active vehicles.
//
// Every mutating operation holds an in-process lock of its parking
// area and runs in one database transaction which locks the area row,
// so operations on the same area are serialized both in one process
// and among replicas. Different areas are independent.
package slotsuc

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/momeni/slotkeeper/pkg/core/cerr"
	"github.com/momeni/slotkeeper/pkg/core/log"
	"github.com/momeni/slotkeeper/pkg/core/model"
	"github.com/momeni/slotkeeper/pkg/core/repo"
)

// DefaultPlatePattern is the licence plate pattern which is used when
// the WithPlatePattern option is not passed.
const DefaultPlatePattern = `^[A-Z0-9][A-Z0-9 -]{2,14}[A-Z0-9]$`

// UseCase represents the slots use case. It holds a database
// connection pool, the areas, vehicles, and users repositories, and
// the use case specific settings.
type UseCase struct {
	pool     repo.Pool
	areas    repo.Areas
	vehicles repo.Vehicles
	users    repo.Users

	notifier     Notifier
	now          func() time.Time
	platePattern *regexp.Regexp
	defaultType  model.VehicleType

	locks    areaLocks
	validate *validator.Validate
}

// New instantiates a slots use case.
// Required parameters are passed individually, while the optional
// ones are passed as functional options.
func New(
	p repo.Pool,
	areas repo.Areas,
	vehicles repo.Vehicles,
	users repo.Users,
	opts ...Option,
) (*UseCase, error) {
	uc := &UseCase{
		pool:     p,
		areas:    areas,
		vehicles: vehicles,
		users:    users,
		validate: validator.New(),
	}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	if uc.notifier == nil {
		uc.notifier = nopNotifier{}
	}
	if uc.now == nil {
		uc.now = time.Now
	}
	if uc.platePattern == nil {
		uc.platePattern = regexp.MustCompile(DefaultPlatePattern)
	}
	if uc.defaultType == model.VehicleTypeUnset {
		uc.defaultType = model.VehicleTypeCar
	}
	return uc, nil
}

// txFunc mutates one parking area in a transaction and returns the
// kind of its committed change, or an empty kind if nothing changed.
type txFunc func(ctx context.Context, tx repo.Tx) (model.ChangeKind, error)

// mutate runs f in a new transaction while holding the areaID lock.
// If f returns a nil error, the transaction is committed and the
// notifier is informed about the returned change kind (if any).
// Otherwise, the transaction is rolled back.
func (uc *UseCase) mutate(ctx context.Context, areaID uuid.UUID, f txFunc) error {
	unlock := uc.locks.lock(areaID)
	defer unlock()

	var kind model.ChangeKind
	err := uc.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			var err error
			kind, err = f(ctx, tx)
			return err
		})
	})
	if err != nil {
		return err
	}
	if kind != "" {
		uc.notifier.Notify(ctx, areaID, kind)
	}
	return nil
}

// lockArea loads and locks the id area in the tx transaction.
// A missing area is reported with the PARKING_AREA_NOT_FOUND code.
func (uc *UseCase) lockArea(ctx context.Context, tx repo.Tx, id uuid.UUID) (*model.ParkingArea, error) {
	a, err := uc.areas.Tx(tx).FindForUpdate(ctx, id)
	switch {
	case errors.Is(err, repo.ErrNotFound):
		return nil, cerr.NotFound(cerr.ParkingAreaNotFound, nil)
	case err != nil:
		return nil, fmt.Errorf("finding area %s: %w", id, err)
	}
	a.SortSlots()
	return a, nil
}

// refresh generates the layout of a (if missing) and reconciles its
// slots and counters with the active vehicles. It reports if a was
// changed. Detected drifts are logged, but never returned as errors.
func (uc *UseCase) refresh(ctx context.Context, tx repo.Tx, a *model.ParkingArea) (generated, changed bool, err error) {
	generated = GenerateLayout(a)
	active, err := uc.vehicles.Tx(tx).ListActiveByArea(ctx, a.ID)
	if err != nil {
		return false, false, fmt.Errorf("listing active vehicles: %w", err)
	}
	before := a.OccupiedSlots
	if ReconcileOccupancy(a, active) && !generated {
		log.Warn(
			ctx, "corrected slots occupancy drift",
			log.UUID("area", a.ID),
			log.Int("occupied_before", before),
			log.Int("occupied", a.OccupiedSlots),
			log.Int("available", a.AvailableSlots),
		)
		changed = true
	}
	if AlignTypes(a) {
		changed = true
	}
	return generated, generated || changed, nil
}

func (uc *UseCase) save(ctx context.Context, tx repo.Tx, a *model.ParkingArea) error {
	if err := uc.areas.Tx(tx).Save(ctx, a); err != nil {
		return fmt.Errorf("saving area %s: %w", a.ID, err)
	}
	return nil
}
