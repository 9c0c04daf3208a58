// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package slotsuc

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/momeni/slotkeeper/pkg/core/cerr"
	"github.com/momeni/slotkeeper/pkg/core/model"
	"github.com/momeni/slotkeeper/pkg/core/repo"
)

// Availability lists the free slots of a parking area together with
// its refreshed counters.
type Availability struct {
	Slots []model.Slot
	Area  model.AreaSummary
}

// ListAvailable use case returns the unoccupied slots of the areaID
// parking area, sorted by their slot numbers. Before filtering, the
// area layout is generated if missing, and its slots and counters are
// reconciled with the active vehicles and its per-type capacity.
// Corrections are persisted only if something was changed.
//
// If typeFilter is not empty, only the slots which accept that vehicle
// type (including the untyped slots) are returned. An unknown type
// yields the INVALID_VEHICLE_TYPE code and a missing (or inactive)
// area yields the PARKING_AREA_NOT_FOUND code.
func (uc *UseCase) ListAvailable(ctx context.Context, areaID uuid.UUID, typeFilter string) (res *Availability, err error) {
	vt, err := model.ParseVehicleType(typeFilter)
	if err != nil {
		return nil, cerr.BadRequest(cerr.InvalidVehicleType, fmt.Errorf(
			"%q: %w", typeFilter, err,
		))
	}
	err = uc.mutate(ctx, areaID, func(ctx context.Context, tx repo.Tx) (model.ChangeKind, error) {
		a, err := uc.lockArea(ctx, tx, areaID)
		if err != nil {
			return "", err
		}
		if !a.Active {
			return "", cerr.NotFound(cerr.ParkingAreaNotFound, nil)
		}
		generated, changed, err := uc.refresh(ctx, tx, a)
		if err != nil {
			return "", err
		}
		res = &Availability{
			Slots: freeSlots(a, vt),
			Area:  a.Summary(),
		}
		if !changed {
			return "", nil
		}
		if err := uc.save(ctx, tx, a); err != nil {
			return "", err
		}
		if generated {
			return model.ChangeSlotsInitialized, nil
		}
		return model.ChangeSlotsReconciled, nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// freeSlots returns the unoccupied slots of a (which must be sorted)
// which accept the vt vehicle type. The VehicleTypeUnset matches all.
func freeSlots(a *model.ParkingArea, vt model.VehicleType) []model.Slot {
	free := make([]model.Slot, 0, a.AvailableSlots)
	for _, s := range a.Slots {
		if s.IsOccupied {
			continue
		}
		if vt != model.VehicleTypeUnset && !s.VehicleType.Accepts(vt) {
			continue
		}
		free = append(free, s)
	}
	return free
}
