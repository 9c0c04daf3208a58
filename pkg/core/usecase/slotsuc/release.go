// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package slotsuc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/slotkeeper/pkg/core/cerr"
	"github.com/momeni/slotkeeper/pkg/core/model"
	"github.com/momeni/slotkeeper/pkg/core/repo"
)

// findVehicle loads the vid vehicle on a connection, without locking
// it, so its parking area may be locked before the vehicle itself.
func (uc *UseCase) findVehicle(ctx context.Context, vid uuid.UUID) (v *model.Vehicle, err error) {
	err = uc.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		v, err = uc.vehicles.Conn(c).Find(ctx, vid)
		return err
	})
	switch {
	case errors.Is(err, repo.ErrNotFound):
		return nil, cerr.NotFound(cerr.VehicleNotFound, nil)
	case err != nil:
		return nil, fmt.Errorf("finding vehicle %s: %w", vid, err)
	}
	return v, nil
}

func (uc *UseCase) lockVehicle(ctx context.Context, tx repo.Tx, vid uuid.UUID) (*model.Vehicle, error) {
	v, err := uc.vehicles.Tx(tx).FindForUpdate(ctx, vid)
	switch {
	case errors.Is(err, repo.ErrNotFound):
		return nil, cerr.NotFound(cerr.VehicleNotFound, nil)
	case err != nil:
		return nil, fmt.Errorf("finding vehicle %s: %w", vid, err)
	}
	return v, nil
}

// Release use case marks the vid vehicle as exited at the exitTime
// (or now, if it is nil), computes its parking fee, and frees its slot.
// The slot is found by the slot number of the vehicle, or by searching
// for the slot which is occupied by it if the numbered slot does not
// refer to it. A vehicle which holds no slot (e.g., losing a duplicate
// claim to an earlier vehicle) frees nothing. Counters are derived
// from the occupied slots, or decremented and clamped if the layout is
// not initialized yet.
//
// Returned errors carry the VEHICLE_NOT_FOUND, VEHICLE_ALREADY_EXITED,
// or PARKING_AREA_NOT_FOUND codes. An exitTime before the entry time
// yields the INVALID_REQUEST code.
func (uc *UseCase) Release(ctx context.Context, vid uuid.UUID, exitTime *time.Time) (res *Assignment, err error) {
	v, err := uc.findVehicle(ctx, vid)
	if err != nil {
		return nil, err
	}
	err = uc.mutate(ctx, v.ParkingAreaID, func(ctx context.Context, tx repo.Tx) (model.ChangeKind, error) {
		v, err := uc.lockVehicle(ctx, tx, vid)
		if err != nil {
			return "", err
		}
		if v.Status == model.VehicleExited {
			return "", cerr.Conflict(cerr.VehicleAlreadyExited, nil)
		}
		a, err := uc.lockArea(ctx, tx, v.ParkingAreaID)
		if err != nil {
			return "", err
		}
		exit := uc.now()
		if exitTime != nil {
			exit = *exitTime
		}
		if exit.Before(v.EntryTime) {
			return "", cerr.BadRequest(cerr.InvalidRequest, fmt.Errorf(
				"exit time %s is before the entry time %s",
				exit.Format(time.RFC3339), v.EntryTime.Format(time.RFC3339),
			))
		}
		if err := transition(ctx, v, eventExit); err != nil {
			return "", err
		}
		v.ExitTime = &exit
		v.Fee = a.Rates.Fee(v.VehicleType, v.EntryTime, exit)
		if s := occupiedSlotOf(a, v); s != nil {
			s.Vacate()
		}
		if len(a.Slots) > 0 {
			a.SetCounters(a.CountOccupied())
		} else {
			a.SetCounters(a.OccupiedSlots - 1)
		}
		if err := uc.vehicles.Tx(tx).Update(ctx, v); err != nil {
			return "", fmt.Errorf("updating vehicle: %w", err)
		}
		if err := uc.save(ctx, tx, a); err != nil {
			return "", err
		}
		sum := a.Summary()
		v.Area = &sum
		res = &Assignment{Vehicle: v, Area: sum}
		return model.ChangeSlotReleased, nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// occupiedSlotOf returns the slot of a which is held by v, or nil.
// A numbered slot which is flagged occupied but lacks an occupant link
// is also taken as the slot of v.
func occupiedSlotOf(a *model.ParkingArea, v *model.Vehicle) *model.Slot {
	if v.SlotNumber != nil {
		s := a.Slot(*v.SlotNumber)
		if s != nil && (s.OccupiedBy(v.ID) ||
			(s.IsOccupied && s.OccupantVehicleID == nil)) {
			return s
		}
	}
	return a.SlotOccupiedBy(v.ID)
}

// MarkPaid use case records that the parking fee of the vid vehicle is
// paid, moving it from the Parked to the Paid status. Payment itself
// is handled elsewhere. The vehicle keeps its slot until it is
// released.
//
// Returned errors carry the VEHICLE_NOT_FOUND, VEHICLE_ALREADY_EXITED,
// or VEHICLE_ALREADY_PAID codes.
func (uc *UseCase) MarkPaid(ctx context.Context, vid uuid.UUID) (paid *model.Vehicle, err error) {
	v, err := uc.findVehicle(ctx, vid)
	if err != nil {
		return nil, err
	}
	err = uc.mutate(ctx, v.ParkingAreaID, func(ctx context.Context, tx repo.Tx) (model.ChangeKind, error) {
		v, err := uc.lockVehicle(ctx, tx, vid)
		if err != nil {
			return "", err
		}
		if err := transition(ctx, v, eventPay); err != nil {
			return "", err
		}
		if err := uc.vehicles.Tx(tx).Update(ctx, v); err != nil {
			return "", fmt.Errorf("updating vehicle: %w", err)
		}
		paid = v
		return model.ChangeVehiclePaid, nil
	})
	if err != nil {
		return nil, err
	}
	return paid, nil
}
