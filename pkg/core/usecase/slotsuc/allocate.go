// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package slotsuc

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/momeni/slotkeeper/pkg/core/cerr"
	"github.com/momeni/slotkeeper/pkg/core/model"
	"github.com/momeni/slotkeeper/pkg/core/repo"
)

// Registration contains the attributes of an entering vehicle and its
// owner, and the requested parking slot.
type Registration struct {
	Plate       string
	VehicleType string // free-text, canonicalized by model.ParseVehicleType
	OwnerName   string
	Email       string
	Phone       string // optional

	AreaID     uuid.UUID
	SlotNumber *int
}

// Assignment is the result of a successful slot assignment or release.
type Assignment struct {
	Vehicle *model.Vehicle
	Area    model.AreaSummary
}

var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 ()-]{5,18}[0-9]$`)

// normalized validates r and returns its normalized copy together with
// its canonical vehicle type. Checks are performed in a fixed order
// and the first failure is returned.
func (uc *UseCase) normalized(r Registration) (Registration, model.VehicleType, error) {
	r.Plate = model.NormalizePlate(r.Plate)
	r.OwnerName = strings.TrimSpace(r.OwnerName)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Phone = strings.TrimSpace(r.Phone)
	if r.Plate == "" || r.OwnerName == "" || r.Email == "" ||
		r.AreaID == uuid.Nil || r.SlotNumber == nil {
		return r, 0, cerr.BadRequest(cerr.MissingFields, nil)
	}
	if err := uc.validate.Var(r.Email, "email"); err != nil {
		return r, 0, cerr.BadRequest(cerr.InvalidEmail, nil)
	}
	if r.Phone != "" && !phonePattern.MatchString(r.Phone) {
		return r, 0, cerr.BadRequest(cerr.InvalidPhone, nil)
	}
	if !uc.platePattern.MatchString(r.Plate) {
		return r, 0, cerr.BadRequest(cerr.InvalidPlate, nil)
	}
	vt, err := model.ParseVehicleType(r.VehicleType)
	if err != nil {
		return r, 0, cerr.BadRequest(cerr.InvalidVehicleType, fmt.Errorf(
			"%q: %w", r.VehicleType, err,
		))
	}
	if vt == model.VehicleTypeUnset {
		vt = uc.defaultType
	}
	return r, vt, nil
}

// RegisterAndAssign use case registers an entering vehicle (finding or
// creating its owner by email) and binds it to the requested slot of
// the requested parking area. Either all of the vehicle, owner, slot,
// and counters changes are committed, or none of them.
//
// Returned errors carry one of the MISSING_FIELDS, INVALID_EMAIL,
// INVALID_PHONE, INVALID_PLATE, INVALID_VEHICLE_TYPE,
// VEHICLE_ALREADY_PARKED, PARKING_AREA_NOT_FOUND, INVALID_SLOT_NUMBER,
// SLOT_OCCUPIED, SLOT_TYPE_MISMATCH, or NO_AVAILABLE_SLOTS codes,
// checked in this order.
func (uc *UseCase) RegisterAndAssign(ctx context.Context, r Registration) (res *Assignment, err error) {
	r, vt, err := uc.normalized(r)
	if err != nil {
		return nil, err
	}
	err = uc.mutate(ctx, r.AreaID, func(ctx context.Context, tx repo.Tx) (model.ChangeKind, error) {
		vq := uc.vehicles.Tx(tx)
		switch _, err := vq.FindActiveByPlate(ctx, r.Plate); {
		case err == nil:
			return "", cerr.Conflict(cerr.VehicleAlreadyParked, nil)
		case !errors.Is(err, repo.ErrNotFound):
			return "", fmt.Errorf("finding plate: %w", err)
		}
		a, err := uc.lockArea(ctx, tx, r.AreaID)
		if err != nil {
			return "", err
		}
		if !a.Active {
			return "", cerr.NotFound(cerr.ParkingAreaNotFound, nil)
		}
		if GenerateLayout(a) {
			active, err := vq.ListActiveByArea(ctx, a.ID)
			if err != nil {
				return "", fmt.Errorf("listing active vehicles: %w", err)
			}
			ReconcileOccupancy(a, active)
			AlignTypes(a)
		}
		n := *r.SlotNumber
		s := a.Slot(n)
		switch {
		case n <= 0 || s == nil:
			return "", cerr.BadRequest(cerr.InvalidSlotNumber, fmt.Errorf(
				"area has no slot numbered %d", n,
			))
		case s.IsOccupied:
			return "", cerr.Conflict(cerr.SlotOccupied, nil)
		case !s.VehicleType.Accepts(vt):
			return "", cerr.Conflict(cerr.SlotTypeMismatch, fmt.Errorf(
				"slot %d is reserved for %s, not %s",
				n, s.VehicleType, vt,
			))
		case a.AvailableSlots <= 0:
			return "", cerr.Conflict(cerr.NoAvailableSlots, nil)
		}

		owner, err := uc.users.Tx(tx).FindOrCreate(ctx, model.User{
			Name:  r.OwnerName,
			Email: r.Email,
			Phone: r.Phone,
		})
		if err != nil {
			return "", fmt.Errorf("finding owner: %w", err)
		}
		now := uc.now()
		v := &model.Vehicle{
			ID:            uuid.New(),
			Plate:         r.Plate,
			VehicleType:   vt,
			OwnerID:       owner.ID,
			ParkingAreaID: a.ID,
			SlotNumber:    &n,
			Status:        model.VehicleParked,
			PaymentStatus: model.PaymentUnpaid,
			EntryTime:     now,
		}
		if err := vq.Create(ctx, v); err != nil {
			return "", fmt.Errorf("creating vehicle: %w", err)
		}
		s.Occupy(v.ID, now)
		a.SetCounters(a.OccupiedSlots + 1)
		if err := uc.save(ctx, tx, a); err != nil {
			return "", err
		}
		sum := a.Summary()
		v.Owner = owner
		v.Area = &sum
		res = &Assignment{Vehicle: v, Area: sum}
		return model.ChangeSlotAssigned, nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
