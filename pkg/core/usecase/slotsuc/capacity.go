// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package slotsuc

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/momeni/slotkeeper/pkg/core/cerr"
	"github.com/momeni/slotkeeper/pkg/core/model"
	"github.com/momeni/slotkeeper/pkg/core/repo"
)

// NewArea contains the attributes of a parking area to be created.
type NewArea struct {
	Name       string
	TotalSlots int
	Capacity   model.Capacity
	Rates      model.Rates
	Active     bool
}

// CapacityUpdate contains the optional changes of a parking area.
// Nil fields are kept intact.
type CapacityUpdate struct {
	Name       *string
	TotalSlots *int
	Capacity   *model.Capacity
	Rates      *model.Rates
	Active     *bool
}

func validateCapacity(total int, c model.Capacity) error {
	if total <= 0 {
		return cerr.BadRequest(cerr.InvalidTotalSlots, fmt.Errorf(
			"total slots (%d) is not positive", total,
		))
	}
	if err := c.Validate(total); err != nil {
		return cerr.BadRequest(cerr.InvalidSlotCapacity, err)
	}
	return nil
}

func validateRates(r model.Rates) error {
	if r.Car < 0 || r.Bike < 0 || r.Van < 0 || r.ThreeWheeler < 0 {
		return cerr.BadRequest(cerr.InvalidRequest, errors.New(
			"hourly rates may not be negative",
		))
	}
	return nil
}

// CreateArea use case creates a parking area and generates its slot
// layout at once, so it is ready for allocations.
func (uc *UseCase) CreateArea(ctx context.Context, na NewArea) (a *model.ParkingArea, err error) {
	na.Name = strings.TrimSpace(na.Name)
	if na.Name == "" {
		return nil, cerr.BadRequest(cerr.MissingFields, nil)
	}
	if err = validateCapacity(na.TotalSlots, na.Capacity); err != nil {
		return nil, err
	}
	if err = validateRates(na.Rates); err != nil {
		return nil, err
	}
	a = &model.ParkingArea{
		ID:         uuid.New(),
		Name:       na.Name,
		TotalSlots: na.TotalSlots,
		Capacity:   na.Capacity,
		Rates:      na.Rates,
		Active:     na.Active,
	}
	GenerateLayout(a)
	err = uc.mutate(ctx, a.ID, func(ctx context.Context, tx repo.Tx) (model.ChangeKind, error) {
		if err := uc.areas.Tx(tx).Create(ctx, a); err != nil {
			return "", fmt.Errorf("creating area: %w", err)
		}
		return model.ChangeAreaCreated, nil
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

// GetArea use case returns the id parking area with its slots, as
// they are stored and without any reconciliation.
func (uc *UseCase) GetArea(ctx context.Context, id uuid.UUID) (a *model.ParkingArea, err error) {
	err = uc.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		a, err = uc.areas.Conn(c).Find(ctx, id)
		return err
	})
	switch {
	case errors.Is(err, repo.ErrNotFound):
		return nil, cerr.NotFound(cerr.ParkingAreaNotFound, nil)
	case err != nil:
		return nil, fmt.Errorf("finding area %s: %w", id, err)
	}
	a.SortSlots()
	return a, nil
}

// UpdateCapacity use case changes the attributes of the areaID parking
// area. When the total slots changes, an initialized layout is resized.
// Growing appends unoccupied slots numbered after the largest current
// slot number and shrinking removes the highest-numbered unoccupied
// slots. The occupied counter is kept and the new total may not be
// less than it (INVALID_TOTAL_SLOTS). Thereafter, the unoccupied slots
// are aligned with the (possibly new) per-type capacity, leaving the
// occupied slots intact.
func (uc *UseCase) UpdateCapacity(ctx context.Context, areaID uuid.UUID, cu CapacityUpdate) (a *model.ParkingArea, err error) {
	if cu.Name != nil && strings.TrimSpace(*cu.Name) == "" {
		return nil, cerr.BadRequest(cerr.MissingFields, nil)
	}
	if cu.Rates != nil {
		if err = validateRates(*cu.Rates); err != nil {
			return nil, err
		}
	}
	err = uc.mutate(ctx, areaID, func(ctx context.Context, tx repo.Tx) (model.ChangeKind, error) {
		var err error
		a, err = uc.lockArea(ctx, tx, areaID)
		if err != nil {
			return "", err
		}
		total, c := a.TotalSlots, a.Capacity
		if cu.TotalSlots != nil {
			total = *cu.TotalSlots
		}
		if cu.Capacity != nil {
			c = *cu.Capacity
		}
		if err := validateCapacity(total, c); err != nil {
			return "", err
		}
		occupied := a.OccupiedSlots
		if n := a.CountOccupied(); n > occupied {
			occupied = n
		}
		if total < occupied {
			return "", cerr.BadRequest(cerr.InvalidTotalSlots, fmt.Errorf(
				"total slots (%d) is less than occupied slots (%d)",
				total, occupied,
			))
		}
		if cu.Name != nil {
			a.Name = strings.TrimSpace(*cu.Name)
		}
		if cu.Rates != nil {
			a.Rates = *cu.Rates
		}
		if cu.Active != nil {
			a.Active = *cu.Active
		}
		a.Capacity = c
		if len(a.Slots) > 0 {
			resize(a, total)
		}
		a.TotalSlots = total
		a.SetCounters(a.OccupiedSlots)
		AlignTypes(a)
		if err := uc.save(ctx, tx, a); err != nil {
			return "", err
		}
		return model.ChangeCapacityUpdated, nil
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

// resize grows or shrinks the slots of a, so it will have n slots.
// New slots are untyped, so the caller should align them. The n must
// not be less than the number of occupied slots.
func resize(a *model.ParkingArea, n int) {
	a.SortSlots()
	for next := a.MaxSlotNumber() + 1; len(a.Slots) < n; next++ {
		a.Slots = append(a.Slots, model.Slot{SlotNumber: next})
	}
	drop := len(a.Slots) - n
	if drop <= 0 {
		return
	}
	removed := make(map[int]bool, drop)
	for i := len(a.Slots) - 1; i >= 0 && len(removed) < drop; i-- {
		if !a.Slots[i].IsOccupied {
			removed[a.Slots[i].SlotNumber] = true
		}
	}
	kept := a.Slots[:0]
	for _, s := range a.Slots {
		if !removed[s.SlotNumber] {
			kept = append(kept, s)
		}
	}
	a.Slots = kept
}

// InitializeSlots use case generates the slot layout of the areaID
// parking area if it is missing and reconciles it with the active
// vehicles. It is idempotent and never regenerates an existing layout.
func (uc *UseCase) InitializeSlots(ctx context.Context, areaID uuid.UUID) (a *model.ParkingArea, err error) {
	err = uc.mutate(ctx, areaID, func(ctx context.Context, tx repo.Tx) (model.ChangeKind, error) {
		var err error
		a, err = uc.lockArea(ctx, tx, areaID)
		if err != nil {
			return "", err
		}
		generated, changed, err := uc.refresh(ctx, tx, a)
		if err != nil || !changed {
			return "", err
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
	return a, nil
}

// RecalculateCounts use case rebuilds the occupancy of all slots of
// the areaID parking area from the active vehicles, rewriting every
// occupant link from scratch, and recomputes its counters.
func (uc *UseCase) RecalculateCounts(ctx context.Context, areaID uuid.UUID) (a *model.ParkingArea, err error) {
	err = uc.mutate(ctx, areaID, func(ctx context.Context, tx repo.Tx) (model.ChangeKind, error) {
		var err error
		a, err = uc.lockArea(ctx, tx, areaID)
		if err != nil {
			return "", err
		}
		generated := GenerateLayout(a)
		active, err := uc.vehicles.Tx(tx).ListActiveByArea(ctx, a.ID)
		if err != nil {
			return "", fmt.Errorf("listing active vehicles: %w", err)
		}
		changed := RebuildOccupancy(a, active)
		if AlignTypes(a) {
			changed = true
		}
		if !generated && !changed {
			return "", nil
		}
		if err := uc.save(ctx, tx, a); err != nil {
			return "", err
		}
		return model.ChangeSlotsReconciled, nil
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}
