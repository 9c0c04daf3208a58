// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package slotsuc

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/slotkeeper/pkg/core/model"
)

// ReconcileOccupancy treats the active vehicles of the a area as the
// ground truth and corrects its slots and counters accordingly.
// Slots which are referenced by an active vehicle are flagged occupied
// and bound to that vehicle, while all other slots are vacated (so a
// stale occupant link is dropped, not restored). The occupied counter
// is recomputed as the number of occupied slots.
//
// It reports if any slot or counter was changed, so callers may skip
// the persistence of an already consistent area.
func ReconcileOccupancy(a *model.ParkingArea, active []model.Vehicle) bool {
	owners := occupantsBySlot(active)
	changed := false
	for i := range a.Slots {
		s := &a.Slots[i]
		v, ok := owners[s.SlotNumber]
		if !ok {
			if s.Vacate() {
				changed = true
			}
			continue
		}
		if s.OccupiedBy(v.ID) && s.OccupiedAt != nil {
			continue
		}
		at := v.EntryTime
		if s.OccupiedBy(v.ID) {
			at = *s.OccupiedAt
		}
		s.Occupy(v.ID, at)
		changed = true
	}
	if a.SetCounters(a.CountOccupied()) {
		changed = true
	}
	return changed
}

// RebuildOccupancy vacates all slots of a and then binds every active
// vehicle to its slot again, taking the occupation time from the entry
// time of that vehicle. Counters are recomputed from scratch too.
// It reports if the rebuilt area differs from its former state.
func RebuildOccupancy(a *model.ParkingArea, active []model.Vehicle) bool {
	before := make([]model.Slot, len(a.Slots))
	copy(before, a.Slots)
	owners := occupantsBySlot(active)
	for i := range a.Slots {
		s := &a.Slots[i]
		s.Vacate()
		if v, ok := owners[s.SlotNumber]; ok {
			s.Occupy(v.ID, v.EntryTime)
		}
	}
	changed := a.SetCounters(a.CountOccupied())
	for i := range before {
		if !sameOccupancy(before[i], a.Slots[i]) {
			changed = true
		}
	}
	return changed
}

// occupantsBySlot maps slot numbers to the active vehicles which
// reference them. If two vehicles claim the same slot, the earlier
// entered one is kept, so each slot will have at most one occupant.
func occupantsBySlot(active []model.Vehicle) map[int]model.Vehicle {
	sorted := make([]model.Vehicle, 0, len(active))
	for _, v := range active {
		if v.Status.Active() && v.SlotNumber != nil {
			sorted = append(sorted, v)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].EntryTime.Before(sorted[j].EntryTime)
	})
	owners := make(map[int]model.Vehicle, len(sorted))
	for _, v := range sorted {
		if _, taken := owners[*v.SlotNumber]; !taken {
			owners[*v.SlotNumber] = v
		}
	}
	return owners
}

func sameOccupancy(a, b model.Slot) bool {
	if a.IsOccupied != b.IsOccupied {
		return false
	}
	if !equalPtr(a.OccupantVehicleID, b.OccupantVehicleID,
		func(x, y uuid.UUID) bool { return x == y }) {
		return false
	}
	return equalPtr(a.OccupiedAt, b.OccupiedAt, timeEqual)
}

func equalPtr[T any](a, b *T, eq func(x, y T) bool) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return eq(*a, *b)
}

func timeEqual(x, y time.Time) bool {
	return x.Equal(y)
}
