// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package slotsuc

import "github.com/momeni/slotkeeper/pkg/core/model"

// AlignTypes steers the types of the unoccupied slots of a toward its
// declared per-type capacity. Slots are sorted by their numbers and
// the unoccupied slot at each position takes the type which a freshly
// generated layout would have at that position. Occupied slots keep
// their types until they are released.
//
// Areas without a declared capacity are left intact. AlignTypes
// reports if any slot was retyped.
func AlignTypes(a *model.ParkingArea) bool {
	if a.Capacity.Sum() == 0 {
		return false
	}
	a.SortSlots()
	desired := desiredTypes(a.Capacity, len(a.Slots))
	changed := false
	for i := range a.Slots {
		s := &a.Slots[i]
		if s.IsOccupied || s.VehicleType == desired[i] {
			continue
		}
		s.VehicleType = desired[i]
		changed = true
	}
	return changed
}
