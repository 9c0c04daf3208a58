// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package slotsuc

import "github.com/momeni/slotkeeper/pkg/core/model"

// GenerateLayout creates the slots of the a area if it has none yet.
// Slots are numbered from 1 to a.TotalSlots and are all unoccupied.
// When a per-type capacity is declared, slots are typed by it in the
// model.LayoutOrder (padded with car slots), otherwise they stay
// untyped. Counters are reset to have all slots available.
//
// GenerateLayout is idempotent. It never touches an existing layout
// and reports if the layout was generated.
func GenerateLayout(a *model.ParkingArea) bool {
	if len(a.Slots) > 0 || a.TotalSlots <= 0 {
		return false
	}
	types := desiredTypes(a.Capacity, a.TotalSlots)
	a.Slots = make([]model.Slot, a.TotalSlots)
	for i := range a.Slots {
		a.Slots[i] = model.Slot{
			SlotNumber:  i + 1,
			VehicleType: types[i],
		}
	}
	a.OccupiedSlots = 0
	a.AvailableSlots = a.TotalSlots
	return true
}

// desiredTypes returns n slot types following the c capacity. Types
// are concatenated in the model.LayoutOrder and the remaining entries
// are filled by car. A zero c yields n untyped entries.
func desiredTypes(c model.Capacity, n int) []model.VehicleType {
	types := make([]model.VehicleType, 0, n)
	if c.Sum() == 0 {
		return append(types, make([]model.VehicleType, n)...)
	}
	for _, t := range model.LayoutOrder {
		for i := c.Of(t); i > 0 && len(types) < n; i-- {
			types = append(types, t)
		}
	}
	for len(types) < n {
		types = append(types, model.VehicleTypeCar)
	}
	return types
}
