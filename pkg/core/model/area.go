// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Capacity is the optional per-type breakdown of the slots of a parking
// area. A zero Capacity means that the area declares no breakdown and
// all of its slots are laid out untyped.
type Capacity struct {
	Car          int `json:"car_slots"`
	Bike         int `json:"bike_slots"`
	Van          int `json:"van_slots"`
	ThreeWheeler int `json:"three_wheeler_slots"`
}

// Sum returns the total count of slots which are declared per type.
func (c Capacity) Sum() int {
	return c.Car + c.Bike + c.Van + c.ThreeWheeler
}

// Of returns the declared count of slots for the t vehicle type.
func (c Capacity) Of(t VehicleType) int {
	switch t {
	case VehicleTypeCar:
		return c.Car
	case VehicleTypeBike:
		return c.Bike
	case VehicleTypeVan:
		return c.Van
	case VehicleTypeThreeWheeler:
		return c.ThreeWheeler
	default:
		return 0
	}
}

// ErrNegativeCapacity indicates that a per-type capacity is negative.
var ErrNegativeCapacity = errors.New("per-type capacity is negative")

// CapacitySumError indicates that the per-type capacities are declared
// (having a nonzero sum) but they do not add up to the total slots.
type CapacitySumError [2]int

// Error implements the error interface.
func (e CapacitySumError) Error() string {
	return fmt.Sprintf(
		"per-type capacities sum to %d, but total slots is %d",
		e[0], e[1],
	)
}

// Validate checks the c capacity against the given total slots count.
// All counts must be non-negative and their sum, when nonzero, must be
// equal to the total.
func (c Capacity) Validate(total int) error {
	if c.Car < 0 || c.Bike < 0 || c.Van < 0 || c.ThreeWheeler < 0 {
		return ErrNegativeCapacity
	}
	if s := c.Sum(); s != 0 && s != total {
		return CapacitySumError{s, total}
	}
	return nil
}

// Rates contains the hourly parking price of each vehicle type in the
// minor currency unit (e.g., cents).
type Rates struct {
	Car          int64 `json:"car"`
	Bike         int64 `json:"bike"`
	Van          int64 `json:"van"`
	ThreeWheeler int64 `json:"three_wheeler"`
}

// Of returns the hourly rate of the t vehicle type.
func (r Rates) Of(t VehicleType) int64 {
	switch t {
	case VehicleTypeBike:
		return r.Bike
	case VehicleTypeVan:
		return r.Van
	case VehicleTypeThreeWheeler:
		return r.ThreeWheeler
	default:
		return r.Car
	}
}

// Fee computes the parking fee for a vehicle of t type which was parked
// between entry and exit times. Each started hour is charged and at
// least one hour is always charged.
func (r Rates) Fee(t VehicleType, entry, exit time.Time) int64 {
	d := exit.Sub(entry)
	hours := int64(d / time.Hour)
	if d%time.Hour != 0 || hours == 0 {
		hours++
	}
	return hours * r.Of(t)
}

// Slot is a numbered physical parking slot of an area.
// The OccupantVehicleID and OccupiedAt fields are present if and only
// if the slot IsOccupied. The VehicleType tag is only meaningful for
// unoccupied slots which are checked for compatibility at allocation.
type Slot struct {
	SlotNumber        int         `json:"slot_number"`
	IsOccupied        bool        `json:"is_occupied"`
	OccupantVehicleID *uuid.UUID  `json:"occupant_vehicle_id,omitempty"`
	OccupiedAt        *time.Time  `json:"occupied_at,omitempty"`
	VehicleType       VehicleType `json:"vehicle_type"`
}

// Occupy binds the vid vehicle to the s slot at the given time.
func (s *Slot) Occupy(vid uuid.UUID, at time.Time) {
	s.IsOccupied = true
	s.OccupantVehicleID = &vid
	s.OccupiedAt = &at
}

// Vacate clears the occupancy fields of s and reports if any of them
// was changed.
func (s *Slot) Vacate() bool {
	changed := s.IsOccupied || s.OccupantVehicleID != nil ||
		s.OccupiedAt != nil
	s.IsOccupied = false
	s.OccupantVehicleID = nil
	s.OccupiedAt = nil
	return changed
}

// OccupiedBy reports if s is occupied by the vid vehicle.
func (s *Slot) OccupiedBy(vid uuid.UUID) bool {
	return s.IsOccupied && s.OccupantVehicleID != nil &&
		*s.OccupantVehicleID == vid
}

// ParkingArea models a parking area, its numbered slots, and the
// cached available/occupied counters which must satisfy
// AvailableSlots + OccupiedSlots == TotalSlots at rest.
// The Slots may be empty before the area layout is initialized.
type ParkingArea struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	TotalSlots     int       `json:"total_slots"`
	Capacity       Capacity  `json:"capacity"`
	Rates          Rates     `json:"hourly_rates"`
	AvailableSlots int       `json:"available_slots"`
	OccupiedSlots  int       `json:"occupied_slots"`
	Active         bool      `json:"active"`
	Slots          []Slot    `json:"slots,omitempty"`
}

// Slot returns the slot which is numbered as n, or nil if there is no
// such slot in the a area.
func (a *ParkingArea) Slot(n int) *Slot {
	for i := range a.Slots {
		if a.Slots[i].SlotNumber == n {
			return &a.Slots[i]
		}
	}
	return nil
}

// SlotOccupiedBy returns the slot which its occupant is the vid vehicle
// or nil if no such slot exists.
func (a *ParkingArea) SlotOccupiedBy(vid uuid.UUID) *Slot {
	for i := range a.Slots {
		if a.Slots[i].OccupiedBy(vid) {
			return &a.Slots[i]
		}
	}
	return nil
}

// SortSlots sorts the slots of a ascending by their slot numbers.
func (a *ParkingArea) SortSlots() {
	sort.SliceStable(a.Slots, func(i, j int) bool {
		return a.Slots[i].SlotNumber < a.Slots[j].SlotNumber
	})
}

// MaxSlotNumber returns the largest slot number of a, or zero if it
// has no slots.
func (a *ParkingArea) MaxSlotNumber() int {
	m := 0
	for _, s := range a.Slots {
		if s.SlotNumber > m {
			m = s.SlotNumber
		}
	}
	return m
}

// CountOccupied returns the number of slots which are flagged occupied.
func (a *ParkingArea) CountOccupied() int {
	n := 0
	for _, s := range a.Slots {
		if s.IsOccupied {
			n++
		}
	}
	return n
}

// SetCounters stores occupied as the OccupiedSlots counter and derives
// the AvailableSlots as TotalSlots - occupied, clamped to the
// [0, TotalSlots] range. It reports if any counter was changed.
func (a *ParkingArea) SetCounters(occupied int) bool {
	occupied = clamp(occupied, 0, a.TotalSlots)
	available := clamp(a.TotalSlots-occupied, 0, a.TotalSlots)
	changed := a.OccupiedSlots != occupied ||
		a.AvailableSlots != available
	a.OccupiedSlots = occupied
	a.AvailableSlots = available
	return changed
}

// Summary returns the aggregate counters of a, including the count of
// free slots per vehicle type label (untyped free slots are reported
// with an empty label).
func (a *ParkingArea) Summary() AreaSummary {
	free := make(map[string]int)
	for _, s := range a.Slots {
		if !s.IsOccupied {
			free[s.VehicleType.String()]++
		}
	}
	return AreaSummary{
		ID:             a.ID,
		Name:           a.Name,
		TotalSlots:     a.TotalSlots,
		AvailableSlots: a.AvailableSlots,
		OccupiedSlots:  a.OccupiedSlots,
		Capacity:       a.Capacity,
		Active:         a.Active,
		FreeByType:     free,
	}
}

// AreaSummary is the display view of a parking area, lacking its slots.
type AreaSummary struct {
	ID             uuid.UUID      `json:"id"`
	Name           string         `json:"name"`
	TotalSlots     int            `json:"total_slots"`
	AvailableSlots int            `json:"available_slots"`
	OccupiedSlots  int            `json:"occupied_slots"`
	Capacity       Capacity       `json:"capacity"`
	Active         bool           `json:"active"`
	FreeByType     map[string]int `json:"free_by_type"`
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	switch {
	case v < lo:
		return lo
	case v > hi:
		return hi
	}
	return v
}
