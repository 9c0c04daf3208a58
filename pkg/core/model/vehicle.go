// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// VehicleStatus is the lifecycle state of a registered vehicle.
type VehicleStatus string

// Valid values for the VehicleStatus. A vehicle occupies its slot while
// it is Parked or Paid.
const (
	VehicleParked VehicleStatus = "Parked"
	VehiclePaid   VehicleStatus = "Paid"
	VehicleExited VehicleStatus = "Exited"
)

// Active reports if a vehicle with the s status occupies a slot.
func (s VehicleStatus) Active() bool {
	return s == VehicleParked || s == VehiclePaid
}

// ActiveVehicleStatuses lists the statuses which occupy a slot.
var ActiveVehicleStatuses = []VehicleStatus{VehicleParked, VehiclePaid}

// PaymentStatus reports if the parking fee of a vehicle is settled.
type PaymentStatus string

// Valid values for the PaymentStatus.
const (
	PaymentUnpaid PaymentStatus = "Unpaid"
	PaymentPaid   PaymentStatus = "Paid"
)

// Vehicle is a vehicle record which is registered upon entering a
// parking area. It references (but does not own) its area and slot.
// The Owner and Area fields are only populated for display purposes.
type Vehicle struct {
	ID            uuid.UUID     `json:"id"`
	Plate         string        `json:"plate"`
	VehicleType   VehicleType   `json:"vehicle_type"`
	OwnerID       uuid.UUID     `json:"owner_id"`
	ParkingAreaID uuid.UUID     `json:"parking_area_id"`
	SlotNumber    *int          `json:"slot_number,omitempty"`
	Status        VehicleStatus `json:"status"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	EntryTime     time.Time     `json:"entry_time"`
	ExitTime      *time.Time    `json:"exit_time,omitempty"`
	Fee           int64         `json:"fee"`

	Owner *User        `json:"owner,omitempty"`
	Area  *AreaSummary `json:"parking_area,omitempty"`
}

// NormalizePlate canonicalizes a licence plate by dropping its
// separators (spaces, hyphens, and dots) and converting it to upper
// case, so plates may be compared for equality.
func NormalizePlate(p string) string {
	return strings.ToUpper(strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '-', '.':
			return -1
		}
		return r
	}, p))
}

// User is the identity of a vehicle owner, found or created by email.
type User struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Phone string    `json:"phone,omitempty"`
}

// ChangeKind names the kind of a committed mutation of a parking area,
// as published to the area-change event subscribers.
type ChangeKind string

// Valid values for the ChangeKind.
const (
	ChangeAreaCreated      ChangeKind = "area_created"
	ChangeSlotsInitialized ChangeKind = "slots_initialized"
	ChangeSlotsReconciled  ChangeKind = "slots_reconciled"
	ChangeSlotAssigned     ChangeKind = "slot_assigned"
	ChangeSlotReleased     ChangeKind = "slot_released"
	ChangeVehiclePaid      ChangeKind = "vehicle_paid"
	ChangeCapacityUpdated  ChangeKind = "capacity_updated"
)
