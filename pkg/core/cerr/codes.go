// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package cerr

// Code is a stable and machine-readable identifier of an error cause.
type Code string

// Input validation codes.
const (
	MissingFields      Code = "MISSING_FIELDS"
	InvalidEmail       Code = "INVALID_EMAIL"
	InvalidPhone       Code = "INVALID_PHONE"
	InvalidPlate       Code = "INVALID_PLATE"
	InvalidVehicleType Code = "INVALID_VEHICLE_TYPE"
	InvalidSlotNumber  Code = "INVALID_SLOT_NUMBER"
	InvalidRequest     Code = "INVALID_REQUEST"
)

// State conflict codes.
const (
	VehicleAlreadyParked Code = "VEHICLE_ALREADY_PARKED"
	SlotOccupied         Code = "SLOT_OCCUPIED"
	SlotTypeMismatch     Code = "SLOT_TYPE_MISMATCH"
	NoAvailableSlots     Code = "NO_AVAILABLE_SLOTS"
	VehicleAlreadyExited Code = "VEHICLE_ALREADY_EXITED"
	VehicleAlreadyPaid   Code = "VEHICLE_ALREADY_PAID"
)

// Not-found codes.
const (
	ParkingAreaNotFound Code = "PARKING_AREA_NOT_FOUND"
	VehicleNotFound     Code = "VEHICLE_NOT_FOUND"
)

// Capacity invariant violation codes.
const (
	InvalidTotalSlots   Code = "INVALID_TOTAL_SLOTS"
	InvalidSlotCapacity Code = "INVALID_SLOT_CAPACITY"
)

var messages = map[Code]string{
	MissingFields:        "required fields are missing",
	InvalidEmail:         "email format is invalid",
	InvalidPhone:         "phone format is invalid",
	InvalidPlate:         "plate format is invalid",
	InvalidVehicleType:   "vehicle type is unknown",
	InvalidSlotNumber:    "slot number is invalid",
	InvalidRequest:       "request is invalid",
	VehicleAlreadyParked: "vehicle is already parked",
	SlotOccupied:         "slot is already occupied",
	SlotTypeMismatch:     "slot type does not match the vehicle type",
	NoAvailableSlots:     "no available slots",
	VehicleAlreadyExited: "vehicle has already exited",
	VehicleAlreadyPaid:   "vehicle has already paid",
	ParkingAreaNotFound:  "parking area not found",
	VehicleNotFound:      "vehicle not found",
	InvalidTotalSlots:    "total slots is invalid",
	InvalidSlotCapacity:  "per-type slot capacity is invalid",
}

// Message returns the default human-readable message of c.
func (c Code) Message() string {
	if m, ok := messages[c]; ok {
		return m
	}
	return string(c)
}
