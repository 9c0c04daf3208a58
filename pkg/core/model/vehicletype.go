// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"errors"
	"fmt"
	"strings"
)

// VehicleType specifies the canonical vehicle type enum. It is used
// both for vehicles and for the type tag of parking slots. The zero
// value represents an untyped slot which accepts any vehicle.
// Although this enum is numeric, it is (de)serialized as a string.
type VehicleType int

// Valid values for the VehicleType enum.
const (
	VehicleTypeUnset VehicleType = iota // zero value, untyped slot

	VehicleTypeCar
	VehicleTypeBike
	VehicleTypeVan
	VehicleTypeThreeWheeler
)

// LayoutOrder lists the vehicle types in the order which their slots
// are laid out when a per-type capacity is declared for an area.
var LayoutOrder = [...]VehicleType{
	VehicleTypeCar,
	VehicleTypeBike,
	VehicleTypeVan,
	VehicleTypeThreeWheeler,
}

// ErrUnknownVehicleType indicates that a given string may not be
// canonicalized as a known vehicle type (or one of its synonyms).
var ErrUnknownVehicleType = errors.New("unknown vehicle type")

// VehicleTypeError indicates an out of range VehicleType value.
type VehicleTypeError int

// Error implements the error interface.
func (e VehicleTypeError) Error() string {
	return fmt.Sprintf("invalid vehicle type: %d", e)
}

// vehicleTypeSynonyms maps normalized free-text keys (lower-cased, with
// spaces, hyphens, and underscores removed) to their canonical types.
var vehicleTypeSynonyms = map[string]VehicleType{
	"car":       VehicleTypeCar,
	"cars":      VehicleTypeCar,
	"sedan":     VehicleTypeCar,
	"suv":       VehicleTypeCar,
	"hatchback": VehicleTypeCar,
	"jeep":      VehicleTypeCar,
	"coupe":     VehicleTypeCar,
	"4wheeler":  VehicleTypeCar,
	"fourwheel": VehicleTypeCar,

	"bike":       VehicleTypeBike,
	"bikes":      VehicleTypeBike,
	"motorbike":  VehicleTypeBike,
	"motorcycle": VehicleTypeBike,
	"scooter":    VehicleTypeBike,
	"scooty":     VehicleTypeBike,
	"moped":      VehicleTypeBike,
	"bicycle":    VehicleTypeBike,
	"cycle":      VehicleTypeBike,
	"2wheeler":   VehicleTypeBike,
	"twowheeler": VehicleTypeBike,

	"van":     VehicleTypeVan,
	"vans":    VehicleTypeVan,
	"minivan": VehicleTypeVan,
	"truck":   VehicleTypeVan,
	"lorry":   VehicleTypeVan,
	"pickup":  VehicleTypeVan,
	"bus":     VehicleTypeVan,
	"minibus": VehicleTypeVan,

	"threewheeler":  VehicleTypeThreeWheeler,
	"3wheeler":      VehicleTypeThreeWheeler,
	"auto":          VehicleTypeThreeWheeler,
	"autorickshaw":  VehicleTypeThreeWheeler,
	"rickshaw":      VehicleTypeThreeWheeler,
	"tuktuk":        VehicleTypeThreeWheeler,
	"trike":         VehicleTypeThreeWheeler,
	"threewheelers": VehicleTypeThreeWheeler,
}

// ParseVehicleType canonicalizes the given free-text vehicle type.
// The comparison is case-insensitive and ignores spaces, hyphens, and
// underscores, so "Three-wheeler", "three wheeler", and "AUTO" are all
// accepted. An empty (or blank) string yields VehicleTypeUnset and no
// error. Unknown strings yield VehicleTypeUnset and
// ErrUnknownVehicleType.
//
// All vehicle type comparisons must pass through this function (or
// compare already parsed VehicleType values), never raw strings.
func ParseVehicleType(s string) (VehicleType, error) {
	key := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_', '\t':
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(s)))
	if key == "" {
		return VehicleTypeUnset, nil
	}
	if t, ok := vehicleTypeSynonyms[key]; ok {
		return t, nil
	}
	return VehicleTypeUnset, ErrUnknownVehicleType
}

// Validate returns nil if t is one of the known enum values (including
// the VehicleTypeUnset). Otherwise, a VehicleTypeError is returned.
func (t VehicleType) Validate() error {
	switch t {
	case VehicleTypeUnset, VehicleTypeCar, VehicleTypeBike,
		VehicleTypeVan, VehicleTypeThreeWheeler:
		return nil
	default:
		return VehicleTypeError(t)
	}
}

// Accepts reports if a slot which is tagged with t may host a vehicle
// having the v type. An untyped slot accepts every vehicle.
func (t VehicleType) Accepts(v VehicleType) bool {
	return t == VehicleTypeUnset || t == v
}

// String converts the VehicleType enum to its canonical label.
// The VehicleTypeUnset is converted to an empty string and invalid
// values cause a panic.
func (t VehicleType) String() string {
	switch t {
	case VehicleTypeUnset:
		return ""
	case VehicleTypeCar:
		return "Car"
	case VehicleTypeBike:
		return "Bike"
	case VehicleTypeVan:
		return "Van"
	case VehicleTypeThreeWheeler:
		return "Three-wheeler"
	default:
		panic(VehicleTypeError(t))
	}
}

// MarshalText implements encoding.TextMarshaler, so a VehicleType is
// serialized as its canonical label in JSON and YAML documents.
func (t VehicleType) MarshalText() ([]byte, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using the same
// canonicalization rules of ParseVehicleType.
func (t *VehicleType) UnmarshalText(text []byte) error {
	vt, err := ParseVehicleType(string(text))
	if err != nil {
		return fmt.Errorf("%q: %w", text, err)
	}
	*t = vt
	return nil
}
