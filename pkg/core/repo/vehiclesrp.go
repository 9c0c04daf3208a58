// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/momeni/slotkeeper/pkg/core/model"
)

// Vehicles interface presents expectations from a repository which
// stores the registered vehicles. A vehicle is active while its
// status is Parked or Paid.
type Vehicles interface {
	Conn(Conn) VehiclesConnQueryer
	Tx(Tx) VehiclesTxQueryer
}

type VehiclesConnQueryer interface {
	// Find loads the id vehicle or returns ErrNotFound.
	Find(ctx context.Context, id uuid.UUID) (*model.Vehicle, error)
}

type VehiclesTxQueryer interface {
	VehiclesConnQueryer

	// FindForUpdate is like Find, but also locks the vehicle row until
	// the end of the ongoing transaction.
	FindForUpdate(ctx context.Context, id uuid.UUID) (*model.Vehicle, error)

	// FindActiveByPlate finds an active vehicle having the given
	// normalized plate in any parking area. If there is no such
	// vehicle, ErrNotFound is returned.
	FindActiveByPlate(ctx context.Context, plate string) (*model.Vehicle, error)

	// ListActiveByArea lists the active vehicles of the areaID area.
	ListActiveByArea(ctx context.Context, areaID uuid.UUID) ([]model.Vehicle, error)

	Create(ctx context.Context, v *model.Vehicle) error

	// Update stores the mutable fields of v, namely its slot number,
	// statuses, exit time, and fee.
	Update(ctx context.Context, v *model.Vehicle) error
}
