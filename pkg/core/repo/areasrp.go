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

// Areas interface presents expectations from a repository which
// stores the parking areas together with their numbered slots.
// The slots are owned by their area, so they are loaded and saved
// as a whole with it.
type Areas interface {
	Conn(Conn) AreasConnQueryer
	Tx(Tx) AreasTxQueryer
}

// AreasConnQueryer lists the read-only operations which may run on a
// connection, observing the last committed state of an area.
type AreasConnQueryer interface {
	// Find loads the id parking area and its slots, sorted by their
	// slot numbers. If the area does not exist, ErrNotFound is
	// returned.
	Find(ctx context.Context, id uuid.UUID) (*model.ParkingArea, error)
}

// AreasTxQueryer lists the operations which must run in a transaction.
// The mutating use cases call FindForUpdate first, so concurrent
// transactions (possibly from other server processes) which touch
// the same area are serialized until the commit or rollback.
type AreasTxQueryer interface {
	AreasConnQueryer

	// FindForUpdate is like Find, but also locks the area row until
	// the end of the ongoing transaction.
	FindForUpdate(ctx context.Context, id uuid.UUID) (*model.ParkingArea, error)

	// Create inserts the a area and its slots. The a.ID is generated
	// by the caller.
	Create(ctx context.Context, a *model.ParkingArea) error

	// Save overwrites the stored area row with the a fields and makes
	// its stored slot rows equal to a.Slots, inserting the new slots,
	// updating the existing ones, and deleting the missing ones.
	Save(ctx context.Context, a *model.ParkingArea) error
}
