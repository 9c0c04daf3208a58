// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package memrepo

import (
	"context"
	"slices"

	"github.com/google/uuid"
	"github.com/momeni/slotkeeper/pkg/core/cerr"
	"github.com/momeni/slotkeeper/pkg/core/model"
	"github.com/momeni/slotkeeper/pkg/core/repo"
)

// Vehicles implements the repo.Vehicles interface for a Store.
type Vehicles struct{}

type vehiclesConn struct {
	s *Store
}

type vehiclesTx struct {
	vehiclesConn
	tx *Tx
}

func (Vehicles) Conn(c repo.Conn) repo.VehiclesConnQueryer {
	return vehiclesConn{s: c.(*Conn).s}
}

func (Vehicles) Tx(tx repo.Tx) repo.VehiclesTxQueryer {
	tt := tx.(*Tx)
	return vehiclesTx{vehiclesConn: vehiclesConn{s: tt.s}, tx: tt}
}

func (q vehiclesConn) Find(_ context.Context, id uuid.UUID) (*model.Vehicle, error) {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()
	v, ok := q.s.data.vehicles[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	v = cloneVehicle(v)
	return &v, nil
}

func (q vehiclesTx) FindForUpdate(ctx context.Context, id uuid.UUID) (*model.Vehicle, error) {
	if q.tx.done {
		return nil, errTxDone
	}
	return q.Find(ctx, id)
}

func (q vehiclesTx) FindActiveByPlate(_ context.Context, plate string) (*model.Vehicle, error) {
	unlock, err := q.tx.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()
	for _, v := range q.s.data.vehicles {
		if v.Plate == plate && v.Status.Active() {
			v = cloneVehicle(v)
			return &v, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (q vehiclesTx) ListActiveByArea(_ context.Context, areaID uuid.UUID) ([]model.Vehicle, error) {
	unlock, err := q.tx.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()
	var vs []model.Vehicle
	for _, v := range q.s.data.vehicles {
		if v.ParkingAreaID == areaID && v.Status.Active() {
			vs = append(vs, cloneVehicle(v))
		}
	}
	slices.SortFunc(vs, func(a, b model.Vehicle) int {
		return a.EntryTime.Compare(b.EntryTime)
	})
	return vs, nil
}

// Create inserts v. Like the unique index of the PostgreSQL schema,
// it rejects a second active vehicle with the same plate.
func (q vehiclesTx) Create(_ context.Context, v *model.Vehicle) error {
	unlock, err := q.tx.lock()
	if err != nil {
		return err
	}
	defer unlock()
	if err := q.s.fault(OpCreateVehicle); err != nil {
		return err
	}
	for _, o := range q.s.data.vehicles {
		if o.Plate == v.Plate && o.Status.Active() {
			return cerr.Conflict(cerr.VehicleAlreadyParked, nil)
		}
	}
	q.s.data.vehicles[v.ID] = cloneVehicle(*v)
	return nil
}

func (q vehiclesTx) Update(_ context.Context, v *model.Vehicle) error {
	unlock, err := q.tx.lock()
	if err != nil {
		return err
	}
	defer unlock()
	if err := q.s.fault(OpUpdateVehicle); err != nil {
		return err
	}
	if _, ok := q.s.data.vehicles[v.ID]; !ok {
		return repo.ErrNotFound
	}
	q.s.data.vehicles[v.ID] = cloneVehicle(*v)
	return nil
}
