// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package vehiclesrp implements the repo.Vehicles interface using the
// vehicles table.
package vehiclesrp

import (
	"context"

	"github.com/google/uuid"
	"github.com/momeni/slotkeeper/pkg/adapter/db/postgres"
	"github.com/momeni/slotkeeper/pkg/core/model"
	"github.com/momeni/slotkeeper/pkg/core/repo"
)

type Repo struct {
}

func New() *Repo {
	return &Repo{}
}

type connQueryer struct {
	*postgres.Conn
}

func (vehicles *Repo) Conn(c repo.Conn) repo.VehiclesConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) Find(ctx context.Context, id uuid.UUID) (*model.Vehicle, error) {
	return Find(ctx, cq.Conn, id, false)
}

type txQueryer struct {
	*postgres.Tx
}

func (vehicles *Repo) Tx(tx repo.Tx) repo.VehiclesTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) Find(ctx context.Context, id uuid.UUID) (*model.Vehicle, error) {
	return Find(ctx, tq.Tx, id, false)
}

func (tq txQueryer) FindForUpdate(ctx context.Context, id uuid.UUID) (*model.Vehicle, error) {
	return Find(ctx, tq.Tx, id, true)
}

func (tq txQueryer) FindActiveByPlate(ctx context.Context, plate string) (*model.Vehicle, error) {
	return FindActiveByPlate(ctx, tq.Tx, plate)
}

func (tq txQueryer) ListActiveByArea(ctx context.Context, areaID uuid.UUID) ([]model.Vehicle, error) {
	return ListActiveByArea(ctx, tq.Tx, areaID)
}

func (tq txQueryer) Create(ctx context.Context, v *model.Vehicle) error {
	return Create(ctx, tq.Tx, v)
}

func (tq txQueryer) Update(ctx context.Context, v *model.Vehicle) error {
	return Update(ctx, tq.Tx, v)
}
