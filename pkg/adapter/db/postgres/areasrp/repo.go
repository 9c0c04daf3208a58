// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package areasrp implements the repo.Areas interface, storing the
// parking areas in the parking_areas table and their slots in the
// parking_slots table.
package areasrp

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

func (areas *Repo) Conn(c repo.Conn) repo.AreasConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) Find(ctx context.Context, id uuid.UUID) (*model.ParkingArea, error) {
	return Find(ctx, cq.Conn, id, false)
}

type txQueryer struct {
	*postgres.Tx
}

func (areas *Repo) Tx(tx repo.Tx) repo.AreasTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) Find(ctx context.Context, id uuid.UUID) (*model.ParkingArea, error) {
	return Find(ctx, tq.Tx, id, false)
}

func (tq txQueryer) FindForUpdate(ctx context.Context, id uuid.UUID) (*model.ParkingArea, error) {
	return Find(ctx, tq.Tx, id, true)
}

func (tq txQueryer) Create(ctx context.Context, a *model.ParkingArea) error {
	return Create(ctx, tq.Tx, a)
}

func (tq txQueryer) Save(ctx context.Context, a *model.ParkingArea) error {
	return Save(ctx, tq.Tx, a)
}
