// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package memrepo

import (
	"context"

	"github.com/google/uuid"
	"github.com/momeni/slotkeeper/pkg/core/model"
	"github.com/momeni/slotkeeper/pkg/core/repo"
)

// Areas implements the repo.Areas interface for a Store.
type Areas struct{}

type areasConn struct {
	s *Store
}

type areasTx struct {
	areasConn
	tx *Tx
}

func (Areas) Conn(c repo.Conn) repo.AreasConnQueryer {
	return areasConn{s: c.(*Conn).s}
}

func (Areas) Tx(tx repo.Tx) repo.AreasTxQueryer {
	tt := tx.(*Tx)
	return areasTx{areasConn: areasConn{s: tt.s}, tx: tt}
}

func (q areasConn) Find(_ context.Context, id uuid.UUID) (*model.ParkingArea, error) {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()
	a, ok := q.s.data.areas[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	a = cloneArea(a)
	return &a, nil
}

func (q areasTx) Find(ctx context.Context, id uuid.UUID) (*model.ParkingArea, error) {
	if q.tx.done {
		return nil, errTxDone
	}
	return q.areasConn.Find(ctx, id)
}

// FindForUpdate needs no row lock since transactions are serialized.
func (q areasTx) FindForUpdate(ctx context.Context, id uuid.UUID) (*model.ParkingArea, error) {
	return q.Find(ctx, id)
}

func (q areasTx) Create(_ context.Context, a *model.ParkingArea) error {
	unlock, err := q.tx.lock()
	if err != nil {
		return err
	}
	defer unlock()
	q.s.data.areas[a.ID] = cloneArea(*a)
	return nil
}

func (q areasTx) Save(_ context.Context, a *model.ParkingArea) error {
	unlock, err := q.tx.lock()
	if err != nil {
		return err
	}
	defer unlock()
	if err := q.s.fault(OpSaveArea); err != nil {
		return err
	}
	if _, ok := q.s.data.areas[a.ID]; !ok {
		return repo.ErrNotFound
	}
	q.s.data.areas[a.ID] = cloneArea(*a)
	return nil
}
