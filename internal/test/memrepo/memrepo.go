// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package memrepo provides an in-memory implementation of the repo
// interfaces for the use cases tests. Transactions are serialized by
// one global lock and roll back by restoring a snapshot of the whole
// store. Reads on a connection take no transaction lock, so they may
// observe uncommitted changes of an ongoing transaction.
package memrepo

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/momeni/slotkeeper/pkg/core/model"
	"github.com/momeni/slotkeeper/pkg/core/repo"
)

// Op names an operation which may be forced to fail by FailOn.
type Op string

// Operations which may be forced to fail.
const (
	OpSaveArea      Op = "areas.save"
	OpCreateVehicle Op = "vehicles.create"
	OpUpdateVehicle Op = "vehicles.update"
)

// Store is an in-memory database which implements the repo.Pool.
type Store struct {
	txMu sync.Mutex
	mu   sync.Mutex
	data state

	faults map[Op]error
}

type state struct {
	areas    map[uuid.UUID]model.ParkingArea
	vehicles map[uuid.UUID]model.Vehicle
	users    map[uuid.UUID]model.User
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		data: state{
			areas:    make(map[uuid.UUID]model.ParkingArea),
			vehicles: make(map[uuid.UUID]model.Vehicle),
			users:    make(map[uuid.UUID]model.User),
		},
		faults: make(map[Op]error),
	}
}

func (st state) clone() state {
	c := state{
		areas:    make(map[uuid.UUID]model.ParkingArea, len(st.areas)),
		vehicles: make(map[uuid.UUID]model.Vehicle, len(st.vehicles)),
		users:    make(map[uuid.UUID]model.User, len(st.users)),
	}
	for id, a := range st.areas {
		c.areas[id] = cloneArea(a)
	}
	for id, v := range st.vehicles {
		c.vehicles[id] = cloneVehicle(v)
	}
	for id, u := range st.users {
		c.users[id] = u
	}
	return c
}

// Conn implements the repo.Pool interface.
func (s *Store) Conn(ctx context.Context, handler repo.ConnHandler) error {
	return handler(ctx, &Conn{s: s})
}

// FailOn makes the next call of op to fail with err.
func (s *Store) FailOn(op Op, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults[op] = err
}

func (s *Store) fault(op Op) error {
	err, ok := s.faults[op]
	if ok {
		delete(s.faults, op)
	}
	return err
}

// PutArea stores a copy of a, replacing any area having the same ID.
// It is used for seeding the tests, including inconsistent states.
func (s *Store) PutArea(a model.ParkingArea) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.areas[a.ID] = cloneArea(a)
}

// PutVehicle stores a copy of v, replacing any vehicle with the same ID.
func (s *Store) PutVehicle(v model.Vehicle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.vehicles[v.ID] = cloneVehicle(v)
}

// Area returns a copy of the stored id area.
func (s *Store) Area(id uuid.UUID) (model.ParkingArea, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.data.areas[id]
	return cloneArea(a), ok
}

// Vehicle returns a copy of the stored id vehicle.
func (s *Store) Vehicle(id uuid.UUID) (model.Vehicle, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data.vehicles[id]
	return cloneVehicle(v), ok
}

// CountVehicles returns the number of stored vehicles.
func (s *Store) CountVehicles() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data.vehicles)
}

// Conn is a connection to a Store.
type Conn struct {
	s *Store
}

// Tx runs handler in a transaction. Only one transaction may run at a
// time. If handler fails or panics, all of its changes are discarded.
func (c *Conn) Tx(ctx context.Context, handler repo.TxHandler) (err error) {
	c.s.txMu.Lock()
	defer c.s.txMu.Unlock()

	c.s.mu.Lock()
	snapshot := c.s.data.clone()
	c.s.mu.Unlock()

	tx := &Tx{s: c.s}
	defer func() {
		tx.done = true
		r := recover()
		if r == nil && err == nil {
			return
		}
		c.s.mu.Lock()
		c.s.data = snapshot
		c.s.mu.Unlock()
		if r != nil {
			err = fmt.Errorf("panicked: %v", r)
			return
		}
		err = fmt.Errorf("handler: %w", err)
	}()
	return handler(ctx, tx)
}

func (c *Conn) Exec(context.Context, string, ...any) (int64, error) {
	return 0, errors.ErrUnsupported
}

func (c *Conn) IsConn() {
}

// Tx is an ongoing transaction of a Store.
type Tx struct {
	s    *Store
	done bool
}

func (tx *Tx) Exec(context.Context, string, ...any) (int64, error) {
	return 0, errors.ErrUnsupported
}

func (tx *Tx) IsTx() {
}

// errTxDone is returned when a finished transaction is used again.
var errTxDone = errors.New("transaction is already finished")

// lock locks the store data for one operation of tx.
func (tx *Tx) lock() (unlock func(), err error) {
	if tx.done {
		return nil, errTxDone
	}
	tx.s.mu.Lock()
	return tx.s.mu.Unlock, nil
}

func cloneArea(a model.ParkingArea) model.ParkingArea {
	if a.Slots != nil {
		slots := make([]model.Slot, len(a.Slots))
		for i, s := range a.Slots {
			slots[i] = s
			if s.OccupantVehicleID != nil {
				id := *s.OccupantVehicleID
				slots[i].OccupantVehicleID = &id
			}
			if s.OccupiedAt != nil {
				at := *s.OccupiedAt
				slots[i].OccupiedAt = &at
			}
		}
		a.Slots = slots
	}
	return a
}

func cloneVehicle(v model.Vehicle) model.Vehicle {
	if v.SlotNumber != nil {
		n := *v.SlotNumber
		v.SlotNumber = &n
	}
	if v.ExitTime != nil {
		t := *v.ExitTime
		v.ExitTime = &t
	}
	v.Owner = nil
	v.Area = nil
	return v
}
