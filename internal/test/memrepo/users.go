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

// Users implements the repo.Users interface for a Store.
type Users struct{}

type usersConn struct {
	s *Store
}

type usersTx struct {
	usersConn
	tx *Tx
}

func (Users) Conn(c repo.Conn) repo.UsersConnQueryer {
	return usersConn{s: c.(*Conn).s}
}

func (Users) Tx(tx repo.Tx) repo.UsersTxQueryer {
	tt := tx.(*Tx)
	return usersTx{usersConn: usersConn{s: tt.s}, tx: tt}
}

func (q usersConn) Find(_ context.Context, id uuid.UUID) (*model.User, error) {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()
	u, ok := q.s.data.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &u, nil
}

func (q usersTx) FindOrCreate(_ context.Context, u model.User) (*model.User, error) {
	unlock, err := q.tx.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()
	for _, o := range q.s.data.users {
		if o.Email == u.Email {
			return &o, nil
		}
	}
	u.ID = uuid.New()
	q.s.data.users[u.ID] = u
	return &u, nil
}
