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

// Users interface presents expectations from a repository which
// stores the vehicle owners, identified by their unique emails.
type Users interface {
	Conn(Conn) UsersConnQueryer
	Tx(Tx) UsersTxQueryer
}

type UsersConnQueryer interface {
	Find(ctx context.Context, id uuid.UUID) (*model.User, error)
}

type UsersTxQueryer interface {
	UsersConnQueryer

	// FindOrCreate returns the stored user having the u.Email, or
	// inserts u (with a new ID) if there is no such user. Stored name
	// and phone of an existing user are kept intact.
	FindOrCreate(ctx context.Context, u model.User) (*model.User, error)
}
