// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package repo defines the repository interfaces which the use cases
// layer expects from the persistence adapters. A Pool hands out
// connections, a Conn may start transactions, and each repository
// (e.g., Areas) adapts a Conn or Tx into a typed queryer which runs
// the permitted operations on it.
package repo

import "context"

// ConnHandler is called with an acquired connection. The connection is
// released when the handler returns.
type ConnHandler func(context.Context, Conn) error

// Pool represents a pool of database connections.
type Pool interface {
	Conn(ctx context.Context, handler ConnHandler) error
}
