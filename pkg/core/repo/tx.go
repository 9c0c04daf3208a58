// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

// Tx is an ongoing database transaction which is passed to a
// TxHandler. The use cases lock an area row in a Tx before reading its
// slots, and the whole registration, release, or reconciliation of an
// area commits (or rolls back) as one unit. A Tx must not be shared
// among goroutines.
type Tx interface {
	Queryer

	// IsTx distinguishes a Tx from a Conn, which has the same Queryer
	// methods.
	IsTx()
}
