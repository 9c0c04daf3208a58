// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import "context"

// Schema interface presents expectations from a repository which
// manages the database tables. Tables are created in a transaction,
// so a failed creation leaves no partial schema behind.
type Schema interface {
	// Tx takes a Tx interface instance, unwraps it as required,
	// and returns a SchemaTxQueryer interface which can create the
	// tables of the latest schema version.
	Tx(Tx) SchemaTxQueryer
}

// SchemaTxQueryer interface lists the schema management operations.
type SchemaTxQueryer interface {
	// CreateTablesIfMissing creates the parking areas, parking slots,
	// users, and vehicles tables (plus their indices) unless they
	// exist already. Calling it on an initialized database causes no
	// change.
	CreateTablesIfMissing(ctx context.Context) error
}
