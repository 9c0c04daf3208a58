// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package postgres implements the repo.Pool, repo.Conn, and repo.Tx
// interfaces using the GORM framework and the pgx PostgreSQL driver.
// The repository packages (e.g., areasrp) depend on this package in
// order to unwrap the connections and transactions as *gorm.DB.
package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes which are inspected by the repository packages.
const (
	UniqueViolation  = "23505"
	CannotConnectNow = "57P03"
)

// HasSQLState reports if err wraps a PostgreSQL server error having
// the given SQLSTATE code.
func HasSQLState(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.SQLState() == code
}
