// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postgres

import (
	"context"

	"gorm.io/gorm"
)

// Tx is a READ-COMMITTED transaction implementing the repo.Tx. The
// area rows which are locked by FOR UPDATE (see areasrp.FindForUpdate)
// stay locked until Tx is committed or rolled back, so allocations of
// one area are serialized among all skweb replicas. A Tx must not be
// used concurrently.
type Tx struct {
	*gorm.DB
}

// Exec runs sql with its args and returns the affected rows count.
// Having args, sql must be a single statement with $1, $2, ... (or
// the GORM ? and @name) placeholders. Without args, it may contain
// several semicolon-separated statements, like the schema DDL.
func (tx *Tx) Exec(ctx context.Context, sql string, args ...any) (int64, error) {
	return execGORM(tx.GORM(ctx), sql, args)
}

func (tx *Tx) IsTx() {
}

// GORM returns the transaction session bound to ctx.
func (tx *Tx) GORM(ctx context.Context) *gorm.DB {
	return tx.DB.WithContext(ctx)
}

func execGORM(db *gorm.DB, sql string, args []any) (int64, error) {
	res := db.Exec(sql, args...)
	if err := res.Error; err != nil {
		return 0, err
	}
	return res.RowsAffected, nil
}
