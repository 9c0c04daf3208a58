// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postgres

import (
	"context"
	"fmt"

	"github.com/momeni/slotkeeper/pkg/core/repo"
	"gorm.io/gorm"
)

// Conn is an acquired connection which implements the repo.Conn.
type Conn struct {
	*gorm.DB
}

type TxHandler = repo.TxHandler

// Tx begins a transaction and passes it to f. The transaction is
// committed if f returns nil and is rolled back if f fails or panics.
// A panic of f is reported as an error instead of being propagated.
func (c *Conn) Tx(ctx context.Context, f TxHandler) (err error) {
	gtx := c.DB.WithContext(ctx).Begin()
	if err = gtx.Error; err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panicked: %v", r)
		}
		err = settle(gtx, err)
	}()
	return f(ctx, &Tx{DB: gtx})
}

// settle commits gtx if err is nil and rolls it back otherwise,
// returning the (possibly wrapped) error of the whole transaction.
func settle(gtx *gorm.DB, err error) error {
	if err == nil {
		if err = gtx.Commit().Error; err != nil {
			return fmt.Errorf("commit: %w", err)
		}
		return nil
	}
	if rbErr := gtx.Rollback().Error; rbErr != nil {
		return fmt.Errorf("handler: %w, rollback: %w", err, rbErr)
	}
	return fmt.Errorf("handler: %w", err)
}

// Exec runs sql outside of any transaction. See Tx.Exec.
func (c *Conn) Exec(ctx context.Context, sql string, args ...any) (int64, error) {
	return execGORM(c.GORM(ctx), sql, args)
}

func (c *Conn) IsConn() {
}

// GORM returns the embedded *gorm.DB configured with the ctx context.
func (c *Conn) GORM(ctx context.Context) *gorm.DB {
	return c.DB.WithContext(ctx)
}
