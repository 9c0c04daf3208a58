// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package dbcontainer is an internal helper for the test packages.
// This packages facilitates creation of a temporary postgres:16
// container and connecting to it, using a *postgres.Pool connection
// pool, with all of the skweb tables created.
// It may be used in all integration-level test suites which require
// a real PostgreSQL DBMS server.
package dbcontainer

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/bitcomplete/sqltestutil"
	"github.com/momeni/slotkeeper/pkg/adapter/db/postgres"
	"github.com/momeni/slotkeeper/pkg/adapter/db/postgres/schemarp"
	"github.com/momeni/slotkeeper/pkg/core/repo"
	"github.com/stretchr/testify/assert"
)

// New starts a postgres container, connects a pool to it, and creates
// the skweb tables. A docker (or podman) service must be reachable,
// e.g., DOCKER_HOST=unix://$XDG_RUNTIME_DIR/podman/podman.sock, or t is
// skipped; so it is in the -short mode. The timeout only bounds the
// start up, while ctx is also used for the shutdown. The caller must
// run the dfrs (in reverse order) even if ok is false.
func New(ctx context.Context, timeout time.Duration, t *testing.T) (
	pool *postgres.Pool,
	dfrs []func(),
	ok bool,
) {
	if testing.Short() {
		t.Skip("skipping the database integration test in short mode")
	}
	ctx2, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	dbmsVer := "16"
	pg, err := sqltestutil.StartPostgresContainer(ctx2, dbmsVer)
	if err != nil {
		t.Skipf("cannot start a postgres container: %v", err)
	}
	dfrs = append(dfrs, func() {
		err := pg.Shutdown(ctx)
		assert.NoError(t, err, "failed to shutdown test database")
	})
	u := pg.ConnectionString()
	for pool == nil {
		pool, err = postgres.NewPool(ctx2, u)
		if postgres.HasSQLState(err, postgres.CannotConnectNow) {
			continue // the database system is starting up
		}
		var netErr net.Error
		if ctx2.Err() == nil && errors.As(err, &netErr) {
			continue // tolerate network errors until a timeout
		}
		ok = assert.NoError(t, err, "cannot connect to test database")
		if !ok {
			return
		}
	}
	dfrs = append(dfrs, func() {
		err := pool.Close()
		assert.NoError(t, err, "failed to close the connections pool")
	})
	err = pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			return schemarp.New().Tx(tx).CreateTablesIfMissing(ctx)
		})
	})
	ok = assert.NoError(t, err, "cannot create the tables")
	return
}
