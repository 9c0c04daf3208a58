// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import (
	"context"
	"errors"
)

// Queryer runs raw SQL statements. The schema creation uses it while
// the use cases go through the typed repository queryers.
type Queryer interface {
	Exec(ctx context.Context, sql string, args ...any) (count int64, err error)
}

// ErrNotFound is returned by repositories when a looked up entity does
// not exist. Use cases translate it into their domain-specific errors.
var ErrNotFound = errors.New("not found")
