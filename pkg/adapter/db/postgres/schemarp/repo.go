// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package schemarp implements the repo.Schema interface, creating the
// PostgreSQL tables of the skweb server.
package schemarp

import (
	"context"
	"fmt"

	"github.com/momeni/slotkeeper/pkg/adapter/db/postgres"
	"github.com/momeni/slotkeeper/pkg/core/model"
	"github.com/momeni/slotkeeper/pkg/core/repo"
)

// Version is the semantic version of the schema which is created by
// the DDL statements. Configuration files must declare the same
// database version in order to be loaded.
var Version = model.SemVer{1, 0, 0}

// DDL contains the statements which create the latest schema.
// Each parking area owns its slot rows. The partial unique index on
// the vehicles plate rejects a second active vehicle with the same
// plate even if two registrations target different areas.
const DDL = `
CREATE TABLE IF NOT EXISTS parking_areas (
    id UUID PRIMARY KEY,
    name TEXT NOT NULL,
    total_slots INTEGER NOT NULL CHECK (total_slots > 0),
    car_slots INTEGER NOT NULL DEFAULT 0 CHECK (car_slots >= 0),
    bike_slots INTEGER NOT NULL DEFAULT 0 CHECK (bike_slots >= 0),
    van_slots INTEGER NOT NULL DEFAULT 0 CHECK (van_slots >= 0),
    three_wheeler_slots INTEGER NOT NULL DEFAULT 0
        CHECK (three_wheeler_slots >= 0),
    car_rate BIGINT NOT NULL DEFAULT 0,
    bike_rate BIGINT NOT NULL DEFAULT 0,
    van_rate BIGINT NOT NULL DEFAULT 0,
    three_wheeler_rate BIGINT NOT NULL DEFAULT 0,
    available_slots INTEGER NOT NULL,
    occupied_slots INTEGER NOT NULL,
    active BOOLEAN NOT NULL DEFAULT TRUE
);

CREATE TABLE IF NOT EXISTS parking_slots (
    area_id UUID NOT NULL REFERENCES parking_areas (id) ON DELETE CASCADE,
    slot_number INTEGER NOT NULL CHECK (slot_number > 0),
    is_occupied BOOLEAN NOT NULL DEFAULT FALSE,
    occupant_vehicle_id UUID,
    occupied_at TIMESTAMPTZ,
    vehicle_type TEXT NOT NULL DEFAULT '',
    PRIMARY KEY (area_id, slot_number),
    CHECK (is_occupied OR (
        occupant_vehicle_id IS NULL AND occupied_at IS NULL
    ))
);

CREATE TABLE IF NOT EXISTS users (
    id UUID PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE,
    phone TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS vehicles (
    id UUID PRIMARY KEY,
    plate TEXT NOT NULL,
    vehicle_type TEXT NOT NULL,
    owner_id UUID NOT NULL REFERENCES users (id),
    parking_area_id UUID NOT NULL REFERENCES parking_areas (id),
    slot_number INTEGER,
    status TEXT NOT NULL CHECK (status IN ('Parked', 'Paid', 'Exited')),
    payment_status TEXT NOT NULL CHECK (payment_status IN ('Unpaid', 'Paid')),
    entry_time TIMESTAMPTZ NOT NULL,
    exit_time TIMESTAMPTZ,
    fee BIGINT NOT NULL DEFAULT 0
);

CREATE UNIQUE INDEX IF NOT EXISTS vehicles_active_plate_key
    ON vehicles (plate) WHERE status IN ('Parked', 'Paid');

CREATE INDEX IF NOT EXISTS vehicles_area_status_idx
    ON vehicles (parking_area_id, status);
`

type Repo struct {
}

func New() *Repo {
	return &Repo{}
}

type txQueryer struct {
	*postgres.Tx
}

func (sch *Repo) Tx(tx repo.Tx) repo.SchemaTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) CreateTablesIfMissing(ctx context.Context) error {
	if _, err := tq.Exec(ctx, DDL); err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}
	return nil
}
