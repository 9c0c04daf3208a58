// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package cerr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/momeni/slotkeeper/pkg/core/cerr"
	"github.com/stretchr/testify/assert"
)

func TestCodeOf(t *testing.T) {
	err := fmt.Errorf("allocating: %w",
		cerr.Conflict(cerr.SlotOccupied, nil),
	)
	assert.Equal(t, cerr.SlotOccupied, cerr.CodeOf(err))
	assert.Equal(t, cerr.Code(""), cerr.CodeOf(errors.New("plain")))
	assert.Equal(t, cerr.Code(""), cerr.CodeOf(nil))
}

func TestErrorIsComparesCodes(t *testing.T) {
	err := fmt.Errorf("x: %w", cerr.NotFound(cerr.VehicleNotFound, nil))
	assert.ErrorIs(t, err, cerr.NotFound(cerr.VehicleNotFound, nil))
	assert.NotErrorIs(t, err, cerr.NotFound(cerr.ParkingAreaNotFound, nil))
}

func TestErrorMessage(t *testing.T) {
	inner := errors.New("slot 9 is out of range")
	e := cerr.BadRequest(cerr.InvalidSlotNumber, inner)
	assert.Equal(t, http.StatusBadRequest, e.HTTPStatusCode)
	assert.ErrorIs(t, e, inner)
	assert.Equal(t,
		"[400 INVALID_SLOT_NUMBER] slot 9 is out of range", e.Error(),
	)
	e = cerr.Conflict(cerr.NoAvailableSlots, nil)
	assert.Equal(t, "[409 NO_AVAILABLE_SLOTS] no available slots", e.Error())
	assert.Equal(t, "UNKNOWN", cerr.Code("UNKNOWN").Message())
}
