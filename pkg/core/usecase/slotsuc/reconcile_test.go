// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package slotsuc

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/slotkeeper/pkg/core/cerr"
	"github.com/momeni/slotkeeper/pkg/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	car  = model.VehicleTypeCar
	bike = model.VehicleTypeBike
	none = model.VehicleTypeUnset
)

func slotTypes(a *model.ParkingArea) []model.VehicleType {
	types := make([]model.VehicleType, 0, len(a.Slots))
	for _, s := range a.Slots {
		types = append(types, s.VehicleType)
	}
	return types
}

func slotNumbers(slots []model.Slot) []int {
	nums := make([]int, 0, len(slots))
	for _, s := range slots {
		nums = append(nums, s.SlotNumber)
	}
	return nums
}

func TestGenerateLayout(t *testing.T) {
	a := &model.ParkingArea{
		TotalSlots:     3,
		Capacity:       model.Capacity{Car: 2, Bike: 1},
		OccupiedSlots:  2,
		AvailableSlots: 1,
	}
	require.True(t, GenerateLayout(a))
	assert.Equal(t, []int{1, 2, 3}, slotNumbers(a.Slots))
	assert.Equal(t, []model.VehicleType{car, car, bike}, slotTypes(a))
	assert.Equal(t, 3, a.AvailableSlots)
	assert.Equal(t, 0, a.OccupiedSlots)
	for _, s := range a.Slots {
		assert.False(t, s.IsOccupied)
		assert.Nil(t, s.OccupantVehicleID)
		assert.Nil(t, s.OccupiedAt)
	}

	a.Slots[0].VehicleType = bike
	assert.False(t, GenerateLayout(a), "existing layout is regenerated")
	assert.Equal(t, bike, a.Slots[0].VehicleType)
}

func TestGenerateLayoutWithoutCapacity(t *testing.T) {
	a := &model.ParkingArea{TotalSlots: 2}
	require.True(t, GenerateLayout(a))
	assert.Equal(t, []model.VehicleType{none, none}, slotTypes(a))

	assert.False(t, GenerateLayout(&model.ParkingArea{}))
}

func TestDesiredTypes(t *testing.T) {
	van := model.VehicleTypeVan
	tw := model.VehicleTypeThreeWheeler
	cases := []struct {
		name string
		c    model.Capacity
		n    int
		want []model.VehicleType
	}{
		{"fixed order", model.Capacity{Car: 1, Bike: 1, Van: 1, ThreeWheeler: 1}, 4,
			[]model.VehicleType{car, bike, van, tw}},
		{"car padding", model.Capacity{Bike: 1}, 3,
			[]model.VehicleType{bike, car, car}},
		{"truncated", model.Capacity{Car: 2, Bike: 3}, 3,
			[]model.VehicleType{car, car, bike}},
		{"undeclared", model.Capacity{}, 2,
			[]model.VehicleType{none, none}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, desiredTypes(tc.c, tc.n))
		})
	}
}

func newArea(total int, c model.Capacity) *model.ParkingArea {
	a := &model.ParkingArea{ID: uuid.New(), TotalSlots: total, Capacity: c}
	GenerateLayout(a)
	return a
}

func parked(n int, entry time.Time) model.Vehicle {
	return model.Vehicle{
		ID:         uuid.New(),
		SlotNumber: &n,
		Status:     model.VehicleParked,
		EntryTime:  entry,
	}
}

func TestReconcileOccupancyCorrectsDrift(t *testing.T) {
	t0 := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	a := newArea(3, model.Capacity{})
	a.Slots[1].Occupy(uuid.New(), t0) // no such active vehicle
	a.SetCounters(2)
	v := parked(1, t0.Add(time.Minute))

	require.True(t, ReconcileOccupancy(a, []model.Vehicle{v}))
	assert.True(t, a.Slots[0].OccupiedBy(v.ID))
	assert.Equal(t, v.EntryTime, *a.Slots[0].OccupiedAt)
	assert.False(t, a.Slots[1].IsOccupied)
	assert.Nil(t, a.Slots[1].OccupantVehicleID)
	assert.Nil(t, a.Slots[1].OccupiedAt)
	assert.Equal(t, 1, a.OccupiedSlots)
	assert.Equal(t, 2, a.AvailableSlots)

	assert.False(t, ReconcileOccupancy(a, []model.Vehicle{v}),
		"a reconciled area must be stable")
}

func TestReconcileOccupancyIgnoresInactiveAndKeepsEarliest(t *testing.T) {
	t0 := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	a := newArea(2, model.Capacity{})
	late := parked(1, t0.Add(time.Hour))
	early := parked(1, t0)
	exited := parked(2, t0)
	exited.Status = model.VehicleExited

	require.True(t, ReconcileOccupancy(a, []model.Vehicle{late, early, exited}))
	assert.True(t, a.Slots[0].OccupiedBy(early.ID))
	assert.False(t, a.Slots[1].IsOccupied)
	assert.Equal(t, 1, a.OccupiedSlots)
	assert.Equal(t, 1, a.AvailableSlots)
}

func TestRebuildOccupancy(t *testing.T) {
	t0 := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	a := newArea(2, model.Capacity{})
	v := parked(2, t0)
	a.Slots[1].Occupy(v.ID, t0.Add(time.Hour))
	a.SetCounters(1)

	require.True(t, RebuildOccupancy(a, []model.Vehicle{v}))
	assert.Equal(t, t0, *a.Slots[1].OccupiedAt)
	assert.Equal(t, 1, a.OccupiedSlots)
	assert.False(t, RebuildOccupancy(a, []model.Vehicle{v}))

	require.True(t, RebuildOccupancy(a, nil))
	assert.Equal(t, 0, a.CountOccupied())
	assert.Equal(t, 2, a.AvailableSlots)
}

func TestAlignTypesKeepsOccupiedSlots(t *testing.T) {
	a := newArea(3, model.Capacity{Car: 2, Bike: 1})
	a.Slots[0].Occupy(uuid.New(), time.Now())
	a.SetCounters(1)
	a.Capacity = model.Capacity{Bike: 3}

	require.True(t, AlignTypes(a))
	assert.Equal(t, []model.VehicleType{car, bike, bike}, slotTypes(a))
	assert.False(t, AlignTypes(a))

	a.Capacity = model.Capacity{}
	assert.False(t, AlignTypes(a), "undeclared capacity must not retype")
}

func TestResize(t *testing.T) {
	a := newArea(3, model.Capacity{})
	resize(a, 5)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, slotNumbers(a.Slots))

	a.Slots[2].Occupy(uuid.New(), time.Now())
	a.Slots[4].Occupy(uuid.New(), time.Now())
	resize(a, 3)
	assert.Equal(t, []int{1, 3, 5}, slotNumbers(a.Slots))
	assert.Equal(t, 2, a.CountOccupied())

	resize(a, 4)
	assert.Equal(t, []int{1, 3, 5, 6}, slotNumbers(a.Slots))
}

func TestAreaLocksAreDropped(t *testing.T) {
	var al areaLocks
	id := uuid.New()
	unlock := al.lock(id)
	assert.Len(t, al.locks, 1)
	unlock()
	assert.Empty(t, al.locks)
}

func TestTransition(t *testing.T) {
	ctx := context.Background()
	v := &model.Vehicle{
		Status:        model.VehicleParked,
		PaymentStatus: model.PaymentUnpaid,
	}
	require.NoError(t, transition(ctx, v, eventPay))
	assert.Equal(t, model.VehiclePaid, v.Status)
	assert.Equal(t, model.PaymentPaid, v.PaymentStatus)

	err := transition(ctx, v, eventPay)
	assert.Equal(t, cerr.VehicleAlreadyPaid, cerr.CodeOf(err))
	assert.Equal(t, model.VehiclePaid, v.Status)

	require.NoError(t, transition(ctx, v, eventExit))
	assert.Equal(t, model.VehicleExited, v.Status)

	for _, e := range []string{eventPay, eventExit} {
		err = transition(ctx, v, e)
		assert.Equal(t, cerr.VehicleAlreadyExited, cerr.CodeOf(err), e)
	}
}
