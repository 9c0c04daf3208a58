// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package areasrp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/slotkeeper/pkg/adapter/db/postgres"
	"github.com/momeni/slotkeeper/pkg/core/model"
	"github.com/momeni/slotkeeper/pkg/core/repo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gArea struct {
	ID                uuid.UUID `gorm:"primaryKey;type:uuid"`
	Name              string
	TotalSlots        int
	CarSlots          int
	BikeSlots         int
	VanSlots          int
	ThreeWheelerSlots int
	CarRate           int64
	BikeRate          int64
	VanRate           int64
	ThreeWheelerRate  int64
	AvailableSlots    int
	OccupiedSlots     int
	Active            bool
}

func (ga *gArea) TableName() string {
	return "parking_areas"
}

func fromArea(a *model.ParkingArea) gArea {
	return gArea{
		ID:                a.ID,
		Name:              a.Name,
		TotalSlots:        a.TotalSlots,
		CarSlots:          a.Capacity.Car,
		BikeSlots:         a.Capacity.Bike,
		VanSlots:          a.Capacity.Van,
		ThreeWheelerSlots: a.Capacity.ThreeWheeler,
		CarRate:           a.Rates.Car,
		BikeRate:          a.Rates.Bike,
		VanRate:           a.Rates.Van,
		ThreeWheelerRate:  a.Rates.ThreeWheeler,
		AvailableSlots:    a.AvailableSlots,
		OccupiedSlots:     a.OccupiedSlots,
		Active:            a.Active,
	}
}

func (ga *gArea) Model() *model.ParkingArea {
	return &model.ParkingArea{
		ID:         ga.ID,
		Name:       ga.Name,
		TotalSlots: ga.TotalSlots,
		Capacity: model.Capacity{
			Car:          ga.CarSlots,
			Bike:         ga.BikeSlots,
			Van:          ga.VanSlots,
			ThreeWheeler: ga.ThreeWheelerSlots,
		},
		Rates: model.Rates{
			Car:          ga.CarRate,
			Bike:         ga.BikeRate,
			Van:          ga.VanRate,
			ThreeWheeler: ga.ThreeWheelerRate,
		},
		AvailableSlots: ga.AvailableSlots,
		OccupiedSlots:  ga.OccupiedSlots,
		Active:         ga.Active,
	}
}

type gSlot struct {
	AreaID            uuid.UUID `gorm:"primaryKey;type:uuid"`
	SlotNumber        int       `gorm:"primaryKey;autoIncrement:false"`
	IsOccupied        bool
	OccupantVehicleID *uuid.UUID `gorm:"type:uuid"`
	OccupiedAt        *time.Time
	VehicleType       string
}

func (gs *gSlot) TableName() string {
	return "parking_slots"
}

func fromSlot(areaID uuid.UUID, s model.Slot) gSlot {
	return gSlot{
		AreaID:            areaID,
		SlotNumber:        s.SlotNumber,
		IsOccupied:        s.IsOccupied,
		OccupantVehicleID: s.OccupantVehicleID,
		OccupiedAt:        s.OccupiedAt,
		VehicleType:       s.VehicleType.String(),
	}
}

func (gs *gSlot) Model() (model.Slot, error) {
	vt, err := model.ParseVehicleType(gs.VehicleType)
	if err != nil {
		return model.Slot{}, fmt.Errorf(
			"slot %d type %q: %w", gs.SlotNumber, gs.VehicleType, err,
		)
	}
	return model.Slot{
		SlotNumber:        gs.SlotNumber,
		IsOccupied:        gs.IsOccupied,
		OccupantVehicleID: gs.OccupantVehicleID,
		OccupiedAt:        gs.OccupiedAt,
		VehicleType:       vt,
	}, nil
}

// Find loads the id area and its slots. When forUpdate is true, the
// area row is locked until the end of the ongoing transaction.
func Find[Q postgres.Queryer](ctx context.Context, q Q, id uuid.UUID, forUpdate bool) (*model.ParkingArea, error) {
	gdb := q.GORM(ctx)
	if forUpdate {
		gdb = gdb.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var ga gArea
	err := gdb.Take(&ga, "id = ?", id).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, repo.ErrNotFound
	case err != nil:
		return nil, fmt.Errorf("query area: %w", err)
	}
	var gs []gSlot
	err = q.GORM(ctx).Where(
		"area_id = ?", id,
	).Order("slot_number").Find(&gs).Error
	if err != nil {
		return nil, fmt.Errorf("query slots: %w", err)
	}
	a := ga.Model()
	a.Slots = make([]model.Slot, 0, len(gs))
	for i := range gs {
		s, err := gs[i].Model()
		if err != nil {
			return nil, err
		}
		a.Slots = append(a.Slots, s)
	}
	return a, nil
}

// Create inserts the a area and all of its slots.
func Create[Q postgres.Queryer](ctx context.Context, q Q, a *model.ParkingArea) error {
	ga := fromArea(a)
	if err := q.GORM(ctx).Create(&ga).Error; err != nil {
		return fmt.Errorf("insert area: %w", err)
	}
	return insertSlots(ctx, q, a)
}

func insertSlots[Q postgres.Queryer](ctx context.Context, q Q, a *model.ParkingArea) error {
	if len(a.Slots) == 0 {
		return nil
	}
	gs := make([]gSlot, 0, len(a.Slots))
	for _, s := range a.Slots {
		gs = append(gs, fromSlot(a.ID, s))
	}
	err := q.GORM(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "area_id"}, {Name: "slot_number"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"is_occupied", "occupant_vehicle_id", "occupied_at",
			"vehicle_type",
		}),
	}).CreateInBatches(&gs, 500).Error
	if err != nil {
		return fmt.Errorf("upsert slots: %w", err)
	}
	return nil
}

// Save updates the a area row, deletes its removed slots, and upserts
// its remaining slots.
func Save[Q postgres.Queryer](ctx context.Context, q Q, a *model.ParkingArea) error {
	ga := fromArea(a)
	res := q.GORM(ctx).Model(&gArea{ID: a.ID}).Select("*").Updates(&ga)
	if err := res.Error; err != nil {
		return fmt.Errorf("update area: %w", err)
	}
	if res.RowsAffected != 1 {
		return repo.ErrNotFound
	}
	nums := make([]int, 0, len(a.Slots))
	for _, s := range a.Slots {
		nums = append(nums, s.SlotNumber)
	}
	del := q.GORM(ctx).Where("area_id = ?", a.ID)
	if len(nums) > 0 {
		del = del.Where("slot_number NOT IN ?", nums)
	}
	if err := del.Delete(&gSlot{}).Error; err != nil {
		return fmt.Errorf("delete removed slots: %w", err)
	}
	return insertSlots(ctx, q, a)
}
