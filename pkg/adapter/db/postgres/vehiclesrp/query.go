// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package vehiclesrp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/slotkeeper/pkg/adapter/db/postgres"
	"github.com/momeni/slotkeeper/pkg/core/cerr"
	"github.com/momeni/slotkeeper/pkg/core/model"
	"github.com/momeni/slotkeeper/pkg/core/repo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gVehicle struct {
	ID            uuid.UUID `gorm:"primaryKey;type:uuid"`
	Plate         string
	VehicleType   string
	OwnerID       uuid.UUID `gorm:"type:uuid"`
	ParkingAreaID uuid.UUID `gorm:"type:uuid"`
	SlotNumber    *int
	Status        string
	PaymentStatus string
	EntryTime     time.Time
	ExitTime      *time.Time
	Fee           int64
}

func (gv *gVehicle) TableName() string {
	return "vehicles"
}

func fromVehicle(v *model.Vehicle) gVehicle {
	return gVehicle{
		ID:            v.ID,
		Plate:         v.Plate,
		VehicleType:   v.VehicleType.String(),
		OwnerID:       v.OwnerID,
		ParkingAreaID: v.ParkingAreaID,
		SlotNumber:    v.SlotNumber,
		Status:        string(v.Status),
		PaymentStatus: string(v.PaymentStatus),
		EntryTime:     v.EntryTime,
		ExitTime:      v.ExitTime,
		Fee:           v.Fee,
	}
}

func (gv *gVehicle) Model() (*model.Vehicle, error) {
	vt, err := model.ParseVehicleType(gv.VehicleType)
	if err != nil {
		return nil, fmt.Errorf("vehicle type %q: %w", gv.VehicleType, err)
	}
	return &model.Vehicle{
		ID:            gv.ID,
		Plate:         gv.Plate,
		VehicleType:   vt,
		OwnerID:       gv.OwnerID,
		ParkingAreaID: gv.ParkingAreaID,
		SlotNumber:    gv.SlotNumber,
		Status:        model.VehicleStatus(gv.Status),
		PaymentStatus: model.PaymentStatus(gv.PaymentStatus),
		EntryTime:     gv.EntryTime,
		ExitTime:      gv.ExitTime,
		Fee:           gv.Fee,
	}, nil
}

func activeStatuses() []string {
	ss := make([]string, 0, len(model.ActiveVehicleStatuses))
	for _, s := range model.ActiveVehicleStatuses {
		ss = append(ss, string(s))
	}
	return ss
}

func take(gdb *gorm.DB, query string, args ...any) (*model.Vehicle, error) {
	var gv gVehicle
	err := gdb.Where(query, args...).Take(&gv).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, repo.ErrNotFound
	case err != nil:
		return nil, fmt.Errorf("query vehicle: %w", err)
	}
	return gv.Model()
}

// Find loads the id vehicle. When forUpdate is true, its row is locked
// until the end of the ongoing transaction.
func Find[Q postgres.Queryer](ctx context.Context, q Q, id uuid.UUID, forUpdate bool) (*model.Vehicle, error) {
	gdb := q.GORM(ctx)
	if forUpdate {
		gdb = gdb.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return take(gdb, "id = ?", id)
}

func FindActiveByPlate[Q postgres.Queryer](ctx context.Context, q Q, plate string) (*model.Vehicle, error) {
	return take(
		q.GORM(ctx), "plate = ? AND status IN ?", plate, activeStatuses(),
	)
}

func ListActiveByArea[Q postgres.Queryer](ctx context.Context, q Q, areaID uuid.UUID) ([]model.Vehicle, error) {
	var gvs []gVehicle
	err := q.GORM(ctx).Where(
		"parking_area_id = ? AND status IN ?", areaID, activeStatuses(),
	).Order("entry_time").Find(&gvs).Error
	if err != nil {
		return nil, fmt.Errorf("query vehicles: %w", err)
	}
	vs := make([]model.Vehicle, 0, len(gvs))
	for i := range gvs {
		v, err := gvs[i].Model()
		if err != nil {
			return nil, err
		}
		vs = append(vs, *v)
	}
	return vs, nil
}

// Create inserts v. Since active plates are unique, a second active
// vehicle with the same plate is rejected by VEHICLE_ALREADY_PARKED.
func Create[Q postgres.Queryer](ctx context.Context, q Q, v *model.Vehicle) error {
	gv := fromVehicle(v)
	err := q.GORM(ctx).Create(&gv).Error
	switch {
	case postgres.HasSQLState(err, postgres.UniqueViolation):
		return cerr.Conflict(cerr.VehicleAlreadyParked, err)
	case err != nil:
		return fmt.Errorf("insert vehicle: %w", err)
	}
	return nil
}

// Update stores the mutable fields of v.
func Update[Q postgres.Queryer](ctx context.Context, q Q, v *model.Vehicle) error {
	gv := fromVehicle(v)
	res := q.GORM(ctx).Model(&gVehicle{ID: v.ID}).Select(
		"slot_number", "status", "payment_status", "exit_time", "fee",
	).Updates(&gv)
	if err := res.Error; err != nil {
		return fmt.Errorf("update vehicle: %w", err)
	}
	if res.RowsAffected != 1 {
		return repo.ErrNotFound
	}
	return nil
}
