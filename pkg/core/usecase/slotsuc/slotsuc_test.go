// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package slotsuc_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/slotkeeper/internal/test/memrepo"
	"github.com/momeni/slotkeeper/pkg/core/cerr"
	"github.com/momeni/slotkeeper/pkg/core/model"
	"github.com/momeni/slotkeeper/pkg/core/usecase/slotsuc"
	"github.com/stretchr/testify/suite"
)

type event struct {
	area uuid.UUID
	kind model.ChangeKind
}

type recorder struct {
	mu     sync.Mutex
	events []event
}

func (r *recorder) Notify(_ context.Context, areaID uuid.UUID, kind model.ChangeKind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event{area: areaID, kind: kind})
}

func (r *recorder) kinds() []model.ChangeKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	kinds := make([]model.ChangeKind, 0, len(r.events))
	for _, e := range r.events {
		kinds = append(kinds, e.kind)
	}
	return kinds
}

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type SlotsUseCaseTestSuite struct {
	suite.Suite

	Ctx   context.Context
	Store *memrepo.Store
	Rec   *recorder
	Clock *clock
	UC    *slotsuc.UseCase
}

func TestSlotsUseCaseTestSuite(t *testing.T) {
	suite.Run(t, &SlotsUseCaseTestSuite{Ctx: context.Background()})
}

func (sucts *SlotsUseCaseTestSuite) SetupTest() {
	sucts.Store = memrepo.New()
	sucts.Rec = &recorder{}
	sucts.Clock = &clock{t: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
	uc, err := slotsuc.New(
		sucts.Store, memrepo.Areas{}, memrepo.Vehicles{}, memrepo.Users{},
		slotsuc.WithNotifier(sucts.Rec),
		slotsuc.WithClock(sucts.Clock.Now),
	)
	sucts.Require().NoError(err)
	sucts.UC = uc
}

// seedArea stores an area with an uninitialized layout, as legacy
// areas which were created before the explicit initialization.
func (sucts *SlotsUseCaseTestSuite) seedArea(total int, c model.Capacity) uuid.UUID {
	id := uuid.New()
	sucts.Store.PutArea(model.ParkingArea{
		ID:             id,
		Name:           "Lot " + id.String()[:4],
		TotalSlots:     total,
		Capacity:       c,
		Rates:          model.Rates{Car: 100, Bike: 50},
		AvailableSlots: total,
		Active:         true,
	})
	return id
}

func registration(area uuid.UUID, plate, vt string, slot int) slotsuc.Registration {
	return slotsuc.Registration{
		Plate:       plate,
		VehicleType: vt,
		OwnerName:   "Jane Roe",
		Email:       "Jane@Example.com",
		Phone:       "+15551234567",
		AreaID:      area,
		SlotNumber:  &slot,
	}
}

func (sucts *SlotsUseCaseTestSuite) area(id uuid.UUID) *model.ParkingArea {
	a, ok := sucts.Store.Area(id)
	sucts.Require().True(ok, "area %s is not stored", id)
	return &a
}

func (sucts *SlotsUseCaseTestSuite) requireCode(code cerr.Code, err error) {
	sucts.Require().Error(err)
	sucts.Require().Equal(code, cerr.CodeOf(err), "error: %v", err)
}

// requireConsistent checks the counters invariants of the id area
// against the stored vehicles.
func (sucts *SlotsUseCaseTestSuite) requireConsistent(id uuid.UUID, active int) {
	a := sucts.area(id)
	sucts.Require().Equal(a.TotalSlots, a.AvailableSlots+a.OccupiedSlots)
	sucts.Require().Equal(active, a.OccupiedSlots)
	sucts.Require().Equal(active, a.CountOccupied())
}

func (sucts *SlotsUseCaseTestSuite) TestScenarioA() {
	id := sucts.seedArea(3, model.Capacity{Car: 2, Bike: 1})

	av, err := sucts.UC.ListAvailable(sucts.Ctx, id, "")
	sucts.Require().NoError(err)
	sucts.Require().Len(av.Slots, 3)
	for i, want := range []model.VehicleType{
		model.VehicleTypeCar, model.VehicleTypeCar, model.VehicleTypeBike,
	} {
		sucts.Equal(i+1, av.Slots[i].SlotNumber)
		sucts.Equal(want, av.Slots[i].VehicleType)
	}
	sucts.Equal(3, av.Area.AvailableSlots)
	sucts.Equal(
		[]model.ChangeKind{model.ChangeSlotsInitialized}, sucts.Rec.kinds(),
	)

	res, err := sucts.UC.RegisterAndAssign(
		sucts.Ctx, registration(id, "ka01 ab1234", "Sedan", 1),
	)
	sucts.Require().NoError(err)
	sucts.Equal(2, res.Area.AvailableSlots)
	sucts.Equal(1, res.Area.OccupiedSlots)
	sucts.Equal("KA01AB1234", res.Vehicle.Plate)
	sucts.Equal(model.VehicleTypeCar, res.Vehicle.VehicleType)
	sucts.Equal(model.VehicleParked, res.Vehicle.Status)
	sucts.Equal(model.PaymentUnpaid, res.Vehicle.PaymentStatus)
	sucts.Require().NotNil(res.Vehicle.Owner)
	sucts.Equal("jane@example.com", res.Vehicle.Owner.Email)
	sucts.Require().NotNil(res.Vehicle.Area)
	a := sucts.area(id)
	sucts.True(a.Slot(1).OccupiedBy(res.Vehicle.ID))
	sucts.Equal(sucts.Clock.Now(), *a.Slot(1).OccupiedAt)

	_, err = sucts.UC.RegisterAndAssign(
		sucts.Ctx, registration(id, "KA02XY9999", "scooter", 2),
	)
	sucts.requireCode(cerr.SlotTypeMismatch, err)
	_, err = sucts.UC.RegisterAndAssign(
		sucts.Ctx, registration(id, "KA02XY9999", "scooter", 1),
	)
	sucts.requireCode(cerr.SlotOccupied, err)
	_, err = sucts.UC.RegisterAndAssign(
		sucts.Ctx, registration(id, "KA01-AB 1234", "car", 2),
	)
	sucts.requireCode(cerr.VehicleAlreadyParked, err)
	sucts.Equal(a, sucts.area(id), "failed allocations mutated the area")
	sucts.Equal(1, sucts.Store.CountVehicles())
}

func (sucts *SlotsUseCaseTestSuite) TestScenarioB() {
	id := sucts.seedArea(3, model.Capacity{Car: 2, Bike: 1})
	_, err := sucts.UC.RegisterAndAssign(
		sucts.Ctx, registration(id, "KA01AB1234", "car", 1),
	)
	sucts.Require().NoError(err)

	res, err := sucts.UC.RegisterAndAssign(
		sucts.Ctx, registration(id, "KA02XY9999", "motor-bike", 3),
	)
	sucts.Require().NoError(err)
	sucts.Equal(1, res.Area.AvailableSlots)
	sucts.Equal(2, res.Area.OccupiedSlots)

	sucts.Clock.Advance(90 * time.Minute)
	rel, err := sucts.UC.Release(sucts.Ctx, res.Vehicle.ID, nil)
	sucts.Require().NoError(err)
	sucts.Equal(2, rel.Area.AvailableSlots)
	sucts.Equal(1, rel.Area.OccupiedSlots)
	sucts.Equal(model.VehicleExited, rel.Vehicle.Status)
	sucts.Equal(sucts.Clock.Now(), *rel.Vehicle.ExitTime)
	sucts.Equal(int64(2*50), rel.Vehicle.Fee)

	s := sucts.area(id).Slot(3)
	sucts.False(s.IsOccupied)
	sucts.Nil(s.OccupantVehicleID)
	sucts.Nil(s.OccupiedAt)
	sucts.requireConsistent(id, 1)
	sucts.Equal([]model.ChangeKind{
		model.ChangeSlotAssigned,
		model.ChangeSlotAssigned,
		model.ChangeSlotReleased,
	}, sucts.Rec.kinds())
}

func (sucts *SlotsUseCaseTestSuite) TestScenarioC() {
	id := sucts.seedArea(3, model.Capacity{Car: 2, Bike: 1})
	res, err := sucts.UC.RegisterAndAssign(
		sucts.Ctx, registration(id, "KA01AB1234", "SUV", 1),
	)
	sucts.Require().NoError(err)

	a, err := sucts.UC.UpdateCapacity(sucts.Ctx, id, slotsuc.CapacityUpdate{
		Capacity: &model.Capacity{Bike: 3},
	})
	sucts.Require().NoError(err)
	sucts.Equal(model.VehicleTypeCar, a.Slot(1).VehicleType)
	sucts.True(a.Slot(1).OccupiedBy(res.Vehicle.ID))
	sucts.Equal(model.VehicleTypeBike, a.Slot(2).VehicleType)
	sucts.Equal(model.VehicleTypeBike, a.Slot(3).VehicleType)

	av, err := sucts.UC.ListAvailable(sucts.Ctx, id, "bicycle")
	sucts.Require().NoError(err)
	sucts.Equal([]int{2, 3}, slotNumbersOf(av.Slots))
	av, err = sucts.UC.ListAvailable(sucts.Ctx, id, "car")
	sucts.Require().NoError(err)
	sucts.Empty(av.Slots)
}

func slotNumbersOf(slots []model.Slot) []int {
	nums := make([]int, 0, len(slots))
	for _, s := range slots {
		nums = append(nums, s.SlotNumber)
	}
	return nums
}

func (sucts *SlotsUseCaseTestSuite) TestRegistrationValidationOrder() {
	id := sucts.seedArea(3, model.Capacity{Car: 2, Bike: 1})
	_, err := sucts.UC.RegisterAndAssign(
		sucts.Ctx, registration(id, "KA01AB1234", "car", 1),
	)
	sucts.Require().NoError(err)
	before := sucts.area(id)

	cases := []struct {
		name string
		edit func(r *slotsuc.Registration)
		code cerr.Code
	}{
		{"missing plate", func(r *slotsuc.Registration) {
			r.Plate = "  "
			r.Email = "bad"
		}, cerr.MissingFields},
		{"missing slot", func(r *slotsuc.Registration) {
			r.SlotNumber = nil
		}, cerr.MissingFields},
		{"missing area", func(r *slotsuc.Registration) {
			r.AreaID = uuid.Nil
		}, cerr.MissingFields},
		{"bad email", func(r *slotsuc.Registration) {
			r.Email = "jane.example.com"
			r.Phone = "x"
		}, cerr.InvalidEmail},
		{"bad phone", func(r *slotsuc.Registration) {
			r.Phone = "call me"
			r.Plate = "!"
		}, cerr.InvalidPhone},
		{"bad plate", func(r *slotsuc.Registration) {
			r.Plate = "K@1"
		}, cerr.InvalidPlate},
		{"unknown type", func(r *slotsuc.Registration) {
			r.VehicleType = "spaceship"
		}, cerr.InvalidVehicleType},
		{"already parked", func(r *slotsuc.Registration) {
			r.Plate = "ka01ab1234"
			r.AreaID = uuid.New()
		}, cerr.VehicleAlreadyParked},
		{"unknown area", func(r *slotsuc.Registration) {
			r.AreaID = uuid.New()
		}, cerr.ParkingAreaNotFound},
		{"zero slot", func(r *slotsuc.Registration) {
			n := 0
			r.SlotNumber = &n
		}, cerr.InvalidSlotNumber},
		{"missing slot number", func(r *slotsuc.Registration) {
			n := 4
			r.SlotNumber = &n
		}, cerr.InvalidSlotNumber},
		{"occupied", func(r *slotsuc.Registration) {
			n := 1
			r.SlotNumber = &n
			r.VehicleType = "bike"
		}, cerr.SlotOccupied},
		{"mismatch", func(r *slotsuc.Registration) {
			r.VehicleType = "truck"
		}, cerr.SlotTypeMismatch},
	}
	for _, tc := range cases {
		sucts.Run(tc.name, func() {
			r := registration(id, "MH12CD3456", "car", 2)
			tc.edit(&r)
			_, err := sucts.UC.RegisterAndAssign(sucts.Ctx, r)
			sucts.requireCode(tc.code, err)
		})
	}
	sucts.Equal(before, sucts.area(id))
	sucts.Equal(1, sucts.Store.CountVehicles())
}

func (sucts *SlotsUseCaseTestSuite) TestNoAvailableSlotsUntilReconciled() {
	id := uuid.New()
	a := model.ParkingArea{
		ID: id, Name: "Drifted", TotalSlots: 2, Active: true,
		OccupiedSlots: 2,
		Slots: []model.Slot{
			{SlotNumber: 1}, {SlotNumber: 2},
		},
	}
	sucts.Store.PutArea(a)

	_, err := sucts.UC.RegisterAndAssign(
		sucts.Ctx, registration(id, "KA01AB1234", "car", 1),
	)
	sucts.requireCode(cerr.NoAvailableSlots, err)

	av, err := sucts.UC.ListAvailable(sucts.Ctx, id, "")
	sucts.Require().NoError(err)
	sucts.Equal(2, av.Area.AvailableSlots)
	sucts.Equal(
		[]model.ChangeKind{model.ChangeSlotsReconciled}, sucts.Rec.kinds(),
	)

	_, err = sucts.UC.RegisterAndAssign(
		sucts.Ctx, registration(id, "KA01AB1234", "car", 1),
	)
	sucts.Require().NoError(err)
	sucts.requireConsistent(id, 1)
}

func (sucts *SlotsUseCaseTestSuite) TestFailedPersistenceRollsBack() {
	id := sucts.seedArea(2, model.Capacity{})
	_, err := sucts.UC.InitializeSlots(sucts.Ctx, id)
	sucts.Require().NoError(err)
	before := sucts.area(id)

	sucts.Store.FailOn(memrepo.OpSaveArea, errors.New("disk is full"))
	_, err = sucts.UC.RegisterAndAssign(
		sucts.Ctx, registration(id, "KA01AB1234", "van", 1),
	)
	sucts.Require().ErrorContains(err, "disk is full")
	sucts.Equal(before, sucts.area(id))
	sucts.Zero(sucts.Store.CountVehicles())
	sucts.Equal(
		[]model.ChangeKind{model.ChangeSlotsInitialized}, sucts.Rec.kinds(),
	)
}

func (sucts *SlotsUseCaseTestSuite) TestNoDoubleAllocation() {
	id := sucts.seedArea(3, model.Capacity{})
	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r := registration(id, fmt.Sprintf("CONC%04d", i), "car", 2)
			_, errs[i] = sucts.UC.RegisterAndAssign(sucts.Ctx, r)
		}(i)
	}
	wg.Wait()
	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		sucts.Equal(cerr.SlotOccupied, cerr.CodeOf(err), "error: %v", err)
	}
	sucts.Equal(1, succeeded)
	sucts.requireConsistent(id, 1)
}

func (sucts *SlotsUseCaseTestSuite) TestInvariantsOverSequence() {
	id := sucts.seedArea(4, model.Capacity{Car: 2, Bike: 1, ThreeWheeler: 1})
	types := []string{"car", "hatchback", "scooter", "auto rickshaw"}
	ids := make([]uuid.UUID, 0, len(types))
	for i, vt := range types {
		res, err := sucts.UC.RegisterAndAssign(sucts.Ctx, registration(
			id, fmt.Sprintf("SEQ%04d", i), vt, i+1,
		))
		sucts.Require().NoError(err, vt)
		ids = append(ids, res.Vehicle.ID)
		sucts.requireConsistent(id, i+1)
	}
	_, err := sucts.UC.RegisterAndAssign(
		sucts.Ctx, registration(id, "SEQ9999", "car", 1),
	)
	sucts.requireCode(cerr.SlotOccupied, err)

	for i, vid := range ids {
		_, err := sucts.UC.Release(sucts.Ctx, vid, nil)
		sucts.Require().NoError(err)
		sucts.requireConsistent(id, len(ids)-i-1)
	}
}

func (sucts *SlotsUseCaseTestSuite) TestReleaseGuards() {
	id := sucts.seedArea(2, model.Capacity{})
	res, err := sucts.UC.RegisterAndAssign(
		sucts.Ctx, registration(id, "KA01AB1234", "", 1),
	)
	sucts.Require().NoError(err)
	sucts.Equal(model.VehicleTypeCar, res.Vehicle.VehicleType)
	before := sucts.area(id)

	early := sucts.Clock.Now().Add(-time.Minute)
	_, err = sucts.UC.Release(sucts.Ctx, res.Vehicle.ID, &early)
	sucts.requireCode(cerr.InvalidRequest, err)
	sucts.Equal(before, sucts.area(id))
	v, ok := sucts.Store.Vehicle(res.Vehicle.ID)
	sucts.Require().True(ok)
	sucts.Equal(model.VehicleParked, v.Status)

	exit := sucts.Clock.Now().Add(3 * time.Hour)
	rel, err := sucts.UC.Release(sucts.Ctx, res.Vehicle.ID, &exit)
	sucts.Require().NoError(err)
	sucts.Equal(exit, *rel.Vehicle.ExitTime)
	sucts.Equal(int64(3*100), rel.Vehicle.Fee)
	after := sucts.area(id)

	_, err = sucts.UC.Release(sucts.Ctx, res.Vehicle.ID, nil)
	sucts.requireCode(cerr.VehicleAlreadyExited, err)
	sucts.Equal(after, sucts.area(id))

	_, err = sucts.UC.Release(sucts.Ctx, uuid.New(), nil)
	sucts.requireCode(cerr.VehicleNotFound, err)
}

func (sucts *SlotsUseCaseTestSuite) TestReleaseFindsDriftedSlot() {
	id := uuid.New()
	vid := uuid.New()
	t0 := sucts.Clock.Now()
	wrong := 1
	sucts.Store.PutArea(model.ParkingArea{
		ID: id, Name: "Drifted", TotalSlots: 2, Active: true,
		OccupiedSlots: 1, AvailableSlots: 1,
		Slots: []model.Slot{
			{SlotNumber: 1},
			{SlotNumber: 2, IsOccupied: true, OccupantVehicleID: &vid, OccupiedAt: &t0},
		},
	})
	sucts.Store.PutVehicle(model.Vehicle{
		ID: vid, Plate: "KA01AB1234", VehicleType: model.VehicleTypeCar,
		ParkingAreaID: id, SlotNumber: &wrong,
		Status: model.VehicleParked, PaymentStatus: model.PaymentUnpaid,
		EntryTime: t0,
	})

	rel, err := sucts.UC.Release(sucts.Ctx, vid, nil)
	sucts.Require().NoError(err)
	sucts.Equal(2, rel.Area.AvailableSlots)
	sucts.False(sucts.area(id).Slot(2).IsOccupied)
	sucts.requireConsistent(id, 0)
}

func (sucts *SlotsUseCaseTestSuite) TestReleaseVehicleWithoutSlot() {
	id := uuid.New()
	first, second := uuid.New(), uuid.New()
	t0 := sucts.Clock.Now()
	one := 1
	sucts.Store.PutArea(model.ParkingArea{
		ID: id, Name: "Claimed twice", TotalSlots: 2, Active: true,
		OccupiedSlots: 1, AvailableSlots: 1,
		Slots: []model.Slot{
			{SlotNumber: 1, IsOccupied: true, OccupantVehicleID: &first, OccupiedAt: &t0},
			{SlotNumber: 2},
		},
	})
	for i, vid := range []uuid.UUID{first, second} {
		sucts.Store.PutVehicle(model.Vehicle{
			ID: vid, Plate: fmt.Sprintf("KA01AB%04d", i),
			VehicleType: model.VehicleTypeCar, ParkingAreaID: id,
			SlotNumber: &one, Status: model.VehicleParked,
			PaymentStatus: model.PaymentUnpaid,
			EntryTime:     t0.Add(time.Duration(i) * time.Minute),
		})
	}

	rel, err := sucts.UC.Release(sucts.Ctx, second, nil)
	sucts.Require().NoError(err)
	sucts.Equal(1, rel.Area.OccupiedSlots)
	sucts.Equal(1, rel.Area.AvailableSlots)
	a := sucts.area(id)
	sucts.True(a.Slot(1).OccupiedBy(first))
	sucts.requireConsistent(id, 1)

	v, ok := sucts.Store.Vehicle(second)
	sucts.Require().True(ok)
	sucts.Equal(model.VehicleExited, v.Status)
}

func (sucts *SlotsUseCaseTestSuite) TestMarkPaid() {
	id := sucts.seedArea(2, model.Capacity{})
	res, err := sucts.UC.RegisterAndAssign(
		sucts.Ctx, registration(id, "KA01AB1234", "van", 2),
	)
	sucts.Require().NoError(err)

	v, err := sucts.UC.MarkPaid(sucts.Ctx, res.Vehicle.ID)
	sucts.Require().NoError(err)
	sucts.Equal(model.VehiclePaid, v.Status)
	sucts.Equal(model.PaymentPaid, v.PaymentStatus)
	_, err = sucts.UC.MarkPaid(sucts.Ctx, res.Vehicle.ID)
	sucts.requireCode(cerr.VehicleAlreadyPaid, err)

	av, err := sucts.UC.ListAvailable(sucts.Ctx, id, "")
	sucts.Require().NoError(err)
	sucts.Equal([]int{1}, slotNumbersOf(av.Slots), "paid vehicle lost its slot")

	_, err = sucts.UC.Release(sucts.Ctx, res.Vehicle.ID, nil)
	sucts.Require().NoError(err)
	_, err = sucts.UC.MarkPaid(sucts.Ctx, res.Vehicle.ID)
	sucts.requireCode(cerr.VehicleAlreadyExited, err)
	_, err = sucts.UC.MarkPaid(sucts.Ctx, uuid.New())
	sucts.requireCode(cerr.VehicleNotFound, err)
}

func (sucts *SlotsUseCaseTestSuite) TestCreateArea() {
	a, err := sucts.UC.CreateArea(sucts.Ctx, slotsuc.NewArea{
		Name:       " North ",
		TotalSlots: 3,
		Capacity:   model.Capacity{Car: 1, Van: 2},
		Active:     true,
	})
	sucts.Require().NoError(err)
	sucts.Equal("North", a.Name)
	sucts.Len(a.Slots, 3)
	sucts.Equal(model.VehicleTypeVan, a.Slot(3).VehicleType)
	sucts.Equal(3, a.AvailableSlots)
	sucts.Equal(a.Slots, sucts.area(a.ID).Slots)
	sucts.Equal(
		[]model.ChangeKind{model.ChangeAreaCreated}, sucts.Rec.kinds(),
	)

	got, err := sucts.UC.GetArea(sucts.Ctx, a.ID)
	sucts.Require().NoError(err)
	sucts.Equal(a, got)
	_, err = sucts.UC.GetArea(sucts.Ctx, uuid.New())
	sucts.requireCode(cerr.ParkingAreaNotFound, err)

	for name, na := range map[string]slotsuc.NewArea{
		string(cerr.MissingFields):       {TotalSlots: 1},
		string(cerr.InvalidTotalSlots):   {Name: "x"},
		string(cerr.InvalidSlotCapacity): {Name: "x", TotalSlots: 2, Capacity: model.Capacity{Bike: 1}},
		string(cerr.InvalidRequest):      {Name: "x", TotalSlots: 1, Rates: model.Rates{Van: -1}},
	} {
		_, err := sucts.UC.CreateArea(sucts.Ctx, na)
		sucts.requireCode(cerr.Code(name), err)
	}
}

func (sucts *SlotsUseCaseTestSuite) TestUpdateCapacityResizes() {
	a, err := sucts.UC.CreateArea(sucts.Ctx, slotsuc.NewArea{
		Name: "Resized", TotalSlots: 2, Active: true,
	})
	sucts.Require().NoError(err)
	_, err = sucts.UC.RegisterAndAssign(
		sucts.Ctx, registration(a.ID, "KA01AB1234", "bike", 2),
	)
	sucts.Require().NoError(err)

	four, one, zero := 4, 1, 0
	a, err = sucts.UC.UpdateCapacity(sucts.Ctx, a.ID, slotsuc.CapacityUpdate{
		TotalSlots: &four,
	})
	sucts.Require().NoError(err)
	sucts.Equal([]int{1, 2, 3, 4}, slotNumbersOf(a.Slots))
	sucts.Equal(3, a.AvailableSlots)

	a, err = sucts.UC.UpdateCapacity(sucts.Ctx, a.ID, slotsuc.CapacityUpdate{
		TotalSlots: &one,
	})
	sucts.Require().NoError(err)
	sucts.Equal([]int{2}, slotNumbersOf(a.Slots))
	sucts.Equal(0, a.AvailableSlots)
	sucts.Equal(1, a.OccupiedSlots)
	sucts.requireConsistent(a.ID, 1)

	_, err = sucts.UC.UpdateCapacity(sucts.Ctx, a.ID, slotsuc.CapacityUpdate{
		TotalSlots: &zero,
	})
	sucts.requireCode(cerr.InvalidTotalSlots, err)
	_, err = sucts.UC.UpdateCapacity(sucts.Ctx, a.ID, slotsuc.CapacityUpdate{
		TotalSlots: &four,
		Capacity:   &model.Capacity{Car: 5},
	})
	sucts.requireCode(cerr.InvalidSlotCapacity, err)
	_, err = sucts.UC.UpdateCapacity(sucts.Ctx, uuid.New(), slotsuc.CapacityUpdate{})
	sucts.requireCode(cerr.ParkingAreaNotFound, err)
}

func (sucts *SlotsUseCaseTestSuite) TestUpdateCapacityBelowOccupied() {
	id := sucts.seedArea(3, model.Capacity{})
	for i := 1; i <= 2; i++ {
		_, err := sucts.UC.RegisterAndAssign(sucts.Ctx, registration(
			id, fmt.Sprintf("OCC%04d", i), "car", i,
		))
		sucts.Require().NoError(err)
	}
	before := sucts.area(id)
	one := 1
	_, err := sucts.UC.UpdateCapacity(sucts.Ctx, id, slotsuc.CapacityUpdate{
		TotalSlots: &one,
	})
	sucts.requireCode(cerr.InvalidTotalSlots, err)
	sucts.Equal(before, sucts.area(id))
}

func (sucts *SlotsUseCaseTestSuite) TestInitializeSlotsIsIdempotent() {
	id := sucts.seedArea(3, model.Capacity{Bike: 3})
	a, err := sucts.UC.InitializeSlots(sucts.Ctx, id)
	sucts.Require().NoError(err)
	sucts.Len(a.Slots, 3)
	sucts.Equal(model.VehicleTypeBike, a.Slot(1).VehicleType)

	again, err := sucts.UC.InitializeSlots(sucts.Ctx, id)
	sucts.Require().NoError(err)
	sucts.Equal(a, again)
	sucts.Equal(
		[]model.ChangeKind{model.ChangeSlotsInitialized}, sucts.Rec.kinds(),
	)
}

func (sucts *SlotsUseCaseTestSuite) TestRecalculateCounts() {
	id := uuid.New()
	stale := uuid.New()
	vid := uuid.New()
	t0 := sucts.Clock.Now()
	two := 2
	sucts.Store.PutArea(model.ParkingArea{
		ID: id, Name: "Stale", TotalSlots: 3, Active: true,
		OccupiedSlots: 3,
		Slots: []model.Slot{
			{SlotNumber: 1, IsOccupied: true, OccupantVehicleID: &stale, OccupiedAt: &t0},
			{SlotNumber: 2},
			{SlotNumber: 3, IsOccupied: true},
		},
	})
	sucts.Store.PutVehicle(model.Vehicle{
		ID: vid, Plate: "KA01AB1234", VehicleType: model.VehicleTypeCar,
		ParkingAreaID: id, SlotNumber: &two,
		Status: model.VehiclePaid, PaymentStatus: model.PaymentPaid,
		EntryTime: t0.Add(-time.Hour),
	})

	a, err := sucts.UC.RecalculateCounts(sucts.Ctx, id)
	sucts.Require().NoError(err)
	sucts.False(a.Slot(1).IsOccupied)
	sucts.True(a.Slot(2).OccupiedBy(vid))
	sucts.Equal(t0.Add(-time.Hour), *a.Slot(2).OccupiedAt)
	sucts.False(a.Slot(3).IsOccupied)
	sucts.requireConsistent(id, 1)
	sucts.Equal(
		[]model.ChangeKind{model.ChangeSlotsReconciled}, sucts.Rec.kinds(),
	)

	_, err = sucts.UC.RecalculateCounts(sucts.Ctx, id)
	sucts.Require().NoError(err)
	sucts.Len(sucts.Rec.kinds(), 1, "a consistent area was rewritten")
}

func (sucts *SlotsUseCaseTestSuite) TestListAvailableErrors() {
	id := sucts.seedArea(1, model.Capacity{})
	_, err := sucts.UC.ListAvailable(sucts.Ctx, id, "hovercraft")
	sucts.requireCode(cerr.InvalidVehicleType, err)
	_, err = sucts.UC.ListAvailable(sucts.Ctx, uuid.New(), "")
	sucts.requireCode(cerr.ParkingAreaNotFound, err)

	inactive := false
	_, err = sucts.UC.UpdateCapacity(sucts.Ctx, id, slotsuc.CapacityUpdate{
		Active: &inactive,
	})
	sucts.Require().NoError(err)
	_, err = sucts.UC.ListAvailable(sucts.Ctx, id, "")
	sucts.requireCode(cerr.ParkingAreaNotFound, err)
}

func TestNewRejectsInvalidOptions(t *testing.T) {
	s := memrepo.New()
	for name, opt := range map[string]slotsuc.Option{
		"nil notifier":  slotsuc.WithNotifier(nil),
		"nil clock":     slotsuc.WithClock(nil),
		"bad pattern":   slotsuc.WithPlatePattern("(["),
		"unset default": slotsuc.WithDefaultVehicleType(model.VehicleTypeUnset),
	} {
		_, err := slotsuc.New(
			s, memrepo.Areas{}, memrepo.Vehicles{}, memrepo.Users{}, opt,
		)
		if err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
}
