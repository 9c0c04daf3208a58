// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package vehiclesrs realizes the vehicles resource, registering the
// entering vehicles in their requested slots, marking them as paid,
// and releasing their slots upon exit.
package vehiclesrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/momeni/slotkeeper/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/slotkeeper/pkg/core/usecase/slotsuc"
)

type resource struct {
	slots *slotsuc.UseCase
}

// Register instantiates a resource adapting the slots use case
// instance with the relevant REST APIs including:
//  1. POST request to vehicles in order to register a vehicle and
//     assign its requested slot,
//  2. PUT request to vehicles/:vid/release in order to release the
//     slot of a vehicle, with an optional exit_time,
//  3. POST request to vehicles/:vid/pay in order to mark a vehicle
//     parking fee as paid.
func Register(r *gin.RouterGroup, slots *slotsuc.UseCase) {
	rs := &resource{slots: slots}
	r.POST("vehicles", rs.RegisterAndAssign)
	r.PUT("vehicles/:vid/release", rs.Release)
	r.POST("vehicles/:vid/pay", rs.MarkPaid)
}

func (rs *resource) RegisterAndAssign(c *gin.Context) {
	req := rs.DserRegistrationReq(c)
	if req == nil {
		return
	}
	res, err := rs.slots.RegisterAndAssign(c, *req)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, SerAssignment(res))
}

func (rs *resource) Release(c *gin.Context) {
	req := rs.DserReleaseReq(c)
	if req == nil {
		return
	}
	res, err := rs.slots.Release(c, req.VehicleID, req.ExitTime)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, SerAssignment(res))
}

func (rs *resource) MarkPaid(c *gin.Context) {
	vid, ok := serdser.ParamUUID(c, "vid")
	if !ok {
		return
	}
	v, err := rs.slots.MarkPaid(c, vid)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}
