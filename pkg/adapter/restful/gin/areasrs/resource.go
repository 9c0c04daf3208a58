// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package areasrs realizes the parking areas resource, accepting the
// areas and slots REST APIs and delegating them to the slots use case.
package areasrs

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
//  1. POST request to admin/areas in order to create an area,
//  2. GET request to areas/:aid in order to view an area,
//  3. GET request to areas/:aid/slots in order to list its free slots,
//     optionally filtered by the vehicle_type query parameter,
//  4. POST request to admin/areas/:aid/slots/init in order to
//     initialize the slots layout of an area explicitly,
//  5. POST request to admin/areas/:aid/slots/recalculate in order to
//     rebuild the occupancy of an area from the active vehicles,
//  6. PATCH request to admin/areas/:aid/capacity in order to change
//     the (per-type) capacity or other attributes of an area.
//
// Authorization of the admin APIs is left to an outer middleware.
func Register(r *gin.RouterGroup, slots *slotsuc.UseCase) {
	rs := &resource{slots: slots}
	r.POST("admin/areas", rs.CreateArea)
	r.GET("areas/:aid", rs.GetArea)
	r.GET("areas/:aid/slots", rs.ListAvailable)
	r.POST("admin/areas/:aid/slots/init", rs.InitializeSlots)
	r.POST("admin/areas/:aid/slots/recalculate", rs.RecalculateCounts)
	r.PATCH("admin/areas/:aid/capacity", rs.UpdateCapacity)
}

func (rs *resource) CreateArea(c *gin.Context) {
	req := rs.DserCreateAreaReq(c)
	if req == nil {
		return
	}
	a, err := rs.slots.CreateArea(c, *req)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

func (rs *resource) GetArea(c *gin.Context) {
	aid, ok := serdser.ParamUUID(c, "aid")
	if !ok {
		return
	}
	a, err := rs.slots.GetArea(c, aid)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (rs *resource) ListAvailable(c *gin.Context) {
	aid, ok := serdser.ParamUUID(c, "aid")
	if !ok {
		return
	}
	res, err := rs.slots.ListAvailable(c, aid, c.Query("vehicle_type"))
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, SerAvailability(res))
}

func (rs *resource) InitializeSlots(c *gin.Context) {
	aid, ok := serdser.ParamUUID(c, "aid")
	if !ok {
		return
	}
	a, err := rs.slots.InitializeSlots(c, aid)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (rs *resource) RecalculateCounts(c *gin.Context) {
	aid, ok := serdser.ParamUUID(c, "aid")
	if !ok {
		return
	}
	a, err := rs.slots.RecalculateCounts(c, aid)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (rs *resource) UpdateCapacity(c *gin.Context) {
	aid, ok := serdser.ParamUUID(c, "aid")
	if !ok {
		return
	}
	req := rs.DserUpdateCapacityReq(c)
	if req == nil {
		return
	}
	a, err := rs.slots.UpdateCapacity(c, aid, *req)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}
