// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package vehiclesrs

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"github.com/momeni/slotkeeper/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/slotkeeper/pkg/core/model"
	"github.com/momeni/slotkeeper/pkg/core/usecase/slotsuc"
)

// rawRegistrationReq leaves the presence and format checks to the use
// case, so they are reported by their own error codes.
type rawRegistrationReq struct {
	Plate         string    `json:"plate"`
	VehicleType   string    `json:"vehicle_type"`
	OwnerName     string    `json:"owner_name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	ParkingAreaID uuid.UUID `json:"parking_area_id"`
	SlotNumber    *int      `json:"slot_number"`
}

func (rs *resource) DserRegistrationReq(c *gin.Context) *slotsuc.Registration {
	req := &rawRegistrationReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil
	}
	return &slotsuc.Registration{
		Plate:       req.Plate,
		VehicleType: req.VehicleType,
		OwnerName:   req.OwnerName,
		Email:       req.Email,
		Phone:       req.Phone,
		AreaID:      req.ParkingAreaID,
		SlotNumber:  req.SlotNumber,
	}
}

type rawReleaseReq struct {
	ExitTime *time.Time `json:"exit_time"`
}

type releaseReq struct {
	VehicleID uuid.UUID
	ExitTime  *time.Time
}

// DserReleaseReq deserializes a release request. Its body is optional
// and may only carry an RFC 3339 exit_time.
func (rs *resource) DserReleaseReq(c *gin.Context) *releaseReq {
	vid, ok := serdser.ParamUUID(c, "vid")
	if !ok {
		return nil
	}
	req := &rawReleaseReq{}
	if ok := serdser.BindOptional(c, req, binding.JSON); !ok {
		return nil
	}
	return &releaseReq{VehicleID: vid, ExitTime: req.ExitTime}
}

type assignmentResp struct {
	Vehicle *model.Vehicle    `json:"vehicle"`
	Area    model.AreaSummary `json:"area"`
}

func SerAssignment(res *slotsuc.Assignment) assignmentResp {
	return assignmentResp{Vehicle: res.Vehicle, Area: res.Area}
}
