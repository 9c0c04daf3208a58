// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package areasrs

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/momeni/slotkeeper/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/slotkeeper/pkg/core/model"
	"github.com/momeni/slotkeeper/pkg/core/usecase/slotsuc"
)

type rawCreateAreaReq struct {
	Name       string         `json:"name"`
	TotalSlots int            `json:"total_slots"`
	Capacity   model.Capacity `json:"capacity"`
	Rates      model.Rates    `json:"hourly_rates"`
	Active     *bool          `json:"active"`
}

// DserCreateAreaReq deserializes a create area request. A missing
// active field makes the area active.
func (rs *resource) DserCreateAreaReq(c *gin.Context) *slotsuc.NewArea {
	req := &rawCreateAreaReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	return &slotsuc.NewArea{
		Name:       req.Name,
		TotalSlots: req.TotalSlots,
		Capacity:   req.Capacity,
		Rates:      req.Rates,
		Active:     active,
	}
}

type rawUpdateCapacityReq struct {
	Name       *string         `json:"name"`
	TotalSlots *int            `json:"total_slots"`
	Capacity   *model.Capacity `json:"capacity"`
	Rates      *model.Rates    `json:"hourly_rates"`
	Active     *bool           `json:"active"`
}

func (rs *resource) DserUpdateCapacityReq(c *gin.Context) *slotsuc.CapacityUpdate {
	req := &rawUpdateCapacityReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil
	}
	return &slotsuc.CapacityUpdate{
		Name:       req.Name,
		TotalSlots: req.TotalSlots,
		Capacity:   req.Capacity,
		Rates:      req.Rates,
		Active:     req.Active,
	}
}

type availabilityResp struct {
	Slots []model.Slot      `json:"slots"`
	Area  model.AreaSummary `json:"area"`
}

func SerAvailability(av *slotsuc.Availability) availabilityResp {
	return availabilityResp{Slots: av.Slots, Area: av.Area}
}
