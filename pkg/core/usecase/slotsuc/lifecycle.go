// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package slotsuc

import (
	"context"
	"errors"
	"fmt"

	"github.com/looplab/fsm"
	"github.com/momeni/slotkeeper/pkg/core/cerr"
	"github.com/momeni/slotkeeper/pkg/core/model"
)

// Vehicle lifecycle events.
const (
	eventPay  = "pay"
	eventExit = "exit"
)

// transition applies the event to the v vehicle status. An event which
// is not permitted in the current status yields a conflict error and
// leaves v intact. On success, v.Status (and v.PaymentStatus for the
// pay event) are updated. Other fields are left to the caller.
func transition(ctx context.Context, v *model.Vehicle, event string) error {
	m := fsm.NewFSM(
		string(v.Status),
		fsm.Events{
			{
				Name: eventPay,
				Src:  []string{string(model.VehicleParked)},
				Dst:  string(model.VehiclePaid),
			},
			{
				Name: eventExit,
				Src: []string{
					string(model.VehicleParked),
					string(model.VehiclePaid),
				},
				Dst: string(model.VehicleExited),
			},
		},
		fsm.Callbacks{},
	)
	if err := m.Event(ctx, event); err != nil {
		var ie fsm.InvalidEventError
		if !errors.As(err, &ie) {
			return fmt.Errorf("vehicle %s: %w", event, err)
		}
		switch model.VehicleStatus(m.Current()) {
		case model.VehicleExited:
			return cerr.Conflict(cerr.VehicleAlreadyExited, nil)
		case model.VehiclePaid:
			return cerr.Conflict(cerr.VehicleAlreadyPaid, nil)
		default:
			return cerr.Conflict(cerr.InvalidRequest, fmt.Errorf(
				"%s event is not permitted in %q status",
				event, m.Current(),
			))
		}
	}
	v.Status = model.VehicleStatus(m.Current())
	if event == eventPay {
		v.PaymentStatus = model.PaymentPaid
	}
	return nil
}
