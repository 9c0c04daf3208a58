// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package slotsuc

import (
	"context"

	"github.com/google/uuid"
	"github.com/momeni/slotkeeper/pkg/core/model"
)

// Notifier is an event sink which is informed about the committed
// changes of parking areas, e.g., in order to push them to the
// connected clients. Notify is called after the commit of a mutation,
// so a failed or rolled back operation is never announced. It should
// not block and has no way to fail the already committed operation.
type Notifier interface {
	Notify(ctx context.Context, areaID uuid.UUID, kind model.ChangeKind)
}

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, uuid.UUID, model.ChangeKind) {
}
