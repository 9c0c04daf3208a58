// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package telemetry

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/momeni/slotkeeper/pkg/core/model"
	"github.com/momeni/slotkeeper/pkg/core/usecase/slotsuc"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/momeni/slotkeeper/pkg/adapter/telemetry"

// ChangesCounter is the name of the counter of committed area changes.
const ChangesCounter = "skweb.area.changes"

// Notifier decorates a slotsuc.Notifier, counting each notified change
// by its kind before passing it to the wrapped notifier.
type Notifier struct {
	next    slotsuc.Notifier
	changes metric.Int64Counter
}

// NewNotifier wraps next using a counter from the mp meter provider.
func NewNotifier(
	next slotsuc.Notifier, mp metric.MeterProvider,
) (*Notifier, error) {
	c, err := mp.Meter(instrumentationName).Int64Counter(
		ChangesCounter,
		metric.WithDescription("Number of committed parking area changes"),
		metric.WithUnit("{change}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", ChangesCounter, err)
	}
	return &Notifier{next: next, changes: c}, nil
}

// Notify implements the slotsuc.Notifier interface.
func (n *Notifier) Notify(
	ctx context.Context, areaID uuid.UUID, kind model.ChangeKind,
) {
	n.changes.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", string(kind)),
	))
	n.next.Notify(ctx, areaID, kind)
}
