// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package routes contains all resource packages and facilitates
// instantiation and registration of all repo, use case, and resource
// packages based on the user provided configuration settings.
package routes

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/momeni/slotkeeper/pkg/adapter/config"
	"github.com/momeni/slotkeeper/pkg/adapter/db/postgres/areasrp"
	"github.com/momeni/slotkeeper/pkg/adapter/db/postgres/usersrp"
	"github.com/momeni/slotkeeper/pkg/adapter/db/postgres/vehiclesrp"
	"github.com/momeni/slotkeeper/pkg/adapter/restful/gin/areasrs"
	"github.com/momeni/slotkeeper/pkg/adapter/restful/gin/eventsrs"
	"github.com/momeni/slotkeeper/pkg/adapter/restful/gin/vehiclesrs"
	"github.com/momeni/slotkeeper/pkg/core/repo"
	"github.com/momeni/slotkeeper/pkg/core/usecase/slotsuc"
)

// BasePath is the common prefix of all REST APIs.
const BasePath = "/api/skweb/v1"

// Register instantiates the PostgreSQL repositories and the slots use
// case based on the c configuration settings. The p connections pool
// is passed to the use case instance, so it may acquire/release
// connections and transactions on demand. These connections and
// transactions are passed to the repositories later in order to run
// the relevant queries. The n notifier receives the committed changes
// and the b broadcaster accepts their websocket subscribers.
// Possible errors will be returned after possible wrapping.
func Register(
	e *gin.Engine,
	p repo.Pool,
	c *config.Config,
	n slotsuc.Notifier,
	b eventsrs.Broadcaster,
) error {
	uc, err := c.NewSlotsUseCase(
		p, areasrp.New(), vehiclesrp.New(), usersrp.New(),
		slotsuc.WithNotifier(n),
	)
	if err != nil {
		return fmt.Errorf("creating slots use case: %w", err)
	}
	Mount(e, uc, b)
	return nil
}

// Mount registers the resources which adapt the uc use case and the
// b broadcaster under the BasePath of the e engine.
func Mount(e *gin.Engine, uc *slotsuc.UseCase, b eventsrs.Broadcaster) {
	r := e.Group(BasePath)
	areasrs.Register(r, uc)
	vehiclesrs.Register(r, uc)
	eventsrs.Register(r, b)
}
