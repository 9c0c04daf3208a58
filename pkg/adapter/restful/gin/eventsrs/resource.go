// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package eventsrs realizes the area events resource, upgrading the
// subscription requests to websocket connections which receive the
// committed changes of parking areas.
package eventsrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Broadcaster accepts the websocket subscriptions. It is implemented
// by the wshub.Hub.
type Broadcaster interface {
	ServeHTTP(w http.ResponseWriter, r *http.Request)
}

// Register binds the GET request to events (optionally filtered by
// the area_id query parameter) to the b broadcaster.
func Register(r *gin.RouterGroup, b Broadcaster) {
	r.GET("events", gin.WrapH(b))
}
