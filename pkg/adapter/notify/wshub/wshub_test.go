// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package wshub_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/momeni/slotkeeper/pkg/adapter/notify/wshub"
	"github.com/momeni/slotkeeper/pkg/core/model"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T) (*wshub.Hub, string) {
	h := wshub.New()
	srv := httptest.NewServer(h)
	t.Cleanup(func() {
		require.NoError(t, h.Close())
		srv.Close()
	})
	return h, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func dial(t *testing.T, u string) *websocket.Conn {
	conn, resp, err := websocket.DefaultDialer.Dial(u, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func read(t *testing.T, conn *websocket.Conn) wshub.Message {
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	typ, data, err := conn.ReadMessage()
	require.NoError(t, err)
	require.Equal(t, websocket.TextMessage, typ)
	var m wshub.Message
	require.NoError(t, json.Unmarshal(data, &m))
	return m
}

func waitFor(t *testing.T, h *wshub.Hub, n int) {
	require.Eventually(t, func() bool {
		return h.Len() == n
	}, 5*time.Second, 10*time.Millisecond)
}

func TestBroadcast(t *testing.T) {
	h, u := serve(t)
	a, b := uuid.New(), uuid.New()
	all := dial(t, u)
	onlyB := dial(t, u+"?area_id="+b.String())
	waitFor(t, h, 2)

	ctx := context.Background()
	h.Notify(ctx, a, model.ChangeSlotAssigned)
	h.Notify(ctx, b, model.ChangeSlotReleased)

	m := read(t, all)
	require.Equal(t, a, m.AreaID)
	require.Equal(t, model.ChangeSlotAssigned, m.Kind)
	require.False(t, m.At.IsZero())
	m = read(t, all)
	require.Equal(t, b, m.AreaID)
	require.Equal(t, model.ChangeSlotReleased, m.Kind)

	m = read(t, onlyB)
	require.Equal(t, b, m.AreaID)
	require.Equal(t, model.ChangeSlotReleased, m.Kind)
}

func TestDisconnectedSubscriberIsRemoved(t *testing.T) {
	h, u := serve(t)
	conn := dial(t, u)
	waitFor(t, h, 1)
	require.NoError(t, conn.Close())
	waitFor(t, h, 0)
	h.Notify(context.Background(), uuid.New(), model.ChangeSlotAssigned)
}

func TestCloseDisconnectsSubscribers(t *testing.T) {
	h, u := serve(t)
	conn := dial(t, u)
	waitFor(t, h, 1)
	require.NoError(t, h.Close())
	waitFor(t, h, 0)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, _, err := conn.ReadMessage()
	require.True(t,
		websocket.IsCloseError(err, websocket.CloseGoingAway),
		"unexpected error: %v", err,
	)
}

func TestInvalidAreaFilter(t *testing.T) {
	_, u := serve(t)
	_, resp, err := websocket.DefaultDialer.Dial(u+"?area_id=x", nil)
	require.ErrorIs(t, err, websocket.ErrBadHandshake)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
