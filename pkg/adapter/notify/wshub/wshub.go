// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package wshub implements the slotsuc.Notifier interface by
// broadcasting the committed area changes to websocket subscribers.
// Subscribers which can not keep up with the broadcast messages are
// disconnected, so a slow client never blocks a use case.
package wshub

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/momeni/slotkeeper/pkg/core/log"
	"github.com/momeni/slotkeeper/pkg/core/model"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
	sendBuffer = 64
)

// Message is the JSON document which is sent to the subscribers for
// each committed area change.
type Message struct {
	AreaID uuid.UUID        `json:"area_id"`
	Kind   model.ChangeKind `json:"kind"`
	At     time.Time        `json:"at"`
}

type client struct {
	conn   *websocket.Conn
	send   chan []byte
	areaID uuid.UUID // uuid.Nil subscribes to all areas
}

// Hub keeps the websocket subscribers and broadcasts the notified
// changes to them. A Hub must be created by the New function.
type Hub struct {
	upgrader websocket.Upgrader
	now      func() time.Time

	mu      sync.Mutex
	clients map[*client]struct{}
	closed  bool
}

// New instantiates a Hub. The websocket upgrader of the Hub accepts
// all origins because subscribers are authorized by outer middlewares.
func New() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		now:     time.Now,
		clients: make(map[*client]struct{}),
	}
}

// Notify implements the slotsuc.Notifier interface. It never blocks
// on the subscribers.
func (h *Hub) Notify(
	ctx context.Context, areaID uuid.UUID, kind model.ChangeKind,
) {
	msg, err := json.Marshal(Message{
		AreaID: areaID, Kind: kind, At: h.now().UTC(),
	})
	if err != nil {
		log.Error(ctx, "encoding area change", log.Err("err", err))
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		if c.areaID != uuid.Nil && c.areaID != areaID {
			continue
		}
		select {
		case c.send <- msg:
		default:
			log.Warn(ctx, "dropping slow websocket subscriber",
				slog.String("remote", c.conn.RemoteAddr().String()),
			)
			h.removeLocked(c)
		}
	}
}

// ServeHTTP upgrades the r request to a websocket connection and keeps
// it subscribed until the peer disconnects or the Hub is closed.
// The optional area_id query parameter limits the subscription to the
// changes of one parking area.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var areaID uuid.UUID
	if s := r.URL.Query().Get("area_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			http.Error(w, "area_id is not UUID", http.StatusBadRequest)
			return
		}
		areaID = id
	}
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn(r.Context(), "upgrading to websocket",
			log.Err("err", err),
		)
		return // Upgrade has already responded with an error
	}
	c := &client{
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
		areaID: areaID,
	}
	if !h.add(c) {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(
				websocket.CloseGoingAway, "shutting down",
			),
			time.Now().Add(writeWait),
		)
		_ = conn.Close()
		return
	}
	log.Debug(r.Context(), "websocket subscriber joined",
		log.UUID("area", areaID),
	)
	go h.writePump(c)
	h.readPump(c)
}

// Len returns the number of current subscribers.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects all subscribers and rejects the future ones.
func (h *Hub) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.clients {
		h.removeLocked(c)
	}
	return nil
}

func (h *Hub) add(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	return true
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c)
}

// removeLocked closes the send channel of c, so its writePump sends
// a close frame and closes the connection.
func (h *Hub) removeLocked(c *client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
}

// readPump discards the incoming messages and returns when the
// connection fails, e.g., when the peer closes it.
func (h *Hub) readPump(c *client) {
	defer func() {
		h.remove(c)
		_ = c.conn.Close()
	}()
	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(
						websocket.CloseGoingAway, "",
					),
				)
				return
			}
			err := c.conn.WriteMessage(websocket.TextMessage, msg)
			if err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			err := c.conn.WriteMessage(websocket.PingMessage, nil)
			if err != nil {
				return
			}
		}
	}
}
