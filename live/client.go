// Copyright 2025 The gwtrig Authors
// Use of this source code is governed by the BSD 3-clause
// license that can be found in the LICENSE file.

package live

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gwdetchar/gwtrig/live/message"

	"github.com/gorilla/websocket"
)

// ClientHandler upgrades /client requests and streams show frames to the
// browser, executing any commands the client sends back.
type ClientHandler struct {
	Show *TriggerShow

	websocket.Upgrader
}

func (h *ClientHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c, err := h.Upgrade(w, r, nil)
	if err != nil {
		log.Println(err)
		return
	}
	defer c.Close()
	log.Println("starting client ws serve for", r.RemoteAddr)
	defer log.Println("stopped client ws serve for", r.RemoteAddr)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	go func() {
		defer cancel()
		for cmd := range message.ReceiveWsCmds(ctx, c) {
			if err := h.Show.Execute(cmd); err != nil {
				log.Println("command:", err)
			}
			h.Show.UpdateFrame()
		}
	}()

	var lastCount uint64
	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			frame, count := h.Show.Frame()
			if frame == nil || count == lastCount {
				continue
			}
			lastCount = count
			data, err := json.Marshal(frame)
			if err != nil {
				continue
			}
			c.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}
