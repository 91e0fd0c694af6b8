// Copyright 2025 The gwtrig Authors
// Use of this source code is governed by the BSD 3-clause
// license that can be found in the LICENSE file.

// Package live serves a rolling trigger scatter to browsers over websocket.
package live

import (
	"strconv"
	"sync"
	"time"

	"github.com/gwdetchar/gwtrig/live/message"
	"github.com/gwdetchar/gwtrig/model/trigger"
	gwplot "github.com/gwdetchar/gwtrig/plot"

	"gonum.org/v1/plot/vg"
)

// TriggerShow keeps the most recent triggers and renders them into SVG
// frames for connected clients.  Frames are re-rendered at most once per
// FramePeriod.
type TriggerShow struct {
	FramePeriod time.Duration
	NSample     int
	YColumn     string
	LogY        bool

	ring     []*trigger.Trigger
	rate     func(float64) float64
	lastRate float64

	frame        *message.Msg
	frameCount   uint64
	frameExpired bool
	lastTime     float64

	sync.RWMutex
}

func (s *TriggerShow) Frame() (*message.Msg, uint64) {
	s.RLock()
	defer s.RUnlock()

	return s.frame, s.frameCount
}

func (s *TriggerShow) Execute(cmd *message.Cmd) error {
	s.Lock()
	defer s.Unlock()

	switch cmd.Command {
	case "set params":
		for param, value := range cmd.Metadata {
			switch param {
			case "nsample":
				nSample, err := strconv.ParseInt(value, 10, 64)
				if err == nil && nSample > 0 {
					s.NSample = int(nSample)
				}
			case "y column":
				if _, err := trigger.Column(&trigger.Trigger{}, value); err == nil {
					s.YColumn = value
				}
			case "log y":
				logY, err := strconv.ParseBool(value)
				if err == nil {
					s.LogY = logY
				}
			}
		}
	case "reset":
		s.ring = s.ring[:0]
	}

	return nil
}

func (s *TriggerShow) AddTrigger(t *trigger.Trigger) {
	s.Lock()
	defer s.Unlock()

	if s.NSample == 0 {
		s.NSample = 500
	}
	if s.rate == nil {
		s.rate = gwplot.MakeSmoother(0.05, 0)
	}
	if s.lastTime > 0 && t.Time > s.lastTime {
		s.lastRate = s.rate(1 / (t.Time - s.lastTime))
	}
	s.lastTime = t.Time

	s.ring = append(s.ring, t)
	if len(s.ring) > s.NSample {
		s.ring = s.ring[len(s.ring)-s.NSample:]
	}

	if s.frameExpired {
		s.frameExpired = false
		go s.updateFrame()
	}
}

func (s *TriggerShow) updateFrame() {
	s.Lock()
	defer s.Unlock()

	if len(s.ring) == 0 {
		return
	}

	start := s.ring[0].Time
	stop := s.ring[len(s.ring)-1].Time + 1
	cfg := gwplot.Config{
		Title:   "Live triggers",
		YColumn: s.YColumn,
		Epoch:   start,
		Start:   start,
		Stop:    stop,
		LogY:    s.LogY,
	}
	p, err := gwplot.Scatter(cfg, s.ring)
	if err != nil {
		return
	}
	payload, err := gwplot.Render(p, 6*vg.Inch, 3*vg.Inch, "svg")
	if err != nil {
		return
	}

	s.frame = &message.Msg{
		Type:     "frame",
		Metadata: make(map[string]string),
		Payload:  payload,
	}
	s.frame.Metadata["nsample"] = strconv.Itoa(s.NSample)
	s.frame.Metadata["ntriggers"] = strconv.Itoa(len(s.ring))
	s.frame.Metadata["epoch"] = strconv.FormatFloat(start, 'f', 4, 64)
	s.frame.Metadata["rate"] = strconv.FormatFloat(s.lastRate, 'g', 3, 64)

	s.frameCount++

	go func() {
		time.Sleep(s.FramePeriod)
		s.Lock()
		defer s.Unlock()
		s.frameExpired = true
	}()
}

func (s *TriggerShow) UpdateFrame() {
	s.updateFrame()
}

func (s *TriggerShow) Init() {
	s.Lock()
	defer s.Unlock()

	if s.FramePeriod == 0 {
		s.FramePeriod = time.Second
	}
	if s.YColumn == "" {
		s.YColumn = "frequency"
	}
	s.frameExpired = true
}
