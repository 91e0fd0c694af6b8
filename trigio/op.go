// Copyright 2025 The gwtrig Authors
// Use of this source code is governed by the BSD 3-clause
// license that can be found in the LICENSE file.

// Package trigio moves event-trigger records through proio streams.
//
// Triggers travel one per proio event, as a model/trigger.Trigger entry
// tagged "Trigger".  Processing is expressed as an array of ops applied to
// a channel of events, in the order given.
package trigio

import (
	"github.com/proio-org/go-proio"
)

type Op interface {
	GetDescription() string
	Run(input <-chan *proio.Event) <-chan *proio.Event
}

type OpArray []Op

func (ops OpArray) Run(stream <-chan *proio.Event) <-chan *proio.Event {
	for _, o := range ops {
		stream = o.Run(stream)
	}
	return stream
}

func (ops OpArray) Sink(stream <-chan *proio.Event) {
	for range ops.Run(stream) {
	}
}

// EventProcessor mutates a single event in place.
type EventProcessor func(*proio.Event)

// EventOp applies an EventProcessor to every event, possibly concurrently.
// Output order matches input order regardless of concurrency.
type EventOp struct {
	Description    string
	EventProcessor EventProcessor
	Concurrency    int
	MaxEventBuf    int
}

func (o EventOp) GetDescription() string {
	return o.Description
}

func (o EventOp) Run(input <-chan *proio.Event) <-chan *proio.Event {
	if o.Concurrency == 0 {
		o.Concurrency = 1
	}
	if o.MaxEventBuf == 0 {
		o.MaxEventBuf = 100
	}

	output := make(chan *proio.Event, o.MaxEventBuf)

	go func() {
		defer close(output)

		inFlight := make(map[uint64]*proio.Event)
		finished := make(map[uint64]*proio.Event)
		done := make(chan uint64)
		defer close(done)

		collect := func() {
			index := <-done
			finished[index] = inFlight[index]
			delete(inFlight, index)
		}

		nRead := uint64(0)
		nWritten := uint64(0)
		flush := func() {
			for {
				event, ok := finished[nWritten]
				if !ok {
					return
				}
				output <- event
				delete(finished, nWritten)
				nWritten++
			}
		}

		for event := range input {
			go func(event *proio.Event, index uint64) {
				o.EventProcessor(event)
				done <- index
			}(event, nRead)
			inFlight[nRead] = event
			nRead++

			for len(inFlight) >= o.Concurrency || len(finished) >= o.MaxEventBuf {
				collect()
				flush()
			}
		}

		for len(inFlight) > 0 {
			collect()
		}
		flush()
	}()

	return output
}

// StreamProcessor consumes an input channel and forwards whatever events it
// keeps.  Filters are StreamProcessors that simply do not forward.
type StreamProcessor func(<-chan *proio.Event, chan<- *proio.Event)

type StreamOp struct {
	Description     string
	StreamProcessor StreamProcessor
	MaxEventBuf     int
}

func (o StreamOp) GetDescription() string {
	return o.Description
}

func (o StreamOp) Run(input <-chan *proio.Event) <-chan *proio.Event {
	if o.MaxEventBuf == 0 {
		o.MaxEventBuf = 100
	}

	output := make(chan *proio.Event, o.MaxEventBuf)
	go func() {
		defer close(output)
		o.StreamProcessor(input, output)
	}()
	return output
}
