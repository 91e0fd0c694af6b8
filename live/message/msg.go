// Copyright 2025 The gwtrig Authors
// Use of this source code is governed by the BSD 3-clause
// license that can be found in the LICENSE file.

package message

import (
	"context"
	"encoding/json"
	"log"

	"github.com/gwdetchar/gwtrig/model/trigger"

	"github.com/go-redis/redis"
	"github.com/gorilla/websocket"
)

type Msg struct {
	Type     string
	Metadata map[string]string
	Payload  []byte
}

func PublishJsonMsg(client *redis.Client, channel string, msg *Msg) error {
	msgBytes, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	client.Publish(channel, string(msgBytes))
	return nil
}

type Cmd struct {
	Command  string
	Metadata map[string]string
}

type Executer interface {
	Execute(*Cmd) error
}

// ReceiveWsCmds decodes JSON commands from a websocket until it closes or
// the context is cancelled.
func ReceiveWsCmds(ctx context.Context, conn *websocket.Conn) <-chan *Cmd {
	cmds := make(chan *Cmd)

	go func() {
		defer close(cmds)
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			cmd := &Cmd{}
			if err := json.Unmarshal(data, cmd); err != nil {
				log.Println("bad command:", err)
				continue
			}
			select {
			case cmds <- cmd:
			case <-ctx.Done():
				return
			}
		}
	}()

	return cmds
}

// PublishTrigger broadcasts a trigger record as JSON on a redis channel.
func PublishTrigger(client *redis.Client, channel string, t *trigger.Trigger) error {
	data, err := json.Marshal(t)
	if err != nil {
		return err
	}
	return client.Publish(channel, string(data)).Err()
}

// ReceivePubSubTriggers subscribes to a redis channel of JSON trigger
// records published by the processing tools.
func ReceivePubSubTriggers(ctx context.Context, addr, channel string) <-chan *trigger.Trigger {
	trigs := make(chan *trigger.Trigger)

	go func() {
		defer close(trigs)

		redisClient := redis.NewClient(&redis.Options{Addr: addr})
		defer redisClient.Close()
		sub := redisClient.Subscribe(channel)
		if _, err := sub.Receive(); err != nil {
			log.Println("sub.Receive():", err)
			return
		}
		defer sub.Close()

		log.Println("listening for triggers on channel", channel)
		defer log.Println("done listening for triggers on channel", channel)

		msgs := sub.ChannelSize(100)
		for {
			select {
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				t := &trigger.Trigger{}
				if err := json.Unmarshal([]byte(msg.Payload), t); err != nil {
					log.Println("bad trigger payload:", err)
					continue
				}
				select {
				case trigs <- t:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return trigs
}
