// Copyright 2025 The gwtrig Authors
// Use of this source code is governed by the BSD 3-clause
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gwdetchar/gwtrig/live"
	"github.com/gwdetchar/gwtrig/live/message"
	"github.com/gwdetchar/gwtrig/trigio"

	"github.com/alicebob/miniredis"
	"github.com/go-redis/redis"
	"github.com/gorilla/mux"
	"github.com/sevlyar/go-daemon"
	"github.com/skratchdot/open-golang/open"
)

var (
	openBrowser = flag.Bool("b", false, "open a browser window and connect to the server")
	daemonize   = flag.Bool("d", false, "run the server as a daemon")
	streamURL   = flag.String("stream", "", "proio trigger stream to follow, in addition to the redis channel")
	channel     = flag.String("channel", "gwtrig triggers", "redis channel of incoming trigger records")
)

func printUsage() {
	fmt.Fprintf(os.Stderr,
		`Usage: `+os.Args[0]+` [options]

Serves a live rolling scatter of incoming event triggers.  Triggers arrive
on a redis pub/sub channel and, optionally, from a proio stream.

options:
`,
	)
	flag.PrintDefaults()
}

func main() {
	flag.Usage = printUsage
	flag.Parse()

	if flag.NArg() != 0 {
		printUsage()
		log.Fatal("invalid arguments")
	}

	if *daemonize {
		ctxt := &daemon.Context{}
		d, err := ctxt.Reborn()
		if err != nil {
			log.Fatal("unable to daemonize:", err)
		}
		if d != nil {
			return
		}
		log.Println("daemon started")
	}

	// Define redis connection
	redisAddr := os.Getenv("REDIS_ADDR")
	if len(redisAddr) == 0 {
		s, err := miniredis.Run()
		if err != nil {
			log.Fatal("unable to start miniredis server:", err)
		}
		redisAddr = s.Addr()
		log.Println("using in-process miniredis at", redisAddr)
	}
	redisClient := redis.NewClient(&redis.Options{Addr: redisAddr})
	defer redisClient.Close()
	if ping := redisClient.Ping(); ping.Err() != nil {
		log.Fatalf("unable to ping redis server: %v\n", ping.Err())
	}

	show := &live.TriggerShow{}
	show.Init()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		for t := range message.ReceivePubSubTriggers(ctx, redisAddr, *channel) {
			show.AddTrigger(t)
		}
	}()
	if *streamURL != "" {
		go followStream(ctx, show)
	}
	go publishFrames(ctx, redisClient, show)

	clientHandler := &live.ClientHandler{Show: show}
	clientHandler.EnableCompression = true

	port := os.Getenv("PORT")
	if len(port) == 0 {
		port = "8080"
	}
	router := mux.NewRouter()
	router.Handle("/client", clientHandler)
	router.PathPrefix("/").Handler(http.StripPrefix("/", http.FileServer(live.WebdataBox)))

	srv := &http.Server{Addr: ":" + port, Handler: router}

	if *openBrowser {
		go func() {
			time.Sleep(500 * time.Millisecond)
			open.Run("http://localhost:" + port)
		}()
	}

	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt)
		<-c
		cancel()
		srv.Shutdown(context.Background())
	}()

	log.Println("serving on port", port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}

// publishFrames rebroadcasts each rendered frame on redis for headless
// consumers following the show without a websocket connection.
func publishFrames(ctx context.Context, client *redis.Client, show *live.TriggerShow) {
	var lastCount uint64
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			frame, count := show.Frame()
			if frame == nil || count == lastCount {
				continue
			}
			lastCount = count
			if err := message.PublishJsonMsg(client, *channel+" frames", frame); err != nil {
				log.Println("frame publish:", err)
			}
		case <-ctx.Done():
			return
		}
	}
}

func followStream(ctx context.Context, show *live.TriggerShow) {
	reader, err := trigio.GetReader(ctx, *streamURL, os.Getenv("GCS_CREDENTIALS"))
	if err != nil {
		log.Println("unable to open trigger stream:", err)
		return
	}
	defer reader.Close()

	for event := range reader.ScanEvents(10) {
		if t := trigio.FirstTrigger(event); t != nil {
			show.AddTrigger(t)
		}
		select {
		case <-ctx.Done():
			return
		default:
		}
	}
}
