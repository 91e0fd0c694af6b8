// Copyright 2025 The gwtrig Authors
// Use of this source code is governed by the BSD 3-clause
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"flag"
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gwdetchar/gwtrig/model/trigger"
	gwplot "github.com/gwdetchar/gwtrig/plot"
	"github.com/gwdetchar/gwtrig/segments"
	"github.com/gwdetchar/gwtrig/trigio"

	"github.com/go-redis/redis"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
)

var (
	start      = flag.Float64("start", 0, "GPS start of the plotted span")
	stop       = flag.Float64("stop", 0, "GPS end of the plotted span")
	plotType   = flag.String("type", "scatter", "plot type: scatter or tile")
	xColumn    = flag.String("x", "time", "x-axis trigger column")
	yColumn    = flag.String("y", "frequency", "y-axis trigger column")
	colorBy    = flag.String("color", "snr", "rank column mapped onto the color scale")
	logY       = flag.Bool("logy", true, "logarithmic y axis")
	threshold  = flag.Float64("thresh", 0, "minimum value of the rank column")
	epoch      = flag.Float64("epoch", 0, "GPS epoch for the time axis, defaults to -start")
	stateFlag  = flag.String("state-flag", "", "detector-state flag IFO:NAME:VERSION to filter by")
	segmentURL = flag.String("segment-url", "https://segments.ligo.org", "segment database URL")
	nx         = flag.Int("nx", 100, "tile plot bins along x")
	ny         = flag.Int("ny", 50, "tile plot bins along y")
	width      = flag.Float64("width", 8, "plot width in inches")
	height     = flag.Float64("height", 4, "plot height in inches")
	outFile    = flag.String("o", "triggers.png", "output file, format from extension (.png or .svg)")
	title      = flag.String("title", "", "plot title")
)

func printUsage() {
	fmt.Fprintf(os.Stderr,
		`Usage: `+os.Args[0]+` [options] <trigger-url>...

Renders a scatter or tile plot of the event triggers found in the given
proio streams (file paths, file:// directories, or gs:// locations),
optionally restricted to the active segments of a detector-state flag.

options:
`,
	)
	flag.PrintDefaults()
}

func main() {
	flag.Usage = printUsage
	flag.Parse()

	if flag.NArg() == 0 {
		printUsage()
		log.Fatal("invalid arguments: no trigger streams")
	}
	if *stop <= *start {
		log.Fatal("invalid arguments: need -start < -stop")
	}
	if *epoch == 0 {
		*epoch = *start
	}
	if err := checkColumns(*xColumn, *yColumn, *colorBy); err != nil {
		log.Fatal("invalid arguments: ", err)
	}

	ctx := context.Background()
	credentials := os.Getenv("GCS_CREDENTIALS")

	var active segments.SegmentList
	if *stateFlag != "" {
		var err error
		active, err = queryActive(ctx, *stateFlag)
		if err != nil {
			log.Fatal(err)
		}
		log.Printf("flag %v active for %.1f of %.1f s\n",
			*stateFlag, active.Livetime(), *stop-*start)
	}

	var trigs []*trigger.Trigger
	for _, arg := range flag.Args() {
		collected, err := readTriggers(ctx, arg, credentials, active)
		if err != nil {
			log.Fatal(err)
		}
		trigs = append(trigs, collected...)
	}
	log.Println(len(trigs), "triggers to plot")

	cfg := gwplot.Config{
		Title:       *title,
		XColumn:     *xColumn,
		YColumn:     *yColumn,
		ColorColumn: *colorBy,
		Epoch:       *epoch,
		Start:       *start,
		Stop:        *stop,
		LogY:        *logY,
		Active:      active,
	}
	if cfg.Title == "" {
		cfg.Title = fmt.Sprintf("Event triggers [%d, %d)", int64(*start), int64(*stop))
	}

	p, err := buildPlot(cfg, trigs)
	if err != nil {
		log.Fatal(err)
	}

	format := strings.TrimPrefix(filepath.Ext(*outFile), ".")
	data, err := gwplot.Render(p, vg.Length(*width)*vg.Inch, vg.Length(*height)*vg.Inch, format)
	if err != nil {
		log.Fatal(err)
	}
	if err := ioutil.WriteFile(*outFile, data, 0644); err != nil {
		log.Fatal(err)
	}
	log.Println("wrote", *outFile)
}

func buildPlot(cfg gwplot.Config, trigs []*trigger.Trigger) (*plot.Plot, error) {
	switch *plotType {
	case "scatter":
		return gwplot.Scatter(cfg, trigs)
	case "tile":
		return gwplot.Tile(cfg, trigs, *nx, *ny)
	}
	return nil, fmt.Errorf("unknown plot type %q", *plotType)
}

// checkColumns rejects unknown column names up front, before the stream
// filters silently drop every trigger.
func checkColumns(names ...string) error {
	for _, name := range names {
		if _, err := trigger.Column(&trigger.Trigger{}, name); err != nil {
			return err
		}
	}
	return nil
}

func readTriggers(ctx context.Context, urlString, credentials string, active segments.SegmentList) ([]*trigger.Trigger, error) {
	files, err := trigio.ListTriggerFiles(ctx, urlString, credentials, *start, *stop)
	if err != nil {
		log.Println("trigger file listing for", urlString, "failed:", err)
	}
	if len(files) == 0 {
		// treat the argument as a single stream
		files = []trigio.TriggerFile{{Name: urlString}}
	}

	ops := trigio.OpArray{
		trigio.StreamOp{
			Description:     "Keep triggers inside the plotted span",
			StreamProcessor: trigio.Span(*start, *stop),
		},
	}
	if *threshold > 0 {
		ops = append(ops, trigio.StreamOp{
			Description:     "Apply the rank threshold",
			StreamProcessor: trigio.Threshold(*colorBy, *threshold),
		})
	}
	if len(active) > 0 {
		ops = append(ops, trigio.StreamOp{
			Description:     "Keep triggers in active segments",
			StreamProcessor: trigio.SegmentFilter(active, false),
		})
	}

	var trigs []*trigger.Trigger
	for _, tf := range files {
		reader, err := trigio.GetReader(ctx, tf.Name, credentials)
		if err != nil {
			return nil, err
		}
		trigs = append(trigs, trigio.Collect(ops.Run(reader.ScanEvents(10)))...)
		reader.Close()
	}
	return trigs, nil
}

func queryActive(ctx context.Context, flagName string) (segments.SegmentList, error) {
	client := segments.NewClient(*segmentURL)
	cache := &segments.Cache{TTL: time.Hour}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cache.Redis = redis.NewClient(&redis.Options{Addr: addr})
		defer cache.Redis.Close()
	}
	return cache.QueryActive(ctx, client, flagName, *start, *stop)
}
