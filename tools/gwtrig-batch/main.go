// Copyright 2025 The gwtrig Authors
// Use of this source code is governed by the BSD 3-clause
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gwdetchar/gwtrig/batch"
	"github.com/gwdetchar/gwtrig/framecache"
	"github.com/gwdetchar/gwtrig/live/message"
	"github.com/gwdetchar/gwtrig/model/trigger"
	"github.com/gwdetchar/gwtrig/segments"
	"github.com/gwdetchar/gwtrig/trigio"

	"github.com/go-redis/redis"
)

type dirList []string

func (d *dirList) String() string {
	return strings.Join(*d, ",")
}

func (d *dirList) Set(value string) error {
	*d = append(*d, value)
	return nil
}

var (
	start      = flag.Float64("start", 0, "GPS start of the search span")
	stop       = flag.Float64("stop", 0, "GPS end of the search span")
	rank       = flag.String("rank", "snr", "trigger column to rank by")
	threshold  = flag.Float64("thresh", 8, "minimum value of the rank column")
	window     = flag.Float64("window", 8, "minimum time separation between selected triggers, in seconds")
	maxJobs    = flag.Int("max", 10, "maximum number of scan jobs, 0 for unlimited")
	pad        = flag.Float64("pad", 32, "seconds of frame data needed either side of a trigger")
	stateFlag  = flag.String("state-flag", "", "detector-state flag IFO:NAME:VERSION to filter by")
	segmentURL = flag.String("segment-url", "https://segments.ligo.org", "segment database URL")
	profileTom = flag.String("profile", "", "TOML job profile for the scan executable")
	workflow   = flag.String("workflow", "wscan", "workflow name for the DAG files")
	outDir     = flag.String("outdir", "wscan-workspace", "workspace directory for DAG, caches and results")
	summary    = flag.Bool("summary", false, "append a summary job depending on every scan")
)

var frameDirs dirList

func printUsage() {
	fmt.Fprintf(os.Stderr,
		`Usage: `+os.Args[0]+` [options] <trigger-url>...

Selects the loudest ranked triggers in a time window, separates them in
time, builds a frame cache per selection, and writes an HTCondor DAG with
one scan job per selected trigger.

options:
`,
	)
	flag.PrintDefaults()
}

func main() {
	flag.Var(&frameDirs, "frame-dir", "directory of frame files, repeatable")
	flag.Usage = printUsage
	flag.Parse()

	if flag.NArg() == 0 {
		printUsage()
		log.Fatal("invalid arguments: no trigger streams")
	}
	if *stop <= *start {
		log.Fatal("invalid arguments: need -start < -stop")
	}
	if len(frameDirs) == 0 {
		log.Fatal("invalid arguments: need at least one -frame-dir")
	}
	if err := checkColumns(*rank); err != nil {
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
	}

	trigs, err := readTriggers(ctx, flag.Args(), credentials, active)
	if err != nil {
		log.Fatal(err)
	}
	log.Println(len(trigs), "triggers above threshold")

	selected, err := trigio.SelectLoudest(trigs, *rank, *window, *maxJobs)
	if err != nil {
		log.Fatal(err)
	}
	log.Println(len(selected), "triggers selected")

	publishSelection(selected)

	profile, err := batch.LoadProfile(*profileTom)
	if err != nil {
		log.Fatal(err)
	}

	cacheDir := filepath.Join(*outDir, "caches")
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		log.Fatal(err)
	}

	dag := batch.NewDAG(*workflow)
	for i, t := range selected {
		cachePath, err := writeCache(cacheDir, i, t)
		if err != nil {
			log.Fatal(err)
		}

		job := batch.Job{
			Name:       fmt.Sprintf("scan-%03d-%d", i, int64(t.Time)),
			GPSTime:    t.Time,
			FrameCache: cachePath,
			OutDir:     filepath.Join(*outDir, fmt.Sprintf("scan-%03d", i)),
			Retry:      profile.Retries,
		}
		if err := dag.AddJob(job); err != nil {
			log.Fatal(err)
		}
	}

	if *summary {
		job := batch.Job{
			Name:    "summary",
			GPSTime: *stop,
			OutDir:  *outDir,
			Retry:   profile.Retries,
		}
		if err := dag.AddJob(job); err != nil {
			log.Fatal(err)
		}
		for _, scan := range dag.Jobs()[:len(dag.Jobs())-1] {
			if err := dag.AddDependency(scan.Name, "summary"); err != nil {
				log.Fatal(err)
			}
		}
	}

	dagPath, err := batch.WriteWorkspace(*outDir, profile, dag)
	if err != nil {
		log.Fatal(err)
	}
	log.Println("wrote", dagPath)
	fmt.Println(dagPath)
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

func readTriggers(ctx context.Context, args []string, credentials string, active segments.SegmentList) ([]*trigger.Trigger, error) {
	ops := trigio.OpArray{
		trigio.StreamOp{
			Description:     "Keep triggers inside the search span",
			StreamProcessor: trigio.Span(*start, *stop),
		},
		trigio.StreamOp{
			Description:     "Apply the rank threshold",
			StreamProcessor: trigio.Threshold(*rank, *threshold),
		},
	}
	if len(active) > 0 {
		ops = append(ops, trigio.StreamOp{
			Description:     "Keep triggers in active segments",
			StreamProcessor: trigio.SegmentFilter(active, false),
		})
	}

	var trigs []*trigger.Trigger
	for _, arg := range args {
		files, err := trigio.ListTriggerFiles(ctx, arg, credentials, *start, *stop)
		if err != nil {
			log.Println("trigger file listing for", arg, "failed:", err)
		}
		if len(files) == 0 {
			// treat the argument as a single stream
			files = []trigio.TriggerFile{{Name: arg}}
		}
		for _, tf := range files {
			reader, err := trigio.GetReader(ctx, tf.Name, credentials)
			if err != nil {
				return nil, err
			}
			trigs = append(trigs, trigio.Collect(ops.Run(reader.ScanEvents(10)))...)
			reader.Close()
		}
	}
	return trigs, nil
}

func writeCache(cacheDir string, i int, t *trigger.Trigger) (string, error) {
	cache, err := framecache.Scan(frameDirs, t.Time-*pad, t.Time+*pad)
	if err != nil {
		return "", err
	}
	if gaps := cache.Gaps(t.Time-*pad, t.Time+*pad); len(gaps) > 0 {
		return "", fmt.Errorf("no frame data for trigger at %.4f over %v", t.Time, gaps)
	}
	cachePath := filepath.Join(cacheDir, fmt.Sprintf("scan-%03d.lcf", i))
	if err := cache.WriteFile(cachePath); err != nil {
		return "", err
	}
	return cachePath, nil
}

func publishSelection(selected []*trigger.Trigger) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()
	for _, t := range selected {
		if err := message.PublishTrigger(client, "gwtrig triggers", t); err != nil {
			log.Println("publish selection:", err)
			return
		}
	}
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
