// Copyright 2025 The gwtrig Authors
// Use of this source code is governed by the BSD 3-clause
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/gwdetchar/gwtrig/model/trigger"
	"github.com/gwdetchar/gwtrig/trigio"

	"github.com/proio-org/go-proio"
)

var (
	outFile   = flag.String("o", "", "location to save output to (file path, file://, gs://, or ws://)")
	compLevel = flag.Int("c", 1, "output compression level: 0 for uncompressed, 1 for LZ4 compression, 2 for GZIP compression, 3 for LZMA compression")
)

func printUsage() {
	fmt.Fprintf(os.Stderr,
		`Usage: `+os.Args[0]+` [options] <channel> <input-file>

Converts an ASCII trigger dump into a proio trigger stream.  Each input
line holds whitespace-separated columns:

    time frequency snr [amplitude [duration [bandwidth]]]

Lines starting with # are skipped.

options:
`,
	)
	flag.PrintDefaults()
}

func main() {
	flag.Usage = printUsage
	flag.Parse()

	if flag.NArg() != 2 {
		printUsage()
		log.Fatal("invalid arguments")
	}
	channel := flag.Arg(0)

	var reader *bufio.Scanner
	filename := flag.Arg(1)
	if filename == "-" {
		reader = bufio.NewScanner(bufio.NewReader(os.Stdin))
	} else {
		file, err := os.Open(filename)
		if err != nil {
			log.Fatal(err)
		}
		defer file.Close()
		reader = bufio.NewScanner(file)
	}

	var writer *proio.Writer
	var err error
	if *outFile == "" {
		writer = proio.NewWriter(os.Stdout)
	} else {
		writer, err = trigio.GetWriter(context.Background(), *outFile, os.Getenv("GCS_CREDENTIALS"))
		if err != nil {
			log.Fatal(err)
		}
	}
	trigio.SetCompression(writer, *compLevel)
	defer writer.Close()

	nLine := 0
	nTriggers := 0
	for reader.Scan() {
		nLine++
		line := strings.TrimSpace(reader.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		t, err := parseLine(line, channel)
		if err != nil {
			log.Fatalf("line %d: %v", nLine, err)
		}
		if err := writer.Push(trigio.NewTriggerEvent(t)); err != nil {
			log.Fatal(err)
		}
		nTriggers++
	}
	if err := reader.Err(); err != nil {
		log.Fatal(err)
	}
	log.Println("converted", nTriggers, "triggers")
}

func parseLine(line, channel string) (*trigger.Trigger, error) {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return nil, fmt.Errorf("want at least 3 columns, got %d", len(fields))
	}

	values := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("column %d: %v", i+1, err)
		}
		values[i] = v
	}

	t := &trigger.Trigger{
		Time:      values[0],
		Frequency: values[1],
		Snr:       values[2],
		Channel:   channel,
	}
	if len(values) > 3 {
		t.Amplitude = values[3]
	}
	if len(values) > 4 {
		t.Duration = values[4]
	}
	if len(values) > 5 {
		t.Bandwidth = values[5]
	}
	return t, nil
}
