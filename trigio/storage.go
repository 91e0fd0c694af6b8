// Copyright 2025 The gwtrig Authors
// Use of this source code is governed by the BSD 3-clause
// license that can be found in the LICENSE file.

package trigio

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/proio-org/go-proio"
	"golang.org/x/net/websocket"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

var ErrBadScheme = errors.New("bad url scheme")

// TriggerFile is one entry in a trigger-file index.  Start and Duration are
// parsed from names of the form <TAG>-<GPSSTART>-<DUR>.proio; files with
// free-form names carry Start = 0 and Duration = 0 and are never skipped by
// span selection.
type TriggerFile struct {
	Name     string
	Start    float64
	Duration float64
}

var triggerFileName = regexp.MustCompile(`^(.+)-([0-9]+)-([0-9]+)\.proio$`)

func parseTriggerFile(name string) TriggerFile {
	tf := TriggerFile{Name: name}
	m := triggerFileName.FindStringSubmatch(path.Base(name))
	if m == nil {
		return tf
	}
	start, err1 := strconv.ParseFloat(m[2], 64)
	dur, err2 := strconv.ParseFloat(m[3], 64)
	if err1 != nil || err2 != nil {
		return tf
	}
	tf.Start = start
	tf.Duration = dur
	return tf
}

// Overlaps reports whether the file may contain triggers in [start, stop).
func (tf TriggerFile) Overlaps(start, stop float64) bool {
	if tf.Duration == 0 {
		return true
	}
	return tf.Start < stop && tf.Start+tf.Duration > start
}

// ListTriggerFiles indexes the trigger files under a file:// directory or a
// gs:// bucket prefix, keeping only those overlapping [start, stop).
func ListTriggerFiles(ctx context.Context, urlString, credentials string, start, stop float64) ([]TriggerFile, error) {
	thisUrl, err := url.Parse(urlString)
	if err != nil {
		return nil, err
	}

	var names []string
	switch thisUrl.Scheme {
	case "gs":
		names, err = listGcsObjects(ctx, thisUrl.Host, strings.TrimLeft(thisUrl.Path, "/"), []byte(credentials))
		if err != nil {
			return nil, err
		}
	case "file", "":
		root := filepath.Join(thisUrl.Host, strings.TrimLeft(thisUrl.Path, "/"))
		if thisUrl.Scheme == "" {
			root = urlString
		}
		names, err = filepath.Glob(filepath.Join(root, "*.proio"))
		if err != nil {
			return nil, err
		}
	default:
		return nil, ErrBadScheme
	}

	var files []TriggerFile
	for _, name := range names {
		tf := parseTriggerFile(name)
		if tf.Overlaps(start, stop) {
			files = append(files, tf)
		}
	}
	return files, nil
}

// GetReader opens a trigger stream named by URL: file paths or file://
// locations, or gs:// objects.
func GetReader(ctx context.Context, urlString, credentials string) (*proio.Reader, error) {
	thisUrl, err := url.Parse(urlString)
	if err != nil {
		return nil, err
	}

	switch thisUrl.Scheme {
	case "gs":
		return gcsReader(ctx, thisUrl.Host, strings.TrimLeft(thisUrl.Path, "/"), []byte(credentials))
	case "file":
		return proio.Open(filepath.Clean(fmt.Sprintf("%v/%v", thisUrl.Host, strings.TrimLeft(thisUrl.Path, "/"))))
	case "":
		return proio.Open(urlString)
	}
	return nil, ErrBadScheme
}

// GetWriter creates a trigger stream sink named by URL.  ws:// dials a
// websocket and feeds a live consumer.
func GetWriter(ctx context.Context, urlString, credentials string) (*proio.Writer, error) {
	thisUrl, err := url.Parse(urlString)
	if err != nil {
		return nil, err
	}

	switch thisUrl.Scheme {
	case "gs":
		return gcsWriter(ctx, thisUrl.Host, strings.TrimLeft(thisUrl.Path, "/"), []byte(credentials))
	case "ws", "wss":
		conn, err := websocket.Dial(urlString, "", "http://localhost/")
		if err != nil {
			return nil, err
		}
		writer := proio.NewWriter(conn)
		writer.DeferUntilClose(conn.Close)
		return writer, nil
	case "file":
		return proio.Create(filepath.Clean(fmt.Sprintf("%v/%v", thisUrl.Host, strings.TrimLeft(thisUrl.Path, "/"))))
	case "":
		return proio.Create(urlString)
	}
	return nil, ErrBadScheme
}

// SetCompression maps the conventional -c flag levels onto proio codecs.
func SetCompression(writer *proio.Writer, level int) {
	switch level {
	case 3:
		writer.SetCompression(proio.LZMA)
	case 2:
		writer.SetCompression(proio.GZIP)
	case 1:
		writer.SetCompression(proio.LZ4)
	default:
		writer.SetCompression(proio.UNCOMPRESSED)
	}
}

func listGcsObjects(ctx context.Context, bucket, prefix string, credentials []byte) ([]string, error) {
	client, err := storage.NewClient(ctx, option.WithCredentialsJSON(credentials))
	if err != nil {
		return nil, err
	}
	defer client.Close()

	var names []string
	it := client.Bucket(bucket).Objects(ctx, &storage.Query{Prefix: prefix})
	for {
		objAttrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		names = append(names, objAttrs.Name)
	}
	return names, nil
}

func gcsReader(ctx context.Context, bucket, name string, credentials []byte) (*proio.Reader, error) {
	client, err := storage.NewClient(ctx, option.WithCredentialsJSON(credentials))
	if err != nil {
		return nil, err
	}

	objectReader, err := client.Bucket(bucket).Object(name).NewReader(ctx)
	if err != nil {
		client.Close()
		return nil, err
	}
	reader := proio.NewReader(objectReader)
	reader.DeferUntilClose(func() { objectReader.Close() })
	reader.DeferUntilClose(func() { client.Close() })
	return reader, nil
}

func gcsWriter(ctx context.Context, bucket, name string, credentials []byte) (*proio.Writer, error) {
	client, err := storage.NewClient(ctx, option.WithCredentialsJSON(credentials))
	if err != nil {
		return nil, err
	}

	objectWriter := client.Bucket(bucket).Object(name).NewWriter(ctx)
	writer := proio.NewWriter(objectWriter)
	writer.DeferUntilClose(objectWriter.Close)
	writer.DeferUntilClose(client.Close)
	return writer, nil
}
