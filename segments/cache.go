// Copyright 2025 The gwtrig Authors
// Use of this source code is governed by the BSD 3-clause
// license that can be found in the LICENSE file.

package segments

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis"
)

// Cache keeps segment query results in redis so that repeated plotting and
// batch runs over the same span do not hammer the segment database.
type Cache struct {
	Redis *redis.Client
	TTL   time.Duration
}

func cacheKey(flag string, start, stop float64) string {
	return fmt.Sprintf("segments:%s|%d|%d", flag, int64(start), int64(stop))
}

func (c *Cache) Get(flag string, start, stop float64) (SegmentList, bool) {
	if c == nil || c.Redis == nil {
		return nil, false
	}
	data, err := c.Redis.Get(cacheKey(flag, start, stop)).Bytes()
	if err != nil {
		return nil, false
	}
	var active SegmentList
	if err := json.Unmarshal(data, &active); err != nil {
		return nil, false
	}
	return active, true
}

func (c *Cache) Put(flag string, start, stop float64, active SegmentList) {
	if c == nil || c.Redis == nil {
		return
	}
	data, err := json.Marshal(active)
	if err != nil {
		return
	}
	if err := c.Redis.Set(cacheKey(flag, start, stop), data, c.TTL).Err(); err != nil {
		log.Println("segment cache write:", err)
	}
}

// QueryActive answers from the cache when possible, otherwise queries the
// database and repopulates.
func (c *Cache) QueryActive(ctx context.Context, client *Client, flag string, start, stop float64) (SegmentList, error) {
	if active, ok := c.Get(flag, start, stop); ok {
		return active, nil
	}
	active, err := client.QueryActive(ctx, flag, start, stop)
	if err != nil {
		return nil, err
	}
	c.Put(flag, start, stop, active)
	return active, nil
}
