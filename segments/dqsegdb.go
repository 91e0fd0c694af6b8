// Copyright 2025 The gwtrig Authors
// Use of this source code is governed by the BSD 3-clause
// license that can be found in the LICENSE file.

package segments

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client queries a dqsegdb-style segment database over HTTP.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Flag is a detector-state flag name IFO:NAME:VERSION.
type Flag struct {
	Ifo     string
	Name    string
	Version string
}

func ParseFlag(s string) (Flag, error) {
	parts := strings.Split(s, ":")
	switch len(parts) {
	case 2:
		return Flag{Ifo: parts[0], Name: parts[1], Version: "1"}, nil
	case 3:
		return Flag{Ifo: parts[0], Name: parts[1], Version: parts[2]}, nil
	}
	return Flag{}, fmt.Errorf("malformed flag %q, want IFO:NAME[:VERSION]", s)
}

type queryResponse struct {
	Active [][2]float64 `json:"active"`
	Known  [][2]float64 `json:"known"`
}

// QueryActive fetches the active segments for a flag over [start, stop).
func (c *Client) QueryActive(ctx context.Context, flag string, start, stop float64) (SegmentList, error) {
	f, err := ParseFlag(flag)
	if err != nil {
		return nil, err
	}

	u := fmt.Sprintf("%s/dq/%s/%s/%s?%s", c.BaseURL,
		url.PathEscape(f.Ifo), url.PathEscape(f.Name), url.PathEscape(f.Version),
		url.Values{
			"s":       {fmt.Sprintf("%d", int64(start))},
			"e":       {fmt.Sprintf("%d", int64(stop))},
			"include": {"active"},
		}.Encode())

	req, err := http.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTP.Do(req.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("segment query for %s: %v", flag, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("segment query for %s: %s", flag, resp.Status)
	}

	var body queryResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("segment query for %s: %v", flag, err)
	}

	var active SegmentList
	for _, seg := range body.Active {
		active = append(active, Segment{seg[0], seg[1]})
	}
	// clip to the requested span
	return active.Normalize().Intersect(SegmentList{{start, stop}}), nil
}
