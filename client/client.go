/*
 mcsalloc, allocates gdxsv match servers on GCE and Hetzner Cloud.
 Copyright (C) 2025 The gdxsv mcsalloc authors

 This program is free software: you can redistribute it and/or modify
 it under the terms of the GNU Affero General Public License as published by
 the Free Software Foundation, either version 3 of the License, or
 (at your option) any later version.

 This program is distributed in the hope that it will be useful,
 but WITHOUT ANY WARRANTY; without even the implied warranty of
 MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 GNU Affero General Public License for more details.

 You should have received a copy of the GNU Affero General Public License
 along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

// Package client talks to the allocation controller over http. It is
// used by the lobby to request match servers.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/gdxsv/mcsalloc/controlplane/allocation"
	"golang.org/x/oauth2/google"
	"golang.org/x/time/rate"
)

// DefaultAllocInterval is the minimum time between two allocation
// requests for the same region.
const DefaultAllocInterval = 30 * time.Second

// StatusError is returned when the controller answers with a non 200
// status code.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("controller responded with %d: %s", e.Code, e.Message)
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.http = c
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(cl *Client) {
		cl.logger = l
	}
}

// WithAllocInterval changes how often an allocation may be requested per
// region.
func WithAllocInterval(d time.Duration) Option {
	return func(cl *Client) {
		cl.allocInterval = d
	}
}

type Client struct {
	baseURL       string
	http          *http.Client
	logger        *slog.Logger
	allocInterval time.Duration

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		http:          http.DefaultClient,
		logger:        slog.Default(),
		allocInterval: DefaultAllocInterval,
		limiters:      make(map[string]*rate.Limiter),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// IDTokenHTTPClient returns an http client that authenticates with an id
// token issued for the service account in keyFile. The audience is the
// controller url, which is what the cloud function ingress checks.
func IDTokenHTTPClient(ctx context.Context, keyFile string, audience string) (*http.Client, error) {
	key, err := os.ReadFile(keyFile)
	if err != nil {
		return nil, fmt.Errorf("read key file: %w", err)
	}

	cfg, err := google.JWTConfigFromJSON(key)
	if err != nil {
		return nil, fmt.Errorf("parse key file: %w", err)
	}

	cfg.PrivateClaims = map[string]any{
		"target_audience": audience,
	}
	cfg.UseIDToken = true

	return cfg.Client(ctx), nil
}

func (c *Client) List(ctx context.Context) ([]allocation.View, error) {
	var ret []allocation.View
	if err := c.get(ctx, allocation.PathList, nil, &ret); err != nil {
		return nil, err
	}
	return ret, nil
}

func (c *Client) DeleteAll(ctx context.Context) ([]allocation.View, error) {
	var ret []allocation.View
	if err := c.get(ctx, allocation.PathDeleteAll, nil, &ret); err != nil {
		return nil, err
	}
	return ret, nil
}

func (c *Client) Regions(ctx context.Context) (map[string]allocation.Region, error) {
	var ret map[string]allocation.Region
	if err := c.get(ctx, allocation.PathRegions, nil, &ret); err != nil {
		return nil, err
	}
	for code, r := range ret {
		r.Code = code
		ret[code] = r
	}
	return ret, nil
}

// Alloc requests a running match server. It is not throttled.
func (c *Client) Alloc(ctx context.Context, region string, version string) (allocation.View, error) {
	q := url.Values{}
	q.Set("region", region)
	if version != "" {
		q.Set("version", version)
	}

	var ret allocation.View
	if err := c.get(ctx, allocation.PathAlloc, q, &ret); err != nil {
		return allocation.View{}, err
	}
	return ret, nil
}

// TryAlloc is Alloc, unless an allocation for region was requested less
// than the alloc interval ago. In that case nothing is sent and false is
// returned.
func (c *Client) TryAlloc(ctx context.Context, region string, version string) (allocation.View, bool, error) {
	if !c.limiter(region).Allow() {
		return allocation.View{}, false, nil
	}

	v, err := c.Alloc(ctx, region, version)
	return v, true, err
}

// GoAlloc runs TryAlloc in the background. It reports whether a request
// was started.
func (c *Client) GoAlloc(region string, version string) bool {
	if !c.limiter(region).Allow() {
		return false
	}

	go func() {
		v, err := c.Alloc(context.Background(), region, version)
		if err != nil {
			c.logger.Error("alloc failed", "region", region, "err", err)
			return
		}
		c.logger.Info("alloc done", "region", region, "name", v.Name, "zone", v.Zone)
	}()

	return true
}

func (c *Client) limiter(region string) *rate.Limiter {
	c.mu.Lock()
	defer c.mu.Unlock()

	l, ok := c.limiters[region]
	if !ok {
		l = rate.NewLimiter(rate.Every(c.allocInterval), 1)
		c.limiters[region] = l
	}
	return l
}

func (c *Client) get(ctx context.Context, path string, q url.Values, v any) error {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return &StatusError{
			Code:    resp.StatusCode,
			Message: strings.TrimSpace(string(body)),
		}
	}

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
