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

package client_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gdxsv/mcsalloc/client"
	"github.com/gdxsv/mcsalloc/controlplane/allocation"
	apierrs "github.com/gdxsv/mcsalloc/controlplane/errors"
	"github.com/gdxsv/mcsalloc/internal/mock"
	"github.com/gdxsv/mcsalloc/test"
	"github.com/gdxsv/mcsalloc/test/fixture"
	mocky "github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, svc allocation.Service, opts ...client.Option) *client.Client {
	srv := httptest.NewServer(allocation.NewServer(test.Logger(), svc))
	t.Cleanup(srv.Close)
	return client.New(srv.URL+"/", opts...)
}

func TestAlloc(t *testing.T) {
	var (
		ctx = context.Background()
		svc = mock.NewMockService(t)
		c   = newClient(t, svc)
	)

	svc.EXPECT().
		Allocate(mocky.Anything, allocation.Request{Region: fixture.Region, Version: fixture.Version}).
		Return(allocation.Allocation{Instance: fixture.Instance(), Outcome: allocation.OutcomeCreated}, nil)

	v, err := c.Alloc(ctx, fixture.Region, fixture.Version)
	require.NoError(t, err)
	require.Equal(t, allocation.ToView(fixture.Instance()), v)
}

func TestAllocStatusError(t *testing.T) {
	var (
		ctx = context.Background()
		svc = mock.NewMockService(t)
		c   = newClient(t, svc)
	)

	svc.EXPECT().
		Allocate(mocky.Anything, allocation.Request{Region: fixture.Region}).
		Return(allocation.Allocation{}, apierrs.ErrAllocationExhausted)

	_, err := c.Alloc(ctx, fixture.Region, "")

	var se *client.StatusError
	require.True(t, errors.As(err, &se))
	require.Equal(t, http.StatusServiceUnavailable, se.Code)
	require.Equal(t, "failed to allocate vm", se.Message)
}

func TestListAndRegions(t *testing.T) {
	var (
		ctx = context.Background()
		svc = mock.NewMockService(t)
		c   = newClient(t, svc)
	)

	svc.EXPECT().
		ListInstances(mocky.Anything).
		Return([]allocation.Instance{fixture.Instance()}, nil)
	svc.EXPECT().
		Regions().
		Return([]allocation.Region{
			{Code: "us-west1", Zones: []string{"a", "b"}, Location: "Oregon", Group: "us"},
		})

	l, err := c.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []allocation.View{allocation.ToView(fixture.Instance())}, l)

	regions, err := c.Regions(ctx)
	require.NoError(t, err)
	require.Equal(t, map[string]allocation.Region{
		"us-west1": {Code: "us-west1", Zones: []string{"a", "b"}, Location: "Oregon", Group: "us"},
	}, regions)
}

func TestTryAllocThrottlesPerRegion(t *testing.T) {
	var (
		ctx   = context.Background()
		calls atomic.Int32
		srv   = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			_, _ = w.Write([]byte(`{"name": "` + r.URL.Query().Get("region") + `"}`))
		}))
		c = client.New(srv.URL, client.WithAllocInterval(time.Hour))
	)
	defer srv.Close()

	v, sent, err := c.TryAlloc(ctx, "us-west1", "")
	require.NoError(t, err)
	require.True(t, sent)
	require.Equal(t, "us-west1", v.Name)

	_, sent, err = c.TryAlloc(ctx, "us-west1", "")
	require.NoError(t, err)
	require.False(t, sent)

	_, sent, err = c.TryAlloc(ctx, "asia-northeast1", "")
	require.NoError(t, err)
	require.True(t, sent)

	require.Equal(t, int32(2), calls.Load())
}

func TestGoAlloc(t *testing.T) {
	var (
		done = make(chan string, 1)
		srv  = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			done <- r.URL.Query().Get("version")
			_, _ = w.Write([]byte(`{"name": "x"}`))
		}))
		c = client.New(srv.URL, client.WithAllocInterval(time.Hour), client.WithLogger(test.Logger()))
	)
	defer srv.Close()

	require.True(t, c.GoAlloc("us-west1", "v1"))
	require.False(t, c.GoAlloc("us-west1", "v1"))

	select {
	case v := <-done:
		require.Equal(t, "v1", v)
	case <-time.After(5 * time.Second):
		t.Fatal("alloc request was not sent")
	}
}
