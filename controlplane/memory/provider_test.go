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

package memory_test

import (
	"context"
	"net/netip"
	"sync"
	"testing"
	"time"

	"github.com/gdxsv/mcsalloc/controlplane/allocation"
	apierrs "github.com/gdxsv/mcsalloc/controlplane/errors"
	"github.com/gdxsv/mcsalloc/controlplane/memory"
	"github.com/gdxsv/mcsalloc/test"
	"github.com/gdxsv/mcsalloc/test/fixture"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func newService(p *memory.Provider) allocation.Service {
	return allocation.NewService(
		test.Logger(),
		allocation.Config{
			NamePrefix:   fixture.NamePrefix,
			WaitTimeout:  time.Second,
			PollInterval: time.Millisecond,
			Tags:         []string{"http-server"},
			Startup:      fixture.StartupParams(),
		},
		fixture.Catalog(),
		allocation.DefaultStartupTemplate(),
		p,
		nil,
		nil,
	)
}

func TestAllocateLifecycle(t *testing.T) {
	var (
		ctx = context.Background()
		p   = memory.NewProvider(memory.WithBootPolls(2))
		svc = newService(p)
		req = allocation.Request{Region: fixture.Region, Version: fixture.Version}
	)

	created, err := svc.Allocate(ctx, req)
	require.NoError(t, err)
	require.Equal(t, allocation.OutcomeCreated, created.Outcome)
	require.Equal(t, allocation.StatusRunning, created.Instance.Status)
	require.Equal(t, fixture.Region+"-a", created.Instance.Zone)
	require.Equal(t, fixture.InstanceName, created.Instance.Name)
	require.Equal(t, netip.MustParseAddr("198.51.100.1"), created.Instance.ExternalIP)
	require.Equal(t, allocation.NormalizeVersion(fixture.Version), created.Instance.Labels[allocation.VersionLabel])
	require.Equal(t, allocation.VersionID(fixture.Version), created.Instance.Labels[allocation.VersionIDLabel])

	reused, err := svc.Allocate(ctx, req)
	require.NoError(t, err)
	require.Equal(t, allocation.OutcomeReused, reused.Outcome)
	require.Equal(t, created.Instance, reused.Instance)

	require.NoError(t, p.Terminate(created.Instance.Zone, created.Instance.Name))

	resumed, err := svc.Allocate(ctx, req)
	require.NoError(t, err)
	require.Equal(t, allocation.OutcomeResumed, resumed.Outcome)
	require.Equal(t, allocation.StatusRunning, resumed.Instance.Status)
	require.Empty(t, cmp.Diff(
		created.Instance,
		resumed.Instance,
		test.CompareAddr,
		test.IgnoreFields(test.IgnoredInstanceFields...),
	))

	md, ok := p.Metadata(resumed.Instance.Zone, resumed.Instance.Name)
	require.True(t, ok)
	require.Contains(t, md[allocation.MetadataStartupScript], fixture.Version)

	deleted, err := svc.DeleteAll(ctx)
	require.NoError(t, err)
	require.Len(t, deleted, 1)

	left, err := svc.ListInstances(ctx)
	require.NoError(t, err)
	require.Empty(t, left)
}

func TestAllocateKeepsScriptOfOtherVersionSpelling(t *testing.T) {
	var (
		ctx = context.Background()
		p   = memory.NewProvider()
		svc = newService(p)
	)

	created, err := svc.Allocate(ctx, allocation.Request{Region: fixture.Region, Version: "v1.2.3"})
	require.NoError(t, err)
	require.NoError(t, p.Terminate(created.Instance.Zone, created.Instance.Name))

	other, err := svc.Allocate(ctx, allocation.Request{Region: fixture.Region, Version: "V1.2.3"})
	require.NoError(t, err)
	require.Equal(t, allocation.OutcomeCreated, other.Outcome)
	require.Equal(t, created.Instance.Name, other.Instance.Name)
	require.Equal(t, fixture.Region+"-b", other.Instance.Zone)

	md, ok := p.Metadata(created.Instance.Zone, created.Instance.Name)
	require.True(t, ok)
	require.Contains(t, md[allocation.MetadataStartupScript], `readonly MCS_VERSION="v1.2.3"`)
}

func TestAllocateSkipsExhaustedZones(t *testing.T) {
	var (
		ctx = context.Background()
		p   = memory.NewProvider(memory.WithExhaustedZones(fixture.Region+"-a", fixture.Region+"-b"))
		svc = newService(p)
	)

	a, err := svc.Allocate(ctx, allocation.Request{Region: fixture.Region})
	require.NoError(t, err)
	require.Equal(t, fixture.Region+"-c", a.Instance.Zone)
}

func TestAllocateAllZonesExhausted(t *testing.T) {
	var (
		ctx = context.Background()
		p   = memory.NewProvider(memory.WithExhaustedZones(
			fixture.Region+"-a",
			fixture.Region+"-b",
			fixture.Region+"-c",
		))
		svc = newService(p)
	)

	_, err := svc.Allocate(ctx, allocation.Request{Region: fixture.Region})
	require.ErrorIs(t, err, apierrs.ErrAllocationExhausted)

	l, err := svc.ListInstances(ctx)
	require.NoError(t, err)
	require.Empty(t, l)
}

func TestAllocateRegionsAreIndependent(t *testing.T) {
	var (
		ctx = context.Background()
		p   = memory.NewProvider()
		svc = newService(p)
	)

	a, err := svc.Allocate(ctx, allocation.Request{Region: fixture.Region})
	require.NoError(t, err)

	b, err := svc.Allocate(ctx, allocation.Request{Region: "us-west1"})
	require.NoError(t, err)

	require.Equal(t, allocation.OutcomeCreated, b.Outcome)
	require.NotEqual(t, a.Instance.Name, b.Instance.Name)
	require.Equal(t, "us-west1-a", b.Instance.Zone)
}

// Concurrent allocations for the same key are not serialized. The name
// conflict makes the loser move on to the next zone, so both succeed and
// at most one duplicate exists.
func TestConcurrentAllocate(t *testing.T) {
	var (
		ctx = context.Background()
		p   = memory.NewProvider(memory.WithBootPolls(3))
		svc = newService(p)
		wg  sync.WaitGroup
	)

	for range 2 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Allocate(ctx, allocation.Request{Region: fixture.Region})
			require.NoError(t, err)
		}()
	}
	wg.Wait()

	l, err := svc.ListInstances(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, l)
	require.LessOrEqual(t, len(l), 2)
}

func TestProvider(t *testing.T) {
	var (
		ctx = context.Background()
		now = time.Date(2025, 2, 23, 13, 12, 15, 0, time.UTC)
		p   = memory.NewProvider(
			memory.WithBootPolls(0),
			memory.WithClock(func() time.Time { return now }),
		)
		spec = allocation.CreateSpec{Name: "n", Zone: "z"}
	)

	ins, err := p.CreateInstance(ctx, spec)
	require.NoError(t, err)
	require.Equal(t, allocation.StatusRunning, ins.Status)
	require.Equal(t, now, ins.CreatedAt)

	_, err = p.CreateInstance(ctx, spec)
	require.ErrorIs(t, err, memory.ErrAlreadyExists)

	require.ErrorIs(t, p.StartInstance(ctx, "z", "missing"), memory.ErrNotFound)
	require.NoError(t, p.StartInstance(ctx, "z", "n"))

	require.NoError(t, p.DeleteInstance(ctx, "z", "n"))
	_, err = p.GetInstance(ctx, "z", "n")
	require.ErrorIs(t, err, memory.ErrNotFound)
}
