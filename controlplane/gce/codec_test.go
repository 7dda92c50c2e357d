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

package gce

import (
	"net/netip"
	"testing"
	"time"

	"cloud.google.com/go/compute/apiv1/computepb"
	"github.com/gdxsv/mcsalloc/controlplane/allocation"
	"github.com/gdxsv/mcsalloc/internal/ptr"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/testing/protocmp"
)

func TestToDomain(t *testing.T) {
	tests := []struct {
		name     string
		ins      *computepb.Instance
		expected allocation.Instance
	}{
		{
			name: "running instance",
			ins: &computepb.Instance{
				Name:              ptr.String("gdxsv-mcs-us-west1-latest"),
				Zone:              ptr.String("https://www.googleapis.com/compute/v1/projects/gdxsv/zones/us-west1-b"),
				Status:            ptr.String("RUNNING"),
				CreationTimestamp: ptr.String("2025-02-23T05:12:15.123-08:00"),
				Tags:              &computepb.Tags{Items: []string{"http-server"}},
				Labels:            map[string]string{"mcs-version": "latest"},
				NetworkInterfaces: []*computepb.NetworkInterface{
					{
						AccessConfigs: []*computepb.AccessConfig{
							{NatIP: ptr.String("203.0.113.10")},
						},
					},
				},
			},
			expected: allocation.Instance{
				Name:       "gdxsv-mcs-us-west1-latest",
				Zone:       "us-west1-b",
				Status:     allocation.StatusRunning,
				CreatedAt:  time.Date(2025, 2, 23, 13, 12, 15, 123_000_000, time.UTC),
				Tags:       []string{"http-server"},
				Labels:     map[string]string{"mcs-version": "latest"},
				ExternalIP: netip.MustParseAddr("203.0.113.10"),
			},
		},
		{
			name: "terminated instance without nat ip",
			ins: &computepb.Instance{
				Name:   ptr.String("gdxsv-mcs-us-west1-latest"),
				Zone:   ptr.String("projects/gdxsv/zones/us-west1-a"),
				Status: ptr.String("TERMINATED"),
				NetworkInterfaces: []*computepb.NetworkInterface{
					{AccessConfigs: []*computepb.AccessConfig{{}}},
				},
			},
			expected: allocation.Instance{
				Name:   "gdxsv-mcs-us-west1-latest",
				Zone:   "us-west1-a",
				Status: allocation.StatusTerminated,
			},
		},
		{
			name: "unknown status",
			ins: &computepb.Instance{
				Name:   ptr.String("x"),
				Status: ptr.String("SUSPENDING"),
			},
			expected: allocation.Instance{
				Name:   "x",
				Status: allocation.StatusUnknown,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual := ToDomain(tt.ins)
			require.True(t, tt.expected.CreatedAt.Equal(actual.CreatedAt))
			actual.CreatedAt = tt.expected.CreatedAt
			require.Equal(t, tt.expected, actual)
		})
	}
}

func TestListFilter(t *testing.T) {
	tests := []struct {
		name     string
		filter   allocation.Filter
		expected string
	}{
		{
			name:     "exact name",
			filter:   allocation.Filter{Name: "gdxsv-mcs-us-west1-v1-2-3"},
			expected: "name eq gdxsv-mcs-us-west1-v1-2-3",
		},
		{
			name:     "prefix",
			filter:   allocation.Filter{Prefix: "gdxsv-mcs-"},
			expected: "name eq gdxsv-mcs-.*",
		},
		{
			name:     "regexp meta characters are quoted",
			filter:   allocation.Filter{Name: "a.b"},
			expected: `name eq a\.b`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, listFilter(tt.filter))
		})
	}

	req := listRequest("gdxsv", allocation.Filter{Prefix: "p-", Limit: 100})
	require.Equal(t, uint32(100), req.GetMaxResults())
	require.Equal(t, "gdxsv", req.GetProject())
}

func TestInstanceResource(t *testing.T) {
	cfg := DefaultConfig
	cfg.Project = "gdxsv"

	actual := instanceResource(cfg, allocation.CreateSpec{
		Name:   "gdxsv-mcs-us-west1-latest",
		Zone:   "us-west1-a",
		Tags:   []string{"http-server"},
		Labels: map[string]string{"mcs-role": "mcs"},
		Metadata: map[string]string{
			"startup-script": "#!/bin/bash",
		},
	})

	expected := &computepb.Instance{
		Name:        ptr.String("gdxsv-mcs-us-west1-latest"),
		MachineType: ptr.String("zones/us-west1-a/machineTypes/g1-small"),
		Disks: []*computepb.AttachedDisk{
			{
				AutoDelete: ptr.Bool(true),
				Boot:       ptr.Bool(true),
				Type:       ptr.String("PERSISTENT"),
				InitializeParams: &computepb.AttachedDiskInitializeParams{
					SourceImage: ptr.String(DefaultConfig.Image),
					DiskSizeGb:  ptr.Pointer(int64(10)),
				},
			},
		},
		NetworkInterfaces: []*computepb.NetworkInterface{
			{
				Network: ptr.String("global/networks/default"),
				AccessConfigs: []*computepb.AccessConfig{
					{
						Name: ptr.String("External NAT"),
						Type: ptr.String("ONE_TO_ONE_NAT"),
					},
				},
			},
		},
		Scheduling: &computepb.Scheduling{
			AutomaticRestart:  ptr.Bool(false),
			Preemptible:       ptr.Bool(true),
			OnHostMaintenance: ptr.String("TERMINATE"),
		},
		Tags:   &computepb.Tags{Items: []string{"http-server"}},
		Labels: map[string]string{"mcs-role": "mcs"},
		Metadata: &computepb.Metadata{
			Items: []*computepb.Items{
				{Key: ptr.String("startup-script"), Value: ptr.String("#!/bin/bash")},
			},
		},
	}

	if d := cmp.Diff(expected, actual, protocmp.Transform()); d != "" {
		t.Fatalf("diff (-want +got):\n%s", d)
	}
}

func TestMergeMetadata(t *testing.T) {
	cur := &computepb.Metadata{
		Fingerprint: ptr.String("abc"),
		Items: []*computepb.Items{
			{Key: ptr.String("enable-oslogin"), Value: ptr.String("TRUE")},
			{Key: ptr.String("startup-script"), Value: ptr.String("old")},
		},
	}

	expected := &computepb.Metadata{
		Fingerprint: ptr.String("abc"),
		Items: []*computepb.Items{
			{Key: ptr.String("enable-oslogin"), Value: ptr.String("TRUE")},
			{Key: ptr.String("startup-script"), Value: ptr.String("new")},
		},
	}

	actual := mergeMetadata(cur, map[string]string{"startup-script": "new"})
	if d := cmp.Diff(expected, actual, protocmp.Transform()); d != "" {
		t.Fatalf("diff (-want +got):\n%s", d)
	}

	require.Nil(t, mergeMetadata(nil, nil).Fingerprint)
}
