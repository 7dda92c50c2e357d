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
	"fmt"
	"maps"
	"net/netip"
	"path"
	"regexp"
	"slices"
	"time"

	"cloud.google.com/go/compute/apiv1/computepb"
	"github.com/gdxsv/mcsalloc/controlplane/allocation"
	"github.com/gdxsv/mcsalloc/internal/ptr"
)

// ToDomain converts the api object to a domain snapshot. The zone comes
// back as a full resource url and is reduced to its name.
func ToDomain(ins *computepb.Instance) allocation.Instance {
	ret := allocation.Instance{
		Name:   ins.GetName(),
		Zone:   path.Base(ins.GetZone()),
		Status: allocation.ParseStatus(ins.GetStatus()),
		Tags:   ins.GetTags().GetItems(),
		Labels: ins.GetLabels(),
	}

	if ret.Zone == "." {
		ret.Zone = ""
	}

	if t, err := time.Parse(time.RFC3339, ins.GetCreationTimestamp()); err == nil {
		ret.CreatedAt = t
	}

	for _, nic := range ins.GetNetworkInterfaces() {
		for _, ac := range nic.GetAccessConfigs() {
			if ip, err := netip.ParseAddr(ac.GetNatIP()); err == nil {
				ret.ExternalIP = ip
				return ret
			}
		}
	}

	return ret
}

// listFilter builds a filter expression for the aggregated list call.
// The eq operator takes a RE2 expression that has to match the whole name.
func listFilter(f allocation.Filter) string {
	if f.Name != "" {
		return fmt.Sprintf("name eq %s", regexp.QuoteMeta(f.Name))
	}
	return fmt.Sprintf("name eq %s.*", regexp.QuoteMeta(f.Prefix))
}

func listRequest(project string, f allocation.Filter) *computepb.AggregatedListInstancesRequest {
	return &computepb.AggregatedListInstancesRequest{
		Project:    project,
		Filter:     ptr.String(listFilter(f)),
		MaxResults: ptr.UInt32(uint32(f.Limit)),
	}
}

func instanceResource(cfg Config, spec allocation.CreateSpec) *computepb.Instance {
	keys := slices.Sorted(maps.Keys(spec.Metadata))
	items := make([]*computepb.Items, 0, len(keys))
	for _, k := range keys {
		items = append(items, &computepb.Items{
			Key:   ptr.String(k),
			Value: ptr.String(spec.Metadata[k]),
		})
	}

	scheduling := &computepb.Scheduling{
		AutomaticRestart: ptr.Bool(!cfg.Preemptible),
		Preemptible:      ptr.Bool(cfg.Preemptible),
	}
	if cfg.Preemptible {
		scheduling.OnHostMaintenance = ptr.String(computepb.Scheduling_TERMINATE.String())
	}

	return &computepb.Instance{
		Name:        ptr.String(spec.Name),
		MachineType: ptr.String(fmt.Sprintf("zones/%s/machineTypes/%s", spec.Zone, cfg.MachineType)),
		Disks: []*computepb.AttachedDisk{
			{
				AutoDelete: ptr.Bool(true),
				Boot:       ptr.Bool(true),
				Type:       ptr.String(computepb.AttachedDisk_PERSISTENT.String()),
				InitializeParams: &computepb.AttachedDiskInitializeParams{
					SourceImage: ptr.String(cfg.Image),
					DiskSizeGb:  ptr.Pointer(cfg.DiskSizeGB),
				},
			},
		},
		NetworkInterfaces: []*computepb.NetworkInterface{
			{
				Network: ptr.String(cfg.Network),
				AccessConfigs: []*computepb.AccessConfig{
					{
						Name: ptr.String("External NAT"),
						Type: ptr.String(computepb.AccessConfig_ONE_TO_ONE_NAT.String()),
					},
				},
			},
		},
		Scheduling: scheduling,
		Tags: &computepb.Tags{
			Items: spec.Tags,
		},
		Labels: spec.Labels,
		Metadata: &computepb.Metadata{
			Items: items,
		},
	}
}

// mergeMetadata returns cur with the given keys replaced or added. The
// fingerprint of cur is kept.
func mergeMetadata(cur *computepb.Metadata, set map[string]string) *computepb.Metadata {
	ret := &computepb.Metadata{}
	if cur != nil {
		ret.Fingerprint = cur.Fingerprint
	}

	for _, it := range cur.GetItems() {
		if _, ok := set[it.GetKey()]; ok {
			continue
		}
		ret.Items = append(ret.Items, it)
	}

	for _, k := range slices.Sorted(maps.Keys(set)) {
		ret.Items = append(ret.Items, &computepb.Items{
			Key:   ptr.String(k),
			Value: ptr.String(set[k]),
		})
	}

	return ret
}
