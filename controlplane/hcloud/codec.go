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

package hcloud

import (
	"fmt"
	"maps"
	"net/netip"
	"slices"
	"strings"

	"github.com/gdxsv/mcsalloc/controlplane/allocation"
	"github.com/hetznercloud/hcloud-go/v2/hcloud"
	"github.com/zeebo/xxh3"
)

const (
	// tagLabelPrefix marks labels that stand in for network tags, which
	// Hetzner does not have.
	tagLabelPrefix = "tag-"
	// fingerprintLabelPrefix marks labels holding a hash of a metadata
	// value.
	fingerprintLabelPrefix = "fp-"
)

func ToDomain(s *hcloud.Server) allocation.Instance {
	ret := allocation.Instance{
		Name:      s.Name,
		Zone:      location(s),
		Status:    status(s.Status),
		CreatedAt: s.Created,
		Labels:    make(map[string]string),
	}

	for _, k := range slices.Sorted(maps.Keys(s.Labels)) {
		if tag, ok := strings.CutPrefix(k, tagLabelPrefix); ok {
			ret.Tags = append(ret.Tags, tag)
			continue
		}
		ret.Labels[k] = s.Labels[k]
	}

	if ip, ok := netip.AddrFromSlice(s.PublicNet.IPv4.IP); ok && !ip.Unmap().IsUnspecified() {
		ret.ExternalIP = ip.Unmap()
	}

	return ret
}

func status(s hcloud.ServerStatus) allocation.Status {
	switch s {
	case hcloud.ServerStatusRunning:
		return allocation.StatusRunning
	case hcloud.ServerStatusOff:
		return allocation.StatusTerminated
	case hcloud.ServerStatusStopping, hcloud.ServerStatusDeleting:
		return allocation.StatusStopping
	case hcloud.ServerStatusInitializing:
		return allocation.StatusProvisioning
	case hcloud.ServerStatusStarting, hcloud.ServerStatusMigrating, hcloud.ServerStatusRebuilding:
		return allocation.StatusStaging
	default:
		return allocation.StatusUnknown
	}
}

func location(s *hcloud.Server) string {
	if s.Datacenter == nil || s.Datacenter.Location == nil {
		return ""
	}
	return s.Datacenter.Location.Name
}

func listOpts(f allocation.Filter) hcloud.ServerListOpts {
	return hcloud.ServerListOpts{
		ListOpts: hcloud.ListOpts{
			Page:          1,
			PerPage:       min(f.Limit, MaxPerPage),
			LabelSelector: allocation.RoleLabel + "=" + allocation.RoleMatchServer,
		},
		Name: f.Name,
	}
}

func createOpts(cfg Config, spec allocation.CreateSpec) hcloud.ServerCreateOpts {
	labels := maps.Clone(spec.Labels)
	if labels == nil {
		labels = make(map[string]string)
	}
	for _, t := range spec.Tags {
		labels[tagLabelPrefix+t] = "true"
	}
	maps.Copy(labels, fingerprintLabels(spec.Metadata))

	return hcloud.ServerCreateOpts{
		Name:             spec.Name,
		ServerType:       &hcloud.ServerType{Name: cfg.ServerType},
		Image:            &hcloud.Image{Name: cfg.Image},
		Location:         &hcloud.Location{Name: spec.Zone},
		UserData:         spec.Metadata[allocation.MetadataStartupScript],
		StartAfterCreate: hcloud.Ptr(true),
		Labels:           labels,
		PublicNet: &hcloud.ServerCreatePublicNet{
			EnableIPv4: true,
			EnableIPv6: true,
		},
	}
}

func fingerprintLabels(metadata map[string]string) map[string]string {
	ret := make(map[string]string, len(metadata))
	for k, v := range metadata {
		ret[fingerprintLabelPrefix+k] = fmt.Sprintf("%016x", xxh3.HashString(v))
	}
	return ret
}
