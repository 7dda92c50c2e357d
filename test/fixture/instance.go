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

package fixture

import (
	"net/netip"
	"time"

	"github.com/gdxsv/mcsalloc/controlplane/allocation"
)

const (
	NamePrefix = "gdxsv-mcs"
	Region     = "asia-northeast1"
	Version    = "v1.2.3"
)

// InstanceName is the name key for Region and Version.
var InstanceName = allocation.NameKey(NamePrefix, Region, Version)

func Instance(mod ...func(ins *allocation.Instance)) allocation.Instance {
	ins := allocation.Instance{
		Name:      InstanceName,
		Zone:      Region + "-a",
		Status:    allocation.StatusRunning,
		CreatedAt: time.Date(2025, 2, 23, 13, 12, 15, 0, time.UTC),
		Tags:      []string{"http-server"},
		Labels: map[string]string{
			allocation.RoleLabel:      allocation.RoleMatchServer,
			allocation.VersionLabel:   allocation.NormalizeVersion(Version),
			allocation.VersionIDLabel: allocation.VersionID(Version),
		},
		ExternalIP: netip.MustParseAddr("203.0.113.10"),
	}

	for _, fn := range mod {
		fn(&ins)
	}

	return ins
}

func Catalog() allocation.Catalog {
	c, err := allocation.NewCatalog(allocation.ZoneStyleSuffixed, []allocation.Region{
		{
			Code:     Region,
			Zones:    []string{"a", "b", "c"},
			Location: "Tokyo, Japan",
			Group:    "asia",
		},
		{
			Code:     "us-west1",
			Zones:    []string{"a", "b", "c"},
			Location: "The Dalles, Oregon, North America",
			Group:    "us",
		},
	})
	if err != nil {
		panic(err)
	}
	return c
}

func StartupParams(mod ...func(p *allocation.StartupParams)) allocation.StartupParams {
	p := allocation.StartupParams{
		Role:        allocation.DefaultRole,
		LobbyAddr:   "zdxsv.net:9876",
		BattlePort:  9877,
		ReleaseRepo: "inada-s/gdxsv",
	}

	for _, fn := range mod {
		fn(&p)
	}

	return p
}
