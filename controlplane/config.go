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

package controlplane

import "time"

const (
	ProviderGCE    = "gce"
	ProviderHCloud = "hcloud"
	ProviderMemory = "memory"
)

type Config struct {
	ListenAddr      string
	ShutdownTimeout time.Duration
	Provider        string

	GCPProject         string
	GCPCredentialsFile string
	GCEMachineType     string
	GCEImage           string
	GCEDiskSizeGB      int64
	GCEPreemptible     bool

	HCloudToken      string
	HCloudServerType string
	HCloudImage      string

	RegionCatalogFile   string
	StartupTemplateFile string
	NamePrefix          string
	ListLimit           int
	WaitTimeout         time.Duration
	PollInterval        time.Duration
	Tags                []string

	Role        string
	LobbyAddr   string
	BattlePort  int
	ReleaseRepo string

	NATSURL           string
	NATSSubjectPrefix string
	OTLPEndpoint      string
}
