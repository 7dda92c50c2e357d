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

package allocation

import (
	"net/netip"
	"time"
)

const (
	// LatestVersion is used when a request does not name a version.
	LatestVersion = "latest"

	// VersionLabel holds the normalized version an instance was created for.
	VersionLabel = "mcs-version"
	// VersionIDLabel holds VersionID of the exact version string, which
	// VersionLabel cannot carry.
	VersionIDLabel = "mcs-version-id"
	// RoleLabel marks instances managed by this controller.
	RoleLabel = "mcs-role"

	RoleMatchServer = "mcs"

	// MetadataStartupScript is the metadata key read by the guest on boot.
	MetadataStartupScript = "startup-script"
)

// Instance is a point-in-time snapshot of a provider instance. Values are
// never updated in place, every provider call returns a new one.
type Instance struct {
	Name       string
	Zone       string
	Status     Status
	CreatedAt  time.Time
	Tags       []string
	Labels     map[string]string
	ExternalIP netip.Addr
}

type Status string

const (
	StatusRunning      Status = "RUNNING"
	StatusTerminated   Status = "TERMINATED"
	StatusStopping     Status = "STOPPING"
	StatusProvisioning Status = "PROVISIONING"
	StatusStaging      Status = "STAGING"
	StatusUnknown      Status = "UNKNOWN"
)

// ParseStatus maps a provider status string onto Status. Anything that
// is not known becomes StatusUnknown.
func ParseStatus(s string) Status {
	switch st := Status(s); st {
	case StatusRunning, StatusTerminated, StatusStopping, StatusProvisioning, StatusStaging:
		return st
	default:
		return StatusUnknown
	}
}

type Request struct {
	Region  string
	Version string
}

// Filter selects instances by exact Name or by name Prefix. Limit bounds
// the result to a single page.
type Filter struct {
	Name   string
	Prefix string
	Limit  int
}

// CreateSpec describes a new match server instance.
type CreateSpec struct {
	Name     string
	Zone     string
	Tags     []string
	Labels   map[string]string
	Metadata map[string]string
}

// Outcome describes how an allocation was satisfied.
type Outcome string

const (
	OutcomeReused         Outcome = "reused"
	OutcomeResumed        Outcome = "resumed"
	OutcomeCreated        Outcome = "created"
	OutcomeExhausted      Outcome = "exhausted"
	OutcomeInvalid        Outcome = "invalid_region"
	OutcomeInvalidVersion Outcome = "invalid_version"
	OutcomeError          Outcome = "error"
)

// Allocation is the result of a successful Allocate call.
type Allocation struct {
	Instance Instance
	Outcome  Outcome
}
