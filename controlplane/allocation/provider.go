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

import "context"

// Provider is the compute inventory. It is the only source of truth for
// instance state, nothing returned from it is cached across requests.
type Provider interface {
	// ListInstances returns at most filter.Limit instances from a single
	// page of results. If more exist they are silently left out.
	ListInstances(ctx context.Context, filter Filter) ([]Instance, error)
	GetInstance(ctx context.Context, zone string, name string) (Instance, error)

	// CreateInstance returns once the provider accepted and finished the
	// insert operation. The instance is not necessarily RUNNING yet.
	CreateInstance(ctx context.Context, spec CreateSpec) (Instance, error)
	StartInstance(ctx context.Context, zone string, name string) error
	SetMetadata(ctx context.Context, zone string, name string, metadata map[string]string) error
	DeleteInstance(ctx context.Context, zone string, name string) error
}

// EventPublisher delivers allocation events to interested parties,
// usually the lobby. Publishing is best effort.
type EventPublisher interface {
	Publish(ctx context.Context, subject string, payload []byte) error
}
