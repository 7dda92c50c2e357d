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

// Package memory provides a compute provider that keeps instances in
// process memory. It is used for local development and tests.
package memory

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"maps"
	"net/netip"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/gdxsv/mcsalloc/controlplane/allocation"
)

var (
	ErrNotFound      = errors.New("instance not found")
	ErrAlreadyExists = errors.New("instance already exists")
	ErrZoneExhausted = errors.New("zone does not have enough resources")
	ErrNotTerminated = errors.New("instance is not terminated")
)

type Option func(*Provider)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(p *Provider) {
		p.now = now
	}
}

// WithExhaustedZones makes every create in the given zones fail.
func WithExhaustedZones(zones ...string) Option {
	return func(p *Provider) {
		for _, z := range zones {
			p.exhausted[z] = true
		}
	}
}

// WithBootPolls sets how many GetInstance calls an instance stays in a
// transitional state before it reports RUNNING.
func WithBootPolls(n int) Option {
	return func(p *Provider) {
		p.bootPolls = n
	}
}

type instance struct {
	snapshot allocation.Instance
	metadata map[string]string
	// pending counts down the polls left until RUNNING.
	pending int
}

type Provider struct {
	mu        sync.Mutex
	now       func() time.Time
	bootPolls int
	exhausted map[string]bool
	instances map[string]*instance
	nextIP    netip.Addr
}

func NewProvider(opts ...Option) *Provider {
	p := &Provider{
		now:       time.Now,
		bootPolls: 1,
		exhausted: make(map[string]bool),
		instances: make(map[string]*instance),
		// TEST-NET-2
		nextIP: netip.MustParseAddr("198.51.100.1"),
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

func key(zone, name string) string {
	return zone + "/" + name
}

// ListInstances returns instances ordered by creation time so results are
// stable between calls.
func (p *Provider) ListInstances(_ context.Context, f allocation.Filter) ([]allocation.Instance, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	all := slices.Collect(maps.Values(p.instances))
	slices.SortFunc(all, func(a, b *instance) int {
		if c := a.snapshot.CreatedAt.Compare(b.snapshot.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.snapshot.Zone, b.snapshot.Zone)
	})

	ret := make([]allocation.Instance, 0)
	for _, ins := range all {
		if len(ret) == f.Limit {
			break
		}
		if f.Name != "" && ins.snapshot.Name != f.Name {
			continue
		}
		if f.Prefix != "" && !strings.HasPrefix(ins.snapshot.Name, f.Prefix) {
			continue
		}
		ret = append(ret, clone(ins.snapshot))
	}
	return ret, nil
}

// GetInstance advances the simulated boot of the instance by one step.
func (p *Provider) GetInstance(_ context.Context, zone string, name string) (allocation.Instance, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	ins, ok := p.instances[key(zone, name)]
	if !ok {
		return allocation.Instance{}, fmt.Errorf("%s/%s: %w", zone, name, ErrNotFound)
	}

	if ins.pending > 0 {
		ins.pending--
		if ins.pending == 0 {
			ins.snapshot.Status = allocation.StatusRunning
			ins.snapshot.ExternalIP = p.allocateIP()
		}
	}

	return clone(ins.snapshot), nil
}

func (p *Provider) CreateInstance(_ context.Context, spec allocation.CreateSpec) (allocation.Instance, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.exhausted[spec.Zone] {
		return allocation.Instance{}, fmt.Errorf("%s: %w", spec.Zone, ErrZoneExhausted)
	}

	k := key(spec.Zone, spec.Name)
	if _, ok := p.instances[k]; ok {
		return allocation.Instance{}, fmt.Errorf("%s: %w", k, ErrAlreadyExists)
	}

	ins := &instance{
		snapshot: allocation.Instance{
			Name:      spec.Name,
			Zone:      spec.Zone,
			Status:    allocation.StatusProvisioning,
			CreatedAt: p.now(),
			Tags:      slices.Clone(spec.Tags),
			Labels:    maps.Clone(spec.Labels),
		},
		metadata: maps.Clone(spec.Metadata),
	}
	p.boot(ins)
	p.instances[k] = ins

	return clone(ins.snapshot), nil
}

func (p *Provider) StartInstance(_ context.Context, zone string, name string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	ins, ok := p.instances[key(zone, name)]
	if !ok {
		return fmt.Errorf("%s/%s: %w", zone, name, ErrNotFound)
	}

	if ins.snapshot.Status == allocation.StatusRunning {
		return nil
	}
	if ins.snapshot.Status != allocation.StatusTerminated {
		return fmt.Errorf("%s/%s: %w", zone, name, ErrNotTerminated)
	}

	ins.snapshot.Status = allocation.StatusStaging
	p.boot(ins)
	return nil
}

func (p *Provider) SetMetadata(_ context.Context, zone string, name string, metadata map[string]string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	ins, ok := p.instances[key(zone, name)]
	if !ok {
		return fmt.Errorf("%s/%s: %w", zone, name, ErrNotFound)
	}

	if ins.metadata == nil {
		ins.metadata = make(map[string]string)
	}
	maps.Copy(ins.metadata, metadata)
	return nil
}

func (p *Provider) DeleteInstance(_ context.Context, zone string, name string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	k := key(zone, name)
	if _, ok := p.instances[k]; !ok {
		return fmt.Errorf("%s: %w", k, ErrNotFound)
	}
	delete(p.instances, k)
	return nil
}

// Terminate simulates the guest shutting itself down after the match
// server exited, or a preemption.
func (p *Provider) Terminate(zone string, name string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	ins, ok := p.instances[key(zone, name)]
	if !ok {
		return fmt.Errorf("%s/%s: %w", zone, name, ErrNotFound)
	}

	ins.snapshot.Status = allocation.StatusTerminated
	ins.snapshot.ExternalIP = netip.Addr{}
	ins.pending = 0
	return nil
}

// Metadata returns the metadata of an instance.
func (p *Provider) Metadata(zone string, name string) (map[string]string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	ins, ok := p.instances[key(zone, name)]
	if !ok {
		return nil, false
	}
	return maps.Clone(ins.metadata), true
}

func (p *Provider) boot(ins *instance) {
	if p.bootPolls <= 0 {
		ins.snapshot.Status = allocation.StatusRunning
		ins.snapshot.ExternalIP = p.allocateIP()
		return
	}
	ins.pending = p.bootPolls
}

func (p *Provider) allocateIP() netip.Addr {
	ip := p.nextIP
	p.nextIP = p.nextIP.Next()
	return ip
}

func clone(ins allocation.Instance) allocation.Instance {
	ins.Tags = slices.Clone(ins.Tags)
	ins.Labels = maps.Clone(ins.Labels)
	return ins
}
