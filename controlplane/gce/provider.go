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

// Package gce implements the compute provider on top of Google Compute
// Engine.
package gce

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	compute "cloud.google.com/go/compute/apiv1"
	"cloud.google.com/go/compute/apiv1/computepb"
	"github.com/gdxsv/mcsalloc/controlplane/allocation"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

type Config struct {
	Project     string
	MachineType string
	Image       string
	DiskSizeGB  int64
	Network     string
	Preemptible bool
}

var DefaultConfig = Config{
	MachineType: "g1-small",
	Image:       "projects/ubuntu-os-cloud/global/images/family/ubuntu-2204-lts",
	DiskSizeGB:  10,
	Network:     "global/networks/default",
	Preemptible: true,
}

type Provider struct {
	logger    *slog.Logger
	cfg       Config
	instances *compute.InstancesClient
}

func NewProvider(ctx context.Context, logger *slog.Logger, cfg Config, opts ...option.ClientOption) (*Provider, error) {
	if cfg.Project == "" {
		return nil, errors.New("gce: project is required")
	}

	c, err := compute.NewInstancesRESTClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create instances client: %w", err)
	}

	return &Provider{
		logger:    logger,
		cfg:       cfg,
		instances: c,
	}, nil
}

func (p *Provider) Close() error {
	return p.instances.Close()
}

// ListInstances reads the first page of an aggregated list over all
// zones. The iterator is not allowed to fetch a second page.
func (p *Provider) ListInstances(ctx context.Context, f allocation.Filter) ([]allocation.Instance, error) {
	it := p.instances.AggregatedList(ctx, listRequest(p.cfg.Project, f))

	ret := make([]allocation.Instance, 0)
	for len(ret) < f.Limit {
		pair, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("aggregated list: %w", err)
		}

		for _, ins := range pair.Value.GetInstances() {
			if len(ret) == f.Limit {
				break
			}
			ret = append(ret, ToDomain(ins))
		}

		if it.PageInfo().Remaining() == 0 {
			break
		}
	}

	return ret, nil
}

func (p *Provider) GetInstance(ctx context.Context, zone string, name string) (allocation.Instance, error) {
	ins, err := p.get(ctx, zone, name)
	if err != nil {
		return allocation.Instance{}, err
	}
	return ToDomain(ins), nil
}

func (p *Provider) CreateInstance(ctx context.Context, spec allocation.CreateSpec) (allocation.Instance, error) {
	op, err := p.instances.Insert(ctx, &computepb.InsertInstanceRequest{
		Project:          p.cfg.Project,
		Zone:             spec.Zone,
		InstanceResource: instanceResource(p.cfg, spec),
	})
	if err != nil {
		return allocation.Instance{}, fmt.Errorf("insert: %w", err)
	}

	if err := op.Wait(ctx); err != nil {
		return allocation.Instance{}, fmt.Errorf("wait for insert: %w", err)
	}

	return p.GetInstance(ctx, spec.Zone, spec.Name)
}

func (p *Provider) StartInstance(ctx context.Context, zone string, name string) error {
	op, err := p.instances.Start(ctx, &computepb.StartInstanceRequest{
		Project:  p.cfg.Project,
		Zone:     zone,
		Instance: name,
	})
	if err != nil {
		return fmt.Errorf("start: %w", err)
	}

	if err := op.Wait(ctx); err != nil {
		return fmt.Errorf("wait for start: %w", err)
	}
	return nil
}

// SetMetadata merges metadata into the existing instance metadata. The
// fingerprint of the current metadata is sent along, so a concurrent
// change makes this call fail instead of being overwritten.
func (p *Provider) SetMetadata(ctx context.Context, zone string, name string, metadata map[string]string) error {
	ins, err := p.get(ctx, zone, name)
	if err != nil {
		return err
	}

	op, err := p.instances.SetMetadata(ctx, &computepb.SetMetadataInstanceRequest{
		Project:          p.cfg.Project,
		Zone:             zone,
		Instance:         name,
		MetadataResource: mergeMetadata(ins.GetMetadata(), metadata),
	})
	if err != nil {
		return fmt.Errorf("set metadata: %w", err)
	}

	if err := op.Wait(ctx); err != nil {
		return fmt.Errorf("wait for set metadata: %w", err)
	}
	return nil
}

func (p *Provider) DeleteInstance(ctx context.Context, zone string, name string) error {
	op, err := p.instances.Delete(ctx, &computepb.DeleteInstanceRequest{
		Project:  p.cfg.Project,
		Zone:     zone,
		Instance: name,
	})
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	if err := op.Wait(ctx); err != nil {
		return fmt.Errorf("wait for delete: %w", err)
	}
	return nil
}

func (p *Provider) get(ctx context.Context, zone string, name string) (*computepb.Instance, error) {
	ins, err := p.instances.Get(ctx, &computepb.GetInstanceRequest{
		Project:  p.cfg.Project,
		Zone:     zone,
		Instance: name,
	})
	if err != nil {
		return nil, fmt.Errorf("get instance: %w", err)
	}
	return ins, nil
}
