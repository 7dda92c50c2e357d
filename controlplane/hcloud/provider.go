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

// Package hcloud implements the compute provider on top of Hetzner Cloud.
// Zones are Hetzner locations such as fsn1 or ash.
package hcloud

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"strings"

	"github.com/gdxsv/mcsalloc/controlplane/allocation"
	"github.com/hetznercloud/hcloud-go/v2/hcloud"
)

// MaxPerPage is the largest page the Hetzner API hands out.
const MaxPerPage = 50

var ErrServerNotFound = errors.New("server not found")

type Config struct {
	Token      string
	ServerType string
	Image      string
	// Endpoint overrides the api endpoint, used in tests.
	Endpoint string
}

var DefaultConfig = Config{
	ServerType: "cx22",
	Image:      "ubuntu-22.04",
}

type Provider struct {
	logger *slog.Logger
	cfg    Config
	client *hcloud.Client
}

func NewProvider(logger *slog.Logger, cfg Config, version string) (*Provider, error) {
	if cfg.Token == "" {
		return nil, errors.New("hcloud: token is required")
	}

	opts := []hcloud.ClientOption{
		hcloud.WithToken(cfg.Token),
		hcloud.WithApplication("mcsalloc", version),
	}
	if cfg.Endpoint != "" {
		opts = append(opts, hcloud.WithEndpoint(cfg.Endpoint))
	}

	return &Provider{
		logger: logger,
		cfg:    cfg,
		client: hcloud.NewClient(opts...),
	}, nil
}

// ListInstances returns a single page of servers managed by this
// controller. The api has no prefix filter, prefix matching is done on
// the page that was returned.
func (p *Provider) ListInstances(ctx context.Context, f allocation.Filter) ([]allocation.Instance, error) {
	servers, _, err := p.client.Server.List(ctx, listOpts(f))
	if err != nil {
		return nil, fmt.Errorf("list servers: %w", err)
	}

	ret := make([]allocation.Instance, 0, len(servers))
	for _, s := range servers {
		if f.Prefix != "" && !strings.HasPrefix(s.Name, f.Prefix) {
			continue
		}
		ret = append(ret, ToDomain(s))
	}
	return ret, nil
}

func (p *Provider) GetInstance(ctx context.Context, zone string, name string) (allocation.Instance, error) {
	s, err := p.server(ctx, zone, name)
	if err != nil {
		return allocation.Instance{}, err
	}
	return ToDomain(s), nil
}

// CreateInstance creates the server and powers it on. The startup script
// is passed as cloud-init user data.
func (p *Provider) CreateInstance(ctx context.Context, spec allocation.CreateSpec) (allocation.Instance, error) {
	res, _, err := p.client.Server.Create(ctx, createOpts(p.cfg, spec))
	if err != nil {
		return allocation.Instance{}, fmt.Errorf("create server: %w", err)
	}

	actions := append([]*hcloud.Action{res.Action}, res.NextActions...)
	if err := p.client.Action.WaitFor(ctx, actions...); err != nil {
		return allocation.Instance{}, fmt.Errorf("wait for create: %w", err)
	}

	return p.GetInstance(ctx, spec.Zone, spec.Name)
}

func (p *Provider) StartInstance(ctx context.Context, zone string, name string) error {
	s, err := p.server(ctx, zone, name)
	if err != nil {
		return err
	}

	a, _, err := p.client.Server.Poweron(ctx, s)
	if err != nil {
		return fmt.Errorf("power on: %w", err)
	}

	if err := p.client.Action.WaitFor(ctx, a); err != nil {
		return fmt.Errorf("wait for power on: %w", err)
	}
	return nil
}

// SetMetadata records a fingerprint of every value as a server label.
// User data cannot be changed after creation, the boot script installed
// on first boot is what runs when the server is powered on again.
func (p *Provider) SetMetadata(ctx context.Context, zone string, name string, metadata map[string]string) error {
	s, err := p.server(ctx, zone, name)
	if err != nil {
		return err
	}

	labels := maps.Clone(s.Labels)
	if labels == nil {
		labels = make(map[string]string)
	}
	maps.Copy(labels, fingerprintLabels(metadata))

	if _, _, err := p.client.Server.Update(ctx, s, hcloud.ServerUpdateOpts{
		Labels: labels,
	}); err != nil {
		return fmt.Errorf("update labels: %w", err)
	}
	return nil
}

func (p *Provider) DeleteInstance(ctx context.Context, zone string, name string) error {
	s, err := p.server(ctx, zone, name)
	if err != nil {
		return err
	}

	res, _, err := p.client.Server.DeleteWithResult(ctx, s)
	if err != nil {
		return fmt.Errorf("delete server: %w", err)
	}

	if err := p.client.Action.WaitFor(ctx, res.Action); err != nil {
		return fmt.Errorf("wait for delete: %w", err)
	}
	return nil
}

// server looks up a server by name. Names are unique per project, the
// zone is only checked so a caller cannot act on the wrong location.
func (p *Provider) server(ctx context.Context, zone string, name string) (*hcloud.Server, error) {
	s, _, err := p.client.Server.GetByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("get server: %w", err)
	}
	if s == nil || location(s) != zone {
		return nil, fmt.Errorf("%s/%s: %w", zone, name, ErrServerNotFound)
	}
	return s, nil
}
