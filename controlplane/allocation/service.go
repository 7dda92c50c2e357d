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
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	apierrs "github.com/gdxsv/mcsalloc/controlplane/errors"
	"github.com/gdxsv/mcsalloc/internal/reqctx"
	"github.com/hashicorp/go-multierror"
	"github.com/samber/lo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	SubjectAllocated = "mcs.allocated"
	SubjectDeleted   = "mcs.deleted"

	DefaultListLimit    = 100
	MaxListLimit        = 500
	DefaultWaitTimeout  = 30 * time.Second
	DefaultPollInterval = 2 * time.Second
)

var tracer = otel.Tracer("github.com/gdxsv/mcsalloc/controlplane/allocation")

type Config struct {
	// NamePrefix is prepended to every instance name, see NameKey.
	NamePrefix   string
	ListLimit    int
	WaitTimeout  time.Duration
	PollInterval time.Duration
	// Tags are attached to new instances so firewall rules and
	// inventory queries can find them.
	Tags    []string
	Startup StartupParams
}

type Service interface {
	ListInstances(ctx context.Context) ([]Instance, error)
	DeleteAll(ctx context.Context) ([]Instance, error)
	Allocate(ctx context.Context, req Request) (Allocation, error)
	Regions() []Region
}

type svc struct {
	logger    *slog.Logger
	cfg       Config
	catalog   Catalog
	startup   StartupTemplate
	provider  Provider
	publisher EventPublisher
	metrics   *Metrics
}

// NewService creates the allocation service. publisher may be nil, in
// which case no events are sent.
func NewService(
	logger *slog.Logger,
	cfg Config,
	catalog Catalog,
	startup StartupTemplate,
	provider Provider,
	publisher EventPublisher,
	metrics *Metrics,
) Service {
	if cfg.ListLimit <= 0 {
		cfg.ListLimit = DefaultListLimit
	}
	cfg.ListLimit = min(cfg.ListLimit, MaxListLimit)

	if cfg.WaitTimeout <= 0 {
		cfg.WaitTimeout = DefaultWaitTimeout
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}

	if metrics == nil {
		metrics = NewMetrics(nil)
	}

	return &svc{
		logger:    logger,
		cfg:       cfg,
		catalog:   catalog,
		startup:   startup,
		provider:  provider,
		publisher: publisher,
		metrics:   metrics,
	}
}

func (s *svc) Regions() []Region {
	return s.catalog.Regions()
}

func (s *svc) ListInstances(ctx context.Context) ([]Instance, error) {
	l, err := s.provider.ListInstances(ctx, Filter{
		Prefix: s.cfg.NamePrefix + "-",
		Limit:  s.cfg.ListLimit,
	})
	if err != nil {
		return nil, apierrs.ProviderUnavailable(fmt.Errorf("list instances: %w", err))
	}
	return l, nil
}

// DeleteAll deletes every instance carrying the name prefix. Deletions run
// concurrently and are all awaited, a failing deletion does not stop the
// others. The returned list is what was targeted, not what is gone.
func (s *svc) DeleteAll(ctx context.Context) ([]Instance, error) {
	instances, err := s.ListInstances(ctx)
	if err != nil {
		return nil, err
	}

	logger := s.log(ctx)
	logger.InfoContext(ctx, "deleting instances", "count", len(instances))

	var g multierror.Group
	for _, ins := range instances {
		g.Go(func() error {
			err := s.provider.DeleteInstance(ctx, ins.Zone, ins.Name)
			s.metrics.observeDeletion(err)
			if err != nil {
				return fmt.Errorf("delete %s/%s: %w", ins.Zone, ins.Name, err)
			}
			return nil
		})
	}

	if err := g.Wait().ErrorOrNil(); err != nil {
		logger.ErrorContext(ctx, "failed to delete some instances", "err", err)
	}

	s.publish(ctx, SubjectDeleted, lo.Map(instances, func(ins Instance, _ int) Event {
		return Event{Name: ins.Name, Zone: ins.Zone}
	}))

	return instances, nil
}

// Allocate returns a RUNNING instance for the request. It reuses a running
// instance, resumes a terminated one or creates a new one, in that order.
func (s *svc) Allocate(ctx context.Context, req Request) (Allocation, error) {
	start := time.Now()

	version := req.Version
	if version == "" {
		version = LatestVersion
	}

	region, ok := s.catalog.Validate(req.Region)
	if !ok {
		// region is user input, keep it out of the metric labels.
		s.metrics.observeAllocation("unknown", OutcomeInvalid, time.Since(start).Seconds())
		return Allocation{}, apierrs.ErrInvalidRegion
	}

	if NormalizeVersion(version) == "" {
		s.metrics.observeAllocation(region.Code, OutcomeInvalidVersion, time.Since(start).Seconds())
		return Allocation{}, apierrs.ErrInvalidVersion
	}

	ctx, span := tracer.Start(ctx, "allocation.Allocate", trace.WithAttributes(
		attribute.String("region", region.Code),
		attribute.String("version", version),
	))
	defer span.End()

	var (
		name   = NameKey(s.cfg.NamePrefix, region.Code, version)
		logger = s.log(ctx).With("region", region.Code, "version", version, "name", name)
	)

	alloc, err := s.allocate(ctx, logger, region, name, version)

	outcome := alloc.Outcome
	if err != nil {
		outcome = OutcomeError
		if errors.Is(err, apierrs.ErrAllocationExhausted) {
			outcome = OutcomeExhausted
		}
		span.RecordError(err)
	}
	span.SetAttributes(attribute.String("outcome", string(outcome)))
	s.metrics.observeAllocation(region.Code, outcome, time.Since(start).Seconds())

	if err != nil {
		return Allocation{}, err
	}

	logger.InfoContext(ctx, "allocated instance",
		"outcome", alloc.Outcome,
		"zone", alloc.Instance.Zone,
		"external_ip", alloc.Instance.ExternalIP,
	)

	ev := Event{
		Name:    alloc.Instance.Name,
		Zone:    alloc.Instance.Zone,
		Region:  region.Code,
		Version: version,
		Outcome: alloc.Outcome,
	}
	if alloc.Instance.ExternalIP.IsValid() {
		ev.ExternalIP = alloc.Instance.ExternalIP.String()
	}
	s.publish(ctx, SubjectAllocated, ev)

	return alloc, nil
}

func (s *svc) allocate(
	ctx context.Context,
	logger *slog.Logger,
	region Region,
	name string,
	version string,
) (Allocation, error) {
	found, err := s.provider.ListInstances(ctx, Filter{
		Name:  name,
		Limit: s.cfg.ListLimit,
	})
	if err != nil {
		return Allocation{}, apierrs.ProviderUnavailable(fmt.Errorf("list instances: %w", err))
	}

	found = lo.Filter(found, func(ins Instance, _ int) bool {
		r, ok := s.catalog.RegionOfZone(ins.Zone)
		return ok && r == region.Code
	})

	logger.InfoContext(ctx, "instances found", "count", len(found))

	if ins, ok := pickRunning(found); ok {
		return Allocation{Instance: ins, Outcome: OutcomeReused}, nil
	}

	logger.InfoContext(ctx, "running instance not found")

	script, err := s.startup.Render(StartupParams{
		Role:        s.cfg.Startup.Role,
		Version:     version,
		LobbyAddr:   s.cfg.Startup.LobbyAddr,
		BattlePort:  s.cfg.Startup.BattlePort,
		ReleaseRepo: s.cfg.Startup.ReleaseRepo,
	})
	if err != nil {
		return Allocation{}, fmt.Errorf("startup script: %w", err)
	}

	cands := append(
		s.resumeCandidates(found, version, script),
		s.createCandidates(region, name, version, script)...,
	)

	o, ok := s.climb(ctx, logger, cands)
	if !ok {
		logger.ErrorContext(ctx, "failed to allocate vm")
		return Allocation{}, apierrs.ErrAllocationExhausted
	}

	ret := Allocation{Instance: o.instance, Outcome: OutcomeCreated}
	if o.stage == stageResume {
		ret.Outcome = OutcomeResumed
	}
	return ret, nil
}

// Event is the payload published for allocations and deletions.
type Event struct {
	Name       string  `json:"name"`
	Zone       string  `json:"zone"`
	Region     string  `json:"region,omitempty"`
	Version    string  `json:"version,omitempty"`
	Outcome    Outcome `json:"outcome,omitempty"`
	ExternalIP string  `json:"external_ip,omitempty"`
}

func (s *svc) publish(ctx context.Context, subject string, v any) {
	if s.publisher == nil {
		return
	}

	payload, err := json.Marshal(v)
	if err != nil {
		s.log(ctx).ErrorContext(ctx, "failed to marshal event", "subject", subject, "err", err)
		return
	}

	if err := s.publisher.Publish(ctx, subject, payload); err != nil {
		s.log(ctx).WarnContext(ctx, "failed to publish event", "subject", subject, "err", err)
	}
}

// log prefers the request scoped logger if the context carries one.
func (s *svc) log(ctx context.Context) *slog.Logger {
	return reqctx.Logger(ctx, s.logger)
}
