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
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/samber/lo"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type stage string

const (
	stageResume stage = "resume"
	stageCreate stage = "create"
)

// candidate is one rung of the allocation ladder. Resume candidates come
// first in inventory order, followed by one create candidate per zone in
// catalog order.
type candidate struct {
	stage stage
	zone  string
	name  string
	run   func(ctx context.Context) (Instance, error)
}

// outcome is the tagged result of trying a single candidate.
type outcome struct {
	stage    stage
	zone     string
	instance Instance
	err      error
}

func (s *svc) attempt(ctx context.Context, c candidate) outcome {
	ctx, span := tracer.Start(ctx, "allocation."+string(c.stage), trace.WithAttributes(
		attribute.String("zone", c.zone),
		attribute.String("instance", c.name),
	))
	defer span.End()

	ins, err := c.run(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
	}

	return outcome{
		stage:    c.stage,
		zone:     c.zone,
		instance: ins,
		err:      err,
	}
}

// climb tries the candidates in order and returns the first successful
// outcome. Failed outcomes are expected, they are logged and counted and
// the next candidate is tried.
func (s *svc) climb(ctx context.Context, logger *slog.Logger, cands []candidate) (outcome, bool) {
	for _, c := range cands {
		logger.InfoContext(ctx, "trying candidate", "stage", c.stage, "zone", c.zone)

		o := s.attempt(ctx, c)
		s.metrics.observeAttempt(o.stage, o.err)

		if o.err == nil {
			return o, true
		}

		logger.WarnContext(ctx, "candidate failed", "stage", o.stage, "zone", o.zone, "err", o.err)
	}
	return outcome{}, false
}

func (s *svc) resumeCandidates(found []Instance, version string, script string) []candidate {
	terminated := lo.Filter(found, func(ins Instance, _ int) bool {
		return ins.Status == StatusTerminated
	})

	return lo.Map(terminated, func(ins Instance, _ int) candidate {
		return candidate{
			stage: stageResume,
			zone:  ins.Zone,
			name:  ins.Name,
			run: func(ctx context.Context) (Instance, error) {
				return s.resume(ctx, ins, version, script)
			},
		}
	})
}

func (s *svc) createCandidates(region Region, name string, version string, script string) []candidate {
	return lo.Map(s.catalog.ZoneNames(region), func(zone string, _ int) candidate {
		return candidate{
			stage: stageCreate,
			zone:  zone,
			name:  name,
			run: func(ctx context.Context) (Instance, error) {
				return s.create(ctx, zone, name, version, script)
			},
		}
	})
}

func (s *svc) resume(ctx context.Context, ins Instance, version string, script string) (Instance, error) {
	// do not silently re-stamp an instance that was set up for a
	// different version, this can happen if two versions normalize
	// to the same name key.
	if v, ok := ins.Labels[VersionLabel]; ok && v != NormalizeVersion(version) {
		return Instance{}, fmt.Errorf("version mismatch: instance is labelled %q", v)
	}
	if id, ok := ins.Labels[VersionIDLabel]; ok && id != VersionID(version) {
		return Instance{}, fmt.Errorf("version mismatch: instance was created for another spelling of %q", version)
	}

	if err := s.provider.SetMetadata(ctx, ins.Zone, ins.Name, map[string]string{
		MetadataStartupScript: script,
	}); err != nil {
		return Instance{}, fmt.Errorf("set metadata: %w", err)
	}

	if err := s.provider.StartInstance(ctx, ins.Zone, ins.Name); err != nil {
		return Instance{}, fmt.Errorf("start instance: %w", err)
	}

	return s.waitRunning(ctx, ins.Zone, ins.Name)
}

func (s *svc) create(ctx context.Context, zone string, name string, version string, script string) (Instance, error) {
	if _, err := s.provider.CreateInstance(ctx, CreateSpec{
		Name: name,
		Zone: zone,
		Tags: s.cfg.Tags,
		Labels: map[string]string{
			RoleLabel:      RoleMatchServer,
			VersionLabel:   NormalizeVersion(version),
			VersionIDLabel: VersionID(version),
		},
		Metadata: map[string]string{
			MetadataStartupScript: script,
		},
	}); err != nil {
		return Instance{}, fmt.Errorf("create instance: %w", err)
	}

	return s.waitRunning(ctx, zone, name)
}

// waitRunning polls the instance until it reports RUNNING and returns that
// snapshot. It gives up after the configured wait timeout. Giving up does
// not cancel anything on the provider side, a later request may still
// observe the instance coming up.
func (s *svc) waitRunning(ctx context.Context, zone string, name string) (Instance, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.WaitTimeout)
	defer cancel()

	t := time.NewTicker(s.cfg.PollInterval)
	defer t.Stop()

	for {
		ins, err := s.provider.GetInstance(ctx, zone, name)
		if err == nil {
			switch ins.Status {
			case StatusRunning:
				return ins, nil
			case StatusTerminated, StatusStopping:
				return Instance{}, fmt.Errorf("instance went %s while waiting for %s", ins.Status, StatusRunning)
			}
		} else {
			s.log(ctx).DebugContext(ctx, "instance status check failed", "zone", zone, "name", name, "err", err)
		}

		select {
		case <-t.C:
		case <-ctx.Done():
			return Instance{}, fmt.Errorf("wait for %s: %w", StatusRunning, ctx.Err())
		}
	}
}

// pickRunning returns the oldest RUNNING instance. More than one RUNNING
// instance per key is left as is, the choice only has to be stable.
func pickRunning(found []Instance) (Instance, bool) {
	running := lo.Filter(found, func(ins Instance, _ int) bool {
		return ins.Status == StatusRunning
	})
	if len(running) == 0 {
		return Instance{}, false
	}

	slices.SortStableFunc(running, func(a, b Instance) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.Zone, b.Zone)
	})

	return running[0], true
}
