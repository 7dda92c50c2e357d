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

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gdxsv/mcsalloc/controlplane/allocation"
	"github.com/gdxsv/mcsalloc/controlplane/gce"
	"github.com/gdxsv/mcsalloc/controlplane/hcloud"
	"github.com/gdxsv/mcsalloc/controlplane/memory"
	"github.com/gdxsv/mcsalloc/internal/buildinfo"
	"github.com/gdxsv/mcsalloc/internal/gcplog"
	"github.com/gdxsv/mcsalloc/internal/natsevents"
	"github.com/gdxsv/mcsalloc/internal/reqctx"
	"github.com/hashicorp/go-multierror"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"google.golang.org/api/option"
)

type Server struct {
	logger *slog.Logger
	cfg    Config
	stop   chan struct{}
}

func NewServer(logger *slog.Logger, cfg Config) *Server {
	return &Server{
		logger: logger,
		cfg:    cfg,
		stop:   make(chan struct{}),
	}
}

// Stop makes Run shut down gracefully. It must be called at most once.
func (s *Server) Stop() {
	close(s.stop)
}

func (s *Server) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		select {
		case <-s.stop:
			cancel()
		case <-ctx.Done():
		}
	}()

	version := buildinfo.Version()

	shutdownTracing, err := setupTracing(ctx, s.logger, s.cfg.OTLPEndpoint, version)
	if err != nil {
		return fmt.Errorf("setup tracing: %w", err)
	}

	provider, catalog, err := s.provider(ctx, version)
	if err != nil {
		return fmt.Errorf("create provider: %w", err)
	}
	if c, ok := provider.(io.Closer); ok {
		defer c.Close()
	}

	if s.cfg.RegionCatalogFile != "" {
		catalog, err = allocation.LoadCatalog(s.cfg.RegionCatalogFile)
		if err != nil {
			return fmt.Errorf("load region catalog: %w", err)
		}
	}

	startup, err := allocation.LoadStartupTemplate(s.cfg.StartupTemplateFile)
	if err != nil {
		return fmt.Errorf("load startup template: %w", err)
	}

	var publisher allocation.EventPublisher
	if s.cfg.NATSURL != "" {
		pub, err := natsevents.Connect(s.logger, s.cfg.NATSURL, s.cfg.NATSSubjectPrefix)
		if err != nil {
			return err
		}
		defer func() {
			if err := pub.Close(); err != nil {
				s.logger.Warn("failed to close nats connection", "err", err)
			}
		}()
		publisher = pub
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	var (
		svc = allocation.NewService(
			s.logger,
			allocation.Config{
				NamePrefix:   s.cfg.NamePrefix,
				ListLimit:    s.cfg.ListLimit,
				WaitTimeout:  s.cfg.WaitTimeout,
				PollInterval: s.cfg.PollInterval,
				Tags:         s.cfg.Tags,
				Startup: allocation.StartupParams{
					Role:        s.cfg.Role,
					LobbyAddr:   s.cfg.LobbyAddr,
					BattlePort:  s.cfg.BattlePort,
					ReleaseRepo: s.cfg.ReleaseRepo,
				},
			},
			catalog,
			startup,
			provider,
			publisher,
			allocation.NewMetrics(reg),
		)
		mux = http.NewServeMux()
	)

	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	mux.Handle("/", allocation.NewServer(s.logger, svc))

	httpServer := &http.Server{
		Addr: s.cfg.ListenAddr,
		Handler: otelhttp.NewHandler(
			reqctx.Middleware(s.logger)(gcplog.HTTPMiddleware(s.logger)(mux)),
			"mcsalloc",
		),
		ReadHeaderTimeout: 10 * time.Second,
	}

	lis, err := net.Listen("tcp", s.cfg.ListenAddr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	s.logger.Info("serving",
		"addr", lis.Addr().String(),
		"provider", s.cfg.Provider,
		"regions", len(catalog.Regions()),
		"version", version,
	)

	g := multierror.Group{}
	g.Go(func() error {
		if err := httpServer.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			cancel()
			return fmt.Errorf("failed to serve http server: %w", err)
		}
		return nil
	})

	<-ctx.Done()

	s.logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer shutdownCancel()

	g.Go(func() error {
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		if err := shutdownTracing(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown tracing: %w", err)
		}
		return nil
	})

	return g.Wait().ErrorOrNil()
}

func (s *Server) provider(ctx context.Context, version string) (allocation.Provider, allocation.Catalog, error) {
	switch s.cfg.Provider {
	case ProviderGCE:
		var opts []option.ClientOption
		if s.cfg.GCPCredentialsFile != "" {
			opts = append(opts, option.WithCredentialsFile(s.cfg.GCPCredentialsFile))
		}

		p, err := gce.NewProvider(ctx, s.logger, gce.Config{
			Project:     s.cfg.GCPProject,
			MachineType: s.cfg.GCEMachineType,
			Image:       s.cfg.GCEImage,
			DiskSizeGB:  s.cfg.GCEDiskSizeGB,
			Network:     gce.DefaultConfig.Network,
			Preemptible: s.cfg.GCEPreemptible,
		}, opts...)
		if err != nil {
			return nil, allocation.Catalog{}, err
		}
		return p, allocation.GCECatalog(), nil
	case ProviderHCloud:
		p, err := hcloud.NewProvider(s.logger, hcloud.Config{
			Token:      s.cfg.HCloudToken,
			ServerType: s.cfg.HCloudServerType,
			Image:      s.cfg.HCloudImage,
		}, version)
		if err != nil {
			return nil, allocation.Catalog{}, err
		}
		return p, allocation.HetznerCatalog(), nil
	case ProviderMemory:
		return memory.NewProvider(), allocation.GCECatalog(), nil
	default:
		return nil, allocation.Catalog{}, fmt.Errorf("unknown provider %q", s.cfg.Provider)
	}
}
