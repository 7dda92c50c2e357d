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

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gdxsv/mcsalloc/controlplane"
	"github.com/gdxsv/mcsalloc/controlplane/allocation"
	"github.com/gdxsv/mcsalloc/controlplane/gce"
	"github.com/gdxsv/mcsalloc/controlplane/hcloud"
	"github.com/gdxsv/mcsalloc/internal/gcplog"
	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
	"github.com/peterbourgon/ff/v3"
)

func main() {
	// a missing .env file is fine, the environment may be set already
	_ = godotenv.Load()

	var (
		fs                  = flag.NewFlagSet("mcsalloc", flag.ContinueOnError)
		listenAddr          = fs.String("listen-address", ":8080", "address and port the http server listens on")
		shutdownTimeout     = fs.Duration("shutdown-timeout", 30*time.Second, "how long to wait for in-flight requests on shutdown")
		provider            = fs.String("provider", controlplane.ProviderGCE, "compute provider to use: gce, hcloud or memory")
		gcpProject          = fs.String("gcp-project", "", "google cloud project instances are created in")
		gcpCredentials      = fs.String("gcp-credentials-file", "", "service account key file, application default credentials are used if empty") //nolint:lll
		gceMachineType      = fs.String("gce-machine-type", gce.DefaultConfig.MachineType, "machine type of new instances")
		gceImage            = fs.String("gce-image", gce.DefaultConfig.Image, "boot disk image of new instances")
		gceDiskSize         = fs.Int64("gce-disk-size-gb", gce.DefaultConfig.DiskSizeGB, "boot disk size of new instances in GB")
		gcePreemptible      = fs.Bool("gce-preemptible", gce.DefaultConfig.Preemptible, "whether new instances are preemptible")
		hcloudToken         = fs.String("hcloud-token", "", "hetzner cloud api token")
		hcloudServerType    = fs.String("hcloud-server-type", hcloud.DefaultConfig.ServerType, "server type of new servers")
		hcloudImage         = fs.String("hcloud-image", hcloud.DefaultConfig.Image, "image of new servers")
		regionCatalogFile   = fs.String("region-catalog", "", "yaml file overriding the built-in region catalog")
		startupTemplateFile = fs.String("startup-template", "", "file overriding the built-in startup script template")
		namePrefix          = fs.String("name-prefix", "gdxsv-mcs", "prefix of every instance name managed by this controller")
		listLimit           = fs.Int("list-limit", 100, "maximum number of instances returned by a single inventory query")
		waitTimeout         = fs.Duration("wait-timeout", 30*time.Second, "how long to wait for an instance to become RUNNING")
		pollInterval        = fs.Duration("poll-interval", 2*time.Second, "how often to check the instance status while waiting")
		tags                = fs.String("tags", "http-server", "comma separated network tags attached to new instances")
		role                = fs.String("role", allocation.DefaultRole, "role the match server binary is started with")
		lobbyAddr           = fs.String("lobby-address", "zdxsv.net:9876", "public address of the lobby server")
		battlePort          = fs.Int("battle-port", 9877, "port the match server listens on")
		releaseRepo         = fs.String("release-repo", "inada-s/gdxsv", "github repository releases are downloaded from")
		natsURL             = fs.String("nats-url", "", "nats server to publish allocation events to, disabled if empty")
		natsSubjectPrefix   = fs.String("nats-subject-prefix", "", "prefix prepended to every event subject")
		otlpEndpoint        = fs.String("otlp-endpoint", "", "otlp grpc endpoint traces are exported to, disabled if empty")
		logFormat           = fs.String("log-format", "json", "log output format: json, text or gcp")
		logLevel            = fs.String("log-level", "info", "minimum log level: debug, info, warn or error")
		_                   = fs.String("config", "", "config file in key value format")
	)
	if err := ff.Parse(fs, os.Args[1:],
		ff.WithEnvVarPrefix("MCSALLOC"),
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ff.PlainParser),
		ff.WithAllowMissingConfigFile(true),
	); err != nil {
		die(slog.Default(), "failed to parse config", err)
	}

	logger, err := newLogger(*logFormat, *logLevel, *gcpProject)
	if err != nil {
		die(slog.Default(), "failed to create logger", err)
	}

	var (
		cfg = controlplane.Config{
			ListenAddr:          *listenAddr,
			ShutdownTimeout:     *shutdownTimeout,
			Provider:            *provider,
			GCPProject:          *gcpProject,
			GCPCredentialsFile:  *gcpCredentials,
			GCEMachineType:      *gceMachineType,
			GCEImage:            *gceImage,
			GCEDiskSizeGB:       *gceDiskSize,
			GCEPreemptible:      *gcePreemptible,
			HCloudToken:         *hcloudToken,
			HCloudServerType:    *hcloudServerType,
			HCloudImage:         *hcloudImage,
			RegionCatalogFile:   *regionCatalogFile,
			StartupTemplateFile: *startupTemplateFile,
			NamePrefix:          *namePrefix,
			ListLimit:           *listLimit,
			WaitTimeout:         *waitTimeout,
			PollInterval:        *pollInterval,
			Tags:                splitList(*tags),
			Role:                *role,
			LobbyAddr:           *lobbyAddr,
			BattlePort:          *battlePort,
			ReleaseRepo:         *releaseRepo,
			NATSURL:             *natsURL,
			NATSSubjectPrefix:   *natsSubjectPrefix,
			OTLPEndpoint:        *otlpEndpoint,
		}
		ctx    = context.Background()
		server = controlplane.NewServer(logger, cfg)
	)

	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
		s := <-c
		logger.Info("received shutdown signal", "signal", s)
		server.Stop()
	}()

	if err := server.Run(ctx); err != nil {
		var multi *multierror.Error
		if errors.As(err, &multi) {
			errs := make([]string, 0, len(multi.WrappedErrors()))
			for _, err := range multi.WrappedErrors() {
				errs = append(errs, err.Error())
			}
			die(logger, "failed to run server", errors.New(strings.Join(errs, ",")))
			return
		}
		die(logger, "failed to run server", err)
	}
}

func newLogger(format string, level string, project string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	switch format {
	case "json":
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})), nil
	case "text":
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})), nil
	case "gcp":
		return slog.New(gcplog.NewHandler(os.Stdout, gcplog.Options{
			Level:     lvl,
			ProjectID: project,
			AddSource: true,
		})), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}

func splitList(s string) []string {
	var ret []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			ret = append(ret, part)
		}
	}
	return ret
}

func die(logger *slog.Logger, msg string, err error) {
	logger.Error(msg, "err", err)
	os.Exit(1)
}
