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

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gdxsv/mcsalloc/cli/fshelper"
	"github.com/gdxsv/mcsalloc/client"
)

const (
	AppName        = "mcsctl"
	ConfigFileName = "config.yaml"
)

var DefaultConfig = Config{
	Endpoint: "http://localhost:8080",
}

type Config struct {
	Endpoint string `yaml:"endpoint"`
	// CredentialsFile is a service account key. If set, requests carry an
	// id token for Endpoint.
	CredentialsFile string `yaml:"credentialsFile,omitempty"`
}

// CreateOrReadConfig reads the config from the config home and writes the
// default one if it does not exist yet.
func CreateOrReadConfig() (Config, error) {
	cfgHome, err := fshelper.ConfigHome(AppName)
	if err != nil {
		return Config{}, fmt.Errorf("determine config home: %w", err)
	}

	cfgPath := filepath.Join(cfgHome, ConfigFileName)

	cfg, err := ReadYAMLFile[Config](cfgPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := WriteYAMLFile(DefaultConfig, cfgPath); err != nil {
			return Config{}, fmt.Errorf("write default config: %w", err)
		}
		cfg = DefaultConfig
	}

	return cfg, nil
}

// NewClient creates the controller client described by cfg.
func NewClient(ctx context.Context, cfg Config) (*client.Client, error) {
	if cfg.CredentialsFile == "" {
		return client.New(cfg.Endpoint), nil
	}

	hc, err := client.IDTokenHTTPClient(ctx, cfg.CredentialsFile, cfg.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("create id token client: %w", err)
	}

	return client.New(cfg.Endpoint, client.WithHTTPClient(hc)), nil
}
