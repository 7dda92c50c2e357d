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

package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gdxsv/mcsalloc/cli"
	"github.com/stretchr/testify/require"
)

func TestCreateOrReadConfig(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", base)
	home := filepath.Join(base, cli.AppName)

	cfg, err := cli.CreateOrReadConfig()
	require.NoError(t, err)
	require.Equal(t, cli.DefaultConfig, cfg)

	written, err := cli.ReadYAMLFile[cli.Config](filepath.Join(home, cli.ConfigFileName))
	require.NoError(t, err)
	require.Equal(t, cli.DefaultConfig, written)

	custom := cli.Config{
		Endpoint:        "https://mcsalloc.example.com",
		CredentialsFile: "/etc/mcsctl/key.json",
	}
	require.NoError(t, cli.WriteYAMLFile(custom, filepath.Join(home, cli.ConfigFileName)))

	cfg, err = cli.CreateOrReadConfig()
	require.NoError(t, err)
	require.Equal(t, custom, cfg)
}

func TestCreateOrReadConfigRejectsUnknownKeys(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", base)

	path := filepath.Join(base, cli.AppName, cli.ConfigFileName)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0700))
	require.NoError(t, os.WriteFile(path, []byte("endpoint: http://localhost:8080\nendpiont: typo\n"), 0600))

	_, err := cli.CreateOrReadConfig()
	require.Error(t, err)
}

func TestWriteYAMLFile(t *testing.T) {
	var (
		dir  = filepath.Join(t.TempDir(), "nested", "dir")
		path = filepath.Join(dir, cli.ConfigFileName)
		cfg  = cli.Config{Endpoint: "https://mcsalloc.example.com"}
	)

	require.NoError(t, cli.WriteYAMLFile(cfg, path))
	require.NoError(t, cli.WriteYAMLFile(cfg, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0600), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	read, err := cli.ReadYAMLFile[cli.Config](path)
	require.NoError(t, err)
	require.Equal(t, cfg, read)
}

func TestNewClientWithoutCredentials(t *testing.T) {
	c, err := cli.NewClient(t.Context(), cli.Config{Endpoint: "http://localhost:8080"})
	require.NoError(t, err)
	require.NotNil(t, c)
}

func TestNewClientMissingCredentials(t *testing.T) {
	_, err := cli.NewClient(t.Context(), cli.Config{
		Endpoint:        "http://localhost:8080",
		CredentialsFile: filepath.Join(t.TempDir(), "missing.json"),
	})
	require.Error(t, err)
}
