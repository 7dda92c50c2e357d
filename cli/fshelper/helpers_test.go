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

package fshelper_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/gdxsv/mcsalloc/cli/fshelper"
	"github.com/stretchr/testify/require"
)

func TestConfigHome(t *testing.T) {
	tests := []struct {
		name string
		prep func(t *testing.T, base string)
	}{
		{
			name: "creates missing directory",
			prep: func(*testing.T, string) {},
		},
		{
			name: "existing directory is kept",
			prep: func(t *testing.T, base string) {
				dir := filepath.Join(base, "mcsctl")
				require.NoError(t, os.MkdirAll(dir, 0700))
				require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("endpoint: x"), 0600))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := t.TempDir()
			t.Setenv("XDG_CONFIG_HOME", base)
			tt.prep(t, base)

			dir, err := fshelper.ConfigHome("mcsctl")
			require.NoError(t, err)
			require.Equal(t, filepath.Join(base, "mcsctl"), dir)

			info, err := os.Stat(dir)
			require.NoError(t, err)
			require.True(t, info.IsDir())
		})
	}
}

func TestConfigHomeFallsBackToHome(t *testing.T) {
	if runtime.GOOS == "windows" || runtime.GOOS == "plan9" {
		t.Skip("windows uses the os config dir")
	}

	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", home)

	dir, err := fshelper.ConfigHome("mcsctl")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(home, ".config", "mcsctl"), dir)
}
