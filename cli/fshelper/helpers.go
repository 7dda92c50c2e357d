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

package fshelper

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// ConfigHome returns the config directory of app and creates it if it
// does not exist. $XDG_CONFIG_HOME is honored on every platform, else
// ~/.config is used on unix-like systems and the OS config dir elsewhere.
func ConfigHome(app string) (string, error) {
	base, err := configBase()
	if err != nil {
		return "", err
	}

	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("create config home %s: %w", dir, err)
	}

	return dir, nil
}

func configBase() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return xdg, nil
	}

	if runtime.GOOS == "windows" || runtime.GOOS == "plan9" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("get user config dir: %w", err)
		}
		return dir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get user home dir: %w", err)
	}
	return filepath.Join(home, ".config"), nil
}
