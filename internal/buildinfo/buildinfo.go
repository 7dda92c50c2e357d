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

// Package buildinfo reads the vcs information the go toolchain stamps
// into binaries.
package buildinfo

import "runtime/debug"

// Commit returns the vcs revision the binary was built from and whether
// the working tree had uncommitted changes.
func Commit() (string, bool) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "", false
	}

	var (
		commit = ""
		dirty  = false
	)

	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			commit = setting.Value
		case "vcs.modified":
			dirty = setting.Value == "true"
		}
	}

	return commit, dirty
}

// Version is the commit, suffixed with +dirty if needed, or "dev" if the
// binary was built without vcs information.
func Version() string {
	commit, dirty := Commit()
	if commit == "" {
		return "dev"
	}
	if dirty {
		return commit + "+dirty"
	}
	return commit
}
