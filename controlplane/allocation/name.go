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
	"fmt"
	"strings"

	"github.com/zeebo/xxh3"
)

// maxNameLen is the resource name limit shared by GCE and Hetzner.
const maxNameLen = 63

// NameKey returns the instance name for a (region, version) pair. At most
// one logical instance slot exists per key, so the key is used both to
// create instances and to look them up again.
func NameKey(prefix, region, version string) string {
	name := prefix + "-" + region + "-" + NormalizeVersion(version)
	if len(name) > maxNameLen {
		name = name[:maxNameLen]
	}
	return strings.TrimRight(name, "-")
}

// NormalizeVersion lowercases v and replaces every character that is not
// allowed in resource names or labels with '-'. The result is empty if v
// has no letter or digit, such a version cannot be allocated.
func NormalizeVersion(v string) string {
	if v == "" {
		v = LatestVersion
	}

	var b strings.Builder
	for _, r := range strings.ToLower(v) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			b.WriteRune(r)
			continue
		}
		b.WriteByte('-')
	}

	return strings.Trim(b.String(), "-")
}

// VersionID is a label-safe fingerprint of the exact version string.
// Versions that normalize to the same name key still get different ids.
func VersionID(v string) string {
	if v == "" {
		v = LatestVersion
	}
	return fmt.Sprintf("%016x", xxh3.HashString(v))
}
