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

package test

import (
	"net/netip"

	"github.com/google/go-cmp/cmp"
)

// IgnoredInstanceFields are set by the provider at observation time and
// differ between otherwise equal snapshots.
var IgnoredInstanceFields = []string{
	"CreatedAt",
	"ExternalIP",
}

// CompareAddr lets cmp look into structs holding a netip.Addr.
var CompareAddr = cmp.Comparer(func(a, b netip.Addr) bool {
	return a == b
})

func IgnoreFields(fields ...string) cmp.Option {
	return cmp.FilterPath(func(path cmp.Path) bool {
		for _, f := range fields {
			if f == path.String() {
				return true
			}
		}
		return false
	}, cmp.Ignore())
}
