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
	"time"

	"github.com/gdxsv/mcsalloc/internal/ptr"
)

// View is the public JSON representation of an instance. Fields the
// provider did not report are omitted instead of being sent empty.
type View struct {
	Name       string   `json:"name"`
	Zone       string   `json:"zone,omitempty"`
	Created    string   `json:"created,omitempty"`
	Status     string   `json:"status,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	ExternalIP *string  `json:"external_ip,omitempty"`
}

// ToView converts the domain object to a transport layer object
func ToView(ins Instance) View {
	v := View{
		Name:   ins.Name,
		Zone:   ins.Zone,
		Status: string(ins.Status),
		Tags:   ins.Tags,
	}

	if !ins.CreatedAt.IsZero() {
		v.Created = ins.CreatedAt.Format(time.RFC3339)
	}

	if ins.ExternalIP.IsValid() {
		v.ExternalIP = ptr.String(ins.ExternalIP.String())
	}

	return v
}

func ToViews(instances []Instance) []View {
	ret := make([]View, 0, len(instances))
	for _, ins := range instances {
		ret = append(ret, ToView(ins))
	}
	return ret
}
