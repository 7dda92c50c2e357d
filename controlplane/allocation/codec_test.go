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
	"encoding/json"
	"net/netip"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestToViewJSON(t *testing.T) {
	tests := []struct {
		name     string
		ins      Instance
		expected string
	}{
		{
			name: "all fields",
			ins: Instance{
				Name:       "gdxsv-mcs-us-west1-latest",
				Zone:       "us-west1-a",
				Status:     StatusRunning,
				CreatedAt:  time.Date(2025, 2, 23, 13, 12, 15, 0, time.UTC),
				Tags:       []string{"http-server"},
				ExternalIP: netip.MustParseAddr("203.0.113.10"),
			},
			expected: `{"name":"gdxsv-mcs-us-west1-latest","zone":"us-west1-a","created":"2025-02-23T13:12:15Z",` +
				`"status":"RUNNING","tags":["http-server"],"external_ip":"203.0.113.10"}`,
		},
		{
			name: "terminated instance has no external ip",
			ins: Instance{
				Name:   "gdxsv-mcs-us-west1-latest",
				Zone:   "us-west1-a",
				Status: StatusTerminated,
			},
			expected: `{"name":"gdxsv-mcs-us-west1-latest","zone":"us-west1-a","status":"TERMINATED"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(ToView(tt.ins))
			require.NoError(t, err)
			require.JSONEq(t, tt.expected, string(data))
		})
	}
}

func TestParseStatus(t *testing.T) {
	require.Equal(t, StatusRunning, ParseStatus("RUNNING"))
	require.Equal(t, StatusTerminated, ParseStatus("TERMINATED"))
	require.Equal(t, StatusUnknown, ParseStatus("SUSPENDED"))
	require.Equal(t, StatusUnknown, ParseStatus(""))
}

func TestPickRunning(t *testing.T) {
	var (
		base = time.Date(2025, 2, 23, 13, 12, 15, 0, time.UTC)
		a    = Instance{Zone: "z-a", Status: StatusRunning, CreatedAt: base.Add(time.Minute)}
		b    = Instance{Zone: "z-b", Status: StatusRunning, CreatedAt: base}
		c    = Instance{Zone: "z-c", Status: StatusRunning, CreatedAt: base}
		d    = Instance{Zone: "z-d", Status: StatusTerminated, CreatedAt: base.Add(-time.Hour)}
	)

	ins, ok := pickRunning([]Instance{a, c, d, b})
	require.True(t, ok)
	require.Equal(t, b, ins)

	_, ok = pickRunning([]Instance{d})
	require.False(t, ok)
}
