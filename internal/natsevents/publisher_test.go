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

package natsevents

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSubject(t *testing.T) {
	require.Equal(t, "mcs.allocated", Subject("", "mcs.allocated"))
	require.Equal(t, "prod.mcs.allocated", Subject("prod", "mcs.allocated"))
}

func TestPublishWithoutConnection(t *testing.T) {
	p := &Publisher{}
	require.ErrorIs(t, p.Publish(context.Background(), "mcs.deleted", nil), ErrNotConnected)
	require.NoError(t, p.Close())
}
