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

package regions

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/gdxsv/mcsalloc/cli"
	"github.com/rodaine/table"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func NewCommand(ctx context.Context, cliCtx cli.Context) *cobra.Command {
	run := func(cmd *cobra.Command, args []string) error {
		regions, err := cliCtx.Client.Regions(ctx)
		if err != nil {
			return fmt.Errorf("error while listing regions: %w", err)
		}

		codes := lo.Keys(regions)
		slices.Sort(codes)

		t := table.New("REGION", "LOCATION", "GROUP", "ZONES").WithWriter(cmd.OutOrStdout())
		for _, c := range codes {
			r := regions[c]
			t.AddRow(c, r.Location, r.Group, strings.Join(r.Zones, ","))
		}
		t.Print()

		return nil
	}

	return &cobra.Command{
		Use:          "regions",
		Short:        "Lists the regions match servers can be allocated in.",
		RunE:         run,
		SilenceUsage: true,
	}
}
