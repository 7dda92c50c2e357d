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

package list

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/gdxsv/mcsalloc/cli"
	"github.com/gdxsv/mcsalloc/controlplane/allocation"
	"github.com/gdxsv/mcsalloc/internal/ptr"
	"github.com/rodaine/table"
	"github.com/spf13/cobra"
)

func NewCommand(ctx context.Context, cliCtx cli.Context) *cobra.Command {
	run := func(cmd *cobra.Command, args []string) error {
		views, err := cliCtx.Client.List(ctx)
		if err != nil {
			return fmt.Errorf("error while listing instances: %w", err)
		}

		PrintViews(cmd.OutOrStdout(), views)
		return nil
	}

	return &cobra.Command{
		Use:          "list",
		Short:        "Lists match server instances known to the controller.",
		RunE:         run,
		SilenceUsage: true,
	}
}

// PrintViews prints one row per instance.
func PrintViews(w io.Writer, views []allocation.View) {
	t := table.New("NAME", "ZONE", "STATUS", "EXTERNAL IP", "CREATED", "TAGS").WithWriter(w)
	for _, v := range views {
		t.AddRow(v.Name, v.Zone, v.Status, ptr.Deref(v.ExternalIP), v.Created, strings.Join(v.Tags, ","))
	}
	t.Print()
}
