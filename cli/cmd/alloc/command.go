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

package alloc

import (
	"context"
	"fmt"

	"github.com/gdxsv/mcsalloc/cli"
	"github.com/gdxsv/mcsalloc/internal/ptr"
	"github.com/spf13/cobra"
)

func NewCommand(ctx context.Context, cliCtx cli.Context) *cobra.Command {
	var version string

	run := func(cmd *cobra.Command, args []string) error {
		v, err := cliCtx.Client.Alloc(ctx, args[0], version)
		if err != nil {
			return fmt.Errorf("error while allocating instance: %w", err)
		}

		t := cli.Section(cmd.OutOrStdout())
		t.AddRow("Name:", v.Name)
		t.AddRow("Zone:", v.Zone)
		t.AddRow("Status:", v.Status)
		t.AddRow("External IP:", ptr.Deref(v.ExternalIP))
		t.AddRow("Created:", v.Created)
		t.Print()

		return nil
	}

	cmd := &cobra.Command{
		Use:          "alloc <region>",
		Short:        "Returns a running match server in the region, creating one if needed.",
		Args:         cobra.ExactArgs(1),
		RunE:         run,
		SilenceUsage: true,
	}

	cmd.Flags().StringVar(&version, "version", "", "release version of the match server (default latest)")

	return cmd
}
