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

package cmd

import (
	"context"

	"github.com/gdxsv/mcsalloc/cli"
	"github.com/gdxsv/mcsalloc/cli/cmd/alloc"
	"github.com/gdxsv/mcsalloc/cli/cmd/deleteall"
	"github.com/gdxsv/mcsalloc/cli/cmd/list"
	"github.com/gdxsv/mcsalloc/cli/cmd/regions"
	"github.com/gdxsv/mcsalloc/cli/cmd/version"
	"github.com/spf13/cobra"
)

func Root(ctx context.Context, cliCtx cli.Context) *cobra.Command {
	root := &cobra.Command{
		Use:   "mcsctl",
		Short: "Operate the match server allocation controller.",
		Long: `Lists, allocates and deletes match server instances
through the allocation controller.`,
	}

	root.AddCommand(
		list.NewCommand(ctx, cliCtx),
		alloc.NewCommand(ctx, cliCtx),
		deleteall.NewCommand(ctx, cliCtx),
		regions.NewCommand(ctx, cliCtx),
		version.NewCommand(),
	)

	return root
}
