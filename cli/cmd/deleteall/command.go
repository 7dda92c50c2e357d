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

package deleteall

import (
	"context"
	"errors"
	"fmt"

	"github.com/gdxsv/mcsalloc/cli"
	"github.com/gdxsv/mcsalloc/cli/cmd/list"
	"github.com/spf13/cobra"
)

var errNotConfirmed = errors.New("refusing to delete without --yes")

func NewCommand(ctx context.Context, cliCtx cli.Context) *cobra.Command {
	var yes bool

	run := func(cmd *cobra.Command, args []string) error {
		if !yes {
			return errNotConfirmed
		}

		views, err := cliCtx.Client.DeleteAll(ctx)
		if err != nil {
			return fmt.Errorf("error while deleting instances: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Deletion issued for %d instance(s)\n", len(views))
		list.PrintViews(cmd.OutOrStdout(), views)
		return nil
	}

	cmd := &cobra.Command{
		Use:          "deleteall",
		Short:        "Deletes every match server instance.",
		RunE:         run,
		SilenceUsage: true,
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm the deletion")

	return cmd
}
