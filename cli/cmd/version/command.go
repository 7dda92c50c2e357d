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

package version

import (
	"fmt"

	"github.com/gdxsv/mcsalloc/internal/buildinfo"
	"github.com/spf13/cobra"
)

func NewCommand() *cobra.Command {
	run := func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "Commit: "+buildinfo.Version())
	}

	return &cobra.Command{
		Use:          "version",
		Short:        "Displays version information",
		Run:          run,
		SilenceUsage: true,
	}
}
