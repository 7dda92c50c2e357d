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

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/gdxsv/mcsalloc/cli"
	clicmd "github.com/gdxsv/mcsalloc/cli/cmd"
)

func main() {
	cfg, err := cli.CreateOrReadConfig()
	if err != nil {
		die("Config error", err)
	}

	if ep := os.Getenv("MCSCTL_ENDPOINT"); ep != "" {
		cfg.Endpoint = ep
	}

	ctx := context.Background()

	c, err := cli.NewClient(ctx, cfg)
	if err != nil {
		die("Failed to create client", err)
	}

	cliCtx := cli.Context{
		Config: cfg,
		Client: c,
	}

	if err := clicmd.Root(ctx, cliCtx).Execute(); err != nil {
		os.Exit(1)
	}
}

func die(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "%s: %v\n", msg, err)
	os.Exit(1)
}
