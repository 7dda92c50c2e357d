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
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"text/template"
)

//go:embed startup.sh.tmpl
var defaultStartupScript string

// DefaultRole is the subcommand the gdxsv binary is started with on a
// match server.
const DefaultRole = "mcs"

// StartupParams are the values the boot script is rendered with.
type StartupParams struct {
	Role        string
	Version     string
	LobbyAddr   string
	BattlePort  int
	ReleaseRepo string
}

// StartupTemplate renders the boot script written into instance metadata.
// The guest reads it on every boot, runs the match server and powers the
// machine off once the server process exits.
type StartupTemplate struct {
	tmpl *template.Template
}

func NewStartupTemplate(text string) (StartupTemplate, error) {
	t, err := template.New("startup").Option("missingkey=error").Parse(text)
	if err != nil {
		return StartupTemplate{}, fmt.Errorf("parse startup template: %w", err)
	}
	return StartupTemplate{tmpl: t}, nil
}

// DefaultStartupTemplate returns the template shipped with the binary.
func DefaultStartupTemplate() StartupTemplate {
	t, err := NewStartupTemplate(defaultStartupScript)
	if err != nil {
		panic(err)
	}
	return t
}

// LoadStartupTemplate reads a template from path. An empty path yields
// the default template.
func LoadStartupTemplate(path string) (StartupTemplate, error) {
	if path == "" {
		return DefaultStartupTemplate(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return StartupTemplate{}, fmt.Errorf("read startup template: %w", err)
	}

	return NewStartupTemplate(string(data))
}

func (t StartupTemplate) Render(p StartupParams) (string, error) {
	if p.Version == "" {
		p.Version = LatestVersion
	}
	if p.Role == "" {
		p.Role = DefaultRole
	}

	var buf bytes.Buffer
	if err := t.tmpl.Execute(&buf, p); err != nil {
		return "", fmt.Errorf("render startup script: %w", err)
	}
	return buf.String(), nil
}
