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

package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

// ReadYAMLFile decodes the file at path into T. Unknown keys are an error
// so a misspelled setting is not silently dropped.
func ReadYAMLFile[T any](path string) (T, error) {
	var content T

	data, err := os.ReadFile(path)
	if err != nil {
		return content, fmt.Errorf("read %s: %w", path, err)
	}

	if err := yaml.UnmarshalWithOptions(data, &content, yaml.DisallowUnknownField()); err != nil {
		return content, fmt.Errorf("parse %s: %w", path, err)
	}

	return content, nil
}

// WriteYAMLFile replaces the file at path with the YAML encoding of
// content. The parent directory is created if needed and readers never
// observe a partially written file.
func WriteYAMLFile[T any](content T, path string) (err error) {
	data, err := yaml.Marshal(&content)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	// CreateTemp opens with 0600
	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(f.Name())
		}
	}()

	if _, err := f.Write(data); err != nil {
		return errors.Join(fmt.Errorf("write %s: %w", f.Name(), err), f.Close())
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", f.Name(), err)
	}

	if err := os.Rename(f.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}

	return nil
}
