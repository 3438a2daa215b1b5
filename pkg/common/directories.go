// Copyright © 2024 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package common

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const FilePermissions = 0755

var (
	Directory = filepath.Join(xdg.Home, "league")

	// OutputDirectory is where exports are written by default.
	OutputDirectory = filepath.Join(Directory, "logs")
)

// RunDirectory returns the directory of the given run's exports.
func RunDirectory(output, runID string) string {
	if output == "" {
		output = OutputDirectory
	}

	return filepath.Join(output, runID)
}

// EnsureDirectory creates the directory and any missing parents.
func EnsureDirectory(dir string) error {
	return os.MkdirAll(dir, FilePermissions)
}
