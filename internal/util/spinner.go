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

package util

import (
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/mattn/go-isatty"
)

const SPIN = 14

var working = spinner.New(spinner.CharSets[SPIN], 100*time.Millisecond)

// StartSpinner starts the ~working~ spinner with the given suffix.
func StartSpinner(suffix string) {
	working.Suffix = " " + suffix
	working.Start()
}

// PauseSpinner stops the ~working~ spinner.
func PauseSpinner() {
	working.Stop()
}

// Working runs fn while showing the spinner on w, if w is a terminal.
func Working(w io.Writer, suffix string, fn func() error) error {
	if !isTerminal(w) {
		return fn()
	}

	working.Writer = w
	StartSpinner(suffix)
	defer PauseSpinner()

	return fn()
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}

	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
