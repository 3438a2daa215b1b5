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

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"laptudirm.com/x/league/pkg/league/games"
	"laptudirm.com/x/league/pkg/league/player"
)

// league players
func Players() *cobra.Command {
	return &cobra.Command{
		Use:   "players",
		Short: "Lists the available player kinds and games",
		Args:  cobra.ExactArgs(0),

		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()

			fmt.Fprintln(w, "\x1b[32mPlayer Kinds\x1b[0m:")
			for _, kind := range player.Kinds() {
				fmt.Fprintf(w, "- \x1b[34m%s\x1b[0m\n", kind)
			}

			fmt.Fprintln(w, "\n\x1b[32mGames\x1b[0m:")
			for _, name := range games.Names() {
				fmt.Fprintf(w, "- \x1b[34m%s\x1b[0m\n", name)
			}

			return nil
		},
	}
}
