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
	"io"
	"strconv"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"laptudirm.com/x/league/pkg/league/schedule"
)

// league fixtures
func Fixtures() *cobra.Command {
	return &cobra.Command{
		Use:   "fixtures { n | name... }",
		Short: "Print the fixture list of a league",
		Args:  cobra.MinimumNArgs(1),
		Long: heredoc.Doc(`fixtures prints the double round robin fixture list of a
			league between the given players, or between n numbered players
			if a single number is given. An odd field is padded with a bye;
			matches against the bye are never played.`),
		Example: heredoc.Doc(`
			$ league fixtures 4
			$ league fixtures Alice Bob Carol`),

		RunE: func(cmd *cobra.Command, args []string) error {
			names := args
			if len(args) == 1 {
				if n, err := strconv.Atoi(args[0]); err == nil {
					if n < 2 {
						return &schedule.ScheduleError{Competitors: n}
					}

					names = make([]string, n)
					for i := range names {
						names[i] = fmt.Sprintf("Player%d", i+1)
					}
				}
			}

			fixtures, err := schedule.RoundRobin(len(names))
			if err != nil {
				return err
			}

			printFixtures(cmd.OutOrStdout(), fixtures, names)
			return nil
		},
	}
}

func printFixtures(w io.Writer, fixtures schedule.Schedule, names []string) {
	name := func(seat schedule.Seat) string {
		if seat.IsBye() {
			return "\x1b[31mBye\x1b[0m"
		}

		return names[seat]
	}

	for i, set := range fixtures {
		fmt.Fprintf(w, "\x1b[33mFixture Set %d\x1b[0m (Out of %d)\n", i+1, len(fixtures))
		for j, pairing := range set {
			fmt.Fprintf(w, "  Match %d: %s vs. %s\n", j+1, name(pairing.Home), name(pairing.Away))
		}
	}

	fmt.Fprintf(w, "\n%d matches in %d fixture sets\n", fixtures.Matches(), len(fixtures))
}
