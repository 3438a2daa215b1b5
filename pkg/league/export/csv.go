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

package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"

	"laptudirm.com/x/league/pkg/league/stats"
	"laptudirm.com/x/league/pkg/league/table"
)

const (
	LeagueTableFile = "FinalLeagueTable.csv"
	PlayerStatsFile = "PlayerStats.csv"
)

// LeagueTableHeader is the header of the exported league table.
var LeagueTableHeader = []string{
	"Pos", "Player", "MatchesPlayed", "Points", "BWP", "BLP", "W", "L", "D", "PD",
}

// WriteCSV writes the league table and the player statistics to the
// directory as CSV files and returns the paths of the written files.
func WriteCSV(dir string, standings []table.Row, recorder *stats.Recorder) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	league := make([][]string, 0, len(standings)+1)
	league = append(league, LeagueTableHeader)
	for _, row := range standings {
		league = append(league, []string{
			strconv.Itoa(row.Position),
			row.Player,
			strconv.Itoa(row.MatchesPlayed),
			strconv.Itoa(row.Points),
			strconv.Itoa(row.BonusWins),
			strconv.Itoa(row.BonusLosses),
			strconv.Itoa(row.Wins),
			strconv.Itoa(row.Losses),
			strconv.Itoa(row.Draws),
			strconv.FormatFloat(row.PD, 'f', 2, 64),
		})
	}

	files := []string{
		filepath.Join(dir, LeagueTableFile),
		filepath.Join(dir, PlayerStatsFile),
	}

	if err := writeCSV(files[0], league); err != nil {
		return nil, err
	}

	// the stats table is only materialized here, once
	if err := writeCSV(files[1], append([][]string{stats.Header()}, recorder.Table()...)); err != nil {
		return nil, err
	}

	return files, nil
}

func writeCSV(name string, records [][]string) error {
	file, err := os.Create(name)
	if err != nil {
		return err
	}

	w := csv.NewWriter(file)
	if err := w.WriteAll(records); err != nil {
		file.Close()
		return err
	}

	return file.Close()
}
