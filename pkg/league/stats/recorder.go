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

package stats

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"laptudirm.com/x/league/pkg/league/game"
	"laptudirm.com/x/league/pkg/league/schedule"
)

// Key identifies a single game of a tournament.
type Key struct {
	FixtureSet int
	Game       int
	Pairing    schedule.Pairing
}

// Row holds the statistics of one seat in one game.
type Row struct {
	FixtureSet int
	Game       int
	Seat       game.Seat

	Player   string
	Opponent string

	Result game.Winner // 1 if Player won, 2 if Opponent won, 0 on a draw

	Win, Loss, Draw bool
	Forfeit         bool // true if Player forfeited the game

	PlayerScore      int
	OpponentScore    int
	Features         game.FeatureScores
	OpponentFeatures game.FeatureScores

	MeeplesPlayed  int
	MeepleTurns    []int
	MeepleFeatures []game.Feature

	Turns       int
	AvgTurnTime time.Duration
}

// Recorder is an append-only log of per-game statistics. Every recorded
// game adds exactly two rows, one per seat; rows are never modified once
// recorded. It is safe for concurrent use.
type Recorder struct {
	mu    sync.Mutex
	names []string
	rows  []Row
}

// NewRecorder returns a Recorder for competitors with the given names,
// indexed by their schedule.Seat.
func NewRecorder(names []string) *Recorder {
	return &Recorder{names: append([]string(nil), names...)}
}

// Record appends the rows of the given game.
func (recorder *Recorder) Record(key Key, result *game.Result) {
	seats := [2]schedule.Seat{key.Pairing.Home, key.Pairing.Away}

	var rows [2]Row
	for i, seat := range []game.Seat{game.SeatOne, game.SeatTwo} {
		us, them := seat.Index(), seat.Other().Index()
		relative := result.Winner.Relative(seat)

		row := Row{
			FixtureSet: key.FixtureSet,
			Game:       key.Game,
			Seat:       seat,

			Player:   recorder.name(seats[us]),
			Opponent: recorder.name(seats[them]),

			Result:  relative,
			Win:     relative == game.SeatOneWins,
			Loss:    relative == game.SeatTwoWins,
			Draw:    relative == game.Draw,
			Forfeit: result.Forfeit == seat,

			PlayerScore:      result.Scores[us],
			OpponentScore:    result.Scores[them],
			Features:         result.FeatureScores[us],
			OpponentFeatures: result.FeatureScores[them],

			MeeplesPlayed: len(result.Meeples[us]),

			Turns:       result.Moves(seat),
			AvgTurnTime: result.AverageMoveTime(seat),
		}

		row.MeepleTurns = make([]int, 0, len(result.Meeples[us]))
		row.MeepleFeatures = make([]game.Feature, 0, len(result.Meeples[us]))
		for _, meeple := range result.Meeples[us] {
			row.MeepleTurns = append(row.MeepleTurns, meeple.Turn)
			row.MeepleFeatures = append(row.MeepleFeatures, meeple.Feature)
		}

		rows[i] = row
	}

	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	recorder.rows = append(recorder.rows, rows[0], rows[1])
}

func (recorder *Recorder) name(seat schedule.Seat) string {
	if seat < 0 || int(seat) >= len(recorder.names) {
		return fmt.Sprintf("#%d", seat)
	}

	return recorder.names[seat]
}

// Len returns the number of recorded rows.
func (recorder *Recorder) Len() int {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	return len(recorder.rows)
}

// Rows returns a copy of the recorded rows in insertion order.
func (recorder *Recorder) Rows() []Row {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()

	rows := make([]Row, len(recorder.rows))
	for i, row := range recorder.rows {
		row.MeepleTurns = slices.Clone(row.MeepleTurns)
		row.MeepleFeatures = slices.Clone(row.MeepleFeatures)
		rows[i] = row
	}

	return rows
}

// Header returns the column names of the tabular form of the rows.
func Header() []string {
	header := []string{
		"FixtureSet", "Game", "Player", "Opponent", "Result", "Win", "Loss", "Draw",
		"PlayerScore", "OpponentScore",
	}

	for category := game.FeatureCategory(0); category < game.FeatureCategoryN; category++ {
		header = append(header, category.String())
	}
	for category := game.FeatureCategory(0); category < game.FeatureCategoryN; category++ {
		header = append(header, "Opponent"+category.String())
	}

	return append(header,
		"MeeplesPlayed", "MeepleTurns", "MeepleFeatures", "Turns", "AvgTurnTime", "Forfeit",
	)
}

// Table materializes the recorded rows into string cells, one record per
// row, in the column order of Header.
func (recorder *Recorder) Table() [][]string {
	rows := recorder.Rows()

	table := make([][]string, 0, len(rows))
	for _, row := range rows {
		table = append(table, row.Record())
	}

	return table
}

// Record returns the row's cells in the column order of Header.
func (row Row) Record() []string {
	record := []string{
		strconv.Itoa(row.FixtureSet),
		strconv.Itoa(row.Game),
		row.Player,
		row.Opponent,
		strconv.Itoa(int(row.Result)),
		flag(row.Win), flag(row.Loss), flag(row.Draw),
		strconv.Itoa(row.PlayerScore),
		strconv.Itoa(row.OpponentScore),
	}

	for _, score := range row.Features {
		record = append(record, strconv.Itoa(score))
	}
	for _, score := range row.OpponentFeatures {
		record = append(record, strconv.Itoa(score))
	}

	turns := make([]string, len(row.MeepleTurns))
	for i, turn := range row.MeepleTurns {
		turns[i] = strconv.Itoa(turn)
	}

	features := make([]string, len(row.MeepleFeatures))
	for i, feature := range row.MeepleFeatures {
		features[i] = feature.String()
	}

	return append(record,
		strconv.Itoa(row.MeeplesPlayed),
		"["+strings.Join(turns, ", ")+"]",
		"["+strings.Join(features, ", ")+"]",
		strconv.Itoa(row.Turns),
		strconv.FormatFloat(row.AvgTurnTime.Seconds(), 'f', 6, 64),
		flag(row.Forfeit),
	)
}

func flag(b bool) string {
	if b {
		return "1"
	}

	return "0"
}
