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

package table

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"

	"laptudirm.com/x/league/pkg/league/match"
	"laptudirm.com/x/league/pkg/league/schedule"
)

// Match points.
const (
	WinPoints      = 4
	DrawPoints     = 2
	BonusPoints    = 1
	BonusWinRatio  = 0.70 // winner's game ratio at or above which it earns a bonus
	BonusLossRatio = 0.55 // winner's game ratio at or below which the loser earns a bonus
)

// ErrNoGames is returned by Apply when the summary has no games. Such a
// summary leaves the table untouched.
var ErrNoGames = match.ErrNoGames

// Row is the standing of a single competitor.
type Row struct {
	Position int
	Player   string
	Seat     schedule.Seat

	MatchesPlayed int
	Points        int
	BonusWins     int
	BonusLosses   int

	Wins, Losses, Draws int

	// PD is the accumulated points differential: the sum of the rounded
	// mean per-game score differentials of every match played.
	PD float64

	GameWins, GameLosses, GameDraws int
}

// Award holds the points credited to each side of a match.
type Award struct {
	Home, Away int
	PD         float64 // Home's gain; Away gains the opposite
}

// Total returns the number of points credited by the match.
func (award Award) Total() int {
	return award.Home + award.Away
}

type entry struct {
	sync.Mutex
	Row
}

// Table is a league table. Apply may be called concurrently for disjoint
// pairings, as happens within a fixture set; Sort must not run
// concurrently with Apply.
type Table struct {
	entries []*entry

	// bySeat maps a seat to its entry, independent of the current order.
	bySeat []*entry
}

// New returns a table with one zeroed row per competitor, in the given
// order.
func New(names []string) *Table {
	table := &Table{
		entries: make([]*entry, len(names)),
		bySeat:  make([]*entry, len(names)),
	}

	for i, name := range names {
		e := &entry{Row: Row{
			Position: i + 1,
			Player:   name,
			Seat:     schedule.Seat(i),
		}}

		table.entries[i] = e
		table.bySeat[i] = e
	}

	return table
}

// Len returns the number of competitors.
func (table *Table) Len() int {
	return len(table.entries)
}

// Apply credits the summary of a completed match to the table. Home is the
// competitor which played in seat one.
func (table *Table) Apply(pairing schedule.Pairing, summary match.Summary) (Award, error) {
	if pairing.IsBye() {
		return Award{}, nil
	}

	if summary.Games == 0 {
		return Award{}, ErrNoGames
	}

	home, err := table.entry(pairing.Home)
	if err != nil {
		return Award{}, err
	}

	away, err := table.entry(pairing.Away)
	if err != nil {
		return Award{}, err
	}

	if home == away {
		return Award{}, fmt.Errorf("table: seat %d paired with itself", pairing.Home)
	}

	mean, err := summary.MeanDifferential()
	if err != nil {
		return Award{}, err
	}

	award := Score(summary)
	award.PD = mean

	// lock in seat order so concurrent applies can not deadlock
	first, second := home, away
	if pairing.Away < pairing.Home {
		first, second = away, home
	}

	first.Lock()
	defer first.Unlock()
	second.Lock()
	defer second.Unlock()

	home.credit(award.Home, +mean, summary.SeatOneWins, summary.SeatTwoWins, summary.Draws)
	away.credit(award.Away, -mean, summary.SeatTwoWins, summary.SeatOneWins, summary.Draws)

	switch {
	case summary.SeatOneWins > summary.SeatTwoWins:
		home.Wins++
		away.Losses++
		home.BonusWins += award.Home - WinPoints
		away.BonusLosses += award.Away
	case summary.SeatTwoWins > summary.SeatOneWins:
		away.Wins++
		home.Losses++
		away.BonusWins += award.Away - WinPoints
		home.BonusLosses += award.Home
	default:
		home.Draws++
		away.Draws++
	}

	return award, nil
}

// Score computes the points earned by each side of a match with the given
// summary without touching any table.
func Score(summary match.Summary) Award {
	w1, w2 := summary.SeatOneWins, summary.SeatTwoWins
	if summary.Games == 0 {
		return Award{}
	}

	switch {
	case w1 > w2:
		home, away := bonus(w1, summary.Games)
		return Award{Home: WinPoints + home, Away: away}
	case w2 > w1:
		away, home := bonus(w2, summary.Games)
		return Award{Home: home, Away: WinPoints + away}
	default:
		return Award{Home: DrawPoints, Away: DrawPoints}
	}
}

// bonus returns the bonus points of the winner and the loser of a match in
// which the winner won wins of the given number of games.
func bonus(wins, games int) (winner, loser int) {
	ratio := float64(wins) / float64(games)

	switch {
	case ratio >= BonusWinRatio:
		return BonusPoints, 0
	case ratio <= BonusLossRatio:
		return 0, BonusPoints
	default:
		return 0, 0
	}
}

func (e *entry) credit(points int, pd float64, wins, losses, draws int) {
	e.MatchesPlayed++
	e.Points += points
	e.PD += pd
	e.GameWins += wins
	e.GameLosses += losses
	e.GameDraws += draws
}

func (table *Table) entry(seat schedule.Seat) (*entry, error) {
	if seat < 0 || int(seat) >= len(table.bySeat) {
		return nil, fmt.Errorf("table: unknown seat %d", seat)
	}

	return table.bySeat[seat], nil
}

// Sort orders the table by points, then points differential, then match
// wins, all descending, and reassigns positions. Competitors which are tied
// on all three keep their previous relative order.
func (table *Table) Sort() {
	sort.SliceStable(table.entries, func(i, j int) bool {
		a, b := &table.entries[i].Row, &table.entries[j].Row
		switch {
		case a.Points != b.Points:
			return a.Points > b.Points
		case a.PD != b.PD:
			return a.PD > b.PD
		default:
			return a.Wins > b.Wins
		}
	})

	for i, e := range table.entries {
		e.Position = i + 1
	}
}

// Rows returns a copy of the table's rows in position order.
func (table *Table) Rows() []Row {
	rows := make([]Row, len(table.entries))
	for i, e := range table.entries {
		e.Lock()
		rows[i] = e.Row
		e.Unlock()
	}

	return rows
}

// Row returns the row of the competitor in the given seat.
func (table *Table) Row(seat schedule.Seat) (Row, error) {
	e, err := table.entry(seat)
	if err != nil {
		return Row{}, err
	}

	e.Lock()
	defer e.Unlock()
	return e.Row, nil
}

// Elo is the game-level Elo estimate of a competitor, shown by Report.
type Elo struct {
	Elo, Error float64
}

// Report prints the table to w. The elo slice is indexed by seat and may be
// nil.
func (table *Table) Report(w io.Writer, elo []Elo) error {
	var errs []error
	printf := func(format string, a ...any) {
		if _, err := fmt.Fprintf(w, format, a...); err != nil {
			errs = append(errs, err)
		}
	}

	printf("╔══════════════════════════════════════════════════════════════════════════════╗\n")
	printf("║  #  Name              Pts    PD      W   L   D   BW  BL   Games    Elo Error ║\n")
	printf("╠══════════════════════════════════════════════════════════════════════════════╣\n")
	for _, row := range table.Rows() {
		var rating Elo
		if int(row.Seat) < len(elo) {
			rating = elo[row.Seat]
		}

		printf(
			"║ %2d. %-15s %4d %+7.2f   %3d %3d %3d   %2d  %2d   %5d  %+5.0f %5.0f ║\n",
			row.Position, row.Player,
			row.Points, row.PD,
			row.Wins, row.Losses, row.Draws,
			row.BonusWins, row.BonusLosses,
			row.GameWins+row.GameLosses+row.GameDraws,
			rating.Elo, rating.Error,
		)
	}
	printf("╚══════════════════════════════════════════════════════════════════════════════╝\n")

	return errors.Join(errs...)
}
