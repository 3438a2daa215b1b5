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

package tournament

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"laptudirm.com/x/league/pkg/league/game"
	"laptudirm.com/x/league/pkg/league/games"
	"laptudirm.com/x/league/pkg/league/match"
	"laptudirm.com/x/league/pkg/league/player"
	"laptudirm.com/x/league/pkg/league/schedule"
	"laptudirm.com/x/league/pkg/league/stats"
	"laptudirm.com/x/league/pkg/league/table"
)

func NewTournament(config Config, factory *player.Factory) (*Tournament, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var tour Tournament
	tour.Config = config
	tour.Out = os.Stdout
	tour.id = uuid.New()

	names := make([]string, 0, len(config.Players))
	seen := make(map[string]bool, len(config.Players))
	for _, playerConfig := range config.Players {
		p, err := factory.New(playerConfig)
		if err != nil {
			return nil, err
		}

		if seen[p.Name()] {
			return nil, fmt.Errorf("%w: duplicate player name %q", ErrInvalidConfig, p.Name())
		}
		seen[p.Name()] = true

		tour.players = append(tour.players, p)
		names = append(names, p.Name())
	}

	var err error
	tour.schedule, err = schedule.RoundRobin(len(tour.players))
	if err != nil {
		return nil, err
	}

	start, _ := games.StartPosition(config.Game)
	tour.openings, err = games.NewBook(config.Openings.File, config.Openings.Order, start)
	if err != nil {
		return nil, err
	}

	tour.NewState = func(position string) (game.State, error) {
		return games.New(config.Game, position)
	}

	tour.table = table.New(names)
	tour.recorder = stats.NewRecorder(names)

	return &tour, nil
}

// Tournament is a double round robin league. Every fixture set is played
// to completion before the league table is sorted and reported.
type Tournament struct {
	Config Config

	// Out receives the standings after every fixture set.
	Out io.Writer

	// NewState creates the state of a new game from an opening position.
	NewState func(position string) (game.State, error)

	id       uuid.UUID
	players  []player.Player
	schedule schedule.Schedule
	openings *games.Book

	table    *table.Table
	recorder *stats.Recorder

	mu      sync.Mutex
	aborted []*match.AbortedError
}

// ID returns the tournament's unique run ID.
func (tour *Tournament) ID() string {
	return tour.id.String()
}

func (tour *Tournament) Schedule() schedule.Schedule {
	return tour.schedule
}

func (tour *Tournament) Players() []player.Player {
	return tour.players
}

// Standings returns the rows of the league table in position order.
func (tour *Tournament) Standings() []table.Row {
	return tour.table.Rows()
}

// Stats returns the per-game statistics recorded so far.
func (tour *Tournament) Stats() *stats.Recorder {
	return tour.recorder
}

// Aborted returns the matches which could not be completed.
func (tour *Tournament) Aborted() []*match.AbortedError {
	tour.mu.Lock()
	defer tour.mu.Unlock()
	return append([]*match.AbortedError(nil), tour.aborted...)
}

func (tour *Tournament) concurrency() int {
	for _, p := range tour.players {
		if !p.IsAI() {
			// interactive players share one terminal
			return 1
		}
	}

	return max(tour.Config.Concurrency, 1)
}

// Start plays the whole schedule. It stops early only if ctx is done; a
// match which fails is logged and skipped without crediting any points.
func (tour *Tournament) Start(ctx context.Context) error {
	logrus.Infof(
		"Starting %s (%s): %d players, %d fixture sets, %d matches of %d games",
		tour.Config.Event, tour.ID(),
		len(tour.players), len(tour.schedule),
		tour.schedule.Matches(), tour.Config.GamesPerMatch,
	)

	for i, set := range tour.schedule {
		number := i + 1
		logrus.Infof("\x1b[33mStarting\x1b[0m Fixture Set %d (Out of %d)", number, len(tour.schedule))

		if err := tour.playFixtureSet(ctx, number, set); err != nil {
			return err
		}

		tour.table.Sort()

		fmt.Fprintf(tour.Out, "\nLeague Table after Fixture Set %d:\n\n", number)
		if err := tour.Report(tour.Out); err != nil {
			return err
		}
	}

	return nil
}

func (tour *Tournament) playFixtureSet(ctx context.Context, number int, set schedule.FixtureSet) error {
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(tour.concurrency())

	for i, pairing := range set {
		if pairing.IsBye() {
			logrus.Infof("Match %d: %s: No Matches Played", i+1, tour.describe(pairing))
			continue
		}

		group.Go(func() error {
			return tour.playMatch(ctx, number, i+1, pairing)
		})
	}

	// every match must apply its summary before the table is sorted
	return group.Wait()
}

func (tour *Tournament) playMatch(ctx context.Context, set, number int, pairing schedule.Pairing) error {
	logger := logrus.WithFields(logrus.Fields{
		"set":   set,
		"match": number,
	})

	logger.Infof("Match %d: %s", number, tour.describe(pairing))

	summary, err := match.Run(ctx, &match.Config{
		FixtureSet: set,
		Pairing:    pairing,
		Games:      tour.Config.GamesPerMatch,
		Players: [2]game.Chooser{
			tour.players[pairing.Home],
			tour.players[pairing.Away],
		},
		NewState: func() (game.State, error) {
			return tour.NewState(tour.openings.Next())
		},
		Options: game.Options{MoveTimeout: tour.Config.MoveTimeout},
	}, tour.recorder)

	var aborted *match.AbortedError
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err

	case errors.As(err, &aborted):
		logger.Errorf("Skipping match: %v", aborted)

		tour.mu.Lock()
		tour.aborted = append(tour.aborted, aborted)
		tour.mu.Unlock()
		return nil

	case err != nil:
		return err
	}

	award, err := tour.table.Apply(pairing, summary)
	if errors.Is(err, table.ErrNoGames) {
		logger.Warn("Match has no games, not updating the table")
		return nil
	} else if err != nil {
		return err
	}

	logger.Infof(
		"\x1b[32mFinished\x1b[0m Match %d: %s: Player1 Wins: %d  Player2 Wins: %d  Draws: %d  (Points Earned - Player 1: %d  Player 2: %d)",
		number, tour.describe(pairing),
		summary.SeatOneWins, summary.SeatTwoWins, summary.Draws,
		award.Home, award.Away,
	)

	return nil
}

func (tour *Tournament) name(seat schedule.Seat) string {
	if seat.IsBye() {
		return "Bye"
	}

	return tour.players[seat].Name()
}

func (tour *Tournament) describe(pairing schedule.Pairing) string {
	return fmt.Sprintf("%s vs. %s", tour.name(pairing.Home), tour.name(pairing.Away))
}

// Report prints the current league table to w.
func (tour *Tournament) Report(w io.Writer) error {
	performances := tour.recorder.Performances()

	elo := make([]table.Elo, len(performances))
	for i, performance := range performances {
		lower, mu, upper := performance.Elo()
		elo[i] = table.Elo{
			Elo:   mu,
			Error: math.Abs(math.Max(upper-mu, mu-lower)),
		}
	}

	return tour.table.Report(w, elo)
}
