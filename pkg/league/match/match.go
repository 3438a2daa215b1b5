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

package match

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"laptudirm.com/x/league/pkg/league/game"
	"laptudirm.com/x/league/pkg/league/schedule"
	"laptudirm.com/x/league/pkg/league/stats"
)

// Sink receives the result of every game played.
type Sink interface {
	Record(key stats.Key, result *game.Result)
}

// Config describes a single match between two seats.
type Config struct {
	FixtureSet int
	Pairing    schedule.Pairing

	// Number of games to be played. Seats are fixed for the whole match.
	Games int

	// Players[0] sits in seat one, the Home seat of the pairing.
	Players [2]game.Chooser

	// NewState creates the state for a new game.
	NewState func() (game.State, error)

	Options game.Options
}

// AbortedError is returned when a match could not be completed. Aborted
// matches are not credited to either side.
type AbortedError struct {
	FixtureSet int
	Pairing    schedule.Pairing
	Game       int
	Err        error
}

func (err *AbortedError) Error() string {
	return fmt.Sprintf(
		"match %d vs %d of fixture set %d aborted in game %d: %v",
		err.Pairing.Home, err.Pairing.Away, err.FixtureSet, err.Game, err.Err,
	)
}

func (err *AbortedError) Unwrap() error {
	return err.Err
}

// Run plays all the games of a match, forwarding every game's result to the
// sink, and returns the match's summary.
func Run(ctx context.Context, config *Config, sink Sink) (Summary, error) {
	var summary Summary

	for number := 1; number <= config.Games; number++ {
		logger := logrus.WithFields(logrus.Fields{
			"set":  config.FixtureSet,
			"home": config.Pairing.Home,
			"away": config.Pairing.Away,
			"game": number,
		})

		abort := func(err error) (Summary, error) {
			return Summary{}, &AbortedError{
				FixtureSet: config.FixtureSet,
				Pairing:    config.Pairing,
				Game:       number,
				Err:        err,
			}
		}

		state, err := config.NewState()
		if err != nil {
			return abort(&game.CollaboratorFault{Err: err})
		}

		result, err := game.Run(ctx, config.Players, state, config.Options)

		var forfeit *game.ForfeitError
		switch {
		case errors.As(err, &forfeit):
			logger.Warnf("Game lost by forfeit: %v", forfeit)
		case err != nil:
			return abort(err)
		}

		sink.Record(stats.Key{
			FixtureSet: config.FixtureSet,
			Game:       number,
			Pairing:    config.Pairing,
		}, result)

		summary.Add(result)

		logger.Debugf(
			"Game %d: Player1: %d - Player2: %d   %s   (Time: %s)",
			number, result.Scores[0], result.Scores[1], result.Winner,
			result.Duration.Round(time.Second),
		)
	}

	return summary, nil
}
