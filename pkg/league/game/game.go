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

package game

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
)

// Chooser is the move selection capability shared by every player.
type Chooser interface {
	ChooseAction(ctx context.Context, state State) (Decision, error)
}

// Decision is a chosen move along with any auxiliary data the player
// produced while searching for it, like the root of a search tree.
type Decision struct {
	Move     Move
	Artifact any
}

// Options configures how a single game is run.
type Options struct {
	// MoveTimeout is the maximum time a player may take for a single move.
	// A player which overruns it forfeits the game. Zero means no limit.
	MoveTimeout time.Duration
}

// MeepleAction records a meeple placement made by a seat.
type MeepleAction struct {
	Turn    int // 1-based turn number of the placing seat
	Feature Feature
}

// Result contains the outcome and the statistics of a single game.
type Result struct {
	Scores        [2]int
	FeatureScores [2]FeatureScores
	Winner        Winner
	Difference    int // seat one's score - seat two's score

	MoveTimes [2][]time.Duration
	Meeples   [2][]MeepleAction

	Duration time.Duration

	// Forfeit is the seat which forfeited the game, or zero.
	Forfeit Seat
}

// Moves returns the number of moves made by the given seat.
func (result *Result) Moves(seat Seat) int {
	return len(result.MoveTimes[seat.Index()])
}

// AverageMoveTime returns the mean time the given seat took per move.
func (result *Result) AverageMoveTime(seat Seat) time.Duration {
	times := result.MoveTimes[seat.Index()]
	if len(times) == 0 {
		return 0
	}

	var total time.Duration
	for _, t := range times {
		total += t
	}

	return total / time.Duration(len(times))
}

// Run plays a single game between the two players on the given state,
// which should be freshly initialized, until the state reports that the
// game is over. players[0] sits in SeatOne and players[1] in SeatTwo.
//
// A move timeout or an illegal move ends the game as a forfeit: Run then
// returns the forfeited result along with a *ForfeitError. Any other fault
// from a player or from the state is returned as a *CollaboratorFault.
func Run(ctx context.Context, players [2]Chooser, state State, options Options) (*Result, error) {
	var result Result
	startTime := time.Now()

	for !state.IsGameOver() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		seat := state.Turn()
		if seat != SeatOne && seat != SeatTwo {
			return nil, &CollaboratorFault{Err: ErrInvalidTurn}
		}

		index := seat.Index()

		moveStart := time.Now()
		decision, err := choose(ctx, players[index], state, options.MoveTimeout)
		result.MoveTimes[index] = append(result.MoveTimes[index], time.Since(moveStart))

		switch {
		case err == nil && decision.Move == nil:
			return nil, &CollaboratorFault{Seat: seat, Err: ErrNoMove}

		case errors.Is(err, context.Canceled):
			return nil, err

		case errors.Is(err, ErrMoveTimeout), errors.Is(err, ErrIllegalMove):
			result.forfeit(state, seat, startTime)
			return &result, &ForfeitError{Seat: seat, Err: err}

		case err != nil:
			return nil, &CollaboratorFault{Seat: seat, Err: err}
		}

		if placer, ok := decision.Move.(Placer); ok {
			if placement := placer.Placement(); placement != nil {
				result.Meeples[index] = append(result.Meeples[index], MeepleAction{
					Turn:    len(result.MoveTimes[index]),
					Feature: placement.Feature,
				})
			}
		}

		logrus.Tracef("%s plays %s", seat, decision.Move)

		if err := state.Move(decision.Move); err != nil {
			return nil, &CollaboratorFault{Seat: seat, Err: err}
		}
	}

	result.Scores = state.Scores()
	result.FeatureScores = state.FeatureScores()
	result.Winner = state.Winner()
	result.Difference = state.Result()
	result.Duration = time.Since(startTime)

	return &result, nil
}

// forfeit fills in the result of a game the given seat forfeited. The
// scores are those at the moment of the forfeit, and the differential is
// never in the forfeiting seat's favour.
func (result *Result) forfeit(state State, seat Seat, startTime time.Time) {
	result.Scores = state.Scores()
	result.FeatureScores = state.FeatureScores()
	result.Difference = result.Scores[0] - result.Scores[1]
	if (seat == SeatOne && result.Difference > 0) || (seat == SeatTwo && result.Difference < 0) {
		result.Difference = 0
	}
	result.Winner = WonBy[seat.Other().Index()]
	result.Forfeit = seat
	result.Duration = time.Since(startTime)
}

// choose asks the player for a move, enforcing the given timeout if it is
// non-zero. Once the timeout passes the player's context is cancelled and
// choose waits for it to return, so a player is never asked for two moves
// at once. Players must return promptly once their context is done.
func choose(ctx context.Context, player Chooser, state State, timeout time.Duration) (Decision, error) {
	if timeout <= 0 {
		return player.ChooseAction(ctx, state)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type reply struct {
		decision Decision
		err      error
	}

	replies := make(chan reply, 1)
	go func() {
		decision, err := player.ChooseAction(ctx, state)
		replies <- reply{decision, err}
	}()

	var r reply
	select {
	case r = <-replies:
	case <-ctx.Done():
		// a move made after the deadline is discarded
		<-replies
		r = reply{err: ctx.Err()}
	}

	if errors.Is(r.err, context.DeadlineExceeded) {
		return Decision{}, ErrMoveTimeout
	}

	return r.decision, r.err
}

// ChooserFunc is an adapter to allow the use of ordinary functions as
// Choosers.
type ChooserFunc func(ctx context.Context, state State) (Decision, error)

// ChooseAction calls fn(ctx, state).
func (fn ChooserFunc) ChooseAction(ctx context.Context, state State) (Decision, error) {
	return fn(ctx, state)
}
