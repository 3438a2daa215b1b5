// Package gametest provides a scripted game.State and simple players for
// testing code which drives games.
package gametest

import (
	"context"
	"errors"
	"fmt"

	"laptudirm.com/x/league/pkg/league/game"
)

// Move is a scripted move. It may carry a meeple placement.
type Move struct {
	Name   string
	Meeple *game.Placement
}

func (move Move) String() string {
	return move.Name
}

func (move Move) Placement() *game.Placement {
	return move.Meeple
}

// State is a scripted game which lasts for a fixed number of plies, with
// SeatOne moving on even plies, and finishes with the configured scores.
type State struct {
	Plies    int
	Final    [2]int
	Features [2]game.FeatureScores

	// Meeples maps a ply number to the placement offered on that ply.
	Meeples map[int]*game.Placement

	// FailAt makes Move fail on the given ply when it is non-negative.
	FailAt int

	History []game.Move
}

// NewState returns a State which lasts for plies plies and ends with
// seat one scoring one and seat two scoring two.
func NewState(plies, one, two int) *State {
	return &State{
		Plies:  plies,
		Final:  [2]int{one, two},
		FailAt: -1,
	}
}

var ErrScripted = errors.New("gametest: scripted failure")

func (state *State) AvailableMoves() []game.Move {
	ply := len(state.History)
	return []game.Move{
		Move{Name: fmt.Sprintf("m%d", ply), Meeple: state.Meeples[ply]},
		Move{Name: "pass"},
	}
}

func (state *State) RandomMove() game.Move {
	return state.AvailableMoves()[0]
}

func (state *State) Move(move game.Move) error {
	if len(state.History) == state.FailAt {
		return ErrScripted
	}

	state.History = append(state.History, move)
	return nil
}

func (state *State) IsGameOver() bool {
	return len(state.History) >= state.Plies
}

func (state *State) Turn() game.Seat {
	if len(state.History)%2 == 0 {
		return game.SeatOne
	}

	return game.SeatTwo
}

func (state *State) Scores() [2]int {
	return state.Final
}

func (state *State) Result() int {
	return state.Final[0] - state.Final[1]
}

func (state *State) Winner() game.Winner {
	switch {
	case state.Final[0] > state.Final[1]:
		return game.SeatOneWins
	case state.Final[1] > state.Final[0]:
		return game.SeatTwoWins
	default:
		return game.Draw
	}
}

func (state *State) FeatureScores() [2]game.FeatureScores {
	return state.Features
}

// Random is a player which always plays state.RandomMove().
var Random = game.ChooserFunc(func(ctx context.Context, state game.State) (game.Decision, error) {
	return game.Decision{Move: state.RandomMove()}, nil
})

// Failing returns a player which always fails with err.
func Failing(err error) game.Chooser {
	return game.ChooserFunc(func(ctx context.Context, state game.State) (game.Decision, error) {
		return game.Decision{}, err
	})
}

// Stalling is a player which never moves until its context is done.
var Stalling = game.ChooserFunc(func(ctx context.Context, state game.State) (game.Decision, error) {
	<-ctx.Done()
	return game.Decision{}, ctx.Err()
})
