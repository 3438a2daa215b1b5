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

import "fmt"

// State is the rules engine of a single game. A fresh State is created for
// every game and is only ever touched by the goroutine running that game.
type State interface {
	// AvailableMoves lists the legal moves of the side to move.
	AvailableMoves() []Move
	// RandomMove returns a uniformly random legal move.
	RandomMove() Move

	// Move plays the given move and advances the turn.
	Move(Move) error

	IsGameOver() bool
	Turn() Seat

	// Scores, Result, Winner and FeatureScores are only meaningful once
	// the game is over. A forfeited game ends early, and Scores and
	// FeatureScores then report the points scored so far.
	Scores() [2]int
	Result() int
	Winner() Winner
	FeatureScores() [2]FeatureScores
}

// Move is a single action understood by the State that generated it.
type Move interface {
	String() string
}

// Placer is implemented by moves which may carry a secondary meeple
// placement alongside the primary action.
type Placer interface {
	Placement() *Placement
}

// Placement describes a meeple placed as part of a move.
type Placement struct {
	Feature  Feature
	Location int
}

// Feature is the type of board feature a meeple can be placed on.
type Feature uint8

const (
	City Feature = iota
	Road
	Monastery
	Farm
)

func (feature Feature) String() string {
	switch feature {
	case City:
		return "C"
	case Road:
		return "R"
	case Monastery:
		return "Monastery"
	case Farm:
		return "G"
	default:
		return "?"
	}
}

// Seat is one of the two sides of a game.
type Seat int

const (
	SeatOne Seat = 1
	SeatTwo Seat = 2
)

// Index returns the 0-based array index of the seat.
func (seat Seat) Index() int {
	return int(seat) - 1
}

// Other returns the opposing seat.
func (seat Seat) Other() Seat {
	return 3 - seat
}

func (seat Seat) String() string {
	return fmt.Sprintf("Player%d", int(seat))
}

// Winner is the outcome code of a finished game.
type Winner int

const (
	Draw        Winner = 0
	SeatOneWins Winner = 1
	SeatTwoWins Winner = 2
)

// WonBy maps a seat to the Winner code of a game it won.
var WonBy = [2]Winner{
	0: SeatOneWins,
	1: SeatTwoWins,
}

// Relative returns the winner code from the point of view of the given
// seat: 1 if that seat won, 2 if it lost and 0 on a draw.
func (winner Winner) Relative(seat Seat) Winner {
	if seat == SeatOne {
		return winner
	}

	return (3 - winner) % 3
}

func (winner Winner) String() string {
	switch winner {
	case SeatOneWins:
		return "1-0"
	case SeatTwoWins:
		return "0-1"
	case Draw:
		return "1/2-1/2"
	default:
		return "?-?"
	}
}

// FeatureScores is a per-feature score breakdown of a single seat.
type FeatureScores [FeatureCategoryN]int

// FeatureCategory indexes a FeatureScores breakdown.
type FeatureCategory int

const (
	CompleteCity FeatureCategory = iota
	CompleteRoad
	CompleteMonastery
	IncompleteCity
	IncompleteRoad
	IncompleteMonastery
	FarmScore

	FeatureCategoryN = 7
)

var featureCategoryNames = [FeatureCategoryN]string{
	"CompleteCityScore",
	"CompleteRoadScore",
	"CompleteMonasteryScore",
	"IncompleteCityScore",
	"IncompleteRoadScore",
	"IncompleteMonasteryScore",
	"FarmScore",
}

func (category FeatureCategory) String() string {
	if category < 0 || category >= FeatureCategoryN {
		return "UnknownScore"
	}

	return featureCategoryNames[category]
}
