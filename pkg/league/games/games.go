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

package games

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"laptudirm.com/x/league/pkg/league/game"
)

// ErrUnknownGame is returned by New for a game which isn't supported.
var ErrUnknownGame = errors.New("unknown game")

// constructor creates a fresh state from the given starting position.
type constructor func(position string) (game.State, error)

var (
	constructors = map[string]constructor{
		"ataxx": func(position string) (game.State, error) { return NewAtaxx(position) },
		"chess": func(position string) (game.State, error) { return NewChess(position) },
	}

	startPositions = map[string]string{
		"ataxx": AtaxxStartPosition,
		"chess": ChessStartPosition,
	}
)

// Names returns the names of the supported games.
func Names() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

// StartPosition returns the standard starting position of the given game.
func StartPosition(name string) (string, error) {
	position, found := startPositions[strings.ToLower(name)]
	if !found {
		return "", fmt.Errorf("%w %q", ErrUnknownGame, name)
	}

	return position, nil
}

// New returns a new state of the given game set up with the given
// position, or the standard starting position if it is empty.
func New(name, position string) (game.State, error) {
	name = strings.ToLower(name)

	construct, found := constructors[name]
	if !found {
		return nil, fmt.Errorf("%w %q", ErrUnknownGame, name)
	}

	if position == "" {
		position = startPositions[name]
	}

	return construct(position)
}

// seatOf returns the seat playing the given side, where seat one plays
// the side which moves first.
func seatOf(side, first int) game.Seat {
	if side == first {
		return game.SeatOne
	}

	return game.SeatTwo
}

// pick returns a random element of moves.
func pick[M game.Move](moves []M) game.Move {
	if len(moves) == 0 {
		return nil
	}

	return moves[rand.Intn(len(moves))]
}
