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

package player

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"laptudirm.com/x/league/pkg/league/game"
)

// DefaultMaxAttempts is the number of illegal choices a human player may
// make on a single turn before the turn fails.
const DefaultMaxAttempts = 3

// InputError is returned when an interactive player fails to supply a
// legal move within the allowed number of attempts.
type InputError struct {
	Player   string
	Choice   string // the last rejected choice
	Attempts int
}

func (err *InputError) Error() string {
	return fmt.Sprintf("%s: no legal move after %d attempts (last choice %q)", err.Player, err.Attempts, err.Choice)
}

func (err *InputError) Unwrap() error {
	return game.ErrIllegalMove
}

// HumanPlayer reads its moves from an input stream. A choice is either a
// move's string form or its index in the list of available moves.
//
// Input is read by a single goroutine, so a ChooseAction abandoned because
// its context is done leaves no reader behind. A line typed after that is
// taken as the next choice.
type HumanPlayer struct {
	identity Identity

	input       *bufio.Scanner
	lines       chan string
	inputErr    error // set before lines is closed
	reading     sync.Once
	output      io.Writer
	maxAttempts int
}

func NewHumanPlayer(identity Identity, in io.Reader, out io.Writer, maxAttempts int) *HumanPlayer {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	if out == nil {
		out = io.Discard
	}

	identity.AI = false
	return &HumanPlayer{
		identity:    identity,
		input:       bufio.NewScanner(in),
		lines:       make(chan string),
		output:      out,
		maxAttempts: maxAttempts,
	}
}

// read feeds the lines of the input to player.lines until the input ends.
func (player *HumanPlayer) read() {
	for player.input.Scan() {
		player.lines <- player.input.Text()
	}

	player.inputErr = player.input.Err()
	if player.inputErr == nil {
		player.inputErr = io.ErrUnexpectedEOF
	}

	close(player.lines)
}

func (player *HumanPlayer) ChooseAction(ctx context.Context, state game.State) (game.Decision, error) {
	player.reading.Do(func() { go player.read() })

	moves := state.AvailableMoves()

	var choice string
	for attempt := 1; attempt <= player.maxAttempts; attempt++ {
		player.prompt(moves)

		var input string
		var ok bool
		select {
		case input, ok = <-player.lines:
		case <-ctx.Done():
			fmt.Fprintln(player.output)
			return game.Decision{}, ctx.Err()
		}

		if !ok {
			return game.Decision{}, fmt.Errorf("%s: read choice: %w", player.identity.Name, player.inputErr)
		}

		choice = strings.TrimSpace(input)
		if move, ok := lookup(moves, choice); ok {
			return game.Decision{Move: move}, nil
		}

		fmt.Fprintf(player.output, "Illegal move %q.\n", choice)
	}

	return game.Decision{}, &InputError{
		Player:   player.identity.Name,
		Choice:   choice,
		Attempts: player.maxAttempts,
	}
}

func (player *HumanPlayer) prompt(moves []game.Move) {
	fmt.Fprintln(player.output, "Available moves:")
	for i, move := range moves {
		fmt.Fprintf(player.output, "%4d. %s\n", i, move)
	}
	fmt.Fprint(player.output, "Input your choice: ")
}

// lookup finds the move matching the given choice in the list.
func lookup(moves []game.Move, choice string) (game.Move, bool) {
	for _, move := range moves {
		if strings.EqualFold(move.String(), choice) {
			return move, true
		}
	}

	if index, err := strconv.Atoi(choice); err == nil && index >= 0 && index < len(moves) {
		return moves[index], true
	}

	return nil, false
}

func (player *HumanPlayer) Name() string       { return player.identity.Name }
func (player *HumanPlayer) IsAI() bool         { return false }
func (player *HumanPlayer) Identity() Identity { return player.identity }
