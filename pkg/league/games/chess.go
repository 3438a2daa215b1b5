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
	"fmt"
	"strings"

	"laptudirm.com/x/league/pkg/league/game"
	"laptudirm.com/x/mess/pkg/board"
	"laptudirm.com/x/mess/pkg/board/move"
	"laptudirm.com/x/mess/pkg/formats/fen"
)

const (
	ChessStartPosition = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

	// ChessMaxPlies is the number of plies after which a chess game is
	// adjudicated as a draw.
	ChessMaxPlies = 600
)

// ChessMove is a legal move in a chess position.
type ChessMove struct {
	move.Move
}

// Chess is a game.State of a chess game. Scores are 1-0 to the winner
// and 0-0 on a draw; chess has no feature scores.
type Chess struct {
	board *board.Board
	moves []ChessMove

	plies  int
	reason string
	winner game.Winner
	over   bool
}

var _ game.State = (*Chess)(nil)

// NewChess returns a chess game set up with the given FEN. Seat one plays
// the side to move.
func NewChess(fenstr string) (*Chess, error) {
	if fields := strings.Fields(fenstr); len(fields) < 4 {
		return nil, fmt.Errorf("chess: invalid fen %q", fenstr)
	}

	chess := &Chess{
		board: board.New(board.FEN(fen.FromString(fenstr))),
	}

	chess.generate()
	return chess, nil
}

func (chess *Chess) generate() {
	moves := chess.board.GenerateMoves(false)

	chess.moves = make([]ChessMove, len(moves))
	for i, m := range moves {
		chess.moves[i] = ChessMove{m}
	}

	switch {
	case len(chess.moves) == 0:
		if chess.board.IsInCheck(chess.board.SideToMove) {
			chess.end(game.WonBy[chess.Turn().Other().Index()], "Checkmate")
		} else {
			chess.end(game.Draw, "Stalemate")
		}

	case chess.board.DrawClock >= 100:
		chess.end(game.Draw, "50-move Rule")
	case chess.board.IsThreefoldRepetition():
		chess.end(game.Draw, "Threefold Repetition")
	case chess.board.IsInsufficientMaterial():
		chess.end(game.Draw, "Insufficient Material")
	case chess.plies >= ChessMaxPlies:
		chess.end(game.Draw, "Move Limit")
	}
}

func (chess *Chess) end(winner game.Winner, reason string) {
	chess.over = true
	chess.winner = winner
	chess.reason = reason
}

func (chess *Chess) AvailableMoves() []game.Move {
	moves := make([]game.Move, len(chess.moves))
	for i, m := range chess.moves {
		moves[i] = m
	}

	return moves
}

func (chess *Chess) RandomMove() game.Move {
	return pick(chess.moves)
}

func (chess *Chess) Move(m game.Move) error {
	if chess.over {
		return fmt.Errorf("chess: move %s after game over", m)
	}

	for _, legal := range chess.moves {
		if strings.EqualFold(legal.String(), m.String()) {
			chess.board.MakeMove(legal.Move)
			chess.plies++
			chess.generate()
			return nil
		}
	}

	return fmt.Errorf("chess: %w %s", game.ErrIllegalMove, m)
}

func (chess *Chess) IsGameOver() bool {
	return chess.over
}

// Turn returns the seat to move. Seat one moves on even plies.
func (chess *Chess) Turn() game.Seat {
	return seatOf(chess.plies%2, 0)
}

func (chess *Chess) Scores() [2]int {
	switch chess.winner {
	case game.SeatOneWins:
		return [2]int{1, 0}
	case game.SeatTwoWins:
		return [2]int{0, 1}
	default:
		return [2]int{}
	}
}

func (chess *Chess) Result() int {
	scores := chess.Scores()
	return scores[0] - scores[1]
}

func (chess *Chess) Winner() game.Winner {
	return chess.winner
}

func (chess *Chess) FeatureScores() [2]game.FeatureScores {
	return [2]game.FeatureScores{}
}

// Reason returns why the game ended, or the empty string if it hasn't.
func (chess *Chess) Reason() string {
	return chess.reason
}

// FEN returns the FEN of the current position.
func (chess *Chess) FEN() string {
	fen := [6]string(chess.board.FEN())
	return strings.Join(fen[:], " ")
}
